package job

import (
	"context"
	"log/slog"
	"time"
)

type OrphanMessageCleaner interface {
	DeleteOrphanMessages(ctx context.Context) (int64, error)
}

// RunOrphanMessageCleanup removes messages whose chat no longer exists.
func RunOrphanMessageCleanup(ctx context.Context, cleaner OrphanMessageCleaner) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	start := time.Now()
	deleted, err := cleaner.DeleteOrphanMessages(ctx)
	if err != nil {
		slog.Error("Failed to delete orphan messages", "error", err)
		return err
	}

	slog.Info("Orphan message cleanup finished", "deleted", deleted, "duration", time.Since(start))
	return nil
}
