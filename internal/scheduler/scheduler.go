package scheduler

import (
	"DonaTalkAPI/internal/adapter"
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/repository"
	"DonaTalkAPI/internal/scheduler/job"
	"DonaTalkAPI/internal/service"
	"DonaTalkAPI/internal/websocket"
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/mongo"
)

type Scheduler struct {
	cfg     *config.AppConfig
	cron    *cron.Cron
	cleaner job.OrphanMessageCleaner
}

func New(cfg *config.AppConfig, db *mongo.Database, s3Client *s3.Client, validate *validator.Validate) *Scheduler {
	repo := repository.NewRepository(db, nil)

	var storage service.MediaStorage
	if s3Client != nil {
		storage = adapter.NewStorageAdapter(cfg, s3Client)
	}

	messageService := service.NewMessageService(repo.Chat, repo.Message, repo.User, storage, cfg, validate, websocket.NoopNotifier{})

	return newScheduler(cfg, messageService)
}

func newScheduler(cfg *config.AppConfig, cleaner job.OrphanMessageCleaner) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		cron:    cron.New(),
		cleaner: cleaner,
	}
}

func (s *Scheduler) Start() {
	slog.Info("Starting Scheduler...")

	s.registerJobs()

	s.cron.Start()
	slog.Info("Scheduler started successfully")
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) registerJobs() {
	_, err := s.cron.AddFunc(s.cfg.OrphanMessageCleanupCron, func() {
		slog.Info("Starting Orphan Message Cleanup Job")
		if err := job.RunOrphanMessageCleanup(context.Background(), s.cleaner); err != nil {
			slog.Error("Orphan Message Cleanup Job failed", "error", err)
		} else {
			slog.Info("Orphan Message Cleanup Job completed")
		}
	})
	if err != nil {
		slog.Error("Failed to register Orphan Message Cleanup job", "error", err)
	} else {
		slog.Info("Registered Orphan Message Cleanup Job", "schedule", s.cfg.OrphanMessageCleanupCron)
	}
}

// JobCount reports how many jobs are registered with the cron runner.
func (s *Scheduler) JobCount() int {
	return len(s.cron.Entries())
}
