package service_test

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/service"
	"DonaTalkAPI/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	chats    *testutil.ChatStore
	messages *testutil.MessageStore
	users    *testutil.UserStore
	storage  *testutil.MemoryStorage
	notifier *testutil.RecordingNotifier
	cfg      *config.AppConfig

	chatService    *service.ChatService
	messageService *service.MessageService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		chats:    testutil.NewChatStore(),
		messages: testutil.NewMessageStore(),
		users:    testutil.NewUserStore(),
		storage:  testutil.NewMemoryStorage(),
		notifier: &testutil.RecordingNotifier{},
		cfg: &config.AppConfig{
			JWTSecret:        "test-secret",
			JWTExp:           1,
			MediaMaxUploadMB: 1,
		},
	}

	validate := config.NewValidator()
	f.chatService = service.NewChatService(f.chats, f.messages, f.users, f.storage, validate, f.notifier)
	f.messageService = service.NewMessageService(f.chats, f.messages, f.users, f.storage, f.cfg, validate, f.notifier)

	return f
}

func assertAppError(t *testing.T, err error, code int) *helper.AppError {
	t.Helper()

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	return appErr
}
