package bootstrap

import (
	"DonaTalkAPI/internal/adapter"
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/controller"
	"DonaTalkAPI/internal/middleware"
	"DonaTalkAPI/internal/repository"
	"DonaTalkAPI/internal/service"
	"DonaTalkAPI/internal/websocket"
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// App holds the long-lived pieces that need an orderly shutdown.
type App struct {
	Hub      *websocket.Hub
	Notifier websocket.Notifier

	live      *websocket.LiveNotifier
	stream    *adapter.EventStreamAdapter
	wsLimiter *config.RateLimiter
	cancel    context.CancelFunc
}

// stores are the persistence dependencies of the HTTP and realtime layers.
type stores struct {
	chats     service.ChatRepository
	messages  service.MessageRepository
	users     service.UserRepository
	rateLimit middleware.RateLimitStore
	storage   service.MediaStorage
}

func Init(appConfig *config.AppConfig, db *mongo.Database, redisAdapter *adapter.RedisAdapter, validator *validator.Validate, s3Client *s3.Client, chiMux *chi.Mux) *App {
	repo := repository.NewRepository(db, redisAdapter)

	st := stores{
		chats:    repo.Chat,
		messages: repo.Message,
		users:    repo.User,
	}

	if repo.RateLimit != nil {
		st.rateLimit = repo.RateLimit
	} else {
		slog.Warn("Redis disabled, message send rate limiting is off")
	}

	if s3Client != nil {
		st.storage = adapter.NewStorageAdapter(appConfig, s3Client)
	}

	return wire(appConfig, st, redisAdapter, validator, chiMux)
}

func wire(appConfig *config.AppConfig, st stores, redisAdapter *adapter.RedisAdapter, validator *validator.Validate, chiMux *chi.Mux) *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{cancel: cancel}

	app.Hub = websocket.NewHub()
	go app.Hub.Run()

	app.Notifier = app.buildNotifier(ctx, appConfig, redisAdapter)

	authService := service.NewAuthService(st.users, appConfig)
	chatService := service.NewChatService(st.chats, st.messages, st.users, st.storage, validator, app.Notifier)
	messageService := service.NewMessageService(st.chats, st.messages, st.users, st.storage, appConfig, validator, app.Notifier)

	chatController := controller.NewChatController(chatService)
	messageController := controller.NewMessageController(messageService)
	healthController := controller.NewHealthController(app.Hub)

	credentials := websocket.NewCredentialChain(authService, websocket.DefaultStrategies(appConfig.JWTCookieName)...)
	wsController := controller.NewWebSocketController(app.Hub, credentials)

	authMiddleware := middleware.NewAuthMiddleware(authService, appConfig)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(st.rateLimit, appConfig)

	app.wsLimiter = config.NewRateLimiter(appConfig)

	route := NewRoute(appConfig, chiMux, authMiddleware, rateLimitMiddleware, app.wsLimiter, chatController, messageController, wsController, healthController)
	route.Register()

	return app
}

func (app *App) buildNotifier(ctx context.Context, cfg *config.AppConfig, redisAdapter *adapter.RedisAdapter) websocket.Notifier {
	if !cfg.RealtimeEnabled {
		slog.Info("Realtime delivery disabled")
		return websocket.NoopNotifier{}
	}

	var dispatcher websocket.Dispatcher = app.Hub
	if redisAdapter != nil {
		relay := websocket.NewRelay(redisAdapter, cfg.RealtimeChannel, app.Hub)
		if err := relay.Subscribe(ctx); err != nil {
			slog.Error("Failed to subscribe realtime relay, delivering locally", "error", err)
		} else {
			dispatcher = relay
		}
	}

	app.live = websocket.NewLiveNotifier(dispatcher, cfg.RealtimeQueueSize)
	notifiers := websocket.MultiNotifier{app.live}

	if cfg.KafkaEnabled() {
		app.stream = adapter.NewEventStreamAdapter(cfg)
		notifiers = append(notifiers, websocket.NewStreamNotifier(app.stream))
		slog.Info("Chat events exported to Kafka", "topic", app.stream.Topic())
	}

	return notifiers
}

// Close stops accepting events, flushes queued ones and closes every socket.
func (app *App) Close() {
	if app.live != nil {
		app.live.Stop()
	}
	if app.stream != nil {
		if err := app.stream.Close(); err != nil {
			slog.Error("Error closing event stream", "error", err)
		}
	}
	app.cancel()
	app.wsLimiter.Stop()
	app.Hub.Stop()
}
