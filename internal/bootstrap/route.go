package bootstrap

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/controller"
	"DonaTalkAPI/internal/middleware"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type Route struct {
	cfg                 *config.AppConfig
	chi                 *chi.Mux
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
	wsLimiter           *config.RateLimiter
	chatController      *controller.ChatController
	messageController   *controller.MessageController
	wsController        *controller.WebSocketController
	healthController    *controller.HealthController
}

func NewRoute(cfg *config.AppConfig, chi *chi.Mux, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware, wsLimiter *config.RateLimiter, chatController *controller.ChatController, messageController *controller.MessageController, wsController *controller.WebSocketController, healthController *controller.HealthController) *Route {
	return &Route{
		cfg:                 cfg,
		chi:                 chi,
		authMiddleware:      authMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
		wsLimiter:           wsLimiter,
		chatController:      chatController,
		messageController:   messageController,
		wsController:        wsController,
		healthController:    healthController,
	}
}

func (route *Route) Register() {
	route.chi.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to DonaTalkAPI"))
	})

	route.chi.Get("/health", route.healthController.Health)
	route.chi.Get("/swagger/doc.json", route.healthController.SwaggerDoc)

	route.chi.With(route.rateLimitMiddleware.LimitLocal(route.wsLimiter)).Get("/ws", route.wsController.ServeWS)

	sendWindow := time.Duration(route.cfg.MessageRateWindowSeconds) * time.Second

	route.chi.Route("/api", func(r chi.Router) {
		r.Use(route.authMiddleware.VerifyToken)

		r.Route("/chat", func(r chi.Router) {
			r.Get("/", route.chatController.FetchChats)
			r.Post("/access", route.chatController.AccessChat)
			r.Post("/group", route.chatController.CreateGroupChat)
			r.Put("/rename", route.chatController.RenameGroup)
			r.Put("/add", route.chatController.AddToGroup)
			r.Put("/remove", route.chatController.RemoveFromGroup)
			r.Delete("/{chatId}", route.chatController.DeleteChat)
		})

		r.Route("/message", func(r chi.Router) {
			r.With(route.rateLimitMiddleware.Limit("send_message", route.cfg.MessageRateLimit, sendWindow)).Post("/", route.messageController.SendMessage)
			r.Put("/read", route.messageController.MarkRead)
			r.Get("/{chatId}", route.messageController.GetMessages)
			r.Delete("/chat/{chatId}", route.messageController.DeleteChatMessages)
			r.Delete("/{messageId}", route.messageController.DeleteMessage)
		})
	})
}
