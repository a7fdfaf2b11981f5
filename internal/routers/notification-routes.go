package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/handlers"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/middleware"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

func NotificationRouter(r chi.Router, state *state.AppState, deps Dependencies) {
	h := handlers.NewNotificationHandler(state, deps.Notifications)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))

		protected.Get("/api/v1/notifications", handlers.WrapHandler(h.ListNotifications))
		protected.Patch("/api/v1/notifications/{notificationId}/read", handlers.WrapHandler(h.MarkRead))
		protected.Patch("/api/v1/notifications/{notificationId}/unread", handlers.WrapHandler(h.MarkUnread))
		protected.Delete("/api/v1/notifications/{notificationId}", handlers.WrapHandler(h.DeleteNotification))
	})
}
