package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/handlers"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/middleware"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

func BroadcastRouter(r chi.Router, state *state.AppState, deps Dependencies) {
	h := handlers.NewBroadcastHandler(state, deps.Broadcasts)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))

		protected.Get("/api/v1/broadcasts", handlers.WrapHandler(h.ListBroadcasts))

		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin)

			admin.Post("/api/v1/broadcasts", handlers.WrapHandler(h.CreateBroadcast))
			admin.Delete("/api/v1/broadcasts/{broadcastId}", handlers.WrapHandler(h.DeleteBroadcast))
		})
	})
}
