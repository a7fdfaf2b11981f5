package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/handlers"
	hub_handler "github.com/AbhinavSharma486/FixMySociety-sub001/internal/handlers/hub-handler"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/middleware"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

func HubRouter(r chi.Router, state *state.AppState, deps Dependencies) {
	h := hub_handler.NewHubHandler(deps.Hub)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		// the upgrade authenticates during the handshake itself
		r.Get("/ws", deps.WSHandler.HandleWS)

		// presence diagnostics, admin only
		r.Group(func(admin chi.Router) {
			admin.Use(middleware.JWTAuth(state.JwtSecret.Public))
			admin.Use(middleware.RequireAdmin)

			admin.Get("/ws/stats", handlers.WrapHandler(h.HandleGetStats))
			admin.Route("/rooms/{roomId}", func(r chi.Router) {
				r.Get("/stats", handlers.WrapHandler(h.HandleGetRoomStats))
			})
			admin.Route("/users/{userId}", func(r chi.Router) {
				r.Get("/status", handlers.WrapHandler(h.HandleIsUserOnline))
			})
		})
	})
}
