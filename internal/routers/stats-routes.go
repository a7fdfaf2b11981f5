package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/handlers"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/middleware"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

func StatsRouter(r chi.Router, state *state.AppState, deps Dependencies) {
	h := handlers.NewStatsHandler(state, deps.Stats)

	r.Group(func(admin chi.Router) {
		admin.Use(middleware.JWTAuth(state.JwtSecret.Public))
		admin.Use(middleware.RequireAdmin)

		admin.Get("/api/v1/stats", handlers.WrapHandler(h.GetSnapshot))
		admin.Post("/api/v1/stats/recompute", handlers.WrapHandler(h.RecomputeNow))
	})
}
