package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/handlers"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/middleware"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

func BuildingRouter(r chi.Router, state *state.AppState, deps Dependencies) {
	h := handlers.NewBuildingHandler(state, deps.Buildings)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))

		protected.Get("/api/v1/buildings/{buildingId}", handlers.WrapHandler(h.GetBuilding))

		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdmin)

			admin.Post("/api/v1/buildings", handlers.WrapHandler(h.CreateBuilding))
			admin.Patch("/api/v1/buildings/{buildingId}/resize", handlers.WrapHandler(h.ResizeBuilding))
			admin.Delete("/api/v1/buildings/{buildingId}", handlers.WrapHandler(h.DeleteBuilding))

			admin.Post("/api/v1/buildings/{buildingId}/residents", handlers.WrapHandler(h.AddResident))
			admin.Delete("/api/v1/residents/{residentId}", handlers.WrapHandler(h.RemoveResident))
			admin.Post("/api/v1/residents/{residentId}/move", handlers.WrapHandler(h.MoveResident))
		})
	})
}
