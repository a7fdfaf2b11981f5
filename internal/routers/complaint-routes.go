package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/handlers"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/middleware"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

func ComplaintRouter(r chi.Router, state *state.AppState, deps Dependencies) {
	h := handlers.NewComplaintHandler(state, deps.Complaints)

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.JWTAuth(state.JwtSecret.Public))

		protected.Post("/api/v1/complaints", handlers.WrapHandler(h.CreateComplaint))
		protected.Get("/api/v1/complaints", handlers.WrapHandler(h.ListComplaints))
		protected.Get("/api/v1/complaints/{complaintId}", handlers.WrapHandler(h.GetComplaint))
		protected.Put("/api/v1/complaints/{complaintId}", handlers.WrapHandler(h.UpdateComplaint))
		protected.Delete("/api/v1/complaints/{complaintId}", handlers.WrapHandler(h.DeleteComplaint))
		protected.Post("/api/v1/complaints/{complaintId}/comments", handlers.WrapHandler(h.AddComment))
		protected.Post("/api/v1/complaints/{complaintId}/like", handlers.WrapHandler(h.ToggleLike))
		protected.Patch("/api/v1/complaints/{complaintId}/status", handlers.WrapHandler(h.UpdateStatus))
	})
}
