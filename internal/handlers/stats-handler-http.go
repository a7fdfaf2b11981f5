package handlers

import (
	"net/http"

	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	stats_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/stats-case"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type StatsHandler struct {
	State   *state.AppState
	Service stats_service.StatsServiceContract
}

func NewStatsHandler(state *state.AppState, service stats_service.StatsServiceContract) *StatsHandler {
	return &StatsHandler{
		State:   state,
		Service: service,
	}
}

func (h *StatsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	resp, appErr := h.Service.GetSnapshot(r.Context())
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("stats snapshot", *resp, requestID(r)))
	return nil
}

// RecomputeNow forces a synchronous rebuild, for admin troubleshooting.
func (h *StatsHandler) RecomputeNow(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	resp, appErr := h.Service.Recompute(r.Context())
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("stats recomputed", *resp, requestID(r)))
	return nil
}
