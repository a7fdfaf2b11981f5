package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/broadcast_dto"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	broadcast_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/broadcast-case"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type BroadcastHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  broadcast_service.BroadcastServiceContract
}

func NewBroadcastHandler(state *state.AppState, service broadcast_service.BroadcastServiceContract) *BroadcastHandler {
	return &BroadcastHandler{
		State:    state,
		Validate: validator.New(),
		Service:  service,
	}
}

func (h *BroadcastHandler) CreateBroadcast(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req broadcast_dto.CreateBroadcastRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.Service.CreateBroadcast(r.Context(), actor, req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusCreated, CreateResponse("broadcast sent", *resp, requestID(r)))
	return nil
}

func (h *BroadcastHandler) ListBroadcasts(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	req := broadcast_dto.ListBroadcastsRequest{
		Page:  queryInt64(r, "page", 1),
		Limit: queryInt64(r, "limit", 20),
	}

	resp, appErr := h.Service.ListBroadcasts(r.Context(), actor, req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("list broadcasts", *resp, requestID(r)))
	return nil
}

func (h *BroadcastHandler) DeleteBroadcast(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.DeleteBroadcast(r.Context(), actor, chi.URLParam(r, "broadcastId")); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("broadcast removed", struct{}{}, requestID(r)))
	return nil
}
