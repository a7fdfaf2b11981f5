package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/complaint_dto"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	complaint_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/complaint-case"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type ComplaintHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  complaint_service.ComplaintServiceContract
}

func NewComplaintHandler(state *state.AppState, service complaint_service.ComplaintServiceContract) *ComplaintHandler {
	return &ComplaintHandler{
		State:    state,
		Validate: validator.New(),
		Service:  service,
	}
}

func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req complaint_dto.CreateComplaintRequest
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

	resp, appErr := h.Service.CreateComplaint(r.Context(), actor, req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusCreated, CreateResponse("complaint filed", *resp, requestID(r)))
	return nil
}

func (h *ComplaintHandler) GetComplaint(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.Service.GetComplaint(r.Context(), actor, chi.URLParam(r, "complaintId"))
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("get complaint", *resp, requestID(r)))
	return nil
}

func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	req := complaint_dto.ListComplaintsRequest{
		Page:  queryInt64(r, "page", 1),
		Limit: queryInt64(r, "limit", 20),
	}

	resp, appErr := h.Service.ListComplaints(r.Context(), actor, req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("list complaints", *resp, requestID(r)))
	return nil
}

func (h *ComplaintHandler) UpdateComplaint(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req complaint_dto.UpdateComplaintRequest
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

	resp, appErr := h.Service.UpdateComplaint(r.Context(), actor, chi.URLParam(r, "complaintId"), req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("complaint updated", *resp, requestID(r)))
	return nil
}

func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req complaint_dto.UpdateStatusRequest
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

	resp, appErr := h.Service.UpdateStatus(r.Context(), actor, chi.URLParam(r, "complaintId"), req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("status updated", *resp, requestID(r)))
	return nil
}

func (h *ComplaintHandler) DeleteComplaint(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.DeleteComplaint(r.Context(), actor, chi.URLParam(r, "complaintId")); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("complaint deleted", struct{}{}, requestID(r)))
	return nil
}

func (h *ComplaintHandler) AddComment(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req complaint_dto.AddCommentRequest
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

	resp, appErr := h.Service.AddComment(r.Context(), actor, chi.URLParam(r, "complaintId"), req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusCreated, CreateResponse("comment added", *resp, requestID(r)))
	return nil
}

func (h *ComplaintHandler) ToggleLike(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	resp, appErr := h.Service.ToggleLike(r.Context(), actor, chi.URLParam(r, "complaintId"))
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("like toggled", *resp, requestID(r)))
	return nil
}
