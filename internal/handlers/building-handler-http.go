package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/building_dto"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	building_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/building-case"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type BuildingHandler struct {
	State    *state.AppState
	Validate *validator.Validate
	Service  building_service.BuildingServiceContract
}

func NewBuildingHandler(state *state.AppState, service building_service.BuildingServiceContract) *BuildingHandler {
	return &BuildingHandler{
		State:    state,
		Validate: validator.New(),
		Service:  service,
	}
}

func (h *BuildingHandler) CreateBuilding(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req building_dto.CreateBuildingRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.CreateBuilding(r.Context(), req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusCreated, CreateResponse("building created", *resp, requestID(r)))
	return nil
}

func (h *BuildingHandler) GetBuilding(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	resp, appErr := h.Service.GetBuilding(r.Context(), chi.URLParam(r, "buildingId"))
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("get building", *resp, requestID(r)))
	return nil
}

func (h *BuildingHandler) ResizeBuilding(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req building_dto.ResizeBuildingRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.ResizeBuilding(r.Context(), chi.URLParam(r, "buildingId"), req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("building resized", *resp, requestID(r)))
	return nil
}

func (h *BuildingHandler) DeleteBuilding(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	if appErr := h.Service.DeleteBuilding(r.Context(), chi.URLParam(r, "buildingId")); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("building deleted", struct{}{}, requestID(r)))
	return nil
}

func (h *BuildingHandler) AddResident(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req building_dto.AddResidentRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.AddResident(r.Context(), chi.URLParam(r, "buildingId"), req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusCreated, CreateResponse("resident assigned", *resp, requestID(r)))
	return nil
}

func (h *BuildingHandler) RemoveResident(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	if appErr := h.Service.RemoveResident(r.Context(), chi.URLParam(r, "residentId")); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("resident removed", struct{}{}, requestID(r)))
	return nil
}

func (h *BuildingHandler) MoveResident(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	var req building_dto.MoveResidentRequest
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, "Invalid JSON", "body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("Invalid fields: %v", err), "validation")
	}

	resp, appErr := h.Service.MoveResident(r.Context(), chi.URLParam(r, "residentId"), req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("resident moved", *resp, requestID(r)))
	return nil
}
