package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dtos/notification_dto"
	app_error "github.com/AbhinavSharma486/FixMySociety-sub001/internal/errors"
	notification_service "github.com/AbhinavSharma486/FixMySociety-sub001/internal/use-case/notification-case"
	"github.com/AbhinavSharma486/FixMySociety-sub001/state"
)

type NotificationHandler struct {
	State   *state.AppState
	Service notification_service.NotificationServiceContract
}

func NewNotificationHandler(state *state.AppState, service notification_service.NotificationServiceContract) *NotificationHandler {
	return &NotificationHandler{
		State:   state,
		Service: service,
	}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	req := notification_dto.ListNotificationsRequest{
		Page:  queryInt64(r, "page", 1),
		Limit: queryInt64(r, "limit", 20),
	}

	resp, appErr := h.Service.ListNotifications(r.Context(), actor, req)
	if appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("list notifications", *resp, requestID(r)))
	return nil
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.MarkRead(r.Context(), actor, chi.URLParam(r, "notificationId")); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("notification marked read", struct{}{}, requestID(r)))
	return nil
}

func (h *NotificationHandler) MarkUnread(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.MarkUnread(r.Context(), actor, chi.URLParam(r, "notificationId")); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("notification marked unread", struct{}{}, requestID(r)))
	return nil
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) *app_error.AppError {
	actor, appErr := actorFrom(r)
	if appErr != nil {
		return appErr
	}

	if appErr := h.Service.DeleteNotification(r.Context(), actor, chi.URLParam(r, "notificationId")); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, CreateResponse("notification deleted", struct{}{}, requestID(r)))
	return nil
}
