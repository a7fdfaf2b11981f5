package app_error

import (
	"encoding/json"
	"net/http"
)

type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e AppError) Error() string {
	return e.Message
}

func (e AppError) JSON(w http.ResponseWriter) error {
	return json.NewEncoder(w).Encode(e)
}

func NewAppError(code int, msg, field string) *AppError {
	return &AppError{
		Code:    code,
		Message: msg,
		Field:   field,
	}
}

// Taxonomy helpers. Validation and consistency failures are rejected before
// any mutation is applied; authorization failures leave the request or
// connection alive.

func NewValidationError(msg, field string) *AppError {
	return NewAppError(http.StatusBadRequest, msg, field)
}

func NewAuthorizationError(msg string) *AppError {
	return NewAppError(http.StatusForbidden, msg, "authorization")
}

func NewNotFoundError(msg string) *AppError {
	return NewAppError(http.StatusNotFound, msg, "not-found")
}

// NewConsistencyError reports a counter invariant that would be violated,
// e.g. a building resize below current occupancy.
func NewConsistencyError(msg, field string) *AppError {
	return NewAppError(http.StatusConflict, msg, field)
}

func NewInternalError(msg, field string) *AppError {
	return NewAppError(http.StatusInternalServerError, msg, field)
}

func (e *AppError) IsAuthorization() bool {
	return e != nil && e.Code == http.StatusForbidden
}

func (e *AppError) IsConsistency() bool {
	return e != nil && e.Code == http.StatusConflict
}
