package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/repository"
	"zurnaWorkshop/internal/service"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Notice *models.Notice    `json:"notice,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeNotice(w http.ResponseWriter, notice models.Notice, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: notice.Description, Notice: &notice}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// statusFor maps service and repository errors to HTTP status codes.
func statusFor(err error) int {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrNotAnImage),
		errors.Is(err, service.ErrMissingSelection):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case service.IsAuthError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
