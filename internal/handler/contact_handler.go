package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/service"
)

type ContactErrorResponse struct {
	Success bool                `json:"success"`
	Fields  map[string]string   `json:"fields,omitempty"`
	Notice  *models.Notice      `json:"notice,omitempty"`
	Form    service.ContactForm `json:"form"`
}

// SubmitContact answers 400 with per-field messages when the form is
// invalid, 502 when the relay or the contact function failed and 200 with a
// cleared form otherwise.
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var form service.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	result, err := h.Contact.Submit(r.Context(), form)
	if err != nil {
		var validationErr *service.ValidationError
		if errors.As(err, &validationErr) {
			writeSuccess(w, ContactErrorResponse{Fields: validationErr.Fields, Form: form}, http.StatusBadRequest)
			return
		}

		writeSuccess(w, ContactErrorResponse{Notice: &result.Notice, Form: result.Form}, http.StatusBadGateway)
		return
	}

	writeSuccess(w, result, http.StatusOK)
}
