package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"zurnaWorkshop/internal/functions"
	"zurnaWorkshop/internal/models"
)

func setFunctionCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

// SendContactEmail is the serverless contact function: it stores the
// submitted message and answers with {success, message} or {success, error}.
func (h *Handlers) SendContactEmail(w http.ResponseWriter, r *http.Request) {
	setFunctionCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		writeSuccess(w, functions.ContactResponse{Error: "Method not allowed"}, http.StatusMethodNotAllowed)
		return
	}

	var req functions.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSuccess(w, functions.ContactResponse{Error: "Invalid request format"}, http.StatusInternalServerError)
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := h.Messages.Create(r.Context(), message); err != nil {
		zap.S().Errorw("failed to store contact message", "error", err)
		writeSuccess(w, functions.ContactResponse{Error: err.Error()}, http.StatusInternalServerError)
		return
	}

	zap.S().Infow("contact message stored", "id", message.ID, "subject", message.Subject)

	writeSuccess(w, functions.ContactResponse{
		Success: true,
		Message: "Mesajınız başarıyla kaydedildi",
	}, http.StatusOK)
}
