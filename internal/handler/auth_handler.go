package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"zurnaWorkshop/internal/models"
	"zurnaWorkshop/internal/service"
)

type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordUpdateRequest struct {
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type SessionResponse struct {
	service.AuthView
	User *models.User `json:"user,omitempty"`
}

func (h *Handlers) SignIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CredentialsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.AuthFlow.SignIn(r.Context(), req.Email, req.Password)
	h.writeAuthResult(w, r, result, err)
}

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CredentialsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.AuthFlow.SignUp(r.Context(), req.Email, req.Password)
	h.writeAuthResult(w, r, result, err)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ResetRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.AuthFlow.RequestPasswordReset(r.Context(), req.Email)
	h.writeAuthResult(w, r, result, err)
}

// UpdatePassword completes a recovery. It needs the recovery session the
// reset link left in the cookie.
func (h *Handlers) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	current := h.Gateway.GetSession(r)
	if current == nil || !current.Recovery {
		WriteError(w, "Recovery session required", http.StatusUnauthorized)
		return
	}

	var req PasswordUpdateRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.AuthFlow.CompleteRecovery(r.Context(), current, req.Password, req.ConfirmPassword)
	h.writeAuthResult(w, r, result, err)
}

func (h *Handlers) SignOut(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result := h.AuthFlow.SignOut(r.Context(), h.Gateway.GetSession(r))
	h.writeAuthResult(w, r, result, nil)
}

// CurrentSession reports the auth view for the caller. The user is re-read
// so a deleted account shows as signed out.
func (h *Handlers) CurrentSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	current := h.Gateway.GetSession(r)

	var user *models.User
	if current != nil {
		fresh, err := h.Gateway.Auth.GetUser(r.Context(), current.AccessToken)
		if err != nil {
			zap.S().Warnw("session user could not be loaded", "error", err)
			current = nil
		} else {
			user = fresh
		}
	}

	response := SessionResponse{
		AuthView: service.View(service.StateOf(current), service.AuthMode(r.URL.Query().Get("mode"))),
		User:     user,
	}

	writeSuccess(w, response, http.StatusOK)
}

// RecoverLink is the target of the password reset mail. The recovery
// session replaces whatever the browser had and the auth page then shows
// the password form.
func (h *Handlers) RecoverLink(w http.ResponseWriter, r *http.Request) {
	result, err := h.AuthFlow.Recover(r.Context(), h.Gateway.GetSession(r), r.URL.Query().Get("token"))
	h.followAuthLink(w, r, result, err)
}

func (h *Handlers) ConfirmLink(w http.ResponseWriter, r *http.Request) {
	result, err := h.AuthFlow.ConfirmEmail(r.Context(), h.Gateway.GetSession(r), r.URL.Query().Get("token"))
	h.followAuthLink(w, r, result, err)
}

func (h *Handlers) followAuthLink(w http.ResponseWriter, r *http.Request, result *service.AuthResult, err error) {
	var noticeErr *service.NoticeError
	if errors.As(err, &noticeErr) {
		h.flash(w, r, noticeErr.Notice)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}
	if err != nil {
		zap.S().Errorw("auth link failed", "path", r.URL.Path, "error", err)
		http.Redirect(w, r, "/auth", http.StatusSeeOther)
		return
	}

	if result.Session != nil {
		if err := h.Gateway.PersistSession(w, r, result.Session); err != nil {
			zap.S().Errorw("failed to persist session", "error", err)
		}
	}
	if result.Notice != nil {
		h.flash(w, r, *result.Notice)
	}

	redirect := result.Redirect
	if redirect == "" {
		redirect = "/auth"
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *Handlers) writeAuthResult(w http.ResponseWriter, r *http.Request, result *service.AuthResult, err error) {
	if err != nil {
		var noticeErr *service.NoticeError
		if errors.As(err, &noticeErr) {
			writeNotice(w, noticeErr.Notice, statusFor(err))
			return
		}
		WriteError(w, err.Error(), statusFor(err))
		return
	}

	if result.ClearSession {
		if err := h.Gateway.SignOut(w, r); err != nil {
			zap.S().Errorw("failed to clear session", "error", err)
		}
	}
	if result.Session != nil {
		if err := h.Gateway.PersistSession(w, r, result.Session); err != nil {
			WriteError(w, "Failed to save session", http.StatusInternalServerError)
			return
		}
	}

	writeSuccess(w, result, http.StatusOK)
}

func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return false
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Invalid request data", http.StatusBadRequest)
		return false
	}

	return true
}

func (h *Handlers) flash(w http.ResponseWriter, r *http.Request, notice models.Notice) {
	if err := h.Gateway.Sessions.AddNotice(w, r, notice); err != nil {
		zap.S().Warnw("failed to store notice", "error", err)
	}
}
