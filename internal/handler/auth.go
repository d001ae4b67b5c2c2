package handler

import (
	"net/http"

	"github.com/krisban/krisban/internal/domain"
	"github.com/krisban/krisban/internal/middleware"
)

type loginRequest struct {
	StudentNumber string `json:"studentNumber" validate:"required"`
	Password      string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}

// passwordChangeRequiredResponse is the 403 body for a pending first login.
// TempToken is the 15-minute reset token, good for change-password only.
type passwordChangeRequiredResponse struct {
	RequiresPasswordChange bool           `json:"requiresPasswordChange"`
	TempToken              string         `json:"tempToken"`
	User                   domain.Profile `json:"user"`
}

// POST /v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	result, err := h.auth.Login(req.StudentNumber, req.Password)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if result.RequiresPasswordChange {
		writeJSON(w, http.StatusForbidden, passwordChangeRequiredResponse{
			RequiresPasswordChange: true,
			TempToken:              result.Token,
			User:                   result.User,
		})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: result.Token, User: result.User})
}

type changePasswordRequest struct {
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// POST /v1/auth/change-password
// Reachable with either token tier; the account comes from the verified
// claims, never from the body.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	result, err := h.auth.ChangePassword(claims.AccountId, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: result.Token, User: result.User})
}

type meResponse struct {
	User domain.Profile `json:"user"`
}

// GET /v1/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	profile, err := h.auth.Me(claims.AccountId)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: profile})
}
