package handler

import (
	"net/http"

	"github.com/krisban/krisban/internal/domain"
	"github.com/krisban/krisban/internal/service"
)

type registerRequest struct {
	StudentNumber string `json:"studentNumber" validate:"required"`
	FirstName     string `json:"firstName" validate:"required"`
	LastName      string `json:"lastName" validate:"required"`
	TempPassword  string `json:"tempPassword" validate:"required"`
	Role          string `json:"role"`
}

// POST /v1/admin/accounts
func (h *Handler) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	profile, err := h.accounts.Register(service.Registration{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		TempPassword:  req.TempPassword,
		Role:          domain.Role(req.Role),
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// GET /v1/admin/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.accounts.List()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// PATCH /v1/admin/accounts/{id}/active
func (h *Handler) SetAccountActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var req setActiveRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.accounts.SetActive(id, *req.IsActive); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
