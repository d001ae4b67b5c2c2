package handler

import (
	"net/http"
	"time"

	"github.com/krisban/krisban/internal/domain"
)

type sprintRequest struct {
	Name      string    `json:"name" validate:"required"`
	Goal      string    `json:"goal"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	IsActive  bool      `json:"isActive"`
}

// POST /v1/sprints (admin)
func (h *Handler) CreateSprint(w http.ResponseWriter, r *http.Request) {
	var req sprintRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	sprint, err := h.sprints.Create(domain.Sprint{
		Name:      req.Name,
		Goal:      req.Goal,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sprint)
}

// GET /v1/sprints
func (h *Handler) GetSprints(w http.ResponseWriter, r *http.Request) {
	sprints, err := h.sprints.List()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sprints)
}

// PUT /v1/sprints/{id} (admin)
func (h *Handler) UpdateSprint(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var req sprintRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	err = h.sprints.Update(domain.Sprint{
		Id:        id,
		Name:      req.Name,
		Goal:      req.Goal,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsActive:  req.IsActive,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DELETE /v1/sprints/{id} (admin)
func (h *Handler) DeleteSprint(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.sprints.Delete(id); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
