package handler

import (
	"net/http"

	"github.com/krisban/krisban/internal/domain"
	"github.com/krisban/krisban/internal/middleware"
)

type planRequest struct {
	Objective string `json:"objective" validate:"required"`
}

// POST /v1/sprints/{sprint}/plans
func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	sprintId, err := uuidParam(r, "sprint")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var req planRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	plan, err := h.plans.Create(domain.TeamPlan{
		SprintId:  sprintId,
		AccountId: claims.AccountId,
		Objective: req.Objective,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

// GET /v1/sprints/{sprint}/plans
func (h *Handler) GetPlans(w http.ResponseWriter, r *http.Request) {
	sprintId, err := uuidParam(r, "sprint")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	plans, err := h.plans.ListBySprint(sprintId)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plans)
}

// PUT /v1/plans/{id}
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	var req planRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	err = h.plans.Update(domain.TeamPlan{Id: id, Objective: req.Objective},
		claims.AccountId, claims.Role == domain.RoleAdmin)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DELETE /v1/plans/{id}
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id, err := uuidParam(r, "id")
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	if err := h.plans.Delete(id, claims.AccountId, claims.Role == domain.RoleAdmin); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
