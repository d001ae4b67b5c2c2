package handler

import (
	"net/http"
	"time"

	"github.com/krisban/krisban/internal/domain"
	"github.com/krisban/krisban/internal/middleware"
)

type reportRequest struct {
	ReportDate time.Time `json:"reportDate" validate:"required"`
	Content    string    `json:"content" validate:"required"`
}

// POST /v1/reports
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r)
	if claims == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var req reportRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	report, err := h.reports.Create(domain.Report{
		AccountId:  claims.AccountId,
		ReportDate: req.ReportDate,
		Content:    req.Content,
	})
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

// GET /v1/reports, optionally filtered with ?account=<id>
func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	if accountParam := r.URL.Query().Get("account"); accountParam != "" {
		accountId, err := parseAccountParam(accountParam)
		if err != nil {
			writeErrorAndStatusCode(w, err)
			return
		}
		reports, err := h.reports.ListByAccount(accountId)
		if err != nil {
			writeErrorAndStatusCode(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reports)
		return
	}

	reports, err := h.reports.List()
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

// PUT /v1/reports/{id}
func (h *Handler) UpdateReport(w http.ResponseWriter, r *http.Request) {
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

	var req reportRequest
	if err := decodeValidate(r.Body, &req); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	err = h.reports.Update(domain.Report{Id: id, ReportDate: req.ReportDate, Content: req.Content},
		claims.AccountId, claims.Role == domain.RoleAdmin)
	if err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DELETE /v1/reports/{id}
func (h *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
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

	if err := h.reports.Delete(id, claims.AccountId, claims.Role == domain.RoleAdmin); err != nil {
		writeErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
