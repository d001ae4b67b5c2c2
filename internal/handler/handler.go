package handler

import (
	"context"

	"github.com/krisban/krisban/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth      service.AuthService
	accounts  service.AccountService
	sprints   service.SprintService
	plans     service.PlanService
	reports   service.ReportService
	dashboard service.DashboardService
	health    Pinger
}

func New(
	auth service.AuthService,
	accounts service.AccountService,
	sprints service.SprintService,
	plans service.PlanService,
	reports service.ReportService,
	dashboard service.DashboardService,
	health Pinger,
) *Handler {
	return &Handler{auth, accounts, sprints, plans, reports, dashboard, health}
}
