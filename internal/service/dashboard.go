package service

import "github.com/krisban/krisban/internal/domain"

type DashboardService interface {
	Counts() (domain.DashboardCounts, error)
}

type DashboardStorage interface {
	DashboardCounts() (domain.DashboardCounts, error)
}

type Dashboard struct {
	storage DashboardStorage
}

func NewDashboard(storage DashboardStorage) *Dashboard {
	return &Dashboard{storage: storage}
}

func (s *Dashboard) Counts() (domain.DashboardCounts, error) {
	return s.storage.DashboardCounts()
}
