package service

import (
	"unicode/utf8"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
)

type PlanService interface {
	Create(plan domain.TeamPlan) (domain.TeamPlan, error)
	ListBySprint(sprintId domain.SprintId) ([]domain.TeamPlan, error)
	Update(plan domain.TeamPlan, requester domain.AccountId, admin bool) error
	Delete(id domain.PlanId, requester domain.AccountId, admin bool) error
}

type PlanStorage interface {
	SavePlan(plan domain.TeamPlan) (domain.PlanId, error)
	PlanById(id domain.PlanId) (domain.TeamPlan, error)
	PlansBySprint(sprintId domain.SprintId) ([]domain.TeamPlan, error)
	UpdatePlan(plan domain.TeamPlan) error
	DeletePlan(id domain.PlanId) error
}

type Plan struct {
	storage PlanStorage
}

func NewPlan(storage PlanStorage) *Plan {
	return &Plan{storage: storage}
}

func validateObjective(objective string) error {
	if objective == "" {
		return internal_errors.Validation("Objective is required")
	}
	if utf8.RuneCountInString(objective) > 2_000 {
		return internal_errors.Validation("Objective is too long")
	}
	return nil
}

func (s *Plan) Create(plan domain.TeamPlan) (domain.TeamPlan, error) {
	if err := validateObjective(plan.Objective); err != nil {
		return domain.TeamPlan{}, err
	}
	id, err := s.storage.SavePlan(plan)
	if err != nil {
		return domain.TeamPlan{}, err
	}
	return s.storage.PlanById(id)
}

func (s *Plan) ListBySprint(sprintId domain.SprintId) ([]domain.TeamPlan, error) {
	return s.storage.PlansBySprint(sprintId)
}

// Update allows members to edit their own entries; admins edit any.
func (s *Plan) Update(plan domain.TeamPlan, requester domain.AccountId, admin bool) error {
	if err := validateObjective(plan.Objective); err != nil {
		return err
	}
	existing, err := s.storage.PlanById(plan.Id)
	if err != nil {
		return err
	}
	if !admin && existing.AccountId != requester {
		return internal_errors.Forbidden("Can't edit another member's plan")
	}
	return s.storage.UpdatePlan(plan)
}

func (s *Plan) Delete(id domain.PlanId, requester domain.AccountId, admin bool) error {
	existing, err := s.storage.PlanById(id)
	if err != nil {
		return err
	}
	if !admin && existing.AccountId != requester {
		return internal_errors.Forbidden("Can't delete another member's plan")
	}
	return s.storage.DeletePlan(id)
}
