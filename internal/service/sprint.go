package service

import (
	"unicode/utf8"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
)

type SprintService interface {
	Create(sprint domain.Sprint) (domain.Sprint, error)
	List() ([]domain.Sprint, error)
	Update(sprint domain.Sprint) error
	Delete(id domain.SprintId) error
}

type SprintStorage interface {
	SaveSprint(sprint domain.Sprint) (domain.SprintId, error)
	SprintById(id domain.SprintId) (domain.Sprint, error)
	Sprints() ([]domain.Sprint, error)
	UpdateSprint(sprint domain.Sprint) error
	DeleteSprint(id domain.SprintId) error
}

type Sprint struct {
	storage SprintStorage
}

func NewSprint(storage SprintStorage) *Sprint {
	return &Sprint{storage: storage}
}

func validateSprint(sprint domain.Sprint) error {
	if sprint.Name == "" {
		return internal_errors.Validation("Sprint name is required")
	}
	if utf8.RuneCountInString(sprint.Name) > 100 {
		return internal_errors.Validation("Sprint name is too long")
	}
	if sprint.EndDate.Before(sprint.StartDate) {
		return internal_errors.Validation("Sprint end date must not precede start date")
	}
	return nil
}

func (s *Sprint) Create(sprint domain.Sprint) (domain.Sprint, error) {
	if err := validateSprint(sprint); err != nil {
		return domain.Sprint{}, err
	}
	id, err := s.storage.SaveSprint(sprint)
	if err != nil {
		return domain.Sprint{}, err
	}
	return s.storage.SprintById(id)
}

func (s *Sprint) List() ([]domain.Sprint, error) {
	return s.storage.Sprints()
}

func (s *Sprint) Update(sprint domain.Sprint) error {
	if err := validateSprint(sprint); err != nil {
		return err
	}
	return s.storage.UpdateSprint(sprint)
}

func (s *Sprint) Delete(id domain.SprintId) error {
	return s.storage.DeleteSprint(id)
}
