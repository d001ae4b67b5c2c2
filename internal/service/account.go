package service

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
	"github.com/krisban/krisban/internal/logger"
)

type AccountService interface {
	Register(reg Registration) (domain.Profile, error)
	List() ([]domain.Profile, error)
	SetActive(id domain.AccountId, active bool) error
}

// Registration is an admin-created account. The temporary password must be
// changed on first login before the member gets a session.
type Registration struct {
	StudentNumber string
	FirstName     string
	LastName      string
	TempPassword  string
	Role          domain.Role
}

type Accounts struct {
	storage AccountStorage
}

func NewAccounts(storage AccountStorage) *Accounts {
	return &Accounts{storage: storage}
}

func (s *Accounts) Register(reg Registration) (domain.Profile, error) {
	if reg.StudentNumber == "" {
		return domain.Profile{}, internal_errors.Validation("Student number is required")
	}
	if len(reg.TempPassword) < MinPasswordLen {
		return domain.Profile{}, internal_errors.Validation("Password must be at least 6 characters")
	}
	if reg.Role != domain.RoleAdmin && reg.Role != domain.RoleUser {
		reg.Role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.TempPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.Profile{}, err
	}

	account := domain.Account{
		StudentNumber: reg.StudentNumber,
		FirstName:     reg.FirstName,
		LastName:      reg.LastName,
		PassHash:      string(hash),
		Role:          reg.Role,
		IsFirstLogin:  true,
		IsActive:      true,
	}

	id, err := s.storage.SaveAccount(account)
	if err != nil {
		return domain.Profile{}, err
	}
	account.Id = id
	return account.Profile(), nil
}

func (s *Accounts) List() ([]domain.Profile, error) {
	accounts, err := s.storage.ListAccounts()
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(accounts))
	for i := range accounts {
		profiles = append(profiles, accounts[i].Profile())
	}
	return profiles, nil
}

func (s *Accounts) SetActive(id domain.AccountId, active bool) error {
	return s.storage.SetActive(id, active)
}
