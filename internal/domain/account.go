package domain

import (
	"time"

	"github.com/google/uuid"
)

type AccountId = uuid.UUID

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Account is the authenticated principal. PassHash never leaves the
// service layer: every outbound representation goes through Profile().
type Account struct {
	Id            AccountId
	StudentNumber string
	FirstName     string
	LastName      string
	PassHash      string
	Role          Role
	IsFirstLogin  bool
	IsActive      bool
	CreatedAt     time.Time
}

// Profile is the public view of an account.
type Profile struct {
	Id            AccountId `json:"id"`
	StudentNumber string    `json:"studentNumber"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Role          Role      `json:"role"`
	IsFirstLogin  bool      `json:"isFirstLogin"`
	IsActive      bool      `json:"isActive"`
}

func (a *Account) Profile() Profile {
	return Profile{
		Id:            a.Id,
		StudentNumber: a.StudentNumber,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Role:          a.Role,
		IsFirstLogin:  a.IsFirstLogin,
		IsActive:      a.IsActive,
	}
}
