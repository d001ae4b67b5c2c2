package service

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
)

func TestRegisterHashesTempPasswordAndFlagsFirstLogin(t *testing.T) {
	var saved domain.Account
	storage := &mockAccountStorage{
		SaveAccountFunc: func(account domain.Account) (domain.AccountId, error) {
			saved = account
			return uuid.New(), nil
		},
	}
	svc := NewAccounts(storage)

	profile, err := svc.Register(Registration{
		StudentNumber: "202311645",
		FirstName:     "Kris",
		LastName:      "Ban",
		TempPassword:  "TempPass1",
		Role:          domain.RoleUser,
	})
	require.NoError(t, err)

	assert.True(t, saved.IsFirstLogin)
	assert.True(t, saved.IsActive)
	assert.NotEqual(t, "TempPass1", saved.PassHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PassHash), []byte("TempPass1")))
	assert.True(t, profile.IsFirstLogin)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAccounts(&mockAccountStorage{})

	_, err := svc.Register(Registration{TempPassword: "TempPass1"})
	assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))

	_, err = svc.Register(Registration{StudentNumber: "202311645", TempPassword: "abc"})
	assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
}

func TestRegisterDefaultsUnknownRoleToUser(t *testing.T) {
	var saved domain.Account
	storage := &mockAccountStorage{
		SaveAccountFunc: func(account domain.Account) (domain.AccountId, error) {
			saved = account
			return uuid.New(), nil
		},
	}

	_, err := NewAccounts(storage).Register(Registration{
		StudentNumber: "202311645",
		TempPassword:  "TempPass1",
		Role:          domain.Role("SUPERUSER"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, saved.Role)
}
