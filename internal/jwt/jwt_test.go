package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krisban/krisban/internal/domain"
)

func testAccount(role domain.Role) *domain.Account {
	return &domain.Account{
		Id:            uuid.New(),
		StudentNumber: "202311645",
		Role:          role,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	j := New("test-secret", time.Hour)
	account := testAccount(domain.RoleUser)

	tokenStr, err := j.NewSessionToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := j.DecodeSession(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, account.Id, claims.AccountId)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, UseSession, claims.Use)
}

func TestResetTokenRejectedAsSession(t *testing.T) {
	j := New("test-secret", time.Hour)
	account := testAccount(domain.RoleUser)

	tokenStr, err := j.NewPasswordResetToken(account)
	require.NoError(t, err)

	// A reset token is a different capability, not a short session.
	_, err = j.DecodeSession(tokenStr)
	assert.Error(t, err)

	claims, err := j.DecodePasswordChange(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, UsePasswordReset, claims.Use)
	assert.Equal(t, account.Id, claims.AccountId)
}

func TestSessionTokenAcceptedForPasswordChange(t *testing.T) {
	j := New("test-secret", time.Hour)

	tokenStr, err := j.NewSessionToken(testAccount(domain.RoleAdmin))
	require.NoError(t, err)

	claims, err := j.DecodePasswordChange(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, UseSession, claims.Use)
}

func TestResetTokenExpiry(t *testing.T) {
	j := New("test-secret", time.Hour)
	account := testAccount(domain.RoleUser)

	tokenStr, err := j.NewPasswordResetToken(account)
	require.NoError(t, err)

	claims, err := j.DecodePasswordChange(tokenStr)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, ResetTokenTTL, ttl)
}

func TestExpiredTokenRejected(t *testing.T) {
	j := New("test-secret", -time.Minute)

	tokenStr, err := j.NewSessionToken(testAccount(domain.RoleUser))
	require.NoError(t, err)

	_, err = j.DecodeSession(tokenStr)
	assert.Error(t, err)
}

func TestWrongKeyRejected(t *testing.T) {
	j := New("test-secret", time.Hour)
	other := New("other-secret", time.Hour)

	tokenStr, err := j.NewSessionToken(testAccount(domain.RoleUser))
	require.NoError(t, err)

	_, err = other.DecodeSession(tokenStr)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	j := New("test-secret", time.Hour)

	for _, tokenStr := range []string{"", "not-a-token", "a.b.c"} {
		_, err := j.DecodeSession(tokenStr)
		assert.Error(t, err, "token %q", tokenStr)
	}
}
