package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/krisban/krisban/internal/domain"
	internal_errors "github.com/krisban/krisban/internal/errors"
	"github.com/krisban/krisban/internal/logger"
)

// TokenUse discriminates the two credential tiers. A password-reset token is
// not a short session token: it is a different capability, checked at parse
// time, and only the change-password operation accepts it.
type TokenUse string

const (
	UseSession       TokenUse = "session"
	UsePasswordReset TokenUse = "password_reset"
)

// ResetTokenTTL is the fixed lifetime of a password-reset token.
const ResetTokenTTL = 15 * time.Minute

type Claims struct {
	AccountId domain.AccountId `json:"uid"`
	Role      domain.Role      `json:"role"`
	Use       TokenUse         `json:"token_use"`
	jwt.RegisteredClaims
}

type TokenService interface {
	NewSessionToken(account *domain.Account) (string, error)
	NewPasswordResetToken(account *domain.Account) (string, error)
	// DecodeSession accepts session tokens only.
	DecodeSession(tokenStr string) (*Claims, error)
	// DecodePasswordChange accepts either tier; change-password is the one
	// operation a reset token is good for.
	DecodePasswordChange(tokenStr string) (*Claims, error)
}

type Jwt struct {
	secretKey  string
	sessionTTL time.Duration
}

func New(secretKey string, sessionTTL time.Duration) *Jwt {
	return &Jwt{secretKey, sessionTTL}
}

func (j *Jwt) newToken(account *domain.Account, use TokenUse, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		AccountId: account.Id,
		Role:      account.Role,
		Use:       use,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "error", err)
		return "", internal_errors.Unauthorized("Can't create token")
	}
	return tokenString, nil
}

func (j *Jwt) NewSessionToken(account *domain.Account) (string, error) {
	return j.newToken(account, UseSession, j.sessionTTL)
}

func (j *Jwt) NewPasswordResetToken(account *domain.Account) (string, error) {
	return j.newToken(account, UsePasswordReset, ResetTokenTTL)
}

func (j *Jwt) decode(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, internal_errors.Unauthorized("Unexpected signing method")
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, internal_errors.Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal_errors.Unauthorized("Invalid token")
	}
	return claims, nil
}

func (j *Jwt) DecodeSession(tokenStr string) (*Claims, error) {
	claims, err := j.decode(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Use != UseSession {
		// A structurally valid reset token grants no session privileges.
		return nil, internal_errors.Unauthorized("Invalid token")
	}
	return claims, nil
}

func (j *Jwt) DecodePasswordChange(tokenStr string) (*Claims, error) {
	claims, err := j.decode(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Use != UseSession && claims.Use != UsePasswordReset {
		return nil, internal_errors.Unauthorized("Invalid token")
	}
	return claims, nil
}
