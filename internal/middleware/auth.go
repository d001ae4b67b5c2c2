package middleware

import (
	"context"
	"net/http"
	"strings"

	internal_errors "github.com/krisban/krisban/internal/errors"
	"github.com/krisban/krisban/internal/jwt"
)

// Key to store the token claims in the request context
type key int

const tokenClaimsKey key = 0

type TokenDecoder interface {
	DecodeSession(tokenStr string) (*jwt.Claims, error)
	DecodePasswordChange(tokenStr string) (*jwt.Claims, error)
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", internal_errors.Unauthorized("Missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", internal_errors.Unauthorized("Invalid authorization header")
	}
	return parts[1], nil
}

func auth(decode func(string) (*jwt.Claims, error), adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := bearerToken(r)
			if err != nil {
				http.Error(w, err.Error(), internal_errors.StatusCode(err))
				return
			}

			claims, err := decode(tokenStr)
			if err != nil {
				http.Error(w, err.Error(), internal_errors.StatusCode(err))
				return
			}

			if adminOnly && claims.Role != "ADMIN" {
				http.Error(w, "Admins only", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), tokenClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Session admits full session tokens only. A password-reset token is
// rejected here even when its signature and expiry are valid.
func Session(tokens TokenDecoder) func(http.Handler) http.Handler {
	return auth(tokens.DecodeSession, false)
}

// AdminOnly admits session tokens whose account carries the ADMIN role.
func AdminOnly(tokens TokenDecoder) func(http.Handler) http.Handler {
	return auth(tokens.DecodeSession, true)
}

// PasswordChange admits both tiers; the change-password endpoint is the only
// operation a reset token can reach.
func PasswordChange(tokens TokenDecoder) func(http.Handler) http.Handler {
	return auth(tokens.DecodePasswordChange, false)
}

// ClaimsFromContext retrieves the verified claims stored by the auth middleware.
func ClaimsFromContext(r *http.Request) *jwt.Claims {
	claims, ok := r.Context().Value(tokenClaimsKey).(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
