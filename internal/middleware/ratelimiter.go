package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/krisban/krisban/internal/middleware/ratelimiter"
)

func RateLimit(rl *ratelimiter.UserRateLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetIP extracts the client IP from RemoteAddr. X-Real-IP and
// X-Forwarded-For are not trusted (no reverse proxy assumed).
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}

	return ip, nil
}

// GetAccountFromContext identifies the caller by account id; possible only
// after the auth middleware ran.
func GetAccountFromContext(r *http.Request) (string, error) {
	claims := ClaimsFromContext(r)
	if claims == nil {
		return "", fmt.Errorf("can't get account id")
	}
	return "account_" + claims.AccountId.String(), nil
}
