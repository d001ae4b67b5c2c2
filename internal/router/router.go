package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/krisban/krisban/internal/middleware"
	rl "github.com/krisban/krisban/internal/middleware/ratelimiter"
	"github.com/krisban/krisban/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	cfg := deps.Config
	h := deps.Handler
	tokens := deps.Tokens

	// CORS for the React SPA
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Public.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(mw.SecurityHeaders(cfg.Public.SecureCookies))
	r.Use(mw.Metrics)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Credential-bearing endpoints get per-IP rate limits.
			r.With(mw.RateLimit(rl.New(1, 3, 1*time.Hour), mw.GetIP)).
				Post("/login", h.Login)
			r.With(mw.PasswordChange(tokens), mw.RateLimit(rl.New(1, 3, 1*time.Hour), mw.GetIP)).
				Post("/change-password", h.ChangePassword)
			r.With(mw.Session(tokens)).Get("/me", h.Me)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.AdminOnly(tokens))
			r.Post("/accounts", h.RegisterAccount)
			r.Get("/accounts", h.ListAccounts)
			r.Patch("/accounts/{id}/active", h.SetAccountActive)
		})

		// Session-holder routes
		r.Group(func(r chi.Router) {
			r.Use(mw.Session(tokens))
			r.Use(mw.RateLimit(rl.New(5, 50, 1*time.Hour), mw.GetAccountFromContext))

			r.Get("/dashboard", h.GetDashboard)

			r.Get("/sprints", h.GetSprints)
			r.With(mw.AdminOnly(tokens)).Post("/sprints", h.CreateSprint)
			r.With(mw.AdminOnly(tokens)).Put("/sprints/{id}", h.UpdateSprint)
			r.With(mw.AdminOnly(tokens)).Delete("/sprints/{id}", h.DeleteSprint)

			r.Get("/sprints/{sprint}/plans", h.GetPlans)
			r.Post("/sprints/{sprint}/plans", h.CreatePlan)
			r.Put("/plans/{id}", h.UpdatePlan)
			r.Delete("/plans/{id}", h.DeletePlan)

			r.Get("/reports", h.GetReports)
			r.Post("/reports", h.CreateReport)
			r.Put("/reports/{id}", h.UpdateReport)
			r.Delete("/reports/{id}", h.DeleteReport)
		})
	})

	return r
}
