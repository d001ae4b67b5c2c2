package setup

import (
	"github.com/krisban/krisban/internal/config"
	"github.com/krisban/krisban/internal/handler"
	"github.com/krisban/krisban/internal/jwt"
	"github.com/krisban/krisban/internal/service"
	"github.com/krisban/krisban/internal/storage/pg"
)

// Dependencies holds all initialized application dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *pg.Storage
	Handler *handler.Handler
	Tokens  *jwt.Jwt
}

// SetupDependencies initializes everything the router needs.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	tokens := jwt.New(cfg.JwtKey(), cfg.SessionTTL())

	auth := service.NewAuth(storage, tokens)
	accounts := service.NewAccounts(storage)
	sprints := service.NewSprint(storage)
	plans := service.NewPlan(storage)
	reports := service.NewReport(storage)
	dashboard := service.NewDashboard(storage)

	h := handler.New(auth, accounts, sprints, plans, reports, dashboard, storage)

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: h,
		Tokens:  tokens,
	}, nil
}
