// Package customers provides the traveller profile bounded context and the
// passport validity check against booked departures.
package customers

import (
	"umroh_travel_backend/internal/customers/handler"
	"umroh_travel_backend/internal/customers/repository"
	"umroh_travel_backend/internal/customers/service"
	apphttp "umroh_travel_backend/internal/http"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/platform/config"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator, policy *permissions.Policy, cfg config.LocaleConfig, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg.GetLocation(), cfg.GetDefaultPhoneRegion(), log.WithModule("customers"))

	return &Module{
		handler: handler.New(svc, val, policy),
		service: svc,
		repo:    repo,
	}
}

func (m *Module) Name() string {
	return "customers"
}

// Repository returns the customer store for adapters.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Staff.Group("/customers"))
}

var _ apphttp.Module = (*Module)(nil)
