// Package catalog provides the catalog bounded context module: umroh and
// hajj packages and their scheduled departures.
package catalog

import (
	"time"

	"umroh_travel_backend/internal/catalog/handler"
	"umroh_travel_backend/internal/catalog/repository"
	"umroh_travel_backend/internal/catalog/service"
	apphttp "umroh_travel_backend/internal/http"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repo
	policy  *permissions.Policy
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, policy *permissions.Policy, loc *time.Location, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, loc, log.WithModule("catalog"))

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
		repo:    repo,
		policy:  policy,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapters and the worker.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	read := m.policy.Require(permissions.CatalogRead)
	write := m.policy.Require(permissions.CatalogWrite)

	g := ctx.Staff.Group("/catalog")
	g.GET("/packages", read, m.handler.ListPackages)
	g.GET("/packages/:id", read, m.handler.GetPackageByID)
	g.GET("/packages/:id/departures", read, m.handler.ListDepartures)
	g.GET("/departures/:id", read, m.handler.GetDepartureByID)

	g.POST("/packages", write, m.handler.CreatePackage)
	g.PUT("/packages/:id", write, m.handler.UpdatePackage)
	g.POST("/packages/:id/departures", write, m.handler.CreateDeparture)
	g.PATCH("/departures/:id/status", write, m.handler.UpdateDepartureStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
