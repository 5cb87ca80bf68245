// Package bookings exposes booking reads and payment-proof uploads. Bookings
// are created by lead conversion.
package bookings

import (
	"umroh_travel_backend/internal/adapters/storage"
	"umroh_travel_backend/internal/bookings/handler"
	"umroh_travel_backend/internal/bookings/repository"
	"umroh_travel_backend/internal/bookings/service"
	apphttp "umroh_travel_backend/internal/http"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
}

// NewModule wires the bookings context. uploader may be nil.
func NewModule(pool *pgxpool.Pool, uploader storage.Uploader, paymentProofBucket string, val *validator.Validator, policy *permissions.Policy, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, uploader, paymentProofBucket, log.WithModule("bookings"))

	return &Module{
		handler: handler.New(svc, val, policy),
		repo:    repo,
	}
}

func (m *Module) Name() string {
	return "bookings"
}

// Repository returns the booking reader used by document generation.
func (m *Module) Repository() *repository.Repo {
	return m.repo
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Staff.Group("/bookings"))
}

var _ apphttp.Module = (*Module)(nil)
