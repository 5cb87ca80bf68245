// Package documents generates the booking PDFs (invoice, e-ticket,
// certificate, statement letter) and keeps them in object storage.
package documents

import (
	"umroh_travel_backend/internal/adapters/storage"
	"umroh_travel_backend/internal/documents/handler"
	"umroh_travel_backend/internal/documents/ports"
	"umroh_travel_backend/internal/documents/repository"
	"umroh_travel_backend/internal/documents/service"
	"umroh_travel_backend/internal/events"
	apphttp "umroh_travel_backend/internal/http"
	"umroh_travel_backend/internal/pdf"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/platform/config"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ModuleConfig is the configuration the documents module reads.
type ModuleConfig interface {
	config.AgencyConfig
	config.LocaleConfig
	GetMinioBucketDocuments() string
}

type Module struct {
	handler *handler.Handler
}

// NewModule wires document generation. store may be nil.
func NewModule(pool *pgxpool.Pool, bookings ports.BookingReader, store storage.ObjectStore, eventBus events.Bus, val *validator.Validator, policy *permissions.Policy, cfg ModuleConfig, log *logger.Logger) *Module {
	agency := service.Agency{
		Letterhead: pdf.Letterhead{
			AgencyName:    cfg.GetAgencyName(),
			Address:       cfg.GetAgencyAddress(),
			Phone:         cfg.GetAgencyPhone(),
			Email:         cfg.GetAgencyEmail(),
			LicenseNumber: cfg.GetAgencyLicenseNumber(),
		},
		City: cfg.GetAgencyCity(),
	}
	svc := service.New(repository.New(pool), bookings, store, cfg.GetMinioBucketDocuments(), agency, eventBus,
		cfg.GetLocation(), log.WithModule("documents"))

	return &Module{handler: handler.New(svc, val, policy)}
}

func (m *Module) Name() string {
	return "documents"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Staff.Group("/documents"))
}

var _ apphttp.Module = (*Module)(nil)
