package leads

import (
	"umroh_travel_backend/internal/events"
	apphttp "umroh_travel_backend/internal/http"
	"umroh_travel_backend/internal/leads/analytics"
	"umroh_travel_backend/internal/leads/conversion"
	"umroh_travel_backend/internal/leads/handler"
	"umroh_travel_backend/internal/leads/management"
	"umroh_travel_backend/internal/leads/notes"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/internal/permissions"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler    *handler.Handler
	analytics  *handler.AnalyticsHandler
	repo       *repository.Repository
	management *management.Service
	conversion *conversion.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
// scheduler may be nil when Redis is not configured; follow-up dates are then
// stored without queuing a reminder.
func NewModule(
	pool *pgxpool.Pool,
	eventBus events.Bus,
	val *validator.Validator,
	policy *permissions.Policy,
	departures ports.DepartureReader,
	scheduler ports.FollowUpScheduler,
	cfg ModuleConfig,
	log *logger.Logger,
) *Module {
	log = log.WithModule("leads")
	loc := cfg.GetLocation()
	repo := repository.New(pool)

	// Focused services (vertical slices) sharing one repository
	mgmtSvc := management.New(repo, eventBus, scheduler, cfg.GetDefaultPhoneRegion(), log)
	notesSvc := notes.New(repo, eventBus, scheduler, log)
	conversionSvc := conversion.New(repo, departures, eventBus, loc, log)
	analyticsSvc := analytics.NewService(repo, loc)

	return &Module{
		handler:    handler.New(mgmtSvc, notesSvc, conversionSvc, val, policy),
		analytics:  handler.NewAnalytics(analyticsSvc, val, policy),
		repo:       repo,
		management: mgmtSvc,
		conversion: conversionSvc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Repository exposes the lead store to the scheduler worker.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// ManagementService returns the lead CRUD and status service.
func (m *Module) ManagementService() *management.Service {
	return m.management
}

// ConversionService returns the lead-to-booking conversion service.
func (m *Module) ConversionService() *conversion.Service {
	return m.conversion
}

// RegisterRoutes mounts lead routes on the back-office group.
// The dashboard lives outside /leads so it cannot collide with /leads/:id.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Staff.Group("/leads"))
	m.analytics.RegisterRoutes(ctx.Staff.Group("/analytics/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
