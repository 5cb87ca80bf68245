// Package conversion turns an open lead into a customer with a pending
// booking on one of its package's departures.
package conversion

import (
	"context"
	"errors"
	"sort"
	"time"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/leads/domain"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/internal/leads/transport"
	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"

	"github.com/google/uuid"
)

// Repository is what conversion needs from the leads store.
type Repository interface {
	repository.LeadReader
	repository.LeadConverter
}

type Service struct {
	repo       Repository
	departures ports.DepartureReader
	eventBus   events.Bus
	loc        *time.Location
	log        *logger.Logger
	now        func() time.Time
}

// New creates the conversion service. loc is the agency timezone used to
// decide whether a departure is still in the future.
func New(repo Repository, departures ports.DepartureReader, eventBus events.Bus, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, departures: departures, eventBus: eventBus, loc: loc, log: log, now: time.Now}
}

// ListEligibleDepartures returns the departures a lead can be booked on:
// open, dated today or later, for the lead's package, soonest first.
func (s *Service) ListEligibleDepartures(ctx context.Context, leadID uuid.UUID) ([]transport.DepartureOption, error) {
	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.PackageID == nil {
		return nil, apperr.Validation("lead has no package of interest")
	}

	today := calendar.Date(s.now(), s.loc)
	deps, err := s.departures.ListOpenDepartures(ctx, *lead.PackageID, today)
	if err != nil {
		return nil, err
	}

	eligible := make([]ports.Departure, 0, len(deps))
	for _, d := range deps {
		if d.Status == ports.DepartureOpen && !d.DepartureDate.Before(today) && d.PackageID == *lead.PackageID && d.RemainingSeats() > 0 {
			eligible = append(eligible, d)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].DepartureDate.Before(eligible[j].DepartureDate)
	})

	out := make([]transport.DepartureOption, len(eligible))
	for i, d := range eligible {
		out[i] = transport.DepartureOption{
			ID:             d.ID,
			PackageName:    d.PackageName,
			DepartureDate:  d.DepartureDate.Format(time.DateOnly),
			ReturnDate:     d.ReturnDate.Format(time.DateOnly),
			Quota:          d.Quota,
			RemainingSeats: d.RemainingSeats(),
			PriceQuad:      d.PriceQuad,
		}
	}
	return out, nil
}

// Convert books the lead on departureID. The customer, the booking and the
// won status are written in one transaction; nothing is left behind when a
// step fails. A lead that is already won is rejected.
func (s *Service) Convert(ctx context.Context, leadID, departureID, actorID uuid.UUID) (transport.ConversionResponse, error) {
	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return transport.ConversionResponse{}, err
	}

	state, err := lead.State()
	if err != nil {
		return transport.ConversionResponse{}, domain.AsAppError(err)
	}
	switch state.(type) {
	case domain.Won:
		return transport.ConversionResponse{}, apperr.Conflict("lead is already converted")
	case domain.Lost:
		return transport.ConversionResponse{}, apperr.Validation("lead is lost; reactivate it before converting")
	}

	if lead.PackageID == nil {
		return transport.ConversionResponse{}, apperr.Validation("lead has no package of interest")
	}

	dep, err := s.departures.GetDeparture(ctx, departureID)
	if err != nil {
		if errors.Is(err, ports.ErrDepartureNotFound) {
			return transport.ConversionResponse{}, apperr.NotFound("departure not found")
		}
		return transport.ConversionResponse{}, err
	}
	if err := s.checkDeparture(dep, *lead.PackageID); err != nil {
		return transport.ConversionResponse{}, err
	}

	res, err := s.repo.ConvertLead(ctx, repository.ConvertParams{
		LeadID:         lead.ID,
		DepartureID:    dep.ID,
		ExpectedStatus: lead.Status,
		ActorID:        &actorID,
		ConvertedAt:    s.now(),
	})
	if err != nil {
		return transport.ConversionResponse{}, mapConvertError(err)
	}

	s.log.Info("lead converted", "leadId", lead.ID, "bookingId", res.BookingID, "bookingCode", res.BookingCode)
	s.eventBus.Publish(ctx, events.LeadConverted{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        res.LeadID,
		CustomerID:    res.CustomerID,
		BookingID:     res.BookingID,
		BookingCode:   res.BookingCode,
		DepartureID:   res.DepartureID,
		DepartureDate: res.DepartureDate,
		PackageName:   res.PackageName,
		TotalPrice:    res.TotalPrice,
		CustomerName:  res.CustomerName,
		CustomerEmail: derefString(res.CustomerEmail),
		ActorID:       actorID,
	})

	return transport.ConversionResponse{
		LeadID:        res.LeadID,
		CustomerID:    res.CustomerID,
		BookingID:     res.BookingID,
		BookingCode:   res.BookingCode,
		DepartureID:   res.DepartureID,
		DepartureDate: res.DepartureDate.Format(time.DateOnly),
		PackageName:   res.PackageName,
		TotalPrice:    res.TotalPrice,
		Status:        res.Status,
		CreatedAt:     res.CreatedAt,
	}, nil
}

func (s *Service) checkDeparture(dep ports.Departure, packageID uuid.UUID) error {
	if dep.PackageID != packageID {
		return apperr.Validation("departure does not belong to the lead's package")
	}
	if dep.Status != ports.DepartureOpen {
		return apperr.Validation("departure is not open for booking")
	}
	if dep.DepartureDate.Before(calendar.Date(s.now(), s.loc)) {
		return apperr.Validation("departure date has already passed")
	}
	if dep.RemainingSeats() < 1 {
		return apperr.Conflict("departure is fully booked")
	}
	return nil
}

func (s *Service) getLead(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, err
}

func mapConvertError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("lead not found")
	case errors.Is(err, repository.ErrDepartureNotFound):
		return apperr.NotFound("departure not found")
	case errors.Is(err, repository.ErrDepartureFull):
		return apperr.Conflict("departure is fully booked")
	case errors.Is(err, repository.ErrDepartureClosed):
		return apperr.Conflict("departure closed while converting")
	case errors.Is(err, repository.ErrStatusConflict):
		return apperr.Conflict("lead changed while converting; reload and retry")
	default:
		return domain.AsAppError(err)
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
