package conversion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/leads/domain"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"

	"github.com/google/uuid"
)

var (
	wib     = time.FixedZone("WIB", 7*60*60)
	fixedAt = time.Date(2026, time.October, 14, 3, 0, 0, 0, time.UTC)
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

type fakeRepo struct {
	leads      map[uuid.UUID]repository.Lead
	departures *fakeDepartures
	failWith   error
	conversion int
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeRepo) List(context.Context, repository.ListParams) ([]repository.Lead, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) ConvertLead(_ context.Context, p repository.ConvertParams) (repository.ConversionResult, error) {
	if f.failWith != nil {
		return repository.ConversionResult{}, f.failWith
	}
	lead, ok := f.leads[p.LeadID]
	if !ok {
		return repository.ConversionResult{}, repository.ErrNotFound
	}
	if lead.Status != p.ExpectedStatus {
		return repository.ConversionResult{}, repository.ErrStatusConflict
	}
	state, err := lead.State()
	if err != nil {
		return repository.ConversionResult{}, err
	}
	dep, ok := f.departures.byID[p.DepartureID]
	if !ok {
		return repository.ConversionResult{}, repository.ErrDepartureNotFound
	}
	booking, err := repository.NewConversionBooking(
		repository.ConversionSource{FullName: lead.FullName, Phone: lead.Phone, Email: lead.Email},
		repository.ConversionDeparture{Status: dep.Status, Quota: dep.Quota, BookedPax: dep.BookedPax, PriceQuad: dep.PriceQuad},
	)
	if err != nil {
		return repository.ConversionResult{}, err
	}

	bookingID := uuid.New()
	won, err := domain.Convert(state, bookingID, p.ConvertedAt)
	if err != nil {
		return repository.ConversionResult{}, err
	}

	f.conversion++
	at := won.ConvertedAt()
	lead.Status = won.Status()
	lead.ConvertedAt = &at
	lead.ConvertedBookingID = &bookingID
	f.leads[lead.ID] = lead

	return repository.ConversionResult{
		LeadID:        lead.ID,
		CustomerID:    uuid.New(),
		CustomerName:  booking.CustomerName,
		CustomerPhone: booking.CustomerPhone,
		CustomerEmail: booking.CustomerEmail,
		BookingID:     bookingID,
		BookingCode:   "UMR-2610-00001",
		DepartureID:   p.DepartureID,
		DepartureDate: dep.DepartureDate,
		PackageName:   dep.PackageName,
		RoomType:      booking.RoomType,
		TotalPax:      booking.TotalPax,
		BasePrice:     booking.BasePrice,
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		CreatedAt:     fixedAt,
	}, nil
}

type fakeDepartures struct {
	byID map[uuid.UUID]ports.Departure
}

func (f *fakeDepartures) GetDeparture(_ context.Context, id uuid.UUID) (ports.Departure, error) {
	d, ok := f.byID[id]
	if !ok {
		return ports.Departure{}, ports.ErrDepartureNotFound
	}
	return d, nil
}

func (f *fakeDepartures) ListOpenDepartures(_ context.Context, packageID uuid.UUID, from time.Time) ([]ports.Departure, error) {
	var out []ports.Departure
	for _, d := range f.byID {
		if d.PackageID == packageID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fixture struct {
	svc     *Service
	repo    *fakeRepo
	bus     *recordingBus
	pkg     uuid.UUID
	lead    uuid.UUID
	open    uuid.UUID
	today   uuid.UUID
	closed  uuid.UUID
	past    uuid.UUID
	foreign uuid.UUID
	full    uuid.UUID
}

func newFixture(status domain.Status) *fixture {
	f := &fixture{
		pkg:     uuid.New(),
		lead:    uuid.New(),
		open:    uuid.New(),
		today:   uuid.New(),
		closed:  uuid.New(),
		past:    uuid.New(),
		foreign: uuid.New(),
		full:    uuid.New(),
	}
	email := "siti@example.com"
	f.repo = &fakeRepo{leads: map[uuid.UUID]repository.Lead{
		f.lead: {ID: f.lead, FullName: "Siti Aminah", Email: &email, PackageID: &f.pkg, Status: status},
	}}
	const quad = 35_000_000
	deps := &fakeDepartures{byID: map[uuid.UUID]ports.Departure{
		f.open:    {ID: f.open, PackageID: f.pkg, PackageName: "Umroh Reguler 12 Hari", DepartureDate: day(2026, time.December, 1), Status: ports.DepartureOpen, Quota: 45, BookedPax: 40, PriceQuad: quad},
		f.today:   {ID: f.today, PackageID: f.pkg, DepartureDate: day(2026, time.October, 14), Status: ports.DepartureOpen, Quota: 10, PriceQuad: quad},
		f.closed:  {ID: f.closed, PackageID: f.pkg, DepartureDate: day(2026, time.November, 1), Status: "closed", Quota: 45, PriceQuad: quad},
		f.past:    {ID: f.past, PackageID: f.pkg, DepartureDate: day(2026, time.October, 13), Status: ports.DepartureOpen, Quota: 45, PriceQuad: quad},
		f.foreign: {ID: f.foreign, PackageID: uuid.New(), DepartureDate: day(2026, time.December, 5), Status: ports.DepartureOpen, Quota: 45, PriceQuad: quad},
		f.full:    {ID: f.full, PackageID: f.pkg, DepartureDate: day(2026, time.November, 20), Status: ports.DepartureOpen, Quota: 45, BookedPax: 45, PriceQuad: quad},
	}}
	f.repo.departures = deps
	f.bus = &recordingBus{}
	f.svc = New(f.repo, deps, f.bus, wib, logger.Discard())
	f.svc.now = func() time.Time { return fixedAt }
	return f
}

func TestConvertCreatesBookingAndPublishes(t *testing.T) {
	f := newFixture(domain.StatusNegotiation)

	resp, err := f.svc.Convert(context.Background(), f.lead, f.open, uuid.New())
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if resp.BookingCode == "" || resp.TotalPrice != 35_000_000 || resp.Status != "pending" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.PackageName != "Umroh Reguler 12 Hari" || resp.DepartureDate != "2026-12-01" {
		t.Fatalf("booking not placed on the chosen departure: %+v", resp)
	}

	lead := f.repo.leads[f.lead]
	if lead.Status != domain.StatusWon || lead.ConvertedBookingID == nil || *lead.ConvertedBookingID != resp.BookingID {
		t.Fatalf("lead not won by the booking: %+v", lead)
	}

	if len(f.bus.events) != 1 {
		t.Fatalf("expected one event, got %d", len(f.bus.events))
	}
	ev, ok := f.bus.events[0].(events.LeadConverted)
	if !ok || ev.BookingID != resp.BookingID || ev.CustomerEmail != "siti@example.com" {
		t.Fatalf("unexpected event %+v", f.bus.events[0])
	}
}

func TestConvertTwiceIsRejected(t *testing.T) {
	f := newFixture(domain.StatusClosing)
	if _, err := f.svc.Convert(context.Background(), f.lead, f.open, uuid.New()); err != nil {
		t.Fatalf("first convert: %v", err)
	}

	_, err := f.svc.Convert(context.Background(), f.lead, f.open, uuid.New())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if f.repo.conversion != 1 {
		t.Fatalf("expected exactly one conversion, got %d", f.repo.conversion)
	}
}

func TestConvertPreconditions(t *testing.T) {
	cases := []struct {
		name      string
		status    domain.Status
		departure func(f *fixture) uuid.UUID
		noPackage bool
		wantKind  apperr.Kind
	}{
		{"lost lead", domain.StatusLost, func(f *fixture) uuid.UUID { return f.open }, false, apperr.KindValidation},
		{"no package", domain.StatusNew, func(f *fixture) uuid.UUID { return f.open }, true, apperr.KindValidation},
		{"missing departure", domain.StatusNew, func(*fixture) uuid.UUID { return uuid.New() }, false, apperr.KindNotFound},
		{"closed departure", domain.StatusNew, func(f *fixture) uuid.UUID { return f.closed }, false, apperr.KindValidation},
		{"past departure", domain.StatusNew, func(f *fixture) uuid.UUID { return f.past }, false, apperr.KindValidation},
		{"other package", domain.StatusNew, func(f *fixture) uuid.UUID { return f.foreign }, false, apperr.KindValidation},
		{"full departure", domain.StatusNew, func(f *fixture) uuid.UUID { return f.full }, false, apperr.KindConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(tc.status)
			if tc.noPackage {
				lead := f.repo.leads[f.lead]
				lead.PackageID = nil
				f.repo.leads[f.lead] = lead
			}

			_, err := f.svc.Convert(context.Background(), f.lead, tc.departure(f), uuid.New())
			if !apperr.Is(err, tc.wantKind) {
				t.Fatalf("expected %s, got %v", tc.wantKind, err)
			}
			if f.repo.conversion != 0 || len(f.bus.events) != 0 {
				t.Fatal("rejected conversion must not write or publish")
			}
			if f.repo.leads[f.lead].Status != tc.status {
				t.Fatal("lead status must be unchanged")
			}
		})
	}
}

func TestConvertAcceptsDepartureToday(t *testing.T) {
	f := newFixture(domain.StatusContacted)
	if _, err := f.svc.Convert(context.Background(), f.lead, f.today, uuid.New()); err != nil {
		t.Fatalf("departure dated today must be eligible: %v", err)
	}
}

func TestConvertFailureLeavesLeadUntouched(t *testing.T) {
	f := newFixture(domain.StatusFollowUp)
	boom := errors.New("insert booking: connection reset")
	f.repo.failWith = boom

	_, err := f.svc.Convert(context.Background(), f.lead, f.open, uuid.New())
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	if f.repo.leads[f.lead].Status != domain.StatusFollowUp || len(f.bus.events) != 0 {
		t.Fatal("failed conversion must leave the lead as it was")
	}
}

func TestConvertConcurrentChangeIsConflict(t *testing.T) {
	f := newFixture(domain.StatusNew)
	f.repo.failWith = repository.ErrStatusConflict

	_, err := f.svc.Convert(context.Background(), f.lead, f.open, uuid.New())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestListEligibleDepartures(t *testing.T) {
	f := newFixture(domain.StatusNew)

	got, err := f.svc.ListEligibleDepartures(context.Background(), f.lead)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected today and December departures, full one excluded, got %+v", got)
	}
	if got[0].ID != f.today || got[1].ID != f.open {
		t.Fatalf("expected ascending by date, got %s then %s", got[0].DepartureDate, got[1].DepartureDate)
	}
	if got[1].RemainingSeats != 5 {
		t.Fatalf("expected 5 remaining seats, got %d", got[1].RemainingSeats)
	}
}
