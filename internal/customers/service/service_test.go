package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"umroh_travel_backend/internal/customers/repository"
	"umroh_travel_backend/internal/customers/transport"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
)

type fakeRepo struct {
	customers map[uuid.UUID]repository.Customer
	upcoming  []repository.UpcomingDeparture
	from      time.Time
	updated   repository.UpdateCustomerParams
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return repository.Customer{}, apperr.NotFound("customer not found")
	}
	return c, nil
}

func (f *fakeRepo) List(context.Context, repository.ListCustomersParams) ([]repository.Customer, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateCustomerParams) (repository.Customer, error) {
	f.updated = params
	c := f.customers[params.ID]
	if params.PassportExpirySet {
		c.PassportExpiry = params.PassportExpiry
	}
	if params.Phone != nil {
		c.Phone = params.Phone
	}
	f.customers[params.ID] = c
	return c, nil
}

func (f *fakeRepo) ListUpcomingDepartures(_ context.Context, _ uuid.UUID, from time.Time) ([]repository.UpcomingDeparture, error) {
	f.from = from
	return f.upcoming, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup(expiry *time.Time) (*Service, *fakeRepo, uuid.UUID) {
	id := uuid.New()
	repo := &fakeRepo{
		customers: map[uuid.UUID]repository.Customer{id: {ID: id, FullName: "Siti Aminah", PassportExpiry: expiry}},
		upcoming: []repository.UpcomingDeparture{
			{BookingID: uuid.New(), BookingCode: "UMR-2610-00001", DepartureDate: date(2026, time.December, 1), PackageName: "Umroh Reguler"},
		},
	}
	svc := New(repo, time.FixedZone("WIB", 7*60*60), "ID", logger.Discard())
	// 18:00 UTC on the 13th is the 14th in WIB.
	svc.now = func() time.Time { return time.Date(2026, time.October, 13, 18, 0, 0, 0, time.UTC) }
	return svc, repo, id
}

func TestGetIncludesPassportCheck(t *testing.T) {
	expiry := date(2027, time.January, 10)
	svc, repo, id := setup(&expiry)

	got, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !repo.from.Equal(date(2026, time.October, 14)) {
		t.Fatalf("upcoming departures queried from %s", repo.from)
	}
	if got.PassportCheck == nil || got.PassportCheck.Severity != "warning" {
		t.Fatalf("expected warning, got %+v", got.PassportCheck)
	}
	if got.PassportCheck.First.MinValidDate != "2027-06-01" || got.PassportCheck.First.ShortfallDays != 142 {
		t.Fatalf("unexpected violation %+v", got.PassportCheck.First)
	}
	if len(got.UpcomingDepartures) != 1 || got.UpcomingDepartures[0].DepartureDate != "2026-12-01" {
		t.Fatalf("unexpected departures %+v", got.UpcomingDepartures)
	}
}

func TestGetWithoutExpiryHasNoCheck(t *testing.T) {
	svc, _, id := setup(nil)

	got, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PassportCheck != nil {
		t.Fatalf("expected no passport check, got %+v", got.PassportCheck)
	}
}

func TestCheckPassportUsesDraftExpiry(t *testing.T) {
	stored := date(2026, time.September, 1)
	svc, _, id := setup(&stored)

	cases := []struct {
		draft string
		want  string
	}{
		{"", "error"},
		{"2027-03-01", "warning"},
		{"2027-06-01", "success"},
	}
	for _, tc := range cases {
		got, err := svc.CheckPassport(context.Background(), id, tc.draft)
		if err != nil {
			t.Fatalf("%q: %v", tc.draft, err)
		}
		if got == nil || got.Severity != tc.want {
			t.Fatalf("%q: expected %s, got %+v", tc.draft, tc.want, got)
		}
	}
}

func TestCheckPassportRejectsBadDraft(t *testing.T) {
	svc, _, id := setup(nil)

	if _, err := svc.CheckPassport(context.Background(), id, "01-06-2027"); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateClearsAndNormalizes(t *testing.T) {
	expiry := date(2030, time.January, 1)
	svc, repo, id := setup(&expiry)
	empty := ""
	local := "0812-3456-7890"
	passportNo := " c1234567 "

	got, err := svc.Update(context.Background(), id, transport.UpdateCustomerRequest{
		PassportExpiry: &empty,
		Phone:          &local,
		PassportNumber: &passportNo,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !repo.updated.PassportExpirySet || repo.updated.PassportExpiry != nil {
		t.Fatalf("expected expiry cleared, got %+v", repo.updated)
	}
	if repo.updated.BirthDateSet {
		t.Fatal("birth date should be untouched")
	}
	if *repo.updated.PassportNumber != "C1234567" {
		t.Fatalf("unexpected passport number %q", *repo.updated.PassportNumber)
	}
	if got.Phone == nil || *got.Phone != "+6281234567890" {
		t.Fatalf("unexpected phone %v", got.Phone)
	}
	if got.PassportCheck != nil {
		t.Fatalf("expected no check after clearing expiry, got %+v", got.PassportCheck)
	}
}

func TestUpdateRejectsFutureBirthDate(t *testing.T) {
	svc, _, id := setup(nil)
	future := "2027-01-01"

	_, err := svc.Update(context.Background(), id, transport.UpdateCustomerRequest{BirthDate: &future})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetUnknownCustomer(t *testing.T) {
	svc, _, _ := setup(nil)

	if _, err := svc.Get(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
