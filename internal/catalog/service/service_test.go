package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"umroh_travel_backend/internal/catalog/repository"
	"umroh_travel_backend/internal/catalog/transport"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
)

type fakeRepo struct {
	packages   map[uuid.UUID]repository.Package
	departures map[uuid.UUID]repository.Departure
	listParams repository.ListPackagesParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		packages:   make(map[uuid.UUID]repository.Package),
		departures: make(map[uuid.UUID]repository.Departure),
	}
}

func (f *fakeRepo) GetPackageByID(_ context.Context, id uuid.UUID) (repository.Package, error) {
	p, ok := f.packages[id]
	if !ok {
		return repository.Package{}, apperr.NotFound("package not found")
	}
	return p, nil
}

func (f *fakeRepo) ListPackages(_ context.Context, params repository.ListPackagesParams) ([]repository.Package, int, error) {
	f.listParams = params
	out := make([]repository.Package, 0, len(f.packages))
	for _, p := range f.packages {
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepo) CreatePackage(_ context.Context, params repository.CreatePackageParams) (repository.Package, error) {
	p := repository.Package{ID: uuid.New(), Name: params.Name, DurationDays: params.DurationDays, PriceQuad: params.PriceQuad, IsActive: true}
	f.packages[p.ID] = p
	return p, nil
}

func (f *fakeRepo) UpdatePackage(_ context.Context, params repository.UpdatePackageParams) (repository.Package, error) {
	p, ok := f.packages[params.ID]
	if !ok {
		return repository.Package{}, apperr.NotFound("package not found")
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	f.packages[p.ID] = p
	return p, nil
}

func (f *fakeRepo) GetDepartureByID(_ context.Context, id uuid.UUID) (repository.Departure, error) {
	d, ok := f.departures[id]
	if !ok {
		return repository.Departure{}, apperr.NotFound("departure not found")
	}
	return d, nil
}

func (f *fakeRepo) ListDeparturesByPackage(_ context.Context, packageID uuid.UUID) ([]repository.Departure, error) {
	var out []repository.Departure
	for _, d := range f.departures {
		if d.PackageID == packageID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListOpenDepartures(context.Context, uuid.UUID, time.Time) ([]repository.Departure, error) {
	return nil, nil
}

func (f *fakeRepo) CreateDeparture(_ context.Context, params repository.CreateDepartureParams) (repository.Departure, error) {
	d := repository.Departure{
		ID:            uuid.New(),
		PackageID:     params.PackageID,
		DepartureDate: params.DepartureDate,
		ReturnDate:    params.ReturnDate,
		Quota:         params.Quota,
		Status:        repository.DepartureOpen,
	}
	f.departures[d.ID] = d
	return d, nil
}

func (f *fakeRepo) UpdateDepartureStatus(_ context.Context, id uuid.UUID, status string) (repository.Departure, error) {
	d := f.departures[id]
	d.Status = status
	f.departures[id] = d
	return d, nil
}

func (f *fakeRepo) MarkDepartedBefore(context.Context, time.Time) (int64, error) { return 0, nil }

func newTestService(repo *fakeRepo) *Service {
	svc := New(repo, time.FixedZone("WIB", 7*60*60), logger.Discard())
	svc.now = func() time.Time { return time.Date(2026, time.October, 14, 3, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateDepartureValidatesDates(t *testing.T) {
	repo := newFakeRepo()
	active := repository.Package{ID: uuid.New(), Name: "Umroh Reguler", IsActive: true}
	inactive := repository.Package{ID: uuid.New(), Name: "Umroh Ramadhan", IsActive: false}
	repo.packages[active.ID] = active
	repo.packages[inactive.ID] = inactive
	svc := newTestService(repo)

	cases := []struct {
		name      string
		packageID uuid.UUID
		req       transport.CreateDepartureRequest
		wantKind  apperr.Kind
		wantOK    bool
	}{
		{"valid", active.ID, transport.CreateDepartureRequest{DepartureDate: "2026-12-01", ReturnDate: "2026-12-12", Quota: 45}, 0, true},
		{"departs today", active.ID, transport.CreateDepartureRequest{DepartureDate: "2026-10-14", ReturnDate: "2026-10-25", Quota: 45}, 0, true},
		{"in the past", active.ID, transport.CreateDepartureRequest{DepartureDate: "2026-10-13", ReturnDate: "2026-10-25", Quota: 45}, apperr.KindValidation, false},
		{"returns before departing", active.ID, transport.CreateDepartureRequest{DepartureDate: "2026-12-12", ReturnDate: "2026-12-01", Quota: 45}, apperr.KindValidation, false},
		{"inactive package", inactive.ID, transport.CreateDepartureRequest{DepartureDate: "2026-12-01", ReturnDate: "2026-12-12", Quota: 45}, apperr.KindValidation, false},
		{"unknown package", uuid.New(), transport.CreateDepartureRequest{DepartureDate: "2026-12-01", ReturnDate: "2026-12-12", Quota: 45}, apperr.KindNotFound, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CreateDeparture(context.Background(), tc.packageID, tc.req)
			if tc.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.DepartureDate != tc.req.DepartureDate || got.RemainingSeats != tc.req.Quota {
					t.Fatalf("unexpected departure %+v", got)
				}
				return
			}
			if !apperr.Is(err, tc.wantKind) {
				t.Fatalf("expected %v, got %v", tc.wantKind, err)
			}
		})
	}
}

func TestUpdateDepartureStatusRejectsDeparted(t *testing.T) {
	repo := newFakeRepo()
	d := repository.Departure{ID: uuid.New(), Status: repository.DepartureDeparted}
	repo.departures[d.ID] = d
	svc := newTestService(repo)

	_, err := svc.UpdateDepartureStatus(context.Background(), d.ID, transport.UpdateDepartureStatusRequest{Status: "open"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestDepartureRemainingSeatsNeverNegative(t *testing.T) {
	got := toDepartureResponse(repository.Departure{Quota: 40, BookedPax: 43})
	if got.RemainingSeats != 0 {
		t.Fatalf("expected 0 remaining seats, got %d", got.RemainingSeats)
	}
}

func TestListPackagesClampsPagination(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	res, err := svc.ListPackages(context.Background(), transport.ListPackagesRequest{Page: 3, PageSize: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.listParams.Limit != 100 || repo.listParams.Offset != 200 || !repo.listParams.ActiveOnly {
		t.Fatalf("unexpected params %+v", repo.listParams)
	}
	if res.TotalPages != 0 || res.Items == nil {
		t.Fatalf("unexpected response %+v", res)
	}
}
