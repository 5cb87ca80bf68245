package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	catrepo "umroh_travel_backend/internal/catalog/repository"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/platform/apperr"
)

type stubDepartures struct {
	byID map[uuid.UUID]catrepo.Departure
}

func (s stubDepartures) GetDepartureByID(_ context.Context, id uuid.UUID) (catrepo.Departure, error) {
	d, ok := s.byID[id]
	if !ok {
		return catrepo.Departure{}, apperr.NotFound("departure not found")
	}
	return d, nil
}

func (s stubDepartures) ListDeparturesByPackage(context.Context, uuid.UUID) ([]catrepo.Departure, error) {
	return nil, nil
}

func (s stubDepartures) ListOpenDepartures(_ context.Context, packageID uuid.UUID, _ time.Time) ([]catrepo.Departure, error) {
	var out []catrepo.Departure
	for _, d := range s.byID {
		if d.PackageID == packageID {
			out = append(out, d)
		}
	}
	return out, nil
}

func TestCatalogDepartureReaderMapsNotFound(t *testing.T) {
	reader := NewCatalogDepartureReader(stubDepartures{byID: map[uuid.UUID]catrepo.Departure{}})

	_, err := reader.GetDeparture(context.Background(), uuid.New())
	if !errors.Is(err, ports.ErrDepartureNotFound) {
		t.Fatalf("expected ErrDepartureNotFound, got %v", err)
	}
}

func TestCatalogDepartureReaderCopiesSeats(t *testing.T) {
	pkg := uuid.New()
	d := catrepo.Departure{ID: uuid.New(), PackageID: pkg, PackageName: "Umroh Plus Turki", Quota: 45, BookedPax: 40, PriceQuad: 35_000_000, Status: catrepo.DepartureOpen}
	reader := NewCatalogDepartureReader(stubDepartures{byID: map[uuid.UUID]catrepo.Departure{d.ID: d}})

	items, err := reader.ListOpenDepartures(context.Background(), pkg, time.Time{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].RemainingSeats() != 5 || items[0].PriceQuad != 35_000_000 {
		t.Fatalf("unexpected departures %+v", items)
	}
}
