package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	catrepo "umroh_travel_backend/internal/catalog/repository"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/platform/apperr"
)

// CatalogDepartureReader adapts the catalog repository for the leads domain,
// satisfying ports.DepartureReader.
type CatalogDepartureReader struct {
	repo catrepo.DepartureReader
}

// NewCatalogDepartureReader creates a new departure reader adapter.
func NewCatalogDepartureReader(repo catrepo.DepartureReader) *CatalogDepartureReader {
	return &CatalogDepartureReader{repo: repo}
}

// GetDeparture returns ports.ErrDepartureNotFound for unknown IDs.
func (a *CatalogDepartureReader) GetDeparture(ctx context.Context, id uuid.UUID) (ports.Departure, error) {
	d, err := a.repo.GetDepartureByID(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return ports.Departure{}, ports.ErrDepartureNotFound
	}
	if err != nil {
		return ports.Departure{}, fmt.Errorf("catalog adapter: get departure: %w", err)
	}
	return toPortDeparture(d), nil
}

func (a *CatalogDepartureReader) ListOpenDepartures(ctx context.Context, packageID uuid.UUID, from time.Time) ([]ports.Departure, error) {
	items, err := a.repo.ListOpenDepartures(ctx, packageID, from)
	if err != nil {
		return nil, fmt.Errorf("catalog adapter: list open departures: %w", err)
	}

	result := make([]ports.Departure, 0, len(items))
	for _, d := range items {
		result = append(result, toPortDeparture(d))
	}
	return result, nil
}

func toPortDeparture(d catrepo.Departure) ports.Departure {
	return ports.Departure{
		ID:            d.ID,
		PackageID:     d.PackageID,
		PackageName:   d.PackageName,
		DepartureDate: d.DepartureDate,
		ReturnDate:    d.ReturnDate,
		Status:        d.Status,
		Quota:         d.Quota,
		BookedPax:     d.BookedPax,
		PriceQuad:     d.PriceQuad,
	}
}

var _ ports.DepartureReader = (*CatalogDepartureReader)(nil)
