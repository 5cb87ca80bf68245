package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Departure statuses.
const (
	DepartureOpen     = "open"
	DepartureClosed   = "closed"
	DepartureFull     = "full"
	DepartureDeparted = "departed"
)

// Package is a sellable umroh or hajj product. Prices are whole rupiah.
type Package struct {
	ID           uuid.UUID
	Name         string
	Description  *string
	DurationDays int
	PriceQuad    int64
	PriceTriple  int64
	PriceDouble  int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Departure is a scheduled trip of a package. BookedPax is derived from
// non-cancelled bookings.
type Departure struct {
	ID            uuid.UUID
	PackageID     uuid.UUID
	PackageName   string
	PriceQuad     int64
	DepartureDate time.Time
	ReturnDate    time.Time
	Quota         int
	BookedPax     int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreatePackageParams contains data for creating a package.
type CreatePackageParams struct {
	Name         string
	Description  *string
	DurationDays int
	PriceQuad    int64
	PriceTriple  int64
	PriceDouble  int64
}

// UpdatePackageParams contains data for updating a package.
type UpdatePackageParams struct {
	ID           uuid.UUID
	Name         *string
	Description  *string
	DurationDays *int
	PriceQuad    *int64
	PriceTriple  *int64
	PriceDouble  *int64
	IsActive     *bool
}

// ListPackagesParams defines filters for listing packages.
type ListPackagesParams struct {
	Search     string
	ActiveOnly bool
	Offset     int
	Limit      int
	SortBy     string
	SortOrder  string
}

// CreateDepartureParams contains data for scheduling a departure.
type CreateDepartureParams struct {
	PackageID     uuid.UUID
	DepartureDate time.Time
	ReturnDate    time.Time
	Quota         int
}

// PackageReader reads packages.
type PackageReader interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (Package, error)
	ListPackages(ctx context.Context, params ListPackagesParams) ([]Package, int, error)
}

// PackageWriter creates and edits packages.
type PackageWriter interface {
	CreatePackage(ctx context.Context, params CreatePackageParams) (Package, error)
	UpdatePackage(ctx context.Context, params UpdatePackageParams) (Package, error)
}

// DepartureReader reads departures with their booked pax.
type DepartureReader interface {
	GetDepartureByID(ctx context.Context, id uuid.UUID) (Departure, error)
	ListDeparturesByPackage(ctx context.Context, packageID uuid.UUID) ([]Departure, error)
	// ListOpenDepartures returns open departures of a package dated on or after
	// from, ascending by date.
	ListOpenDepartures(ctx context.Context, packageID uuid.UUID, from time.Time) ([]Departure, error)
}

// DepartureWriter schedules and retires departures.
type DepartureWriter interface {
	CreateDeparture(ctx context.Context, params CreateDepartureParams) (Departure, error)
	UpdateDepartureStatus(ctx context.Context, id uuid.UUID, status string) (Departure, error)
	MarkDepartedBefore(ctx context.Context, date time.Time) (int64, error)
}

// Repository defines catalog storage operations.
type Repository interface {
	PackageReader
	PackageWriter
	DepartureReader
	DepartureWriter
}
