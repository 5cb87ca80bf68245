// Package ports defines the interfaces that the leads domain requires from
// other bounded contexts. Adapters in internal/adapters implement them so the
// leads domain only sees the data it needs, shaped the way it wants.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrDepartureNotFound is returned by DepartureReader for unknown departures.
var ErrDepartureNotFound = errors.New("departure not found")

// DepartureOpen is the catalog status of a departure that still takes bookings.
const DepartureOpen = "open"

// Departure is the view of a scheduled trip that conversion needs.
type Departure struct {
	ID            uuid.UUID
	PackageID     uuid.UUID
	PackageName   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Status        string
	Quota         int
	BookedPax     int
	PriceQuad     int64
}

// RemainingSeats is quota minus booked travellers, never negative.
func (d Departure) RemainingSeats() int {
	if n := d.Quota - d.BookedPax; n > 0 {
		return n
	}
	return 0
}

// DepartureReader is the ACL through which leads read catalog departures.
type DepartureReader interface {
	GetDeparture(ctx context.Context, id uuid.UUID) (Departure, error)
	// ListOpenDepartures returns the open departures of a package dated on or
	// after from, ascending by date.
	ListOpenDepartures(ctx context.Context, packageID uuid.UUID, from time.Time) ([]Departure, error)
}
