// Package ports defines what document generation needs from the bookings
// context. The adapter lives in internal/adapters.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBookingNotFound is returned by BookingReader for unknown bookings.
var ErrBookingNotFound = errors.New("booking not found")

// BookingCancelled is the bookings status that blocks document generation.
const BookingCancelled = "cancelled"

// Booking is the flattened booking record printed on documents.
type Booking struct {
	ID            uuid.UUID
	BookingCode   string
	Status        string
	RoomType      string
	AdultCount    int
	ChildCount    int
	InfantCount   int
	TotalPax      int
	BasePrice     int64
	TotalPrice    int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	NIK           string
	PassportNo    string
	PackageName   string
	DurationDays  int
	DepartureDate time.Time
	ReturnDate    time.Time
}

// BookingReader loads one booking with its traveller and departure.
type BookingReader interface {
	GetBooking(ctx context.Context, id uuid.UUID) (Booking, error)
}
