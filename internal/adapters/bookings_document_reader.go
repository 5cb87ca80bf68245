package adapters

import (
	"context"

	"github.com/google/uuid"

	bookingrepo "umroh_travel_backend/internal/bookings/repository"
	"umroh_travel_backend/internal/documents/ports"
	"umroh_travel_backend/platform/apperr"
)

// BookingDocumentReader exposes bookings to document generation.
type BookingDocumentReader struct {
	repo bookingrepo.Reader
}

func NewBookingDocumentReader(repo bookingrepo.Reader) *BookingDocumentReader {
	return &BookingDocumentReader{repo: repo}
}

var _ ports.BookingReader = (*BookingDocumentReader)(nil)

func (a *BookingDocumentReader) GetBooking(ctx context.Context, id uuid.UUID) (ports.Booking, error) {
	b, err := a.repo.GetByID(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return ports.Booking{}, ports.ErrBookingNotFound
	}
	if err != nil {
		return ports.Booking{}, err
	}

	return ports.Booking{
		ID:            b.ID,
		BookingCode:   b.BookingCode,
		Status:        b.Status,
		RoomType:      b.RoomType,
		AdultCount:    b.AdultCount,
		ChildCount:    b.ChildCount,
		InfantCount:   b.InfantCount,
		TotalPax:      b.TotalPax,
		BasePrice:     b.BasePrice,
		TotalPrice:    b.TotalPrice,
		CustomerName:  b.CustomerName,
		CustomerPhone: deref(b.CustomerPhone),
		CustomerEmail: deref(b.CustomerEmail),
		NIK:           deref(b.NIK),
		PassportNo:    deref(b.PassportNo),
		PackageName:   b.PackageName,
		DurationDays:  b.DurationDays,
		DepartureDate: b.DepartureDate,
		ReturnDate:    b.ReturnDate,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
