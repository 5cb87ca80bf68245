package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	bookingrepo "umroh_travel_backend/internal/bookings/repository"
	docports "umroh_travel_backend/internal/documents/ports"
	"umroh_travel_backend/platform/apperr"
)

type stubBookings map[uuid.UUID]bookingrepo.Booking

func (s stubBookings) GetByID(_ context.Context, id uuid.UUID) (bookingrepo.Booking, error) {
	b, ok := s[id]
	if !ok {
		return bookingrepo.Booking{}, apperr.NotFound("booking not found")
	}
	return b, nil
}

func (s stubBookings) ListByCustomer(context.Context, uuid.UUID) ([]bookingrepo.Booking, error) {
	return nil, nil
}

func TestBookingDocumentReaderFlattensOptionalFields(t *testing.T) {
	nik := "3175012345678901"
	b := bookingrepo.Booking{ID: uuid.New(), BookingCode: "UMR-2610-00001", CustomerName: "Siti", NIK: &nik}
	reader := NewBookingDocumentReader(stubBookings{b.ID: b})

	got, err := reader.GetBooking(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("GetBooking: %v", err)
	}
	if got.NIK != nik || got.PassportNo != "" || got.CustomerEmail != "" {
		t.Errorf("booking = %+v", got)
	}
}

func TestBookingDocumentReaderNotFound(t *testing.T) {
	reader := NewBookingDocumentReader(stubBookings{})
	_, err := reader.GetBooking(context.Background(), uuid.New())
	if !errors.Is(err, docports.ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}
