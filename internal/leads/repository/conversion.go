package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"umroh_travel_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrDepartureNotFound is returned when the departure row vanished between
	// validation and conversion.
	ErrDepartureNotFound = errors.New("departure not found")
	// ErrDepartureClosed means the departure stopped taking bookings before the
	// conversion transaction locked it.
	ErrDepartureClosed = errors.New("departure is not open for booking")
	// ErrDepartureFull means the departure quota is already taken.
	ErrDepartureFull = errors.New("departure quota reached")
)

const (
	departureOpen        = "open"
	conversionRoomType   = "quad"
	conversionPaxCount   = 1
	conversionBookStatus = "pending"
)

type ConvertParams struct {
	LeadID         uuid.UUID
	DepartureID    uuid.UUID
	ExpectedStatus domain.Status
	ActorID        *uuid.UUID
	ConvertedAt    time.Time
}

// ConversionSource is the lead contact data copied onto the new customer.
type ConversionSource struct {
	FullName string
	Phone    *string
	Email    *string
}

// ConversionDeparture is the departure as seen inside the conversion transaction.
type ConversionDeparture struct {
	Status    string
	Quota     int
	BookedPax int
	PriceQuad int64
}

// ConversionBooking holds the customer and booking values a conversion inserts.
type ConversionBooking struct {
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string
	RoomType      string
	AdultCount    int
	ChildCount    int
	InfantCount   int
	TotalPax      int
	BasePrice     int64
	TotalPrice    int64
	Status        string
}

// NewConversionBooking builds the default booking of a converted lead: one
// adult in a quad room at the package's quad price, pending payment. The
// departure must be open with at least one seat left.
func NewConversionBooking(src ConversionSource, dep ConversionDeparture) (ConversionBooking, error) {
	if dep.Status != departureOpen {
		return ConversionBooking{}, ErrDepartureClosed
	}
	if dep.Quota-dep.BookedPax < conversionPaxCount {
		return ConversionBooking{}, ErrDepartureFull
	}
	return ConversionBooking{
		CustomerName:  src.FullName,
		CustomerPhone: src.Phone,
		CustomerEmail: src.Email,
		RoomType:      conversionRoomType,
		AdultCount:    conversionPaxCount,
		TotalPax:      conversionPaxCount,
		BasePrice:     dep.PriceQuad,
		TotalPrice:    dep.PriceQuad,
		Status:        conversionBookStatus,
	}, nil
}

type ConversionResult struct {
	LeadID        uuid.UUID
	CustomerID    uuid.UUID
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string
	BookingID     uuid.UUID
	BookingCode   string
	DepartureID   uuid.UUID
	DepartureDate time.Time
	PackageName   string
	RoomType      string
	TotalPax      int
	BasePrice     int64
	TotalPrice    int64
	Status        string
	CreatedAt     time.Time
}

// ConvertLead creates the customer and booking for a lead and marks it won,
// all in one transaction. The lead row is locked first and must still have
// ExpectedStatus; the departure row is locked next so concurrent conversions
// cannot oversell its quota.
func (r *Repository) ConvertLead(ctx context.Context, params ConvertParams) (ConversionResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return ConversionResult{}, fmt.Errorf("begin conversion tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		status string
		src    ConversionSource
	)
	err = tx.QueryRow(ctx, `
		SELECT status, full_name, phone, email FROM leads WHERE id = $1 FOR UPDATE
	`, params.LeadID).Scan(&status, &src.FullName, &src.Phone, &src.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return ConversionResult{}, ErrNotFound
	}
	if err != nil {
		return ConversionResult{}, fmt.Errorf("lock lead: %w", err)
	}
	if domain.Status(status) != params.ExpectedStatus {
		return ConversionResult{}, ErrStatusConflict
	}

	res := ConversionResult{LeadID: params.LeadID, DepartureID: params.DepartureID}

	var dep ConversionDeparture
	err = tx.QueryRow(ctx, `
		SELECT d.status, d.quota, p.price_quad, p.name, d.departure_date
		FROM departures d
		JOIN packages p ON p.id = d.package_id
		WHERE d.id = $1
		FOR UPDATE OF d
	`, params.DepartureID).Scan(&dep.Status, &dep.Quota, &dep.PriceQuad, &res.PackageName, &res.DepartureDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return ConversionResult{}, ErrDepartureNotFound
	}
	if err != nil {
		return ConversionResult{}, fmt.Errorf("lock departure: %w", err)
	}
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_pax), 0)::INT FROM bookings
		WHERE departure_id = $1 AND status <> 'cancelled'
	`, params.DepartureID).Scan(&dep.BookedPax)
	if err != nil {
		return ConversionResult{}, fmt.Errorf("count booked pax: %w", err)
	}

	booking, err := NewConversionBooking(src, dep)
	if err != nil {
		return ConversionResult{}, err
	}
	res.CustomerName = booking.CustomerName
	res.CustomerPhone = booking.CustomerPhone
	res.CustomerEmail = booking.CustomerEmail
	res.RoomType = booking.RoomType
	res.TotalPax = booking.TotalPax
	res.BasePrice = booking.BasePrice
	res.TotalPrice = booking.TotalPrice
	res.Status = booking.Status

	err = tx.QueryRow(ctx, `
		INSERT INTO customers (full_name, phone, email)
		VALUES ($1, $2, $3)
		RETURNING id
	`, booking.CustomerName, booking.CustomerPhone, booking.CustomerEmail).Scan(&res.CustomerID)
	if err != nil {
		return ConversionResult{}, fmt.Errorf("insert customer: %w", err)
	}

	if err := tx.QueryRow(ctx, `SELECT generate_booking_code()`).Scan(&res.BookingCode); err != nil {
		return ConversionResult{}, fmt.Errorf("generate booking code: %w", err)
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (booking_code, customer_id, departure_id, room_type, adult_count, child_count,
			infant_count, total_pax, base_price, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`, res.BookingCode, res.CustomerID, params.DepartureID, booking.RoomType, booking.AdultCount, booking.ChildCount,
		booking.InfantCount, booking.TotalPax, booking.BasePrice, booking.TotalPrice, booking.Status,
	).Scan(&res.BookingID, &res.CreatedAt)
	if err != nil {
		return ConversionResult{}, fmt.Errorf("insert booking: %w", err)
	}

	current, err := domain.StateFromRecord(domain.Status(status), nil, nil)
	if err != nil {
		return ConversionResult{}, err
	}
	won, err := domain.Convert(current, res.BookingID, params.ConvertedAt)
	if err != nil {
		return ConversionResult{}, err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE leads
		SET status = $3, converted_at = $4, converted_booking_id = $5, updated_at = now()
		WHERE id = $1 AND status = $2
	`, params.LeadID, status, string(won.Status()), won.ConvertedAt(), won.BookingID())
	if err != nil {
		return ConversionResult{}, fmt.Errorf("mark lead won: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ConversionResult{}, ErrStatusConflict
	}

	if err := insertStatusEvent(ctx, tx, StatusChangeParams{
		LeadID:  params.LeadID,
		From:    params.ExpectedStatus,
		To:      domain.StatusWon,
		ActorID: params.ActorID,
		Reason:  "converted to booking " + res.BookingCode,
	}); err != nil {
		return ConversionResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ConversionResult{}, fmt.Errorf("commit conversion tx: %w", err)
	}
	return res, nil
}
