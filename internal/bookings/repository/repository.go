package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"umroh_travel_backend/platform/apperr"
)

const bookingNotFoundMessage = "booking not found"

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is a reservation joined with its traveller, departure and package.
type Booking struct {
	ID            uuid.UUID
	BookingCode   string
	RoomType      string
	AdultCount    int
	ChildCount    int
	InfantCount   int
	TotalPax      int
	BasePrice     int64
	TotalPrice    int64
	Status        string
	CreatedAt     time.Time
	CustomerID    uuid.UUID
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string
	NIK           *string
	PassportNo    *string
	DepartureID   uuid.UUID
	DepartureDate time.Time
	ReturnDate    time.Time
	PackageID     uuid.UUID
	PackageName   string
	DurationDays  int
}

// Reader reads bookings.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Booking, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Booking, error)
}

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Reader = (*Repo)(nil)

const bookingSelect = `
	SELECT b.id, b.booking_code, b.room_type, b.adult_count, b.child_count, b.infant_count, b.total_pax,
		b.base_price, b.total_price, b.status, b.created_at,
		c.id, c.full_name, c.phone, c.email, c.nik, c.passport_number,
		d.id, d.departure_date, d.return_date,
		p.id, p.name, p.duration_days
	FROM bookings b
	JOIN customers c ON c.id = b.customer_id
	JOIN departures d ON d.id = b.departure_id
	JOIN packages p ON p.id = d.package_id`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.BookingCode, &b.RoomType, &b.AdultCount, &b.ChildCount, &b.InfantCount, &b.TotalPax,
		&b.BasePrice, &b.TotalPrice, &b.Status, &b.CreatedAt,
		&b.CustomerID, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail, &b.NIK, &b.PassportNo,
		&b.DepartureID, &b.DepartureDate, &b.ReturnDate,
		&b.PackageID, &b.PackageName, &b.DurationDays,
	)
	return b, err
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, apperr.NotFound(bookingNotFoundMessage)
	}
	if err != nil {
		return Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

// ListByCustomer returns the customer's bookings, latest departure first.
func (r *Repo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+`
		WHERE b.customer_id = $1
		ORDER BY d.departure_date DESC, b.created_at DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	items := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return items, nil
}
