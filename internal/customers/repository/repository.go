package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"umroh_travel_backend/platform/apperr"
)

const customerNotFoundMessage = "customer not found"

// Customer is a traveller created by lead conversion and completed later by
// staff. Date fields are civil dates.
type Customer struct {
	ID                 uuid.UUID
	FullName           string
	Phone              *string
	Email              *string
	NIK                *string
	PassportNumber     *string
	PassportExpiry     *time.Time
	PassportIssuePlace *string
	BirthDate          *time.Time
	Gender             *string
	Address            *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// UpcomingDeparture is a booked departure of a customer.
type UpcomingDeparture struct {
	BookingID     uuid.UUID
	BookingCode   string
	DepartureID   uuid.UUID
	DepartureDate time.Time
	PackageName   string
}

type UpdateCustomerParams struct {
	ID                 uuid.UUID
	FullName           *string
	Phone              *string
	Email              *string
	NIK                *string
	PassportNumber     *string
	PassportIssuePlace *string
	Gender             *string
	Address            *string
	PassportExpiry     *time.Time
	PassportExpirySet  bool
	BirthDate          *time.Time
	BirthDateSet       bool
}

type ListCustomersParams struct {
	Search    string
	Offset    int
	Limit     int
	SortBy    string
	SortOrder string
}

// Repository defines customer storage operations.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Customer, error)
	List(ctx context.Context, params ListCustomersParams) ([]Customer, int, error)
	Update(ctx context.Context, params UpdateCustomerParams) (Customer, error)
	// ListUpcomingDepartures returns the customer's non-cancelled bookings
	// departing on or after from, ascending by date.
	ListUpcomingDepartures(ctx context.Context, customerID uuid.UUID, from time.Time) ([]UpcomingDeparture, error)
}

// Repo implements Repository with pgx.
type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const customerColumns = `id, full_name, phone, email, nik, passport_number, passport_expiry,
	passport_issue_place, birth_date, gender, address, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.FullName, &c.Phone, &c.Email, &c.NIK, &c.PassportNumber, &c.PassportExpiry,
		&c.PassportIssuePlace, &c.BirthDate, &c.Gender, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, apperr.NotFound(customerNotFoundMessage)
	}
	if err != nil {
		return Customer{}, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

func (r *Repo) List(ctx context.Context, params ListCustomersParams) ([]Customer, int, error) {
	whereClause := "TRUE"
	args := []interface{}{}
	argIdx := 1
	if params.Search != "" {
		whereClause = fmt.Sprintf("(full_name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d OR passport_number ILIKE $%d)",
			argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	sortColumn := "created_at"
	switch params.SortBy {
	case "fullName":
		sortColumn = "full_name"
	case "passportExpiry":
		sortColumn = "passport_expiry"
	}
	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY %s %s NULLS LAST, id LIMIT $%d OFFSET $%d`,
		customerColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	items := make([]Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customers: %w", err)
	}
	return items, total, nil
}

func (r *Repo) Update(ctx context.Context, params UpdateCustomerParams) (Customer, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	fields := []struct {
		enabled bool
		column  string
		value   interface{}
	}{
		{params.FullName != nil, "full_name", params.FullName},
		{params.Phone != nil, "phone", params.Phone},
		{params.Email != nil, "email", params.Email},
		{params.NIK != nil, "nik", params.NIK},
		{params.PassportNumber != nil, "passport_number", params.PassportNumber},
		{params.PassportIssuePlace != nil, "passport_issue_place", params.PassportIssuePlace},
		{params.Gender != nil, "gender", params.Gender},
		{params.Address != nil, "address", params.Address},
		{params.PassportExpirySet, "passport_expiry", params.PassportExpiry},
		{params.BirthDateSet, "birth_date", params.BirthDate},
	}

	for _, field := range fields {
		if !field.enabled {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", field.column, argIdx))
		args = append(args, field.value)
		argIdx++
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, params.ID)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, params.ID)

	query := fmt.Sprintf(`UPDATE customers SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, customerColumns)
	c, err := scanCustomer(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, apperr.NotFound(customerNotFoundMessage)
	}
	if err != nil {
		return Customer{}, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

func (r *Repo) ListUpcomingDepartures(ctx context.Context, customerID uuid.UUID, from time.Time) ([]UpcomingDeparture, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT b.id, b.booking_code, d.id, d.departure_date, p.name
		FROM bookings b
		JOIN departures d ON d.id = b.departure_id
		JOIN packages p ON p.id = d.package_id
		WHERE b.customer_id = $1 AND b.status <> 'cancelled' AND d.departure_date >= $2
		ORDER BY d.departure_date, b.created_at
	`, customerID, from)
	if err != nil {
		return nil, fmt.Errorf("list upcoming departures: %w", err)
	}
	defer rows.Close()

	items := make([]UpcomingDeparture, 0)
	for rows.Next() {
		var d UpcomingDeparture
		if err := rows.Scan(&d.BookingID, &d.BookingCode, &d.DepartureID, &d.DepartureDate, &d.PackageName); err != nil {
			return nil, fmt.Errorf("scan upcoming departure: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate upcoming departures: %w", err)
	}
	return items, nil
}
