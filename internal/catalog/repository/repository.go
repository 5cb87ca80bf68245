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

const (
	packageNotFoundMessage   = "package not found"
	departureNotFoundMessage = "departure not found"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const packageColumns = `id, name, description, duration_days, price_quad, price_triple, price_double,
	is_active, created_at, updated_at`

func scanPackage(row pgx.Row) (Package, error) {
	var p Package
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.DurationDays, &p.PriceQuad, &p.PriceTriple,
		&p.PriceDouble, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreatePackage creates a package.
func (r *Repo) CreatePackage(ctx context.Context, params CreatePackageParams) (Package, error) {
	query := `
		INSERT INTO packages (name, description, duration_days, price_quad, price_triple, price_double)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + packageColumns

	p, err := scanPackage(r.pool.QueryRow(ctx, query,
		params.Name, params.Description, params.DurationDays, params.PriceQuad, params.PriceTriple, params.PriceDouble,
	))
	if err != nil {
		return Package{}, fmt.Errorf("create package: %w", err)
	}
	return p, nil
}

// UpdatePackage updates a package.
func (r *Repo) UpdatePackage(ctx context.Context, params UpdatePackageParams) (Package, error) {
	query := `
		UPDATE packages
		SET name = COALESCE($2, name),
			description = COALESCE($3, description),
			duration_days = COALESCE($4, duration_days),
			price_quad = COALESCE($5, price_quad),
			price_triple = COALESCE($6, price_triple),
			price_double = COALESCE($7, price_double),
			is_active = COALESCE($8, is_active),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + packageColumns

	p, err := scanPackage(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Description, params.DurationDays,
		params.PriceQuad, params.PriceTriple, params.PriceDouble, params.IsActive,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Package{}, apperr.NotFound(packageNotFoundMessage)
		}
		return Package{}, fmt.Errorf("update package: %w", err)
	}
	return p, nil
}

// GetPackageByID retrieves a package by ID.
func (r *Repo) GetPackageByID(ctx context.Context, id uuid.UUID) (Package, error) {
	p, err := scanPackage(r.pool.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Package{}, apperr.NotFound(packageNotFoundMessage)
		}
		return Package{}, fmt.Errorf("get package by id: %w", err)
	}
	return p, nil
}

// ListPackages lists packages with filters and pagination.
func (r *Repo) ListPackages(ctx context.Context, params ListPackagesParams) ([]Package, int, error) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if params.ActiveOnly {
		whereClauses = append(whereClauses, "is_active")
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}
	whereClause := strings.Join(whereClauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM packages WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count packages: %w", err)
	}

	sortColumn := "created_at"
	switch params.SortBy {
	case "name":
		sortColumn = "name"
	case "priceQuad":
		sortColumn = "price_quad"
	case "durationDays":
		sortColumn = "duration_days"
	}
	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	query := fmt.Sprintf(`SELECT %s FROM packages WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		packageColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	items := make([]Package, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan package: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate packages: %w", err)
	}
	return items, total, nil
}

const departureSelect = `
	SELECT d.id, d.package_id, p.name, p.price_quad, d.departure_date, d.return_date, d.quota,
		COALESCE((
			SELECT SUM(b.total_pax) FROM bookings b
			WHERE b.departure_id = d.id AND b.status <> 'cancelled'
		), 0)::INT AS booked_pax,
		d.status, d.created_at, d.updated_at
	FROM departures d
	JOIN packages p ON p.id = d.package_id`

func scanDeparture(row pgx.Row) (Departure, error) {
	var d Departure
	err := row.Scan(&d.ID, &d.PackageID, &d.PackageName, &d.PriceQuad, &d.DepartureDate, &d.ReturnDate,
		&d.Quota, &d.BookedPax, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *Repo) queryDepartures(ctx context.Context, op string, query string, args ...interface{}) ([]Departure, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := make([]Departure, 0)
	for rows.Next() {
		d, err := scanDeparture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan departure: %w", err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

// GetDepartureByID retrieves a departure by ID.
func (r *Repo) GetDepartureByID(ctx context.Context, id uuid.UUID) (Departure, error) {
	d, err := scanDeparture(r.pool.QueryRow(ctx, departureSelect+` WHERE d.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Departure{}, apperr.NotFound(departureNotFoundMessage)
		}
		return Departure{}, fmt.Errorf("get departure by id: %w", err)
	}
	return d, nil
}

// ListDeparturesByPackage lists every departure of a package, ascending by date.
func (r *Repo) ListDeparturesByPackage(ctx context.Context, packageID uuid.UUID) ([]Departure, error) {
	return r.queryDepartures(ctx, "list departures by package",
		departureSelect+` WHERE d.package_id = $1 ORDER BY d.departure_date, d.id`, packageID)
}

// ListOpenDepartures lists open departures of a package from a date on.
func (r *Repo) ListOpenDepartures(ctx context.Context, packageID uuid.UUID, from time.Time) ([]Departure, error) {
	return r.queryDepartures(ctx, "list open departures",
		departureSelect+`
		WHERE d.package_id = $1 AND d.status = $2 AND d.departure_date >= $3
		ORDER BY d.departure_date, d.id`, packageID, DepartureOpen, from)
}

// CreateDeparture schedules a departure.
func (r *Repo) CreateDeparture(ctx context.Context, params CreateDepartureParams) (Departure, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO departures (package_id, departure_date, return_date, quota, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, params.PackageID, params.DepartureDate, params.ReturnDate, params.Quota, DepartureOpen).Scan(&id)
	if err != nil {
		return Departure{}, fmt.Errorf("create departure: %w", err)
	}
	return r.GetDepartureByID(ctx, id)
}

// UpdateDepartureStatus sets the status of a departure.
func (r *Repo) UpdateDepartureStatus(ctx context.Context, id uuid.UUID, status string) (Departure, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE departures SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return Departure{}, fmt.Errorf("update departure status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Departure{}, apperr.NotFound(departureNotFoundMessage)
	}
	return r.GetDepartureByID(ctx, id)
}

// MarkDepartedBefore marks every non-departed departure dated before date as departed.
func (r *Repo) MarkDepartedBefore(ctx context.Context, date time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE departures SET status = $1, updated_at = now()
		WHERE departure_date < $2 AND status <> $1
	`, DepartureDeparted, date)
	if err != nil {
		return 0, fmt.Errorf("mark departures departed: %w", err)
	}
	return tag.RowsAffected(), nil
}
