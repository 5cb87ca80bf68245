package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"umroh_travel_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("lead not found")
	// ErrStatusConflict means the lead no longer has the status the caller read.
	ErrStatusConflict = errors.New("lead status changed concurrently")
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID                 uuid.UUID
	FullName           string
	Phone              *string
	Email              *string
	Source             *string
	PackageID          *uuid.UUID
	PackageName        *string
	AssignedTo         *uuid.UUID
	Status             domain.Status
	FollowUpDate       *time.Time
	ConvertedAt        *time.Time
	ConvertedBookingID *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// State rebuilds the lifecycle variant of the stored row.
func (l Lead) State() (domain.State, error) {
	return domain.StateFromRecord(l.Status, l.ConvertedBookingID, l.ConvertedAt)
}

const leadSelect = `
	SELECT l.id, l.full_name, l.phone, l.email, l.source, l.package_id, p.name, l.assigned_to,
		l.status, l.follow_up_date, l.converted_at, l.converted_booking_id, l.created_at, l.updated_at
	FROM leads l
	LEFT JOIN packages p ON p.id = l.package_id`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	var status string
	err := row.Scan(
		&lead.ID, &lead.FullName, &lead.Phone, &lead.Email, &lead.Source, &lead.PackageID, &lead.PackageName, &lead.AssignedTo,
		&status, &lead.FollowUpDate, &lead.ConvertedAt, &lead.ConvertedBookingID, &lead.CreatedAt, &lead.UpdatedAt,
	)
	lead.Status = domain.Status(status)
	return lead, err
}

type CreateLeadParams struct {
	FullName     string
	Phone        *string
	Email        *string
	Source       *string
	PackageID    *uuid.UUID
	AssignedTo   *uuid.UUID
	FollowUpDate *time.Time
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO leads (full_name, phone, email, source, package_id, assigned_to, follow_up_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, params.FullName, params.Phone, params.Email, params.Source, params.PackageID, params.AssignedTo,
		params.FollowUpDate, string(domain.StatusNew)).Scan(&id)
	if err != nil {
		return Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, leadSelect+` WHERE l.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, fmt.Errorf("get lead: %w", err)
	}
	return lead, nil
}

type UpdateLeadParams struct {
	FullName      *string
	Phone         *string
	Email         *string
	Source        *string
	PackageID     *uuid.UUID
	PackageIDSet  bool
	AssignedTo    *uuid.UUID
	AssignedToSet bool
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error) {
	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1

	fields := []struct {
		enabled bool
		column  string
		value   interface{}
	}{
		{params.FullName != nil, "full_name", derefString(params.FullName)},
		{params.Phone != nil, "phone", params.Phone},
		{params.Email != nil, "email", params.Email},
		{params.Source != nil, "source", params.Source},
		{params.PackageIDSet, "package_id", params.PackageID},
		{params.AssignedToSet, "assigned_to", params.AssignedTo},
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
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE leads SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argIdx)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return Lead{}, fmt.Errorf("update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Lead{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// SetFollowUpDate sets or clears (nil) the next follow-up date.
func (r *Repository) SetFollowUpDate(ctx context.Context, id uuid.UUID, date *time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads SET follow_up_date = $2, updated_at = now()
		WHERE id = $1
	`, id, date)
	if err != nil {
		return fmt.Errorf("set follow-up date: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type ListParams struct {
	Search     string
	Status     *domain.Status
	Source     *string
	PackageID  *uuid.UUID
	AssignedTo *uuid.UUID
	Offset     int
	Limit      int
	SortBy     string
	SortOrder  string
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	whereClause, args, argIdx := buildLeadListWhere(params)

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM leads l WHERE %s", whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	sortOrder := "DESC"
	if params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s %s, l.id
		LIMIT $%d OFFSET $%d
	`, leadSelect, whereClause, mapLeadSortColumn(params.SortBy), sortOrder, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}

	return leads, total, nil
}

func buildLeadListWhere(params ListParams) (string, []interface{}, int) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	addEquals := func(column string, value interface{}) {
		whereClauses = append(whereClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if params.Status != nil {
		addEquals("l.status", string(*params.Status))
	}
	if params.Source != nil {
		addEquals("l.source", *params.Source)
	}
	if params.PackageID != nil {
		addEquals("l.package_id", *params.PackageID)
	}
	if params.AssignedTo != nil {
		addEquals("l.assigned_to", *params.AssignedTo)
	}
	if params.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(l.full_name ILIKE $%d OR l.phone ILIKE $%d OR l.email ILIKE $%d)",
			argIdx, argIdx, argIdx,
		))
		args = append(args, "%"+params.Search+"%")
		argIdx++
	}

	return strings.Join(whereClauses, " AND "), args, argIdx
}

func mapLeadSortColumn(sortBy string) string {
	switch sortBy {
	case "fullName":
		return "l.full_name"
	case "status":
		return "l.status"
	case "followUpDate":
		return "l.follow_up_date"
	case "updatedAt":
		return "l.updated_at"
	default:
		return "l.created_at"
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListDueFollowUps returns leads still in the pipeline whose follow-up date is date.
func (r *Repository) ListDueFollowUps(ctx context.Context, date time.Time) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, leadSelect+`
		WHERE l.follow_up_date = $1 AND l.status NOT IN ($2, $3)
		ORDER BY l.created_at
	`, date, string(domain.StatusWon), string(domain.StatusLost))
	if err != nil {
		return nil, fmt.Errorf("list due follow-ups: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return leads, nil
}
