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

// Document kinds.
const (
	KindInvoice     = "invoice"
	KindETicket     = "e_ticket"
	KindCertificate = "certificate"
	KindLetter      = "letter"
)

// Document is a generated PDF stored in object storage.
type Document struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	Kind      string
	FileKey   string
	FileName  string
	CreatedBy *uuid.UUID
	CreatedAt time.Time
}

type CreateParams struct {
	BookingID uuid.UUID
	Kind      string
	FileKey   string
	FileName  string
	CreatedBy *uuid.UUID
}

// Repository stores document metadata.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (Document, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Document, error)
}

type Repo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

const documentColumns = `id, booking_id, kind, file_key, file_name, created_by, created_at`

func scanDocument(row pgx.Row) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.BookingID, &d.Kind, &d.FileKey, &d.FileName, &d.CreatedBy, &d.CreatedAt)
	return d, err
}

func (r *Repo) Create(ctx context.Context, params CreateParams) (Document, error) {
	d, err := scanDocument(r.pool.QueryRow(ctx, `
		INSERT INTO documents (booking_id, kind, file_key, file_name, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+documentColumns,
		params.BookingID, params.Kind, params.FileKey, params.FileName, params.CreatedBy,
	))
	if err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}
	return d, nil
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Document, error) {
	d, err := scanDocument(r.pool.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Document{}, apperr.NotFound("document not found")
	}
	if err != nil {
		return Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// ListByBooking returns the booking's documents, newest first.
func (r *Repo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE booking_id = $1
		ORDER BY created_at DESC, id
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	items := make([]Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		items = append(items, d)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}
