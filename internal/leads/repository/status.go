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

type StatusEvent struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	FromStatus domain.Status
	ToStatus   domain.Status
	ActorID    *uuid.UUID
	Reason     string
	OccurredAt time.Time
}

type StatusChangeParams struct {
	LeadID  uuid.UUID
	From    domain.Status
	To      domain.Status
	ActorID *uuid.UUID
	Reason  string
}

// UpdateStatus moves a lead from params.From to params.To and records the
// event. The update only applies while the row still has params.From.
func (r *Repository) UpdateStatus(ctx context.Context, params StatusChangeParams) (Lead, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Lead{}, fmt.Errorf("begin status tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE leads SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
	`, params.LeadID, string(params.From), string(params.To))
	if err != nil {
		return Lead{}, fmt.Errorf("update lead status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Lead{}, r.missOrConflict(ctx, tx, params.LeadID)
	}

	if err := insertStatusEvent(ctx, tx, params); err != nil {
		return Lead{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Lead{}, fmt.Errorf("commit status tx: %w", err)
	}
	return r.GetByID(ctx, params.LeadID)
}

func (r *Repository) ListStatusEvents(ctx context.Context, leadID uuid.UUID) ([]StatusEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, from_status, to_status, actor_id, reason, occurred_at
		FROM lead_status_events
		WHERE lead_id = $1
		ORDER BY occurred_at DESC, id
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list status events: %w", err)
	}
	defer rows.Close()

	events := make([]StatusEvent, 0)
	for rows.Next() {
		var ev StatusEvent
		var from, to string
		if err := rows.Scan(&ev.ID, &ev.LeadID, &from, &to, &ev.ActorID, &ev.Reason, &ev.OccurredAt); err != nil {
			return nil, err
		}
		ev.FromStatus = domain.Status(from)
		ev.ToStatus = domain.Status(to)
		events = append(events, ev)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return events, nil
}

func insertStatusEvent(ctx context.Context, tx pgx.Tx, params StatusChangeParams) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO lead_status_events (lead_id, from_status, to_status, actor_id, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, params.LeadID, string(params.From), string(params.To), params.ActorID, params.Reason)
	if err != nil {
		return fmt.Errorf("insert status event: %w", err)
	}
	return nil
}

// missOrConflict tells a missing lead apart from one whose status moved.
func (r *Repository) missOrConflict(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1)`, id).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check lead: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStatusConflict
}
