package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LeadNote struct {
	ID           uuid.UUID
	LeadID       uuid.UUID
	AuthorID     uuid.UUID
	Body         string
	FollowUpDate *time.Time
	CreatedAt    time.Time
}

type AddNoteParams struct {
	LeadID       uuid.UUID
	AuthorID     uuid.UUID
	Body         string
	FollowUpDate *time.Time
	// Advance, when set, moves the lead along with the note if it still has
	// Advance.From. A lead that moved meanwhile keeps its status.
	Advance *StatusChangeParams
}

// AddNote appends a note and applies its side effects in one transaction.
// The returned bool reports whether the status advance was applied.
func (r *Repository) AddNote(ctx context.Context, params AddNoteParams) (LeadNote, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return LeadNote{}, false, fmt.Errorf("begin note tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var note LeadNote
	err = tx.QueryRow(ctx, `
		INSERT INTO lead_notes (lead_id, author_id, body, follow_up_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, lead_id, author_id, body, follow_up_date, created_at
	`, params.LeadID, params.AuthorID, params.Body, params.FollowUpDate).Scan(
		&note.ID, &note.LeadID, &note.AuthorID, &note.Body, &note.FollowUpDate, &note.CreatedAt,
	)
	if err != nil {
		return LeadNote{}, false, fmt.Errorf("insert note: %w", err)
	}

	if params.FollowUpDate != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE leads SET follow_up_date = $2, updated_at = now() WHERE id = $1
		`, params.LeadID, params.FollowUpDate); err != nil {
			return LeadNote{}, false, fmt.Errorf("set follow-up date: %w", err)
		}
	}

	advanced := false
	if params.Advance != nil {
		tag, err := tx.Exec(ctx, `
			UPDATE leads SET status = $3, updated_at = now()
			WHERE id = $1 AND status = $2
		`, params.LeadID, string(params.Advance.From), string(params.Advance.To))
		if err != nil {
			return LeadNote{}, false, fmt.Errorf("advance lead: %w", err)
		}
		if tag.RowsAffected() == 1 {
			if err := insertStatusEvent(ctx, tx, *params.Advance); err != nil {
				return LeadNote{}, false, err
			}
			advanced = true
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return LeadNote{}, false, fmt.Errorf("commit note tx: %w", err)
	}
	return note, advanced, nil
}

// ListNotes returns the notes of a lead, newest first.
func (r *Repository) ListNotes(ctx context.Context, leadID uuid.UUID) ([]LeadNote, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, author_id, body, follow_up_date, created_at
		FROM lead_notes
		WHERE lead_id = $1
		ORDER BY created_at DESC, id
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]LeadNote, 0)
	for rows.Next() {
		var note LeadNote
		if err := rows.Scan(&note.ID, &note.LeadID, &note.AuthorID, &note.Body, &note.FollowUpDate, &note.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return notes, nil
}
