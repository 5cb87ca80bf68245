package repository

import (
	"context"
	"fmt"
	"time"

	"umroh_travel_backend/internal/leads/analytics"
	"umroh_travel_backend/internal/leads/domain"
)

// ListLeadRows loads the funnel projection of leads created inside a window.
func (r *Repository) ListLeadRows(ctx context.Context, from, to time.Time, inclusiveEnd bool) ([]analytics.LeadRow, error) {
	op := "<"
	if inclusiveEnd {
		op = "<="
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT status, COALESCE(source, ''), created_at
		FROM leads
		WHERE created_at >= $1 AND created_at %s $2
		ORDER BY created_at
	`, op), from, to)
	if err != nil {
		return nil, fmt.Errorf("list lead rows: %w", err)
	}
	defer rows.Close()

	out := make([]analytics.LeadRow, 0)
	for rows.Next() {
		var row analytics.LeadRow
		var status string
		if err := rows.Scan(&status, &row.Source, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Status = domain.Status(status)
		out = append(out, row)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
