package analytics

import (
	"context"
	"time"

	"umroh_travel_backend/platform/apperr"

	"golang.org/x/sync/errgroup"
)

// Repository loads funnel rows by creation time.
type Repository interface {
	// ListLeadRows returns leads created in [from, to], or [from, to) when
	// inclusiveEnd is false.
	ListLeadRows(ctx context.Context, from, to time.Time, inclusiveEnd bool) ([]LeadRow, error)
}

// Service builds dashboard reports.
type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Report computes the dashboard for the last months months.
func (s *Service) Report(ctx context.Context, months int) (Report, error) {
	if !IsValidPeriod(months) {
		return Report{}, apperr.Validation("period must be 1, 3, 6 or 12 months")
	}

	now := s.now().In(s.loc)
	from, to, prevFrom, prevTo := Window(now, months)

	var current, previous []LeadRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repo.ListLeadRows(gctx, from, to, true)
		current = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.ListLeadRows(gctx, prevFrom, prevTo, false)
		previous = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Compute(Input{
		Current:  current,
		Previous: previous,
		Now:      now,
		Months:   months,
		Location: s.loc,
	}), nil
}
