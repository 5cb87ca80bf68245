package scheduler

import (
	"context"
	"time"

	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/logger"
)

const defaultDepartureSweepInterval = 6 * time.Hour

// DepartureCloser marks departures dated before a day as departed.
type DepartureCloser interface {
	MarkDepartedBefore(ctx context.Context, date time.Time) (int64, error)
}

// DepartureSweeper periodically retires departures whose date has passed so
// they drop out of booking and conversion.
type DepartureSweeper struct {
	repo     DepartureCloser
	loc      *time.Location
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time
}

func NewDepartureSweeper(repo DepartureCloser, loc *time.Location, interval time.Duration, log *logger.Logger) *DepartureSweeper {
	if interval <= 0 {
		interval = defaultDepartureSweepInterval
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DepartureSweeper{repo: repo, loc: loc, interval: interval, log: log, now: time.Now}
}

func (s *DepartureSweeper) Run(ctx context.Context) {
	if s == nil || s.repo == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *DepartureSweeper) sweep(ctx context.Context) {
	updated, err := s.repo.MarkDepartedBefore(ctx, calendar.Date(s.now(), s.loc))
	if err != nil {
		s.log.Warn("departure sweep failed", "error", err)
		return
	}

	if updated > 0 {
		s.log.Info("departure sweep marked departures departed", "updated", updated)
	}
}
