package scheduler

import (
	"context"
	"time"

	"umroh_travel_backend/internal/leads/ports"
	leadrepo "umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/logger"
)

const defaultFollowUpDispatchInterval = time.Hour

// DueFollowUpLister lists leads whose follow-up is on a date.
type DueFollowUpLister interface {
	ListDueFollowUps(ctx context.Context, date time.Time) ([]leadrepo.Lead, error)
}

// FollowUpDispatcher re-queues today's reminders periodically. Reminders
// whose enqueue failed when the date was set are picked up here; the task ID
// keeps the others from being sent twice.
type FollowUpDispatcher struct {
	repo      DueFollowUpLister
	scheduler ports.FollowUpScheduler
	loc       *time.Location
	interval  time.Duration
	log       *logger.Logger
	now       func() time.Time
}

func NewFollowUpDispatcher(repo DueFollowUpLister, scheduler ports.FollowUpScheduler, loc *time.Location, interval time.Duration, log *logger.Logger) *FollowUpDispatcher {
	if interval <= 0 {
		interval = defaultFollowUpDispatchInterval
	}
	if loc == nil {
		loc = time.UTC
	}
	return &FollowUpDispatcher{
		repo:      repo,
		scheduler: scheduler,
		loc:       loc,
		interval:  interval,
		log:       log,
		now:       time.Now,
	}
}

func (d *FollowUpDispatcher) Run(ctx context.Context) {
	if d == nil || d.repo == nil || d.scheduler == nil {
		return
	}

	d.dispatch(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.dispatch(ctx)
		}
	}
}

func (d *FollowUpDispatcher) dispatch(ctx context.Context) int {
	today := calendar.Date(d.now(), d.loc)

	leads, err := d.repo.ListDueFollowUps(ctx, today)
	if err != nil {
		d.log.Warn("follow-up dispatch failed", "error", err)
		return 0
	}

	queued := 0
	for _, lead := range leads {
		if err := d.scheduler.ScheduleFollowUp(ctx, lead.ID, today); err != nil {
			d.log.Warn("follow-up enqueue failed", "error", err, "leadId", lead.ID)
			continue
		}
		queued++
	}
	return queued
}
