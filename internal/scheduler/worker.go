package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/leads/domain"
	leadrepo "umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/platform/config"
	"umroh_travel_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LeadReader loads the lead a reminder belongs to.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (leadrepo.Lead, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  LeadReader
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leadrepo.New(pool),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskLeadFollowUpDue, w.handleLeadFollowUp)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

// handleLeadFollowUp publishes LeadFollowUpDue when the lead is still in the
// pipeline and its follow-up date was not moved since the task was queued.
func (w *Worker) handleLeadFollowUp(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadFollowUpPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	date, err := time.Parse(time.DateOnly, payload.Date)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	lead, err := w.leads.GetByID(ctx, leadID)
	if errors.Is(err, leadrepo.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if lead.Status == domain.StatusWon || lead.Status == domain.StatusLost {
		return nil
	}
	if lead.FollowUpDate == nil || !lead.FollowUpDate.Equal(date) {
		return nil
	}

	if w.bus == nil {
		return nil
	}

	return w.bus.PublishSync(ctx, events.LeadFollowUpDue{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       lead.ID,
		FullName:     lead.FullName,
		Phone:        getOptionalString(lead.Phone),
		Status:       string(lead.Status),
		FollowUpDate: date,
		AssignedTo:   lead.AssignedTo,
	})
}

func getOptionalString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
