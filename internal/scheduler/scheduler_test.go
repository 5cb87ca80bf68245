package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/leads/domain"
	leadrepo "umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

var wib = time.FixedZone("WIB", 7*60*60)

type captureBus struct {
	events []events.Event
}

func (b *captureBus) Publish(_ context.Context, e events.Event) { b.events = append(b.events, e) }

func (b *captureBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

type leadMap map[uuid.UUID]leadrepo.Lead

func (m leadMap) GetByID(_ context.Context, id uuid.UUID) (leadrepo.Lead, error) {
	lead, ok := m[id]
	if !ok {
		return leadrepo.Lead{}, leadrepo.ErrNotFound
	}
	return lead, nil
}

func (m leadMap) ListDueFollowUps(_ context.Context, date time.Time) ([]leadrepo.Lead, error) {
	var out []leadrepo.Lead
	for _, l := range m {
		if l.FollowUpDate != nil && l.FollowUpDate.Equal(date) && !l.Status.Terminal() {
			out = append(out, l)
		}
	}
	return out, nil
}

func followUpTask(t *testing.T, leadID uuid.UUID, date string) *asynq.Task {
	t.Helper()
	task, err := NewLeadFollowUpTask(LeadFollowUpPayload{LeadID: leadID.String(), Date: date})
	if err != nil {
		t.Fatalf("task: %v", err)
	}
	return task
}

func TestFollowUpRunAtIsEightLocal(t *testing.T) {
	date := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	got := FollowUpRunAt(date, wib)
	want := time.Date(2026, time.October, 20, 1, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got.UTC())
	}
}

func TestFollowUpTaskIDIsStable(t *testing.T) {
	id := uuid.MustParse("6f1c7f4e-1df0-4a4b-9c37-70a1beea0d11")
	date := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	if got := FollowUpTaskID(id, date); got != "followup:6f1c7f4e-1df0-4a4b-9c37-70a1beea0d11:2026-10-20" {
		t.Fatalf("unexpected task id %q", got)
	}
}

func TestHandleLeadFollowUp(t *testing.T) {
	date := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	moved := time.Date(2026, time.October, 25, 0, 0, 0, 0, time.UTC)
	phone := "+6281234567890"

	open := leadrepo.Lead{ID: uuid.New(), FullName: "Rina", Phone: &phone, Status: domain.StatusFollowUp, FollowUpDate: &date}
	won := leadrepo.Lead{ID: uuid.New(), Status: domain.StatusWon, FollowUpDate: &date}
	rescheduled := leadrepo.Lead{ID: uuid.New(), Status: domain.StatusContacted, FollowUpDate: &moved}

	cases := []struct {
		name   string
		leadID uuid.UUID
		want   int
	}{
		{"open lead on its date", open.ID, 1},
		{"won lead", won.ID, 0},
		{"rescheduled lead", rescheduled.ID, 0},
		{"deleted lead", uuid.New(), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bus := &captureBus{}
			w := &Worker{
				leads: leadMap{open.ID: open, won.ID: won, rescheduled.ID: rescheduled},
				bus:   bus,
				log:   logger.Discard(),
			}
			if err := w.handleLeadFollowUp(context.Background(), followUpTask(t, tc.leadID, "2026-10-20")); err != nil {
				t.Fatalf("handle: %v", err)
			}
			if len(bus.events) != tc.want {
				t.Fatalf("expected %d events, got %d", tc.want, len(bus.events))
			}
			if tc.want == 1 {
				ev := bus.events[0].(events.LeadFollowUpDue)
				if ev.Phone != phone || !ev.FollowUpDate.Equal(date) {
					t.Fatalf("unexpected event %+v", ev)
				}
			}
		})
	}
}

func TestHandleLeadFollowUpSkipsRetryOnBadPayload(t *testing.T) {
	w := &Worker{leads: leadMap{}, bus: &captureBus{}, log: logger.Discard()}
	task := asynq.NewTask(TaskLeadFollowUpDue, []byte(`{"leadId":"nope","date":"2026-10-20"}`))

	err := w.handleLeadFollowUp(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

type recordingScheduler struct {
	ids []uuid.UUID
}

func (r *recordingScheduler) ScheduleFollowUp(_ context.Context, leadID uuid.UUID, _ time.Time) error {
	r.ids = append(r.ids, leadID)
	return nil
}

func TestFollowUpDispatcherQueuesTodaysLeads(t *testing.T) {
	today := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)
	due := leadrepo.Lead{ID: uuid.New(), Status: domain.StatusNew, FollowUpDate: &today}
	later := leadrepo.Lead{ID: uuid.New(), Status: domain.StatusNew, FollowUpDate: &tomorrow}
	lost := leadrepo.Lead{ID: uuid.New(), Status: domain.StatusLost, FollowUpDate: &today}

	sched := &recordingScheduler{}
	d := NewFollowUpDispatcher(leadMap{due.ID: due, later.ID: later, lost.ID: lost}, sched, wib, time.Minute, logger.Discard())
	// 20:00 UTC on the 13th is already the 14th in WIB.
	d.now = func() time.Time { return time.Date(2026, time.October, 13, 20, 0, 0, 0, time.UTC) }

	if n := d.dispatch(context.Background()); n != 1 {
		t.Fatalf("expected 1 queued, got %d", n)
	}
	if sched.ids[0] != due.ID {
		t.Fatalf("queued the wrong lead")
	}
}

type sweepRecorder struct {
	before time.Time
}

func (s *sweepRecorder) MarkDepartedBefore(_ context.Context, date time.Time) (int64, error) {
	s.before = date
	return 2, nil
}

func TestDepartureSweeperUsesAgencyDate(t *testing.T) {
	rec := &sweepRecorder{}
	s := NewDepartureSweeper(rec, wib, time.Hour, logger.Discard())
	s.now = func() time.Time { return time.Date(2026, time.October, 13, 20, 0, 0, 0, time.UTC) }

	s.sweep(context.Background())
	if want := time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC); !rec.before.Equal(want) {
		t.Fatalf("expected cutoff %s, got %s", want, rec.before)
	}
}
