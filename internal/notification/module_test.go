package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"umroh_travel_backend/internal/email"
	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/platform/logger"
)

type testConfig struct {
	sales string
}

func (c testConfig) GetSalesNotificationEmail() string { return c.sales }
func (testConfig) GetAgencyName() string               { return "Baitul Travel" }
func (testConfig) GetAgencyPhone() string              { return "021-5550123" }

type testSender struct {
	confirmations []email.BookingConfirmation
	confirmTo     []string
	reminders     []email.FollowUpReminder
	reminderTo    []string
	err           error
}

func (s *testSender) SendBookingConfirmationEmail(_ context.Context, to string, data email.BookingConfirmation, _ ...email.Attachment) error {
	if s.err != nil {
		return s.err
	}
	s.confirmTo = append(s.confirmTo, to)
	s.confirmations = append(s.confirmations, data)
	return nil
}

func (s *testSender) SendFollowUpReminderEmail(_ context.Context, to string, data email.FollowUpReminder) error {
	if s.err != nil {
		return s.err
	}
	s.reminderTo = append(s.reminderTo, to)
	s.reminders = append(s.reminders, data)
	return nil
}

func newRedisDeduper(t *testing.T) (*RedisDeduper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisDeduperFromClient(client, DedupeTTL), mr
}

func followUpEvent(leadID uuid.UUID) events.LeadFollowUpDue {
	return events.LeadFollowUpDue{
		BaseEvent:    events.NewBaseEvent(),
		LeadID:       leadID,
		FullName:     "Budi Santoso",
		Phone:        "+6281234567890",
		Status:       "contacted",
		FollowUpDate: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestRedisDeduperClaimsOnce(t *testing.T) {
	d, mr := newRedisDeduper(t)
	ctx := context.Background()

	first, err := d.Claim(ctx, "k")
	if err != nil || !first {
		t.Fatalf("first claim = %v, %v", first, err)
	}
	second, err := d.Claim(ctx, "k")
	if err != nil || second {
		t.Fatalf("second claim = %v, %v", second, err)
	}
	if ttl := mr.TTL(dedupeKeyPrefix + "k"); ttl != DedupeTTL {
		t.Errorf("ttl = %v, want %v", ttl, DedupeTTL)
	}

	mr.FastForward(DedupeTTL + time.Second)
	again, err := d.Claim(ctx, "k")
	if err != nil || !again {
		t.Fatalf("claim after expiry = %v, %v", again, err)
	}
}

func TestFollowUpReminderSentOncePerLeadAndDate(t *testing.T) {
	d, _ := newRedisDeduper(t)
	sender := &testSender{}
	m := New(sender, d, testConfig{sales: "sales@baitul.example"}, logger.Discard())

	ev := followUpEvent(uuid.New())
	for i := 0; i < 2; i++ {
		if err := m.Handle(context.Background(), ev); err != nil {
			t.Fatalf("Handle: %v", err)
		}
	}

	if len(sender.reminders) != 1 {
		t.Fatalf("reminders = %d, want 1", len(sender.reminders))
	}
	if sender.reminderTo[0] != "sales@baitul.example" {
		t.Errorf("to = %q", sender.reminderTo[0])
	}
	if sender.reminders[0].WhatsAppLink != "https://wa.me/6281234567890" {
		t.Errorf("whatsapp link = %q", sender.reminders[0].WhatsAppLink)
	}

	next := ev
	next.FollowUpDate = ev.FollowUpDate.AddDate(0, 0, 7)
	if err := m.Handle(context.Background(), next); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(sender.reminders) != 2 {
		t.Fatalf("reminder for a new date was suppressed")
	}
}

func TestFailedSendReleasesKey(t *testing.T) {
	d, _ := newRedisDeduper(t)
	sender := &testSender{err: errors.New("smtp down")}
	m := New(sender, d, testConfig{sales: "sales@baitul.example"}, logger.Discard())

	ev := followUpEvent(uuid.New())
	if err := m.Handle(context.Background(), ev); err == nil {
		t.Fatal("expected send error")
	}

	sender.err = nil
	if err := m.Handle(context.Background(), ev); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(sender.reminders) != 1 {
		t.Fatalf("reminders after retry = %d, want 1", len(sender.reminders))
	}
}

func TestFollowUpReminderWithoutSalesInbox(t *testing.T) {
	sender := &testSender{}
	m := New(sender, nil, testConfig{}, logger.Discard())

	if err := m.Handle(context.Background(), followUpEvent(uuid.New())); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(sender.reminders) != 0 {
		t.Fatal("reminder sent without a sales inbox")
	}
}

func TestBookingConfirmation(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  int
	}{
		{name: "customer with email", email: "siti@example.com", want: 1},
		{name: "customer without email", email: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &testSender{}
			m := New(sender, nil, testConfig{}, logger.Discard())

			err := m.Handle(context.Background(), events.LeadConverted{
				BaseEvent:     events.NewBaseEvent(),
				BookingID:     uuid.New(),
				BookingCode:   "UMR-2610-00001",
				PackageName:   "Umroh Reguler",
				TotalPrice:    35000000,
				CustomerName:  "Siti Aminah",
				CustomerEmail: tt.email,
			})
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			if len(sender.confirmations) != tt.want {
				t.Fatalf("confirmations = %d, want %d", len(sender.confirmations), tt.want)
			}
			if tt.want == 1 && sender.confirmations[0].AgencyName != "Baitul Travel" {
				t.Errorf("agency = %q", sender.confirmations[0].AgencyName)
			}
		})
	}
}
