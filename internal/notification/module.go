// Package notification provides event handlers for sending notifications in
// response to domain events. Domain modules publish events and never talk to
// the mail server themselves.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"umroh_travel_backend/internal/email"
	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/phone"
)

// Config is what the notification handlers read from configuration.
type Config interface {
	GetSalesNotificationEmail() string
	GetAgencyName() string
	GetAgencyPhone() string
}

// Module handles all notification-related event subscriptions.
type Module struct {
	sender     email.Sender
	dedupe     Deduper
	salesEmail string
	agencyName string
	agencyTel  string
	log        *logger.Logger
}

// New creates the notification module. dedupe may be nil.
func New(sender email.Sender, dedupe Deduper, cfg Config, log *logger.Logger) *Module {
	if dedupe == nil {
		dedupe = NoopDeduper{}
	}
	return &Module{
		sender:     sender,
		dedupe:     dedupe,
		salesEmail: strings.TrimSpace(cfg.GetSalesNotificationEmail()),
		agencyName: cfg.GetAgencyName(),
		agencyTel:  cfg.GetAgencyPhone(),
		log:        log.WithModule("notification"),
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadConverted{}.EventName(), m)
	bus.Subscribe(events.LeadFollowUpDue{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadConverted:
		return m.handleLeadConverted(ctx, e)
	case events.LeadFollowUpDue:
		return m.handleLeadFollowUpDue(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleLeadConverted(ctx context.Context, e events.LeadConverted) error {
	to := strings.TrimSpace(e.CustomerEmail)
	if to == "" {
		m.log.Debug("booking confirmation skipped, customer has no email", "bookingId", e.BookingID)
		return nil
	}

	return m.sendOnce(ctx, "booking-confirmation:"+e.BookingID.String(), func() error {
		return m.sender.SendBookingConfirmationEmail(ctx, to, email.BookingConfirmation{
			CustomerName:  e.CustomerName,
			BookingCode:   e.BookingCode,
			PackageName:   e.PackageName,
			DepartureDate: e.DepartureDate,
			TotalPrice:    e.TotalPrice,
			AgencyName:    m.agencyName,
			AgencyPhone:   m.agencyTel,
		})
	})
}

func (m *Module) handleLeadFollowUpDue(ctx context.Context, e events.LeadFollowUpDue) error {
	if m.salesEmail == "" {
		m.log.Debug("follow-up reminder skipped, no sales inbox configured", "leadId", e.LeadID)
		return nil
	}

	key := fmt.Sprintf("followup:%s:%s", e.LeadID, e.FollowUpDate.Format(time.DateOnly))
	return m.sendOnce(ctx, key, func() error {
		return m.sender.SendFollowUpReminderEmail(ctx, m.salesEmail, email.FollowUpReminder{
			LeadName:     e.FullName,
			Phone:        e.Phone,
			WhatsAppLink: phone.WhatsAppLink(e.Phone),
			Status:       e.Status,
			FollowUpDate: e.FollowUpDate,
		})
	})
}

// sendOnce claims key before sending and releases it when the send fails.
func (m *Module) sendOnce(ctx context.Context, key string, send func() error) error {
	first, err := m.dedupe.Claim(ctx, key)
	if err != nil {
		// Fail open.
		m.log.Warn("notification dedupe unavailable", "key", key, "error", err)
		first = true
	}
	if !first {
		m.log.Debug("notification already sent", "key", key)
		return nil
	}

	if err := send(); err != nil {
		if relErr := m.dedupe.Release(ctx, key); relErr != nil {
			m.log.Warn("failed to release notification key", "key", key, "error", relErr)
		}
		m.log.Error("failed to send notification", "key", key, "error", err)
		return err
	}

	m.log.Info("notification sent", "key", key)
	return nil
}
