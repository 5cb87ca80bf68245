// Package email renders and delivers the agency's transactional e-mail.
package email

import (
	"context"
	"time"

	"umroh_travel_backend/platform/config"
)

// Attachment represents a file attachment for an email.
type Attachment struct {
	Content  []byte
	FileName string // e.g. "invoice-UMR-2610-00001.pdf"
	MIMEType string // e.g. "application/pdf"
}

// BookingConfirmation is the content of the e-mail a new customer receives
// after conversion.
type BookingConfirmation struct {
	CustomerName  string
	BookingCode   string
	PackageName   string
	DepartureDate time.Time
	TotalPrice    int64
	AgencyName    string
	AgencyPhone   string
}

// FollowUpReminder tells the sales inbox a lead is due for contact today.
type FollowUpReminder struct {
	LeadName     string
	Phone        string
	WhatsAppLink string
	Status       string
	FollowUpDate time.Time
}

type Sender interface {
	SendBookingConfirmationEmail(ctx context.Context, toEmail string, data BookingConfirmation, attachments ...Attachment) error
	SendFollowUpReminderEmail(ctx context.Context, toEmail string, data FollowUpReminder) error
}

// NoopSender drops every message. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) SendBookingConfirmationEmail(ctx context.Context, toEmail string, data BookingConfirmation, attachments ...Attachment) error {
	return nil
}

func (NoopSender) SendFollowUpReminderEmail(ctx context.Context, toEmail string, data FollowUpReminder) error {
	return nil
}

// NewSender returns an SMTP sender, or NoopSender when SMTP is disabled.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.IsSMTPEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(), cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
		cfg.GetSMTPFromEmail(), cfg.GetSMTPFromName())
}
