package repository

import (
	"context"
	"time"

	"umroh_travel_backend/internal/leads/analytics"

	"github.com/google/uuid"
)

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
}

// FollowUpReader finds leads whose follow-up falls on a given date.
type FollowUpReader interface {
	ListDueFollowUps(ctx context.Context, date time.Time) ([]Lead, error)
}

// LeadWriter provides write operations for lead management.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateLeadParams) (Lead, error)
	SetFollowUpDate(ctx context.Context, id uuid.UUID, date *time.Time) error
}

// StatusWriter applies guarded status transitions.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, params StatusChangeParams) (Lead, error)
}

// TimelineReader reads the status audit trail.
type TimelineReader interface {
	ListStatusEvents(ctx context.Context, leadID uuid.UUID) ([]StatusEvent, error)
}

// NoteStore manages lead notes.
type NoteStore interface {
	AddNote(ctx context.Context, params AddNoteParams) (LeadNote, bool, error)
	ListNotes(ctx context.Context, leadID uuid.UUID) ([]LeadNote, error)
}

// LeadConverter runs the conversion transaction.
type LeadConverter interface {
	ConvertLead(ctx context.Context, params ConvertParams) (ConversionResult, error)
}

// LeadsRepository combines all lead-related repository interfaces.
type LeadsRepository interface {
	LeadReader
	FollowUpReader
	LeadWriter
	StatusWriter
	TimelineReader
	NoteStore
	LeadConverter
	analytics.Repository
}

var _ LeadsRepository = (*Repository)(nil)
