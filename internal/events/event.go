// Package events defines the domain events exchanged between modules.
// Bus infrastructure lives in platform/events.
package events

import (
	"time"

	"umroh_travel_backend/platform/events"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads
// =============================================================================

// LeadCreated is published after staff register a lead.
type LeadCreated struct {
	BaseEvent
	LeadID     uuid.UUID  `json:"leadId"`
	FullName   string     `json:"fullName"`
	Source     string     `json:"source,omitempty"`
	AssignedTo *uuid.UUID `json:"assignedTo,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStatusChanged is published for every pipeline move except conversion.
type LeadStatusChanged struct {
	BaseEvent
	LeadID    uuid.UUID  `json:"leadId"`
	OldStatus string     `json:"oldStatus"`
	NewStatus string     `json:"newStatus"`
	ActorID   *uuid.UUID `json:"actorId,omitempty"`
	Reason    string     `json:"reason"`
}

func (e LeadStatusChanged) EventName() string { return "leads.lead.status_changed" }

// LeadConverted is published once the conversion transaction committed.
type LeadConverted struct {
	BaseEvent
	LeadID        uuid.UUID `json:"leadId"`
	CustomerID    uuid.UUID `json:"customerId"`
	BookingID     uuid.UUID `json:"bookingId"`
	BookingCode   string    `json:"bookingCode"`
	DepartureID   uuid.UUID `json:"departureId"`
	DepartureDate time.Time `json:"departureDate"`
	PackageName   string    `json:"packageName"`
	TotalPrice    int64     `json:"totalPrice"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	ActorID       uuid.UUID `json:"actorId"`
}

func (e LeadConverted) EventName() string { return "leads.lead.converted" }

// LeadFollowUpDue is published by the worker on the morning of a lead's follow-up date.
type LeadFollowUpDue struct {
	BaseEvent
	LeadID       uuid.UUID  `json:"leadId"`
	FullName     string     `json:"fullName"`
	Phone        string     `json:"phone,omitempty"`
	Status       string     `json:"status"`
	FollowUpDate time.Time  `json:"followUpDate"`
	AssignedTo   *uuid.UUID `json:"assignedTo,omitempty"`
}

func (e LeadFollowUpDue) EventName() string { return "leads.lead.follow_up_due" }

// =============================================================================
// Documents
// =============================================================================

// DocumentGenerated is published after a PDF was stored.
type DocumentGenerated struct {
	BaseEvent
	DocumentID uuid.UUID `json:"documentId"`
	BookingID  uuid.UUID `json:"bookingId"`
	Kind       string    `json:"kind"`
	FileKey    string    `json:"fileKey"`
}

func (e DocumentGenerated) EventName() string { return "documents.document.generated" }
