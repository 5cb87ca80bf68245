package transport

import (
	"time"

	"github.com/google/uuid"
)

const statusOneOf = "oneof=new contacted follow_up negotiation closing won lost"

// Request DTOs
type CreateLeadRequest struct {
	FullName     string     `json:"fullName" validate:"required,min=1,max=200"`
	Phone        *string    `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Email        *string    `json:"email,omitempty" validate:"omitempty,email"`
	Source       *string    `json:"source,omitempty" validate:"omitempty,max=50"`
	PackageID    *uuid.UUID `json:"packageId,omitempty"`
	AssignedTo   *uuid.UUID `json:"assignedTo,omitempty"`
	FollowUpDate *string    `json:"followUpDate,omitempty" validate:"omitempty,isodate"`
}

type UpdateLeadRequest struct {
	FullName   *string      `json:"fullName,omitempty" validate:"omitempty,min=1,max=200"`
	Phone      *string      `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email      *string      `json:"email,omitempty" validate:"omitempty,email"`
	Source     *string      `json:"source,omitempty" validate:"omitempty,max=50"`
	PackageID  OptionalUUID `json:"packageId,omitempty" validate:"-"`
	AssignedTo OptionalUUID `json:"assignedTo,omitempty" validate:"-"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted follow_up negotiation closing won lost"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type MarkLostRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

type SetFollowUpRequest struct {
	// Date nil clears the follow-up.
	Date *string `json:"date" validate:"omitempty,isodate"`
}

type AddNoteRequest struct {
	Body         string  `json:"body" validate:"required,min=1,max=5000"`
	FollowUpDate *string `json:"followUpDate,omitempty" validate:"omitempty,isodate"`
}

type ConvertLeadRequest struct {
	DepartureID uuid.UUID `json:"departureId" validate:"required"`
}

type ListLeadsRequest struct {
	Status     string `form:"status" validate:"omitempty,oneof=new contacted follow_up negotiation closing won lost"`
	Source     string `form:"source" validate:"max=50"`
	PackageID  string `form:"packageId" validate:"omitempty,uuid"`
	AssignedTo string `form:"assignedTo" validate:"omitempty,uuid"`
	Search     string `form:"search" validate:"max=100"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy     string `form:"sortBy" validate:"omitempty,oneof=createdAt updatedAt fullName status followUpDate"`
	SortOrder  string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type AnalyticsRequest struct {
	Months int `form:"months" validate:"omitempty,oneof=1 3 6 12"`
}

// Response DTOs
type LeadResponse struct {
	ID                 uuid.UUID  `json:"id"`
	FullName           string     `json:"fullName"`
	Phone              *string    `json:"phone,omitempty"`
	WhatsAppLink       string     `json:"whatsAppLink,omitempty"`
	Email              *string    `json:"email,omitempty"`
	Source             *string    `json:"source,omitempty"`
	PackageID          *uuid.UUID `json:"packageId,omitempty"`
	PackageName        *string    `json:"packageName,omitempty"`
	AssignedTo         *uuid.UUID `json:"assignedTo,omitempty"`
	Status             string     `json:"status"`
	StatusLabel        string     `json:"statusLabel"`
	FollowUpDate       *string    `json:"followUpDate,omitempty"`
	ConvertedAt        *time.Time `json:"convertedAt,omitempty"`
	ConvertedBookingID *uuid.UUID `json:"convertedBookingId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type LeadListResponse struct {
	Items      []LeadResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

type NoteResponse struct {
	ID           uuid.UUID `json:"id"`
	AuthorID     uuid.UUID `json:"authorId"`
	Body         string    `json:"body"`
	FollowUpDate *string   `json:"followUpDate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AddNoteResponse struct {
	Note NoteResponse `json:"note"`
	Lead LeadResponse `json:"lead"`
}

type StatusEventResponse struct {
	FromStatus string     `json:"fromStatus"`
	ToStatus   string     `json:"toStatus"`
	ActorID    *uuid.UUID `json:"actorId,omitempty"`
	Reason     string     `json:"reason"`
	OccurredAt time.Time  `json:"occurredAt"`
}

type LeadDetailResponse struct {
	LeadResponse
	Notes    []NoteResponse        `json:"notes"`
	Timeline []StatusEventResponse `json:"timeline"`
}

type DepartureOption struct {
	ID             uuid.UUID `json:"id"`
	PackageName    string    `json:"packageName"`
	DepartureDate  string    `json:"departureDate"`
	ReturnDate     string    `json:"returnDate"`
	Quota          int       `json:"quota"`
	RemainingSeats int       `json:"remainingSeats"`
	PriceQuad      int64     `json:"priceQuad"`
}

type ConversionResponse struct {
	LeadID        uuid.UUID `json:"leadId"`
	CustomerID    uuid.UUID `json:"customerId"`
	BookingID     uuid.UUID `json:"bookingId"`
	BookingCode   string    `json:"bookingCode"`
	DepartureID   uuid.UUID `json:"departureId"`
	DepartureDate string    `json:"departureDate"`
	PackageName   string    `json:"packageName"`
	TotalPrice    int64     `json:"totalPrice"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FormatDate renders a date-only value as YYYY-MM-DD.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
