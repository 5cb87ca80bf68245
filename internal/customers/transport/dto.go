package transport

import (
	"time"

	"github.com/google/uuid"
)

type ListCustomersRequest struct {
	Search    string `form:"search" validate:"max=100"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=fullName passportExpiry createdAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// UpdateCustomerRequest edits the traveller profile. For the date fields an
// empty string clears the stored value.
type UpdateCustomerRequest struct {
	FullName           *string `json:"fullName,omitempty" validate:"omitempty,min=1,max=200"`
	Phone              *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email"`
	NIK                *string `json:"nik,omitempty" validate:"omitempty,len=16,numeric"`
	PassportNumber     *string `json:"passportNumber,omitempty" validate:"omitempty,alphanum,min=6,max=12"`
	PassportExpiry     *string `json:"passportExpiry,omitempty" validate:"omitempty,isodate"`
	PassportIssuePlace *string `json:"passportIssuePlace,omitempty" validate:"omitempty,max=100"`
	BirthDate          *string `json:"birthDate,omitempty" validate:"omitempty,isodate"`
	Gender             *string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	Address            *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

type PassportCheckRequest struct {
	// Expiry is a draft value to check instead of the stored one.
	Expiry string `form:"expiry" validate:"omitempty,isodate"`
}

type CustomerResponse struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"fullName"`
	Phone              *string   `json:"phone,omitempty"`
	WhatsAppLink       string    `json:"whatsAppLink,omitempty"`
	Email              *string   `json:"email,omitempty"`
	NIK                *string   `json:"nik,omitempty"`
	PassportNumber     *string   `json:"passportNumber,omitempty"`
	PassportExpiry     *string   `json:"passportExpiry,omitempty"`
	PassportIssuePlace *string   `json:"passportIssuePlace,omitempty"`
	BirthDate          *string   `json:"birthDate,omitempty"`
	Gender             *string   `json:"gender,omitempty"`
	Address            *string   `json:"address,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}

type UpcomingDepartureResponse struct {
	BookingID     uuid.UUID `json:"bookingId"`
	BookingCode   string    `json:"bookingCode"`
	DepartureID   uuid.UUID `json:"departureId"`
	DepartureDate string    `json:"departureDate"`
	PackageName   string    `json:"packageName"`
}

type PassportViolationResponse struct {
	DepartureDate string `json:"departureDate"`
	PackageName   string `json:"packageName"`
	MinValidDate  string `json:"minValidDate"`
	ShortfallDays int    `json:"shortfallDays"`
}

type PassportCheckResponse struct {
	Severity           string                      `json:"severity"`
	Message            string                      `json:"message"`
	First              *PassportViolationResponse  `json:"first,omitempty"`
	AdditionalAffected int                         `json:"additionalAffected"`
	Violations         []PassportViolationResponse `json:"violations"`
}

type CustomerDetailResponse struct {
	CustomerResponse
	UpcomingDepartures []UpcomingDepartureResponse `json:"upcomingDepartures"`
	// PassportCheck is null when there is nothing to check.
	PassportCheck *PassportCheckResponse `json:"passportCheck"`
}
