package transport

import (
	"time"

	"github.com/google/uuid"
)

// Packages

type CreatePackageRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DurationDays int     `json:"durationDays" validate:"required,min=1,max=60"`
	PriceQuad    int64   `json:"priceQuad" validate:"min=0"`
	PriceTriple  int64   `json:"priceTriple" validate:"min=0"`
	PriceDouble  int64   `json:"priceDouble" validate:"min=0"`
}

type UpdatePackageRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	DurationDays *int    `json:"durationDays,omitempty" validate:"omitempty,min=1,max=60"`
	PriceQuad    *int64  `json:"priceQuad,omitempty" validate:"omitempty,min=0"`
	PriceTriple  *int64  `json:"priceTriple,omitempty" validate:"omitempty,min=0"`
	PriceDouble  *int64  `json:"priceDouble,omitempty" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

type ListPackagesRequest struct {
	Search          string `form:"search" validate:"max=100"`
	IncludeInactive bool   `form:"includeInactive"`
	Page            int    `form:"page" validate:"omitempty,min=1"`
	PageSize        int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	SortBy          string `form:"sortBy" validate:"omitempty,oneof=name priceQuad durationDays createdAt"`
	SortOrder       string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type PackageResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	DurationDays int       `json:"durationDays"`
	PriceQuad    int64     `json:"priceQuad"`
	PriceTriple  int64     `json:"priceTriple"`
	PriceDouble  int64     `json:"priceDouble"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type PackageListResponse struct {
	Items      []PackageResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Departures

type CreateDepartureRequest struct {
	DepartureDate string `json:"departureDate" validate:"required,isodate"`
	ReturnDate    string `json:"returnDate" validate:"required,isodate"`
	Quota         int    `json:"quota" validate:"required,min=1,max=1000"`
}

type UpdateDepartureStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed full"`
}

type DepartureResponse struct {
	ID             uuid.UUID `json:"id"`
	PackageID      uuid.UUID `json:"packageId"`
	PackageName    string    `json:"packageName"`
	DepartureDate  string    `json:"departureDate"`
	ReturnDate     string    `json:"returnDate"`
	Quota          int       `json:"quota"`
	BookedPax      int       `json:"bookedPax"`
	RemainingSeats int       `json:"remainingSeats"`
	Status         string    `json:"status"`
}
