package transport

import (
	"time"

	"github.com/google/uuid"
)

type ListBookingsRequest struct {
	CustomerID string `form:"customerId" validate:"required,uuid"`
}

type PaymentProofURLRequest struct {
	FileName    string `json:"fileName" validate:"required,min=1,max=200"`
	ContentType string `json:"contentType" validate:"required,max=100"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,min=1"`
}

type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	BookingCode   string    `json:"bookingCode"`
	Status        string    `json:"status"`
	RoomType      string    `json:"roomType"`
	AdultCount    int       `json:"adultCount"`
	ChildCount    int       `json:"childCount"`
	InfantCount   int       `json:"infantCount"`
	TotalPax      int       `json:"totalPax"`
	BasePrice     int64     `json:"basePrice"`
	TotalPrice    int64     `json:"totalPrice"`
	CustomerID    uuid.UUID `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	DepartureID   uuid.UUID `json:"departureId"`
	DepartureDate string    `json:"departureDate"`
	ReturnDate    string    `json:"returnDate"`
	PackageID     uuid.UUID `json:"packageId"`
	PackageName   string    `json:"packageName"`
	CreatedAt     time.Time `json:"createdAt"`
}

type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileKey   string    `json:"fileKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}
