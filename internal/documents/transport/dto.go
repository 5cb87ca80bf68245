package transport

import (
	"time"

	"github.com/google/uuid"
)

type GenerateDocumentRequest struct {
	BookingID uuid.UUID `json:"bookingId" validate:"required"`
	Kind      string    `json:"kind" validate:"required,oneof=invoice e_ticket certificate letter"`
	// Purpose is printed on letters ("cuti kerja", "pengurusan visa").
	Purpose string `json:"purpose,omitempty" validate:"max=200"`
}

type ListDocumentsRequest struct {
	BookingID string `form:"bookingId" validate:"required,uuid"`
}

type DocumentResponse struct {
	ID        uuid.UUID  `json:"id"`
	BookingID uuid.UUID  `json:"bookingId"`
	Kind      string     `json:"kind"`
	FileName  string     `json:"fileName"`
	CreatedBy *uuid.UUID `json:"createdBy,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type GeneratedDocumentResponse struct {
	DocumentResponse
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type DownloadURLResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
