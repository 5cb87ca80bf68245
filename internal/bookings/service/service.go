package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"umroh_travel_backend/internal/adapters/storage"
	"umroh_travel_backend/internal/bookings/repository"
	"umroh_travel_backend/internal/bookings/transport"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
)

type Service struct {
	repo     repository.Reader
	uploader storage.Uploader
	bucket   string
	log      *logger.Logger
}

// New creates the booking service. uploader may be nil when object storage
// is not configured; payment-proof uploads are then unavailable.
func New(repo repository.Reader, uploader storage.Uploader, bucket string, log *logger.Logger) *Service {
	return &Service{repo: repo, uploader: uploader, bucket: bucket, log: log}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.BookingResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.BookingResponse{}, err
	}
	return toBookingResponse(b), nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]transport.BookingResponse, error) {
	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.BookingResponse, 0, len(items))
	for _, b := range items {
		out = append(out, toBookingResponse(b))
	}
	return out, nil
}

// PaymentProofUploadURL issues a presigned PUT for a transfer receipt of an
// active booking.
func (s *Service) PaymentProofUploadURL(ctx context.Context, id uuid.UUID, req transport.PaymentProofURLRequest) (transport.UploadURLResponse, error) {
	if s.uploader == nil {
		return transport.UploadURLResponse{}, apperr.New(apperr.KindInternal, "file storage is not configured")
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.UploadURLResponse{}, err
	}
	if b.Status == repository.StatusCancelled {
		return transport.UploadURLResponse{}, apperr.Conflict("booking is cancelled")
	}

	folder := fmt.Sprintf("bookings/%s/payment-proofs", b.ID)
	presigned, err := s.uploader.GenerateUploadURL(ctx, s.bucket, folder, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return transport.UploadURLResponse{}, err
	}

	s.log.Info("payment proof upload url issued", "bookingId", b.ID, "fileKey", presigned.FileKey)
	return transport.UploadURLResponse{
		UploadURL: presigned.URL,
		FileKey:   presigned.FileKey,
		ExpiresAt: presigned.ExpiresAt,
	}, nil
}

func toBookingResponse(b repository.Booking) transport.BookingResponse {
	return transport.BookingResponse{
		ID:            b.ID,
		BookingCode:   b.BookingCode,
		Status:        b.Status,
		RoomType:      b.RoomType,
		AdultCount:    b.AdultCount,
		ChildCount:    b.ChildCount,
		InfantCount:   b.InfantCount,
		TotalPax:      b.TotalPax,
		BasePrice:     b.BasePrice,
		TotalPrice:    b.TotalPrice,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		DepartureID:   b.DepartureID,
		DepartureDate: b.DepartureDate.Format(time.DateOnly),
		ReturnDate:    b.ReturnDate.Format(time.DateOnly),
		PackageID:     b.PackageID,
		PackageName:   b.PackageName,
		CreatedAt:     b.CreatedAt,
	}
}
