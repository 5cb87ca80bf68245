package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"umroh_travel_backend/internal/adapters/storage"
	"umroh_travel_backend/internal/documents/ports"
	"umroh_travel_backend/internal/documents/repository"
	"umroh_travel_backend/internal/documents/transport"
	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/pdf"
	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
)

const pdfContentType = "application/pdf"

// Agency is the issuer printed on documents.
type Agency struct {
	pdf.Letterhead
	City string
}

// Service renders booking documents, stores them and hands out download links.
type Service struct {
	repo     repository.Repository
	bookings ports.BookingReader
	store    storage.ObjectStore
	bucket   string
	agency   Agency
	eventBus events.Bus
	loc      *time.Location
	log      *logger.Logger
	now      func() time.Time
}

// New creates the document service. store may be nil when object storage is
// not configured; generation and downloads then fail with an internal error.
func New(repo repository.Repository, bookings ports.BookingReader, store storage.ObjectStore, bucket string, agency Agency, eventBus events.Bus, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		bookings: bookings,
		store:    store,
		bucket:   bucket,
		agency:   agency,
		eventBus: eventBus,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}
}

// Generate renders one document for a booking and stores it.
func (s *Service) Generate(ctx context.Context, req transport.GenerateDocumentRequest, actorID uuid.UUID) (transport.GeneratedDocumentResponse, error) {
	if s.store == nil {
		return transport.GeneratedDocumentResponse{}, apperr.New(apperr.KindInternal, "file storage is not configured")
	}

	booking, err := s.bookings.GetBooking(ctx, req.BookingID)
	if errors.Is(err, ports.ErrBookingNotFound) {
		return transport.GeneratedDocumentResponse{}, apperr.NotFound("booking not found")
	}
	if err != nil {
		return transport.GeneratedDocumentResponse{}, err
	}
	if booking.Status == ports.BookingCancelled {
		return transport.GeneratedDocumentResponse{}, apperr.Conflict("booking is cancelled")
	}

	now := s.now()
	today := calendar.Date(now, s.loc)
	if req.Kind == repository.KindCertificate && today.Before(booking.ReturnDate) {
		return transport.GeneratedDocumentResponse{}, apperr.Validation("certificate is available from the return date")
	}

	content, err := s.render(req.Kind, booking, req.Purpose, today)
	if err != nil {
		return transport.GeneratedDocumentResponse{}, fmt.Errorf("render %s: %w", req.Kind, err)
	}

	fileName := fmt.Sprintf("%s-%s.pdf", req.Kind, booking.BookingCode)
	fileKey := storage.UniqueKey(documentFolder(booking.ID), fileName, uuid.NewString())
	if err := s.store.PutObject(ctx, s.bucket, fileKey, pdfContentType, bytes.NewReader(content), int64(len(content))); err != nil {
		return transport.GeneratedDocumentResponse{}, err
	}

	doc, err := s.repo.Create(ctx, repository.CreateParams{
		BookingID: booking.ID,
		Kind:      req.Kind,
		FileKey:   fileKey,
		FileName:  fileName,
		CreatedBy: &actorID,
	})
	if err != nil {
		if delErr := s.store.DeleteObject(ctx, s.bucket, fileKey); delErr != nil {
			s.log.Error("orphaned document object", "fileKey", fileKey, "error", delErr)
		}
		return transport.GeneratedDocumentResponse{}, err
	}

	link, err := s.store.GenerateDownloadURL(ctx, s.bucket, fileKey)
	if err != nil {
		return transport.GeneratedDocumentResponse{}, err
	}

	s.log.Info("document generated", "documentId", doc.ID, "bookingId", booking.ID, "kind", doc.Kind)
	s.eventBus.Publish(ctx, events.DocumentGenerated{
		BaseEvent:  events.NewBaseEvent(),
		DocumentID: doc.ID,
		BookingID:  booking.ID,
		Kind:       doc.Kind,
		FileKey:    fileKey,
	})

	return transport.GeneratedDocumentResponse{
		DocumentResponse: toDocumentResponse(doc),
		DownloadURL:      link.URL,
		ExpiresAt:        link.ExpiresAt,
	}, nil
}

func (s *Service) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]transport.DocumentResponse, error) {
	items, err := s.repo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.DocumentResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDocumentResponse(d))
	}
	return out, nil
}

// DownloadURL returns a fresh presigned link for a stored document.
func (s *Service) DownloadURL(ctx context.Context, id uuid.UUID) (transport.DownloadURLResponse, error) {
	if s.store == nil {
		return transport.DownloadURLResponse{}, apperr.New(apperr.KindInternal, "file storage is not configured")
	}

	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.DownloadURLResponse{}, err
	}

	link, err := s.store.GenerateDownloadURL(ctx, s.bucket, doc.FileKey)
	if err != nil {
		return transport.DownloadURLResponse{}, err
	}
	return transport.DownloadURLResponse{DownloadURL: link.URL, ExpiresAt: link.ExpiresAt}, nil
}

func (s *Service) render(kind string, b ports.Booking, purpose string, today time.Time) ([]byte, error) {
	lh := s.agency.Letterhead

	switch kind {
	case repository.KindInvoice:
		return pdf.GenerateInvoicePDF(pdf.InvoiceData{
			Letterhead:    lh,
			Number:        "INV/" + b.BookingCode,
			IssuedAt:      today,
			BookingCode:   b.BookingCode,
			Status:        b.Status,
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
			CustomerEmail: b.CustomerEmail,
			PackageName:   b.PackageName,
			DepartureDate: b.DepartureDate,
			ReturnDate:    b.ReturnDate,
			RoomType:      b.RoomType,
			AdultCount:    b.AdultCount,
			ChildCount:    b.ChildCount,
			InfantCount:   b.InfantCount,
			TotalPax:      b.TotalPax,
			BasePrice:     b.BasePrice,
			TotalPrice:    b.TotalPrice,
		})
	case repository.KindETicket:
		return pdf.GenerateETicketPDF(pdf.ETicketData{
			Letterhead:    lh,
			BookingCode:   b.BookingCode,
			TravellerName: b.CustomerName,
			PassportNo:    b.PassportNo,
			PackageName:   b.PackageName,
			DepartureDate: b.DepartureDate,
			ReturnDate:    b.ReturnDate,
			DurationDays:  b.DurationDays,
			RoomType:      b.RoomType,
			TotalPax:      b.TotalPax,
		})
	case repository.KindCertificate:
		return pdf.GenerateCertificatePDF(pdf.CertificateData{
			Letterhead:    lh,
			Number:        "SRT/" + b.BookingCode,
			IssuedAt:      today,
			City:          s.agency.City,
			TravellerName: b.CustomerName,
			PackageName:   b.PackageName,
			DepartureDate: b.DepartureDate,
			ReturnDate:    b.ReturnDate,
		})
	case repository.KindLetter:
		return pdf.GenerateLetterPDF(pdf.LetterData{
			Letterhead:    lh,
			Number:        fmt.Sprintf("SK/%s/%d", b.BookingCode, today.Year()),
			IssuedAt:      today,
			City:          s.agency.City,
			TravellerName: b.CustomerName,
			NIK:           b.NIK,
			PassportNo:    b.PassportNo,
			BookingCode:   b.BookingCode,
			PackageName:   b.PackageName,
			DepartureDate: b.DepartureDate,
			ReturnDate:    b.ReturnDate,
			Purpose:       purpose,
		})
	default:
		return nil, apperr.Validation("unknown document kind")
	}
}

func documentFolder(bookingID uuid.UUID) string {
	return path.Join("bookings", bookingID.String(), "documents")
}

func toDocumentResponse(d repository.Document) transport.DocumentResponse {
	return transport.DocumentResponse{
		ID:        d.ID,
		BookingID: d.BookingID,
		Kind:      d.Kind,
		FileName:  d.FileName,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
	}
}
