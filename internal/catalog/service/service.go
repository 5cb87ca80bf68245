package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"umroh_travel_backend/internal/catalog/repository"
	"umroh_travel_backend/internal/catalog/transport"
	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
)

// Service provides business logic for catalog.
type Service struct {
	repo repository.Repository
	loc  *time.Location
	log  *logger.Logger
	now  func() time.Time
}

// New creates a new catalog service. loc is the agency's calendar.
func New(repo repository.Repository, loc *time.Location, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, log: log, now: time.Now}
}

// GetPackageByID retrieves a package by ID.
func (s *Service) GetPackageByID(ctx context.Context, id uuid.UUID) (transport.PackageResponse, error) {
	p, err := s.repo.GetPackageByID(ctx, id)
	if err != nil {
		return transport.PackageResponse{}, err
	}
	return toPackageResponse(p), nil
}

// ListPackages retrieves packages with search and pagination.
func (s *Service) ListPackages(ctx context.Context, req transport.ListPackagesRequest) (transport.PackageListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := s.repo.ListPackages(ctx, repository.ListPackagesParams{
		Search:     strings.TrimSpace(req.Search),
		ActiveOnly: !req.IncludeInactive,
		Offset:     (page - 1) * pageSize,
		Limit:      pageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		return transport.PackageListResponse{}, err
	}

	return toPackageListResponse(items, total, page, pageSize), nil
}

// CreatePackage creates a new package.
func (s *Service) CreatePackage(ctx context.Context, req transport.CreatePackageRequest) (transport.PackageResponse, error) {
	p, err := s.repo.CreatePackage(ctx, repository.CreatePackageParams{
		Name:         strings.TrimSpace(req.Name),
		Description:  trimPtr(req.Description),
		DurationDays: req.DurationDays,
		PriceQuad:    req.PriceQuad,
		PriceTriple:  req.PriceTriple,
		PriceDouble:  req.PriceDouble,
	})
	if err != nil {
		return transport.PackageResponse{}, err
	}

	s.log.Info("package created", "id", p.ID, "name", p.Name)
	return toPackageResponse(p), nil
}

// UpdatePackage updates an existing package.
func (s *Service) UpdatePackage(ctx context.Context, id uuid.UUID, req transport.UpdatePackageRequest) (transport.PackageResponse, error) {
	p, err := s.repo.UpdatePackage(ctx, repository.UpdatePackageParams{
		ID:           id,
		Name:         trimPtr(req.Name),
		Description:  trimPtr(req.Description),
		DurationDays: req.DurationDays,
		PriceQuad:    req.PriceQuad,
		PriceTriple:  req.PriceTriple,
		PriceDouble:  req.PriceDouble,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return transport.PackageResponse{}, err
	}

	s.log.Info("package updated", "id", p.ID, "name", p.Name)
	return toPackageResponse(p), nil
}

// ListDepartures lists the departures of a package, ascending by date.
func (s *Service) ListDepartures(ctx context.Context, packageID uuid.UUID) ([]transport.DepartureResponse, error) {
	if _, err := s.repo.GetPackageByID(ctx, packageID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListDeparturesByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.DepartureResponse, 0, len(items))
	for _, d := range items {
		out = append(out, toDepartureResponse(d))
	}
	return out, nil
}

// GetDepartureByID retrieves a departure by ID.
func (s *Service) GetDepartureByID(ctx context.Context, id uuid.UUID) (transport.DepartureResponse, error) {
	d, err := s.repo.GetDepartureByID(ctx, id)
	if err != nil {
		return transport.DepartureResponse{}, err
	}
	return toDepartureResponse(d), nil
}

// CreateDeparture schedules a departure of an active package. The trip must
// start today or later and must not end before it starts.
func (s *Service) CreateDeparture(ctx context.Context, packageID uuid.UUID, req transport.CreateDepartureRequest) (transport.DepartureResponse, error) {
	departureDate, err := calendar.ParseDate(req.DepartureDate)
	if err != nil {
		return transport.DepartureResponse{}, apperr.Validation("invalid departure date")
	}
	returnDate, err := calendar.ParseDate(req.ReturnDate)
	if err != nil {
		return transport.DepartureResponse{}, apperr.Validation("invalid return date")
	}
	if returnDate.Before(departureDate) {
		return transport.DepartureResponse{}, apperr.Validation("return date must not be before departure date")
	}
	if departureDate.Before(calendar.Date(s.now(), s.loc)) {
		return transport.DepartureResponse{}, apperr.Validation("departure date is in the past")
	}

	p, err := s.repo.GetPackageByID(ctx, packageID)
	if err != nil {
		return transport.DepartureResponse{}, err
	}
	if !p.IsActive {
		return transport.DepartureResponse{}, apperr.Validation("package is inactive")
	}

	d, err := s.repo.CreateDeparture(ctx, repository.CreateDepartureParams{
		PackageID:     packageID,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		Quota:         req.Quota,
	})
	if err != nil {
		return transport.DepartureResponse{}, err
	}

	s.log.Info("departure created", "id", d.ID, "packageId", packageID, "date", req.DepartureDate)
	return toDepartureResponse(d), nil
}

// UpdateDepartureStatus opens, closes or marks a departure full. Departed
// trips are final.
func (s *Service) UpdateDepartureStatus(ctx context.Context, id uuid.UUID, req transport.UpdateDepartureStatusRequest) (transport.DepartureResponse, error) {
	current, err := s.repo.GetDepartureByID(ctx, id)
	if err != nil {
		return transport.DepartureResponse{}, err
	}
	if current.Status == repository.DepartureDeparted {
		return transport.DepartureResponse{}, apperr.Conflict("departure has already departed")
	}

	d, err := s.repo.UpdateDepartureStatus(ctx, id, req.Status)
	if err != nil {
		return transport.DepartureResponse{}, err
	}

	s.log.Info("departure status updated", "id", id, "from", current.Status, "to", d.Status)
	return toDepartureResponse(d), nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func toPackageResponse(p repository.Package) transport.PackageResponse {
	return transport.PackageResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DurationDays: p.DurationDays,
		PriceQuad:    p.PriceQuad,
		PriceTriple:  p.PriceTriple,
		PriceDouble:  p.PriceDouble,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPackageListResponse(items []repository.Package, total, page, pageSize int) transport.PackageListResponse {
	out := make([]transport.PackageResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPackageResponse(p))
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	return transport.PackageListResponse{
		Items:      out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func toDepartureResponse(d repository.Departure) transport.DepartureResponse {
	remaining := d.Quota - d.BookedPax
	if remaining < 0 {
		remaining = 0
	}
	return transport.DepartureResponse{
		ID:             d.ID,
		PackageID:      d.PackageID,
		PackageName:    d.PackageName,
		DepartureDate:  d.DepartureDate.Format(time.DateOnly),
		ReturnDate:     d.ReturnDate.Format(time.DateOnly),
		Quota:          d.Quota,
		BookedPax:      d.BookedPax,
		RemainingSeats: remaining,
		Status:         d.Status,
	}
}
