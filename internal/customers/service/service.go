package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"umroh_travel_backend/internal/customers/passport"
	"umroh_travel_backend/internal/customers/repository"
	"umroh_travel_backend/internal/customers/transport"
	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/phone"
	"umroh_travel_backend/platform/sanitize"
)

// Service provides customer profile operations and the passport check.
type Service struct {
	repo   repository.Repository
	loc    *time.Location
	region string
	log    *logger.Logger
	now    func() time.Time
}

func New(repo repository.Repository, loc *time.Location, region string, log *logger.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, region: region, log: log, now: time.Now}
}

// Get returns the customer with upcoming departures and the passport check
// of the stored expiry.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.CustomerDetailResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.CustomerDetailResponse{}, err
	}

	today := s.today()
	upcoming, err := s.repo.ListUpcomingDepartures(ctx, id, today)
	if err != nil {
		return transport.CustomerDetailResponse{}, err
	}

	resp := transport.CustomerDetailResponse{
		CustomerResponse:   toCustomerResponse(c),
		UpcomingDepartures: make([]transport.UpcomingDepartureResponse, 0, len(upcoming)),
		PassportCheck:      toPassportCheckResponse(passport.Check(c.PassportExpiry, toPassportDepartures(upcoming), today)),
	}
	for _, d := range upcoming {
		resp.UpcomingDepartures = append(resp.UpcomingDepartures, transport.UpcomingDepartureResponse{
			BookingID:     d.BookingID,
			BookingCode:   d.BookingCode,
			DepartureID:   d.DepartureID,
			DepartureDate: d.DepartureDate.Format(time.DateOnly),
			PackageName:   d.PackageName,
		})
	}
	return resp, nil
}

// CheckPassport checks draftExpiry, or the stored expiry when draftExpiry is
// empty, against the customer's upcoming departures. A nil result means
// there is nothing to check.
func (s *Service) CheckPassport(ctx context.Context, id uuid.UUID, draftExpiry string) (*transport.PassportCheckResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	expiry := c.PassportExpiry
	if draft := strings.TrimSpace(draftExpiry); draft != "" {
		d, err := calendar.ParseDate(draft)
		if err != nil {
			return nil, apperr.Validation("expiry must be YYYY-MM-DD")
		}
		expiry = &d
	}

	today := s.today()
	upcoming, err := s.repo.ListUpcomingDepartures(ctx, id, today)
	if err != nil {
		return nil, err
	}

	return toPassportCheckResponse(passport.Check(expiry, toPassportDepartures(upcoming), today)), nil
}

// List returns a paginated page of customers.
func (s *Service) List(ctx context.Context, req transport.ListCustomersRequest) (transport.CustomerListResponse, error) {
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

	items, total, err := s.repo.List(ctx, repository.ListCustomersParams{
		Search:    strings.TrimSpace(req.Search),
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return transport.CustomerListResponse{}, err
	}

	out := make([]transport.CustomerResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCustomerResponse(c))
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return transport.CustomerListResponse{
		Items:      out,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update edits the traveller profile and returns it with a fresh passport check.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateCustomerRequest) (transport.CustomerDetailResponse, error) {
	params := repository.UpdateCustomerParams{
		ID:                 id,
		FullName:           sanitize.TextPtr(req.FullName),
		Phone:              phone.NormalizePtr(req.Phone, s.region),
		Email:              lowerPtr(req.Email),
		NIK:                sanitize.TextPtr(req.NIK),
		PassportNumber:     upperPtr(req.PassportNumber),
		PassportIssuePlace: sanitize.TextPtr(req.PassportIssuePlace),
		Gender:             req.Gender,
		Address:            sanitize.TextPtr(req.Address),
	}

	var err error
	if params.PassportExpiry, params.PassportExpirySet, err = parseClearableDate(req.PassportExpiry); err != nil {
		return transport.CustomerDetailResponse{}, err
	}
	if params.BirthDate, params.BirthDateSet, err = parseClearableDate(req.BirthDate); err != nil {
		return transport.CustomerDetailResponse{}, err
	}
	if params.BirthDate != nil && params.BirthDate.After(s.today()) {
		return transport.CustomerDetailResponse{}, apperr.Validation("birth date is in the future")
	}

	if _, err := s.repo.Update(ctx, params); err != nil {
		return transport.CustomerDetailResponse{}, err
	}

	s.log.Info("customer updated", "customerId", id)
	return s.Get(ctx, id)
}

func (s *Service) today() time.Time {
	return calendar.Date(s.now(), s.loc)
}

// parseClearableDate maps nil to "unchanged" and "" to "clear".
func parseClearableDate(raw *string) (*time.Time, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, true, nil
	}
	d, err := calendar.ParseDate(trimmed)
	if err != nil {
		return nil, false, apperr.Validation("dates must be YYYY-MM-DD")
	}
	return &d, true, nil
}

func lowerPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*s))
	return &v
}

func upperPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.ToUpper(strings.TrimSpace(*s))
	return &v
}

func toPassportDepartures(items []repository.UpcomingDeparture) []passport.UpcomingDeparture {
	out := make([]passport.UpcomingDeparture, 0, len(items))
	for _, d := range items {
		out = append(out, passport.UpcomingDeparture{Date: d.DepartureDate, PackageName: d.PackageName})
	}
	return out
}

func toPassportCheckResponse(r *passport.Result) *transport.PassportCheckResponse {
	if r == nil {
		return nil
	}
	resp := &transport.PassportCheckResponse{
		Severity:           string(r.Severity),
		Message:            r.Message,
		AdditionalAffected: r.AdditionalAffected,
		Violations:         make([]transport.PassportViolationResponse, 0, len(r.Violations)),
	}
	for _, v := range r.Violations {
		resp.Violations = append(resp.Violations, toViolationResponse(v))
	}
	if r.First != nil {
		first := toViolationResponse(*r.First)
		resp.First = &first
	}
	return resp
}

func toViolationResponse(v passport.Violation) transport.PassportViolationResponse {
	return transport.PassportViolationResponse{
		DepartureDate: v.DepartureDate.Format(time.DateOnly),
		PackageName:   v.PackageName,
		MinValidDate:  v.MinValidDate.Format(time.DateOnly),
		ShortfallDays: v.ShortfallDays,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func toCustomerResponse(c repository.Customer) transport.CustomerResponse {
	resp := transport.CustomerResponse{
		ID:                 c.ID,
		FullName:           c.FullName,
		Phone:              c.Phone,
		Email:              c.Email,
		NIK:                c.NIK,
		PassportNumber:     c.PassportNumber,
		PassportExpiry:     formatDate(c.PassportExpiry),
		PassportIssuePlace: c.PassportIssuePlace,
		BirthDate:          formatDate(c.BirthDate),
		Gender:             c.Gender,
		Address:            c.Address,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
	if c.Phone != nil {
		resp.WhatsAppLink = phone.WhatsAppLink(*c.Phone)
	}
	return resp
}
