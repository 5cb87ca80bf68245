// Package management handles lead CRUD and staff-driven pipeline moves.
// This is a vertically sliced feature package; it never writes the won
// status, which belongs to the conversion package.
package management

import (
	"context"
	"errors"
	"strings"
	"time"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/leads/analytics"
	"umroh_travel_backend/internal/leads/domain"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/internal/leads/transport"
	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/phone"
	"umroh_travel_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	reasonReactivated = "lead reactivated"
)

// Repository defines the data access interface needed by the management service.
// This is a consumer-driven interface - only what management needs.
type Repository interface {
	repository.LeadReader
	repository.LeadWriter
	repository.StatusWriter
	repository.TimelineReader
	ListNotes(ctx context.Context, leadID uuid.UUID) ([]repository.LeadNote, error)
}

// Service handles lead management operations.
type Service struct {
	repo      Repository
	eventBus  events.Bus
	scheduler ports.FollowUpScheduler
	region    string
	log       *logger.Logger
}

// New creates a new lead management service. scheduler may be nil when
// reminders are disabled.
func New(repo Repository, eventBus events.Bus, scheduler ports.FollowUpScheduler, region string, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, scheduler: scheduler, region: region, log: log}
}

// Create registers a new lead in status new.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	fullName := strings.TrimSpace(sanitize.Text(req.FullName))
	if fullName == "" {
		return transport.LeadResponse{}, apperr.Validation("full name is required")
	}

	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		FullName:     fullName,
		Phone:        phone.NormalizePtr(req.Phone, s.region),
		Email:        normalizeEmail(req.Email),
		Source:       normalizeSource(req.Source),
		PackageID:    req.PackageID,
		AssignedTo:   req.AssignedTo,
		FollowUpDate: followUp,
	})
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.eventBus.Publish(ctx, events.LeadCreated{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		FullName:   lead.FullName,
		Source:     derefString(lead.Source),
		AssignedTo: lead.AssignedTo,
	})
	if followUp != nil {
		s.scheduleFollowUp(ctx, lead.ID, *followUp)
	}

	return ToLeadResponse(lead), nil
}

// Get returns a lead with its notes (newest first) and status timeline.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoError(err)
	}

	notes, err := s.repo.ListNotes(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}
	timeline, err := s.repo.ListStatusEvents(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}

	resp := transport.LeadDetailResponse{
		LeadResponse: ToLeadResponse(lead),
		Notes:        make([]transport.NoteResponse, 0, len(notes)),
		Timeline:     make([]transport.StatusEventResponse, 0, len(timeline)),
	}
	for _, n := range notes {
		resp.Notes = append(resp.Notes, ToNoteResponse(n))
	}
	for _, ev := range timeline {
		resp.Timeline = append(resp.Timeline, ToStatusEventResponse(ev))
	}
	return resp, nil
}

// List returns a filtered, paginated page of leads.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	params := repository.ListParams{
		Search:    strings.TrimSpace(req.Search),
		Offset:    (page - 1) * pageSize,
		Limit:     pageSize,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	}
	if req.Status != "" {
		status, ok := domain.ParseStatus(req.Status)
		if !ok {
			return transport.LeadListResponse{}, apperr.Validation("unknown lead status")
		}
		params.Status = &status
	}
	if req.Source != "" {
		params.Source = normalizeSource(&req.Source)
	}
	if req.PackageID != "" {
		id, err := uuid.Parse(req.PackageID)
		if err != nil {
			return transport.LeadListResponse{}, apperr.Validation("invalid package id")
		}
		params.PackageID = &id
	}
	if req.AssignedTo != "" {
		id, err := uuid.Parse(req.AssignedTo)
		if err != nil {
			return transport.LeadListResponse{}, apperr.Validation("invalid assignee id")
		}
		params.AssignedTo = &id
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, len(leads))
	for i, lead := range leads {
		items[i] = ToLeadResponse(lead)
	}

	totalPages := (total + pageSize - 1) / pageSize

	return transport.LeadListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Update changes contact details, package of interest and assignment.
// Status is not editable here.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateLeadParams{}

	if req.FullName != nil {
		name := strings.TrimSpace(sanitize.Text(*req.FullName))
		if name == "" {
			return transport.LeadResponse{}, apperr.Validation("full name is required")
		}
		params.FullName = &name
	}
	if req.Phone != nil {
		normalized := phone.NormalizeE164(*req.Phone, s.region)
		params.Phone = &normalized
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		params.Email = &email
	}
	if req.Source != nil {
		source := analytics.NormalizeSource(*req.Source)
		params.Source = &source
	}
	if fields := req.InvalidFields(); len(fields) > 0 {
		return transport.LeadResponse{}, apperr.Validation("validation failed").WithDetails(fields)
	}
	if req.PackageID.Set {
		params.PackageID = req.PackageID.Value
		params.PackageIDSet = true
	}
	if req.AssignedTo.Set {
		params.AssignedTo = req.AssignedTo.Value
		params.AssignedToSet = true
	}

	lead, err := s.repo.Update(ctx, id, params)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}
	return ToLeadResponse(lead), nil
}

// ChangeStatus applies a staff pipeline move. Won is rejected; conversion
// is the only way to win a lead.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, to domain.Status, reason string, actorID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}
	current, err := lead.State()
	if err != nil {
		return transport.LeadResponse{}, domain.AsAppError(err)
	}

	next, err := domain.Transition(current, to)
	if err != nil {
		return transport.LeadResponse{}, domain.AsAppError(err)
	}
	if reason = strings.TrimSpace(reason); reason == "" {
		reason = "moved to " + string(next.Status())
	}

	return s.applyStatus(ctx, lead, next.Status(), reason, actorID)
}

// MarkLost drops an open lead out of the pipeline.
func (s *Service) MarkLost(ctx context.Context, id uuid.UUID, reason string, actorID uuid.UUID) (transport.LeadResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return transport.LeadResponse{}, apperr.Validation("a reason is required to mark a lead lost")
	}
	return s.ChangeStatus(ctx, id, domain.StatusLost, reason, actorID)
}

// Reactivate returns a lost lead to new. Only the status changes; notes,
// follow-up date and assignment are kept.
func (s *Service) Reactivate(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}
	current, err := lead.State()
	if err != nil {
		return transport.LeadResponse{}, domain.AsAppError(err)
	}

	next, err := domain.Reactivate(current)
	if err != nil {
		return transport.LeadResponse{}, domain.AsAppError(err)
	}
	return s.applyStatus(ctx, lead, next.Status(), reasonReactivated, actorID)
}

// SetFollowUpDate sets or clears the next follow-up date and queues the reminder.
func (s *Service) SetFollowUpDate(ctx context.Context, id uuid.UUID, req transport.SetFollowUpRequest) (transport.LeadResponse, error) {
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	if err := s.repo.SetFollowUpDate(ctx, id, date); err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}
	if date != nil {
		s.scheduleFollowUp(ctx, id, *date)
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}
	return ToLeadResponse(lead), nil
}

func (s *Service) applyStatus(ctx context.Context, lead repository.Lead, to domain.Status, reason string, actorID uuid.UUID) (transport.LeadResponse, error) {
	updated, err := s.repo.UpdateStatus(ctx, repository.StatusChangeParams{
		LeadID:  lead.ID,
		From:    lead.Status,
		To:      to,
		ActorID: &actorID,
		Reason:  reason,
	})
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err)
	}

	s.log.Info("lead status changed", "leadId", lead.ID, "from", lead.Status, "to", to, "actorId", actorID)
	s.eventBus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		OldStatus: string(lead.Status),
		NewStatus: string(to),
		ActorID:   &actorID,
		Reason:    reason,
	})

	return ToLeadResponse(updated), nil
}

func (s *Service) scheduleFollowUp(ctx context.Context, leadID uuid.UUID, date time.Time) {
	if s.scheduler == nil {
		return
	}
	if err := s.scheduler.ScheduleFollowUp(ctx, leadID, date); err != nil {
		s.log.Error("failed to schedule follow-up reminder", "error", err, "leadId", leadID, "date", date.Format(time.DateOnly))
	}
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("lead not found")
	case errors.Is(err, repository.ErrStatusConflict):
		return apperr.Conflict("lead status changed meanwhile; reload and retry")
	default:
		return err
	}
}

func parseOptionalDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperr.Validation("dates must be YYYY-MM-DD")
	}
	return &d, nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	out := strings.ToLower(strings.TrimSpace(*email))
	if out == "" {
		return nil
	}
	return &out
}

func normalizeSource(source *string) *string {
	if source == nil || strings.TrimSpace(*source) == "" {
		return nil
	}
	out := analytics.NormalizeSource(*source)
	return &out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
