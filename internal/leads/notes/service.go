// Package notes handles the append-only follow-up log of a lead.
package notes

import (
	"context"
	"errors"
	"strings"
	"time"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/leads/domain"
	"umroh_travel_backend/internal/leads/management"
	"umroh_travel_backend/internal/leads/ports"
	"umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/internal/leads/transport"
	"umroh_travel_backend/internal/shared/calendar"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/sanitize"

	"github.com/google/uuid"
)

const reasonNoteLogged = "follow-up note logged"

// Repository is what the notes service needs.
type Repository interface {
	repository.LeadReader
	repository.NoteStore
}

type Service struct {
	repo      Repository
	eventBus  events.Bus
	scheduler ports.FollowUpScheduler
	log       *logger.Logger
}

func New(repo Repository, eventBus events.Bus, scheduler ports.FollowUpScheduler, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, scheduler: scheduler, log: log}
}

// Add appends a note. A lead still in new moves to contacted, and a
// follow-up date on the note becomes the lead's next follow-up.
func (s *Service) Add(ctx context.Context, leadID, authorID uuid.UUID, req transport.AddNoteRequest) (transport.AddNoteResponse, error) {
	body := strings.TrimSpace(sanitize.Text(req.Body))
	if body == "" {
		return transport.AddNoteResponse{}, apperr.Validation("note body is required")
	}

	var followUp *time.Time
	if req.FollowUpDate != nil && strings.TrimSpace(*req.FollowUpDate) != "" {
		d, err := calendar.ParseDate(strings.TrimSpace(*req.FollowUpDate))
		if err != nil {
			return transport.AddNoteResponse{}, apperr.Validation("dates must be YYYY-MM-DD")
		}
		followUp = &d
	}

	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.AddNoteResponse{}, apperr.NotFound("lead not found")
		}
		return transport.AddNoteResponse{}, err
	}
	current, err := lead.State()
	if err != nil {
		return transport.AddNoteResponse{}, domain.AsAppError(err)
	}

	params := repository.AddNoteParams{
		LeadID:       leadID,
		AuthorID:     authorID,
		Body:         body,
		FollowUpDate: followUp,
	}
	if next, ok := domain.AdvanceOnNote(current); ok {
		params.Advance = &repository.StatusChangeParams{
			LeadID:  leadID,
			From:    current.Status(),
			To:      next.Status(),
			ActorID: &authorID,
			Reason:  reasonNoteLogged,
		}
	}

	note, advanced, err := s.repo.AddNote(ctx, params)
	if err != nil {
		return transport.AddNoteResponse{}, err
	}

	if advanced {
		s.eventBus.Publish(ctx, events.LeadStatusChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    leadID,
			OldStatus: string(params.Advance.From),
			NewStatus: string(params.Advance.To),
			ActorID:   &authorID,
			Reason:    reasonNoteLogged,
		})
	}
	if followUp != nil && s.scheduler != nil {
		if err := s.scheduler.ScheduleFollowUp(ctx, leadID, *followUp); err != nil {
			s.log.Error("failed to schedule follow-up reminder", "error", err, "leadId", leadID)
		}
	}

	updated, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		return transport.AddNoteResponse{}, err
	}

	return transport.AddNoteResponse{
		Note: management.ToNoteResponse(note),
		Lead: management.ToLeadResponse(updated),
	}, nil
}

// List returns the notes of a lead, newest first.
func (s *Service) List(ctx context.Context, leadID uuid.UUID) ([]transport.NoteResponse, error) {
	if _, err := s.repo.GetByID(ctx, leadID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("lead not found")
		}
		return nil, err
	}

	notes, err := s.repo.ListNotes(ctx, leadID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.NoteResponse, len(notes))
	for i, n := range notes {
		out[i] = management.ToNoteResponse(n)
	}
	return out, nil
}
