package management

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/internal/leads/domain"
	"umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/internal/leads/transport"
	"umroh_travel_backend/platform/apperr"
	"umroh_travel_backend/platform/logger"
	"umroh_travel_backend/platform/phone"

	"github.com/google/uuid"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *recordingBus) PublishSync(ctx context.Context, e events.Event) error {
	b.Publish(ctx, e)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

type scheduled struct {
	leadID uuid.UUID
	date   time.Time
}

type fakeScheduler struct {
	calls []scheduled
}

func (f *fakeScheduler) ScheduleFollowUp(_ context.Context, leadID uuid.UUID, date time.Time) error {
	f.calls = append(f.calls, scheduled{leadID, date})
	return nil
}

type fakeRepo struct {
	leads    map[uuid.UUID]repository.Lead
	events   []repository.StatusChangeParams
	conflict bool
	lastList repository.ListParams
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: map[uuid.UUID]repository.Lead{}}
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (f *fakeRepo) List(_ context.Context, p repository.ListParams) ([]repository.Lead, int, error) {
	f.lastList = p
	var out []repository.Lead
	for _, l := range f.leads {
		if p.Status == nil || l.Status == *p.Status {
			out = append(out, l)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(_ context.Context, p repository.CreateLeadParams) (repository.Lead, error) {
	lead := repository.Lead{
		ID:           uuid.New(),
		FullName:     p.FullName,
		Phone:        p.Phone,
		Email:        p.Email,
		Source:       p.Source,
		PackageID:    p.PackageID,
		AssignedTo:   p.AssignedTo,
		FollowUpDate: p.FollowUpDate,
		Status:       domain.StatusNew,
	}
	f.leads[lead.ID] = lead
	return lead, nil
}

func (f *fakeRepo) Update(_ context.Context, id uuid.UUID, p repository.UpdateLeadParams) (repository.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	if p.FullName != nil {
		lead.FullName = *p.FullName
	}
	if p.AssignedToSet {
		lead.AssignedTo = p.AssignedTo
	}
	f.leads[id] = lead
	return lead, nil
}

func (f *fakeRepo) SetFollowUpDate(_ context.Context, id uuid.UUID, date *time.Time) error {
	lead, ok := f.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	lead.FollowUpDate = date
	f.leads[id] = lead
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, p repository.StatusChangeParams) (repository.Lead, error) {
	lead, ok := f.leads[p.LeadID]
	if !ok {
		return repository.Lead{}, repository.ErrNotFound
	}
	if f.conflict || lead.Status != p.From {
		return repository.Lead{}, repository.ErrStatusConflict
	}
	lead.Status = p.To
	f.leads[p.LeadID] = lead
	f.events = append(f.events, p)
	return lead, nil
}

func (f *fakeRepo) ListStatusEvents(context.Context, uuid.UUID) ([]repository.StatusEvent, error) {
	return nil, nil
}

func (f *fakeRepo) ListNotes(context.Context, uuid.UUID) ([]repository.LeadNote, error) {
	return nil, nil
}

func (f *fakeRepo) seed(status domain.Status) repository.Lead {
	followUp := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC)
	assignee := uuid.New()
	lead := repository.Lead{
		ID:           uuid.New(),
		FullName:     "Ahmad Fauzi",
		Status:       status,
		FollowUpDate: &followUp,
		AssignedTo:   &assignee,
	}
	if status == domain.StatusWon {
		booking := uuid.New()
		lead.ConvertedBookingID = &booking
	}
	f.leads[lead.ID] = lead
	return lead
}

func newService(repo *fakeRepo) (*Service, *recordingBus, *fakeScheduler) {
	bus := &recordingBus{}
	sched := &fakeScheduler{}
	return New(repo, bus, sched, phone.DefaultRegion, logger.Discard()), bus, sched
}

func strPtr(s string) *string { return &s }

func TestCreateNormalizesAndSchedules(t *testing.T) {
	repo := newFakeRepo()
	svc, bus, sched := newService(repo)

	resp, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		FullName:     "  Siti Aminah ",
		Phone:        strPtr("0812-3456-7890"),
		Email:        strPtr(" Siti@Example.com "),
		Source:       strPtr("Walk-In"),
		FollowUpDate: strPtr("2026-10-20"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if resp.FullName != "Siti Aminah" || resp.Status != "new" || resp.StatusLabel != "Baru" {
		t.Fatalf("unexpected lead %+v", resp)
	}
	if want := phone.NormalizeE164("0812-3456-7890", phone.DefaultRegion); resp.Phone == nil || *resp.Phone != want {
		t.Fatalf("expected phone %q, got %v", want, resp.Phone)
	}
	if *resp.Email != "siti@example.com" || *resp.Source != "walk_in" {
		t.Fatalf("unexpected email/source %q/%q", *resp.Email, *resp.Source)
	}
	if resp.FollowUpDate == nil || *resp.FollowUpDate != "2026-10-20" {
		t.Fatalf("unexpected follow-up %v", resp.FollowUpDate)
	}
	if len(sched.calls) != 1 || len(bus.events) != 1 {
		t.Fatalf("expected one reminder and one event, got %d/%d", len(sched.calls), len(bus.events))
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc, _, _ := newService(newFakeRepo())
	_, err := svc.Create(context.Background(), transport.CreateLeadRequest{FullName: "   "})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangeStatusRules(t *testing.T) {
	cases := []struct {
		from     domain.Status
		to       domain.Status
		wantKind apperr.Kind
	}{
		{domain.StatusNew, domain.StatusNegotiation, apperr.KindUnknown},
		{domain.StatusFollowUp, domain.StatusWon, apperr.KindValidation},
		{domain.StatusClosing, domain.StatusContacted, apperr.KindValidation},
		{domain.StatusLost, domain.StatusContacted, apperr.KindValidation},
		{domain.StatusWon, domain.StatusLost, apperr.KindConflict},
	}

	for _, tc := range cases {
		repo := newFakeRepo()
		svc, bus, _ := newService(repo)
		lead := repo.seed(tc.from)

		_, err := svc.ChangeStatus(context.Background(), lead.ID, tc.to, "", uuid.New())
		if tc.wantKind == apperr.KindUnknown {
			if err != nil {
				t.Fatalf("%s -> %s: %v", tc.from, tc.to, err)
			}
			if repo.leads[lead.ID].Status != tc.to || len(bus.events) != 1 {
				t.Fatalf("%s -> %s: not applied", tc.from, tc.to)
			}
			continue
		}
		if !apperr.Is(err, tc.wantKind) {
			t.Fatalf("%s -> %s: expected %s, got %v", tc.from, tc.to, tc.wantKind, err)
		}
		if repo.leads[lead.ID].Status != tc.from || len(bus.events) != 0 {
			t.Fatalf("%s -> %s: rejected move must not write", tc.from, tc.to)
		}
	}
}

func TestChangeStatusConcurrentWriteIsConflict(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)
	lead := repo.seed(domain.StatusContacted)
	repo.conflict = true

	_, err := svc.ChangeStatus(context.Background(), lead.ID, domain.StatusFollowUp, "", uuid.New())
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMarkLostRequiresReason(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)
	lead := repo.seed(domain.StatusNegotiation)

	if _, err := svc.MarkLost(context.Background(), lead.ID, " ", uuid.New()); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.MarkLost(context.Background(), lead.ID, "chose another agency", uuid.New()); err != nil {
		t.Fatalf("mark lost: %v", err)
	}
	if got := repo.events[0].Reason; got != "chose another agency" {
		t.Fatalf("expected reason on event, got %q", got)
	}
}

func TestReactivateChangesOnlyStatus(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)
	lead := repo.seed(domain.StatusLost)

	resp, err := svc.Reactivate(context.Background(), lead.ID, uuid.New())
	if err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if resp.Status != "new" {
		t.Fatalf("expected new, got %s", resp.Status)
	}

	after := repo.leads[lead.ID]
	if after.FullName != lead.FullName || *after.FollowUpDate != *lead.FollowUpDate || *after.AssignedTo != *lead.AssignedTo {
		t.Fatalf("reactivation touched more than status: %+v", after)
	}
}

func TestReactivateRejectsOpenLead(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)
	lead := repo.seed(domain.StatusContacted)

	if _, err := svc.Reactivate(context.Background(), lead.ID, uuid.New()); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetFollowUpDateSchedulesReminder(t *testing.T) {
	repo := newFakeRepo()
	svc, _, sched := newService(repo)
	lead := repo.seed(domain.StatusFollowUp)

	resp, err := svc.SetFollowUpDate(context.Background(), lead.ID, transport.SetFollowUpRequest{Date: strPtr("2026-11-02")})
	if err != nil {
		t.Fatalf("set follow-up: %v", err)
	}
	if *resp.FollowUpDate != "2026-11-02" || len(sched.calls) != 1 {
		t.Fatalf("unexpected follow-up %v / %d calls", resp.FollowUpDate, len(sched.calls))
	}

	resp, err = svc.SetFollowUpDate(context.Background(), lead.ID, transport.SetFollowUpRequest{})
	if err != nil {
		t.Fatalf("clear follow-up: %v", err)
	}
	if resp.FollowUpDate != nil || len(sched.calls) != 1 {
		t.Fatal("clearing must not schedule")
	}
}

func TestGetUnknownLead(t *testing.T) {
	svc, _, _ := newService(newFakeRepo())
	if _, err := svc.Get(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPaginates(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)
	for i := 0; i < 3; i++ {
		repo.seed(domain.StatusNew)
	}
	repo.seed(domain.StatusLost)

	resp, err := svc.List(context.Background(), transport.ListLeadsRequest{Status: "new", PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.Total != 3 || resp.TotalPages != 2 || resp.Page != 1 {
		t.Fatalf("unexpected page %+v", resp)
	}
}

func TestListCapsPageSize(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)

	resp, err := svc.List(context.Background(), transport.ListLeadsRequest{PageSize: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if resp.PageSize != maxPageSize || repo.lastList.Limit != maxPageSize {
		t.Fatalf("page size = %d, limit = %d, want %d", resp.PageSize, repo.lastList.Limit, maxPageSize)
	}
}

func TestUpdateRejectsMalformedReference(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)
	lead := repo.seed(domain.StatusContacted)

	var req transport.UpdateLeadRequest
	if err := json.Unmarshal([]byte(`{"assignedTo":"not-a-uuid"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	_, err := svc.Update(context.Background(), lead.ID, req)
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, _ := appErr.Details.(map[string]string)
	if details["assignedTo"] != "uuid" {
		t.Fatalf("unexpected details %v", appErr.Details)
	}
	if *repo.leads[lead.ID].AssignedTo != *lead.AssignedTo {
		t.Fatal("assignment changed despite invalid input")
	}
}

func TestUpdateClearsAssignment(t *testing.T) {
	repo := newFakeRepo()
	svc, _, _ := newService(repo)
	lead := repo.seed(domain.StatusContacted)

	var req transport.UpdateLeadRequest
	if err := json.Unmarshal([]byte(`{"assignedTo":null}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, err := svc.Update(context.Background(), lead.ID, req); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.leads[lead.ID].AssignedTo != nil {
		t.Fatal("expected assignment to be cleared")
	}
}
