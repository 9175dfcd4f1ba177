package interview

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hr-interviews-go/internal/domain/events"
)

type fakeInterviewRepo struct {
	employees  map[string]bool
	interviews map[string]*Interview
}

func newFakeInterviewRepo(employeeIDs ...string) *fakeInterviewRepo {
	repo := &fakeInterviewRepo{
		employees:  make(map[string]bool),
		interviews: make(map[string]*Interview),
	}
	for _, id := range employeeIDs {
		repo.employees[id] = true
	}
	return repo
}

func (r *fakeInterviewRepo) ListInterviews(ctx context.Context, filter ListFilter) ([]Interview, error) {
	result := make([]Interview, 0)
	for _, iv := range r.interviews {
		if filter.EmployeeID == "" || iv.EmployeeID == filter.EmployeeID {
			result = append(result, *iv)
		}
	}
	return result, nil
}

func (r *fakeInterviewRepo) GetInterviewByID(ctx context.Context, id string) (*Interview, error) {
	iv, ok := r.interviews[id]
	if !ok {
		return nil, ErrInterviewNotFound
	}
	copied := *iv
	return &copied, nil
}

func (r *fakeInterviewRepo) CreateInterview(ctx context.Context, interview *Interview) error {
	// Mirrors the foreign key on interviews.employee_id.
	if !r.employees[interview.EmployeeID] {
		return ErrEmployeeNotFound
	}
	now := time.Now().UTC()
	interview.CreatedAt = now
	interview.UpdatedAt = now
	copied := *interview
	r.interviews[interview.ID] = &copied
	return nil
}

func (r *fakeInterviewRepo) UpdateInterview(ctx context.Context, interview *Interview) error {
	if !r.employees[interview.EmployeeID] {
		return ErrEmployeeNotFound
	}
	if _, ok := r.interviews[interview.ID]; !ok {
		return ErrInterviewNotFound
	}
	interview.UpdatedAt = time.Now().UTC()
	copied := *interview
	r.interviews[interview.ID] = &copied
	return nil
}

func (r *fakeInterviewRepo) DeleteInterview(ctx context.Context, id string) (bool, error) {
	if _, ok := r.interviews[id]; !ok {
		return false, nil
	}
	delete(r.interviews, id)
	return true, nil
}

type recordingCache struct {
	deleted []string
}

func (c *recordingCache) Delete(_ context.Context, employeeID string) {
	c.deleted = append(c.deleted, employeeID)
}

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

func statusPtr(status Status) *Status {
	return &status
}

func strPtr(value string) *string {
	return &value
}

var scheduledAt = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestCreateDefaultsStatusToScheduled(t *testing.T) {
	repo := newFakeInterviewRepo("emp-1")
	cache := &recordingCache{}
	publisher := &recordingPublisher{}
	svc := NewServiceWithDeps(repo, Deps{EmployeeCache: cache, Publisher: publisher})

	created, err := svc.Create(context.Background(), CreateInterviewInput{
		EmployeeID:  "emp-1",
		Position:    " Backend Engineer ",
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != StatusScheduled {
		t.Fatalf("expected scheduled status, got %q", created.Status)
	}
	if created.Position != "Backend Engineer" {
		t.Fatalf("expected trimmed position, got %q", created.Position)
	}
	if len(cache.deleted) != 1 || cache.deleted[0] != "emp-1" {
		t.Fatalf("expected employee cache invalidated, got %v", cache.deleted)
	}
	if len(publisher.events) != 1 || publisher.events[0].Type != events.InterviewCreated {
		t.Fatalf("expected interview.created event, got %+v", publisher.events)
	}
}

func TestCreateWithExplicitStatus(t *testing.T) {
	svc := NewService(newFakeInterviewRepo("emp-1"))
	created, err := svc.Create(context.Background(), CreateInterviewInput{
		EmployeeID:  "emp-1",
		Position:    "QA",
		ScheduledAt: scheduledAt,
		Status:      statusPtr(StatusCompleted),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q", created.Status)
	}
}

func TestCreateUnknownEmployeeFails(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInterviewInput{
		EmployeeID:  "ghost",
		Position:    "QA",
		ScheduledAt: scheduledAt,
	})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if len(repo.interviews) != 0 {
		t.Fatalf("expected no orphaned interview")
	}
}

func TestCreateRejectsLongNotes(t *testing.T) {
	svc := NewService(newFakeInterviewRepo("emp-1"))
	_, err := svc.Create(context.Background(), CreateInterviewInput{
		EmployeeID:  "emp-1",
		Position:    "QA",
		ScheduledAt: scheduledAt,
		Notes:       strPtr(strings.Repeat("n", MaxNotesLength+1)),
	})
	if !errors.Is(err, ErrInvalidInterview) {
		t.Fatalf("expected ErrInvalidInterview, got %v", err)
	}
}

func TestListByEmployee(t *testing.T) {
	repo := newFakeInterviewRepo("emp-1", "emp-2")
	svc := NewService(repo)
	for _, employeeID := range []string{"emp-1", "emp-1", "emp-2"} {
		if _, err := svc.Create(context.Background(), CreateInterviewInput{EmployeeID: employeeID, Position: "QA", ScheduledAt: scheduledAt}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	all, err := svc.List(context.Background())
	if err != nil || len(all) != 3 {
		t.Fatalf("expected 3 interviews, got %d (%v)", len(all), err)
	}

	mine, err := svc.ListByEmployee(context.Background(), "emp-1")
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 interviews, got %d (%v)", len(mine), err)
	}

	none, err := svc.ListByEmployee(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", none)
	}
}

func TestUpdateAllowsAnyStatusTransition(t *testing.T) {
	repo := newFakeInterviewRepo("emp-1")
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInterviewInput{EmployeeID: "emp-1", Position: "QA", ScheduledAt: scheduledAt, Status: statusPtr(StatusCompleted)})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, UpdateInterviewInput{Status: statusPtr(StatusScheduled)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Status != StatusScheduled {
		t.Fatalf("expected scheduled, got %q", updated.Status)
	}
	if updated.Position != "QA" || !updated.ScheduledAt.Equal(scheduledAt) {
		t.Fatalf("expected other fields untouched, got %+v", updated)
	}
}

func TestUpdateMovingEmployeeInvalidatesBoth(t *testing.T) {
	repo := newFakeInterviewRepo("emp-1", "emp-2")
	cache := &recordingCache{}
	svc := NewServiceWithDeps(repo, Deps{EmployeeCache: cache})
	created, err := svc.Create(context.Background(), CreateInterviewInput{EmployeeID: "emp-1", Position: "QA", ScheduledAt: scheduledAt})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	cache.deleted = nil

	if _, err := svc.Update(context.Background(), created.ID, UpdateInterviewInput{EmployeeID: strPtr("emp-2")}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cache.deleted) != 2 || cache.deleted[0] != "emp-2" || cache.deleted[1] != "emp-1" {
		t.Fatalf("expected both employees invalidated, got %v", cache.deleted)
	}
}

func TestUpdateMissingInterview(t *testing.T) {
	svc := NewService(newFakeInterviewRepo("emp-1"))
	_, err := svc.Update(context.Background(), "missing", UpdateInterviewInput{Position: strPtr("QA")})
	if !errors.Is(err, ErrInterviewNotFound) {
		t.Fatalf("expected ErrInterviewNotFound, got %v", err)
	}
}

func TestDeleteInterview(t *testing.T) {
	repo := newFakeInterviewRepo("emp-1")
	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateInterviewInput{EmployeeID: "emp-1", Position: "QA", ScheduledAt: scheduledAt})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.interviews) != 0 {
		t.Fatalf("expected interview removed")
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrInterviewNotFound) {
		t.Fatalf("expected ErrInterviewNotFound on second delete, got %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" COMPLETED ")
	if err != nil || status != StatusCompleted {
		t.Fatalf("expected completed, got %q (%v)", status, err)
	}
	if _, err := ParseStatus("postponed"); !errors.Is(err, ErrInvalidInterview) {
		t.Fatalf("expected ErrInvalidInterview, got %v", err)
	}
}
