package interview

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"hr-interviews-go/internal/domain/events"
	"hr-interviews-go/pkg/logger"
)

type Service struct {
	repo      Repository
	employees EmployeeCache
	publisher events.Publisher
	log       logger.Logger
}

type Deps struct {
	EmployeeCache EmployeeCache
	Publisher     events.Publisher
	Log           logger.Logger
}

func NewService(repo Repository) *Service {
	return NewServiceWithDeps(repo, Deps{})
}

func NewServiceWithDeps(repo Repository, deps Deps) *Service {
	svc := &Service{
		repo:      repo,
		employees: deps.EmployeeCache,
		publisher: deps.Publisher,
		log:       deps.Log,
	}
	if svc.employees == nil {
		svc.employees = noopEmployeeCache{}
	}
	if svc.publisher == nil {
		svc.publisher = events.NopPublisher{}
	}
	if svc.log == nil {
		svc.log = logger.Discard()
	}
	return svc
}

func (s *Service) List(ctx context.Context) ([]Interview, error) {
	return s.list(ctx, ListFilter{})
}

// ListByEmployee never fails for an unknown employee; it returns an empty list.
func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Interview, error) {
	return s.list(ctx, ListFilter{EmployeeID: strings.TrimSpace(employeeID)})
}

func (s *Service) list(ctx context.Context, filter ListFilter) ([]Interview, error) {
	items, err := s.repo.ListInterviews(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Interview{}
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, input CreateInterviewInput) (*Interview, error) {
	status := StatusScheduled
	if input.Status != nil {
		status = *input.Status
	}

	interview := Interview{
		ID:          uuid.NewString(),
		EmployeeID:  strings.TrimSpace(input.EmployeeID),
		Position:    strings.TrimSpace(input.Position),
		Notes:       trimOptional(input.Notes),
		ScheduledAt: input.ScheduledAt.UTC(),
		Status:      status,
	}
	if err := validateInterview(interview); err != nil {
		return nil, err
	}

	if err := s.repo.CreateInterview(ctx, &interview); err != nil {
		return nil, err
	}

	s.employees.Delete(ctx, interview.EmployeeID)
	s.publish(ctx, events.NewInterviewEvent(events.InterviewCreated, interview.ID, interview.EmployeeID))
	return &interview, nil
}

// Update applies the non-nil fields of input. Any status may move to any other.
func (s *Service) Update(ctx context.Context, id string, input UpdateInterviewInput) (*Interview, error) {
	interview, err := s.repo.GetInterviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousEmployeeID := interview.EmployeeID

	if input.EmployeeID != nil {
		interview.EmployeeID = strings.TrimSpace(*input.EmployeeID)
	}
	if input.Position != nil {
		interview.Position = strings.TrimSpace(*input.Position)
	}
	if input.Notes != nil {
		interview.Notes = trimOptional(input.Notes)
	}
	if input.ScheduledAt != nil {
		interview.ScheduledAt = input.ScheduledAt.UTC()
	}
	if input.Status != nil {
		interview.Status = *input.Status
	}
	if err := validateInterview(*interview); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInterview(ctx, interview); err != nil {
		return nil, err
	}

	s.employees.Delete(ctx, interview.EmployeeID)
	if previousEmployeeID != interview.EmployeeID {
		s.employees.Delete(ctx, previousEmployeeID)
	}
	s.publish(ctx, events.NewInterviewEvent(events.InterviewUpdated, interview.ID, interview.EmployeeID))
	return interview, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	interview, err := s.repo.GetInterviewByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteInterview(ctx, interview.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInterviewNotFound
	}

	s.employees.Delete(ctx, interview.EmployeeID)
	s.publish(ctx, events.NewInterviewEvent(events.InterviewDeleted, interview.ID, interview.EmployeeID))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.InternalError("interview: publish event failed", err, "type", event.Type, "id", event.ID)
	}
}

func validateInterview(interview Interview) error {
	switch {
	case interview.EmployeeID == "":
		return fmt.Errorf("%w: employeeId is required", ErrInvalidInterview)
	case interview.Position == "":
		return fmt.Errorf("%w: position is required", ErrInvalidInterview)
	case interview.ScheduledAt.IsZero():
		return fmt.Errorf("%w: scheduledAt is required", ErrInvalidInterview)
	case !interview.Status.Valid():
		return fmt.Errorf("%w: status must be one of scheduled, completed, cancelled", ErrInvalidInterview)
	case interview.Notes != nil && utf8.RuneCountInString(*interview.Notes) > MaxNotesLength:
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInterview, MaxNotesLength)
	}
	return nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
