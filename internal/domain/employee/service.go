package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hr-interviews-go/internal/domain/events"
	"hr-interviews-go/pkg/logger"
)

type Service struct {
	repo      Repository
	cache     Cache
	cacheTTL  time.Duration
	publisher events.Publisher
	log       logger.Logger
}

type Deps struct {
	Cache     Cache
	CacheTTL  time.Duration
	Publisher events.Publisher
	Log       logger.Logger
}

func NewService(repo Repository) *Service {
	return NewServiceWithDeps(repo, Deps{})
}

func NewServiceWithDeps(repo Repository, deps Deps) *Service {
	svc := &Service{
		repo:      repo,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
		publisher: deps.Publisher,
		log:       deps.Log,
	}
	if svc.cache == nil || svc.cacheTTL <= 0 {
		svc.cache = noopCache{}
	}
	if svc.publisher == nil {
		svc.publisher = events.NopPublisher{}
	}
	if svc.log == nil {
		svc.log = logger.Discard()
	}
	return svc
}

// List returns every employee, or only those whose first name, last names or
// email contain search case-insensitively.
func (s *Service) List(ctx context.Context, search string) ([]Employee, error) {
	employees, err := s.repo.ListEmployees(ctx, ListFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []Employee{}
	}
	return employees, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*EmployeeWithInterviews, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}
	generation := s.cache.Generation(ctx, id)

	employee, err := s.repo.GetEmployeeByID(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}

	summaries, err := s.repo.ListInterviewSummaries(ctx, id)
	if err != nil {
		return nil, err
	}

	result := withInterviews(*employee, summaries)
	s.cache.Set(ctx, id, generation, result, s.cacheTTL)
	return result, nil
}

func (s *Service) Create(ctx context.Context, input CreateEmployeeInput) (*Employee, error) {
	employee := Employee{
		ID:        uuid.NewString(),
		Email:     strings.TrimSpace(input.Email),
		FirstName: strings.TrimSpace(input.FirstName),
		LastNames: strings.TrimSpace(input.LastNames),
		Phone:     trimOptional(input.Phone),
	}
	if err := validateEmployee(employee); err != nil {
		return nil, err
	}

	if err := s.repo.CreateEmployee(ctx, &employee); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewEmployeeEvent(events.EmployeeCreated, employee.ID))
	return &employee, nil
}

// Update applies the non-nil fields of input and returns the employee with
// its interview summaries.
func (s *Service) Update(ctx context.Context, id string, input UpdateEmployeeInput) (*EmployeeWithInterviews, error) {
	var result *EmployeeWithInterviews

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		employee, err := tx.GetEmployeeByID(ctx, id)
		if err != nil {
			return err
		}

		if !input.IsEmpty() {
			applyUpdate(employee, input)
			if err := validateEmployee(*employee); err != nil {
				return err
			}
			if err := tx.UpdateEmployee(ctx, employee); err != nil {
				return err
			}
		}

		summaries, err := tx.ListInterviewSummaries(ctx, id)
		if err != nil {
			return err
		}
		result = withInterviews(*employee, summaries)
		return nil
	})
	if err != nil {
		return nil, notFound(id, err)
	}

	// Reads that started before the commit must not repopulate the old row.
	s.cache.Delete(ctx, id)
	s.publish(ctx, events.NewEmployeeEvent(events.EmployeeUpdated, id))
	return result, nil
}

// Delete removes the employee's interviews and then the employee in one
// transaction. Nothing is removed when the employee does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	var removedInterviews int64

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		removed, err := tx.DeleteInterviewsByEmployee(ctx, id)
		if err != nil {
			return err
		}
		deleted, err := tx.DeleteEmployee(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrEmployeeNotFound
		}
		removedInterviews = removed
		return nil
	})
	if err != nil {
		return notFound(id, err)
	}

	s.cache.Delete(ctx, id)
	s.log.Debug("employee: deleted", "id", id, "interviews_removed", removedInterviews)
	s.publish(ctx, events.NewEmployeeEvent(events.EmployeeDeleted, id))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.InternalError("employee: publish event failed", err, "type", event.Type, "id", event.ID)
	}
}

func applyUpdate(employee *Employee, input UpdateEmployeeInput) {
	if input.Email != nil {
		employee.Email = strings.TrimSpace(*input.Email)
	}
	if input.FirstName != nil {
		employee.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastNames != nil {
		employee.LastNames = strings.TrimSpace(*input.LastNames)
	}
	if input.Phone != nil {
		employee.Phone = trimOptional(input.Phone)
	}
}

func validateEmployee(employee Employee) error {
	switch {
	case employee.Email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidEmployee)
	case employee.FirstName == "":
		return fmt.Errorf("%w: firstName is required", ErrInvalidEmployee)
	case employee.LastNames == "":
		return fmt.Errorf("%w: lastNames is required", ErrInvalidEmployee)
	}
	return nil
}

func withInterviews(employee Employee, summaries []InterviewSummary) *EmployeeWithInterviews {
	if summaries == nil {
		summaries = []InterviewSummary{}
	}
	return &EmployeeWithInterviews{Employee: employee, Interviews: summaries}
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
