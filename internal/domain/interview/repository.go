package interview

import "context"

type Repository interface {
	ListInterviews(ctx context.Context, filter ListFilter) ([]Interview, error)
	GetInterviewByID(ctx context.Context, id string) (*Interview, error)
	CreateInterview(ctx context.Context, interview *Interview) error
	UpdateInterview(ctx context.Context, interview *Interview) error
	DeleteInterview(ctx context.Context, id string) (bool, error)
}

// EmployeeCache drops cached employee details that embed interview summaries.
type EmployeeCache interface {
	Delete(ctx context.Context, employeeID string)
}

type noopEmployeeCache struct{}

func (noopEmployeeCache) Delete(context.Context, string) {}
