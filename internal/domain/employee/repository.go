package employee

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListEmployees(ctx context.Context, filter ListFilter) ([]Employee, error)
	GetEmployeeByID(ctx context.Context, id string) (*Employee, error)
	ListInterviewSummaries(ctx context.Context, employeeID string) ([]InterviewSummary, error)
	CreateEmployee(ctx context.Context, employee *Employee) error
	UpdateEmployee(ctx context.Context, employee *Employee) error
	DeleteInterviewsByEmployee(ctx context.Context, employeeID string) (int64, error)
	DeleteEmployee(ctx context.Context, id string) (bool, error)
}
