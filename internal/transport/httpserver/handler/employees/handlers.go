package employees

import (
	"context"

	employeedomain "hr-interviews-go/internal/domain/employee"
	"hr-interviews-go/pkg/logger"
)

type Service interface {
	List(ctx context.Context, search string) ([]employeedomain.Employee, error)
	GetByID(ctx context.Context, id string) (*employeedomain.EmployeeWithInterviews, error)
	Create(ctx context.Context, input employeedomain.CreateEmployeeInput) (*employeedomain.Employee, error)
	Update(ctx context.Context, id string, input employeedomain.UpdateEmployeeInput) (*employeedomain.EmployeeWithInterviews, error)
	Delete(ctx context.Context, id string) error
}

type Handlers struct {
	Employees Service
	log       logger.Logger
}

func New(employees Service, log logger.Logger) *Handlers {
	return &Handlers{
		Employees: employees,
		log:       log,
	}
}
