package interviews

import (
	"context"

	interviewdomain "hr-interviews-go/internal/domain/interview"
	"hr-interviews-go/pkg/logger"
)

type Service interface {
	List(ctx context.Context) ([]interviewdomain.Interview, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]interviewdomain.Interview, error)
	Create(ctx context.Context, input interviewdomain.CreateInterviewInput) (*interviewdomain.Interview, error)
	Update(ctx context.Context, id string, input interviewdomain.UpdateInterviewInput) (*interviewdomain.Interview, error)
	Delete(ctx context.Context, id string) error
}

type Handlers struct {
	Interviews Service
	log        logger.Logger
}

func New(interviews Service, log logger.Logger) *Handlers {
	return &Handlers{
		Interviews: interviews,
		log:        log,
	}
}
