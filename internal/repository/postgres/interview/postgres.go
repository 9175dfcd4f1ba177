package interview

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	interviewdomain "hr-interviews-go/internal/domain/interview"
	"hr-interviews-go/internal/repository/postgres/pgerr"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListInterviews(ctx context.Context, filter interviewdomain.ListFilter) ([]interviewdomain.Interview, error) {
	query := r.db.WithContext(ctx).Model(&interviewdomain.Interview{})
	if filter.EmployeeID != "" {
		query = query.Where("employee_id = ?", filter.EmployeeID)
	}

	var interviews []interviewdomain.Interview
	if err := query.Order("scheduled_at asc, id asc").Find(&interviews).Error; err != nil {
		if pgerr.IsInvalidInput(err) {
			return []interviewdomain.Interview{}, nil
		}
		return nil, err
	}
	return interviews, nil
}

func (r *PostgresRepository) GetInterviewByID(ctx context.Context, id string) (*interviewdomain.Interview, error) {
	var interview interviewdomain.Interview
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&interview).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || pgerr.IsInvalidInput(err) {
			return nil, interviewdomain.ErrInterviewNotFound
		}
		return nil, err
	}
	return &interview, nil
}

func (r *PostgresRepository) CreateInterview(ctx context.Context, interview *interviewdomain.Interview) error {
	return translateWriteError(r.db.WithContext(ctx).Create(interview).Error)
}

func (r *PostgresRepository) UpdateInterview(ctx context.Context, interview *interviewdomain.Interview) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&interviewdomain.Interview{}).
		Where("id = ?", interview.ID).
		Updates(map[string]interface{}{
			"employee_id":  interview.EmployeeID,
			"position":     interview.Position,
			"notes":        interview.Notes,
			"scheduled_at": interview.ScheduledAt,
			"status":       interview.Status,
			"updated_at":   now,
		})
	if err := translateWriteError(result.Error); err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return interviewdomain.ErrInterviewNotFound
	}
	interview.UpdatedAt = now
	return nil
}

func (r *PostgresRepository) DeleteInterview(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&interviewdomain.Interview{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

// translateWriteError maps a missing or malformed employee reference to
// ErrEmployeeNotFound.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if pgerr.IsForeignKeyViolation(err) || pgerr.IsInvalidInput(err) {
		return interviewdomain.ErrEmployeeNotFound
	}
	return err
}
