package employee

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	employeedomain "hr-interviews-go/internal/domain/employee"
	interviewdomain "hr-interviews-go/internal/domain/interview"
	"hr-interviews-go/internal/repository/postgres/pgerr"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(employeedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListEmployees(ctx context.Context, filter employeedomain.ListFilter) ([]employeedomain.Employee, error) {
	query := r.db.WithContext(ctx).Model(&employeedomain.Employee{})
	search := strings.TrimSpace(filter.Search)
	if search != "" {
		pattern := "%" + escapeLike(search) + "%"
		query = query.Where("first_name ILIKE ? OR last_names ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var employees []employeedomain.Employee
	if err := query.Order("created_at asc, id asc").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *PostgresRepository) GetEmployeeByID(ctx context.Context, id string) (*employeedomain.Employee, error) {
	var employee employeedomain.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || pgerr.IsInvalidInput(err) {
			return nil, employeedomain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *PostgresRepository) ListInterviewSummaries(ctx context.Context, employeeID string) ([]employeedomain.InterviewSummary, error) {
	var summaries []employeedomain.InterviewSummary
	if err := r.db.WithContext(ctx).
		Model(&interviewdomain.Interview{}).
		Select("id, position, notes, status, scheduled_at, created_at").
		Where("employee_id = ?", employeeID).
		Order("scheduled_at asc, id asc").
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *PostgresRepository) CreateEmployee(ctx context.Context, employee *employeedomain.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *PostgresRepository) UpdateEmployee(ctx context.Context, employee *employeedomain.Employee) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&employeedomain.Employee{}).
		Where("id = ?", employee.ID).
		Updates(map[string]interface{}{
			"email":      employee.Email,
			"first_name": employee.FirstName,
			"last_names": employee.LastNames,
			"phone":      employee.Phone,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return employeedomain.ErrEmployeeNotFound
	}
	employee.UpdatedAt = now
	return nil
}

func (r *PostgresRepository) DeleteInterviewsByEmployee(ctx context.Context, employeeID string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&interviewdomain.Interview{}, "employee_id = ?", employeeID)
	if result.Error != nil && pgerr.IsInvalidInput(result.Error) {
		return 0, employeedomain.ErrEmployeeNotFound
	}
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&employeedomain.Employee{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
