// Package seed loads the demo data set used for local development.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	employeedomain "hr-interviews-go/internal/domain/employee"
	interviewdomain "hr-interviews-go/internal/domain/interview"
	employeerepo "hr-interviews-go/internal/repository/postgres/employee"
	interviewrepo "hr-interviews-go/internal/repository/postgres/interview"
	"hr-interviews-go/pkg/logger"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type Fixtures struct {
	Employees []EmployeeFixture `yaml:"employees"`
}

type EmployeeFixture struct {
	Email      string             `yaml:"email"`
	Phone      string             `yaml:"phone"`
	FirstName  string             `yaml:"first_name"`
	LastNames  string             `yaml:"last_names"`
	Interviews []InterviewFixture `yaml:"interviews"`
}

type InterviewFixture struct {
	Position    string    `yaml:"position"`
	Notes       string    `yaml:"notes"`
	ScheduledAt time.Time `yaml:"scheduled_at"`
	Status      string    `yaml:"status"`
}

type Result struct {
	Employees  int
	Interviews int
}

// Default returns the embedded fixture set.
func Default() (Fixtures, error) {
	return Parse(fixturesYAML)
}

func Parse(data []byte) (Fixtures, error) {
	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return Fixtures{}, fmt.Errorf("seed: parse yaml: %w", err)
	}

	for i, employee := range fixtures.Employees {
		if employee.Email == "" || employee.FirstName == "" || employee.LastNames == "" {
			return Fixtures{}, fmt.Errorf("seed: employee %d: email, first_name and last_names are required", i)
		}
		for j, interview := range employee.Interviews {
			status, err := fixtureStatus(interview.Status)
			if err != nil {
				return Fixtures{}, fmt.Errorf("seed: employee %d interview %d: %w", i, j, err)
			}
			fixtures.Employees[i].Interviews[j].Status = string(status)
			if interview.ScheduledAt.IsZero() {
				return Fixtures{}, fmt.Errorf("seed: employee %d interview %d: scheduled_at is required", i, j)
			}
		}
	}
	return fixtures, nil
}

// fixtureStatus treats a missing status like the API does.
func fixtureStatus(raw string) (interviewdomain.Status, error) {
	if strings.TrimSpace(raw) == "" {
		return interviewdomain.StatusScheduled, nil
	}
	return interviewdomain.ParseStatus(raw)
}

// Run wipes both tables and inserts fixtures in a single transaction.
func Run(ctx context.Context, db *gorm.DB, fixtures Fixtures, log logger.Logger) (Result, error) {
	var result Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := wipe.Delete(&interviewdomain.Interview{}).Error; err != nil {
			return fmt.Errorf("clear interviews: %w", err)
		}
		if err := wipe.Delete(&employeedomain.Employee{}).Error; err != nil {
			return fmt.Errorf("clear employees: %w", err)
		}

		employees := employeerepo.NewPostgres(tx)
		interviews := interviewrepo.NewPostgres(tx)

		for _, fixture := range fixtures.Employees {
			employee := employeedomain.Employee{
				ID:        uuid.NewString(),
				Email:     fixture.Email,
				FirstName: fixture.FirstName,
				LastNames: fixture.LastNames,
				Phone:     optional(fixture.Phone),
			}
			if err := employees.CreateEmployee(ctx, &employee); err != nil {
				return fmt.Errorf("create employee %s: %w", fixture.Email, err)
			}
			result.Employees++

			for _, item := range fixture.Interviews {
				status, err := fixtureStatus(item.Status)
				if err != nil {
					return fmt.Errorf("interview for %s: %w", fixture.Email, err)
				}
				interview := interviewdomain.Interview{
					ID:          uuid.NewString(),
					EmployeeID:  employee.ID,
					Position:    item.Position,
					Notes:       optional(item.Notes),
					ScheduledAt: item.ScheduledAt.UTC(),
					Status:      status,
				}
				if err := interviews.CreateInterview(ctx, &interview); err != nil {
					return fmt.Errorf("create interview for %s: %w", fixture.Email, err)
				}
				result.Interviews++
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Info("seed: completed", "employees", result.Employees, "interviews", result.Interviews)
	return result, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
