package interview

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

const MaxNotesLength = 1000

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus accepts any casing, so "COMPLETED" and "completed" are equal.
func ParseStatus(value string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: status must be one of scheduled, completed, cancelled", ErrInvalidInterview)
	}
	return status, nil
}

type Interview struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	EmployeeID  string    `gorm:"type:uuid;column:employee_id;index;not null"`
	Position    string    `gorm:"not null"`
	Notes       *string   `gorm:"column:notes"`
	ScheduledAt time.Time `gorm:"column:scheduled_at;not null"`
	Status      Status    `gorm:"type:text;not null;default:scheduled"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Interview) TableName() string {
	return "interviews"
}

type ListFilter struct {
	EmployeeID string
}

type CreateInterviewInput struct {
	EmployeeID  string
	Position    string
	Notes       *string
	ScheduledAt time.Time
	Status      *Status
}

type UpdateInterviewInput struct {
	EmployeeID  *string
	Position    *string
	Notes       *string
	ScheduledAt *time.Time
	Status      *Status
}
