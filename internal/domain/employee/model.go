package employee

import "time"

type Employee struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"not null"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastNames string    `gorm:"column:last_names;not null"`
	Phone     *string   `gorm:"column:phone"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}

// InterviewSummary is the reduced interview projection nested in employee details.
type InterviewSummary struct {
	ID          string
	Position    string
	Notes       *string
	Status      string
	ScheduledAt time.Time
	CreatedAt   time.Time
}

type EmployeeWithInterviews struct {
	Employee
	Interviews []InterviewSummary
}

type ListFilter struct {
	Search string
}

type CreateEmployeeInput struct {
	Email     string
	FirstName string
	LastNames string
	Phone     *string
}

type UpdateEmployeeInput struct {
	Email     *string
	FirstName *string
	LastNames *string
	Phone     *string
}

func (in UpdateEmployeeInput) IsEmpty() bool {
	return in.Email == nil && in.FirstName == nil && in.LastNames == nil && in.Phone == nil
}
