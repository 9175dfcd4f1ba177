package hrclient

import "time"

type Employee struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastNames string    `json:"lastNames"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type InterviewSummary struct {
	ID          string    `json:"id"`
	Position    string    `json:"position"`
	Notes       *string   `json:"notes"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type EmployeeDetails struct {
	Employee
	Interviews []InterviewSummary `json:"interviews"`
}

type Interview struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	Position    string    `json:"position"`
	Notes       *string   `json:"notes"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateEmployeeRequest struct {
	Email     string  `json:"email" validate:"required,email,max=254"`
	FirstName string  `json:"firstName" validate:"required,min=2,max=50"`
	LastNames string  `json:"lastNames" validate:"required,min=2,max=100"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone"`
}

type UpdateEmployeeRequest struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastNames *string `json:"lastNames,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type CreateInterviewRequest struct {
	EmployeeID  string  `json:"employeeId" validate:"required,uuid"`
	Position    string  `json:"position" validate:"required,min=2,max=100"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	ScheduledAt string  `json:"scheduledAt" validate:"required"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
}

type UpdateInterviewRequest struct {
	EmployeeID  *string `json:"employeeId,omitempty"`
	Position    *string `json:"position,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	ScheduledAt *string `json:"scheduledAt,omitempty"`
	Status      *string `json:"status,omitempty"`
}
