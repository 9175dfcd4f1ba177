package events

import (
	"context"
	"errors"
	"time"
)

type Type string

const (
	EmployeeCreated  Type = "employee.created"
	EmployeeUpdated  Type = "employee.updated"
	EmployeeDeleted  Type = "employee.deleted"
	InterviewCreated Type = "interview.created"
	InterviewUpdated Type = "interview.updated"
	InterviewDeleted Type = "interview.deleted"
)

const (
	EntityEmployee  = "employee"
	EntityInterview = "interview"
)

// Event describes a committed change. EmployeeID is the owning employee for
// interview events and the employee itself for employee events.
type Event struct {
	Type       Type      `json:"type"`
	Entity     string    `json:"entity"`
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEmployeeEvent(eventType Type, employeeID string) Event {
	return Event{
		Type:       eventType,
		Entity:     EntityEmployee,
		ID:         employeeID,
		EmployeeID: employeeID,
		OccurredAt: time.Now().UTC(),
	}
}

func NewInterviewEvent(eventType Type, interviewID, employeeID string) Event {
	return Event{
		Type:       eventType,
		Entity:     EntityInterview,
		ID:         interviewID,
		EmployeeID: employeeID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}

// Fanout delivers each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, publisher := range f {
		if publisher == nil {
			continue
		}
		if err := publisher.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
