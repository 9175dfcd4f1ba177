package employee

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidEmployee  = errors.New("invalid employee")
)

// NotFoundError names the missing employee. It matches ErrEmployeeNotFound.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Employee with id %s not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrEmployeeNotFound
}

func notFound(id string, err error) error {
	if errors.Is(err, ErrEmployeeNotFound) {
		return &NotFoundError{ID: id}
	}
	return err
}
