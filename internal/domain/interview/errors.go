package interview

import "errors"

var (
	ErrInterviewNotFound = errors.New("interview not found")
	// ErrEmployeeNotFound is returned when the referenced employee does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidInterview = errors.New("invalid interview")
)
