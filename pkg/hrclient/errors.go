package hrclient

import (
	"errors"
	"fmt"
	"net/http"
)

const codeNetworkError = "NETWORK_ERROR"

// APIError is any failed call. Status 0 means no response was received.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

type ErrorType string

const (
	ErrorValidation     ErrorType = "validation"
	ErrorNetwork        ErrorType = "network"
	ErrorAuthentication ErrorType = "authentication"
	ErrorAuthorization  ErrorType = "authorization"
	ErrorNotFound       ErrorType = "not_found"
	ErrorServer         ErrorType = "server"
	ErrorUnknown        ErrorType = "unknown"
)

func Classify(err error) ErrorType {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ErrorUnknown
	}

	switch status := apiErr.Status; {
	case status == http.StatusUnauthorized:
		return ErrorAuthentication
	case status == http.StatusForbidden:
		return ErrorAuthorization
	case status == http.StatusNotFound:
		return ErrorNotFound
	case status >= 400 && status < 500:
		return ErrorValidation
	case status >= 500:
		return ErrorServer
	case status == 0:
		return ErrorNetwork
	default:
		return ErrorUnknown
	}
}

// notifiable reports whether err should raise a transient notification.
// Forms render validation and authentication failures inline.
func notifiable(t ErrorType) bool {
	return t != ErrorValidation && t != ErrorAuthentication
}
