package services

import "net/http"

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// errNotAuthorized is the single rejection used for missing identity,
// invalid credentials and insufficient role alike, so callers cannot probe
// which one they hit.
func errNotAuthorized() *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Not authorized"}
}

func errNotFound(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: message}
}

func errValidation(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: message}
}

func errInternal(message string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: message}
}
