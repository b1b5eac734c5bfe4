package errs

import (
	"fmt"
	"strings"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ValidationErrors carries the complete violation list for one candidate.
// Validation never short-circuits, so callers get every error at once.
type ValidationErrors struct {
	Errors []string
}

func (e *ValidationErrors) Error() string { return strings.Join(e.Errors, "; ") }

type NotImplementedError struct {
	ErrorMessage
}

// DatabaseError wraps a failure at the persistence boundary.
type DatabaseError struct {
	ErrorMessage
	Operation string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationErrors(errors []string) *ValidationErrors {
	return &ValidationErrors{Errors: errors}
}

func NewNotImplementedError(message string) *NotImplementedError {
	return &NotImplementedError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
	}
}
