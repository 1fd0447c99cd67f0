package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// FieldIssue describes a single field that failed validation.
type FieldIssue struct {
	Field   string
	Message string
}

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Issues []FieldIssue
}

// NewValidationError creates a new validation error for a single field.
// An empty field is used for failures that concern the whole input.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Issues: []FieldIssue{{Field: field, Message: message}},
	}
}

// Add appends another field issue to the error.
func (e *ValidationError) Add(field, message string) {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Message: message})
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field != "" {
			parts = append(parts, fmt.Sprintf("%s %s", issue.Field, issue.Message))
		} else {
			parts = append(parts, issue.Message)
		}
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, ", "))
}

// HTTPStatus returns the HTTP status code for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status code for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// AlreadyExistsError represents a resource already exists error
type AlreadyExistsError struct {
	Resource string
	Message  string
}

// NewAlreadyExistsError creates a new already exists error
func NewAlreadyExistsError(resource, message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// HTTPStatus returns the HTTP status code for this error
func (e *AlreadyExistsError) HTTPStatus() int {
	return http.StatusConflict
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// PublicMessage hides the wrapped cause from clients.
func (e *InternalError) PublicMessage() string {
	return e.Message
}

// HTTPStatuser is implemented by errors that map onto an HTTP status code
type HTTPStatuser interface {
	HTTPStatus() int
}
