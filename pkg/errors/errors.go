package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures so the turn boundary can decide how to
// report them without string-matching messages.
type ErrorType string

const (
	// ErrorTypeConfig indicates invalid or missing startup configuration.
	ErrorTypeConfig ErrorType = "CONFIG"

	// ErrorTypeExtraction indicates the oracle output could not be parsed.
	ErrorTypeExtraction ErrorType = "EXTRACTION"

	// ErrorTypeTransport indicates a network-level failure on an outbound call.
	ErrorTypeTransport ErrorType = "TRANSPORT"

	// ErrorTypeAPIStatus indicates a non-success status from the trials endpoint.
	ErrorTypeAPIStatus ErrorType = "API_STATUS"

	// ErrorTypeValidation indicates bad user input to a refinement control.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound indicates an unknown session.
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
)

// AppError carries a classified application error. StatusCode is set for
// API_STATUS errors only.
type AppError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Err        error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates an error for unparseable oracle output.
func NewExtractionError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeExtraction, Message: message, Err: err}
}

// NewTransportError creates an error for a failed outbound request.
func NewTransportError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeTransport, Message: message, Err: err}
}

// NewAPIStatusError creates an error for a non-success trials API status.
func NewAPIStatusError(statusCode int, body string) *AppError {
	return &AppError{
		Type:       ErrorTypeAPIStatus,
		Message:    fmt.Sprintf("API Error: %d", statusCode),
		StatusCode: statusCode,
		Err:        errors.New(body),
	}
}

// NewValidationError creates an error for invalid refinement input.
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewNotFoundError creates an error for an unknown session.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// TypeOf returns the classification of err, or "" when err is not an AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
