package services

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrNoDraft            = errors.New("no priced order awaiting confirmation")
	ErrSubmissionInFlight = errors.New("a pricing request is already in progress")
	ErrSelectionChanged   = errors.New("the selection changed while it was being priced")
)

// ValidationError reports bad staff input. The operation changed nothing.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Code: "VALIDATION_ERROR", Field: field, Message: message}
}

// PricingError is an error answer from the pricing service
type PricingError struct {
	Code       string
	StatusCode int
	Message    string
}

func (e *PricingError) Error() string {
	return e.Message
}

// TransportError means the pricing service could not be reached
type TransportError struct {
	Code    string
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ImportFormatError means an order history file was rejected; history is unchanged
type ImportFormatError struct {
	Code    string
	Message string
	Err     error
}

func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ImportFormatError) Unwrap() error {
	return e.Err
}

func newImportFormatError(message string, err error) *ImportFormatError {
	return &ImportFormatError{Code: "INVALID_IMPORT", Message: message, Err: err}
}
