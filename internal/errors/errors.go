// Package errors defines the application error taxonomy for the monthly
// trend pipeline. Every error carries a type so callers can distinguish
// input defects (malformed records, non-positive prices) from internal
// invariant violations (empty groups or series) without string matching.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeMalformedRecord marks an input row with a missing field or an
	// unparseable date/number.
	ErrTypeMalformedRecord ErrorType = "MALFORMED_RECORD"
	// ErrTypeNonPositivePrice marks an input row whose open/high/low/close
	// is zero or negative.
	ErrTypeNonPositivePrice ErrorType = "NON_POSITIVE_PRICE"
	// ErrTypeEmptyGroup signals an aggregation invoked on a ticker with zero
	// records. This is an internal invariant violation, not a user error.
	ErrTypeEmptyGroup ErrorType = "EMPTY_GROUP"
	// ErrTypeEmptySeries signals indicator computation invoked on a
	// zero-length close sequence. Internal invariant violation.
	ErrTypeEmptySeries ErrorType = "EMPTY_SERIES"
	// ErrTypeConfig marks configuration loading or validation failures.
	ErrTypeConfig ErrorType = "CONFIG"
	// ErrTypeStorage marks filesystem read/write failures.
	ErrTypeStorage ErrorType = "STORAGE"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// TypeOf returns the ErrorType of err if it is (or wraps) an AppError,
// or the empty string otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	return TypeOf(err) == errType
}

// Helper functions for common error types

// NewMalformedRecordError creates a malformed-record error
func NewMalformedRecordError(message string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedRecord, message, cause)
}

// NewNonPositivePriceError creates a non-positive-price error
func NewNonPositivePriceError(message string) *AppError {
	return NewAppError(ErrTypeNonPositivePrice, message, nil)
}

// NewEmptyGroupError creates an empty-group invariant error
func NewEmptyGroupError(ticker string) *AppError {
	return NewAppError(ErrTypeEmptyGroup, fmt.Sprintf("no records to aggregate for ticker %s", ticker), nil)
}

// NewEmptySeriesError creates an empty-series invariant error
func NewEmptySeriesError(ticker string) *AppError {
	return NewAppError(ErrTypeEmptySeries, fmt.Sprintf("no monthly closes for ticker %s", ticker), nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}
