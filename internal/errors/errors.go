// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	// ErrDataUnavailable means the upstream had nothing for the request.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrRateLimited means the upstream throttled us; retry later. Distinct
	// from ErrDataUnavailable so operators can tell throttling from real gaps.
	ErrRateLimited = errors.New("rate limited")
	// ErrMalformedResponse means the upstream answered with partial or
	// garbled data; the affected component degrades to zero.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrTransport covers timeouts and connection failures.
	ErrTransport = errors.New("transport failure")
	// ErrPersistence means an alert-history read or write failed.
	ErrPersistence = errors.New("persistence failure")

	ErrNoFilings      = errors.New("no filings found")
	ErrTickerNotFound = errors.New("ticker not found")
	ErrConfigInvalid  = errors.New("invalid configuration")
)

// DataError represents a market-data failure with its failure class attached.
type DataError struct {
	Kind   string // "quote", "daily", "fundamentals", "news"
	Symbol string
	Class  error // one of the sentinel errors above
	Err    error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %v: %v", e.Kind, e.Symbol, e.Class, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %v", e.Kind, e.Symbol, e.Class)
}

func (e *DataError) Unwrap() error {
	return e.Class
}

// NewDataError creates a new DataError.
func NewDataError(kind, symbol string, class, err error) *DataError {
	return &DataError{Kind: kind, Symbol: symbol, Class: class, Err: err}
}

// PersistenceError represents a storage failure for a specific operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error [%s]: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return ErrPersistence
}

// NewPersistenceError creates a new PersistenceError.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

// ValidationError represents an input validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
