// Package errors provides custom error types for the visitsync system.
// These errors enable programmatic error checking at loop boundaries and
// carry enough identity (patient, visit, stage) for readable log lines.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the visitsync system
var (
	// ErrNotFound indicates that no matching record exists in the target system
	ErrNotFound = errors.New("not found")

	// ErrNoScheduledTime indicates a visit exists but has no time scheduled yet.
	// Benign: the visit is skipped at low severity, never treated as a failure.
	ErrNoScheduledTime = errors.New("no scheduled time")

	// ErrTherapistUnmatched indicates no therapist candidate scored above the
	// confidence floor during an insertion attempt
	ErrTherapistUnmatched = errors.New("therapist unmatched")

	// ErrNavigationStale indicates the expected view is no longer current
	ErrNavigationStale = errors.New("navigation stale")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// NoScheduledTimeError indicates a located visit whose time slot reads
// "no time scheduled yet". Handled upstream as a skip, not a failure.
type NoScheduledTimeError struct {
	Visit string
	Date  string
}

// Error implements the error interface
func (e *NoScheduledTimeError) Error() string {
	return fmt.Sprintf("visit %s on %s has no scheduled time", e.Visit, e.Date)
}

// Is implements errors.Is support
func (e *NoScheduledTimeError) Is(target error) bool {
	return target == ErrNoScheduledTime
}

// NewNoScheduledTimeError creates a new NoScheduledTimeError
func NewNoScheduledTimeError(visit, date string) *NoScheduledTimeError {
	return &NoScheduledTimeError{Visit: visit, Date: date}
}

// TherapistUnmatchedError reports a failed therapist match, including the
// best candidate seen and its score for the log line.
type TherapistUnmatchedError struct {
	Input         string
	BestCandidate string
	BestScore     int
}

// Error implements the error interface
func (e *TherapistUnmatchedError) Error() string {
	if e.BestCandidate != "" {
		return fmt.Sprintf("no therapist match for %q (best candidate %q scored %d)", e.Input, e.BestCandidate, e.BestScore)
	}
	return fmt.Sprintf("no therapist match for %q", e.Input)
}

// Is implements errors.Is support
func (e *TherapistUnmatchedError) Is(target error) bool {
	return target == ErrTherapistUnmatched
}

// NavigationError indicates the session is not on the expected view.
// Triggers exactly one recovery attempt before hardening into a failure.
type NavigationError struct {
	View    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *NavigationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("navigation to %s failed: %s", e.View, e.Message)
	}
	return fmt.Sprintf("navigation to %s failed", e.View)
}

// Unwrap implements errors.Unwrap
func (e *NavigationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *NavigationError) Is(target error) bool {
	return target == ErrNavigationStale
}

// VisitError wraps a failure inside the per-visit workflow with the visit's
// identity, so the loop boundary can log and move on.
type VisitError struct {
	Patient string
	Visit   string
	Stage   string
	Err     error
}

// Error implements the error interface
func (e *VisitError) Error() string {
	return fmt.Sprintf("visit %q for patient %s failed at %s: %v", e.Visit, e.Patient, e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *VisitError) Unwrap() error {
	return e.Err
}

// NewVisitError creates a new VisitError
func NewVisitError(patient, visit, stage string, err error) *VisitError {
	return &VisitError{Patient: patient, Visit: visit, Stage: stage, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "yaml", "date", "time"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNoScheduledTime checks if an error is the benign no-scheduled-time skip
func IsNoScheduledTime(err error) bool {
	return errors.Is(err, ErrNoScheduledTime)
}

// IsTherapistUnmatched checks if an error is a failed therapist match
func IsTherapistUnmatched(err error) bool {
	return errors.Is(err, ErrTherapistUnmatched)
}

// IsNavigationStale checks if an error indicates a stale view
func IsNavigationStale(err error) bool {
	return errors.Is(err, ErrNavigationStale)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
