// Package domain holds the idiom catalog model and its errors.
// Errors here describe catalog-level failures; adapters translate them into
// HTTP statuses, CLI exit codes, or log fields.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested section or entry does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates two catalog items claim the same identifier.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates catalog content or a query failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden indicates the caller may not perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a catalog source or the catalog itself is not available.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError names the kind of item that was looked up and its identifier.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error for the given entity kind and ID.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports an identifier claimed twice. Field locates the
// second claim, e.g. "sections[3].entries[0]".
type ConflictError struct {
	Entity string
	ID     string
	Field  string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("duplicate %s id %q at %s", e.Entity, e.ID, e.Field)
	}

	return fmt.Sprintf("duplicate %s id %q", e.Entity, e.ID)
}

// Unwrap returns ErrConflict.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a duplicate identifier error.
func NewConflictError(entity, id, field string) error {
	return &ConflictError{Entity: entity, ID: id, Field: field}
}

// ValidationError points at the field that failed validation.
// Field uses a path notation such as "sections[0].entries[2].after".
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the rejected value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ForbiddenError reports a catalog source that refused access.
type ForbiddenError struct {
	Source string
	Reason string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%q denied access: %s", e.Source, e.Reason)
	}

	return fmt.Sprintf("%q denied access", e.Source)
}

// Unwrap returns ErrForbidden.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error for source.
func NewForbiddenError(source, reason string) error {
	return &ForbiddenError{Source: source, Reason: reason}
}

// UnavailableError names the source or component that could not serve the request.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("%q unavailable", e.Service)
}

// Unwrap returns ErrUnavailable.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
