// Package domain holds the error taxonomy shared by every layer.
package domain

import (
	"errors"
	"strings"
)

// Error kinds. Transport code maps these to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrUnavailable  = errors.New("capability unavailable")
	ErrUpstream     = errors.New("upstream failure")
)

var kinds = []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthorized, ErrTokenExpired, ErrTokenInvalid, ErrUnavailable}

// KindOf returns the client-facing kind err wraps, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Error is a kinded error carrying the user-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// NewError builds a kinded error.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Resource errors with the messages clients see.
var (
	ErrUserExists         = NewError(ErrConflict, "User with this email already exists")
	ErrInvalidCredentials = NewError(ErrUnauthorized, "Invalid email or password")
	ErrUserNotFound       = NewError(ErrNotFound, "User not found")
	ErrTopicNotFound      = NewError(ErrNotFound, "Topic not found")
	ErrTopicAccess        = NewError(ErrNotFound, "Topic not found or access denied")
	ErrEntryNotFound      = NewError(ErrNotFound, "Research entry not found")
	ErrDraftNotFound      = NewError(ErrNotFound, "Draft not found")
	ErrRewriteUnavailable = NewError(ErrUnavailable, "OpenAI API key not configured")
	ErrTextRequired       = NewError(ErrValidation, "Text is required")
	ErrReferencesRequired = NewError(ErrValidation, "References array is required")
	ErrQueryRequired      = NewError(ErrValidation, "Search query is required")
	ErrMissingToken       = NewError(ErrUnauthorized, "Access denied. No token provided.")
	ErrExpiredToken       = NewError(ErrTokenExpired, "Token expired. Please login again.")
	ErrBadToken           = NewError(ErrTokenInvalid, "Invalid token.")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

// UpstreamError wraps a failed call to an external text service.
type UpstreamError struct {
	Service string
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Service + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Service + ": " + e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is makes every UpstreamError match ErrUpstream.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
