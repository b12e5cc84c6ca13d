package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("permission denied")
	ErrEmailRegistered  = errors.New("email is already registered")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrAccountDisabled  = errors.New("account is disabled")
	ErrAlreadyEnrolled  = errors.New("student is already enrolled in this course")
	ErrNotEnrolled      = errors.New("student is not enrolled in this course")
	ErrForumLocked      = errors.New("forum is locked")
	ErrQuizNotAvailable = errors.New("quiz is not available")
	ErrAttemptsExceeded = errors.New("maximum attempts reached")
	ErrAttemptFinished  = errors.New("attempt is already completed")
	ErrNotParticipant   = errors.New("not a participant of this conversation")
)

// ValidationError aggregates per-field messages for a rejected payload.
// No write happens when one is returned.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// AsValidationError unwraps err into a *ValidationError when it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
