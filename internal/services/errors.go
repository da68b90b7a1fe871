package services

import (
	"errors"

	apperrors "github.com/pp-platform/exercise-engine/internal/errors"
)

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Exercise specific errors
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrExerciseInvalid   = errors.New("exercise definition is invalid")
	ErrExerciseTypeMixed = errors.New("item type does not match its content payload")
	ErrVersionNotFound   = errors.New("exercise version not found")

	// Session specific errors
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionCompleted  = errors.New("session already completed")
	ErrItemNotFound      = errors.New("item not found in exercise")
	ErrItemLocked        = errors.New("item already answered and locked")
	ErrNavigationBlocked = errors.New("current item must be answered before advancing")
	ErrSubmissionGated   = errors.New("all entries must be placed before grading")
	ErrIndexOutOfRange   = errors.New("item index out of range")
)

// Shared validation error types.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// toValidationErrors converts validator library errors to the shared type.
func toValidationErrors(err error) ValidationErrors {
	return apperrors.ToValidationErrors(err)
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrExerciseNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrVersionNotFound) ||
		errors.Is(err, ErrItemNotFound)
}

// IsConflict reports whether err describes a state the client must not retry
// verbatim, such as re-answering a locked item.
func IsConflict(err error) bool {
	return errors.Is(err, ErrItemLocked) ||
		errors.Is(err, ErrSessionCompleted) ||
		errors.Is(err, ErrNavigationBlocked) ||
		errors.Is(err, ErrSubmissionGated)
}

// IsValidation reports whether err carries field-level validation detail.
func IsValidation(err error) bool {
	var ve ValidationErrors
	return errors.Is(err, ErrValidationFailed) || errors.As(err, &ve)
}
