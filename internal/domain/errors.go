package domain

import "errors"

// Domain errors
var (
	// Session errors
	ErrAuthRequired   = errors.New("authentication required")
	ErrSessionExpired = errors.New("session has expired")

	// Enrollment errors
	ErrAlreadyEnrolled = errors.New("already enrolled in this event")
	ErrNotEnrolled     = errors.New("not enrolled in this event")
	ErrEventFull       = errors.New("event has no spots left")
	ErrEventNotFound   = errors.New("event not found")

	// Request errors
	ErrJoinFailed   = errors.New("could not join event")
	ErrLeaveFailed  = errors.New("could not leave event")
	ErrCreateFailed = errors.New("could not create event")
	ErrFetchFailed  = errors.New("could not load events")

	// Validation errors
	ErrMissingTitle    = errors.New("event title is required")
	ErrMissingDate     = errors.New("event date is required")
	ErrMissingTime     = errors.New("event time is required")
	ErrMissingLocation = errors.New("event location is required")
	ErrInvalidEventID  = errors.New("invalid event id")
)

// IsValidationError checks if the error is a local, pre-submission
// validation error that never reached the network.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrMissingDate) ||
		errors.Is(err, ErrMissingTime) ||
		errors.Is(err, ErrMissingLocation) ||
		errors.Is(err, ErrInvalidEventID)
}

// IsAuthError checks if the error means the caller has to log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthRequired) || errors.Is(err, ErrSessionExpired)
}

// IsConflictError checks if the error reflects a state the server already
// holds (duplicate enrollment, exhausted capacity) rather than a failure
// of the request itself.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyEnrolled) || errors.Is(err, ErrEventFull)
}
