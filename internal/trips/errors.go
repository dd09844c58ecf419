package trips

import "errors"

var (
	// ErrNotFound is returned when no trip exists with the given id.
	ErrNotFound = errors.New("trip not found")

	// ErrInvalidStatus is returned for status strings outside the enum.
	ErrInvalidStatus = errors.New("invalid trip status")

	// ErrInvalidTransition is returned when a status change is not reachable
	// from the trip's current status. Non-retryable.
	ErrInvalidTransition = errors.New("invalid trip status transition")

	// ErrUnauthorized is returned when the caller is not the trip's
	// designated mover. Non-retryable.
	ErrUnauthorized = errors.New("caller is not the trip mover")

	// ErrTripClosed is returned when a location update targets a trip that
	// is already completed or canceled. Non-retryable.
	ErrTripClosed = errors.New("trip is closed")

	// ErrStaleUpdate marks a location update older than the last applied one.
	// The service swallows it as a no-op; it never reaches HTTP callers.
	ErrStaleUpdate = errors.New("stale location update")
)
