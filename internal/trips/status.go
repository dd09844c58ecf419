package trips

import "strings"

// Status is a trip status as stored in the `trips` table.
type Status string

const (
	StatusNotStarted   Status = "not_started"
	StatusOnTheWay     Status = "on_the_way"
	StatusArrivingSoon Status = "arriving_soon"
	StatusArrived      Status = "arrived"
	StatusCompleted    Status = "completed"
	StatusCanceled     Status = "canceled"
)

// ParseStatus normalizes (lowercases+trims) and validates a status string.
func ParseStatus(in string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether status is one of the allowed trip status constants.
func (status Status) Valid() bool {
	switch status {
	case StatusNotStarted, StatusOnTheWay, StatusArrivingSoon, StatusArrived, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}

// Terminal indicates if the status is in a terminal state.
// Terminal trips accept no further mutation, location updates included.
func (status Status) Terminal() bool {
	return status == StatusCompleted || status == StatusCanceled
}

// CanTransitionTo specifies if the status can transition to the next status.
// Progress is strictly forward; any non-terminal status may cancel.
func (status Status) CanTransitionTo(next Status) bool {
	if next == StatusCanceled {
		return !status.Terminal()
	}

	switch status {
	case StatusNotStarted:
		return next == StatusOnTheWay

	case StatusOnTheWay:
		return next == StatusArrivingSoon || next == StatusArrived

	case StatusArrivingSoon:
		return next == StatusArrived

	case StatusArrived:
		return next == StatusCompleted

	default:
		return false
	}
}

// transitionSources returns the statuses a trip may be in for `to` to be legal.
func transitionSources(to Status) []Status {
	switch to {
	case StatusOnTheWay:
		return []Status{StatusNotStarted}
	case StatusArrivingSoon:
		return []Status{StatusOnTheWay}
	case StatusArrived:
		return []Status{StatusOnTheWay, StatusArrivingSoon}
	case StatusCompleted:
		return []Status{StatusArrived}
	case StatusCanceled:
		return []Status{StatusNotStarted, StatusOnTheWay, StatusArrivingSoon, StatusArrived}
	default:
		return nil
	}
}

// timestampColumn names the column stamped exactly once when `to` is entered.
func timestampColumn(to Status) string {
	switch to {
	case StatusOnTheWay:
		return "started_at"
	case StatusArrivingSoon:
		return "arriving_soon_at"
	case StatusArrived:
		return "arrived_at"
	case StatusCompleted:
		return "completed_at"
	case StatusCanceled:
		return "canceled_at"
	default:
		return ""
	}
}
