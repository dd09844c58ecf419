package trips

import (
	"context"
	"time"
)

// LocationSample is a validated position update ready to persist.
type LocationSample struct {
	Lat        float64
	Lng        float64
	Heading    *float64
	Speed      *float64
	Accuracy   *float64
	RecordedAt time.Time
}

// Estimates carries the distance/ETA figures recomputed on each sample.
type Estimates struct {
	ETA       time.Time
	DistanceM float64
	DurationS int64
}

// Store is the persistence contract for trips. The store owns durability,
// leg_number uniqueness, and write serialisation: both mutating calls gate
// on the row's state at write time, not at call initiation, so a trip
// canceled while an update is in flight cannot be revived.
type Store interface {
	// CreateTrips inserts a full leg set for a booking.
	CreateTrips(ctx context.Context, ts []*Trip) error

	// GetByID fetches a trip by primary key. ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*Trip, error)

	// GetByBooking returns all legs for a booking ordered by leg_number.
	GetByBooking(ctx context.Context, bookingID string) ([]*Trip, error)

	// UpdateStatus moves the trip to `to`, stamping its status timestamp
	// with `at`, but only if the current status is one of `from`.
	// Returns ErrInvalidTransition when the row is in any other state.
	UpdateStatus(ctx context.Context, id string, from []Status, to Status, at time.Time) (*Trip, error)

	// ApplyLocation writes a position sample and the recomputed estimates.
	// Returns ErrTripClosed when the trip is terminal and ErrStaleUpdate
	// when the sample is not newer than the last applied one
	// (last-writer-wins by recorded timestamp, not arrival order).
	ApplyLocation(ctx context.Context, id string, sample LocationSample, est Estimates) (*Trip, error)
}
