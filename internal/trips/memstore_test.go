package trips

import (
	"context"
	"sync"
	"time"
)

// memStore is an in-memory Store with the same write-time gating as PGStore.
type memStore struct {
	mu    sync.Mutex
	trips map[string]*Trip
}

func newMemStore() *memStore {
	return &memStore{trips: make(map[string]*Trip)}
}

func (m *memStore) CreateTrips(_ context.Context, ts []*Trip) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range ts {
		cp := *t
		m.trips[t.ID] = &cp
	}
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) GetByBooking(_ context.Context, bookingID string) ([]*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Trip
	for _, t := range m.trips {
		if t.BookingID == bookingID {
			cp := *t
			out = append(out, &cp)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].LegNumber < out[i].LegNumber {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, from []Status, to Status, at time.Time) (*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trips[id]
	if !ok {
		return nil, ErrNotFound
	}

	legal := false
	for _, f := range from {
		if t.Status == f {
			legal = true
			break
		}
	}
	if !legal {
		return nil, ErrInvalidTransition
	}

	t.Status = to
	stamp := at
	switch to {
	case StatusOnTheWay:
		t.StartedAt = &stamp
	case StatusArrivingSoon:
		t.ArrivingSoonAt = &stamp
	case StatusArrived:
		t.ArrivedAt = &stamp
	case StatusCompleted:
		t.CompletedAt = &stamp
	case StatusCanceled:
		t.CanceledAt = &stamp
	}

	cp := *t
	return &cp, nil
}

func (m *memStore) ApplyLocation(_ context.Context, id string, sample LocationSample, est Estimates) (*Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	if t.Status.Terminal() {
		return nil, ErrTripClosed
	}
	if t.LastLocationUpdateAt != nil && !t.LastLocationUpdateAt.Before(sample.RecordedAt) {
		return nil, ErrStaleUpdate
	}

	lat, lng := sample.Lat, sample.Lng
	t.CurrentLat, t.CurrentLng = &lat, &lng
	t.CurrentHeading = sample.Heading
	t.CurrentSpeed = sample.Speed
	t.CurrentAccuracy = sample.Accuracy
	recorded := sample.RecordedAt
	t.LastLocationUpdateAt = &recorded

	eta := est.ETA
	dist := est.DistanceM
	dur := est.DurationS
	t.ETA = &eta
	t.EstimatedDistanceM = &dist
	t.EstimatedDurationS = &dur

	cp := *t
	return &cp, nil
}
