package trips

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"trip-service/internal/events"
	"trip-service/internal/geo"
	"trip-service/pkg/kafka"
)

const (
	// arrivingSoonRadiusM is the remaining distance under which an
	// on_the_way leg is promoted to arriving_soon during ingest.
	arrivingSoonRadiusM = 300.0

	// defaultSpeedMps (~30 km/h) is assumed when the device reports no
	// usable speed, so ETA never divides by zero.
	defaultSpeedMps = 8.33
	minMovingSpeed  = 1.0
)

// Publisher pushes trip events onto the stream.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// Cache indexes live mover positions and trip snapshots.
type Cache interface {
	SetMoverLocation(ctx context.Context, moverID string, lat, lng float64) error
	RemoveMoverLocation(ctx context.Context, moverID string) error
	CacheTrip(ctx context.Context, tripID string, data map[string]string) error
}

// Service contains trip business logic.
type Service struct {
	store Store
	pub   Publisher
	cache Cache
}

// NewService creates a trip service.
func NewService(store Store, pub Publisher, cache Cache) *Service {
	return &Service{store: store, pub: pub, cache: cache}
}

// CreateForBooking creates the full leg set for a booking's fulfillment type.
// Legs are numbered from 1; total_legs is fixed here and never changes.
func (s *Service) CreateForBooking(ctx context.Context, req CreateRequest) ([]*Trip, error) {
	plan := req.FulfillmentType.legPlan()
	switch {
	case req.BookingID == "":
		return nil, errors.New("bookingId is required")
	case plan == nil:
		return nil, fmt.Errorf("unknown fulfillment type %q", req.FulfillmentType)
	case req.ProviderID == "" || req.CustomerID == "":
		return nil, errors.New("providerId and customerId are required")
	case len(req.Destinations) != len(plan):
		return nil, fmt.Errorf("fulfillment type %q needs %d destinations, got %d",
			req.FulfillmentType, len(plan), len(req.Destinations))
	}

	share := true
	if req.ShareLocation != nil {
		share = *req.ShareLocation
	}

	now := time.Now().UTC()
	ts := make([]*Trip, 0, len(plan))
	for i, leg := range plan {
		dest := req.Destinations[i]
		if !(geo.Point{Lat: dest.Lat, Lng: dest.Lng}).IsValid() {
			return nil, fmt.Errorf("destination %d has invalid coordinates", i+1)
		}

		moverID, viewerID := req.ProviderID, req.CustomerID
		if leg.moverRole == RoleCustomer {
			moverID, viewerID = req.CustomerID, req.ProviderID
		}

		t := &Trip{
			ID:            uuid.New().String(),
			BookingID:     req.BookingID,
			LegNumber:     i + 1,
			TotalLegs:     len(plan),
			MoverID:       moverID,
			MoverRole:     leg.moverRole,
			TripType:      leg.tripType,
			Status:        StatusNotStarted,
			DestLat:       dest.Lat,
			DestLng:       dest.Lng,
			ShareLocation: share,
			ViewerID:      &viewerID,
			CreatedAt:     now,
		}
		if dest.Address != "" {
			addr := dest.Address
			t.DestAddress = &addr
		}
		ts = append(ts, t)
	}

	if err := s.store.CreateTrips(ctx, ts); err != nil {
		return nil, err
	}

	for _, t := range ts {
		s.publishCreated(t)
		s.cacheSnapshot(t)
	}
	return ts, nil
}

// GetByID fetches a trip by primary key.
func (s *Service) GetByID(ctx context.Context, id string) (*Trip, error) {
	return s.store.GetByID(ctx, id)
}

// GetByBooking returns all legs for a booking, ordered by leg number.
func (s *Service) GetByBooking(ctx context.Context, bookingID string) ([]*Trip, error) {
	return s.store.GetByBooking(ctx, bookingID)
}

// Start transitions a trip from not_started to on_the_way.
func (s *Service) Start(ctx context.Context, callerID, tripID string) (*Trip, error) {
	return s.transition(ctx, callerID, tripID, StatusOnTheWay)
}

// MarkArrivingSoon transitions an on_the_way trip to arriving_soon.
func (s *Service) MarkArrivingSoon(ctx context.Context, callerID, tripID string) (*Trip, error) {
	return s.transition(ctx, callerID, tripID, StatusArrivingSoon)
}

// MarkArrived transitions an on_the_way or arriving_soon trip to arrived.
func (s *Service) MarkArrived(ctx context.Context, callerID, tripID string) (*Trip, error) {
	return s.transition(ctx, callerID, tripID, StatusArrived)
}

// Complete transitions an arrived trip to completed. Terminal.
func (s *Service) Complete(ctx context.Context, callerID, tripID string) (*Trip, error) {
	return s.transition(ctx, callerID, tripID, StatusCompleted)
}

// Cancel moves any non-terminal trip to canceled. Terminal.
// Either party on the booking may cancel; everything else is mover-only.
func (s *Service) Cancel(ctx context.Context, callerID, tripID string) (*Trip, error) {
	t, err := s.store.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if callerID != t.MoverID && !(t.ViewerID != nil && *t.ViewerID == callerID) {
		return nil, ErrUnauthorized
	}
	return s.apply(ctx, tripID, StatusCanceled)
}

func (s *Service) transition(ctx context.Context, callerID, tripID string, to Status) (*Trip, error) {
	t, err := s.store.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t.MoverID != callerID {
		return nil, ErrUnauthorized
	}
	return s.apply(ctx, tripID, to)
}

func (s *Service) apply(ctx context.Context, tripID string, to Status) (*Trip, error) {
	updated, err := s.store.UpdateStatus(ctx, tripID, transitionSources(to), to, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if to.Terminal() {
		if err := s.cache.RemoveMoverLocation(ctx, updated.MoverID); err != nil {
			log.Printf("[trips] failed to drop mover %s from location index: %v", updated.MoverID, err)
		}
	}

	s.publishStatus(updated)
	s.cacheSnapshot(updated)
	return updated, nil
}

// UpdateLocation ingests one position sample from the trip's mover.
// Stale samples (older than the last applied one) are dropped as a silent
// no-op: the stored trip is returned with applied=false and no error.
func (s *Service) UpdateLocation(ctx context.Context, callerID, tripID string, upd LocationUpdate) (trip *Trip, applied bool, err error) {
	t, err := s.store.GetByID(ctx, tripID)
	if err != nil {
		return nil, false, err
	}
	if t.MoverID != callerID {
		return nil, false, ErrUnauthorized
	}
	if t.Status.Terminal() {
		return nil, false, ErrTripClosed
	}
	if !(geo.Point{Lat: upd.Lat, Lng: upd.Lng}).IsValid() {
		return nil, false, errors.New("invalid coordinates")
	}

	recordedAt := time.Now().UTC()
	if upd.RecordedAt != nil {
		recordedAt = upd.RecordedAt.UTC()
	}

	dist := geo.Distance(upd.Lat, upd.Lng, t.DestLat, t.DestLng)
	speed := defaultSpeedMps
	if upd.Speed != nil && *upd.Speed > minMovingSpeed {
		speed = *upd.Speed
	}
	durS := int64(dist / speed)
	est := Estimates{
		ETA:       recordedAt.Add(time.Duration(durS) * time.Second),
		DistanceM: dist,
		DurationS: durS,
	}

	sample := LocationSample{
		Lat: upd.Lat, Lng: upd.Lng,
		Heading: upd.Heading, Speed: upd.Speed, Accuracy: upd.Accuracy,
		RecordedAt: recordedAt,
	}

	// The store re-checks status and timestamp at write time; a cancel or a
	// newer sample racing this call wins there.
	updated, err := s.store.ApplyLocation(ctx, tripID, sample, est)
	if errors.Is(err, ErrStaleUpdate) {
		log.Printf("[trips] dropped stale location for trip %s (recorded %s)", tripID, recordedAt.Format(time.RFC3339))
		return t, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.SetMoverLocation(ctx, updated.MoverID, upd.Lat, upd.Lng); err != nil {
		log.Printf("[trips] failed to index mover %s location: %v", updated.MoverID, err)
	}
	s.cacheSnapshot(updated)
	s.publishLocation(updated, sample, est)

	// Proximity promotion: under the radius an on_the_way leg is arriving_soon.
	if updated.Status == StatusOnTheWay && dist <= arrivingSoonRadiusM {
		if promoted, err := s.apply(ctx, tripID, StatusArrivingSoon); err == nil {
			updated = promoted
		}
	}

	return updated, true, nil
}

// ---- event publishing ----

func (s *Service) publishCreated(t *Trip) {
	ev := events.TripCreatedEvent{
		TripID:    t.ID,
		BookingID: t.BookingID,
		LegNumber: t.LegNumber,
		TotalLegs: t.TotalLegs,
		MoverID:   t.MoverID,
		TripType:  t.TripType,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		if err := s.pub.Publish(context.Background(), kafka.TopicTripCreated, t.ID, ev); err != nil {
			log.Printf("[trips] failed to publish trip.created: %v", err)
		}
	}()
}

func (s *Service) publishStatus(t *Trip) {
	ev := events.TripStatusEvent{
		TripID:    t.ID,
		BookingID: t.BookingID,
		LegNumber: t.LegNumber,
		Status:    t.Status.String(),
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		if err := s.pub.Publish(context.Background(), kafka.TopicTripStatus, t.ID, ev); err != nil {
			log.Printf("[trips] failed to publish trip.status: %v", err)
		}
	}()
}

func (s *Service) publishLocation(t *Trip, sample LocationSample, est Estimates) {
	ev := events.LocationUpdatedEvent{
		TripID:     t.ID,
		BookingID:  t.BookingID,
		MoverID:    t.MoverID,
		Position:   events.LatLng{Lat: sample.Lat, Lng: sample.Lng},
		Heading:    sample.Heading,
		SpeedMps:   sample.Speed,
		DistanceM:  est.DistanceM,
		ETA:        est.ETA.Format(time.RFC3339),
		RecordedAt: sample.RecordedAt.Format(time.RFC3339),
	}
	go func() {
		if err := s.pub.Publish(context.Background(), kafka.TopicLocationUpdated, t.ID, ev); err != nil {
			log.Printf("[trips] failed to publish trip.location: %v", err)
		}
	}()
}

func (s *Service) cacheSnapshot(t *Trip) {
	data := map[string]string{
		"booking_id": t.BookingID,
		"leg":        fmt.Sprintf("%d/%d", t.LegNumber, t.TotalLegs),
		"status":     t.Status.String(),
	}
	if t.EstimatedDistanceM != nil {
		data["distance_text"] = geo.FormatDistance(*t.EstimatedDistanceM)
	}
	if t.ETA != nil {
		data["eta"] = t.ETA.Format(time.RFC3339)
		data["eta_text"] = geo.FormatETA(*t.ETA, time.Now())
	}
	go func() {
		if err := s.cache.CacheTrip(context.Background(), t.ID, data); err != nil {
			log.Printf("[trips] failed to cache trip %s: %v", t.ID, err)
		}
	}()
}
