package events

// LatLng is a coordinate pair used in event payloads.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TripCreatedEvent is published to trip.created, once per leg.
type TripCreatedEvent struct {
	TripID    string `json:"trip_id"`
	BookingID string `json:"booking_id"`
	LegNumber int    `json:"leg_number"`
	TotalLegs int    `json:"total_legs"`
	MoverID   string `json:"mover_id"`
	TripType  string `json:"trip_type"`
	CreatedAt string `json:"created_at"`
}

// TripStatusEvent is published to trip.status on every transition.
type TripStatusEvent struct {
	TripID    string `json:"trip_id"`
	BookingID string `json:"booking_id"`
	LegNumber int    `json:"leg_number"`
	Status    string `json:"status"`
	ChangedAt string `json:"changed_at"`
}

// LocationUpdatedEvent is published to trip.location on each applied sample.
type LocationUpdatedEvent struct {
	TripID     string   `json:"trip_id"`
	BookingID  string   `json:"booking_id"`
	MoverID    string   `json:"mover_id"`
	Position   LatLng   `json:"position"`
	Heading    *float64 `json:"heading,omitempty"`
	SpeedMps   *float64 `json:"speed_mps,omitempty"`
	DistanceM  float64  `json:"distance_m"`
	ETA        string   `json:"eta"`
	RecordedAt string   `json:"recorded_at"`
}
