package trips

import "time"

// Mover roles and trip types.
const (
	RoleProvider = "provider"
	RoleCustomer = "customer"

	TypeOnSite  = "on_site"
	TypePickup  = "pickup"
	TypeDropoff = "dropoff"
)

// Trip represents one leg of physical movement tied to a booking.
type Trip struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	LegNumber int    `json:"leg_number"`
	TotalLegs int    `json:"total_legs"`
	MoverID   string `json:"mover_id"`
	MoverRole string `json:"mover_role"`
	TripType  string `json:"trip_type"`
	Status    Status `json:"status"`

	OriginLat     *float64 `json:"origin_lat,omitempty"`
	OriginLng     *float64 `json:"origin_lng,omitempty"`
	OriginAddress *string  `json:"origin_address,omitempty"`
	DestLat       float64  `json:"dest_lat"`
	DestLng       float64  `json:"dest_lng"`
	DestAddress   *string  `json:"dest_address,omitempty"`

	CurrentLat           *float64   `json:"current_lat,omitempty"`
	CurrentLng           *float64   `json:"current_lng,omitempty"`
	CurrentHeading       *float64   `json:"current_heading,omitempty"`
	CurrentSpeed         *float64   `json:"current_speed,omitempty"`
	CurrentAccuracy      *float64   `json:"current_accuracy,omitempty"`
	LastLocationUpdateAt *time.Time `json:"last_location_update_at,omitempty"`

	ETA                *time.Time `json:"eta,omitempty"`
	EstimatedDistanceM *float64   `json:"estimated_distance_m,omitempty"`
	EstimatedDurationS *int64     `json:"estimated_duration_s,omitempty"`

	ShareLocation bool    `json:"share_location"`
	ViewerID      *string `json:"viewer_id,omitempty"`

	StartedAt      *time.Time `json:"started_at,omitempty"`
	ArrivingSoonAt *time.Time `json:"arriving_soon_at,omitempty"`
	ArrivedAt      *time.Time `json:"arrived_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CanceledAt     *time.Time `json:"canceled_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CanView reports whether userID may observe the trip's live location.
// The mover always can; the designated viewer can while sharing is on.
func (t *Trip) CanView(userID string) bool {
	if userID == t.MoverID {
		return true
	}
	return t.ShareLocation && t.ViewerID != nil && *t.ViewerID == userID
}

// FulfillmentType determines how many legs a booking needs and who moves.
type FulfillmentType string

const (
	FulfillmentOnSite        FulfillmentType = "on_site"         // provider travels to the customer
	FulfillmentPickup        FulfillmentType = "pickup"          // customer travels to the provider
	FulfillmentPickupDropoff FulfillmentType = "pickup_dropoff"  // customer drops off, provider returns
	FulfillmentTwoLegService FulfillmentType = "two_leg_service" // provider travels twice (multi-stop job)
)

type legSpec struct {
	moverRole string
	tripType  string
}

// legPlan returns the leg layout for the fulfillment type, in leg order.
// total_legs is fixed here, at trip-set creation time.
func (f FulfillmentType) legPlan() []legSpec {
	switch f {
	case FulfillmentOnSite:
		return []legSpec{{RoleProvider, TypeOnSite}}
	case FulfillmentPickup:
		return []legSpec{{RoleCustomer, TypePickup}}
	case FulfillmentPickupDropoff:
		return []legSpec{{RoleCustomer, TypePickup}, {RoleProvider, TypeDropoff}}
	case FulfillmentTwoLegService:
		return []legSpec{{RoleProvider, TypeOnSite}, {RoleProvider, TypeOnSite}}
	default:
		return nil
	}
}

// LegDestination is one destination in a create request, in leg order.
type LegDestination struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// CreateRequest is the body for POST /trips.
type CreateRequest struct {
	BookingID       string           `json:"bookingId"`
	FulfillmentType FulfillmentType  `json:"fulfillmentType"`
	ProviderID      string           `json:"providerId"`
	CustomerID      string           `json:"customerId"`
	Destinations    []LegDestination `json:"destinations"`
	ShareLocation   *bool            `json:"shareLocation,omitempty"`
}

// LocationUpdate is the body for POST /trips/:id/location.
type LocationUpdate struct {
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	Heading    *float64   `json:"heading,omitempty"`
	Speed      *float64   `json:"speed,omitempty"` // meters per second
	Accuracy   *float64   `json:"accuracy,omitempty"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}
