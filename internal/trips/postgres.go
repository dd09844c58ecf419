package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tripColumns = `id,booking_id,leg_number,total_legs,mover_id,mover_role,trip_type,status,
	origin_lat,origin_lng,origin_address,dest_lat,dest_lng,dest_address,
	current_lat,current_lng,current_heading,current_speed,current_accuracy,last_location_update_at,
	eta,estimated_distance_m,estimated_duration_s,share_location,viewer_id,
	started_at,arriving_soon_at,arrived_at,completed_at,canceled_at,created_at`

// PGStore is the PostgreSQL-backed Store.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a trip store backed by the given pool.
func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

// CreateTrips inserts a full leg set inside one transaction, so a booking
// either gets all its legs or none.
func (s *PGStore) CreateTrips(ctx context.Context, ts []*Trip) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range ts {
		_, err := tx.Exec(ctx,
			`INSERT INTO trips (id,booking_id,leg_number,total_legs,mover_id,mover_role,trip_type,status,
			                    origin_lat,origin_lng,origin_address,dest_lat,dest_lng,dest_address,
			                    share_location,viewer_id,created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
			t.ID, t.BookingID, t.LegNumber, t.TotalLegs, t.MoverID, t.MoverRole, t.TripType, t.Status,
			t.OriginLat, t.OriginLng, t.OriginAddress, t.DestLat, t.DestLng, t.DestAddress,
			t.ShareLocation, t.ViewerID, t.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetByID fetches a trip by primary key.
func (s *PGStore) GetByID(ctx context.Context, id string) (*Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id=$1`, id)
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// GetByBooking returns all legs for a booking ordered by leg_number.
func (s *PGStore) GetByBooking(ctx context.Context, bookingID string) ([]*Trip, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE booking_id=$1 ORDER BY leg_number`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ts []*Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, rows.Err()
}

// UpdateStatus performs the gated transition as a single conditional UPDATE.
// The WHERE clause re-checks the current status at write time, so a stale
// caller racing a cancellation loses here rather than reviving the trip.
func (s *PGStore) UpdateStatus(ctx context.Context, id string, from []Status, to Status, at time.Time) (*Trip, error) {
	col := timestampColumn(to)
	if col == "" {
		return nil, ErrInvalidTransition
	}

	tag, err := s.db.Exec(ctx,
		fmt.Sprintf(`UPDATE trips SET status=$1, %s=$2 WHERE id=$3 AND status = ANY($4)`, col),
		to, at, id, statusStrings(from))
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return s.GetByID(ctx, id)
}

// ApplyLocation writes the sample conditionally: the row must be non-terminal
// and the sample must be newer than the last applied one.
func (s *PGStore) ApplyLocation(ctx context.Context, id string, sample LocationSample, est Estimates) (*Trip, error) {
	tag, err := s.db.Exec(ctx,
		`UPDATE trips
		 SET current_lat=$1, current_lng=$2, current_heading=$3, current_speed=$4, current_accuracy=$5,
		     last_location_update_at=$6, eta=$7, estimated_distance_m=$8, estimated_duration_s=$9
		 WHERE id=$10
		   AND status NOT IN ($11,$12)
		   AND (last_location_update_at IS NULL OR last_location_update_at < $6)`,
		sample.Lat, sample.Lng, sample.Heading, sample.Speed, sample.Accuracy,
		sample.RecordedAt, est.ETA, est.DistanceM, est.DurationS,
		id, StatusCompleted, StatusCanceled)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		t, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t.Status.Terminal() {
			return nil, ErrTripClosed
		}
		return nil, ErrStaleUpdate
	}
	return s.GetByID(ctx, id)
}

func statusStrings(ss []Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	err := row.Scan(&t.ID, &t.BookingID, &t.LegNumber, &t.TotalLegs, &t.MoverID, &t.MoverRole, &t.TripType, &t.Status,
		&t.OriginLat, &t.OriginLng, &t.OriginAddress, &t.DestLat, &t.DestLng, &t.DestAddress,
		&t.CurrentLat, &t.CurrentLng, &t.CurrentHeading, &t.CurrentSpeed, &t.CurrentAccuracy, &t.LastLocationUpdateAt,
		&t.ETA, &t.EstimatedDistanceM, &t.EstimatedDurationS, &t.ShareLocation, &t.ViewerID,
		&t.StartedAt, &t.ArrivingSoonAt, &t.ArrivedAt, &t.CompletedAt, &t.CanceledAt, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
