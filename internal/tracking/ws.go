package tracking

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"trip-service/internal/events"
	"trip-service/internal/trips"
	"trip-service/pkg/jwt"
	"trip-service/pkg/kafka"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// safeConn wraps a websocket.Conn with a write mutex.
// gorilla/websocket allows one concurrent writer; this enforces that.
type safeConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *safeConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *safeConn) readMessage() (int, []byte, error) {
	return c.ws.ReadMessage()
}

func (c *safeConn) close() { c.ws.Close() }

// TripReader is the visibility lookup the hub needs before admitting a viewer.
type TripReader interface {
	GetByID(ctx context.Context, id string) (*trips.Trip, error)
	GetByBooking(ctx context.Context, bookingID string) ([]*trips.Trip, error)
}

// Hub bridges trip events to WebSocket viewers. One channel per trip and one
// per booking's full leg set, both fed by the Notifier.
type Hub struct {
	notifier *Notifier
	reader   TripReader
}

// NewHub creates a tracking hub over the given notifier.
func NewHub(notifier *Notifier, reader TripReader) *Hub {
	return &Hub{notifier: notifier, reader: reader}
}

// Routes returns a chi.Router for the /ws mount point.
func (h *Hub) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jwt.RequireAuth)
	r.Get("/trips/{id}", h.HandleTripWS)
	r.Get("/bookings/{id}", h.HandleBookingWS)
	return r
}

// HandleTripWS subscribes the connection to one trip's channel.
// Admission follows the trip's visibility: the mover always, the designated
// viewer while sharing is on.
func (h *Hub) HandleTripWS(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())
	tripID := chi.URLParam(r, "id")

	t, err := h.reader.GetByID(r.Context(), tripID)
	if err != nil {
		http.Error(w, `{"error":"trip not found"}`, http.StatusNotFound)
		return
	}
	if !t.CanView(claims.UserID) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}

	h.serve(w, r, TripKey(tripID))
}

// HandleBookingWS subscribes the connection to a booking's leg-set channel.
func (h *Hub) HandleBookingWS(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())
	bookingID := chi.URLParam(r, "id")

	ts, err := h.reader.GetByBooking(r.Context(), bookingID)
	if err != nil || len(ts) == 0 {
		http.Error(w, `{"error":"booking has no trips"}`, http.StatusNotFound)
		return
	}
	allowed := false
	for _, t := range ts {
		if t.CanView(claims.UserID) {
			allowed = true
			break
		}
	}
	if !allowed {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return
	}

	h.serve(w, r, BookingKey(bookingID))
}

// serve upgrades the connection, pipes the channel into it, and blocks until
// the client disconnects. The subscription is canceled on the way out.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, key string) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade error: %v", err)
		return
	}

	conn := &safeConn{ws: ws}
	sub := h.notifier.Subscribe(key, func(payload any) {
		if err := conn.writeJSON(payload); err != nil {
			log.Printf("[ws] write error on %s: %v", key, err)
		}
	})

	log.Printf("[ws] client connected to %s", key)

	// Block until the client disconnects
	for {
		if _, _, err := conn.readMessage(); err != nil {
			break
		}
	}

	sub.Cancel()
	conn.close()
	log.Printf("[ws] client disconnected from %s", key)
}

// StartEventConsumers bridges the Kafka stream into the in-process notifier,
// so sockets on any service instance see every trip's updates.
func (h *Hub) StartEventConsumers(ctx context.Context, kc *kafka.Client) {
	kc.Subscribe(ctx, kafka.TopicLocationUpdated, "tracking-location", func(data []byte) error {
		var ev events.LocationUpdatedEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		h.notifier.Publish(TripKey(ev.TripID), ev)
		h.notifier.Publish(BookingKey(ev.BookingID), ev)
		return nil
	})

	kc.Subscribe(ctx, kafka.TopicTripStatus, "tracking-status", func(data []byte) error {
		var ev events.TripStatusEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return err
		}
		h.notifier.Publish(TripKey(ev.TripID), ev)
		h.notifier.Publish(BookingKey(ev.BookingID), ev)
		return nil
	})
}
