package trips

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trip-service/pkg/jwt"
)

// Handler exposes trip HTTP endpoints.
type Handler struct{ svc *Service }

// NewHandler wires a handler to the trip service.
func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// Routes returns a chi.Router with all trip routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(jwt.RequireAuth) // all trip endpoints need auth

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Get("/booking/{bookingID}", h.GetByBooking)

	r.Patch("/{id}/start", h.Start)
	r.Patch("/{id}/arriving", h.MarkArrivingSoon)
	r.Patch("/{id}/arrive", h.MarkArrived)
	r.Patch("/{id}/complete", h.Complete)
	r.Patch("/{id}/cancel", h.Cancel)

	r.Post("/{id}/location", h.UpdateLocation)

	return r
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	ts, err := h.svc.CreateForBooking(r.Context(), req)
	if err != nil {
		writeJSON(w, errStatus(err, http.StatusBadRequest), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"booking_id": req.BookingID,
		"total_legs": len(ts),
		"trips":      ts,
	})
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, errStatus(err, http.StatusInternalServerError), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) GetByBooking(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.GetByBooking(r.Context(), chi.URLParam(r, "bookingID"))
	if err != nil {
		writeJSON(w, errStatus(err, http.StatusInternalServerError), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": ts})
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Start)
}

func (h *Handler) MarkArrivingSoon(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.MarkArrivingSoon)
}

func (h *Handler) MarkArrived(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.MarkArrived)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Complete)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Cancel)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	claims := jwt.GetClaims(r.Context())

	var upd LocationUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body"})
		return
	}

	t, applied, err := h.svc.UpdateLocation(r.Context(), claims.UserID, chi.URLParam(r, "id"), upd)
	if err != nil {
		writeJSON(w, errStatus(err, http.StatusBadRequest), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"applied": applied, "trip": t})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, callerID, tripID string) (*Trip, error)) {
	claims := jwt.GetClaims(r.Context())
	t, err := fn(r.Context(), claims.UserID, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, errStatus(err, http.StatusBadRequest), map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// errStatus maps domain errors onto HTTP status codes.
func errStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrTripClosed):
		return http.StatusConflict
	default:
		return fallback
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
