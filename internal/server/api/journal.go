// Package api provides HTTP API handlers for the dreamsketch session journal.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayusman/dreamsketch/internal/store"
)

// DefaultLimit bounds list endpoints when the request gives no limit.
const DefaultLimit = 50

// JournalHandler serves the recorded sessions and gesture events.
type JournalHandler struct {
	store *store.Store
}

// NewJournalHandler creates a new JournalHandler with the given store.
func NewJournalHandler(s *store.Store) *JournalHandler {
	return &JournalHandler{store: s}
}

// Routes returns the session routes, to be mounted at /api/sessions.
func (h *JournalHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.listSessions)
	r.Get("/{id}", h.getSession)
	r.Get("/{id}/events", h.listEvents)
	return r
}

type sessionResponse struct {
	ID        string         `json:"id"`
	StartedAt string         `json:"started_at"`
	EndedAt   string         `json:"ended_at,omitempty"`
	Frames    int64          `json:"frames"`
	Counts    map[string]int `json:"counts,omitempty"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type eventResponse struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Kind      string `json:"kind"`
	Side      string `json:"side,omitempty"`
	Direction string `json:"direction,omitempty"`
	Mode      string `json:"mode"`
	At        string `json:"at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toSessionResponse converts a store.Session to a sessionResponse.
func toSessionResponse(s *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:        s.ID,
		StartedAt: s.StartedAt.Format(time.RFC3339),
		Frames:    s.Frames,
	}
	if s.EndedAt != nil {
		resp.EndedAt = s.EndedAt.Format(time.RFC3339)
	}
	return resp
}

// toEventResponses converts store events to their responses.
func toEventResponses(events []*store.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{
			ID:        e.ID,
			SessionID: e.SessionID,
			Kind:      e.Kind,
			Side:      e.Side,
			Direction: e.Direction,
			Mode:      e.Mode,
			At:        e.At.Format(time.RFC3339Nano),
		})
	}
	return out
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// limit parses the limit query parameter.
func limit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	return n, nil
}

// listSessions handles GET /api/sessions.
func (h *JournalHandler) listSessions(w http.ResponseWriter, r *http.Request) {
	n, err := limit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessions, err := h.store.Sessions().List(n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{Sessions: make([]sessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// getSession handles GET /api/sessions/{id} and includes per-kind counts.
func (h *JournalHandler) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	counts, err := h.store.Events().CountByKind(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events")
		return
	}

	response := toSessionResponse(sess)
	response.Counts = counts
	writeJSON(w, http.StatusOK, response)
}

// listEvents handles GET /api/sessions/{id}/events.
func (h *JournalHandler) listEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	events, err := h.store.Events().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	writeJSON(w, http.StatusOK, listEventsResponse{Events: toEventResponses(events)})
}

// RecentEvents handles GET /api/events, newest first across sessions.
func (h *JournalHandler) RecentEvents(w http.ResponseWriter, r *http.Request) {
	n, err := limit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.store.Events().Recent(n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	writeJSON(w, http.StatusOK, listEventsResponse{Events: toEventResponses(events)})
}
