// Package server provides the optional HTTP observation surface: health,
// live state, the session journal, an MJPEG preview and a websocket feed.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ayusman/dreamsketch/internal/server/api"
	"github.com/ayusman/dreamsketch/internal/store"
)

// State is the live snapshot served at /api/state and pushed on /api/live.
type State struct {
	Mode       string `json:"mode"`
	Gesture    string `json:"gesture,omitempty"`
	Enabled    bool   `json:"enabled"`
	SessionID  string `json:"session_id,omitempty"`
	Frames     int64  `json:"frames"`
	Hands      int    `json:"hands"`
	Stroke     int    `json:"stroke"`
	Particles  int    `json:"particles"`
	LastEvent  string `json:"last_event,omitempty"`
	ObservedAt int64  `json:"observed_at"`
}

// StateSource provides the current live state.
type StateSource interface {
	State() State
}

// FrameSource provides the most recent composited frame as JPEG bytes and
// a sequence number that changes whenever a new frame is stored.
type FrameSource interface {
	LatestJPEG() ([]byte, uint64)
}

// Config holds the server configuration.
type Config struct {
	Store  *store.Store
	State  StateSource
	Frames FrameSource
	Hub    *Hub
}

// Server represents the HTTP server for the application.
type Server struct {
	config Config
	router chi.Router
	start  time.Time
	http   *http.Server
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		router: chi.NewRouter(),
		start:  time.Now(),
	}
	s.http = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	r := s.router
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)

	if s.config.State != nil {
		r.Get("/api/state", s.handleState)
	}

	// Register journal API handlers if Store is configured
	if s.config.Store != nil {
		journal := api.NewJournalHandler(s.config.Store)
		r.Mount("/api/sessions", journal.Routes())
		r.Get("/api/events", journal.RecentEvents)
	}

	if s.config.Frames != nil {
		r.Method(http.MethodGet, "/api/stream", NewStreamHandler(s.config.Frames))
	}

	if s.config.Hub != nil {
		r.Method(http.MethodGet, "/api/live", s.config.Hub)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// handleState handles GET requests to /api/state.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config.State.State()); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address. It returns
// nil once Shutdown has stopped it.
func (s *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a server started with ListenAndServe.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
