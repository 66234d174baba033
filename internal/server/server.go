// Package server provides the HTTP and WebSocket surface of the game.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/ayusman/obakehunt/internal/game"
	"github.com/ayusman/obakehunt/internal/gesture"
	"github.com/ayusman/obakehunt/internal/server/api"
	"github.com/ayusman/obakehunt/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store

	// Source receives results from browser trackers. Nil disables /api/landmarks.
	Source *gesture.LatestSource

	// OnTrackers is called with the number of connected browser trackers
	// whenever it changes.
	OnTrackers func(n int)

	// Sensitivity bounds values accepted by the settings API.
	Sensitivity game.SensitivityConfig

	// OnSensitivity is called after a new sensitivity is saved.
	OnSensitivity func(v float64)

	// Quiet disables request logging.
	Quiet bool
}

// Server represents the HTTP server for the game.
type Server struct {
	config    Config
	router    chi.Router
	landmarks *LandmarksHandler
	start     time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		router: chi.NewRouter(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	r := s.router
	if !s.config.Quiet {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)

	if s.config.Store != nil {
		r.Route("/api/rounds", api.NewRoundHandler(s.config.Store).Routes)

		settings := api.NewSettingsHandler(s.config.Store, s.config.Sensitivity)
		settings.OnSensitivity = s.config.OnSensitivity
		r.Route("/api/settings", settings.Routes)
	}

	if s.config.Source != nil {
		s.landmarks = NewLandmarksHandler(s.config.Source)
		s.landmarks.OnClients = s.config.OnTrackers
		r.Handle("/api/landmarks", s.landmarks)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		r.Handle("/*", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}
	if s.landmarks != nil {
		response["trackers"] = s.landmarks.Clients()
	}
	if s.config.Store != nil {
		if n, err := s.config.Store.Rounds().Count(); err == nil {
			response["rounds"] = n
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
