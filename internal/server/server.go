// Package server exposes the read-only analytics API over HTTP. The server
// reloads session files per request — the log is small and the filesystem is
// the source of truth, so there is nothing to cache or invalidate.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  *store.Store
	cfg    *config.Config
	log    *slog.Logger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(st *store.Store, cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		store:  st,
		cfg:    cfg,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/e1rm", s.handleBestE1RMs)
	s.router.Get("/api/v1/volume", s.handleWeeklyVolume)
	s.router.Get("/api/v1/progress", s.handleProgress)
	s.router.Get("/api/v1/kpis", s.handleKPIs)
	s.router.Get("/api/v1/goals", s.handleGoals)
	s.router.Get("/api/v1/compare", s.handleCompare)
	s.router.Get("/api/v1/sessions/latest", s.handleLatestSession)
	s.router.Get("/api/v1/sessions/{date}", s.handleGetSession)
	s.router.Get("/api/v1/sessions/{date}/summary", s.handleSessionSummary)
	s.router.Get("/api/v1/sessions/{date}/status", s.handleSessionStatus)
	s.router.Get("/api/v1/charts/e1rm.png", s.handleE1RMChart)
	s.router.Get("/api/v1/charts/volume.png", s.handleVolumeChart)
}
