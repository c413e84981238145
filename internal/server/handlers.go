package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/chart"
	"github.com/claude/liftlog/internal/goals"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
)

func (s *Server) handleBestE1RMs(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.BestE1RMs(sessions))
}

func (s *Server) handleWeeklyVolume(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.WeeklyVolume(sessions))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise parameter required"})
		return
	}
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	entries, err := analytics.Progress(sessions, exercise)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	entry := goals.Latest(s.store.LoadGoals())
	series := analytics.LiftSeries(sessions, goals.TrackedLifts(entry))
	report := analytics.RollingKPIs(sessions, series, analytics.KPIOptions{
		WindowDays:       s.cfg.KPI.WindowDays,
		ExpectedSessions: s.cfg.KPI.ExpectedSessions,
	})
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGoals(w http.ResponseWriter, r *http.Request) {
	entries := s.store.LoadGoals()
	if entries == nil {
		entries = []models.GoalEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from and to parameters required"})
		return
	}
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	cmp, err := analytics.CompareSessions(sessions, from, to)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleLatestSession(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	if len(sessions) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no sessions found"})
		return
	}
	writeJSON(w, http.StatusOK, sessions[len(sessions)-1])
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.LoadSession(chi.URLParam(r, "date"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.LoadSession(chi.URLParam(r, "date"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics.Summarize(session))
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.LoadSession(chi.URLParam(r, "date"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"date":   session.Date,
		"status": workout.RenderStatus(session),
	})
}

func (s *Server) handleE1RMChart(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	entry := goals.Latest(s.store.LoadGoals())
	lifts := s.cfg.Chart.Lifts
	if len(lifts) == 0 {
		lifts = goals.TrackedLifts(entry)
	}
	series := analytics.LiftSeries(sessions, lifts)
	kpi := analytics.RollingKPIs(sessions, series, analytics.KPIOptions{
		WindowDays:       s.cfg.KPI.WindowDays,
		ExpectedSessions: s.cfg.KPI.ExpectedSessions,
	})

	w.Header().Set("Content-Type", "image/png")
	err = chart.RenderE1RM(w, series, chart.E1RMOptions{
		Lifts:      lifts,
		ShortNames: goals.ShortNames(s.cfg.ShortNames, entry),
		GoalLines:  goals.Lines(entry, series),
		KPI:        &kpi,
	})
	if err != nil {
		s.log.Error("chart render failed", "chart", "e1rm", "error", err)
	}
}

func (s *Server) handleVolumeChart(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.LoadSessions()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := chart.RenderVolume(w, analytics.WeeklyVolume(sessions), 0, 0); err != nil {
		s.log.Error("chart render failed", "chart", "volume", "error", err)
	}
}

// writeError maps the error taxonomy to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrMalformed):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
