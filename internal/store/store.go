// Package store reads and writes the on-disk log: one session JSON per
// training day under the history directory, a sibling goals.json, and an
// optional program.json. Bulk loads skip and warn on malformed files;
// single-document operations fail fast.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Store is a file-backed session and goal repository.
type Store struct {
	historyDir string
	goalsPath  string
	log        *slog.Logger
}

// New creates a Store. An empty goalsPath defaults to a goals.json sibling
// of the history directory.
func New(historyDir, goalsPath string, log *slog.Logger) *Store {
	if goalsPath == "" {
		goalsPath = DefaultGoalsPath(historyDir)
	}
	return &Store{historyDir: historyDir, goalsPath: goalsPath, log: log}
}

// DefaultGoalsPath derives the goals.json path from the history directory.
func DefaultGoalsPath(historyDir string) string {
	return filepath.Join(filepath.Dir(historyDir), "goals.json")
}

// HistoryDir returns the session directory this store reads from.
func (st *Store) HistoryDir() string { return st.historyDir }

// GoalsPath returns the goals file this store reads from.
func (st *Store) GoalsPath() string { return st.goalsPath }

// LoadSessions loads every *.json session in the history directory, sorted
// by filename — filenames are dates, so the result is date-ascending.
// Malformed files and files without a date are skipped with a warning, not
// fatal. A missing directory yields an empty slice.
func (st *Store) LoadSessions() ([]models.Session, error) {
	files, err := filepath.Glob(filepath.Join(st.historyDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", st.historyDir, err)
	}
	sort.Strings(files)

	var sessions []models.Session
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			st.log.Warn("skipping session file", "file", filepath.Base(f), "error", err)
			continue
		}
		var s models.Session
		if err := json.Unmarshal(data, &s); err != nil {
			st.log.Warn("skipping session file", "file", filepath.Base(f), "error", err)
			continue
		}
		if s.Date == "" {
			st.log.Warn("skipping session file", "file", filepath.Base(f), "error", "missing date")
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// LoadSession loads a single session by date. Absence is NotFound; a
// malformed document is fatal here, unlike in LoadSessions.
func (st *Store) LoadSession(date string) (*models.Session, error) {
	path := st.sessionPath(date)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no session for %s", models.ErrNotFound, date)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrMalformed, filepath.Base(path), err)
	}
	return &s, nil
}

// SaveSession writes a session to its canonical file, keyed by date.
// Returns the path written.
func (st *Store) SaveSession(s *models.Session) (string, error) {
	if s.Date == "" {
		return "", fmt.Errorf("%w: session has no date", models.ErrValidation)
	}
	if err := os.MkdirAll(st.historyDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", st.historyDir, err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding session %s: %w", s.Date, err)
	}
	path := st.sessionPath(s.Date)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func (st *Store) sessionPath(date string) string {
	return filepath.Join(st.historyDir, date+".json")
}

// FileError is one file's validation failure.
type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ValidationReport accumulates per-file results across the history dir.
type ValidationReport struct {
	Valid      bool        `json:"valid"`
	Files      int         `json:"files"`
	ValidCount int         `json:"valid_count"`
	Errors     []FileError `json:"errors"`
}

// ValidateAll checks every session file and accumulates errors per file
// instead of stopping at the first. An empty directory is NotFound.
func (st *Store) ValidateAll() (*ValidationReport, error) {
	files, err := filepath.Glob(filepath.Join(st.historyDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", st.historyDir, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no JSON files found in %s", models.ErrNotFound, st.historyDir)
	}

	report := &ValidationReport{Files: len(files)}
	for _, f := range files {
		name := filepath.Base(f)
		if msg := st.validateFile(f); msg != "" {
			report.Errors = append(report.Errors, FileError{File: name, Error: msg})
			continue
		}
		report.ValidCount++
	}
	report.Valid = len(report.Errors) == 0
	return report, nil
}

func (st *Store) validateFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("unreadable: %v", err)
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Sprintf("invalid JSON: %v", err)
	}
	if err := s.Validate(); err != nil {
		return err.Error()
	}
	if want := s.Date + ".json"; filepath.Base(path) != want {
		return fmt.Sprintf("filename/date mismatch: file=%s, date=%s", filepath.Base(path), s.Date)
	}
	return ""
}

// LoadGoals reads the ordered goal records. An absent or unreadable goals
// file yields an empty slice — goals are optional.
func (st *Store) LoadGoals() []models.GoalEntry {
	data, err := os.ReadFile(st.goalsPath)
	if err != nil {
		return nil
	}
	var entries []models.GoalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		st.log.Warn("goals file unreadable", "file", st.goalsPath, "error", err)
		return nil
	}
	return entries
}

// AppendGoal validates and appends a goal entry, assigning an id and
// defaulting date_set to today. Returns the new total entry count.
func (st *Store) AppendGoal(entry models.GoalEntry) (int, error) {
	if err := entry.Validate(); err != nil {
		return 0, err
	}
	if entry.DateSet == "" {
		entry.DateSet = time.Now().Format(models.DateLayout)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	entries := st.LoadGoals()
	entries = append(entries, entry)

	if err := os.MkdirAll(filepath.Dir(st.goalsPath), 0o755); err != nil {
		return 0, fmt.Errorf("creating %s: %w", filepath.Dir(st.goalsPath), err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encoding goals: %w", err)
	}
	if err := os.WriteFile(st.goalsPath, append(data, '\n'), 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", st.goalsPath, err)
	}
	return len(entries), nil
}

// LoadProgram reads a training program file. Malformed content is fatal —
// a program is only ever loaded as part of a single-document operation.
func LoadProgram(path string) (*models.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}
	var p models.Program
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: program %s: %v", models.ErrMalformed, filepath.Base(path), err)
	}
	return &p, nil
}
