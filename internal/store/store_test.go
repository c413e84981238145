package store

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(filepath.Join(dir, "history"), "", log)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := testStore(t)
	s := &models.Session{
		Date: "2026-02-16",
		Actual: []models.Exercise{
			{Name: "Squat", Sets: []models.Set{{WeightKg: 100, Reps: 5}}},
		},
	}
	path, err := st.SaveSession(s)
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if filepath.Base(path) != "2026-02-16.json" {
		t.Errorf("path = %s, want date-keyed filename", path)
	}

	got, err := st.LoadSession("2026-02-16")
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if got.Actual[0].Sets[0].WeightKg != 100 {
		t.Errorf("round-trip lost data: %+v", got)
	}
}

func TestSaveSessionRequiresDate(t *testing.T) {
	st := testStore(t)
	if _, err := st.SaveSession(&models.Session{}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestLoadSessionNotFound(t *testing.T) {
	st := testStore(t)
	if _, err := st.LoadSession("2026-01-01"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadSessionMalformedIsFatal(t *testing.T) {
	st := testStore(t)
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-01.json"), "{not json")
	if _, err := st.LoadSession("2026-01-01"); !errors.Is(err, models.ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}

func TestLoadSessionsSkipsBadFiles(t *testing.T) {
	st := testStore(t)
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-05.json"), `{"date":"2026-01-05","actual":[]}`)
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-06.json"), "{broken")
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-07.json"), `{"actual":[]}`) // no date
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-08.json"), `{"date":"2026-01-08","actual":[]}`)

	sessions, err := st.LoadSessions()
	if err != nil {
		t.Fatalf("LoadSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2 (bad files skipped)", len(sessions))
	}
	if sessions[0].Date != "2026-01-05" || sessions[1].Date != "2026-01-08" {
		t.Errorf("order = %s, %s, want date-ascending", sessions[0].Date, sessions[1].Date)
	}
}

func TestLoadSessionsMissingDir(t *testing.T) {
	st := testStore(t)
	sessions, err := st.LoadSessions()
	if err != nil {
		t.Fatalf("LoadSessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0 for a missing directory", len(sessions))
	}
}

func TestValidateAll(t *testing.T) {
	st := testStore(t)
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-05.json"), `{"date":"2026-01-05","actual":[]}`)
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-06.json"), `{"date":"2026-01-09","actual":[]}`) // mismatch
	writeFile(t, filepath.Join(st.HistoryDir(), "2026-01-07.json"), `{"date":"2026-01-07"}`)             // no actual

	report, err := st.ValidateAll()
	if err != nil {
		t.Fatalf("ValidateAll: %v", err)
	}
	if report.Valid {
		t.Error("report.Valid = true, want false")
	}
	if report.Files != 3 || report.ValidCount != 1 || len(report.Errors) != 2 {
		t.Errorf("report = %+v, want 3 files, 1 valid, 2 errors", report)
	}
}

func TestValidateAllEmptyDir(t *testing.T) {
	st := testStore(t)
	if _, err := st.ValidateAll(); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound for empty history", err)
	}
}

func TestGoalsAppendAndLoad(t *testing.T) {
	st := testStore(t)
	if got := st.LoadGoals(); got != nil {
		t.Errorf("LoadGoals on missing file = %v, want nil", got)
	}

	entry := models.GoalEntry{
		TargetDate: "2026-06-01",
		Goals: models.NewGoalMap([]string{"Squat"}, map[string]models.GoalValue{
			"Squat": {Target: 140},
		}),
	}
	total, err := st.AppendGoal(entry)
	if err != nil {
		t.Fatalf("AppendGoal: %v", err)
	}
	if total != 1 {
		t.Errorf("total = %d, want 1", total)
	}

	entries := st.LoadGoals()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.ID == "" {
		t.Error("appended entry has no id")
	}
	if got.DateSet == "" {
		t.Error("appended entry has no date_set default")
	}
	if v, _ := got.Goals.Get("Squat"); v.Target != 140 {
		t.Errorf("goal target = %v, want 140", v.Target)
	}
}

func TestAppendGoalValidates(t *testing.T) {
	st := testStore(t)
	if _, err := st.AppendGoal(models.GoalEntry{}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestDefaultGoalsPath(t *testing.T) {
	if got := DefaultGoalsPath("/data/history"); got != "/data/goals.json" {
		t.Errorf("DefaultGoalsPath = %s, want /data/goals.json", got)
	}
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.json")
	writeFile(t, path, `{"days":{"A":{"exercises":[{"name":"Squat","sets":[{"weight_kg":100,"reps":5}]}]}}}`)

	p, err := LoadProgram(path)
	if err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	day, ok := p.Days["A"]
	if !ok || len(day.Exercises) != 1 {
		t.Fatalf("program = %+v", p)
	}

	writeFile(t, path, "nope")
	if _, err := LoadProgram(path); !errors.Is(err, models.ErrMalformed) {
		t.Errorf("error = %v, want ErrMalformed", err)
	}
}
