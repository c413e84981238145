package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liftlog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History != "history" {
		t.Errorf("History = %q, want default", cfg.History)
	}
	if cfg.KPI.WindowDays != 14 || cfg.KPI.ExpectedSessions != 6 {
		t.Errorf("KPI = %+v, want 14/6", cfg.KPI)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 8573 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.ShortNames["Seated Cable Row"] != "Row" {
		t.Errorf("short names not seeded: %q", cfg.ShortNames["Seated Cable Row"])
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := writeConfig(t, `
history: /data/gym
kpi:
  window_days: 28
short_names:
  Squat: SQ
chart:
  lifts: [Squat, RDL]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History != "/data/gym" {
		t.Errorf("History = %q", cfg.History)
	}
	if cfg.KPI.WindowDays != 28 {
		t.Errorf("WindowDays = %d, want file override 28", cfg.KPI.WindowDays)
	}
	if cfg.KPI.ExpectedSessions != 6 {
		t.Errorf("ExpectedSessions = %v, want default kept", cfg.KPI.ExpectedSessions)
	}
	if cfg.ShortNames["Squat"] != "SQ" {
		t.Errorf("Squat short = %q, want per-key override", cfg.ShortNames["Squat"])
	}
	if cfg.ShortNames["OHP"] != "OHP" {
		t.Errorf("OHP short = %q, want untouched default", cfg.ShortNames["OHP"])
	}
	if len(cfg.Chart.Lifts) != 2 {
		t.Errorf("Chart.Lifts = %v", cfg.Chart.Lifts)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LIFTLOG_HISTORY", "/env/history")
	t.Setenv("LIFTLOG_KPI_WINDOW_DAYS", "7")
	t.Setenv("LIFTLOG_SERVER_PORT", "9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.History != "/env/history" {
		t.Errorf("History = %q, want env override", cfg.History)
	}
	if cfg.KPI.WindowDays != 7 {
		t.Errorf("WindowDays = %d, want 7", cfg.KPI.WindowDays)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "history: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, "kpi:\n  window_days: -1\n")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for negative window")
	}

	t.Setenv("LIFTLOG_SERVER_PORT", "70000")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected validation error for out-of-range port")
	}
}
