package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSessionUnmarshalLegacyKey(t *testing.T) {
	data := []byte(`{
		"date": "2025-11-03",
		"exercises": [{"name": "Squat", "sets": [{"weight_kg": 100, "reps": 5}]}]
	}`)
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s.Actual) != 1 || s.Actual[0].Name != "Squat" {
		t.Errorf("legacy exercises key not normalized: %+v", s.Actual)
	}
}

func TestSessionUnmarshalActualWins(t *testing.T) {
	data := []byte(`{
		"date": "2025-11-03",
		"actual": [{"name": "Squat"}],
		"exercises": [{"name": "Bench Press"}]
	}`)
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s.Actual) != 1 || s.Actual[0].Name != "Squat" {
		t.Errorf("actual = %+v, want the modern key to win", s.Actual)
	}
}

func TestSessionMarshalUsesActual(t *testing.T) {
	s := Session{Date: "2026-02-16", Actual: []Exercise{{Name: "Squat"}}}
	data, err := json.Marshal(&s)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["actual"]; !ok {
		t.Error("marshaled session missing actual key")
	}
	if _, ok := raw["exercises"]; ok {
		t.Error("marshaled session must not emit the legacy exercises key")
	}
}

func TestSessionValidate(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name:    "valid",
			session: Session{Date: "2026-02-16", Actual: []Exercise{}},
		},
		{
			name:    "missing date",
			session: Session{Actual: []Exercise{}},
			wantErr: true,
		},
		{
			name:    "bad date format",
			session: Session{Date: "16.02.2026", Actual: []Exercise{}},
			wantErr: true,
		},
		{
			name:    "missing actual",
			session: Session{Date: "2026-02-16"},
			wantErr: true,
		},
		{
			name:    "bad session time",
			session: Session{Date: "2026-02-16", Actual: []Exercise{}, StartTime: "25:00"},
			wantErr: true,
		},
		{
			name: "bad exercise time",
			session: Session{Date: "2026-02-16", Actual: []Exercise{
				{Name: "Squat", StartTime: "18:61"},
			}},
			wantErr: true,
		},
		{
			name: "unnamed planned entry",
			session: Session{Date: "2026-02-16", Actual: []Exercise{}, Planned: []Exercise{
				{Sets: []Set{{Reps: 5}}},
			}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error %v does not wrap ErrValidation", err)
			}
		})
	}
}

func TestValidTime(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"7:05", true},
		{"24:00", false},
		{"18:60", false},
		{"18", false},
		{"18:05:30", false},
		{"abc", false},
	}
	for _, tt := range tests {
		if got := ValidTime(tt.in); got != tt.want {
			t.Errorf("ValidTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSessionDuration(t *testing.T) {
	s := Session{StartTime: "18:05", EndTime: "19:20"}
	start, end, minutes, ok := s.Duration()
	if !ok || start != "18:05" || end != "19:20" || minutes != 75 {
		t.Errorf("Duration = %s/%s/%d/%v, want 18:05/19:20/75/true", start, end, minutes, ok)
	}
}

func TestSessionDurationMidnightWrap(t *testing.T) {
	s := Session{StartTime: "23:30", EndTime: "00:45"}
	_, _, minutes, ok := s.Duration()
	if !ok || minutes != 75 {
		t.Errorf("Duration across midnight = %d/%v, want 75/true", minutes, ok)
	}
}

func TestSessionDurationMissing(t *testing.T) {
	s := Session{StartTime: "18:05"}
	if _, _, _, ok := s.Duration(); ok {
		t.Error("Duration with missing end time reported ok")
	}
}
