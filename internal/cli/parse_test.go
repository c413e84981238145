package cli

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func TestParseSetSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    models.Set
		wantErr bool
	}{
		{spec: "100x5", want: models.Set{WeightKg: 100, Reps: 5}},
		{spec: "102.5x3", want: models.Set{WeightKg: 102.5, Reps: 3}},
		{spec: "x12", want: models.Set{Reps: 12}}, // bodyweight
		{spec: "100X5", want: models.Set{WeightKg: 100, Reps: 5}},
		{spec: "100", wantErr: true},
		{spec: "ax5", wantErr: true},
		{spec: "100x", wantErr: true},
		{spec: "100x0", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseSetSpec(tt.spec)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSetSpec(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseSetSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestParseGoalSpec(t *testing.T) {
	name, val, err := parseGoalSpec("Bench Press=100:Bench")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Bench Press" || val.Target != 100 || val.Short != "Bench" {
		t.Errorf("parseGoalSpec = %q %+v", name, val)
	}

	name, val, err = parseGoalSpec("Squat=140")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Squat" || val.Target != 140 || val.Short != "" {
		t.Errorf("parseGoalSpec = %q %+v", name, val)
	}

	for _, bad := range []string{"Squat", "=140", "Squat=heavy"} {
		if _, _, err := parseGoalSpec(bad); err == nil {
			t.Errorf("parseGoalSpec(%q) should fail", bad)
		}
	}
}
