package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/goals"
	"github.com/claude/liftlog/internal/models"
)

func day(s string) time.Time {
	d, _ := time.Parse(models.DateLayout, s)
	return d
}

func TestRenderE1RM(t *testing.T) {
	series := map[string]analytics.Series{
		"Squat": {
			{Date: day("2026-01-05"), Value: 120},
			{Date: day("2026-01-12"), Value: 122.5},
			{Date: day("2026-01-19"), Value: 125},
		},
	}
	opts := E1RMOptions{
		Lifts:      []string{"Squat"},
		ShortNames: map[string]string{"Squat": "SQ"},
		GoalLines: map[string]goals.Line{
			"Squat": {
				StartDate:  day("2026-01-05"),
				EndDate:    day("2026-06-01"),
				StartValue: 120,
				EndValue:   140,
			},
		},
	}

	var buf bytes.Buffer
	if err := RenderE1RM(&buf, series, opts); err != nil {
		t.Fatalf("RenderE1RM: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("rendered PNG is empty")
	}
	// PNG magic bytes.
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderE1RMSinglePoint(t *testing.T) {
	series := map[string]analytics.Series{
		"OHP": {{Date: day("2026-01-05"), Value: 55}},
	}
	var buf bytes.Buffer
	if err := RenderE1RM(&buf, series, E1RMOptions{Lifts: []string{"OHP"}}); err != nil {
		t.Fatalf("RenderE1RM with one point: %v", err)
	}
}

func TestRenderE1RMNoData(t *testing.T) {
	var buf bytes.Buffer
	err := RenderE1RM(&buf, nil, E1RMOptions{Lifts: []string{"Squat"}})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRenderVolume(t *testing.T) {
	weeks := []analytics.WeekVolume{
		{Week: "2026-W02", WeekStart: "2026-01-05", Groups: map[string]int{"legs": 8, "back": 6}},
		{Week: "2026-W03", WeekStart: "2026-01-12", Groups: map[string]int{"legs": 10}},
	}
	var buf bytes.Buffer
	if err := RenderVolume(&buf, weeks, 0, 0); err != nil {
		t.Fatalf("RenderVolume: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderVolumeEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderVolume(&buf, nil, 0, 0); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestE1RMTitle(t *testing.T) {
	if got := e1rmTitle(nil); got != "e1RM Progress" {
		t.Errorf("title without KPI = %q", got)
	}

	kpi := &analytics.KPIReport{
		AdherencePct:     83,
		AvgBestE1RM:      120.5,
		AvgE1RMDelta:     2.3,
		Volume:           54,
		VolumeDelta:      -4,
		CurrentSessions:  5,
		PreviousSessions: 5,
	}
	got := e1rmTitle(kpi)
	if !strings.Contains(got, "+2.3") || !strings.Contains(got, "-4") {
		t.Errorf("title with deltas = %q", got)
	}

	kpi.PreviousSessions = 1
	got = e1rmTitle(kpi)
	if strings.Contains(got, "+2.3") {
		t.Errorf("title should suppress deltas on a thin previous window: %q", got)
	}
}
