package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for session keys and filenames.
const DateLayout = "2006-01-02"

// Set is a single logged (or prescribed) set. Weight 0 or absent means
// bodyweight. Warmup is only meaningful on planned sets and is stripped
// when a planned exercise is copied into the actual log.
type Set struct {
	WeightKg float64 `json:"weight_kg,omitempty"`
	Reps     int     `json:"reps"`
	RPE      float64 `json:"rpe,omitempty"`
	Warmup   bool    `json:"warmup,omitempty"`
}

// Exercise is a named, ordered sequence of sets. Set order reflects the
// chronology within the exercise and is never reordered.
type Exercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	Sets        []Set  `json:"sets,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
}

// Session is one training day. Date is the unique key (one file per date).
// Actual grows in append order as exercises are logged; Planned is the
// prescription entered before training.
type Session struct {
	Date          string     `json:"date"`
	Day           string     `json:"day,omitempty"`
	Planned       []Exercise `json:"planned,omitempty"`
	Actual        []Exercise `json:"actual"`
	StartTime     string     `json:"start_time,omitempty"`
	EndTime       string     `json:"end_time,omitempty"`
	DurationMin   int        `json:"duration_min,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	PlanAdherence string     `json:"plan_adherence,omitempty"`
}

// sessionAlias avoids UnmarshalJSON recursion and captures the legacy
// "exercises" key used by older session documents.
type sessionAlias struct {
	Date          string     `json:"date"`
	Day           string     `json:"day"`
	Planned       []Exercise `json:"planned"`
	Actual        []Exercise `json:"actual"`
	Exercises     []Exercise `json:"exercises"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	DurationMin   int        `json:"duration_min"`
	Notes         string     `json:"notes"`
	PlanAdherence string     `json:"plan_adherence"`
}

// UnmarshalJSON decodes a session document, normalizing the legacy
// "exercises" key to Actual when "actual" is absent.
func (s *Session) UnmarshalJSON(data []byte) error {
	var a sessionAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = Session{
		Date:          a.Date,
		Day:           a.Day,
		Planned:       a.Planned,
		Actual:        a.Actual,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		DurationMin:   a.DurationMin,
		Notes:         a.Notes,
		PlanAdherence: a.PlanAdherence,
	}
	if s.Actual == nil && a.Exercises != nil {
		s.Actual = a.Exercises
	}
	return nil
}

// ParseDate returns the session date as a time.Time (midnight UTC).
func (s *Session) ParseDate() (time.Time, error) {
	return time.Parse(DateLayout, s.Date)
}

// Validate checks the fields a single-document operation requires. It fails
// fast on the first problem; bulk validation lives in the store layer.
func (s *Session) Validate() error {
	if s.Date == "" {
		return fmt.Errorf("%w: missing required field: date", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("%w: invalid date format: %s", ErrValidation, s.Date)
	}
	if s.Actual == nil {
		return fmt.Errorf("%w: missing required field: actual (or exercises)", ErrValidation)
	}
	for _, field := range []struct{ name, val string }{
		{"start_time", s.StartTime},
		{"end_time", s.EndTime},
	} {
		if field.val != "" && !ValidTime(field.val) {
			return fmt.Errorf("%w: invalid %s format: %s (expected HH:MM)", ErrValidation, field.name, field.val)
		}
	}
	for _, ex := range s.Actual {
		for _, field := range []struct{ name, val string }{
			{"start_time", ex.StartTime},
			{"end_time", ex.EndTime},
		} {
			if field.val != "" && !ValidTime(field.val) {
				return fmt.Errorf("%w: invalid %s in exercise %q: %s", ErrValidation, field.name, ex.Name, field.val)
			}
		}
	}
	if errs := ValidatePlanned(s.Planned); len(errs) > 0 {
		return fmt.Errorf("%w: planned validation failed: %s", ErrValidation, strings.Join(errs, "; "))
	}
	return nil
}

// ValidatePlanned checks that every planned entry carries a name.
// Returns one error string per offending entry.
func ValidatePlanned(planned []Exercise) []string {
	var errs []string
	for i, p := range planned {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("planned[%d]: missing 'name'", i))
		}
	}
	return errs
}

// ValidTime reports whether t is a valid HH:MM 24-hour wall-clock time.
func ValidTime(t string) bool {
	h, m, ok := splitClock(t)
	return ok && h >= 0 && h <= 23 && m >= 0 && m <= 59
}

func splitClock(t string) (h, m int, ok bool) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// Duration returns the session's wall-clock start, end, and length in
// minutes, derived from StartTime/EndTime. A session crossing midnight
// wraps. ok is false when either time is absent or malformed.
func (s *Session) Duration() (start, end string, minutes int, ok bool) {
	if s.StartTime == "" || s.EndTime == "" {
		return "", "", 0, false
	}
	sh, sm, okS := splitClock(s.StartTime)
	eh, em, okE := splitClock(s.EndTime)
	if !okS || !okE || !ValidTime(s.StartTime) || !ValidTime(s.EndTime) {
		return "", "", 0, false
	}
	minutes = (eh*60 + em) - (sh*60 + sm)
	if minutes < 0 {
		minutes += 24 * 60
	}
	return s.StartTime, s.EndTime, minutes, true
}
