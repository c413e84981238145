// Package goals projects target lines between current strength and a goal
// e1RM, and resolves display names for tracked lifts.
package goals

import (
	"time"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/match"
	"github.com/claude/liftlog/internal/models"
)

// Line is one goal projection: a straight segment from the current best
// estimate to the target value at the target date. Pure chart-annotation
// data, no decision logic.
type Line struct {
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	StartValue float64   `json:"start_value"`
	EndValue   float64   `json:"end_value"`
}

// DefaultLifts is the fallback tracked-lift list when no goal entry names any.
var DefaultLifts = []string{"Squat", "Bench Press", "OHP", "Seated Cable Row"}

// ProjectGoalLine constructs a goal line from known endpoints. Callers skip
// lifts with no known start value — a line cannot be drawn without both
// endpoints.
func ProjectGoalLine(target, start float64, startDate, endDate time.Time) Line {
	return Line{
		StartDate:  startDate,
		EndDate:    endDate,
		StartValue: start,
		EndValue:   target,
	}
}

// Lines projects one goal line per tracked lift in entry, anchored at the
// first point of the lift's e1RM series. Goal names fuzzy-match series
// names; lifts with no matching series (no known start value) produce no
// line, without affecting the others. Keys of the result are series names.
func Lines(entry *models.GoalEntry, series map[string]analytics.Series) map[string]Line {
	out := make(map[string]Line)
	if entry == nil || entry.TargetDate == "" {
		return out
	}
	targetDate, err := time.Parse(models.DateLayout, entry.TargetDate)
	if err != nil {
		return out
	}

	for _, goalName := range entry.Goals.Names() {
		val, _ := entry.Goals.Get(goalName)
		for seriesName, s := range series {
			if len(s) == 0 || !match.Resolve(seriesName, goalName) {
				continue
			}
			out[seriesName] = ProjectGoalLine(val.Target, s[0].Value, s[0].Date, targetDate)
			break
		}
	}
	return out
}

// TrackedLifts returns the lift names of the current goal entry, in
// document order, or DefaultLifts when no goals are set.
func TrackedLifts(entry *models.GoalEntry) []string {
	if entry == nil || entry.Goals.Len() == 0 {
		return append([]string(nil), DefaultLifts...)
	}
	return entry.Goals.Names()
}

// ShortNames merges the configured short-name table with per-goal overrides
// from the current entry. The defaults are injected by the caller (config),
// not baked in here.
func ShortNames(defaults map[string]string, entry *models.GoalEntry) map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	if entry != nil {
		for _, name := range entry.Goals.Names() {
			val, _ := entry.Goals.Get(name)
			out[name] = val.ShortName(name)
		}
	}
	return out
}

// Latest returns the authoritative (last) goal entry, or nil when none exist.
func Latest(entries []models.GoalEntry) *models.GoalEntry {
	if len(entries) == 0 {
		return nil
	}
	return &entries[len(entries)-1]
}
