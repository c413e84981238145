package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/claude/liftlog/internal/match"
	"github.com/claude/liftlog/internal/models"
)

// Point is one (session date, best e1RM) sample in a lift's time series.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a lift's e1RM samples in session order.
type Series []Point

// LiftSeries builds a per-lift series of session-best e1RM values. For each
// session only the first actual exercise matching the lift contributes, and
// only when it carries weight data.
func LiftSeries(sessions []models.Session, lifts []string) map[string]Series {
	out := make(map[string]Series)
	for _, lift := range lifts {
		var s Series
		for i := range sessions {
			d, err := sessions[i].ParseDate()
			if err != nil {
				continue
			}
			for _, ex := range sessions[i].Actual {
				if match.Resolve(ex.Name, lift) {
					if e := BestEstimate(ex.Sets); e > 0 {
						s = append(s, Point{Date: d, Value: round1(e)})
					}
					break
				}
			}
		}
		if len(s) > 0 {
			out[lift] = s
		}
	}
	return out
}

// KPIOptions are the rolling-window policy knobs. ExpectedSessions is the
// adherence denominator (3×/week over 14 days by default); it is policy,
// not a derived value, so callers can override it.
type KPIOptions struct {
	WindowDays       int
	ExpectedSessions float64
}

// DefaultKPIOptions returns the stock 14-day / 6-session policy.
func DefaultKPIOptions() KPIOptions {
	return KPIOptions{WindowDays: 14, ExpectedSessions: 6}
}

// KPIReport is a rolling-window snapshot. Deltas compare the current window
// against the previous, adjacent, non-overlapping one. The report always
// carries raw numbers — whether a delta is statistically worth showing
// (both windows ≥ 3 sessions, by convention) is the caller's call.
type KPIReport struct {
	AdherencePct     int     `json:"adherence_pct"`
	AvgBestE1RM      float64 `json:"avg_best_e1rm"`
	AvgE1RMDelta     float64 `json:"avg_e1rm_delta"`
	Volume           int     `json:"volume"`
	VolumeDelta      int     `json:"volume_delta"`
	CurrentSessions  int     `json:"current_sessions"`
	PreviousSessions int     `json:"previous_sessions"`
}

// MinSessionsForDelta is the display convention for suppressing deltas:
// comparisons against windows with fewer sessions are statistically weak.
const MinSessionsForDelta = 3

// ShowDelta reports whether both windows have enough sessions for the
// deltas to be worth displaying.
func (r KPIReport) ShowDelta() bool {
	return r.CurrentSessions >= MinSessionsForDelta && r.PreviousSessions >= MinSessionsForDelta
}

// RollingKPIs computes the rolling-window KPI snapshot. The current window
// is the opts.WindowDays days ending on (and including) the latest session
// date; the previous window is the same span immediately before it.
// Empty session input yields an all-zero report.
func RollingKPIs(sessions []models.Session, series map[string]Series, opts KPIOptions) KPIReport {
	if len(sessions) == 0 {
		return KPIReport{}
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 14
	}
	if opts.ExpectedSessions <= 0 {
		opts.ExpectedSessions = 6
	}

	latest, err := sessions[len(sessions)-1].ParseDate()
	if err != nil {
		return KPIReport{}
	}
	curStart := latest.AddDate(0, 0, -(opts.WindowDays - 1))
	prevEnd := curStart.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(opts.WindowDays - 1))

	var report KPIReport
	report.CurrentSessions = countSessionsIn(sessions, curStart, latest)
	report.PreviousSessions = countSessionsIn(sessions, prevStart, prevEnd)

	adherence := math.Round(float64(report.CurrentSessions) / opts.ExpectedSessions * 100)
	if adherence > 100 {
		adherence = 100
	}
	report.AdherencePct = int(adherence)

	var curBests, prevBests []float64
	for _, s := range series {
		if b, ok := bestInWindow(s, curStart, latest); ok {
			curBests = append(curBests, b)
		}
		if b, ok := bestInWindow(s, prevStart, prevEnd); ok {
			prevBests = append(prevBests, b)
		}
	}
	if len(curBests) > 0 {
		report.AvgBestE1RM = round1(mean(curBests))
	}
	if len(prevBests) > 0 {
		report.AvgE1RMDelta = round1(report.AvgBestE1RM - round1(mean(prevBests)))
	}

	report.Volume = countSetsIn(sessions, curStart, latest)
	report.VolumeDelta = report.Volume - countSetsIn(sessions, prevStart, prevEnd)
	return report
}

func countSessionsIn(sessions []models.Session, start, end time.Time) int {
	var n int
	for i := range sessions {
		d, err := sessions[i].ParseDate()
		if err != nil {
			continue
		}
		if inWindow(d, start, end) {
			n++
		}
	}
	return n
}

func countSetsIn(sessions []models.Session, start, end time.Time) int {
	var total int
	for i := range sessions {
		d, err := sessions[i].ParseDate()
		if err != nil {
			continue
		}
		if !inWindow(d, start, end) {
			continue
		}
		for _, ex := range sessions[i].Actual {
			total += len(ex.Sets)
		}
	}
	return total
}

func bestInWindow(s Series, start, end time.Time) (float64, bool) {
	var best float64
	var found bool
	for _, p := range s {
		if inWindow(p.Date, start, end) && (!found || p.Value > best) {
			best = p.Value
			found = true
		}
	}
	return best, found
}

func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// WeekKey returns the ISO-8601 week identifier (e.g. "2026-W07") used for
// weekly volume bucketing. Rolling-window KPIs do not use calendar weeks.
func WeekKey(d time.Time) string {
	year, week := d.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekStart returns the Monday starting d's ISO week.
func WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
