package analytics

import (
	"fmt"
	"sort"

	"github.com/claude/liftlog/internal/match"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
)

// LiftBest is the best e1RM for one exercise, taken from the most recent
// session it appears in with weight data.
type LiftBest struct {
	E1RM float64 `json:"e1rm"`
	Date string  `json:"date"`
}

// BestE1RMs returns the best e1RM per exercise name at its latest
// appearance. Later sessions overwrite earlier ones; bodyweight-only
// entries contribute nothing.
func BestE1RMs(sessions []models.Session) map[string]LiftBest {
	out := make(map[string]LiftBest)
	for i := range sessions {
		for _, ex := range sessions[i].Actual {
			if e := BestEstimate(ex.Sets); e > 0 {
				out[ex.Name] = LiftBest{E1RM: round2(e), Date: sessions[i].Date}
			}
		}
	}
	return out
}

// WeekVolume is one ISO week's hard-set counts per muscle group.
type WeekVolume struct {
	Week      string         `json:"week"`
	WeekStart string         `json:"week_start"`
	Groups    map[string]int `json:"groups"`
}

// WeeklyVolume buckets hard sets (every logged set counts, regardless of
// load) by ISO week and muscle group. Exercises without a muscle group tag
// land in "unknown". Output is sorted by week.
func WeeklyVolume(sessions []models.Session) []WeekVolume {
	weeks := make(map[string]*WeekVolume)
	for i := range sessions {
		d, err := sessions[i].ParseDate()
		if err != nil {
			continue
		}
		wk := WeekKey(d)
		w, ok := weeks[wk]
		if !ok {
			w = &WeekVolume{
				Week:      wk,
				WeekStart: WeekStart(d).Format(models.DateLayout),
				Groups:    make(map[string]int),
			}
			weeks[wk] = w
		}
		for _, ex := range sessions[i].Actual {
			mg := ex.MuscleGroup
			if mg == "" {
				mg = "unknown"
			}
			w.Groups[mg] += len(ex.Sets)
		}
	}

	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]WeekVolume, 0, len(keys))
	for _, k := range keys {
		out = append(out, *weeks[k])
	}
	return out
}

// ProgressEntry is one session's appearance of a tracked exercise.
type ProgressEntry struct {
	Date         string  `json:"date"`
	Exercise     string  `json:"exercise"`
	E1RM         float64 `json:"e1rm"`
	BestWeightKg float64 `json:"best_weight"`
	BestReps     int     `json:"best_reps"`
	NumSets      int     `json:"num_sets"`
}

// Progress returns the progression of a single exercise over time, fuzzy
// matching logged names against target. An exercise absent from all of
// history is NotFound.
func Progress(sessions []models.Session, target string) ([]ProgressEntry, error) {
	var entries []ProgressEntry
	for i := range sessions {
		for _, ex := range sessions[i].Actual {
			if !match.Resolve(ex.Name, target) {
				continue
			}
			entry := ProgressEntry{
				Date:     sessions[i].Date,
				Exercise: ex.Name,
				E1RM:     round2(BestEstimate(ex.Sets)),
				NumSets:  len(ex.Sets),
			}
			if best, ok := bestTonnageSet(ex.Sets); ok {
				entry.BestWeightKg = best.WeightKg
				entry.BestReps = best.Reps
			}
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: exercise %q not found in history", models.ErrNotFound, target)
	}
	return entries, nil
}

// bestTonnageSet picks the set with the highest weight×reps product.
func bestTonnageSet(sets []models.Set) (models.Set, bool) {
	if len(sets) == 0 {
		return models.Set{}, false
	}
	best := sets[0]
	for _, s := range sets[1:] {
		if s.WeightKg*float64(s.Reps) > best.WeightKg*float64(best.Reps) {
			best = s
		}
	}
	return best, true
}

// PlanRow is one planned exercise's outcome in a session summary.
type PlanRow struct {
	Name      string `json:"name"`
	Planned   string `json:"planned"`
	Actual    string `json:"actual"`
	Completed bool   `json:"completed"`
}

// Summary describes a single session for reporting.
type Summary struct {
	Date                string    `json:"date"`
	Day                 string    `json:"day,omitempty"`
	DurationMin         int       `json:"duration_min,omitempty"`
	Exercises           []string  `json:"exercises"`
	TotalSets           int       `json:"total_sets"`
	MuscleGroups        []string  `json:"muscle_groups"`
	PlanAdherence       string    `json:"plan_adherence"`
	Notes               string    `json:"notes,omitempty"`
	StartedAt           string    `json:"started_at,omitempty"`
	EndedAt             string    `json:"ended_at,omitempty"`
	ComputedDurationMin int       `json:"computed_duration_min,omitempty"`
	PlanComparison      []PlanRow `json:"plan_comparison,omitempty"`
}

// Summarize builds the summary for one session, including the plan-vs-actual
// comparison when the session carries a plan.
func Summarize(s *models.Session) Summary {
	sum := Summary{
		Date:          s.Date,
		Day:           s.Day,
		DurationMin:   s.DurationMin,
		PlanAdherence: s.PlanAdherence,
		Notes:         s.Notes,
	}
	if sum.PlanAdherence == "" {
		sum.PlanAdherence = "unknown"
	}

	groupSet := make(map[string]bool)
	for _, ex := range s.Actual {
		sum.Exercises = append(sum.Exercises, ex.Name)
		sum.TotalSets += len(ex.Sets)
		mg := ex.MuscleGroup
		if mg == "" {
			mg = "unknown"
		}
		groupSet[mg] = true
	}
	for mg := range groupSet {
		sum.MuscleGroups = append(sum.MuscleGroups, mg)
	}
	sort.Strings(sum.MuscleGroups)

	if start, end, minutes, ok := s.Duration(); ok {
		sum.StartedAt = start
		sum.EndedAt = end
		sum.ComputedDurationMin = minutes
	}

	for _, p := range s.Planned {
		row := PlanRow{Name: p.Name, Planned: workout.FormatSets(p.Sets), Actual: "skipped"}
		for _, a := range s.Actual {
			if match.Resolve(a.Name, p.Name) {
				row.Actual = workout.FormatSets(a.Sets)
				row.Completed = true
				break
			}
		}
		sum.PlanComparison = append(sum.PlanComparison, row)
	}
	return sum
}

// CompareRow is one exercise's delta between two sessions.
type CompareRow struct {
	Name  string  `json:"name"`
	E1RM1 float64 `json:"e1rm_1"`
	E1RM2 float64 `json:"e1rm_2"`
	Delta float64 `json:"e1rm_diff"`
	Sets1 int     `json:"sets_1"`
	Sets2 int     `json:"sets_2"`
}

// SessionComparison is a side-by-side of two sessions.
type SessionComparison struct {
	Date1     string       `json:"date1"`
	Date2     string       `json:"date2"`
	Exercises []CompareRow `json:"exercises"`
}

// CompareSessions compares two sessions by date. Either date missing from
// history is fatal to the operation (NotFound).
func CompareSessions(sessions []models.Session, date1, date2 string) (*SessionComparison, error) {
	s1 := findByDate(sessions, date1)
	if s1 == nil {
		return nil, fmt.Errorf("%w: no session found for %s", models.ErrNotFound, date1)
	}
	s2 := findByDate(sessions, date2)
	if s2 == nil {
		return nil, fmt.Errorf("%w: no session found for %s", models.ErrNotFound, date2)
	}

	var order []string
	rows := make(map[string]*CompareRow)
	for _, ex := range s1.Actual {
		if _, ok := rows[ex.Name]; !ok {
			order = append(order, ex.Name)
			rows[ex.Name] = &CompareRow{Name: ex.Name}
		}
		rows[ex.Name].E1RM1 = BestEstimate(ex.Sets)
		rows[ex.Name].Sets1 = len(ex.Sets)
	}
	for _, ex := range s2.Actual {
		if _, ok := rows[ex.Name]; !ok {
			order = append(order, ex.Name)
			rows[ex.Name] = &CompareRow{Name: ex.Name}
		}
		rows[ex.Name].E1RM2 = BestEstimate(ex.Sets)
		rows[ex.Name].Sets2 = len(ex.Sets)
	}

	cmp := &SessionComparison{Date1: date1, Date2: date2}
	for _, name := range order {
		r := rows[name]
		r.Delta = round2(r.E1RM2 - r.E1RM1)
		cmp.Exercises = append(cmp.Exercises, *r)
	}
	return cmp, nil
}

func findByDate(sessions []models.Session, date string) *models.Session {
	for i := range sessions {
		if sessions[i].Date == date {
			return &sessions[i]
		}
	}
	return nil
}
