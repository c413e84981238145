// Package workout renders and mutates live training sessions: compact set
// formatting, planned-vs-actual diffing, and the log/done/status operations
// used mid-workout. The only state it mutates is the session passed into
// LogExercise/MarkDone/RemoveExercise; everything else is pure string work.
package workout

import (
	"fmt"
	"strconv"

	"github.com/claude/liftlog/internal/models"
)

// token is one rendered set in a diff or format pass. Only matched
// (non-deviant) tokens may collapse into a run.
type token struct {
	text    string
	matched bool
}

// weightLabel formats a weight: 0 or negative → "BW", otherwise "<N>kg"
// without trailing zeros (45 → "45kg", 102.5 → "102.5kg").
func weightLabel(w float64) string {
	if w > 0 {
		return strconv.FormatFloat(w, 'f', -1, 64) + "kg"
	}
	return "BW"
}

func setToken(s models.Set) string {
	return fmt.Sprintf("%s×%d", weightLabel(s.WeightKg), s.Reps)
}

// collapseRuns folds adjacent identical matched tokens into one string with
// an " (×N)" suffix. Deviant tokens never collapse, and non-adjacent
// repeats stay separate.
func collapseRuns(tokens []token) []string {
	type run struct {
		text    string
		matched bool
		count   int
	}
	var runs []run
	for _, t := range tokens {
		if t.matched && len(runs) > 0 && runs[len(runs)-1].matched && runs[len(runs)-1].text == t.text {
			runs[len(runs)-1].count++
			continue
		}
		runs = append(runs, run{text: t.text, matched: t.matched, count: 1})
	}

	out := make([]string, 0, len(runs))
	for _, r := range runs {
		if r.count > 1 {
			out = append(out, fmt.Sprintf("%s (×%d)", r.text, r.count))
		} else {
			out = append(out, r.text)
		}
	}
	return out
}

func joinTokens(parts []string) string {
	var out string
	for i, p := range parts {
		if i > 0 {
			out += " · "
		}
		out += p
	}
	return out
}

// FormatSets renders an ordered set sequence into the compact grouped form,
// e.g. "45kg×10 (×4)" or "BW×8 · 6kg×8 (×3)". Empty input yields "".
// Input order is never changed.
func FormatSets(sets []models.Set) string {
	if len(sets) == 0 {
		return ""
	}
	tokens := make([]token, len(sets))
	for i, s := range sets {
		tokens[i] = token{text: setToken(s), matched: true}
	}
	return joinTokens(collapseRuns(tokens))
}

// FormatExercise renders an exercise with its grouped sets, or just the
// name when no sets are recorded.
func FormatExercise(ex *models.Exercise) string {
	if ex == nil {
		return ""
	}
	if len(ex.Sets) == 0 {
		return ex.Name
	}
	return fmt.Sprintf("%s — %s", ex.Name, FormatSets(ex.Sets))
}
