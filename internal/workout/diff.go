package workout

import (
	"fmt"

	"github.com/claude/liftlog/internal/models"
)

// Markdown-flavored markup: downstream renderers turn ~~…~~ into
// strike-through and **…** into bold.
func strike(s string) string { return "~~" + s + "~~" }
func bold(s string) string   { return "**" + s + "**" }

func arrow(actual, planned float64) string {
	if actual > planned {
		return "↑"
	}
	return "↓"
}

// Compare renders one planned exercise against the logged one, annotating
// every deviation. Doing exactly as planned (or training unplanned) yields
// the same plain grouped rendering as FormatExercise — deviation markup
// only appears when something actually deviated.
//
// Implemented as two composed passes: compareSets produces a tagged token
// per set index, then collapseRuns folds adjacent identical matched tokens.
func Compare(planned, actual *models.Exercise) string {
	if planned == nil || len(planned.Sets) == 0 {
		return FormatExercise(actual)
	}

	pSets, aSets := planned.Sets, actual.Sets
	if len(aSets) == len(pSets) && allMatch(pSets, aSets) {
		return FormatExercise(actual)
	}

	tokens := compareSets(pSets, aSets)
	return fmt.Sprintf("%s — %s", actual.Name, joinTokens(collapseRuns(tokens)))
}

func allMatch(planned, actual []models.Set) bool {
	for i := range actual {
		if planned[i].WeightKg != actual[i].WeightKg || planned[i].Reps != actual[i].Reps {
			return false
		}
	}
	return true
}

// compareSets walks both sequences in parallel up to the longer length,
// emitting one token per index. Arrow direction is always relative to
// planned, computed independently for weight and reps.
func compareSets(planned, actual []models.Set) []token {
	max := len(planned)
	if len(actual) > max {
		max = len(actual)
	}

	tokens := make([]token, 0, max)
	for i := 0; i < max; i++ {
		switch {
		case i >= len(planned):
			// Extra unplanned work is not a deviation.
			tokens = append(tokens, token{text: setToken(actual[i]), matched: true})

		case i >= len(actual):
			// Skipped set: struck through, never bold.
			tokens = append(tokens, token{text: strike(setToken(planned[i]))})

		default:
			tokens = append(tokens, compareSet(planned[i], actual[i]))
		}
	}
	return tokens
}

func compareSet(p, a models.Set) token {
	pw, pr := p.WeightKg, p.Reps
	aw, ar := a.WeightKg, a.Reps

	switch {
	case pw == aw && pr == ar:
		return token{text: setToken(a), matched: true}

	case pw == aw:
		// Weight held, reps deviated: weight shown once.
		text := fmt.Sprintf("%s×%s %s",
			weightLabel(aw),
			strike(fmt.Sprintf("%d", pr)),
			bold(fmt.Sprintf("%d%s", ar, arrow(float64(ar), float64(pr)))))
		return token{text: text}

	case pr == ar:
		// Reps held, weight deviated: reps shown once.
		text := fmt.Sprintf("%s %s×%d",
			strike(weightLabel(pw)),
			bold(weightLabel(aw)+arrow(aw, pw)),
			ar)
		return token{text: text}

	default:
		text := fmt.Sprintf("%s %s×%s %s",
			strike(weightLabel(pw)),
			bold(weightLabel(aw)+arrow(aw, pw)),
			strike(fmt.Sprintf("%d", pr)),
			bold(fmt.Sprintf("%d%s", ar, arrow(float64(ar), float64(pr)))))
		return token{text: text}
	}
}
