// Package analytics derives read-only views from loaded session records:
// one-rep-max estimates, weekly volume, progress series, rolling KPIs, and
// session summaries/comparisons. Nothing in here mutates its inputs.
package analytics

import (
	"math"

	"github.com/claude/liftlog/internal/models"
)

// Estimate returns the estimated one-rep max for a single set using the
// Epley formula. A single rep is the lift itself; zero or negative weight
// or reps estimate nothing.
func Estimate(weightKg float64, reps int) float64 {
	if weightKg <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weightKg
	}
	return weightKg * (1 + float64(reps)/30)
}

// BestEstimate returns the maximum single-set estimate across sets.
// Bodyweight-only exercises (and empty input) yield 0.
func BestEstimate(sets []models.Set) float64 {
	var best float64
	for _, s := range sets {
		if e := Estimate(s.WeightKg, s.Reps); e > best {
			best = e
		}
	}
	return best
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
