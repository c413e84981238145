package workout

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/match"
	"github.com/claude/liftlog/internal/models"
)

// ClockLayout formats the wall-clock timestamps stamped onto sessions.
const ClockLayout = "15:04"

// LogInput is a logged exercise, either with explicit sets or in the
// shorthand form {name, reps, weight_kg, num_sets} which expands into
// num_sets identical sets.
type LogInput struct {
	Name        string       `json:"name"`
	MuscleGroup string       `json:"muscle_group,omitempty"`
	Sets        []models.Set `json:"sets,omitempty"`
	Reps        int          `json:"reps,omitempty"`
	WeightKg    float64      `json:"weight_kg,omitempty"`
	NumSets     int          `json:"num_sets,omitempty"`
}

// expand returns the input's sets, materializing the shorthand form.
func (in *LogInput) expand() []models.Set {
	if len(in.Sets) > 0 || in.Reps == 0 {
		return in.Sets
	}
	n := in.NumSets
	if n <= 0 {
		n = 1
	}
	sets := make([]models.Set, n)
	for i := range sets {
		sets[i] = models.Set{Reps: in.Reps, WeightKg: in.WeightKg}
	}
	return sets
}

// LogExercise merges a logged exercise into the session's actual sequence,
// replacing an existing entry with the same name (case-insensitive) or
// appending a new one. A missing muscle group is copied from the matching
// planned entry. The session's start time is set on the first log of the
// day and the end time refreshed on every log.
func LogExercise(s *models.Session, in LogInput, now time.Time) error {
	if in.Name == "" {
		return fmt.Errorf("%w: exercise name is required", models.ErrValidation)
	}

	ex := models.Exercise{
		Name:        in.Name,
		MuscleGroup: in.MuscleGroup,
		Sets:        in.expand(),
	}
	if ex.MuscleGroup == "" {
		if p := findPlanned(s.Planned, ex.Name); p != nil {
			ex.MuscleGroup = p.MuscleGroup
		}
	}

	upsertActual(s, ex)
	stampTimes(s, now)
	return nil
}

// MarkDone copies a planned exercise verbatim into actual, stripping the
// warmup flag from its sets. With an empty name it picks the first planned
// exercise that has no actual counterpart; otherwise the named one.
// Re-running for an exercise already in actual overwrites it rather than
// duplicating. Returns the name of the exercise marked done.
func MarkDone(s *models.Session, name string, now time.Time) (string, error) {
	var target *models.Exercise
	if name != "" {
		target = findPlanned(s.Planned, name)
		if target == nil {
			return "", fmt.Errorf("%w: exercise not found in plan: %s", models.ErrNotFound, name)
		}
	} else {
		target = nextPending(s)
		if target == nil {
			return "", fmt.Errorf("%w: all exercises already done", models.ErrNotFound)
		}
	}

	done := models.Exercise{
		Name:        target.Name,
		MuscleGroup: target.MuscleGroup,
		Sets:        make([]models.Set, len(target.Sets)),
	}
	for i, set := range target.Sets {
		set.Warmup = false
		done.Sets[i] = set
	}

	upsertActual(s, done)
	stampTimes(s, now)
	return done.Name, nil
}

// RemoveExercise drops a fuzzy-matched exercise from the actual sequence.
func RemoveExercise(s *models.Session, name string) error {
	idx := bestIndex(s.Actual, name)
	if idx < 0 {
		return fmt.Errorf("%w: exercise not found: %s", models.ErrNotFound, name)
	}
	s.Actual = append(s.Actual[:idx], s.Actual[idx+1:]...)
	return nil
}

// RenderStatus produces the live checklist: every planned exercise marked
// done (with its diff against actual) or pending, unplanned work flagged as
// new, and a trailer naming the next pending exercise or declaring the
// session complete.
func RenderStatus(s *models.Session) string {
	day, date := s.Day, s.Date
	if day == "" {
		day = "?"
	}
	if date == "" {
		date = "?"
	}

	lines := []string{fmt.Sprintf("🏋️ Day %s — %s", day, date), ""}

	idx := 1
	for i := range s.Planned {
		p := &s.Planned[i]
		if a := findActual(s.Actual, p.Name); a != nil {
			lines = append(lines, fmt.Sprintf("✅ %d. %s", idx, Compare(p, a)))
		} else {
			lines = append(lines, fmt.Sprintf("⬜ %d. %s", idx, FormatExercise(p)))
		}
		idx++
	}

	for i := range s.Actual {
		a := &s.Actual[i]
		if findPlanned(s.Planned, a.Name) == nil {
			lines = append(lines, fmt.Sprintf("🆕 %d. %s", idx, FormatExercise(a)))
			idx++
		}
	}

	lines = append(lines, "")
	if next := nextPending(s); next != nil {
		lines = append(lines, fmt.Sprintf("Next up — %s! 💪", next.Name))
	} else {
		lines = append(lines, "All exercises done! 🎉")
	}
	return strings.Join(lines, "\n")
}

// nextPending returns the first planned exercise with no actual counterpart.
func nextPending(s *models.Session) *models.Exercise {
	for i := range s.Planned {
		if findActual(s.Actual, s.Planned[i].Name) == nil {
			return &s.Planned[i]
		}
	}
	return nil
}

// upsertActual replaces an entry with the same name (case-insensitive
// exact) or appends. Replacement is exact-name only — fuzzy matching here
// would merge deliberately distinct variants.
func upsertActual(s *models.Session, ex models.Exercise) {
	for i := range s.Actual {
		if strings.EqualFold(s.Actual[i].Name, ex.Name) {
			s.Actual[i] = ex
			return
		}
	}
	s.Actual = append(s.Actual, ex)
}

func stampTimes(s *models.Session, now time.Time) {
	hhmm := now.Format(ClockLayout)
	if s.StartTime == "" {
		s.StartTime = hhmm
	}
	s.EndTime = hhmm
}

func findPlanned(planned []models.Exercise, name string) *models.Exercise {
	if idx := bestIndex(planned, name); idx >= 0 {
		return &planned[idx]
	}
	return nil
}

func findActual(actual []models.Exercise, name string) *models.Exercise {
	if idx := bestIndex(actual, name); idx >= 0 {
		return &actual[idx]
	}
	return nil
}

func bestIndex(exercises []models.Exercise, name string) int {
	names := make([]string, len(exercises))
	for i := range exercises {
		names[i] = exercises[i].Name
	}
	return match.BestIndex(name, names)
}
