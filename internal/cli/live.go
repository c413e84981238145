package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/workout"
)

var logCmd = &cobra.Command{
	Use:   "log [exercise]",
	Short: "Log an exercise into today's session",
	Long:  `Logs an exercise by name with --set/--reps/--weight flags, or from a JSON payload file ({"name", "sets"|"reps"/"weight_kg"/"num_sets", "muscle_group"}) via --file.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLog,
}

var doneCmd = &cobra.Command{
	Use:   "done [exercise]",
	Short: "Mark a planned exercise done as prescribed",
	Long:  "Copies a planned exercise into the actual log, warmup sets demoted to working sets. Without an argument, marks the first pending exercise.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDone,
}

var removeCmd = &cobra.Command{
	Use:   "remove <exercise>",
	Short: "Remove a logged exercise from the session",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var initCmd = &cobra.Command{
	Use:   "init <day>",
	Short: "Start a session from a program day",
	Long:  "Creates (or re-plans) the dated session with the planned exercises of the given program day label.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

var statusCmd = &cobra.Command{
	Use:   "status [date]",
	Short: "Live checklist: planned vs done, next exercise up",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

var (
	liveDate       string
	startProgram   string
	logFile        string
	logSets        []string
	logReps        int
	logWeight      float64
	logNumSets     int
	logMuscleGroup string
)

func init() {
	for _, c := range []*cobra.Command{initCmd, logCmd, doneCmd, removeCmd, statusCmd} {
		c.Flags().StringVar(&liveDate, "date", "", "Session date (default today)")
	}
	initCmd.Flags().StringVar(&startProgram, "program", "program.json", "Program file")
	logCmd.Flags().StringVar(&logFile, "file", "", "JSON file with the exercise payload (overrides the other flags)")
	logCmd.Flags().StringArrayVar(&logSets, "set", nil, `Set as "WEIGHTxREPS" (e.g. "100x5", "x12" for bodyweight; repeatable)`)
	logCmd.Flags().IntVar(&logReps, "reps", 0, "Reps per set (shorthand form)")
	logCmd.Flags().Float64Var(&logWeight, "weight", 0, "Weight in kg (shorthand form)")
	logCmd.Flags().IntVar(&logNumSets, "num-sets", 0, "Number of identical sets (shorthand form, default 1)")
	logCmd.Flags().StringVar(&logMuscleGroup, "muscle-group", "", "Muscle group (default from plan)")
	rootCmd.AddCommand(initCmd, logCmd, doneCmd, removeCmd, statusCmd)
}

func sessionDate() string {
	if liveDate != "" {
		return liveDate
	}
	return time.Now().Format(models.DateLayout)
}

// loadOrCreateSession opens the dated session, starting a fresh one when the
// file does not exist yet. Only mutating commands create.
func loadOrCreateSession(st *store.Store, date string) (*models.Session, error) {
	s, err := st.LoadSession(date)
	if err == nil {
		return s, nil
	}
	if errors.Is(err, models.ErrNotFound) {
		return &models.Session{Date: date, Actual: []models.Exercise{}}, nil
	}
	return nil, err
}

func runInit(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	program, err := store.LoadProgram(startProgram)
	if err != nil {
		return err
	}
	day, ok := program.Days[args[0]]
	if !ok {
		return fmt.Errorf("%w: day %q not in program %s", models.ErrNotFound, args[0], startProgram)
	}

	date := sessionDate()
	s, err := loadOrCreateSession(st, date)
	if err != nil {
		return err
	}
	s.Day = args[0]
	s.Planned = day.Exercises

	path, err := st.SaveSession(s)
	if err != nil {
		return err
	}
	fmt.Printf("started day %s → %s\n", args[0], path)
	fmt.Println(workout.RenderStatus(s))
	return nil
}

func runLog(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	date := sessionDate()
	s, err := loadOrCreateSession(st, date)
	if err != nil {
		return err
	}

	var in workout.LogInput
	if logFile != "" {
		data, err := os.ReadFile(logFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", logFile, err)
		}
		if err := json.Unmarshal(data, &in); err != nil {
			return fmt.Errorf("%w: %s: %v", models.ErrMalformed, logFile, err)
		}
	} else {
		if len(args) == 0 {
			return fmt.Errorf("%w: an exercise name or --file is required", models.ErrValidation)
		}
		in = workout.LogInput{
			Name:        args[0],
			MuscleGroup: logMuscleGroup,
			Reps:        logReps,
			WeightKg:    logWeight,
			NumSets:     logNumSets,
		}
		for _, spec := range logSets {
			set, err := parseSetSpec(spec)
			if err != nil {
				return err
			}
			in.Sets = append(in.Sets, set)
		}
	}

	if err := workout.LogExercise(s, in, time.Now()); err != nil {
		return err
	}
	path, err := st.SaveSession(s)
	if err != nil {
		return err
	}
	fmt.Printf("logged %s → %s\n", in.Name, path)
	fmt.Println(workout.RenderStatus(s))
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	s, err := st.LoadSession(sessionDate())
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}
	done, err := workout.MarkDone(s, name, time.Now())
	if err != nil {
		return err
	}
	if _, err := st.SaveSession(s); err != nil {
		return err
	}
	fmt.Printf("done: %s\n", done)
	fmt.Println(workout.RenderStatus(s))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	s, err := st.LoadSession(sessionDate())
	if err != nil {
		return err
	}

	if err := workout.RemoveExercise(s, args[0]); err != nil {
		return err
	}
	if _, err := st.SaveSession(s); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", args[0])
	fmt.Println(workout.RenderStatus(s))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	date := sessionDate()
	if len(args) == 1 {
		date = args[0]
	}
	s, err := st.LoadSession(date)
	if err != nil {
		return err
	}
	fmt.Println(workout.RenderStatus(s))
	return nil
}

// parseSetSpec parses "WEIGHTxREPS"; a missing weight means bodyweight.
func parseSetSpec(spec string) (models.Set, error) {
	weightStr, repsStr, ok := strings.Cut(strings.ToLower(spec), "x")
	if !ok {
		return models.Set{}, fmt.Errorf("%w: invalid --set %q (want \"WEIGHTxREPS\")", models.ErrValidation, spec)
	}
	var set models.Set
	if weightStr != "" {
		w, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return models.Set{}, fmt.Errorf("%w: invalid weight in --set %q", models.ErrValidation, spec)
		}
		set.WeightKg = w
	}
	reps, err := strconv.Atoi(repsStr)
	if err != nil || reps <= 0 {
		return models.Set{}, fmt.Errorf("%w: invalid reps in --set %q", models.ErrValidation, spec)
	}
	set.Reps = reps
	return set, nil
}
