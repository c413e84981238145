package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/goals"
	"github.com/claude/liftlog/internal/models"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List and record training goals",
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "All goal entries in chronological order",
	RunE:  runGoalsList,
}

var goalsCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "The current (latest) goal entry",
	RunE:  runGoalsCurrent,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a new goal entry",
	RunE:  runGoalsAdd,
}

var (
	goalsTargetDate string
	goalsNote       string
	goalsSet        []string
)

func init() {
	goalsAddCmd.Flags().StringVar(&goalsTargetDate, "target-date", "", "Target date (YYYY-MM-DD)")
	goalsAddCmd.Flags().StringVar(&goalsNote, "note", "", "Free-form note")
	goalsAddCmd.Flags().StringArrayVar(&goalsSet, "set", nil, `Goal as "Lift=TARGET" or "Lift=TARGET:Short" (repeatable)`)
	goalsCmd.AddCommand(goalsListCmd, goalsCurrentCmd, goalsAddCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	entries := st.LoadGoals()

	return emit(entries, func() {
		if len(entries) == 0 {
			fmt.Println("No goals set.")
			return
		}
		for _, e := range entries {
			printGoalEntry(e)
		}
	})
}

func runGoalsCurrent(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	entry := goals.Latest(st.LoadGoals())
	if entry == nil {
		return fmt.Errorf("%w: no goals set", models.ErrNotFound)
	}

	return emit(entry, func() {
		printGoalEntry(*entry)
	})
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	if len(goalsSet) == 0 {
		return fmt.Errorf("%w: at least one --set is required", models.ErrValidation)
	}

	var names []string
	values := make(map[string]models.GoalValue)
	for _, spec := range goalsSet {
		name, val, err := parseGoalSpec(spec)
		if err != nil {
			return err
		}
		if _, dup := values[name]; !dup {
			names = append(names, name)
		}
		values[name] = val
	}

	st, _, err := openStore()
	if err != nil {
		return err
	}
	total, err := st.AppendGoal(models.GoalEntry{
		TargetDate: goalsTargetDate,
		Note:       goalsNote,
		Goals:      models.NewGoalMap(names, values),
	})
	if err != nil {
		return err
	}
	fmt.Printf("recorded goal entry (%d total) in %s\n", total, st.GoalsPath())
	return nil
}

// parseGoalSpec parses "Lift=TARGET" or "Lift=TARGET:Short".
func parseGoalSpec(spec string) (string, models.GoalValue, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok || name == "" {
		return "", models.GoalValue{}, fmt.Errorf("%w: invalid --set %q (want \"Lift=TARGET\")", models.ErrValidation, spec)
	}
	targetStr, short, _ := strings.Cut(rest, ":")
	target, err := strconv.ParseFloat(targetStr, 64)
	if err != nil {
		return "", models.GoalValue{}, fmt.Errorf("%w: invalid target in --set %q", models.ErrValidation, spec)
	}
	return name, models.GoalValue{Target: target, Short: short}, nil
}

func printGoalEntry(e models.GoalEntry) {
	fmt.Printf("%s → %s", e.DateSet, e.TargetDate)
	if e.Note != "" {
		fmt.Printf("  (%s)", e.Note)
	}
	fmt.Println()
	for _, name := range e.Goals.Names() {
		v, _ := e.Goals.Get(name)
		fmt.Printf("  %-32s %g kg\n", name, v.Target)
	}
}
