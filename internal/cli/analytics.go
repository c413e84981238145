package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/goals"
)

var e1rmCmd = &cobra.Command{
	Use:   "e1rm",
	Short: "Best estimated 1RM per exercise (Epley)",
	RunE:  runE1RM,
}

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Hard sets per muscle group by ISO week",
	RunE:  runVolume,
}

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Rolling-window KPIs: adherence, avg e1RM, volume",
	RunE:  runKPIs,
}

var progressCmd = &cobra.Command{
	Use:   "progress <exercise>",
	Short: "Session-by-session progression for one exercise",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgress,
}

var summaryCmd = &cobra.Command{
	Use:   "summary [date]",
	Short: "Summarize one session (defaults to the latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

var compareCmd = &cobra.Command{
	Use:   "compare <date1> <date2>",
	Short: "Compare e1RM and set counts between two sessions",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(e1rmCmd, volumeCmd, kpisCmd, progressCmd, summaryCmd, compareCmd)
}

func runE1RM(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	sessions, err := st.LoadSessions()
	if err != nil {
		return err
	}
	bests := analytics.BestE1RMs(sessions)

	return emit(bests, func() {
		names := make([]string, 0, len(bests))
		for name := range bests {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b := bests[name]
			fmt.Printf("%-32s %7.2f kg  (%s)\n", name, b.E1RM, b.Date)
		}
	})
}

func runVolume(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	sessions, err := st.LoadSessions()
	if err != nil {
		return err
	}
	weeks := analytics.WeeklyVolume(sessions)

	return emit(weeks, func() {
		for _, w := range weeks {
			fmt.Printf("%s (week of %s)\n", w.Week, w.WeekStart)
			groups := make([]string, 0, len(w.Groups))
			for g := range w.Groups {
				groups = append(groups, g)
			}
			sort.Strings(groups)
			for _, g := range groups {
				fmt.Printf("  %-16s %d sets\n", g, w.Groups[g])
			}
		}
	})
}

func runKPIs(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	sessions, err := st.LoadSessions()
	if err != nil {
		return err
	}
	entry := goals.Latest(st.LoadGoals())
	series := analytics.LiftSeries(sessions, goals.TrackedLifts(entry))
	report := analytics.RollingKPIs(sessions, series, analytics.KPIOptions{
		WindowDays:       cfg.KPI.WindowDays,
		ExpectedSessions: cfg.KPI.ExpectedSessions,
	})

	return emit(report, func() {
		fmt.Printf("Adherence:   %d%% (%d sessions in window)\n", report.AdherencePct, report.CurrentSessions)
		if report.ShowDelta() {
			fmt.Printf("Avg e1RM:    %.1f kg (%+.1f vs previous window)\n", report.AvgBestE1RM, report.AvgE1RMDelta)
			fmt.Printf("Volume:      %d sets (%+d vs previous window)\n", report.Volume, report.VolumeDelta)
		} else {
			fmt.Printf("Avg e1RM:    %.1f kg\n", report.AvgBestE1RM)
			fmt.Printf("Volume:      %d sets\n", report.Volume)
		}
	})
}

func runProgress(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	sessions, err := st.LoadSessions()
	if err != nil {
		return err
	}
	entries, err := analytics.Progress(sessions, args[0])
	if err != nil {
		return err
	}

	return emit(entries, func() {
		for _, e := range entries {
			fmt.Printf("%s  %-32s e1RM %7.2f kg  best %gkg×%d  (%d sets)\n",
				e.Date, e.Exercise, e.E1RM, e.BestWeightKg, e.BestReps, e.NumSets)
		}
	})
}

func runSummary(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}

	var sum analytics.Summary
	if len(args) == 1 {
		s, err := st.LoadSession(args[0])
		if err != nil {
			return err
		}
		sum = analytics.Summarize(s)
	} else {
		sessions, err := st.LoadSessions()
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			return fmt.Errorf("no sessions found in %s", st.HistoryDir())
		}
		sum = analytics.Summarize(&sessions[len(sessions)-1])
	}

	return emit(sum, func() {
		fmt.Printf("Session %s", sum.Date)
		if sum.Day != "" {
			fmt.Printf(" (Day %s)", sum.Day)
		}
		fmt.Println()
		if sum.StartedAt != "" {
			fmt.Printf("Time:        %s–%s (%d min)\n", sum.StartedAt, sum.EndedAt, sum.ComputedDurationMin)
		} else if sum.DurationMin > 0 {
			fmt.Printf("Duration:    %d min\n", sum.DurationMin)
		}
		fmt.Printf("Exercises:   %d  (%d sets total)\n", len(sum.Exercises), sum.TotalSets)
		fmt.Printf("Muscle:      %v\n", sum.MuscleGroups)
		fmt.Printf("Adherence:   %s\n", sum.PlanAdherence)
		if sum.Notes != "" {
			fmt.Printf("Notes:       %s\n", sum.Notes)
		}
		for _, row := range sum.PlanComparison {
			mark := "✗"
			if row.Completed {
				mark = "✓"
			}
			fmt.Printf("  %s %-28s planned: %-32s actual: %s\n", mark, row.Name, row.Planned, row.Actual)
		}
	})
}

func runCompare(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	sessions, err := st.LoadSessions()
	if err != nil {
		return err
	}
	cmp, err := analytics.CompareSessions(sessions, args[0], args[1])
	if err != nil {
		return err
	}

	return emit(cmp, func() {
		fmt.Printf("%s vs %s\n", cmp.Date1, cmp.Date2)
		for _, row := range cmp.Exercises {
			fmt.Printf("  %-32s %7.2f → %7.2f  (%+.2f)  sets %d → %d\n",
				row.Name, row.E1RM1, row.E1RM2, row.Delta, row.Sets1, row.Sets2)
		}
	})
}
