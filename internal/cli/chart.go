package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/chart"
	"github.com/claude/liftlog/internal/goals"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render analytics charts to PNG",
}

var chartE1RMCmd = &cobra.Command{
	Use:   "e1rm",
	Short: "e1RM progress per tracked lift, with goal lines",
	RunE:  runChartE1RM,
}

var chartVolumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Weekly hard sets per muscle group",
	RunE:  runChartVolume,
}

var chartOut string

func init() {
	chartCmd.PersistentFlags().StringVar(&chartOut, "out", "", "Output file (default <chart>.png)")
	chartCmd.AddCommand(chartE1RMCmd, chartVolumeCmd)
	rootCmd.AddCommand(chartCmd)
}

func runChartE1RM(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	sessions, err := st.LoadSessions()
	if err != nil {
		return err
	}

	entry := goals.Latest(st.LoadGoals())
	lifts := cfg.Chart.Lifts
	if len(lifts) == 0 {
		lifts = goals.TrackedLifts(entry)
	}
	series := analytics.LiftSeries(sessions, lifts)
	kpi := analytics.RollingKPIs(sessions, series, analytics.KPIOptions{
		WindowDays:       cfg.KPI.WindowDays,
		ExpectedSessions: cfg.KPI.ExpectedSessions,
	})

	out := chartOut
	if out == "" {
		out = "e1rm.png"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	err = chart.RenderE1RM(f, series, chart.E1RMOptions{
		Lifts:      lifts,
		ShortNames: goals.ShortNames(cfg.ShortNames, entry),
		GoalLines:  goals.Lines(entry, series),
		KPI:        &kpi,
	})
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func runChartVolume(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	sessions, err := st.LoadSessions()
	if err != nil {
		return err
	}

	out := chartOut
	if out == "" {
		out = "volume.png"
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	defer f.Close()

	if err := chart.RenderVolume(f, analytics.WeeklyVolume(sessions), 0, 0); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}
