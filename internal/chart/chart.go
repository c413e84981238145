// Package chart rasterizes the analytics views to PNG: per-lift e1RM
// progress with goal-projection lines, and weekly volume per muscle group.
package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/goals"
	"github.com/claude/liftlog/internal/models"
)

// palette matches the dashboard color cycle; series beyond its length wrap.
var palette = []drawing.Color{
	drawing.ColorFromHex("4FC3F7"),
	drawing.ColorFromHex("EF5350"),
	drawing.ColorFromHex("66BB6A"),
	drawing.ColorFromHex("FFA726"),
	drawing.ColorFromHex("AB47BC"),
	drawing.ColorFromHex("26C6DA"),
	drawing.ColorFromHex("FF7043"),
	drawing.ColorFromHex("9CCC65"),
	drawing.ColorFromHex("5C6BC0"),
	drawing.ColorFromHex("FFCA28"),
	drawing.ColorFromHex("8D6E63"),
	drawing.ColorFromHex("78909C"),
}

func seriesColor(i int) drawing.Color { return palette[i%len(palette)] }

// E1RMOptions configures the progress chart.
type E1RMOptions struct {
	// Lifts fixes the series order; series colors and goal-line colors
	// follow this order.
	Lifts []string
	// ShortNames relabels series for the legend.
	ShortNames map[string]string
	// GoalLines adds dashed projection segments, keyed by lift name.
	GoalLines map[string]goals.Line
	// KPI, when non-nil, is summarized in the chart title. Deltas are
	// suppressed unless the report says both windows have enough sessions.
	KPI *analytics.KPIReport

	Width  int
	Height int
}

// RenderE1RM writes the e1RM progress chart as a PNG.
func RenderE1RM(w io.Writer, series map[string]analytics.Series, opts E1RMOptions) error {
	if opts.Width == 0 {
		opts.Width = 1200
	}
	if opts.Height == 0 {
		opts.Height = 600
	}

	var chartSeries []chart.Series
	idx := 0
	for _, lift := range opts.Lifts {
		s, ok := series[lift]
		if !ok || len(s) == 0 {
			continue
		}
		color := seriesColor(idx)
		idx++

		xs, ys := splitSeries(s)
		name := lift
		if short, ok := opts.ShortNames[lift]; ok {
			name = short
		}
		ts := chart.TimeSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 3,
				DotColor:    color,
				DotWidth:    5,
			},
		}
		chartSeries = append(chartSeries, ts, chart.LastValueAnnotationSeries(ts))

		if line, ok := opts.GoalLines[lift]; ok {
			chartSeries = append(chartSeries, chart.TimeSeries{
				XValues: []time.Time{line.StartDate, line.EndDate},
				YValues: []float64{line.StartValue, line.EndValue},
				Style: chart.Style{
					StrokeColor:     color,
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5, 5},
				},
			})
		}
	}
	if len(chartSeries) == 0 {
		return fmt.Errorf("%w: no lifts with weight data to chart", models.ErrNotFound)
	}

	graph := chart.Chart{
		Title:  e1rmTitle(opts.KPI),
		Width:  opts.Width,
		Height: opts.Height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "e1RM (kg)",
		},
		Series: chartSeries,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	return graph.Render(chart.PNG, w)
}

// e1rmTitle folds the KPI snapshot into the chart title, honoring the
// delta display convention.
func e1rmTitle(kpi *analytics.KPIReport) string {
	if kpi == nil {
		return "e1RM Progress"
	}
	if kpi.ShowDelta() {
		return fmt.Sprintf("e1RM Progress — %d%% adherence · avg %.1f kg (%+.1f) · %d sets (%+d)",
			kpi.AdherencePct, kpi.AvgBestE1RM, kpi.AvgE1RMDelta, kpi.Volume, kpi.VolumeDelta)
	}
	return fmt.Sprintf("e1RM Progress — %d%% adherence · avg %.1f kg · %d sets",
		kpi.AdherencePct, kpi.AvgBestE1RM, kpi.Volume)
}

// RenderVolume writes the weekly volume chart as a PNG: one line per muscle
// group across ISO weeks.
func RenderVolume(w io.Writer, weeks []analytics.WeekVolume, width, height int) error {
	if len(weeks) == 0 {
		return fmt.Errorf("%w: no session data to chart", models.ErrNotFound)
	}
	if width == 0 {
		width = 1200
	}
	if height == 0 {
		height = 600
	}

	groupSet := make(map[string]bool)
	for _, wk := range weeks {
		for g := range wk.Groups {
			groupSet[g] = true
		}
	}
	groups := make([]string, 0, len(groupSet))
	for g := range groupSet {
		groups = append(groups, g)
	}
	sortStrings(groups)

	var chartSeries []chart.Series
	for i, g := range groups {
		var xs []time.Time
		var ys []float64
		for _, wk := range weeks {
			start, err := time.Parse(models.DateLayout, wk.WeekStart)
			if err != nil {
				continue
			}
			xs = append(xs, start)
			ys = append(ys, float64(wk.Groups[g]))
		}
		xs, ys = padSinglePoint(xs, ys)
		color := seriesColor(i)
		chartSeries = append(chartSeries, chart.TimeSeries{
			Name:    g,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2.5,
				DotColor:    color,
				DotWidth:    4,
			},
		})
	}

	graph := chart.Chart{
		Title:  "Weekly Volume (Hard Sets) by Muscle Group",
		Width:  width,
		Height: height,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Hard Sets",
		},
		Series: chartSeries,
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	return graph.Render(chart.PNG, w)
}

// splitSeries converts an analytics series to parallel X/Y slices, padding
// single points so the renderer always has a drawable segment.
func splitSeries(s analytics.Series) ([]time.Time, []float64) {
	xs := make([]time.Time, len(s))
	ys := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.Date
		ys[i] = p.Value
	}
	return padSinglePoint(xs, ys)
}

func padSinglePoint(xs []time.Time, ys []float64) ([]time.Time, []float64) {
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}
	return xs, ys
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
