package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/goals"
	"github.com/claude/liftlog/internal/workout"
)

// --- Tool definitions ---

var toolGetE1RM = mcp.NewTool("get_e1rm",
	mcp.WithDescription("Best estimated one-rep max (Epley formula) per exercise, taken from each exercise's most recent appearance with weight data."),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Session-by-session progression for one exercise: e1RM, best set, and set count per session. Exercise names are fuzzy matched."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (fuzzy matched, e.g. 'bench' or 'Bench Press')")),
)

var toolGetWeeklyVolume = mcp.NewTool("get_weekly_volume",
	mcp.WithDescription("Hard sets per muscle group bucketed by ISO week."),
)

var toolGetRollingKPIs = mcp.NewTool("get_rolling_kpis",
	mcp.WithDescription("Rolling-window training KPIs: adherence percentage, average best e1RM across tracked lifts, set volume, and deltas against the previous window."),
)

var toolGetSessionSummary = mcp.NewTool("get_session_summary",
	mcp.WithDescription("Summary of one session: exercises, total sets, muscle groups, duration, and plan-vs-actual comparison when a plan exists."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Session date (YYYY-MM-DD)")),
)

var toolCompareSessions = mcp.NewTool("compare_sessions",
	mcp.WithDescription("Side-by-side e1RM and set-count comparison of two sessions by date."),
	mcp.WithString("date1", mcp.Required(), mcp.Description("First session date (YYYY-MM-DD)")),
	mcp.WithString("date2", mcp.Required(), mcp.Description("Second session date (YYYY-MM-DD)")),
)

var toolGetCurrentGoals = mcp.NewTool("get_current_goals",
	mcp.WithDescription("The current goal entry (the last one recorded): target e1RMs per lift and the target date."),
)

var toolGetWorkoutStatus = mcp.NewTool("get_workout_status",
	mcp.WithDescription("Live workout checklist for a session: planned exercises marked done or pending, unplanned work flagged, and the next exercise up."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Session date (YYYY-MM-DD)")),
)

// --- Tool handlers ---

func (h *handlers) getE1RM(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.store.LoadSessions()
	if err != nil {
		h.log.Error("mcp get_e1rm", "error", err)
		return mcp.NewToolResultError("loading sessions: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.BestE1RMs(sessions))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	sessions, err := h.store.LoadSessions()
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("loading sessions: " + err.Error()), nil
	}
	entries, err := analytics.Progress(sessions, exercise)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(entries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.store.LoadSessions()
	if err != nil {
		h.log.Error("mcp get_weekly_volume", "error", err)
		return mcp.NewToolResultError("loading sessions: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.WeeklyVolume(sessions))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRollingKPIs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.store.LoadSessions()
	if err != nil {
		h.log.Error("mcp get_rolling_kpis", "error", err)
		return mcp.NewToolResultError("loading sessions: " + err.Error()), nil
	}

	entry := goals.Latest(h.store.LoadGoals())
	series := analytics.LiftSeries(sessions, goals.TrackedLifts(entry))
	report := analytics.RollingKPIs(sessions, series, analytics.KPIOptions{
		WindowDays:       h.cfg.KPI.WindowDays,
		ExpectedSessions: h.cfg.KPI.ExpectedSessions,
	})

	result, err := mcp.NewToolResultJSON(report)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSessionSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}

	session, err := h.store.LoadSession(date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(analytics.Summarize(session))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) compareSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date1, err := req.RequireString("date1")
	if err != nil {
		return mcp.NewToolResultError("date1 parameter is required"), nil
	}
	date2, err := req.RequireString("date2")
	if err != nil {
		return mcp.NewToolResultError("date2 parameter is required"), nil
	}

	sessions, err := h.store.LoadSessions()
	if err != nil {
		h.log.Error("mcp compare_sessions", "error", err)
		return mcp.NewToolResultError("loading sessions: " + err.Error()), nil
	}
	cmp, err := analytics.CompareSessions(sessions, date1, date2)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(cmp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentGoals(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry := goals.Latest(h.store.LoadGoals())
	if entry == nil {
		return mcp.NewToolResultError("no goals set"), nil
	}

	result, err := mcp.NewToolResultJSON(entry)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}

	session, err := h.store.LoadSession(date)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]string{
		"date":   session.Date,
		"status": workout.RenderStatus(session),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
