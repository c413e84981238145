package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/store"
)

func testHandlers(t *testing.T, withGoals bool) *handlers {
	t.Helper()
	dir := t.TempDir()
	historyDir := filepath.Join(dir, "history")
	require.NoError(t, os.MkdirAll(historyDir, 0o755))

	session := `{
		"date": "2026-02-09",
		"day": "A",
		"planned": [{"name": "Squat", "sets": [{"weight_kg": 105, "reps": 5}]}],
		"actual": [{"name": "Squat", "muscle_group": "legs", "sets": [{"weight_kg": 105, "reps": 5}]}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(historyDir, "2026-02-09.json"), []byte(session), 0o644))

	goalsPath := filepath.Join(dir, "goals.json")
	if withGoals {
		goalsJSON := `[{"date_set": "2026-01-01", "target_date": "2026-06-01", "goals": {"Squat": 140}}]`
		require.NoError(t, os.WriteFile(goalsPath, []byte(goalsJSON), 0o644))
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &handlers{
		store: store.New(historyDir, goalsPath, log),
		cfg:   config.Default(),
		log:   log,
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok, "content is not text")
	return tc.Text
}

func TestGetE1RM(t *testing.T) {
	h := testHandlers(t, true)
	res, err := h.getE1RM(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var bests map[string]analytics.LiftBest
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &bests))
	require.Contains(t, bests, "Squat")
	assert.InDelta(t, 122.5, bests["Squat"].E1RM, 0.01)
}

func TestGetProgress(t *testing.T) {
	h := testHandlers(t, true)

	res, err := h.getProgress(context.Background(), callRequest(map[string]any{"exercise": "squat"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var entries []analytics.ProgressEntry
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &entries))
	assert.Len(t, entries, 1)

	res, err = h.getProgress(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError, "missing exercise argument should be a tool error")

	res, err = h.getProgress(context.Background(), callRequest(map[string]any{"exercise": "deadlift"}))
	require.NoError(t, err)
	assert.True(t, res.IsError, "unknown exercise should be a tool error")
}

func TestGetRollingKPIs(t *testing.T) {
	h := testHandlers(t, true)
	res, err := h.getRollingKPIs(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var report analytics.KPIReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.Equal(t, 1, report.CurrentSessions)
}

func TestGetSessionSummary(t *testing.T) {
	h := testHandlers(t, true)

	res, err := h.getSessionSummary(context.Background(), callRequest(map[string]any{"date": "2026-02-09"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var sum analytics.Summary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &sum))
	assert.Equal(t, 1, sum.TotalSets)

	res, err = h.getSessionSummary(context.Background(), callRequest(map[string]any{"date": "2026-03-01"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetCurrentGoals(t *testing.T) {
	h := testHandlers(t, true)
	res, err := h.getCurrentGoals(context.Background(), callRequest(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "2026-06-01")

	empty := testHandlers(t, false)
	res, err = empty.getCurrentGoals(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError, "no goals should be a tool error")
}

func TestGetWorkoutStatus(t *testing.T) {
	h := testHandlers(t, true)
	res, err := h.getWorkoutStatus(context.Background(), callRequest(map[string]any{"date": "2026-02-09"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "✅ 1. Squat")
}

func TestLatestSessionResource(t *testing.T) {
	h := testHandlers(t, true)
	var req mcp.ReadResourceRequest
	req.Params.URI = "liftlog://latest_session"

	contents, err := h.latestSession(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Contains(t, text.Text, "2026-02-09")
}
