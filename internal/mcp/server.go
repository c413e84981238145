// Package mcp exposes the training-log analytics to MCP clients over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/store"
)

// New creates an MCP server with all tools and resources registered.
func New(st *store.Store, cfg *config.Config, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Strength training log server. Query e1RM estimates, exercise progression, weekly volume, rolling KPIs, session summaries, and goals. All data comes from local session files."),
	)

	h := &handlers{store: st, cfg: cfg, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetE1RM, Handler: h.getE1RM},
		server.ServerTool{Tool: toolGetProgress, Handler: h.getProgress},
		server.ServerTool{Tool: toolGetWeeklyVolume, Handler: h.getWeeklyVolume},
		server.ServerTool{Tool: toolGetRollingKPIs, Handler: h.getRollingKPIs},
		server.ServerTool{Tool: toolGetSessionSummary, Handler: h.getSessionSummary},
		server.ServerTool{Tool: toolCompareSessions, Handler: h.compareSessions},
		server.ServerTool{Tool: toolGetCurrentGoals, Handler: h.getCurrentGoals},
		server.ServerTool{Tool: toolGetWorkoutStatus, Handler: h.getWorkoutStatus},
	)

	s.AddResources(
		server.ServerResource{Resource: resLatestSession, Handler: h.latestSession},
		server.ServerResource{Resource: resGoals, Handler: h.goalHistory},
	)

	return s
}

// ServeStdio runs the server on stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	store *store.Store
	cfg   *config.Config
	log   *slog.Logger
}

// --- Resource definitions ---

var resLatestSession = mcp.NewResource(
	"liftlog://latest_session",
	"Latest Session",
	mcp.WithResourceDescription("The most recent training session, including planned and actual exercises"),
	mcp.WithMIMEType("application/json"),
)

var resGoals = mcp.NewResource(
	"liftlog://goals",
	"Goal History",
	mcp.WithResourceDescription("All goal entries in chronological order; the last entry is current"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) latestSession(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.store.LoadSessions()
	if err != nil {
		return nil, err
	}
	var payload any
	if len(sessions) > 0 {
		payload = sessions[len(sessions)-1]
	}
	return jsonResource(req.Params.URI, payload)
}

func (h *handlers) goalHistory(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(req.Params.URI, h.store.LoadGoals())
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(data)},
	}, nil
}
