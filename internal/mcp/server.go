// Package mcp exposes the coach's training data to MCP clients as read-only
// tools and resources. Mutations stay on the HTTP API.
package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/gkmanager/internal/storage"
)

type contextKey int

const accountKey contextKey = iota

// AccountFromContext extracts the account injected by the transport layer.
func AccountFromContext(ctx context.Context) string {
	if account, ok := ctx.Value(accountKey).(string); ok {
		return account
	}
	return ""
}

// WithAccount returns a context carrying the given account.
func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// New creates an MCP server with all tools and resources registered. All
// queries are scoped to the account carried in the request context.
func New(ds *storage.DB, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GK Manager", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Goalkeeper training data server. Query the athlete roster, drill library, weekly session plans, training ratings, and match statistics. All data is scoped to the authenticated coach account."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetRoster, Handler: h.getRoster},
		server.ServerTool{Tool: toolListDrills, Handler: h.listDrills},
		server.ServerTool{Tool: toolGetWeekPlan, Handler: h.getWeekPlan},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolGetRatingHistory, Handler: h.getRatingHistory},
		server.ServerTool{Tool: toolGetMatchHistory, Handler: h.getMatchHistory},
		server.ServerTool{Tool: toolGetMatch, Handler: h.getMatch},
	)

	s.AddResources(
		server.ServerResource{Resource: resDrillCatalog, Handler: h.drillCatalog},
		server.ServerResource{Resource: resMatchDays, Handler: h.matchDays},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  *storage.DB
	log *slog.Logger
}

// --- Resource definitions ---

var resDrillCatalog = mcp.NewResource(
	"gkmanager://drill_catalog",
	"Drill Catalog",
	mcp.WithResourceDescription("All drill titles grouped by game moment category"),
	mcp.WithMIMEType("application/json"),
)

var resMatchDays = mcp.NewResource(
	"gkmanager://match_days",
	"Match Days",
	mcp.WithResourceDescription("All planned match days, most recent first"),
	mcp.WithMIMEType("application/json"),
)

// --- Resource handlers ---

func (h *handlers) drillCatalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog, err := h.ds.TitlesByMoment(ctx, AccountFromContext(ctx))
	if err != nil {
		h.log.Error("mcp drill_catalog", "error", err)
		return nil, err
	}
	return jsonResource(req.Params.URI, catalog)
}

func (h *handlers) matchDays(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	days, err := h.ds.MatchDays(ctx, AccountFromContext(ctx))
	if err != nil {
		h.log.Error("mcp match_days", "error", err)
		return nil, err
	}
	return jsonResource(req.Params.URI, days)
}
