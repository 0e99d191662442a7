package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gkmanager/internal/drillconfig"
	"github.com/meltforce/gkmanager/internal/models"
	"github.com/meltforce/gkmanager/internal/schedule"
	"github.com/meltforce/gkmanager/internal/storage"
)

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// --- Tool definitions ---

var toolGetRoster = mcp.NewTool("get_roster",
	mcp.WithDescription("List all goalkeepers in the roster with their biometric profile and field-test results."),
)

var toolListDrills = mcp.NewTool("list_drills",
	mcp.WithDescription("List drills in the exercise library. Returns title, moment category, training type, description, objective, materials and space per drill (images omitted)."),
	mcp.WithString("moment", mcp.Description("Filter by game moment category"), mcp.Enum("Goal Defense", "Space Defense", "Crossing", "Duels", "Distribution", "Back Pass")),
)

var toolGetWeekPlan = mcp.NewTool("get_week_plan",
	mcp.WithDescription("Get the seven-day session plan starting at the given date. Each day carries its session type, focus and configured drills, or nothing if unplanned."),
	mcp.WithString("start", mcp.Required(), mcp.Description("Week start date (YYYY-MM-DD)")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get one day's session with its decoded drill configuration and post-session report."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Session date (YYYY-MM-DD)")),
)

var toolGetRatingHistory = mcp.NewTool("get_rating_history",
	mcp.WithDescription("Get one athlete's training rating history in chronological order, with the mean rating."),
	mcp.WithString("athlete_id", mcp.Required(), mcp.Description("Goalkeeper ID")),
)

var toolGetMatchHistory = mcp.NewTool("get_match_history",
	mcp.WithDescription("List match summaries (date, opponent, result, rating, goals conceded, saves), most recent first."),
)

var toolGetMatch = mcp.NewTool("get_match",
	mcp.WithDescription("Get the full statistics sheet for one match day, including every action counter."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Match date (YYYY-MM-DD)")),
)

// --- Tool handlers ---

func (h *handlers) getRoster(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roster, err := h.ds.ListGoalkeepers(ctx, AccountFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_roster", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(roster)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listDrills(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	drills, err := h.ds.ListDrills(ctx, AccountFromContext(ctx))
	if err != nil {
		h.log.Error("mcp list_drills", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	moment := models.Moment(req.GetString("moment", ""))
	out := make([]models.Drill, 0, len(drills))
	for _, d := range drills {
		if moment != "" && d.Moment != moment {
			continue
		}
		d.Image = nil
		out = append(out, d)
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeekPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startStr, err := req.RequireString("start")
	if err != nil {
		return mcp.NewToolResultError("start parameter is required"), nil
	}
	start, err := time.Parse(schedule.DateLayout, startStr)
	if err != nil {
		return mcp.NewToolResultError("start must be YYYY-MM-DD"), nil
	}

	week, err := h.ds.WeekPlan(ctx, AccountFromContext(ctx), start)
	if err != nil {
		h.log.Error("mcp get_week_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(week)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}

	sess, err := h.ds.GetSessionByDate(ctx, AccountFromContext(ctx), date)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("no session planned for " + date), nil
	}
	if err != nil {
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	config := drillconfig.Decode(sess.DrillsList)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"session": sess,
		"config":  config,
		"summary": drillconfig.Summary(config),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRatingHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	athleteID, err := req.RequireString("athlete_id")
	if err != nil {
		return mcp.NewToolResultError("athlete_id parameter is required"), nil
	}

	account := AccountFromContext(ctx)
	history, err := h.ds.RatingHistory(ctx, account, athleteID)
	if err != nil {
		h.log.Error("mcp get_rating_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	mean, count, err := h.ds.RatingMean(ctx, account, athleteID)
	if err != nil {
		h.log.Error("mcp get_rating_history mean", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"history": history,
		"mean":    mean,
		"count":   count,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMatchHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := h.ds.MatchSummaries(ctx, AccountFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_match_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	result, err := mcp.NewToolResultJSON(summaries)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMatch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}

	rec, err := h.ds.GetMatch(ctx, AccountFromContext(ctx), date)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("no match recorded for " + date), nil
	}
	if err != nil {
		h.log.Error("mcp get_match", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rec)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
