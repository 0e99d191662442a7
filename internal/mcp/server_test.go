package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/gkmanager/internal/models"
	"github.com/meltforce/gkmanager/internal/storage"
)

// TestAccountFromContextDefault verifies the empty account when no value is
// set in the context.
func TestAccountFromContextDefault(t *testing.T) {
	if got := AccountFromContext(context.Background()); got != "" {
		t.Errorf("AccountFromContext(empty) = %q, want empty", got)
	}
}

// TestAccountFromContextSet verifies the account is extracted after being set
// by WithAccount.
func TestAccountFromContextSet(t *testing.T) {
	ctx := WithAccount(context.Background(), "coach")
	if got := AccountFromContext(ctx); got != "coach" {
		t.Errorf("AccountFromContext = %q, want %q", got, "coach")
	}
}

func newTestHandlers(t *testing.T) *handlers {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, "sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.RunMigrations("sqlite://"+path, "../../migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	return &handlers{ds: db, log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func callToolRequest(args map[string]any) mcpgo.CallToolRequest {
	var req mcpgo.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcpgo.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcpgo.TextContent)
	if !ok {
		t.Fatalf("content type %T, want TextContent", res.Content[0])
	}
	return text.Text
}

// TestListDrillsOmitsImages verifies the drill listing strips image blobs and
// honors the moment filter.
func TestListDrillsOmitsImages(t *testing.T) {
	h := newTestHandlers(t)
	ctx := WithAccount(context.Background(), "coach")

	for _, d := range []models.Drill{
		{Title: "Low dives", Moment: models.MomentGoalDefense, TrainingType: models.TypeTechnical, Image: []byte{1, 2, 3}},
		{Title: "Claiming crosses", Moment: models.MomentCrossing, TrainingType: models.TypeTechnicalTactical},
	} {
		if _, err := h.ds.CreateDrill(ctx, "coach", d); err != nil {
			t.Fatalf("create drill: %v", err)
		}
	}

	res, err := h.listDrills(ctx, callToolRequest(map[string]any{"moment": "Goal Defense"}))
	if err != nil {
		t.Fatalf("listDrills: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var drills []models.Drill
	if err := json.Unmarshal([]byte(resultText(t, res)), &drills); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(drills) != 1 {
		t.Fatalf("drills = %d, want 1", len(drills))
	}
	if drills[0].Title != "Low dives" {
		t.Errorf("title = %q", drills[0].Title)
	}
	if len(drills[0].Image) != 0 {
		t.Error("image blob leaked into tool result")
	}
}

// TestGetWeekPlanValidatesStart verifies a malformed start date produces a
// tool error rather than a transport error.
func TestGetWeekPlanValidatesStart(t *testing.T) {
	h := newTestHandlers(t)
	ctx := WithAccount(context.Background(), "coach")

	res, err := h.getWeekPlan(ctx, callToolRequest(map[string]any{"start": "next monday"}))
	if err != nil {
		t.Fatalf("getWeekPlan: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for malformed start date")
	}
}

// TestGetSessionUnplanned verifies querying an unplanned day reports it as a
// tool error.
func TestGetSessionUnplanned(t *testing.T) {
	h := newTestHandlers(t)
	ctx := WithAccount(context.Background(), "coach")

	res, err := h.getSession(ctx, callToolRequest(map[string]any{"date": "2024-05-06"}))
	if err != nil {
		t.Fatalf("getSession: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for unplanned day")
	}
}

// TestGetSessionDecodesConfig verifies a planned day round-trips with its
// decoded drill configuration.
func TestGetSessionDecodesConfig(t *testing.T) {
	h := newTestHandlers(t)
	ctx := WithAccount(context.Background(), "coach")

	err := h.ds.UpsertSession(ctx, "coach", "2024-05-06", models.SessionTraining, "Shot stopping",
		`[{"title":"Low dives","sets":"3","reps":"8","time":""}]`)
	if err != nil {
		t.Fatalf("upsert session: %v", err)
	}

	res, err := h.getSession(ctx, callToolRequest(map[string]any{"date": "2024-05-06"}))
	if err != nil {
		t.Fatalf("getSession: %v", err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var got struct {
		Config []struct {
			Title string `json:"title"`
			Sets  string `json:"sets"`
		} `json:"config"`
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Config) != 1 || got.Config[0].Title != "Low dives" || got.Config[0].Sets != "3" {
		t.Errorf("config = %+v", got.Config)
	}
	if got.Summary == "" {
		t.Error("summary missing")
	}
}
