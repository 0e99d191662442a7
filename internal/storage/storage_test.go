package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/meltforce/gkmanager/internal/models"
)

// newTestDB opens a migrated sqlite store in a temp directory.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	if err := RunMigrations("sqlite://"+path, "../../migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	db, err := Open(context.Background(), "sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func countRows(t *testing.T, db *DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.SQL.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

// TestUpsertSessionIdempotent verifies saving twice for the same date leaves
// exactly one row holding the final payload.
func TestUpsertSessionIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpsertSession(ctx, "coach", "2024-01-01", models.SessionTraining, "Footwork", `[]`); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := db.UpsertSession(ctx, "coach", "2024-01-01", models.SessionRest, "Recovery", `[]`); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if n := countRows(t, db, `SELECT COUNT(*) FROM sessions WHERE account=$1 AND start_date=$2`, "coach", "2024-01-01"); n != 1 {
		t.Fatalf("session rows = %d, want 1", n)
	}

	sess, err := db.GetSessionByDate(ctx, "coach", "2024-01-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if sess.Type != models.SessionRest || sess.Title != "Recovery" {
		t.Errorf("session = %s %q, want Rest Recovery", sess.Type, sess.Title)
	}
}

// TestUpsertSessionKeepsReport verifies re-saving a day's planning does not
// wipe a previously written session report.
func TestUpsertSessionKeepsReport(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpsertSession(ctx, "coach", "2024-01-02", models.SessionTraining, "Blocks", `[]`); err != nil {
		t.Fatal(err)
	}
	if err := db.SetSessionReport(ctx, "coach", "2024-01-02", "good intensity"); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertSession(ctx, "coach", "2024-01-02", models.SessionTraining, "Blocks v2", `[]`); err != nil {
		t.Fatal(err)
	}

	sess, err := db.GetSessionByDate(ctx, "coach", "2024-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Report != "good intensity" {
		t.Errorf("report = %q, want preserved", sess.Report)
	}
}

// TestSessionsScopedByAccount verifies two accounts can hold sessions on the
// same date independently.
func TestSessionsScopedByAccount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpsertSession(ctx, "a", "2024-01-01", models.SessionTraining, "A", `[]`); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertSession(ctx, "b", "2024-01-01", models.SessionMatch, "B", `[]`); err != nil {
		t.Fatal(err)
	}

	sess, err := db.GetSessionByDate(ctx, "b", "2024-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if sess.Type != models.SessionMatch {
		t.Errorf("account b type = %s, want Match", sess.Type)
	}
}

// TestWeekPlan verifies the seven-day window resolves sessions by exact date
// and leaves unplanned days empty.
func TestWeekPlan(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpsertSession(ctx, "coach", "2024-01-03", models.SessionTraining, "Mid-week", `[]`); err != nil {
		t.Fatal(err)
	}
	// Outside the window.
	if err := db.UpsertSession(ctx, "coach", "2024-01-08", models.SessionMatch, "Next week", `[]`); err != nil {
		t.Fatal(err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	week, err := db.WeekPlan(ctx, "coach", start)
	if err != nil {
		t.Fatal(err)
	}

	if week[0].Date != "2024-01-01" || week[6].Date != "2024-01-07" {
		t.Errorf("window = %s..%s, want 2024-01-01..2024-01-07", week[0].Date, week[6].Date)
	}
	for i, day := range week {
		if i == 2 {
			if day.Session == nil || day.Session.Title != "Mid-week" {
				t.Errorf("day 3 session = %+v, want Mid-week", day.Session)
			}
			continue
		}
		if day.Session != nil {
			t.Errorf("day %d unexpectedly planned: %+v", i+1, day.Session)
		}
	}
}

// TestSaveRatingsReplaces verifies a re-save replaces an athlete's row for
// the date while other athletes keep theirs.
func TestSaveRatingsReplaces(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := []RatingEntry{
		{AthleteID: "gk1", Rating: 5, Notes: "ok"},
		{AthleteID: "gk2", Rating: 8, Notes: "sharp"},
	}
	if err := db.SaveRatings(ctx, "coach", "2024-01-05", first); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveRatings(ctx, "coach", "2024-01-05", []RatingEntry{{AthleteID: "gk1", Rating: 7}}); err != nil {
		t.Fatal(err)
	}

	day, err := db.RatingsForDate(ctx, "coach", "2024-01-05")
	if err != nil {
		t.Fatal(err)
	}
	if len(day) != 2 {
		t.Fatalf("ratings for date = %d, want 2", len(day))
	}
	if day["gk1"].Rating != 7 {
		t.Errorf("gk1 rating = %d, want 7", day["gk1"].Rating)
	}
	if day["gk2"].Rating != 8 {
		t.Errorf("gk2 rating = %d, want untouched 8", day["gk2"].Rating)
	}
}

// TestRatingHistoryAndMean verifies ascending order and the arithmetic mean.
func TestRatingHistoryAndMean(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, e := range []struct {
		date   string
		rating int
	}{
		{"2024-01-10", 6},
		{"2024-01-03", 4},
		{"2024-01-07", 8},
	} {
		if err := db.SaveRatings(ctx, "coach", e.date, []RatingEntry{{AthleteID: "gk1", Rating: e.rating}}); err != nil {
			t.Fatal(err)
		}
	}

	hist, err := db.RatingHistory(ctx, "coach", "gk1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 3 {
		t.Fatalf("history length = %d, want 3", len(hist))
	}
	for i := 1; i < len(hist); i++ {
		if hist[i].Date < hist[i-1].Date {
			t.Errorf("history not ascending: %s after %s", hist[i].Date, hist[i-1].Date)
		}
	}

	mean, count, err := db.RatingMean(ctx, "coach", "gk1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 || mean != 6 {
		t.Errorf("mean = %v over %d, want 6 over 3", mean, count)
	}
}

// TestRatingMeanEmpty verifies an unrated athlete yields (0, 0) and no error.
func TestRatingMeanEmpty(t *testing.T) {
	db := newTestDB(t)
	mean, count, err := db.RatingMean(context.Background(), "coach", "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if mean != 0 || count != 0 {
		t.Errorf("mean = %v over %d, want 0 over 0", mean, count)
	}
}

// TestSaveMatchReplaces verifies saving twice for one date leaves exactly one
// row carrying the second payload's counters.
func TestSaveMatchReplaces(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := models.MatchRecord{
		Date:          "2024-03-10",
		Opponent:      "Rivals FC",
		AthleteID:     "gk1",
		GoalsConceded: 2,
		Saves:         6,
		Result:        "2-2",
		Rating:        7,
	}
	rec.Counters.BlockStandLow = 3
	if err := db.SaveMatch(ctx, "coach", rec); err != nil {
		t.Fatalf("first save: %v", err)
	}

	rec.Saves = 9
	rec.Counters.BlockStandLow = 0
	rec.Counters.CrossPunchTwo = 4
	if err := db.SaveMatch(ctx, "coach", rec); err != nil {
		t.Fatalf("second save: %v", err)
	}

	if n := countRows(t, db, `SELECT COUNT(*) FROM matches WHERE account=$1 AND date=$2`, "coach", "2024-03-10"); n != 1 {
		t.Fatalf("match rows = %d, want 1", n)
	}

	got, err := db.GetMatch(ctx, "coach", "2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if got.Saves != 9 {
		t.Errorf("saves = %d, want 9", got.Saves)
	}
	if got.Counters.BlockStandLow != 0 || got.Counters.CrossPunchTwo != 4 {
		t.Errorf("counters = %+v, want second payload", got.Counters)
	}
}

// TestMatchRoundTrip verifies every counter written is read back in the same
// field, exercising the full column/field pairing.
func TestMatchRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec := models.MatchRecord{Date: "2024-04-01", AthleteID: "gk1"}
	for i, p := range rec.Counters.Refs() {
		*p = i + 1
	}
	if err := db.SaveMatch(ctx, "coach", rec); err != nil {
		t.Fatal(err)
	}

	got, err := db.GetMatch(ctx, "coach", "2024-04-01")
	if err != nil {
		t.Fatal(err)
	}
	if got.Counters != rec.Counters {
		t.Errorf("counters round trip mismatch:\n got %+v\nwant %+v", got.Counters, rec.Counters)
	}
}

// TestMatchSummariesOrder verifies the history projection comes newest first.
func TestMatchSummariesOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, date := range []string{"2024-02-01", "2024-03-01", "2024-01-15"} {
		if err := db.SaveMatch(ctx, "coach", models.MatchRecord{Date: date, AthleteID: "gk1"}); err != nil {
			t.Fatal(err)
		}
	}

	sums, err := db.MatchSummaries(ctx, "coach")
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 3 {
		t.Fatalf("summaries = %d, want 3", len(sums))
	}
	if sums[0].Date != "2024-03-01" || sums[2].Date != "2024-01-15" {
		t.Errorf("order = %s..%s, want newest first", sums[0].Date, sums[2].Date)
	}
}

// TestGoalkeeperCRUD exercises create, update, list and delete, and verifies
// delete leaves historical rating rows behind.
func TestGoalkeeperCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.CreateGoalkeeper(ctx, "coach", models.Goalkeeper{Name: "Ana", Age: 17, Status: "Fit", Height: 172})
	if err != nil {
		t.Fatal(err)
	}

	if err := db.UpdateGoalkeeper(ctx, "coach", id, models.Goalkeeper{Name: "Ana", Age: 18, Status: "Injured"}); err != nil {
		t.Fatal(err)
	}
	got, err := db.GetGoalkeeper(ctx, "coach", id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Age != 18 || got.Status != "Injured" {
		t.Errorf("goalkeeper = %+v, want updated age/status", got)
	}

	if err := db.SaveRatings(ctx, "coach", "2024-01-01", []RatingEntry{{AthleteID: id, Rating: 6}}); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteGoalkeeper(ctx, "coach", id); err != nil {
		t.Fatal(err)
	}
	if _, err := db.GetGoalkeeper(ctx, "coach", id); err != ErrNotFound {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
	// Historical rows stay, keyed by the now-absent id.
	hist, err := db.RatingHistory(ctx, "coach", id)
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != 1 {
		t.Errorf("orphaned history rows = %d, want 1", len(hist))
	}
}

// TestDrillLibrary exercises creation, grouping by moment, title resolution
// and the image-preserving update.
func TestDrillLibrary(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	img := []byte{0x89, 'P', 'N', 'G'}
	id, err := db.CreateDrill(ctx, "coach", models.Drill{
		Title: "Near-post blocks", Moment: models.MomentGoalDefense,
		TrainingType: models.TypeTechnical, Description: "short range volleys",
		Image: img,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateDrill(ctx, "coach", models.Drill{
		Title: "Crossing waves", Moment: models.MomentCrossing,
		TrainingType: models.TypeTactical,
	}); err != nil {
		t.Fatal(err)
	}

	grouped, err := db.TitlesByMoment(ctx, "coach")
	if err != nil {
		t.Fatal(err)
	}
	if len(grouped[models.MomentGoalDefense]) != 1 || len(grouped[models.MomentCrossing]) != 1 {
		t.Errorf("grouped = %+v, want one title per moment", grouped)
	}

	// Update without a new image keeps the stored blob.
	if err := db.UpdateDrill(ctx, "coach", id, models.Drill{
		Title: "Near-post blocks", Moment: models.MomentGoalDefense,
		TrainingType: models.TypeTechnical, Description: "tightened spacing",
	}); err != nil {
		t.Fatal(err)
	}

	byTitle, err := db.DrillsByTitles(ctx, "coach", []string{"Near-post blocks", "Missing"})
	if err != nil {
		t.Fatal(err)
	}
	d, ok := byTitle["Near-post blocks"]
	if !ok {
		t.Fatal("resolved drills missing Near-post blocks")
	}
	if d.Description != "tightened spacing" {
		t.Errorf("description = %q, want updated", d.Description)
	}
	if string(d.Image) != string(img) {
		t.Errorf("image = %v, want preserved blob", d.Image)
	}
	if _, ok := byTitle["Missing"]; ok {
		t.Error("unknown title unexpectedly resolved")
	}
}

// TestDuplicateDrillTitle verifies the per-account title uniqueness
// constraint rejects a second drill with the same title.
func TestDuplicateDrillTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	d := models.Drill{Title: "Same", Moment: models.MomentDuels, TrainingType: models.TypePhysical}
	if _, err := db.CreateDrill(ctx, "coach", d); err != nil {
		t.Fatal(err)
	}
	if _, err := db.CreateDrill(ctx, "coach", d); err == nil {
		t.Error("duplicate title accepted, want constraint error")
	}
	// Same title under another account is fine.
	if _, err := db.CreateDrill(ctx, "other", d); err != nil {
		t.Errorf("cross-account title rejected: %v", err)
	}
}

// TestMicrocycles exercises creation, newest-first listing and the weekly
// report update.
func TestMicrocycles(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.CreateMicrocycle(ctx, "coach", models.Microcycle{Title: "Week 1", StartDate: "2024-01-01", Goal: "base"}); err != nil {
		t.Fatal(err)
	}
	id, err := db.CreateMicrocycle(ctx, "coach", models.Microcycle{Title: "Week 2", StartDate: "2024-01-08", Goal: "crossing"})
	if err != nil {
		t.Fatal(err)
	}

	list, err := db.ListMicrocycles(ctx, "coach")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Title != "Week 2" {
		t.Errorf("list = %+v, want Week 2 first", list)
	}

	if err := db.SetMicrocycleReport(ctx, "coach", id, "heavy week"); err != nil {
		t.Fatal(err)
	}
	m, err := db.GetMicrocycle(ctx, "coach", id)
	if err != nil {
		t.Fatal(err)
	}
	if m.Report != "heavy week" {
		t.Errorf("report = %q, want heavy week", m.Report)
	}
}

// TestCalendarAndMatchDays verifies the calendar projection colors and the
// match-day listing.
func TestCalendarAndMatchDays(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.UpsertSession(ctx, "coach", "2024-01-01", models.SessionTraining, "T", `[]`); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertSession(ctx, "coach", "2024-01-03", models.SessionMatch, "vs Rivals", `[]`); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertSession(ctx, "coach", "2024-01-04", models.SessionRest, "R", `[]`); err != nil {
		t.Fatal(err)
	}

	events, err := db.CalendarEvents(ctx, "coach")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[1].BackgroundColor != "#d9534f" {
		t.Errorf("match color = %q, want #d9534f", events[1].BackgroundColor)
	}

	days, err := db.MatchDays(ctx, "coach")
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 1 || days[0].Title != "vs Rivals" {
		t.Errorf("match days = %+v, want only vs Rivals", days)
	}
}
