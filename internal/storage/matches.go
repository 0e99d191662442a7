package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/meltforce/gkmanager/internal/models"
)

// matchHeaderColumns are the non-counter data columns of the matches table.
// The full column list is these plus models.CounterColumns, always in that
// order.
var matchHeaderColumns = []string{
	"id", "account", "date", "opponent", "athlete_id",
	"goals_conceded", "saves", "result", "report", "rating",
}

func matchColumnList() string {
	return strings.Join(append(append([]string{}, matchHeaderColumns...), models.CounterColumns...), ", ")
}

// SaveMatch records the full statistics sheet for one match day, replacing
// any prior record for (account, date). Delete and insert run in one
// transaction so a failure cannot leave the date without a record.
func (db *DB) SaveMatch(ctx context.Context, account string, rec models.MatchRecord) error {
	n := len(matchHeaderColumns) + len(models.CounterColumns)
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	args := make([]any, 0, n)
	args = append(args, uuid.NewString(), account, rec.Date, rec.Opponent, rec.AthleteID,
		rec.GoalsConceded, rec.Saves, rec.Result, rec.Report, rec.Rating)
	for _, p := range rec.Counters.Refs() {
		args = append(args, *p)
	}

	return db.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM matches WHERE account=$1 AND date=$2`, account, rec.Date); err != nil {
			return fmt.Errorf("clearing match record: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO matches (`+matchColumnList()+`) VALUES (`+strings.Join(placeholders, ",")+`)`,
			args...); err != nil {
			return fmt.Errorf("inserting match record: %w", err)
		}
		return nil
	})
}

// GetMatch retrieves the full record for one match day.
func (db *DB) GetMatch(ctx context.Context, account, date string) (*models.MatchRecord, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT `+matchColumnList()+` FROM matches WHERE account=$1 AND date=$2`,
		account, date)

	rec, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying match record: %w", err)
	}
	return rec, nil
}

// MatchHistory retrieves every match record for the account, newest first.
func (db *DB) MatchHistory(ctx context.Context, account string) ([]models.MatchRecord, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+matchColumnList()+` FROM matches WHERE account=$1 ORDER BY date DESC`,
		account)
	if err != nil {
		return nil, fmt.Errorf("querying match history: %w", err)
	}
	defer rows.Close()

	var result []models.MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning match record: %w", err)
		}
		result = append(result, *rec)
	}
	return result, rows.Err()
}

// MatchSummaries retrieves the narrow history projection, newest first.
func (db *DB) MatchSummaries(ctx context.Context, account string) ([]models.MatchSummary, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT date, opponent, result, rating, goals_conceded, saves
		 FROM matches WHERE account=$1 ORDER BY date DESC`, account)
	if err != nil {
		return nil, fmt.Errorf("querying match summaries: %w", err)
	}
	defer rows.Close()

	var result []models.MatchSummary
	for rows.Next() {
		var s models.MatchSummary
		if err := rows.Scan(&s.Date, &s.Opponent, &s.Result, &s.Rating, &s.GoalsConceded, &s.Saves); err != nil {
			return nil, fmt.Errorf("scanning match summary: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func scanMatch(row interface{ Scan(dest ...any) error }) (*models.MatchRecord, error) {
	var rec models.MatchRecord
	dest := []any{&rec.ID, &rec.Account, &rec.Date, &rec.Opponent, &rec.AthleteID,
		&rec.GoalsConceded, &rec.Saves, &rec.Result, &rec.Report, &rec.Rating}
	for _, p := range rec.Counters.Refs() {
		dest = append(dest, p)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &rec, nil
}
