package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/gkmanager/internal/models"
)

// CreateMicrocycle inserts a training week and returns its id.
func (db *DB) CreateMicrocycle(ctx context.Context, account string, m models.Microcycle) (string, error) {
	id := uuid.NewString()
	_, err := db.SQL.ExecContext(ctx,
		`INSERT INTO microcycles (id, account, title, start_date, goal)
		 VALUES ($1,$2,$3,$4,$5)`,
		id, account, m.Title, m.StartDate, m.Goal)
	if err != nil {
		return "", fmt.Errorf("inserting microcycle: %w", err)
	}
	return id, nil
}

// GetMicrocycle retrieves one training week by id.
func (db *DB) GetMicrocycle(ctx context.Context, account, id string) (*models.Microcycle, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT id, account, title, start_date, goal, report
		 FROM microcycles WHERE account=$1 AND id=$2`, account, id)

	var m models.Microcycle
	err := row.Scan(&m.ID, &m.Account, &m.Title, &m.StartDate, &m.Goal, &m.Report)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying microcycle: %w", err)
	}
	return &m, nil
}

// ListMicrocycles retrieves the account's training weeks, newest first.
func (db *DB) ListMicrocycles(ctx context.Context, account string) ([]models.Microcycle, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT id, account, title, start_date, goal, report
		 FROM microcycles WHERE account=$1 ORDER BY start_date DESC`, account)
	if err != nil {
		return nil, fmt.Errorf("querying microcycles: %w", err)
	}
	defer rows.Close()

	var result []models.Microcycle
	for rows.Next() {
		var m models.Microcycle
		if err := rows.Scan(&m.ID, &m.Account, &m.Title, &m.StartDate, &m.Goal, &m.Report); err != nil {
			return nil, fmt.Errorf("scanning microcycle: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// SetMicrocycleReport stores the weekly report text.
func (db *DB) SetMicrocycleReport(ctx context.Context, account, id, report string) error {
	tag, err := db.SQL.ExecContext(ctx,
		`UPDATE microcycles SET report=$1 WHERE account=$2 AND id=$3`,
		report, account, id)
	if err != nil {
		return fmt.Errorf("updating microcycle report: %w", err)
	}
	if n, _ := tag.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
