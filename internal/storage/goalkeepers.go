package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/gkmanager/internal/models"
)

const goalkeeperColumns = `id, account, name, age, status, height, wingspan,
	arm_len_left, arm_len_right, glove_size,
	jump_front_both, jump_front_left, jump_front_right, jump_lat_left, jump_lat_right,
	test_endurance, test_agility, test_speed`

// CreateGoalkeeper inserts a roster entry and returns its id.
func (db *DB) CreateGoalkeeper(ctx context.Context, account string, gk models.Goalkeeper) (string, error) {
	id := uuid.NewString()
	_, err := db.SQL.ExecContext(ctx,
		`INSERT INTO goalkeepers (`+goalkeeperColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		id, account, gk.Name, gk.Age, gk.Status, gk.Height, gk.Wingspan,
		gk.ArmLenLeft, gk.ArmLenRight, gk.GloveSize,
		gk.JumpFrontBoth, gk.JumpFrontLeft, gk.JumpFrontRight, gk.JumpLatLeft, gk.JumpLatRight,
		gk.TestEndurance, gk.TestAgility, gk.TestSpeed)
	if err != nil {
		return "", fmt.Errorf("inserting goalkeeper: %w", err)
	}
	return id, nil
}

// UpdateGoalkeeper replaces every profile field of an existing roster entry.
func (db *DB) UpdateGoalkeeper(ctx context.Context, account, id string, gk models.Goalkeeper) error {
	tag, err := db.SQL.ExecContext(ctx,
		`UPDATE goalkeepers SET name=$1, age=$2, status=$3, height=$4, wingspan=$5,
		 arm_len_left=$6, arm_len_right=$7, glove_size=$8,
		 jump_front_both=$9, jump_front_left=$10, jump_front_right=$11,
		 jump_lat_left=$12, jump_lat_right=$13,
		 test_endurance=$14, test_agility=$15, test_speed=$16
		 WHERE account=$17 AND id=$18`,
		gk.Name, gk.Age, gk.Status, gk.Height, gk.Wingspan,
		gk.ArmLenLeft, gk.ArmLenRight, gk.GloveSize,
		gk.JumpFrontBoth, gk.JumpFrontLeft, gk.JumpFrontRight,
		gk.JumpLatLeft, gk.JumpLatRight,
		gk.TestEndurance, gk.TestAgility, gk.TestSpeed,
		account, id)
	if err != nil {
		return fmt.Errorf("updating goalkeeper: %w", err)
	}
	if n, _ := tag.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteGoalkeeper removes a roster entry. Historical rating and match rows
// keep their athlete_id; no cascade happens here.
func (db *DB) DeleteGoalkeeper(ctx context.Context, account, id string) error {
	tag, err := db.SQL.ExecContext(ctx,
		`DELETE FROM goalkeepers WHERE account=$1 AND id=$2`, account, id)
	if err != nil {
		return fmt.Errorf("deleting goalkeeper: %w", err)
	}
	if n, _ := tag.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetGoalkeeper retrieves one roster entry.
func (db *DB) GetGoalkeeper(ctx context.Context, account, id string) (*models.Goalkeeper, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT `+goalkeeperColumns+` FROM goalkeepers WHERE account=$1 AND id=$2`,
		account, id)
	gk, err := scanGoalkeeper(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying goalkeeper: %w", err)
	}
	return gk, nil
}

// ListGoalkeepers retrieves the account's roster in name order.
func (db *DB) ListGoalkeepers(ctx context.Context, account string) ([]models.Goalkeeper, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+goalkeeperColumns+` FROM goalkeepers WHERE account=$1 ORDER BY name`,
		account)
	if err != nil {
		return nil, fmt.Errorf("querying goalkeepers: %w", err)
	}
	defer rows.Close()

	var result []models.Goalkeeper
	for rows.Next() {
		gk, err := scanGoalkeeper(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goalkeeper: %w", err)
		}
		result = append(result, *gk)
	}
	return result, rows.Err()
}

func scanGoalkeeper(row interface{ Scan(dest ...any) error }) (*models.Goalkeeper, error) {
	var gk models.Goalkeeper
	err := row.Scan(&gk.ID, &gk.Account, &gk.Name, &gk.Age, &gk.Status,
		&gk.Height, &gk.Wingspan, &gk.ArmLenLeft, &gk.ArmLenRight, &gk.GloveSize,
		&gk.JumpFrontBoth, &gk.JumpFrontLeft, &gk.JumpFrontRight,
		&gk.JumpLatLeft, &gk.JumpLatRight,
		&gk.TestEndurance, &gk.TestAgility, &gk.TestSpeed)
	if err != nil {
		return nil, err
	}
	return &gk, nil
}
