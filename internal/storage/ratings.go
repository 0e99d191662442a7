package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/meltforce/gkmanager/internal/models"
)

// RatingEntry is one athlete's rating+note in a save batch.
type RatingEntry struct {
	AthleteID string `json:"athlete_id"`
	Rating    int    `json:"rating"`
	Notes     string `json:"notes"`
}

// SaveRatings records the supplied ratings for one training day. Each
// athlete's prior row for the date is replaced; athletes not in the batch are
// untouched. The whole batch runs in one transaction.
func (db *DB) SaveRatings(ctx context.Context, account, date string, entries []RatingEntry) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM training_ratings WHERE account=$1 AND date=$2 AND athlete_id=$3`,
				account, date, e.AthleteID); err != nil {
				return fmt.Errorf("clearing rating: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO training_ratings (id, account, date, athlete_id, rating, notes)
				 VALUES ($1,$2,$3,$4,$5,$6)`,
				uuid.NewString(), account, date, e.AthleteID, e.Rating, e.Notes); err != nil {
				return fmt.Errorf("inserting rating: %w", err)
			}
		}
		return nil
	})
}

// RatingHistory retrieves one athlete's ratings, ascending by date.
func (db *DB) RatingHistory(ctx context.Context, account, athleteID string) ([]models.TrainingRating, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT id, account, date, athlete_id, rating, notes
		 FROM training_ratings
		 WHERE account=$1 AND athlete_id=$2 ORDER BY date ASC`,
		account, athleteID)
	if err != nil {
		return nil, fmt.Errorf("querying rating history: %w", err)
	}
	defer rows.Close()

	var result []models.TrainingRating
	for rows.Next() {
		var r models.TrainingRating
		if err := rows.Scan(&r.ID, &r.Account, &r.Date, &r.AthleteID, &r.Rating, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// RatingsForDate retrieves the ratings recorded for one training day, keyed
// by athlete id, for pre-filling the daily report form.
func (db *DB) RatingsForDate(ctx context.Context, account, date string) (map[string]models.TrainingRating, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT id, account, date, athlete_id, rating, notes
		 FROM training_ratings WHERE account=$1 AND date=$2`,
		account, date)
	if err != nil {
		return nil, fmt.Errorf("querying day ratings: %w", err)
	}
	defer rows.Close()

	result := make(map[string]models.TrainingRating)
	for rows.Next() {
		var r models.TrainingRating
		if err := rows.Scan(&r.ID, &r.Account, &r.Date, &r.AthleteID, &r.Rating, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning rating: %w", err)
		}
		result[r.AthleteID] = r
	}
	return result, rows.Err()
}

// RatingMean returns the arithmetic mean of an athlete's ratings and the
// number of ratings it covers. Zero ratings yield (0, 0) with no error.
func (db *DB) RatingMean(ctx context.Context, account, athleteID string) (float64, int, error) {
	var mean sql.NullFloat64
	var count int
	err := db.SQL.QueryRowContext(ctx,
		`SELECT AVG(rating), COUNT(*) FROM training_ratings
		 WHERE account=$1 AND athlete_id=$2`,
		account, athleteID).Scan(&mean, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("querying rating mean: %w", err)
	}
	return mean.Float64, count, nil
}
