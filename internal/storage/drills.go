package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/meltforce/gkmanager/internal/models"
)

const drillColumns = `id, account, title, moment, training_type,
	description, objective, materials, space, image`

// CreateDrill inserts a drill into the account's library and returns its id.
// Titles are unique per account; a duplicate surfaces as a write error.
func (db *DB) CreateDrill(ctx context.Context, account string, d models.Drill) (string, error) {
	id := uuid.NewString()
	_, err := db.SQL.ExecContext(ctx,
		`INSERT INTO exercises (`+drillColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		id, account, d.Title, string(d.Moment), string(d.TrainingType),
		d.Description, d.Objective, d.Materials, d.Space, d.Image)
	if err != nil {
		return "", fmt.Errorf("inserting drill: %w", err)
	}
	return id, nil
}

// UpdateDrill replaces a drill's fields. The stored image is only replaced
// when d.Image is non-nil; a nil image keeps the existing blob.
func (db *DB) UpdateDrill(ctx context.Context, account, id string, d models.Drill) error {
	var (
		tag interface{ RowsAffected() (int64, error) }
		err error
	)
	if d.Image != nil {
		tag, err = db.SQL.ExecContext(ctx,
			`UPDATE exercises SET title=$1, moment=$2, training_type=$3,
			 description=$4, objective=$5, materials=$6, space=$7, image=$8
			 WHERE account=$9 AND id=$10`,
			d.Title, string(d.Moment), string(d.TrainingType),
			d.Description, d.Objective, d.Materials, d.Space, d.Image,
			account, id)
	} else {
		tag, err = db.SQL.ExecContext(ctx,
			`UPDATE exercises SET title=$1, moment=$2, training_type=$3,
			 description=$4, objective=$5, materials=$6, space=$7
			 WHERE account=$8 AND id=$9`,
			d.Title, string(d.Moment), string(d.TrainingType),
			d.Description, d.Objective, d.Materials, d.Space,
			account, id)
	}
	if err != nil {
		return fmt.Errorf("updating drill: %w", err)
	}
	if n, _ := tag.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDrill removes a drill from the library. Session configurations that
// reference it by title are left as-is and become unresolvable.
func (db *DB) DeleteDrill(ctx context.Context, account, id string) error {
	tag, err := db.SQL.ExecContext(ctx,
		`DELETE FROM exercises WHERE account=$1 AND id=$2`, account, id)
	if err != nil {
		return fmt.Errorf("deleting drill: %w", err)
	}
	if n, _ := tag.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListDrills retrieves the account's full library in insertion order.
func (db *DB) ListDrills(ctx context.Context, account string) ([]models.Drill, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+drillColumns+` FROM exercises WHERE account=$1 ORDER BY title`, account)
	if err != nil {
		return nil, fmt.Errorf("querying drills: %w", err)
	}
	defer rows.Close()
	return scanDrills(rows)
}

// TitlesByMoment returns the library's drill titles grouped by moment
// category, each group in the library's listing order. The planner uses this
// to order a selection within a category.
func (db *DB) TitlesByMoment(ctx context.Context, account string) (map[models.Moment][]string, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT title, moment FROM exercises WHERE account=$1 ORDER BY title`, account)
	if err != nil {
		return nil, fmt.Errorf("querying drill titles: %w", err)
	}
	defer rows.Close()

	grouped := make(map[models.Moment][]string)
	for rows.Next() {
		var title, moment string
		if err := rows.Scan(&title, &moment); err != nil {
			return nil, fmt.Errorf("scanning drill title: %w", err)
		}
		m := models.Moment(moment)
		grouped[m] = append(grouped[m], title)
	}
	return grouped, rows.Err()
}

// DrillsByTitles resolves drill metadata for the given titles, keyed by
// title. Titles with no library entry are absent from the result.
func (db *DB) DrillsByTitles(ctx context.Context, account string, titles []string) (map[string]models.Drill, error) {
	if len(titles) == 0 {
		return map[string]models.Drill{}, nil
	}

	placeholders := make([]string, len(titles))
	args := make([]any, 0, len(titles)+1)
	args = append(args, account)
	for i, t := range titles {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, t)
	}

	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+drillColumns+` FROM exercises
		 WHERE account=$1 AND title IN (`+strings.Join(placeholders, ",")+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("querying drills by title: %w", err)
	}
	defer rows.Close()

	drills, err := scanDrills(rows)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]models.Drill, len(drills))
	for _, d := range drills {
		byTitle[d.Title] = d
	}
	return byTitle, nil
}

func scanDrills(rows *sql.Rows) ([]models.Drill, error) {
	var result []models.Drill
	for rows.Next() {
		var d models.Drill
		var moment, trainingType string
		if err := rows.Scan(&d.ID, &d.Account, &d.Title, &moment, &trainingType,
			&d.Description, &d.Objective, &d.Materials, &d.Space, &d.Image); err != nil {
			return nil, fmt.Errorf("scanning drill: %w", err)
		}
		d.Moment = models.Moment(moment)
		d.TrainingType = models.TrainingType(trainingType)
		result = append(result, d)
	}
	return result, rows.Err()
}
