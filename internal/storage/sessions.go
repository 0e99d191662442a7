package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/gkmanager/internal/models"
	"github.com/meltforce/gkmanager/internal/schedule"
)

const sessionColumns = `id, account, type, title, start_date, drills_list, report`

// UpsertSession saves a day's planning. At most one session exists per
// (account, date); a second save for the same date replaces type, title and
// drill configuration in place and keeps the report.
func (db *DB) UpsertSession(ctx context.Context, account, date string, sessType models.SessionType, title, drillsList string) error {
	_, err := db.SQL.ExecContext(ctx,
		`INSERT INTO sessions (id, account, type, title, start_date, drills_list)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (account, start_date) DO UPDATE
		 SET type=excluded.type, title=excluded.title, drills_list=excluded.drills_list`,
		uuid.NewString(), account, string(sessType), title, date, drillsList)
	if err != nil {
		return fmt.Errorf("upserting session: %w", err)
	}
	return nil
}

// GetSessionByDate retrieves the session for one calendar day, or ErrNotFound
// when the day is empty.
func (db *DB) GetSessionByDate(ctx context.Context, account, date string) (*models.Session, error) {
	row := db.SQL.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE account=$1 AND start_date=$2`,
		account, date)

	var s models.Session
	var sessType string
	err := row.Scan(&s.ID, &s.Account, &sessType, &s.Title, &s.StartDate, &s.DrillsList, &s.Report)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	s.Type = models.SessionType(sessType)
	return &s, nil
}

// SetSessionReport stores the coach's free-text report on an existing
// session.
func (db *DB) SetSessionReport(ctx context.Context, account, date, report string) error {
	tag, err := db.SQL.ExecContext(ctx,
		`UPDATE sessions SET report=$1 WHERE account=$2 AND start_date=$3`,
		report, account, date)
	if err != nil {
		return fmt.Errorf("updating session report: %w", err)
	}
	if n, _ := tag.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// WeekDay is one day of a microcycle: its date and the session planned for
// it, if any.
type WeekDay struct {
	Date    string          `json:"date"`
	Session *models.Session `json:"session,omitempty"`
}

// WeekPlan resolves the seven days of the microcycle starting at start to
// their sessions by exact date match.
func (db *DB) WeekPlan(ctx context.Context, account string, start time.Time) ([7]WeekDay, error) {
	dates := schedule.WeekDates(start)

	var week [7]WeekDay
	for i, date := range dates {
		week[i].Date = date
		sess, err := db.GetSessionByDate(ctx, account, date)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return week, err
		}
		week[i].Session = sess
	}
	return week, nil
}

// CalendarEvents projects every session of the account into calendar events
// with per-type colors.
func (db *DB) CalendarEvents(ctx context.Context, account string) ([]models.CalendarEvent, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT type, title, start_date FROM sessions WHERE account=$1 ORDER BY start_date`,
		account)
	if err != nil {
		return nil, fmt.Errorf("querying calendar sessions: %w", err)
	}
	defer rows.Close()

	var events []models.CalendarEvent
	for rows.Next() {
		var sessType, title, date string
		if err := rows.Scan(&sessType, &title, &date); err != nil {
			return nil, fmt.Errorf("scanning calendar session: %w", err)
		}
		events = append(events, models.CalendarEvent{
			Title:           title,
			Start:           date,
			End:             date,
			BackgroundColor: models.CalendarColor(models.SessionType(sessType)),
		})
	}
	return events, rows.Err()
}

// MatchDays lists sessions of type Match, newest first. These are the days a
// match statistics record can be filed against.
func (db *DB) MatchDays(ctx context.Context, account string) ([]models.Session, error) {
	rows, err := db.SQL.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE account=$1 AND type=$2 ORDER BY start_date DESC`,
		account, string(models.SessionMatch))
	if err != nil {
		return nil, fmt.Errorf("querying match days: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		var sessType string
		if err := rows.Scan(&s.ID, &s.Account, &sessType, &s.Title, &s.StartDate, &s.DrillsList, &s.Report); err != nil {
			return nil, fmt.Errorf("scanning match day: %w", err)
		}
		s.Type = models.SessionType(sessType)
		result = append(result, s)
	}
	return result, rows.Err()
}
