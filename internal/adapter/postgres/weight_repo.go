package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/domain"
)

const dayLayout = "2006-01-02"

// CreateWeightLog inserts a new weight log.
func (d *DB) CreateWeightLog(ctx context.Context, userID int64, weight float64, unit string, date time.Time, notes string) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_logs(user_id, weight, unit, day, notes, created_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id;",
		userID, weight, unit, date.Format(dayLayout), notes, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

// ListWeightDates returns every distinct log day for the user.
func (d *DB) ListWeightDates(ctx context.Context, userID int64) ([]time.Time, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT DISTINCT day FROM weight_logs WHERE user_id=$1;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		out = append(out, asLocalDay(day))
	}
	return out, rows.Err()
}

// ListWeightsSince returns day/weight pairs on or after since, ascending by
// day with insertion order preserved within a day.
func (d *DB) ListWeightsSince(ctx context.Context, userID int64, since time.Time) ([]domain.WeightPoint, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, weight FROM weight_logs WHERE user_id=$1 AND day >= $2 ORDER BY day ASC, created_at ASC;",
		userID, since.Format(dayLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightPoint
	for rows.Next() {
		var p domain.WeightPoint
		var day time.Time
		if err := rows.Scan(&day, &p.Weight); err != nil {
			return nil, err
		}
		p.Date = asLocalDay(day)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListRecentWeightLogs returns the most recently created logs up to limit.
func (d *DB) ListRecentWeightLogs(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, weight, unit, day, notes, created_at FROM weight_logs WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2;",
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WeightLog, 0, limit)
	for rows.Next() {
		var w domain.WeightLog
		var day time.Time
		if err := rows.Scan(&w.ID, &w.Weight, &w.Unit, &day, &w.Notes, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.UserID = userID
		w.Date = asLocalDay(day)
		out = append(out, w)
	}
	return out, rows.Err()
}

// DeleteLatestWeightLog removes the most recently created log for the user.
func (d *DB) DeleteLatestWeightLog(ctx context.Context, userID int64) (bool, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT id FROM weight_logs WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1;", userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	_, err = d.sql.ExecContext(ctx, "DELETE FROM weight_logs WHERE id=$1;", id)
	return err == nil, err
}

// asLocalDay rebuilds a scanned DATE value at local midnight. lib/pq hands
// DATE columns back at UTC midnight, which would skew day comparisons in
// any zone behind UTC.
func asLocalDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
