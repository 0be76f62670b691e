package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupRepo(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewFromSQL(db), mock
}

func TestCreateWeightLog(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`INSERT INTO weight_logs`).
		WithArgs(int64(1), 180.5, "lbs", "2024-01-01", "Imported from CSV", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	id, err := repo.CreateWeightLog(context.Background(), 1, 180.5, "lbs", date, "Imported from CSV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestListWeightDates(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT DISTINCT day FROM weight_logs`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"day"}).
			AddRow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
			AddRow(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	dates, err := repo.ListWeightDates(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(dates))
	}
	// scanned UTC dates come back normalized to local midnight
	if dates[0].Hour() != 0 || dates[0].Location() != time.Local {
		t.Fatalf("expected local midnight, got %v", dates[0])
	}
	if dates[0].Format("2006-01-02") != "2024-01-01" {
		t.Fatalf("unexpected day: %v", dates[0])
	}
}

func TestListWeightsSince(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT day, weight FROM weight_logs`).
		WithArgs(int64(1), "2024-01-01").
		WillReturnRows(sqlmock.NewRows([]string{"day", "weight"}).
			AddRow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 180.5).
			AddRow(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 179.8))

	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	points, err := repo.ListWeightsSince(context.Background(), 1, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Weight != 180.5 || points[1].Weight != 179.8 {
		t.Fatalf("unexpected weights: %+v", points)
	}
}

func TestDeleteLatestWeightLog(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT id FROM weight_logs`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectExec(`DELETE FROM weight_logs WHERE id`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteLatestWeightLog(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Fatal("expected deleted=true")
	}
}

func TestDeleteLatestWeightLog_Empty(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectQuery(`SELECT id FROM weight_logs`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	deleted, err := repo.DeleteLatestWeightLog(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted {
		t.Fatal("expected deleted=false when no rows exist")
	}
}

func TestListRecentWeightLogs(t *testing.T) {
	repo, mock := setupRepo(t)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, weight, unit, day, notes, created_at FROM weight_logs`).
		WithArgs(int64(1), 14).
		WillReturnRows(sqlmock.NewRows([]string{"id", "weight", "unit", "day", "notes", "created_at"}).
			AddRow(int64(2), 179.8, "lbs", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "", now).
			AddRow(int64(1), 180.5, "lbs", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Imported from CSV", now))

	logs, err := repo.ListRecentWeightLogs(context.Background(), 1, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].UserID != 1 || logs[1].Notes != "Imported from CSV" {
		t.Fatalf("unexpected logs: %+v", logs)
	}
}
