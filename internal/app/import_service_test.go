package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/app"
	"github.com/Nicolas-Jorq/budget-app-sub002/internal/csvimport"
)

// recordingRepo is a mockWeightRepo that remembers every created log.
type recordingRepo struct {
	mockWeightRepo
	mu      sync.Mutex
	created []time.Time
}

func newRecordingRepo(existing ...time.Time) *recordingRepo {
	r := &recordingRepo{}
	r.createFn = func(_ context.Context, _ int64, _ float64, _ string, date time.Time, _ string) (int64, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.created = append(r.created, date)
		return int64(len(r.created)), nil
	}
	r.listDatesFn = func(_ context.Context, _ int64) ([]time.Time, error) {
		r.mu.Lock()
		defer r.mu.Unlock()
		out := append([]time.Time{}, existing...)
		out = append(out, r.created...)
		return out, nil
	}
	return r
}

func importDay(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, n)
}

func rowsFor(days ...int) []csvimport.Row {
	rows := make([]csvimport.Row, 0, len(days))
	for i, d := range days {
		rows = append(rows, csvimport.Row{Date: importDay(d), Weight: 180 - float64(i), RowNumber: i + 2})
	}
	return rows
}

func TestImport_BadUnit(t *testing.T) {
	svc := app.NewImportService(newRecordingRepo(), zap.NewNop())
	_, err := svc.Import(context.Background(), 1, rowsFor(0), app.ImportOptions{Unit: "stones", SkipDuplicates: true})
	require.Error(t, err)
}

func TestImport_Success(t *testing.T) {
	repo := newRecordingRepo()
	svc := app.NewImportService(repo, zap.NewNop())

	res, err := svc.Import(context.Background(), 1, rowsFor(0, 1, 2), app.ImportOptions{Unit: "lbs", SkipDuplicates: true})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 0, res.Duplicates)
	assert.Equal(t, 0, res.Errors)
	require.Len(t, res.Results, 3)
	assert.Equal(t, app.StatusImported, res.Results[0].Status)
	assert.Equal(t, "2024-01-01", res.Results[0].Date)
	assert.Len(t, repo.created, 3)
}

func TestImport_IdempotentDuplicateSkip(t *testing.T) {
	repo := newRecordingRepo()
	svc := app.NewImportService(repo, zap.NewNop())
	opts := app.ImportOptions{Unit: "kg", SkipDuplicates: true}

	first, err := svc.Import(context.Background(), 1, rowsFor(0, 1, 2), opts)
	require.NoError(t, err)
	require.Equal(t, 3, first.Imported)

	second, err := svc.Import(context.Background(), 1, rowsFor(0, 1, 2), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Imported)
	assert.Equal(t, second.TotalRows, second.Duplicates)
	assert.True(t, second.Success, "duplicates must not fail the batch")
}

func TestImport_WithinBatchSameDayCollapse(t *testing.T) {
	repo := newRecordingRepo()
	svc := app.NewImportService(repo, zap.NewNop())

	res, err := svc.Import(context.Background(), 1, rowsFor(0, 0), app.ImportOptions{Unit: "kg", SkipDuplicates: true})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Duplicates)
	require.Len(t, res.Results, 2)
	// first row wins, in input order
	assert.Equal(t, app.StatusImported, res.Results[0].Status)
	assert.Equal(t, app.StatusDuplicate, res.Results[1].Status)
	assert.Len(t, repo.created, 1)
}

func TestImport_SkipDuplicatesDisabled(t *testing.T) {
	repo := newRecordingRepo(importDay(0))
	svc := app.NewImportService(repo, zap.NewNop())

	res, err := svc.Import(context.Background(), 1, rowsFor(0), app.ImportOptions{Unit: "kg", SkipDuplicates: false})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 0, res.Duplicates)
}

func TestImport_RowPersistenceFailureContinues(t *testing.T) {
	repo := newRecordingRepo()
	base := repo.createFn
	calls := 0
	repo.createFn = func(ctx context.Context, userID int64, w float64, u string, d time.Time, n string) (int64, error) {
		calls++
		if calls == 2 {
			return 0, errors.New("disk full")
		}
		return base(ctx, userID, w, u, d, n)
	}
	svc := app.NewImportService(repo, zap.NewNop())

	res, err := svc.Import(context.Background(), 1, rowsFor(0, 1, 2), app.ImportOptions{Unit: "kg", SkipDuplicates: true})
	require.NoError(t, err, "a single bad row must not abort the batch")

	assert.False(t, res.Success)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, app.StatusError, res.Results[1].Status)
	assert.Contains(t, res.Results[1].Error, "disk full")
	assert.Equal(t, app.StatusImported, res.Results[2].Status)
}

func TestImport_SnapshotLoadFailurePropagates(t *testing.T) {
	repo := newRecordingRepo()
	repo.listDatesFn = func(_ context.Context, _ int64) ([]time.Time, error) {
		return nil, errors.New("db down")
	}
	svc := app.NewImportService(repo, zap.NewNop())
	_, err := svc.Import(context.Background(), 1, rowsFor(0), app.ImportOptions{Unit: "kg", SkipDuplicates: true})
	require.Error(t, err)
}

func TestImport_NotesCarrySourceMovingAverage(t *testing.T) {
	var gotNotes []string
	repo := newRecordingRepo()
	base := repo.createFn
	repo.createFn = func(ctx context.Context, userID int64, w float64, u string, d time.Time, n string) (int64, error) {
		gotNotes = append(gotNotes, n)
		return base(ctx, userID, w, u, d, n)
	}
	svc := app.NewImportService(repo, zap.NewNop())

	ma := 180.1
	rows := []csvimport.Row{
		{Date: importDay(0), Weight: 180.5, RowNumber: 2},
		{Date: importDay(1), Weight: 179.8, MovingAverage: &ma, RowNumber: 3},
	}
	_, err := svc.Import(context.Background(), 1, rows, app.ImportOptions{Unit: "lbs", SkipDuplicates: true})
	require.NoError(t, err)

	require.Len(t, gotNotes, 2)
	assert.Equal(t, "Imported from CSV", gotNotes[0])
	assert.Equal(t, "Imported from CSV (moving avg 180.1)", gotNotes[1])
}

func TestImportCSV_EndToEnd(t *testing.T) {
	repo := newRecordingRepo()
	svc := app.NewImportService(repo, zap.NewNop())

	csv := "Date,Weight Recorded,Moving Average\n" +
		"2024-01-01,180.5,\n" +
		"01/02/2024,179.8,180.1\n" +
		"bad-date,178,179\n"

	out, err := svc.ImportCSV(context.Background(), 1, csv, app.ImportOptions{Unit: "lbs", SkipDuplicates: true})
	require.NoError(t, err)

	// Parse errors stay separate from persistence errors.
	require.Len(t, out.ParseErrors, 1)
	assert.Equal(t, 4, out.ParseErrors[0].Row)
	assert.Equal(t, []string{"Date", "Weight Recorded", "Moving Average"}, out.Headers)

	assert.Equal(t, 2, out.Result.Imported)
	assert.Equal(t, 0, out.Result.Duplicates)
	assert.Equal(t, 0, out.Result.Errors)
	assert.True(t, out.Result.Success)

	require.Len(t, repo.created, 2)
	assert.Equal(t, "2024-01-01", repo.created[0].Format("2006-01-02"))
	assert.Equal(t, "2024-02-01", repo.created[1].Format("2006-01-02"))
}

func TestImportCSV_EmptyInput(t *testing.T) {
	svc := app.NewImportService(newRecordingRepo(), zap.NewNop())

	out, err := svc.ImportCSV(context.Background(), 1, "", app.ImportOptions{Unit: "kg", SkipDuplicates: true})
	require.NoError(t, err)
	require.Len(t, out.ParseErrors, 1)
	assert.Equal(t, "Empty CSV file", out.ParseErrors[0].Error)
	assert.Equal(t, 0, out.Result.TotalRows)
}

func TestPreview(t *testing.T) {
	svc := app.NewImportService(newRecordingRepo(), zap.NewNop())

	csv := "Date,Weight\n"
	for i := 0; i < 15; i++ {
		csv += importDay(i).Format("2006-01-02") + ",180\n"
	}
	csv += "bad-date,180\n"

	p := svc.Preview(csv)
	assert.Equal(t, 15, p.ValidRows)
	assert.Len(t, p.Sample, 10, "preview is capped at 10 rows")
	assert.Len(t, p.Errors, 1)
	assert.Equal(t, "2024-01-01", p.Sample[0].Date)
}
