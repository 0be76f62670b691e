package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/csvimport"
	"github.com/Nicolas-Jorq/budget-app-sub002/internal/domain"
)

// Row statuses reported per attempted import row.
const (
	StatusImported  = "imported"
	StatusDuplicate = "duplicate"
	StatusError     = "error"
)

const previewSampleSize = 10

// ImportRowResult records the outcome for one parsed CSV row.
type ImportRowResult struct {
	RowNumber int     `json:"rowNumber"`
	Date      string  `json:"date"`
	Weight    float64 `json:"weight"`
	Status    string  `json:"status"`
	Error     string  `json:"error,omitempty"`
}

// ImportResult is the terminal artifact of a committed import batch.
// Success is true iff no row failed to persist; duplicates are an expected
// outcome of the skip policy, not errors.
type ImportResult struct {
	Success    bool              `json:"success"`
	TotalRows  int               `json:"totalRows"`
	Imported   int               `json:"imported"`
	Duplicates int               `json:"duplicates"`
	Errors     int               `json:"errors"`
	Results    []ImportRowResult `json:"results"`
}

// ImportOptions configure a batch import. Unit applies uniformly to every
// row in the batch.
type ImportOptions struct {
	Unit           string
	SkipDuplicates bool
}

// CSVImportOutcome bundles the persistence result with the parse warnings
// and detected headers surfaced back to the user.
type CSVImportOutcome struct {
	Result      *ImportResult        `json:"result"`
	ParseErrors []csvimport.RowError `json:"parseErrors,omitempty"`
	Headers     []string             `json:"headers,omitempty"`
}

// PreviewRow is one parsed row shown to the user before committing.
type PreviewRow struct {
	Date          string   `json:"date"`
	Weight        float64  `json:"weight"`
	MovingAverage *float64 `json:"movingAverage,omitempty"`
}

// ImportPreview is the dry-run result: parsing only, nothing persisted.
type ImportPreview struct {
	ValidRows int                  `json:"validRows"`
	Errors    []csvimport.RowError `json:"errors,omitempty"`
	Headers   []string             `json:"headers,omitempty"`
	Sample    []PreviewRow         `json:"sample"`
}

// ImportService persists parsed CSV rows against a user's existing records,
// skipping or flagging same-day duplicates.
type ImportService struct {
	repo domain.WeightRepository
	log  *zap.Logger
}

// NewImportService creates an ImportService backed by the given repository.
func NewImportService(repo domain.WeightRepository, log *zap.Logger) *ImportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImportService{repo: repo, log: log}
}

// Preview runs the parse pipeline without touching storage and returns the
// first few parsed rows for user confirmation.
func (s *ImportService) Preview(csvText string) *ImportPreview {
	tr := csvimport.Translate(csvText)

	p := &ImportPreview{
		ValidRows: len(tr.Rows),
		Errors:    tr.Errors,
		Headers:   tr.Headers,
		Sample:    make([]PreviewRow, 0, previewSampleSize),
	}
	for _, row := range tr.Rows {
		if len(p.Sample) == previewSampleSize {
			break
		}
		p.Sample = append(p.Sample, PreviewRow{
			Date:          row.Date.Format("2006-01-02"),
			Weight:        row.Weight,
			MovingAverage: row.MovingAverage,
		})
	}
	return p
}

// ImportCSV parses csvText and commits the valid rows. Parse errors ride
// along in the outcome; they never block the rest of the batch.
func (s *ImportService) ImportCSV(ctx context.Context, userID int64, csvText string, opts ImportOptions) (*CSVImportOutcome, error) {
	tr := csvimport.Translate(csvText)
	result, err := s.Import(ctx, userID, tr.Rows, opts)
	if err != nil {
		return nil, err
	}
	return &CSVImportOutcome{Result: result, ParseErrors: tr.Errors, Headers: tr.Headers}, nil
}

// Import persists validated rows in the order given. Existing dates for the
// user are snapshotted once up front; each successful write extends the
// snapshot so two same-day rows within one batch collapse to a duplicate
// (first wins). A persistence failure for one row is captured on that row
// and never aborts the batch.
func (s *ImportService) Import(ctx context.Context, userID int64, rows []csvimport.Row, opts ImportOptions) (*ImportResult, error) {
	if opts.Unit != "kg" && opts.Unit != "lbs" {
		return nil, errors.New(`unit must be "kg" or "lbs"`)
	}

	dates, err := s.repo.ListWeightDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load existing dates: %w", err)
	}
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		seen[d.Format("2006-01-02")] = true
	}

	res := &ImportResult{TotalRows: len(rows), Results: make([]ImportRowResult, 0, len(rows))}
	for _, row := range rows {
		day := row.Date.Format("2006-01-02")
		rr := ImportRowResult{RowNumber: row.RowNumber, Date: day, Weight: row.Weight}

		switch {
		case opts.SkipDuplicates && seen[day]:
			rr.Status = StatusDuplicate
			res.Duplicates++
		default:
			notes := "Imported from CSV"
			if row.MovingAverage != nil {
				notes = fmt.Sprintf("Imported from CSV (moving avg %.1f)", *row.MovingAverage)
			}
			if _, err := s.repo.CreateWeightLog(ctx, userID, row.Weight, opts.Unit, row.Date, notes); err != nil {
				rr.Status = StatusError
				rr.Error = err.Error()
				res.Errors++
				s.log.Warn("weight import row failed",
					zap.Int64("user_id", userID),
					zap.String("date", day),
					zap.Error(err))
			} else {
				rr.Status = StatusImported
				res.Imported++
				seen[day] = true
			}
		}
		res.Results = append(res.Results, rr)
	}

	res.Success = res.Errors == 0
	return res, nil
}
