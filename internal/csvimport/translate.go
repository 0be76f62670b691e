package csvimport

import (
	"fmt"
	"time"
)

// Row is one validated data row from a weight CSV.
type Row struct {
	Date   time.Time
	Weight float64
	// MovingAverage is the value carried in the source file, when present
	// and parseable. It is distinct from any computed average.
	MovingAverage *float64
	// RowNumber is the 1-based line number in the source, for diagnostics.
	RowNumber int
}

// RowError describes why one line could not be parsed.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Result is the outcome of translating a whole file.
type Result struct {
	Rows    []Row
	Errors  []RowError
	Headers []string
}

// Translate parses raw CSV text into validated rows plus a per-row error
// list. The first tokenized row is always treated as the header. Every data
// row is attempted; a failing row lands in Errors and translation carries
// on. A file with no data rows at all yields the single file-level error
// "Empty CSV file".
func Translate(text string) Result {
	rows := Tokenize(text)
	if len(rows) < 2 {
		return Result{Errors: []RowError{{Row: 0, Error: "Empty CSV file"}}}
	}

	headers := rows[0]
	cols := DetectColumns(headers)
	res := Result{Headers: headers}

	for i, cells := range rows[1:] {
		rowNum := i + 2 // 1-based, header is line 1

		if allBlank(cells) {
			continue
		}

		dateCell := cellAt(cells, cols.Date)
		if dateCell == "" {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Error: "Missing date"})
			continue
		}
		weightCell := cellAt(cells, cols.Weight)
		if weightCell == "" {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Error: "Missing weight value"})
			continue
		}

		date, ok := ParseDate(dateCell)
		if !ok {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Error: fmt.Sprintf("Invalid date %q", dateCell)})
			continue
		}
		weight, ok := ParseWeight(weightCell)
		if !ok {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Error: fmt.Sprintf("Invalid weight value %q", weightCell)})
			continue
		}

		row := Row{Date: date, Weight: weight, RowNumber: rowNum}
		// The moving-average column is optional; noise there must never
		// block an otherwise valid row.
		if maCell := cellAt(cells, cols.MovingAverage); maCell != "" {
			if ma, ok := ParseWeight(maCell); ok {
				row.MovingAverage = &ma
			}
		}
		res.Rows = append(res.Rows, row)
	}

	return res
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

func allBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
