// Package csvimport parses weight-history CSV exports into validated rows.
//
// Exports from scale apps vary wildly: different date conventions, units
// baked into the value cells, inconsistent header labels. The pipeline here
// is deliberately forgiving - a malformed row is reported and skipped, never
// fatal to the batch.
package csvimport

import "strings"

// Tokenize splits raw CSV text into rows of trimmed cells. Lines are split
// on \n (a trailing \r is stripped) and fully blank lines are dropped.
// Commas inside a double-quote pair do not split cells; escaped quotes are
// not supported.
func Tokenize(text string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, splitLine(line))
	}
	return rows
}

func splitLine(line string) []string {
	var cells []string
	var cell strings.Builder
	inQuotes := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}
