package csvimport

import "strings"

// Columns maps the semantic CSV columns to their detected indexes.
type Columns struct {
	Date          int
	Weight        int
	MovingAverage int
}

// DetectColumns inspects the header row and maps each semantic column by
// case-insensitive substring match. Roles that stay unmatched fall back to
// positional defaults (date 0, weight 1, moving average 2), so a headerless
// or oddly labelled file still gets a positional parse attempt instead of a
// hard failure.
func DetectColumns(header []string) Columns {
	cols := Columns{Date: 0, Weight: 1, MovingAverage: 2}

	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if strings.Contains(lh, "date") || lh == "day" {
			cols.Date = i
			break
		}
	}

	weightIdx := -1
	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if strings.Contains(lh, "weight") && strings.Contains(lh, "record") {
			weightIdx = i
			break
		}
	}
	if weightIdx < 0 {
		for i, h := range header {
			if strings.ToLower(strings.TrimSpace(h)) == "weight" {
				weightIdx = i
				break
			}
		}
	}
	if weightIdx >= 0 {
		cols.Weight = weightIdx
	}

	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if strings.Contains(lh, "moving") || strings.Contains(lh, "average") || strings.Contains(lh, "avg") {
			cols.MovingAverage = i
			break
		}
	}

	return cols
}
