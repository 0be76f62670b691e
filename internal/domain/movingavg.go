package domain

import (
	"sort"
	"time"
)

// MovingAveragePoint carries a weight point plus its trailing-window mean.
// MovingAverage is nil while there is insufficient trailing history.
type MovingAveragePoint struct {
	Date          time.Time
	Weight        float64
	MovingAverage *float64
}

// MovingAverage computes a trailing windowSize-point arithmetic mean over
// the series. Input is sorted ascending by date first; the sort is stable
// so same-day points keep their input order. The first windowSize-1 points
// have no average. Pure function; the input slice is not modified.
func MovingAverage(points []WeightPoint, windowSize int) []MovingAveragePoint {
	sorted := make([]WeightPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := make([]MovingAveragePoint, len(sorted))
	for i, p := range sorted {
		out[i] = MovingAveragePoint{Date: p.Date, Weight: p.Weight}
		if windowSize < 1 || i < windowSize-1 {
			continue
		}
		var sum float64
		for j := i - windowSize + 1; j <= i; j++ {
			sum += sorted[j].Weight
		}
		avg := sum / float64(windowSize)
		out[i].MovingAverage = &avg
	}
	return out
}
