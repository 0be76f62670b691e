package app

import (
	"context"
	"math"
	"time"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/domain"
)

// SeriesPoint is one chart-ready point of the progress series.
type SeriesPoint struct {
	Date          string   `json:"date"`
	Weight        float64  `json:"weight"`
	MovingAverage *float64 `json:"movingAverage"`
}

// TrendStats summarizes the visible window. Every field is nil when no
// data falls inside the window.
type TrendStats struct {
	StartWeight   *float64 `json:"startWeight"`
	CurrentWeight *float64 `json:"currentWeight"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
	MinWeight     *float64 `json:"minWeight"`
	MaxWeight     *float64 `json:"maxWeight"`
	AvgWeight     *float64 `json:"avgWeight"`
}

// Progress is the chart series plus its summary statistics.
type Progress struct {
	Data  []SeriesPoint `json:"data"`
	Stats TrendStats    `json:"stats"`
}

// ProgressService builds chart data and trend statistics from persisted
// weight history.
type ProgressService struct {
	repo domain.WeightRepository
	now  func() time.Time
}

// NewProgressService creates a ProgressService backed by the given
// repository.
func NewProgressService(repo domain.WeightRepository) *ProgressService {
	return &ProgressService{repo: repo, now: time.Now}
}

// GetProgress returns the last days of weight history with a trailing
// moving average, plus statistics over that visible window.
//
// Lookback padding: windowSize-1 extra days are fetched and fed into the
// average so the first visible point already has a full window behind it;
// the padding itself is never returned and never counts toward the stats.
func (s *ProgressService) GetProgress(ctx context.Context, userID int64, days, windowSize int) (*Progress, error) {
	if days <= 0 {
		days = 90
	}
	if windowSize <= 0 {
		windowSize = 7
	}

	now := s.now().In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	visibleStart := today.AddDate(0, 0, -(days - 1))
	fetchStart := visibleStart.AddDate(0, 0, -(windowSize - 1))

	points, err := s.repo.ListWeightsSince(ctx, userID, fetchStart)
	if err != nil {
		return nil, err
	}

	series := domain.MovingAverage(points, windowSize)

	prog := &Progress{Data: make([]SeriesPoint, 0, len(series))}
	var visible []float64
	for _, p := range series {
		// Import does not clamp dates, so a future-dated row can exist;
		// the visible window is bounded on both ends.
		if p.Date.Before(visibleStart) || p.Date.After(today) {
			continue
		}
		sp := SeriesPoint{Date: p.Date.Format("2006-01-02"), Weight: round1(p.Weight)}
		if p.MovingAverage != nil {
			v := round1(*p.MovingAverage)
			sp.MovingAverage = &v
		}
		prog.Data = append(prog.Data, sp)
		visible = append(visible, p.Weight)
	}

	if len(visible) == 0 {
		return prog, nil
	}

	// Stats run over the full-precision visible weights; rounding happens
	// only at this reporting boundary.
	start := visible[0]
	current := visible[len(visible)-1]
	change := current - start
	pct := change / start * 100

	min, max, sum := visible[0], visible[0], 0.0
	for _, w := range visible {
		if w < min {
			min = w
		}
		if w > max {
			max = w
		}
		sum += w
	}
	avg := sum / float64(len(visible))

	prog.Stats = TrendStats{
		StartWeight:   rounded(start),
		CurrentWeight: rounded(current),
		Change:        rounded(change),
		ChangePercent: rounded(pct),
		MinWeight:     rounded(min),
		MaxWeight:     rounded(max),
		AvgWeight:     rounded(avg),
	}
	return prog, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func rounded(v float64) *float64 {
	r := round1(v)
	return &r
}
