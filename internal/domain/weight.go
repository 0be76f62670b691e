// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// WeightLog is a single persisted weight measurement for a user, keyed by
// calendar day. Imports and manual logging both create these; nothing in the
// system updates existing logs.
type WeightLog struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Weight    float64   `json:"weight"`
	Unit      string    `json:"unit"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeightPoint is a date/weight pair consumed by trend computations.
type WeightPoint struct {
	Date   time.Time
	Weight float64
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	CreateWeightLog(ctx context.Context, userID int64, weight float64, unit string, date time.Time, notes string) (int64, error)
	ListWeightDates(ctx context.Context, userID int64) ([]time.Time, error)
	ListWeightsSince(ctx context.Context, userID int64, since time.Time) ([]WeightPoint, error)
	ListRecentWeightLogs(ctx context.Context, userID int64, limit int) ([]WeightLog, error)
	DeleteLatestWeightLog(ctx context.Context, userID int64) (bool, error)
}
