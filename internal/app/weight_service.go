package app

import (
	"context"
	"errors"
	"time"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/domain"
)

// WeightService encapsulates manual weight-logging use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// RecordWeight validates and stores a weight measurement for today.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, weight float64, unit, notes string) (*domain.WeightLog, error) {
	if weight <= 0 || weight > 1000 {
		return nil, errors.New("weight must be in (0, 1000]")
	}
	if unit != "kg" && unit != "lbs" {
		return nil, errors.New(`unit must be "kg" or "lbs"`)
	}

	now := time.Now().In(time.Local)
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	id, err := s.repo.CreateWeightLog(ctx, userID, weight, unit, date, notes)
	if err != nil {
		return nil, err
	}
	return &domain.WeightLog{
		ID:        id,
		UserID:    userID,
		Weight:    weight,
		Unit:      unit,
		Date:      date,
		Notes:     notes,
		CreatedAt: now,
	}, nil
}

// ListRecent returns the most recent weight logs up to limit.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error) {
	return s.repo.ListRecentWeightLogs(ctx, userID, limit)
}

// UndoLast deletes the most recently created weight log.
func (s *WeightService) UndoLast(ctx context.Context, userID int64) (bool, error) {
	return s.repo.DeleteLatestWeightLog(ctx, userID)
}
