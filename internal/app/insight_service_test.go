package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/app"
	"github.com/Nicolas-Jorq/budget-app-sub002/internal/provider"
)

type failingLLM struct{ provider.Mock }

func (f *failingLLM) Complete(ctx context.Context, params provider.CompletionParams) (string, error) {
	return "", errors.New("backend down")
}

func TestWeightInsight_NoData(t *testing.T) {
	progress := app.NewProgressService(&mockWeightRepo{})
	svc := app.NewInsightService(progress, provider.NewMock(), zap.NewNop())

	got, err := svc.WeightInsight(context.Background(), 1, 30)
	require.NoError(t, err)
	assert.Equal(t, "Mock", got.Provider)
	assert.Contains(t, got.Summary, "No weight data")
}

func TestWeightInsight_UsesBackend(t *testing.T) {
	progress := app.NewProgressService(historyRepo(10, func(i int) float64 { return 180 - float64(i) }))
	llm := provider.NewMock()
	llm.Response = "Steady downward trend."
	svc := app.NewInsightService(progress, llm, zap.NewNop())

	got, err := svc.WeightInsight(context.Background(), 30, 30)
	require.NoError(t, err)
	assert.Equal(t, "Steady downward trend.", got.Summary)
	assert.Equal(t, "mock-v1", got.Model)
}

func TestWeightInsight_BackendFailure(t *testing.T) {
	progress := app.NewProgressService(historyRepo(10, func(i int) float64 { return 180 }))
	svc := app.NewInsightService(progress, &failingLLM{}, zap.NewNop())

	_, err := svc.WeightInsight(context.Background(), 1, 30)
	require.Error(t, err)
}
