package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/provider"
)

// InsightService asks the configured LLM backend for a short plain-language
// summary of the user's recent weight trend.
type InsightService struct {
	progress *ProgressService
	llm      provider.LLM
	log      *zap.Logger
}

// NewInsightService creates an InsightService over the given progress
// source and LLM backend.
func NewInsightService(progress *ProgressService, llm provider.LLM, log *zap.Logger) *InsightService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InsightService{progress: progress, llm: llm, log: log}
}

// Insight is the generated summary plus the backend that produced it.
type Insight struct {
	Summary  string `json:"summary"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// WeightInsight summarizes the last days of weight history.
func (s *InsightService) WeightInsight(ctx context.Context, userID int64, days int) (*Insight, error) {
	prog, err := s.progress.GetProgress(ctx, userID, days, 7)
	if err != nil {
		return nil, err
	}

	insight := &Insight{Provider: s.llm.Name(), Model: s.llm.Model()}
	if len(prog.Data) == 0 {
		insight.Summary = "No weight data recorded in this period yet."
		return insight, nil
	}

	out, err := s.llm.Complete(ctx, provider.CompletionParams{
		Messages: []provider.Message{
			{Role: "system", Content: "You are a concise health-tracking assistant. Reply in two sentences, no medical advice."},
			{Role: "user", Content: buildTrendPrompt(prog, days)},
		},
		Temperature: 0.2,
		MaxTokens:   300,
	})
	if err != nil {
		s.log.Warn("insight completion failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("generate insight: %w", err)
	}

	insight.Summary = strings.TrimSpace(out)
	return insight, nil
}

func buildTrendPrompt(prog *Progress, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this %d-day weight trend for the user.\n", days)
	st := prog.Stats
	if st.StartWeight != nil && st.CurrentWeight != nil {
		fmt.Fprintf(&b, "Start: %.1f, current: %.1f, change: %.1f (%.1f%%).\n",
			*st.StartWeight, *st.CurrentWeight, *st.Change, *st.ChangePercent)
	}
	if st.MinWeight != nil {
		fmt.Fprintf(&b, "Min: %.1f, max: %.1f, average: %.1f.\n",
			*st.MinWeight, *st.MaxWeight, *st.AvgWeight)
	}
	fmt.Fprintf(&b, "Data points: %d.", len(prog.Data))
	return b.String()
}
