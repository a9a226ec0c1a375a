package optimizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobassist-backend/internal/llm"
	"jobassist-backend/internal/shared/metrics"
	"jobassist-backend/internal/shared/telemetry"
)

var (
	ErrMissingJobDescription = errors.New("job description is required")
	ErrMissingCV             = errors.New("cv text is required")
)

// Service runs the recommendation pipeline.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Optimize asks the model for CV edits and filters them against the job
// description. Unparseable model output degrades to the fallback placeholder.
func (s *Service) Optimize(ctx context.Context, cvText, jobDescription string) (Result, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Result{}, ErrMissingJobDescription
	}
	if strings.TrimSpace(cvText) == "" {
		return Result{}, ErrMissingCV
	}

	raw, err := s.LLM.Generate(ctx, llm.OptimizeCVPrompt(cvText, jobDescription))
	if err != nil {
		return Result{}, fmt.Errorf("generate recommendations: %w", err)
	}

	candidates, err := ParseRecommendations(raw)
	if err != nil {
		telemetry.Error("optimizer.parse_failed", map[string]any{
			"error":         err,
			"response_size": len(raw),
		})
		metrics.IncRecommendationsDegraded()
		return Result{Recommendations: []Recommendation{Fallback()}, Degraded: true}, nil
	}

	accepted := Validate(candidates, jobDescription)
	metrics.AddRecommendations(len(accepted), len(candidates)-len(accepted))
	telemetry.Info("optimizer.recommendations", map[string]any{
		"candidates": len(candidates),
		"accepted":   len(accepted),
	})
	return Result{Recommendations: accepted}, nil
}
