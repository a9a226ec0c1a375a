package llm

import (
	"context"
	"errors"
	"time"

	"jobassist-backend/internal/shared/metrics"
	"jobassist-backend/internal/shared/telemetry"
)

// Client produces a text completion for a single prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider is not configured")

// PlaceholderClient is used when no provider credentials are present.
type PlaceholderClient struct{}

// Generate returns ErrNotConfigured.
func (PlaceholderClient) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

// Instrumented records call latency and failures for any Client.
type Instrumented struct {
	Client   Client
	Provider string
	Model    string
}

// Generate delegates to the wrapped client.
func (i Instrumented) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := i.Client.Generate(ctx, prompt)
	elapsed := time.Since(start)
	metrics.ObserveLLMDuration(elapsed)
	if err != nil {
		telemetry.Error("llm.call_failed", map[string]any{
			"provider":    i.Provider,
			"model":       i.Model,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err,
		})
		return "", err
	}
	telemetry.Info("llm.call", map[string]any{
		"provider":     i.Provider,
		"model":        i.Model,
		"duration_ms":  elapsed.Milliseconds(),
		"prompt_chars": len(prompt),
		"output_chars": len(out),
	})
	return out, nil
}
