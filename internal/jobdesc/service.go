package jobdesc

import (
	"context"
	"strings"
	"time"

	"jobassist-backend/internal/shared/metrics"
	"jobassist-backend/internal/shared/telemetry"
)

// Source extracts a job description from a URL.
type Source interface {
	Extract(ctx context.Context, rawURL string) (string, error)
}

// Service fronts the extractor with an optional cache.
type Service struct {
	Source Source
	Cache  Cache
	TTL    time.Duration
}

// NewService constructs a Service. cache may be nil.
func NewService(src Source, cache Cache, ttl time.Duration) *Service {
	return &Service{Source: src, Cache: cache, TTL: ttl}
}

// Extract returns the job description at rawURL. Cache errors are logged
// and otherwise ignored.
func (s *Service) Extract(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if _, err := ValidateURL(rawURL); err != nil {
		return "", err
	}

	if s.Cache != nil {
		text, ok, err := s.Cache.Get(ctx, rawURL)
		if err != nil {
			telemetry.Warn("jobdesc.cache_get_failed", map[string]any{"error": err})
		} else if ok {
			metrics.IncJobDescExtracted(true)
			return text, nil
		}
	}

	text, err := s.Source.Extract(ctx, rawURL)
	if err != nil {
		metrics.IncJobDescFailed()
		return "", err
	}
	metrics.IncJobDescExtracted(false)

	if s.Cache != nil && s.TTL > 0 {
		if err := s.Cache.Set(ctx, rawURL, text, s.TTL); err != nil {
			telemetry.Warn("jobdesc.cache_set_failed", map[string]any{"error": err})
		}
	}
	return text, nil
}
