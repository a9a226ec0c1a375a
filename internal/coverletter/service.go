package coverletter

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
	ErrEmptyLetter           = errors.New("generated cover letter is empty")
)

// Letter is a generated cover letter and its rendered PDF.
type Letter struct {
	Text  string
	PDF   []byte
	Pages int
}

// Service generates cover letters.
type Service struct {
	LLM llm.Client
}

// NewService constructs a Service.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client}
}

// Generate writes a cover letter for the CV and job description and renders it.
func (s *Service) Generate(ctx context.Context, cvText, jobDescription string) (Letter, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return Letter{}, ErrMissingJobDescription
	}
	if strings.TrimSpace(cvText) == "" {
		return Letter{}, ErrMissingCV
	}

	raw, err := s.LLM.Generate(ctx, llm.CoverLetterPrompt(cvText, jobDescription))
	if err != nil {
		return Letter{}, fmt.Errorf("generate cover letter: %w", err)
	}
	text := Sanitize(raw)
	if text == "" {
		return Letter{}, ErrEmptyLetter
	}

	pdf, pages, err := Render(text)
	if err != nil {
		return Letter{}, err
	}
	metrics.ObserveCoverLetter(pages)
	telemetry.Info("coverletter.rendered", map[string]any{
		"pages":      pages,
		"text_chars": len(text),
		"pdf_bytes":  len(pdf),
	})
	return Letter{Text: text, PDF: pdf, Pages: pages}, nil
}
