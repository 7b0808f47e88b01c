package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todoflow-backend/internal/ai"
	"todoflow-backend/pkg/metrics"
)

// ErrEmptyInput is returned for empty or whitespace-only submissions. It is
// the only extraction error callers ever see.
var ErrEmptyInput = errors.New("empty input")

// Extractor derives a short actionable phrase from free-text input.
// Two variants exist: remote model-backed and deterministic rule-based, so
// tests can substitute a stub for the live API.
type Extractor interface {
	Extract(ctx context.Context, raw string) (string, error)
}

// ModelExtractor delegates to the OpenAI client.
type ModelExtractor struct {
	client *ai.Client
}

func NewModelExtractor(client *ai.Client) *ModelExtractor {
	return &ModelExtractor{client: client}
}

func (m *ModelExtractor) Extract(ctx context.Context, raw string) (string, error) {
	phrase, err := m.client.Complete(ctx, ai.ExtractSystemPrompt, raw)
	if err != nil {
		return "", fmt.Errorf("model extract: %w", err)
	}

	phrase = strings.Trim(strings.TrimSpace(phrase), `"`)
	if phrase == "" {
		return "", fmt.Errorf("model extract: empty phrase")
	}

	metrics.ExtractionCount.WithLabelValues("remote").Inc()

	// stored examples are lower-case, keep remote output consistent
	return strings.ToLower(phrase), nil
}
