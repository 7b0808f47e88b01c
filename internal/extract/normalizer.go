package extract

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"todoflow-backend/pkg/metrics"
)

// Normalizer turns raw user input into the canonical task phrase. One remote
// attempt under a bounded timeout; any remote failure silently falls back to
// the rule extractor, so task creation never fails on the remote dependency.
type Normalizer struct {
	remote   Extractor
	fallback *RuleExtractor
	timeout  time.Duration
	log      *zap.Logger
}

func NewNormalizer(remote Extractor, fallback *RuleExtractor, timeout time.Duration, log *zap.Logger) *Normalizer {
	return &Normalizer{
		remote:   remote,
		fallback: fallback,
		timeout:  timeout,
		log:      log,
	}
}

func (n *Normalizer) Normalize(ctx context.Context, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyInput
	}

	start := time.Now()
	defer func() {
		metrics.ExtractionLatency.Observe(time.Since(start).Seconds())
	}()

	if n.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, n.timeout)
		phrase, err := n.remote.Extract(rctx, trimmed)
		cancel()

		if err == nil && strings.TrimSpace(phrase) != "" {
			return strings.TrimSpace(phrase), nil
		}
		if err != nil {
			n.log.Warn("remote extraction failed, using fallback", zap.Error(err))
		}
	}

	metrics.ExtractionCount.WithLabelValues("fallback").Inc()

	phrase := n.fallback.Strip(trimmed)
	if phrase == "" {
		// extraction must never yield an empty task
		phrase = trimmed
	}
	return phrase, nil
}
