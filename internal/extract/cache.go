package extract

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"todoflow-backend/pkg/metrics"
)

const cachePrefix = "extract:"

// CachedExtractor memoizes extraction results in redis so identical inputs
// don't repeat the remote call. Cache failures are treated as misses.
type CachedExtractor struct {
	inner Extractor
	rdb   *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedExtractor(inner Extractor, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CachedExtractor {
	return &CachedExtractor{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   log,
	}
}

func (c *CachedExtractor) Extract(ctx context.Context, raw string) (string, error) {
	key := cachePrefix + strings.ToLower(strings.TrimSpace(raw))

	if phrase, err := c.rdb.Get(ctx, key).Result(); err == nil && phrase != "" {
		metrics.ExtractionCount.WithLabelValues("cache").Inc()
		return phrase, nil
	}

	phrase, err := c.inner.Extract(ctx, raw)
	if err != nil {
		return "", err
	}

	if err := c.rdb.Set(ctx, key, phrase, c.ttl).Err(); err != nil {
		c.log.Warn("extract cache set failed", zap.Error(err))
	}

	return phrase, nil
}
