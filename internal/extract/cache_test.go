package extract

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingExtractor struct {
	phrase string
	calls  int
}

func (c *countingExtractor) Extract(_ context.Context, _ string) (string, error) {
	c.calls++
	return c.phrase, nil
}

func setupCache(t *testing.T, inner Extractor, ttl time.Duration) (*CachedExtractor, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCachedExtractor(inner, rdb, ttl, zap.NewNop()), mr
}

func TestCachedExtractorMemoizes(t *testing.T) {
	inner := &countingExtractor{phrase: "buy milk"}
	c, _ := setupCache(t, inner, time.Hour)

	ctx := context.Background()

	got, err := c.Extract(ctx, "Need to buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got)
	assert.Equal(t, 1, inner.calls)

	got, err = c.Extract(ctx, "Need to buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got)
	assert.Equal(t, 1, inner.calls, "second call must hit the cache")

	// keys are case-insensitive on the input
	_, err = c.Extract(ctx, "  need TO BUY milk ")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedExtractorExpiry(t *testing.T) {
	inner := &countingExtractor{phrase: "buy milk"}
	c, mr := setupCache(t, inner, time.Minute)

	ctx := context.Background()

	_, err := c.Extract(ctx, "Need to buy milk")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = c.Extract(ctx, "Need to buy milk")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "expired entry must re-extract")
}

func TestCachedExtractorRedisDownIsAMiss(t *testing.T) {
	inner := &countingExtractor{phrase: "buy milk"}
	c, mr := setupCache(t, inner, time.Hour)
	mr.Close()

	got, err := c.Extract(context.Background(), "Need to buy milk")
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got)
	assert.Equal(t, 1, inner.calls)
}
