// Package cache wraps an embedder with an in-process LRU so repeated text
// (hot queries, re-indexed documents) skips the inner embedder.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/domain"
	"github.com/kailas-cloud/semdex/internal/metrics"
)

// CachedEmbedder is a caching decorator around domain.Embedder.
type CachedEmbedder struct {
	inner  domain.Embedder
	lru    *expirable.LRU[string, []float64]
	logger *zap.Logger
}

// New creates the caching decorator. ttl <= 0 means entries never expire.
func New(inner domain.Embedder, size int, ttl time.Duration, logger *zap.Logger) *CachedEmbedder {
	return &CachedEmbedder{
		inner:  inner,
		lru:    expirable.NewLRU[string, []float64](size, nil, ttl),
		logger: logger,
	}
}

// Embed returns a cached embedding or calls the inner embedder.
// Cache hits report zero tokens: nothing was consumed.
func (c *CachedEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	key := cacheKey(text)

	if vec, ok := c.lru.Get(key); ok {
		metrics.EmbeddingCacheTotal.WithLabelValues("hit").Inc()
		return domain.EmbeddingResult{Embedding: cloneVector(vec)}, nil
	}
	metrics.EmbeddingCacheTotal.WithLabelValues("miss").Inc()

	result, err := c.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed text: %w", err)
	}

	c.lru.Add(key, cloneVector(result.Embedding))
	c.logger.Debug("embedding cached", zap.Int("cache_len", c.lru.Len()))
	return result, nil
}

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

func cloneVector(v []float64) []float64 {
	if len(v) == 0 {
		return nil
	}
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
