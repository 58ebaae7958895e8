package health

import "context"

// IndexReader reports the size of the in-memory index.
type IndexReader interface {
	Count(ctx context.Context) int
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
