package request

import "github.com/kailas-cloud/semdex/internal/domain/document"

// SimilarRequest is a validated "find similar documents" query.
type SimilarRequest struct {
	filters map[string]document.Value
	topK    int
}

// NewSimilar normalizes similar-request parameters using the package
// defaults.
func NewSimilar(filters map[string]document.Value, topK int) SimilarRequest {
	return Defaults{}.NewSimilar(filters, topK)
}

// NewSimilar normalizes similar-request parameters, drawing an unset
// topK from the configured defaults.
func (d Defaults) NewSimilar(filters map[string]document.Value, topK int) SimilarRequest {
	if topK <= 0 {
		topK = d.topKOrDefault()
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	return SimilarRequest{filters: filters, topK: topK}
}

// Filters returns the exact-match metadata filters.
func (r *SimilarRequest) Filters() map[string]document.Value { return r.filters }

// TopK returns the maximum results to return.
func (r *SimilarRequest) TopK() int { return r.topK }
