package request

import (
	"fmt"

	"github.com/kailas-cloud/semdex/internal/domain"
	"github.com/kailas-cloud/semdex/internal/domain/document"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopK    = 10
	MaxTopK        = 500
	// DefaultRerankTopK is how far the rerank stage shrinks the result set
	// unless the caller asks otherwise.
	DefaultRerankTopK = 5
	// DefaultDecayFactor is the exponential time-decay rate per day of age.
	DefaultDecayFactor = 0.1
)

// Request is a validated search query.
type Request struct {
	query       string
	filters     map[string]document.Value
	topK        int
	rerank      bool
	rerankTopK  int
	decay       bool
	decayFactor float64
}

// Defaults supplies operator-configured fallbacks for parameters the
// caller leaves unset. Zero fields fall back to the package constants.
type Defaults struct {
	TopK        int
	RerankTopK  int
	DecayFactor float64
}

func (d Defaults) topKOrDefault() int {
	if d.TopK > 0 {
		return d.TopK
	}
	return DefaultTopK
}

func (d Defaults) rerankTopKOrDefault() int {
	if d.RerankTopK > 0 {
		return d.RerankTopK
	}
	return DefaultRerankTopK
}

func (d Defaults) decayFactorOrDefault() float64 {
	if d.DecayFactor > 0 {
		return d.DecayFactor
	}
	return DefaultDecayFactor
}

// New validates and normalizes search parameters using the package
// defaults: topK=10, rerankTopK=5, decayFactor=0.1.
func New(
	query string,
	filters map[string]document.Value,
	topK int,
	rerank bool, rerankTopK int,
	decay bool, decayFactor float64,
) (Request, error) {
	return Defaults{}.New(query, filters, topK, rerank, rerankTopK, decay, decayFactor)
}

// New validates and normalizes search parameters, drawing unset values
// from the configured defaults.
func (d Defaults) New(
	query string,
	filters map[string]document.Value,
	topK int,
	rerank bool, rerankTopK int,
	decay bool, decayFactor float64,
) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required: %w", domain.ErrValidation)
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrValidation)
	}
	if topK <= 0 {
		topK = d.topKOrDefault()
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	if rerankTopK <= 0 {
		rerankTopK = d.rerankTopKOrDefault()
	}
	if rerankTopK > topK {
		rerankTopK = topK
	}
	if decayFactor <= 0 {
		decayFactor = d.decayFactorOrDefault()
	}

	return Request{
		query:       query,
		filters:     filters,
		topK:        topK,
		rerank:      rerank,
		rerankTopK:  rerankTopK,
		decay:       decay,
		decayFactor: decayFactor,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Filters returns the exact-match metadata filters (AND across keys).
func (r *Request) Filters() map[string]document.Value { return r.filters }

// TopK returns the maximum results to return.
func (r *Request) TopK() int { return r.topK }

// Rerank reports whether the lexical title-boost stage is enabled.
func (r *Request) Rerank() bool { return r.rerank }

// RerankTopK returns the result count after the rerank stage.
func (r *Request) RerankTopK() int { return r.rerankTopK }

// Decay reports whether the time-decay stage is enabled.
func (r *Request) Decay() bool { return r.decay }

// DecayFactor returns the per-day exponential decay rate.
func (r *Request) DecayFactor() float64 { return r.decayFactor }
