package semdex

import (
	"context"
	"fmt"

	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
	"github.com/kailas-cloud/semdex/internal/domain/search/request"
)

// SearchBuilder is a fluent builder for search queries.
type SearchBuilder struct {
	client *Client

	query       string
	filters     map[string]any
	topK        int
	rerank      bool
	rerankTopK  int
	decay       bool
	decayFactor float64
}

// Where adds an exact-match metadata filter. Multiple filters AND.
func (b *SearchBuilder) Where(key string, value any) *SearchBuilder {
	if b.filters == nil {
		b.filters = make(map[string]any)
	}
	b.filters[key] = value
	return b
}

// TopK sets the maximum number of results.
func (b *SearchBuilder) TopK(n int) *SearchBuilder {
	b.topK = n
	return b
}

// Rerank enables the lexical title-boost stage, shrinking the result
// set to n (0 uses the default).
func (b *SearchBuilder) Rerank(n int) *SearchBuilder {
	b.rerank = true
	b.rerankTopK = n
	return b
}

// WithDecay enables exponential time decay at the given per-day rate
// (0 uses the default).
func (b *SearchBuilder) WithDecay(factor float64) *SearchBuilder {
	b.decay = true
	b.decayFactor = factor
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) ([]SearchResult, error) {
	var filters map[string]domdoc.Value
	if len(b.filters) > 0 {
		parsed, err := domdoc.MetadataFromJSON(b.filters)
		if err != nil {
			return nil, fmt.Errorf("parse filters: %w", err)
		}
		filters = parsed
	}

	req, err := request.New(
		b.query, filters, b.topK,
		b.rerank, b.rerankTopK,
		b.decay, b.decayFactor,
	)
	if err != nil {
		return nil, err
	}

	results, err := b.client.searcher.Search(ctx, &req)
	if err != nil {
		return nil, err
	}
	return resultsOut(results), nil
}
