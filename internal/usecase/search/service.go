// Package search orchestrates the ranking pipeline:
// embed -> scan -> filter -> score -> rank -> rerank -> decay -> truncate.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/semdex/internal/domain"
	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
	"github.com/kailas-cloud/semdex/internal/domain/search/request"
	"github.com/kailas-cloud/semdex/internal/domain/search/result"
	"github.com/kailas-cloud/semdex/internal/metrics"
)

// Service runs searches against the document store.
type Service struct {
	docs      Scanner
	embed     domain.Embedder
	history   Recorder
	threshold float64
	now       func() time.Time
}

// New creates a search service.
func New(docs Scanner, embed domain.Embedder, history Recorder) *Service {
	return &Service{docs: docs, embed: embed, history: history, now: time.Now}
}

// WithThreshold drops results scoring below t before truncation.
// Zero means no filtering.
func (s *Service) WithThreshold(t float64) *Service {
	s.threshold = t
	return s
}

// WithClock replaces the time source (tests, time-decay determinism).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search executes the full pipeline and records the query in the history.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	start := time.Now()

	embRes, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	ranked, err := s.scoreCandidates(ctx, embRes.Embedding, req.Filters())
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	sortByScore(ranked)

	if req.Rerank() {
		boostByTitle(ranked, req.Query())
		sortByScore(ranked)
		if len(ranked) > req.RerankTopK() {
			ranked = ranked[:req.RerankTopK()]
		}
	}

	if req.Decay() {
		applyTimeDecay(ranked, req.DecayFactor(), s.now())
		sortByScore(ranked)
	}

	if len(ranked) > req.TopK() {
		ranked = ranked[:req.TopK()]
	}

	results := collect(ranked)
	s.history.Append(ctx, req.Query(), len(results), req.Filters())

	metrics.SearchesTotal.WithLabelValues("success").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	return results, nil
}

// Similar ranks every other stored document against the embedding of the
// given one. The reference document itself is excluded.
func (s *Service) Similar(
	ctx context.Context, docID string, req *request.SimilarRequest,
) ([]result.Result, error) {
	ref, err := s.docs.Get(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get reference document: %w", err)
	}

	ranked, err := s.scoreCandidates(ctx, ref.Embedding(), req.Filters())
	if err != nil {
		return nil, err
	}

	filtered := ranked[:0]
	for _, r := range ranked {
		if r.res.DocumentID() != docID {
			filtered = append(filtered, r)
		}
	}
	ranked = filtered

	sortByScore(ranked)
	if len(ranked) > req.TopK() {
		ranked = ranked[:req.TopK()]
	}
	return collect(ranked), nil
}

// scored pairs a projected result with the document creation time the
// decay stage needs.
type scored struct {
	res       result.Result
	createdAt time.Time
}

// scoreCandidates scans the store, applies metadata filters, and scores
// the survivors. Scores are rounded to the 4-decimal client precision
// before any ranking stage sees them.
func (s *Service) scoreCandidates(
	ctx context.Context, queryVec []float64, filters map[string]domdoc.Value,
) ([]scored, error) {
	candidates := s.docs.All(ctx)
	ranked := make([]scored, 0, len(candidates))

	for i := range candidates {
		doc := &candidates[i]
		if !doc.MatchesFilters(filters) {
			continue
		}

		sim, err := domain.Cosine(queryVec, doc.Embedding())
		if err != nil {
			return nil, fmt.Errorf("score document %q: %w", doc.ID(), err)
		}
		score := domain.RoundScore(sim)
		if s.threshold > 0 && score < s.threshold {
			continue
		}

		ranked = append(ranked, scored{
			res:       result.New(doc.ID(), doc.Title(), doc.Content(), score, doc.Metadata()),
			createdAt: doc.CreatedAt(),
		})
	}
	return ranked, nil
}

func collect(ranked []scored) []result.Result {
	out := make([]result.Result, len(ranked))
	for i, r := range ranked {
		out[i] = r.res
	}
	return out
}
