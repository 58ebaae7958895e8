// Package history aggregates the retained search log into recent,
// popular, and summary views.
package history

import (
	"context"
	"sort"

	domhist "github.com/kailas-cloud/semdex/internal/domain/history"
)

// DefaultRecentLimit bounds a recent-searches page when the caller
// leaves the limit unset.
const DefaultRecentLimit = 10

// Service computes analytics over the search history.
type Service struct {
	log Log
}

// New creates a history service.
func New(log Log) *Service { return &Service{log: log} }

// Recent returns the last limit searches in chronological order.
func (s *Service) Recent(ctx context.Context, limit int) []domhist.Entry {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.log.Recent(ctx, limit)
}

// Popular returns the most frequent queries in the retained history.
// Ties keep first-seen order.
func (s *Service) Popular(ctx context.Context, limit int) []domhist.QueryCount {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	counts := make(map[string]int)
	var order []string
	for _, e := range s.log.All(ctx) {
		if counts[e.Query()] == 0 {
			order = append(order, e.Query())
		}
		counts[e.Query()]++
	}

	out := make([]domhist.QueryCount, 0, len(order))
	for _, q := range order {
		out = append(out, domhist.QueryCount{Query: q, Count: counts[q]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Stats summarizes the retained history. An empty log yields zeroes.
func (s *Service) Stats(ctx context.Context) domhist.Stats {
	entries := s.log.All(ctx)
	if len(entries) == 0 {
		return domhist.Stats{}
	}

	unique := make(map[string]struct{}, len(entries))
	total := 0
	for _, e := range entries {
		unique[e.Query()] = struct{}{}
		total += e.ResultsCount()
	}
	return domhist.Stats{
		TotalSearches:  len(entries),
		UniqueQueries:  len(unique),
		AverageResults: float64(total) / float64(len(entries)),
	}
}
