// Package history keeps a bounded FIFO log of past search queries,
// independent of document lifecycle.
package history

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/semdex/internal/domain/document"
	domhist "github.com/kailas-cloud/semdex/internal/domain/history"
)

// Repo owns the bounded search log. Insertion beyond capacity evicts the
// oldest entries first.
type Repo struct {
	mu      sync.RWMutex
	entries []domhist.Entry
	max     int
	now     func() time.Time
}

// New creates a history log with the given capacity (defaults to
// domhist.DefaultCapacity when max <= 0).
func New(max int) *Repo {
	if max <= 0 {
		max = domhist.DefaultCapacity
	}
	return &Repo{max: max, now: time.Now}
}

// WithClock replaces the timestamp source (tests).
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

// Append records a search, evicting the oldest entries past capacity.
func (r *Repo) Append(_ context.Context, query string, resultsCount int, filters map[string]document.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, domhist.NewEntry(query, resultsCount, filters, r.now()))
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

// Recent returns the last limit entries in chronological order.
func (r *Repo) Recent(_ context.Context, limit int) []domhist.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	tail := r.entries[len(r.entries)-limit:]
	out := make([]domhist.Entry, len(tail))
	copy(out, tail)
	return out
}

// All returns a snapshot of the retained history in chronological order.
func (r *Repo) All(_ context.Context) []domhist.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domhist.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of retained entries.
func (r *Repo) Len(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
