// Package version keeps per-document append-only version logs. Logs are
// keyed by document id as a weak back-reference; deleting a document does
// not touch its history.
package version

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/semdex/internal/domain"
	domver "github.com/kailas-cloud/semdex/internal/domain/version"
)

// Repo owns the version logs. A single mutex guards the map; versions are
// never mutated or removed once appended.
type Repo struct {
	mu       sync.RWMutex
	versions map[string][]domver.Version
	now      func() time.Time
}

// New creates an empty version store.
func New() *Repo {
	return &Repo{
		versions: make(map[string][]domver.Version),
		now:      time.Now,
	}
}

// WithClock replaces the timestamp source (tests).
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

// Create appends version N+1 for the document, where N is the current max
// (0 if none exist). Never overwrites.
func (r *Repo) Create(_ context.Context, docID, content string, metadata map[string]string) domver.Version {
	r.mu.Lock()
	defer r.mu.Unlock()

	number := len(r.versions[docID]) + 1
	v := domver.New(docID, content, number, r.now(), metadata)
	r.versions[docID] = append(r.versions[docID], v)
	return v
}

// List returns all versions of a document in ascending order. An unknown
// document yields an empty slice, not an error.
func (r *Repo) List(_ context.Context, docID string) []domver.Version {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.versions[docID]
	out := make([]domver.Version, len(log))
	copy(out, log)
	return out
}

// Latest returns the newest version of a document.
func (r *Repo) Latest(_ context.Context, docID string) (domver.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.versions[docID]
	if len(log) == 0 {
		return domver.Version{}, fmt.Errorf("latest version of %q: %w", docID, domain.ErrVersionNotFound)
	}
	return log[len(log)-1], nil
}

// Get returns version n (1-indexed). Out-of-range n is a defined miss.
func (r *Repo) Get(_ context.Context, docID string, n int) (domver.Version, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log := r.versions[docID]
	if n < 1 || n > len(log) {
		return domver.Version{}, fmt.Errorf("version %d of %q: %w", n, docID, domain.ErrVersionNotFound)
	}
	return log[n-1], nil
}
