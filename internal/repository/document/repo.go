// Package document is the in-memory document store: the single source of
// truth for documents and the derived category index. All state is
// process-lifetime; there is no durable storage behind it.
package document

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kailas-cloud/semdex/internal/domain"
	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
)

// Stats is a snapshot of store-level counters.
type Stats struct {
	TotalDocuments int
	Categories     int
	CategoryList   []string
}

// Repo holds documents in a map plus an insertion-order slice so listing
// and scanning stay stable within a process run. A single mutex guards the
// containers; critical sections cover one mutation, never a request.
type Repo struct {
	mu    sync.RWMutex
	docs  map[string]domdoc.Document
	order []string
	// categories is a derived cache of observed metadata categories. It is
	// never pruned on delete: a category may outlive its last document.
	categories map[string]struct{}
	now        func() time.Time
}

// New creates an empty document store.
func New() *Repo {
	return &Repo{
		docs:       make(map[string]domdoc.Document),
		categories: make(map[string]struct{}),
		now:        time.Now,
	}
}

// WithClock replaces the timestamp source (tests).
func (r *Repo) WithClock(now func() time.Time) *Repo {
	r.now = now
	return r
}

// Upsert inserts or replaces a document. A new document gets created_at;
// a replaced one keeps its created_at and gets updated_at stamped.
// Returns true when the document was created.
func (r *Repo) Upsert(_ context.Context, doc *domdoc.Document) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.docs[doc.ID()]
	if exists {
		doc.SetTimestamps(existing.CreatedAt(), r.now())
	} else {
		doc.SetTimestamps(r.now(), time.Time{})
		r.order = append(r.order, doc.ID())
	}

	r.docs[doc.ID()] = *doc

	if cat, ok := doc.Category(); ok {
		r.categories[cat] = struct{}{}
	}
	return !exists
}

// Get returns a stored document by id.
func (r *Repo) Get(_ context.Context, id string) (domdoc.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return domdoc.Document{}, fmt.Errorf("get %q: %w", id, domain.ErrDocumentNotFound)
	}
	return doc, nil
}

// List returns documents in insertion order. An offset beyond the store
// size yields an empty slice, never an error.
func (r *Repo) List(_ context.Context, limit, offset int) []domdoc.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 {
		offset = 0
	}
	if offset >= len(r.order) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(r.order) {
		end = len(r.order)
	}

	out := make([]domdoc.Document, 0, end-offset)
	for _, id := range r.order[offset:end] {
		out = append(out, r.docs[id])
	}
	return out
}

// All returns a snapshot of every document in insertion order, for the
// search pipeline's linear scan.
func (r *Repo) All(_ context.Context) []domdoc.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domdoc.Document, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.docs[id])
	}
	return out
}

// Delete removes a document. The category index is intentionally left
// untouched (see Stats).
func (r *Repo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return fmt.Errorf("delete %q: %w", id, domain.ErrDocumentNotFound)
	}
	delete(r.docs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored documents.
func (r *Repo) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}

// Stats returns a snapshot of store counters. The category list is sorted
// for deterministic output and may include categories whose documents have
// all been deleted.
func (r *Repo) Stats(_ context.Context) Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]string, 0, len(r.categories))
	for c := range r.categories {
		list = append(list, c)
	}
	sort.Strings(list)

	return Stats{
		TotalDocuments: len(r.docs),
		Categories:     len(list),
		CategoryList:   list,
	}
}
