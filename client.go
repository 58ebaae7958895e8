// Package semdex embeds the semantic index as a library: the same
// in-memory engine the HTTP server runs, without the server.
package semdex

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/domain"
	dombatch "github.com/kailas-cloud/semdex/internal/domain/batch"
	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
	"github.com/kailas-cloud/semdex/internal/domain/search/request"
	"github.com/kailas-cloud/semdex/internal/domain/search/result"
	"github.com/kailas-cloud/semdex/internal/embedding/hash"
	docrepo "github.com/kailas-cloud/semdex/internal/repository/document"
	histrepo "github.com/kailas-cloud/semdex/internal/repository/history"
	verrepo "github.com/kailas-cloud/semdex/internal/repository/version"
	batchuc "github.com/kailas-cloud/semdex/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/semdex/internal/usecase/document"
	historyuc "github.com/kailas-cloud/semdex/internal/usecase/history"
	searchuc "github.com/kailas-cloud/semdex/internal/usecase/search"
)

// Sentinel errors surfaced to SDK callers.
var (
	ErrValidation       = domain.ErrValidation
	ErrDocumentNotFound = domain.ErrDocumentNotFound
	ErrVersionNotFound  = domain.ErrVersionNotFound
	ErrContentTooLarge  = domain.ErrContentTooLarge
)

type options struct {
	embedder        domain.Embedder
	maxDocumentSize int
	historyCapacity int
	threshold       float64
	maxBatchSize    int
	logger          *zap.Logger
}

// Option configures the embedded index.
type Option func(*options)

// WithEmbedder replaces the default hash embedder.
func WithEmbedder(e domain.Embedder) Option {
	return func(o *options) { o.embedder = e }
}

// WithMaxDocumentSize caps document content length in bytes.
func WithMaxDocumentSize(n int) Option {
	return func(o *options) { o.maxDocumentSize = n }
}

// WithHistoryCapacity bounds the retained search history.
func WithHistoryCapacity(n int) Option {
	return func(o *options) { o.historyCapacity = n }
}

// WithSimilarityThreshold drops search results scoring below t.
func WithSimilarityThreshold(t float64) Option {
	return func(o *options) { o.threshold = t }
}

// WithMaxBatchSize caps the number of items in one batch call.
func WithMaxBatchSize(n int) Option {
	return func(o *options) { o.maxBatchSize = n }
}

// WithLogger attaches a zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Client is the embedded semdex entry point.
type Client struct {
	docs      *documentuc.Service
	searcher  *searchuc.Service
	batch     *batchuc.Service
	analytics *historyuc.Service
}

// New builds an embedded index. Defaults: hash embedder, unlimited
// content size, history of 100 queries.
func New(opts ...Option) *Client {
	o := options{
		embedder: hash.New(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	dim := hash.Dimensions
	repo := docrepo.New()
	history := histrepo.New(o.historyCapacity)

	docSvc := documentuc.New(repo, verrepo.New(), o.embedder, o.maxDocumentSize, dim)
	searchSvc := searchuc.New(repo, o.embedder, history).WithThreshold(o.threshold)
	batchSvc := batchuc.New(docSvc)
	if o.maxBatchSize > 0 {
		batchSvc.WithMaxItems(o.maxBatchSize)
	}

	return &Client{
		docs:      docSvc,
		searcher:  searchSvc,
		batch:     batchSvc,
		analytics: historyuc.New(history),
	}
}

// Index stores a document and computes its embedding. An empty id asks
// the index to generate one. Returns the stored document and whether it
// was newly created.
func (c *Client) Index(
	ctx context.Context, id, title, content string, metadata map[string]any,
) (Document, bool, error) {
	md, err := domdoc.MetadataFromJSON(metadata)
	if err != nil {
		return Document{}, false, fmt.Errorf("parse metadata: %w", err)
	}
	doc, created, err := c.docs.Index(ctx, id, title, content, md)
	if err != nil {
		return Document{}, false, err
	}
	return documentOut(&doc), created, nil
}

// Get returns a stored document by id.
func (c *Client) Get(ctx context.Context, id string) (Document, error) {
	doc, err := c.docs.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}
	return documentOut(&doc), nil
}

// Delete removes a document. Its version history is retained.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.docs.Delete(ctx, id)
}

// List returns a page of documents in insertion order.
func (c *Client) List(ctx context.Context, limit, offset int) []Document {
	docs := c.docs.List(ctx, limit, offset)
	out := make([]Document, len(docs))
	for i := range docs {
		out[i] = documentOut(&docs[i])
	}
	return out
}

// Versions returns the full version history of a document, oldest first.
func (c *Client) Versions(ctx context.Context, id string) []Version {
	versions := c.docs.Versions(ctx, id)
	out := make([]Version, len(versions))
	for i, v := range versions {
		out[i] = Version{Number: v.Number(), Content: v.Content(), CreatedAt: v.CreatedAt()}
	}
	return out
}

// Version returns one version of a document (1-indexed).
func (c *Client) Version(ctx context.Context, id string, n int) (Version, error) {
	v, err := c.docs.Version(ctx, id, n)
	if err != nil {
		return Version{}, err
	}
	return Version{Number: v.Number(), Content: v.Content(), CreatedAt: v.CreatedAt()}, nil
}

// Search starts a fluent search over the index.
func (c *Client) Search(query string) *SearchBuilder {
	return &SearchBuilder{client: c, query: query}
}

// Similar returns documents ranked against the embedding of the given
// one, excluding it.
func (c *Client) Similar(ctx context.Context, id string, topK int) ([]SearchResult, error) {
	req := request.NewSimilar(nil, topK)
	results, err := c.searcher.Similar(ctx, id, &req)
	if err != nil {
		return nil, err
	}
	return resultsOut(results), nil
}

// BatchIndex indexes many documents with per-item error isolation.
func (c *Client) BatchIndex(ctx context.Context, docs []BatchDocument) (IndexReport, error) {
	items := make([]batchuc.IndexItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, batchuc.IndexItem{ID: d.ID, Title: d.Title, Content: d.Content, Metadata: d.Metadata})
	}

	report, err := c.batch.Index(ctx, items)
	if err != nil {
		return IndexReport{}, err
	}
	return IndexReport{
		Success: report.Success,
		Failed:  failuresOut(report.Failed),
		Total:   report.Total,
	}, nil
}

// BatchUpdate applies partial updates with per-item error isolation.
// Updates never create documents.
func (c *Client) BatchUpdate(ctx context.Context, updates []BatchUpdate) (UpdateReport, error) {
	items := make([]batchuc.UpdateItem, 0, len(updates))
	for _, u := range updates {
		items = append(items, batchuc.UpdateItem{ID: u.ID, Title: u.Title, Content: u.Content, Metadata: u.Metadata})
	}

	report, err := c.batch.Update(ctx, items)
	if err != nil {
		return UpdateReport{}, err
	}
	return UpdateReport{
		Updated: report.Updated,
		Failed:  failuresOut(report.Failed),
		Total:   report.Total,
	}, nil
}

// BatchDelete removes many documents, partitioning ids into deleted and
// not found.
func (c *Client) BatchDelete(ctx context.Context, ids []string) (DeleteReport, error) {
	report, err := c.batch.Delete(ctx, ids)
	if err != nil {
		return DeleteReport{}, err
	}
	return DeleteReport{
		Deleted:  report.Deleted,
		NotFound: report.NotFound,
		Total:    report.Total,
	}, nil
}

// History returns the most recent searches in chronological order.
func (c *Client) History(ctx context.Context, limit int) []HistoryEntry {
	entries := c.analytics.Recent(ctx, limit)
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntry{
			Query:        e.Query(),
			ResultsCount: e.ResultsCount(),
			Timestamp:    e.Timestamp(),
		}
	}
	return out
}

// Popular returns the most frequent queries in the retained history.
func (c *Client) Popular(ctx context.Context, limit int) []QueryCount {
	top := c.analytics.Popular(ctx, limit)
	out := make([]QueryCount, len(top))
	for i, q := range top {
		out[i] = QueryCount{Query: q.Query, Count: q.Count}
	}
	return out
}

// SearchStats summarizes the retained search history.
func (c *Client) SearchStats(ctx context.Context) SearchStats {
	s := c.analytics.Stats(ctx)
	return SearchStats{
		TotalSearches:  s.TotalSearches,
		UniqueQueries:  s.UniqueQueries,
		AverageResults: s.AverageResults,
	}
}

// Stats summarizes the index contents.
func (c *Client) Stats(ctx context.Context) IndexStats {
	s := c.docs.Stats(ctx)
	return IndexStats{
		TotalDocuments: s.TotalDocuments,
		Categories:     s.Categories,
		CategoryList:   s.CategoryList,
	}
}

func documentOut(doc *domdoc.Document) Document {
	return Document{
		ID:        doc.ID(),
		Title:     doc.Title(),
		Content:   doc.Content(),
		Metadata:  metadataOut(doc.Metadata()),
		CreatedAt: doc.CreatedAt(),
		UpdatedAt: doc.UpdatedAt(),
	}
}

func resultsOut(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		out[i] = SearchResult{
			ID:       r.DocumentID(),
			Title:    r.Title(),
			Content:  r.Content(),
			Score:    r.Score(),
			Metadata: metadataOut(r.Metadata()),
		}
	}
	return out
}

func metadataOut(md map[string]domdoc.Value) map[string]any {
	if len(md) == 0 {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, v := range md {
		switch v.Kind() {
		case domdoc.KindNumber:
			out[k] = v.Num()
		case domdoc.KindBool:
			out[k] = v.IsTrue()
		default:
			out[k] = v.Str()
		}
	}
	return out
}

func failuresOut(failures []dombatch.Failure) []BatchFailure {
	out := make([]BatchFailure, len(failures))
	for i, f := range failures {
		out[i] = BatchFailure{ID: f.ID(), Err: f.Err()}
	}
	return out
}
