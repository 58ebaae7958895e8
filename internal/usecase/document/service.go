package document

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/semdex/internal/domain"
	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
	domver "github.com/kailas-cloud/semdex/internal/domain/version"
	"github.com/kailas-cloud/semdex/internal/metrics"
	docrepo "github.com/kailas-cloud/semdex/internal/repository/document"
)

// generatedIDLength is the length of server-generated document ids.
const generatedIDLength = 12

// Service handles document CRUD with automatic embedding and version
// capture. Embedding policy lives here, not in the store: the repository
// only ever sees finished documents.
type Service struct {
	repo            Repository
	versions        VersionLog
	embed           domain.Embedder
	maxContentSize  int
	embeddingDim    int
	defaultPageSize int
	maxPageSize     int
}

// New creates a document service.
func New(repo Repository, versions VersionLog, embed domain.Embedder, maxContentSize, embeddingDim int) *Service {
	return &Service{
		repo:            repo,
		versions:        versions,
		embed:           embed,
		maxContentSize:  maxContentSize,
		embeddingDim:    embeddingDim,
		defaultPageSize: 20,
		maxPageSize:     100,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// Index creates or replaces a document. An empty id means "generate one".
// The embedding is recomputed from the submitted content on every call and
// a version snapshot is appended. Returns the stored document and whether
// it was created (vs updated).
func (s *Service) Index(
	ctx context.Context, id, title, content string, metadata map[string]domdoc.Value,
) (domdoc.Document, bool, error) {
	if id == "" {
		id = newDocumentID()
	}

	doc, err := domdoc.New(id, title, content, metadata, s.maxContentSize)
	if err != nil {
		return domdoc.Document{}, false, err
	}

	result, err := s.embed.Embed(ctx, doc.Content())
	if err != nil {
		return domdoc.Document{}, false, fmt.Errorf("vectorize document: %w", err)
	}
	if s.embeddingDim > 0 && len(result.Embedding) != s.embeddingDim {
		return domdoc.Document{}, false, fmt.Errorf(
			"embedding has %d components, want %d: %w",
			len(result.Embedding), s.embeddingDim, domain.ErrVectorDimMismatch,
		)
	}
	doc.SetEmbedding(result.Embedding)

	created := s.repo.Upsert(ctx, &doc)
	s.versions.Create(ctx, doc.ID(), doc.Content(), nil)
	metrics.DocumentsIndexed.Inc()

	return doc, created, nil
}

// Get retrieves a document by id.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns documents in stable store order.
func (s *Service) List(ctx context.Context, limit, offset int) []domdoc.Document {
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}
	return s.repo.List(ctx, limit, offset)
}

// Delete removes a document. Version history is retained.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Stats returns store-level counters.
func (s *Service) Stats(ctx context.Context) docrepo.Stats {
	return s.repo.Stats(ctx)
}

// Versions returns the full version history of a document.
func (s *Service) Versions(ctx context.Context, docID string) []domver.Version {
	return s.versions.List(ctx, docID)
}

// Version returns one version by 1-based number.
func (s *Service) Version(ctx context.Context, docID string, n int) (domver.Version, error) {
	v, err := s.versions.Get(ctx, docID, n)
	if err != nil {
		return domver.Version{}, fmt.Errorf("get version: %w", err)
	}
	return v, nil
}

// LatestVersion returns the newest version of a document.
func (s *Service) LatestVersion(ctx context.Context, docID string) (domver.Version, error) {
	v, err := s.versions.Latest(ctx, docID)
	if err != nil {
		return domver.Version{}, fmt.Errorf("latest version: %w", err)
	}
	return v, nil
}

// newDocumentID generates an opaque, content-independent id.
func newDocumentID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:generatedIDLength]
}
