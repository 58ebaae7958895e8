package document

import (
	"context"

	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
	domver "github.com/kailas-cloud/semdex/internal/domain/version"
	docrepo "github.com/kailas-cloud/semdex/internal/repository/document"
)

// Repository is the storage contract for document CRUD.
type Repository interface {
	Upsert(ctx context.Context, doc *domdoc.Document) (created bool)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	List(ctx context.Context, limit, offset int) []domdoc.Document
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) int
	Stats(ctx context.Context) docrepo.Stats
}

// VersionLog is the append-only version history contract.
type VersionLog interface {
	Create(ctx context.Context, docID, content string, metadata map[string]string) domver.Version
	List(ctx context.Context, docID string) []domver.Version
	Latest(ctx context.Context, docID string) (domver.Version, error)
	Get(ctx context.Context, docID string, n int) (domver.Version, error)
}
