package batch

import (
	"context"

	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
)

// Documents is the document service surface the batch operations need.
type Documents interface {
	Index(ctx context.Context, id, title, content string, metadata map[string]domdoc.Value) (domdoc.Document, bool, error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	Delete(ctx context.Context, id string) error
}
