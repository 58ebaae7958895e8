package search

import (
	"context"

	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
)

// Scanner supplies search candidates. Ranking scans every stored
// document linearly.
type Scanner interface {
	All(ctx context.Context) []domdoc.Document
	Get(ctx context.Context, id string) (domdoc.Document, error)
}

// Recorder appends executed queries to the search history.
type Recorder interface {
	Append(ctx context.Context, query string, resultsCount int, filters map[string]domdoc.Value)
}
