package history

import (
	"time"

	"github.com/kailas-cloud/semdex/internal/domain/document"
)

// DefaultCapacity is the bounded-FIFO capacity of the search history.
const DefaultCapacity = 100

// Entry is one recorded search query.
type Entry struct {
	query        string
	resultsCount int
	filters      map[string]document.Value
	timestamp    time.Time
}

// NewEntry records a search at the given time.
func NewEntry(query string, resultsCount int, filters map[string]document.Value, ts time.Time) Entry {
	return Entry{query: query, resultsCount: resultsCount, filters: filters, timestamp: ts}
}

// Query returns the search query text.
func (e Entry) Query() string { return e.query }

// ResultsCount returns how many results the search returned.
func (e Entry) ResultsCount() int { return e.resultsCount }

// Filters returns the filters the search ran with (possibly empty).
func (e Entry) Filters() map[string]document.Value { return e.filters }

// Timestamp returns when the search ran.
func (e Entry) Timestamp() time.Time { return e.timestamp }

// QueryCount is an aggregated popular-query row.
type QueryCount struct {
	Query string
	Count int
}

// Stats is an aggregate over the retained history.
type Stats struct {
	TotalSearches  int
	UniqueQueries  int
	AverageResults float64
}
