package semdex

import "time"

// Document is an indexed document as seen by SDK callers. Embeddings
// stay internal.
type Document struct {
	ID        string
	Title     string
	Content   string
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	ID       string
	Title    string
	Content  string
	Score    float64
	Metadata map[string]any
}

// Version is a document content snapshot.
type Version struct {
	Number    int
	Content   string
	CreatedAt time.Time
}

// BatchDocument is one item of a batch index call. An empty ID asks the
// index to generate one.
type BatchDocument struct {
	ID       string
	Title    string
	Content  string
	Metadata map[string]any
}

// BatchUpdate is one item of a batch update call. Nil fields keep the
// stored value.
type BatchUpdate struct {
	ID       string
	Title    *string
	Content  *string
	Metadata map[string]any
}

// IndexReport summarizes a batch index call.
type IndexReport struct {
	Success []string
	Failed  []BatchFailure
	Total   int
}

// UpdateReport summarizes a batch update call.
type UpdateReport struct {
	Updated []string
	Failed  []BatchFailure
	Total   int
}

// DeleteReport summarizes a batch delete call.
type DeleteReport struct {
	Deleted  []string
	NotFound []string
	Total    int
}

// BatchFailure is one rejected batch item.
type BatchFailure struct {
	ID  string
	Err error
}

// HistoryEntry is one recorded search.
type HistoryEntry struct {
	Query        string
	ResultsCount int
	Timestamp    time.Time
}

// QueryCount is an aggregated popular-query row.
type QueryCount struct {
	Query string
	Count int
}

// SearchStats summarizes the retained search history.
type SearchStats struct {
	TotalSearches  int
	UniqueQueries  int
	AverageResults float64
}

// IndexStats summarizes the index contents.
type IndexStats struct {
	TotalDocuments int
	Categories     int
	CategoryList   []string
}
