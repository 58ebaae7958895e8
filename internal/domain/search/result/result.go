package result

import "github.com/kailas-cloud/semdex/internal/domain/document"

// DisplayContentLimit is the maximum content length in a search result
// projection. Longer content is cut and suffixed with TruncationMarker;
// storage is never altered.
const (
	DisplayContentLimit = 200
	TruncationMarker    = "..."
)

// Result is a single search hit. Score starts as the rounded cosine
// similarity and is adjusted in place by the rerank and decay stages.
type Result struct {
	documentID string
	title      string
	content    string
	score      float64
	metadata   map[string]document.Value
}

// New creates a search result, truncating content for display.
func New(documentID, title, content string, score float64, metadata map[string]document.Value) Result {
	return Result{
		documentID: documentID,
		title:      title,
		content:    DisplayContent(content),
		score:      score,
		metadata:   metadata,
	}
}

// DisplayContent returns content truncated to the display limit.
func DisplayContent(content string) string {
	if len(content) > DisplayContentLimit {
		return content[:DisplayContentLimit] + TruncationMarker
	}
	return content
}

// DocumentID returns the matched document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// Title returns the document title.
func (r *Result) Title() string { return r.title }

// Content returns the display-truncated content.
func (r *Result) Content() string { return r.content }

// Score returns the current relevance score.
func (r *Result) Score() float64 { return r.score }

// Metadata returns the document metadata.
func (r *Result) Metadata() map[string]document.Value { return r.metadata }

// SetScore replaces the running score (rerank and decay stages).
func (r *Result) SetScore(s float64) { r.score = s }
