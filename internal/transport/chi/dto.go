package chi

import (
	"fmt"
	"time"

	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
	domhist "github.com/kailas-cloud/semdex/internal/domain/history"
	"github.com/kailas-cloud/semdex/internal/domain/search/result"
	domver "github.com/kailas-cloud/semdex/internal/domain/version"
	batchuc "github.com/kailas-cloud/semdex/internal/usecase/batch"
)

// indexDocumentRequest is the body of POST /api/documents and
// PUT /api/documents/{id}.
type indexDocumentRequest struct {
	ID       string         `json:"id,omitempty"`
	Title    string         `json:"title,omitempty"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type documentResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Content   string                  `json:"content"`
	Metadata  map[string]domdoc.Value `json:"metadata,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt *time.Time              `json:"updated_at,omitempty"`
}

type documentListResponse struct {
	Items  []documentResponse `json:"items"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

type searchRequestBody struct {
	Query       string         `json:"query"`
	Filters     map[string]any `json:"filters,omitempty"`
	TopK        int            `json:"top_k,omitempty"`
	Rerank      bool           `json:"rerank,omitempty"`
	RerankTopK  int            `json:"rerank_top_k,omitempty"`
	UseDecay    bool           `json:"use_decay,omitempty"`
	DecayFactor float64        `json:"decay_factor,omitempty"`
}

type searchResultItem struct {
	ID              string                  `json:"id"`
	Title           string                  `json:"title"`
	Content         string                  `json:"content"`
	SimilarityScore float64                 `json:"similarity_score"`
	Metadata        map[string]domdoc.Value `json:"metadata,omitempty"`
}

type searchResponse struct {
	Query        string             `json:"query"`
	Filters      map[string]any     `json:"filters,omitempty"`
	Results      []searchResultItem `json:"results"`
	TotalResults int                `json:"total_results"`
}

type versionResponse struct {
	Version   int               `json:"version"`
	Content   string            `json:"content"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type versionListResponse struct {
	DocumentID string            `json:"document_id"`
	Versions   []versionResponse `json:"versions"`
	Total      int               `json:"total"`
}

type batchIndexRequest struct {
	Documents []indexDocumentRequest `json:"documents"`
}

type batchUpdateItem struct {
	ID       string         `json:"id"`
	Title    *string        `json:"title,omitempty"`
	Content  *string        `json:"content,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type batchUpdateRequest struct {
	Documents []batchUpdateItem `json:"documents"`
}

type batchDeleteRequest struct {
	IDs []string `json:"ids"`
}

type batchFailureItem struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

type batchIndexResponse struct {
	Success []string           `json:"success"`
	Failed  []batchFailureItem `json:"failed"`
	Total   int                `json:"total"`
}

type batchUpdateResponse struct {
	Updated []string           `json:"updated"`
	Failed  []batchFailureItem `json:"failed"`
	Total   int                `json:"total"`
}

type batchDeleteResponse struct {
	Deleted  []string `json:"deleted"`
	NotFound []string `json:"not_found"`
	Total    int      `json:"total"`
}

type historyEntryItem struct {
	Query        string                  `json:"query"`
	ResultsCount int                     `json:"results_count"`
	Filters      map[string]domdoc.Value `json:"filters,omitempty"`
	Timestamp    time.Time               `json:"timestamp"`
}

type historyListResponse struct {
	Items []historyEntryItem `json:"items"`
	Total int                `json:"total"`
}

type popularQueryItem struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

type popularListResponse struct {
	Items []popularQueryItem `json:"items"`
	Total int                `json:"total"`
}

type searchStatsResponse struct {
	TotalSearches  int     `json:"total_searches"`
	UniqueQueries  int     `json:"unique_queries"`
	AverageResults float64 `json:"average_results"`
}

type indexStatsResponse struct {
	TotalDocuments int      `json:"total_documents"`
	Categories     int      `json:"categories"`
	CategoryList   []string `json:"category_list"`
}

type analyzeRequest struct {
	Text  string `json:"text"`
	Other string `json:"other,omitempty"`
}

type analyzeResponse struct {
	Tokens     []string `json:"tokens"`
	Keywords   []string `json:"keywords"`
	Normalized string   `json:"normalized"`
	Similarity *float64 `json:"similarity,omitempty"`
}

type healthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Documents int               `json:"documents"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func documentToDTO(doc *domdoc.Document) documentResponse {
	resp := documentResponse{
		ID:        doc.ID(),
		Title:     doc.Title(),
		Content:   doc.Content(),
		Metadata:  doc.Metadata(),
		CreatedAt: doc.CreatedAt().UTC(),
	}
	// never-updated documents have no updated_at
	if !doc.UpdatedAt().IsZero() {
		u := doc.UpdatedAt().UTC()
		resp.UpdatedAt = &u
	}
	return resp
}

func versionToDTO(v domver.Version) versionResponse {
	return versionResponse{
		Version:   v.Number(),
		Content:   v.Content(),
		CreatedAt: v.CreatedAt().UTC(),
		Metadata:  v.Metadata(),
	}
}

func searchResultToDTO(r *result.Result) searchResultItem {
	return searchResultItem{
		ID:              r.DocumentID(),
		Title:           r.Title(),
		Content:         r.Content(),
		SimilarityScore: r.Score(),
		Metadata:        r.Metadata(),
	}
}

func historyEntryToDTO(e domhist.Entry) historyEntryItem {
	return historyEntryItem{
		Query:        e.Query(),
		ResultsCount: e.ResultsCount(),
		Filters:      e.Filters(),
		Timestamp:    e.Timestamp().UTC(),
	}
}

func metadataFromDTO(m map[string]any) (map[string]domdoc.Value, error) {
	md, err := domdoc.MetadataFromJSON(m)
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return md, nil
}

// Batch metadata stays raw here. The batch service validates it per
// item, so one malformed entry fails that item, not the request.
func batchIndexItemsFromDTO(items []indexDocumentRequest) []batchuc.IndexItem {
	out := make([]batchuc.IndexItem, 0, len(items))
	for _, item := range items {
		out = append(out, batchuc.IndexItem{
			ID:       item.ID,
			Title:    item.Title,
			Content:  item.Content,
			Metadata: item.Metadata,
		})
	}
	return out
}

func batchUpdateItemsFromDTO(items []batchUpdateItem) []batchuc.UpdateItem {
	out := make([]batchuc.UpdateItem, 0, len(items))
	for _, item := range items {
		out = append(out, batchuc.UpdateItem{
			ID:       item.ID,
			Title:    item.Title,
			Content:  item.Content,
			Metadata: item.Metadata,
		})
	}
	return out
}
