// Package chi exposes the semantic index over HTTP with hand-written
// chi handlers.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/domain"
	dombatch "github.com/kailas-cloud/semdex/internal/domain/batch"
	"github.com/kailas-cloud/semdex/internal/domain/search/request"
	"github.com/kailas-cloud/semdex/internal/textutil"
	batchuc "github.com/kailas-cloud/semdex/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/semdex/internal/usecase/document"
	healthuc "github.com/kailas-cloud/semdex/internal/usecase/health"
	historyuc "github.com/kailas-cloud/semdex/internal/usecase/history"
	searchuc "github.com/kailas-cloud/semdex/internal/usecase/search"
)

// Error codes returned in the response body alongside HTTP status.
const (
	codeBadRequest           = "bad_request"
	codeValidationFailed     = "validation_failed"
	codeDocumentNotFound     = "document_not_found"
	codeVersionNotFound      = "version_not_found"
	codeContentTooLarge      = "content_too_large"
	codeVectorDimMismatch    = "vector_dim_mismatch"
	codeEmbeddingProviderErr = "embedding_provider_error"
	codeUnauthorized         = "unauthorized"
	codeInternalError        = "internal_error"
)

const maxAnalyzeKeywords = 10

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the use case services into HTTP handlers.
type Server struct {
	documents     *documentuc.Service
	search        *searchuc.Service
	batch         *batchuc.Service
	analytics     *historyuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	defaults      request.Defaults
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	documents *documentuc.Service,
	search *searchuc.Service,
	batch *batchuc.Service,
	analytics *historyuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		documents: documents,
		search:    search,
		batch:     batch,
		analytics: analytics,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeDocumentNotFound),
		sentinelHandler(domain.ErrVersionNotFound, http.StatusNotFound, codeVersionNotFound),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrContentTooLarge, http.StatusRequestEntityTooLarge, codeContentTooLarge),
		sentinelHandler(domain.ErrVectorDimMismatch, http.StatusBadRequest, codeVectorDimMismatch),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeEmbeddingProviderErr),
	}
	return s
}

// WithSearchDefaults sets operator-configured fallbacks for search
// parameters the client leaves unset.
func (s *Server) WithSearchDefaults(d request.Defaults) *Server {
	s.defaults = d
	return s
}

// Routes mounts all endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", s.IndexDocument)
			r.Get("/", s.ListDocuments)
			r.Post("/batch", s.BatchIndex)
			r.Put("/batch", s.BatchUpdate)
			r.Delete("/batch", s.BatchDelete)
			r.Get("/{id}", s.GetDocument)
			r.Put("/{id}", s.UpdateDocument)
			r.Delete("/{id}", s.DeleteDocument)
			r.Get("/{id}/versions", s.ListVersions)
			r.Get("/{id}/versions/{number}", s.GetVersion)
			r.Get("/{id}/similar", s.SimilarDocuments)
		})
		r.Post("/search", s.Search)
		r.Get("/search/history", s.SearchHistory)
		r.Get("/search/popular", s.PopularSearches)
		r.Get("/search/stats", s.SearchStats)
		r.Get("/stats", s.IndexStats)
		r.Post("/analyze", s.AnalyzeText)
	})
}

// IndexDocument handles POST /api/documents.
func (s *Server) IndexDocument(w http.ResponseWriter, r *http.Request) {
	var req indexDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.indexDocument(w, r, req)
}

// UpdateDocument handles PUT /api/documents/{id}. The path id wins over
// any id in the body.
func (s *Server) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req indexDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	req.ID = chi.URLParam(r, "id")
	s.indexDocument(w, r, req)
}

func (s *Server) indexDocument(w http.ResponseWriter, r *http.Request, req indexDocumentRequest) {
	md, err := metadataFromDTO(req.Metadata)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	doc, created, err := s.documents.Index(r.Context(), req.ID, req.Title, req.Content, md)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/api/documents/"+doc.ID())
	}
	writeJSON(w, status, documentToDTO(&doc))
}

// GetDocument handles GET /api/documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToDTO(&doc))
}

// ListDocuments handles GET /api/documents.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	offset := queryInt(r, "offset", 0)

	docs := s.documents.List(r.Context(), limit, offset)
	items := make([]documentResponse, len(docs))
	for i := range docs {
		items[i] = documentToDTO(&docs[i])
	}

	writeJSON(w, http.StatusOK, documentListResponse{
		Items:  items,
		Total:  s.documents.Stats(r.Context()).TotalDocuments,
		Limit:  limit,
		Offset: offset,
	})
}

// DeleteDocument handles DELETE /api/documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListVersions handles GET /api/documents/{id}/versions.
func (s *Server) ListVersions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.documents.Get(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	versions := s.documents.Versions(r.Context(), id)
	items := make([]versionResponse, len(versions))
	for i, v := range versions {
		items[i] = versionToDTO(v)
	}
	writeJSON(w, http.StatusOK, versionListResponse{
		DocumentID: id,
		Versions:   items,
		Total:      len(items),
	})
}

// GetVersion handles GET /api/documents/{id}/versions/{number}.
// "latest" is accepted in place of a number.
func (s *Server) GetVersion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	raw := chi.URLParam(r, "number")

	if raw == "latest" {
		v, err := s.documents.LatestVersion(r.Context(), id)
		if err != nil {
			s.handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, versionToDTO(v))
		return
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "version number must be an integer")
		return
	}
	v, err := s.documents.Version(r.Context(), id, n)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, versionToDTO(v))
}

// SimilarDocuments handles GET /api/documents/{id}/similar.
func (s *Server) SimilarDocuments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req := s.defaults.NewSimilar(nil, queryInt(r, "top_k", 0))

	results, err := s.search.Similar(r.Context(), id, &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Query:        id,
		Results:      items,
		TotalResults: len(items),
	})
}

// Search handles POST /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body searchRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	filters, err := metadataFromDTO(body.Filters)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	req, err := s.defaults.New(
		body.Query, filters, body.TopK,
		body.Rerank, body.RerankTopK,
		body.UseDecay, body.DecayFactor,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToDTO(&results[i])
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Query:        body.Query,
		Filters:      body.Filters,
		Results:      items,
		TotalResults: len(items),
	})
}

// BatchIndex handles POST /api/documents/batch.
func (s *Server) BatchIndex(w http.ResponseWriter, r *http.Request) {
	var body batchIndexRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := s.batch.Index(r.Context(), batchIndexItemsFromDTO(body.Documents))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchIndexResponse{
		Success: orEmpty(report.Success),
		Failed:  failuresToDTO(report.Failed),
		Total:   report.Total,
	})
}

// BatchUpdate handles PUT /api/documents/batch.
func (s *Server) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	var body batchUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := s.batch.Update(r.Context(), batchUpdateItemsFromDTO(body.Documents))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchUpdateResponse{
		Updated: orEmpty(report.Updated),
		Failed:  failuresToDTO(report.Failed),
		Total:   report.Total,
	})
}

// BatchDelete handles DELETE /api/documents/batch.
func (s *Server) BatchDelete(w http.ResponseWriter, r *http.Request) {
	var body batchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	report, err := s.batch.Delete(r.Context(), body.IDs)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batchDeleteResponse{
		Deleted:  orEmpty(report.Deleted),
		NotFound: orEmpty(report.NotFound),
		Total:    report.Total,
	})
}

// SearchHistory handles GET /api/search/history.
func (s *Server) SearchHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.analytics.Recent(r.Context(), queryInt(r, "limit", 0))
	items := make([]historyEntryItem, len(entries))
	for i, e := range entries {
		items[i] = historyEntryToDTO(e)
	}
	writeJSON(w, http.StatusOK, historyListResponse{Items: items, Total: len(items)})
}

// PopularSearches handles GET /api/search/popular.
func (s *Server) PopularSearches(w http.ResponseWriter, r *http.Request) {
	top := s.analytics.Popular(r.Context(), queryInt(r, "limit", 0))
	items := make([]popularQueryItem, len(top))
	for i, q := range top {
		items[i] = popularQueryItem{Query: q.Query, Count: q.Count}
	}
	writeJSON(w, http.StatusOK, popularListResponse{Items: items, Total: len(items)})
}

// SearchStats handles GET /api/search/stats.
func (s *Server) SearchStats(w http.ResponseWriter, r *http.Request) {
	stats := s.analytics.Stats(r.Context())
	writeJSON(w, http.StatusOK, searchStatsResponse{
		TotalSearches:  stats.TotalSearches,
		UniqueQueries:  stats.UniqueQueries,
		AverageResults: stats.AverageResults,
	})
}

// IndexStats handles GET /api/stats.
func (s *Server) IndexStats(w http.ResponseWriter, r *http.Request) {
	stats := s.documents.Stats(r.Context())
	writeJSON(w, http.StatusOK, indexStatsResponse{
		TotalDocuments: stats.TotalDocuments,
		Categories:     stats.Categories,
		CategoryList:   stats.CategoryList,
	})
}

// AnalyzeText handles POST /api/analyze.
func (s *Server) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if body.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}

	resp := analyzeResponse{
		Tokens:     textutil.Tokens(body.Text),
		Keywords:   textutil.Keywords(body.Text, maxAnalyzeKeywords),
		Normalized: textutil.Normalize(body.Text),
	}
	if body.Other != "" {
		sim := textutil.OverlapSimilarity(body.Text, body.Other)
		resp.Similarity = &sim
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{
		Status:    string(report.Status),
		Checks:    checks,
		Documents: report.Documents,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrDocumentNotFound,
		domain.ErrVersionNotFound,
		domain.ErrContentTooLarge,
		domain.ErrVectorDimMismatch,
		domain.ErrEmbeddingProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func failuresToDTO(failures []dombatch.Failure) []batchFailureItem {
	items := make([]batchFailureItem, len(failures))
	for i, f := range failures {
		items[i] = batchFailureItem{ID: f.ID(), Error: safeDomainMessage(f.Err())}
	}
	return items
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func queryInt(r *http.Request, name string, def int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return def
}
