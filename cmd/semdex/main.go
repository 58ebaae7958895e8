package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/config"
	"github.com/kailas-cloud/semdex/internal/domain"
	"github.com/kailas-cloud/semdex/internal/domain/search/request"
	"github.com/kailas-cloud/semdex/internal/embedding/cache"
	"github.com/kailas-cloud/semdex/internal/embedding/hash"
	openaiEmb "github.com/kailas-cloud/semdex/internal/embedding/openai"
	logpkg "github.com/kailas-cloud/semdex/internal/logger"
	"github.com/kailas-cloud/semdex/internal/metrics"
	docrepo "github.com/kailas-cloud/semdex/internal/repository/document"
	histrepo "github.com/kailas-cloud/semdex/internal/repository/history"
	verrepo "github.com/kailas-cloud/semdex/internal/repository/version"
	chiTransport "github.com/kailas-cloud/semdex/internal/transport/chi"
	batchuc "github.com/kailas-cloud/semdex/internal/usecase/batch"
	documentuc "github.com/kailas-cloud/semdex/internal/usecase/document"
	healthuc "github.com/kailas-cloud/semdex/internal/usecase/health"
	historyuc "github.com/kailas-cloud/semdex/internal/usecase/history"
	searchuc "github.com/kailas-cloud/semdex/internal/usecase/search"
	"github.com/kailas-cloud/semdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting semdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("embedding_provider", cfg.Embedding.Provider),
	)

	// Register domain metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	embedder := buildEmbedder(cfg.Embedding, logger)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	// Create repositories
	docRepo := docrepo.New()
	verRepo := verrepo.New()
	histRepo := histrepo.New(cfg.Index.MaxHistory)

	// Create use case services
	docSvc := documentuc.New(docRepo, verRepo, embedder, cfg.Index.MaxDocumentSize, cfg.Embedding.Dimensions).
		WithPagination(cfg.Index.DefaultPageSize, cfg.Index.MaxPageSize)
	searchSvc := searchuc.New(docRepo, embedder, histRepo).
		WithThreshold(cfg.Index.SimilarityThreshold)
	batchSvc := batchuc.New(docSvc).WithMaxItems(cfg.Index.MaxBatchSize)
	analyticsSvc := historyuc.New(histRepo)
	healthSvc := healthuc.New(docRepo, embeddingHealthChecker(embedder))

	// Create chi server
	server := chiTransport.NewServer(docSvc, searchSvc, batchSvc, analyticsSvc, healthSvc, logger).
		WithSearchDefaults(request.Defaults{
			TopK:        cfg.Index.DefaultTopK,
			RerankTopK:  cfg.Index.DefaultRerankTopK,
			DecayFactor: cfg.Index.DefaultDecayFactor,
		})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedder assembles the embedder chain. The hash provider is
// deterministic and local; openai gets an LRU cache in front of it.
func buildEmbedder(cfg config.EmbeddingConfig, logger *zap.Logger) domain.Embedder {
	if cfg.Provider == "hash" {
		return hash.New()
	}

	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Logger:     logger,
	})
	return cache.New(base, cfg.CacheSize, time.Duration(cfg.CacheTTLSec)*time.Second, logger)
}

// embeddingHealthChecker exposes the embedder's health probe when it has one.
func embeddingHealthChecker(embedder domain.Embedder) healthuc.EmbeddingChecker {
	if hc, ok := embedder.(domain.HealthChecker); ok {
		return hc
	}
	return nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
