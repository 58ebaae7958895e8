package config

import "testing"

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_InvalidProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Provider = "bert"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}

	expected := `embedding.provider must be "hash" or "openai", got "bert"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_HashDimensionsFixed(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Dimensions = 32

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for hash provider with non-16 dimensions")
	}
}

func TestValidate_OpenAIRequiresCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.Provider = "openai"
	cfg.Embedding.Model = "text-embedding-3-small"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for openai provider without api key")
	}

	cfg.Embedding.APIKey = "test-key"
	cfg.Embedding.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for openai provider without model")
	}

	cfg.Embedding.Model = "text-embedding-3-small"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for complete openai config: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_ThresholdRange(t *testing.T) {
	cfg := validConfig()
	cfg.Index.SimilarityThreshold = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Embedding.Provider != "hash" {
		t.Errorf("expected Provider=hash, got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimensions != 16 {
		t.Errorf("expected Dimensions=16, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Index.MaxDocumentSize != 100000 {
		t.Errorf("expected MaxDocumentSize=100000, got %d", cfg.Index.MaxDocumentSize)
	}
	if cfg.Index.DefaultTopK != 10 {
		t.Errorf("expected DefaultTopK=10, got %d", cfg.Index.DefaultTopK)
	}
	if cfg.Index.DefaultRerankTopK != 5 {
		t.Errorf("expected DefaultRerankTopK=5, got %d", cfg.Index.DefaultRerankTopK)
	}
	if cfg.Index.MaxHistory != 100 {
		t.Errorf("expected MaxHistory=100, got %d", cfg.Index.MaxHistory)
	}
	if cfg.Index.DefaultPageSize != 20 {
		t.Errorf("expected DefaultPageSize=20, got %d", cfg.Index.DefaultPageSize)
	}
	if cfg.Index.MaxPageSize != 100 {
		t.Errorf("expected MaxPageSize=100, got %d", cfg.Index.MaxPageSize)
	}
	if cfg.Index.MaxBatchSize != 100 {
		t.Errorf("expected MaxBatchSize=100, got %d", cfg.Index.MaxBatchSize)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Index: IndexConfig{
			MaxDocumentSize: 500, DefaultTopK: 3,
			DefaultPageSize: 50, MaxPageSize: 500, MaxBatchSize: 50,
		},
		Embedding: EmbeddingConfig{CacheSize: 128, CacheTTLSec: 60},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Index.MaxDocumentSize != 500 {
		t.Errorf("expected MaxDocumentSize=500, got %d", cfg.Index.MaxDocumentSize)
	}
	if cfg.Index.DefaultTopK != 3 {
		t.Errorf("expected DefaultTopK=3, got %d", cfg.Index.DefaultTopK)
	}
	if cfg.Embedding.CacheSize != 128 {
		t.Errorf("expected CacheSize=128, got %d", cfg.Embedding.CacheSize)
	}
}
