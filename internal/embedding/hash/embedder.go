// Package hash provides the default deterministic embedder: a 128-bit
// content hash rendered into a 16-component vector. It carries no semantic
// meaning; it exists so the rest of the pipeline has a stable, reproducible
// vector scheme until a real model is plugged in behind domain.Embedder.
package hash

import (
	"context"
	"crypto/md5" //nolint:gosec // not used for security, fixed fingerprint scheme
	"encoding/hex"
	"strconv"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// Dimensions is the fixed vector length of the hash scheme: 16 hex pairs
// of an MD5 digest, each scaled into [0, 1].
const Dimensions = 16

// Embedder derives embeddings from an MD5 content hash. Pure and total:
// identical text always yields an identical vector, including "".
type Embedder struct{}

// New creates the hash embedder.
func New() *Embedder { return &Embedder{} }

// Embed implements domain.Embedder. Never fails.
func (e *Embedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: Vector(text)}, nil
}

// Vector computes the hash vector: hex-encode the MD5 digest, parse each of
// the 16 consecutive hex pairs as a byte, divide by 255.
func Vector(text string) []float64 {
	sum := md5.Sum([]byte(text)) //nolint:gosec
	digest := hex.EncodeToString(sum[:])

	vec := make([]float64, Dimensions)
	for i := 0; i < Dimensions; i++ {
		b, _ := strconv.ParseUint(digest[i*2:i*2+2], 16, 8)
		vec[i] = float64(b) / 255.0
	}
	return vec
}
