package domain

import "errors"

var (
	// ErrValidation signals a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrVersionNotFound signals a missing document version.
	ErrVersionNotFound = errors.New("version not found")
	// ErrContentTooLarge signals document content above the configured cap.
	ErrContentTooLarge = errors.New("content too large")
	// ErrVectorDimMismatch signals an embedding dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
