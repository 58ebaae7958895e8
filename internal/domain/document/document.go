package document

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// DefaultTitle is assigned to documents created without a title.
const DefaultTitle = "Untitled"

// CategoryKey is the metadata key tracked by the category index.
const CategoryKey = "category"

// Document is the document aggregate. The ID is immutable once assigned and
// the embedding is always derived from the current content.
type Document struct {
	id        string
	title     string
	content   string
	metadata  map[string]Value
	embedding []float64
	createdAt time.Time
	updatedAt time.Time // zero until the first update
}

// New validates and creates a Document. Title defaults to "Untitled".
// maxContentSize <= 0 disables the size cap.
func New(id, title, content string, metadata map[string]Value, maxContentSize int) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("document id is required: %w", domain.ErrValidation)
	}
	if content == "" {
		return Document{}, fmt.Errorf("content is required: %w", domain.ErrValidation)
	}
	if maxContentSize > 0 && len(content) > maxContentSize {
		return Document{}, fmt.Errorf(
			"content is %d bytes (max %d): %w", len(content), maxContentSize, domain.ErrContentTooLarge,
		)
	}
	if title == "" {
		title = DefaultTitle
	}

	return Document{
		id:       id,
		title:    title,
		content:  content,
		metadata: cloneMetadata(metadata),
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, title, content string, metadata map[string]Value,
	embedding []float64, createdAt, updatedAt time.Time,
) Document {
	return Document{
		id: id, title: title, content: content, metadata: metadata,
		embedding: embedding, createdAt: createdAt, updatedAt: updatedAt,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document text content.
func (d *Document) Content() string { return d.content }

// Metadata returns the open-schema metadata fields.
func (d *Document) Metadata() map[string]Value { return d.metadata }

// Embedding returns the embedding vector. Internal representation only;
// it is stripped before crossing the API boundary.
func (d *Document) Embedding() []float64 { return d.embedding }

// CreatedAt returns the creation timestamp.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns the last update timestamp (zero if never updated).
func (d *Document) UpdatedAt() time.Time { return d.updatedAt }

// SetEmbedding sets the embedding vector in place.
func (d *Document) SetEmbedding(v []float64) { d.embedding = v }

// SetTimestamps stamps creation and update times (storage-owned).
func (d *Document) SetTimestamps(createdAt, updatedAt time.Time) {
	d.createdAt = createdAt
	d.updatedAt = updatedAt
}

// Category returns the metadata category, if the document has a string one.
func (d *Document) Category() (string, bool) {
	v, ok := d.metadata[CategoryKey]
	if !ok || v.Kind() != KindString {
		return "", false
	}
	return v.Str(), true
}

// MatchesFilters reports whether every filter key is present in the document
// metadata with an equal value (AND semantics).
func (d *Document) MatchesFilters(filters map[string]Value) bool {
	for k, want := range filters {
		got, ok := d.metadata[k]
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}
