// Package batch applies document operations across many items with
// per-item error isolation: one bad item never aborts the rest.
package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/semdex/internal/domain"
	dombatch "github.com/kailas-cloud/semdex/internal/domain/batch"
	domdoc "github.com/kailas-cloud/semdex/internal/domain/document"
)

// DefaultMaxItems caps a single batch request.
const DefaultMaxItems = 1000

// IndexItem is one document in a batch index request. An empty ID asks
// the service to generate one. Metadata carries decoded JSON values and
// is validated per item, so a malformed entry fails only its own item.
type IndexItem struct {
	ID       string
	Title    string
	Content  string
	Metadata map[string]any
}

// UpdateItem is one document in a batch update request. Nil fields keep
// the stored value; the ID is mandatory.
type UpdateItem struct {
	ID       string
	Title    *string
	Content  *string
	Metadata map[string]any
}

// Service runs batched document operations.
type Service struct {
	docs     Documents
	maxItems int
}

// New creates a batch service.
func New(docs Documents) *Service {
	return &Service{docs: docs, maxItems: DefaultMaxItems}
}

// WithMaxItems overrides the per-request item cap.
func (s *Service) WithMaxItems(n int) *Service {
	if n > 0 {
		s.maxItems = n
	}
	return s
}

// Index indexes every item, collecting failures instead of aborting.
func (s *Service) Index(ctx context.Context, items []IndexItem) (dombatch.IndexReport, error) {
	if err := s.checkSize(len(items)); err != nil {
		return dombatch.IndexReport{}, err
	}

	report := dombatch.IndexReport{Total: len(items)}
	for _, item := range items {
		md, err := parseMetadata(item.Metadata)
		if err != nil {
			report.Failed = append(report.Failed, dombatch.NewFailure(item.ID, err))
			continue
		}
		doc, _, err := s.docs.Index(ctx, item.ID, item.Title, item.Content, md)
		if err != nil {
			report.Failed = append(report.Failed, dombatch.NewFailure(item.ID, err))
			continue
		}
		report.Success = append(report.Success, doc.ID())
	}
	return report, nil
}

// Update applies partial updates. Items without an id, and items whose
// target does not exist, are recorded as failures; updates never create
// documents.
func (s *Service) Update(ctx context.Context, items []UpdateItem) (dombatch.UpdateReport, error) {
	if err := s.checkSize(len(items)); err != nil {
		return dombatch.UpdateReport{}, err
	}

	report := dombatch.UpdateReport{Total: len(items)}
	for _, item := range items {
		if item.ID == "" {
			report.Failed = append(report.Failed, dombatch.NewFailure("",
				fmt.Errorf("document id is required for update: %w", domain.ErrValidation)))
			continue
		}
		if err := s.updateOne(ctx, item); err != nil {
			report.Failed = append(report.Failed, dombatch.NewFailure(item.ID, err))
			continue
		}
		report.Updated = append(report.Updated, item.ID)
	}
	return report, nil
}

// Delete removes every listed document. Unknown ids land in the
// NotFound partition rather than failing the batch.
func (s *Service) Delete(ctx context.Context, ids []string) (dombatch.DeleteReport, error) {
	if err := s.checkSize(len(ids)); err != nil {
		return dombatch.DeleteReport{}, err
	}

	report := dombatch.DeleteReport{Total: len(ids)}
	for _, id := range ids {
		err := s.docs.Delete(ctx, id)
		switch {
		case err == nil:
			report.Deleted = append(report.Deleted, id)
		case errors.Is(err, domain.ErrDocumentNotFound):
			report.NotFound = append(report.NotFound, id)
		default:
			report.NotFound = append(report.NotFound, id)
		}
	}
	return report, nil
}

// updateOne merges the item onto the stored document and re-indexes it,
// which recomputes the embedding and appends a version.
func (s *Service) updateOne(ctx context.Context, item UpdateItem) error {
	existing, err := s.docs.Get(ctx, item.ID)
	if err != nil {
		return err
	}

	title := existing.Title()
	if item.Title != nil {
		title = *item.Title
	}
	content := existing.Content()
	if item.Content != nil {
		content = *item.Content
	}
	metadata := existing.Metadata()
	if item.Metadata != nil {
		parsed, err := parseMetadata(item.Metadata)
		if err != nil {
			return err
		}
		metadata = parsed
	}

	_, _, err = s.docs.Index(ctx, item.ID, title, content, metadata)
	return err
}

func parseMetadata(m map[string]any) (map[string]domdoc.Value, error) {
	md, err := domdoc.MetadataFromJSON(m)
	if err != nil {
		return nil, fmt.Errorf("parse metadata: %v: %w", err, domain.ErrValidation)
	}
	return md, nil
}

func (s *Service) checkSize(n int) error {
	if n == 0 {
		return fmt.Errorf("batch is empty: %w", domain.ErrValidation)
	}
	if n > s.maxItems {
		return fmt.Errorf("batch of %d exceeds limit %d: %w", n, s.maxItems, domain.ErrValidation)
	}
	return nil
}
