package semdex

import (
	"context"
	"errors"
	"testing"
)

func TestClientIndexAndSearch(t *testing.T) {
	c := New()
	ctx := context.Background()

	if _, _, err := c.Index(ctx, "cats", "Cats", "Cats are great pets",
		map[string]any{"category": "animals"}); err != nil {
		t.Fatalf("Index: %v", err)
	}
	if _, _, err := c.Index(ctx, "cars", "Cars", "Electric cars are efficient",
		map[string]any{"category": "vehicles"}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	results, err := c.Search("pets").Where("category", "animals").TopK(5).Do(ctx)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "cats" {
		t.Fatalf("results = %+v, want only the filtered match", results)
	}
	if results[0].Metadata["category"] != "animals" {
		t.Errorf("metadata = %v", results[0].Metadata)
	}
}

func TestClientGeneratedID(t *testing.T) {
	c := New()

	doc, created, err := c.Index(context.Background(), "", "", "some content", nil)
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if !created || len(doc.ID) != 12 {
		t.Errorf("created=%v id=%q, want new 12-char id", created, doc.ID)
	}
	if doc.Title != "Untitled" {
		t.Errorf("title = %q, want default", doc.Title)
	}
}

func TestClientVersions(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.Index(ctx, "a", "A", "v1", nil)
	c.Index(ctx, "a", "A", "v2", nil)

	versions := c.Versions(ctx, "a")
	if len(versions) != 2 || versions[1].Number != 2 || versions[1].Content != "v2" {
		t.Fatalf("versions = %+v", versions)
	}

	if _, err := c.Version(ctx, "a", 3); !errors.Is(err, ErrVersionNotFound) {
		t.Errorf("err = %v, want ErrVersionNotFound", err)
	}
}

func TestClientDeleteKeepsCategories(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.Index(ctx, "a", "A", "x", map[string]any{"category": "tech"})
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}

	stats := c.Stats(ctx)
	if stats.TotalDocuments != 0 || stats.Categories != 1 {
		t.Errorf("stats = %+v, want categories retained after delete", stats)
	}
}

func TestClientBatch(t *testing.T) {
	c := New()
	ctx := context.Background()

	report, err := c.BatchIndex(ctx, []BatchDocument{
		{ID: "a", Content: "doc a"},
		{Content: "generated id"},
		{ID: "bad"},
	})
	if err != nil {
		t.Fatalf("BatchIndex: %v", err)
	}
	if len(report.Success) != 2 || len(report.Failed) != 1 || report.Total != 3 {
		t.Fatalf("report = %+v", report)
	}
	if !errors.Is(report.Failed[0].Err, ErrValidation) {
		t.Errorf("failure err = %v", report.Failed[0].Err)
	}

	newContent := "doc a updated"
	upd, err := c.BatchUpdate(ctx, []BatchUpdate{
		{ID: "a", Content: &newContent},
		{ID: "ghost", Content: &newContent},
	})
	if err != nil {
		t.Fatalf("BatchUpdate: %v", err)
	}
	if len(upd.Updated) != 1 || len(upd.Failed) != 1 {
		t.Fatalf("update report = %+v", upd)
	}

	del, err := c.BatchDelete(ctx, []string{"a", "ghost"})
	if err != nil {
		t.Fatalf("BatchDelete: %v", err)
	}
	if len(del.Deleted) != 1 || len(del.NotFound) != 1 {
		t.Fatalf("delete report = %+v", del)
	}
}

func TestClientHistory(t *testing.T) {
	c := New(WithHistoryCapacity(2))
	ctx := context.Background()

	c.Index(ctx, "a", "A", "text", nil)
	for _, q := range []string{"one", "two", "three"} {
		if _, err := c.Search(q).Do(ctx); err != nil {
			t.Fatalf("Search %q: %v", q, err)
		}
	}

	history := c.History(ctx, 10)
	if len(history) != 2 || history[0].Query != "two" || history[1].Query != "three" {
		t.Fatalf("history = %+v, want capped at 2 in chronological order", history)
	}

	stats := c.SearchStats(ctx)
	if stats.TotalSearches != 2 {
		t.Errorf("TotalSearches = %d, want retained count", stats.TotalSearches)
	}
}

func TestClientSimilar(t *testing.T) {
	c := New()
	ctx := context.Background()

	c.Index(ctx, "ref", "Ref", "identical text", nil)
	c.Index(ctx, "twin", "Twin", "identical text", nil)

	results, err := c.Similar(ctx, "ref", 5)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if len(results) != 1 || results[0].ID != "twin" || results[0].Score != 1.0 {
		t.Fatalf("results = %+v", results)
	}
}

func TestClientContentSizeLimit(t *testing.T) {
	c := New(WithMaxDocumentSize(5))

	_, _, err := c.Index(context.Background(), "a", "", "too long content", nil)
	if !errors.Is(err, ErrContentTooLarge) {
		t.Fatalf("err = %v, want ErrContentTooLarge", err)
	}
}
