package document

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/semdex/internal/domain"
)

func TestNewDefaults(t *testing.T) {
	doc, err := New("doc-1", "", "some content", nil, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if doc.Title() != DefaultTitle {
		t.Errorf("Title() = %q, want %q", doc.Title(), DefaultTitle)
	}
	if doc.ID() != "doc-1" {
		t.Errorf("ID() = %q", doc.ID())
	}
	if !doc.CreatedAt().IsZero() {
		t.Errorf("CreatedAt should be zero before storage stamps it")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		content string
		maxSize int
		wantErr error
	}{
		{"missing id", "", "content", 0, domain.ErrValidation},
		{"missing content", "doc-1", "", 0, domain.ErrValidation},
		{"oversized content", "doc-1", "aaaaaaaaaa", 5, domain.ErrContentTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, "t", tt.content, nil, tt.maxSize)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewClonesMetadata(t *testing.T) {
	md := map[string]Value{"category": String("tech")}
	doc, err := New("doc-1", "t", "c", md, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	md["category"] = String("mutated")
	if got := doc.Metadata()["category"]; !got.Equal(String("tech")) {
		t.Errorf("metadata not cloned: %v", got.Display())
	}
}

func TestCategory(t *testing.T) {
	doc, _ := New("d", "t", "c", map[string]Value{"category": String("news")}, 0)
	cat, ok := doc.Category()
	if !ok || cat != "news" {
		t.Errorf("Category() = %q, %v", cat, ok)
	}

	noCat, _ := New("d", "t", "c", nil, 0)
	if _, ok := noCat.Category(); ok {
		t.Error("Category() should report absent")
	}

	numCat, _ := New("d", "t", "c", map[string]Value{"category": Number(3)}, 0)
	if _, ok := numCat.Category(); ok {
		t.Error("non-string category should not be indexed")
	}
}

func TestMatchesFilters(t *testing.T) {
	doc, _ := New("d", "t", "c", map[string]Value{
		"category": String("a"),
		"stars":    Number(5),
		"public":   Bool(true),
	}, 0)

	tests := []struct {
		name    string
		filters map[string]Value
		want    bool
	}{
		{"empty filters", nil, true},
		{"single match", map[string]Value{"category": String("a")}, true},
		{"all match", map[string]Value{"category": String("a"), "stars": Number(5)}, true},
		{"value mismatch", map[string]Value{"category": String("b")}, false},
		{"kind mismatch", map[string]Value{"stars": String("5")}, false},
		{"missing key", map[string]Value{"author": String("x")}, false},
		{"partial match fails", map[string]Value{"category": String("a"), "author": String("x")}, false},
		{"bool match", map[string]Value{"public": Bool(true)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.MatchesFilters(tt.filters); got != tt.want {
				t.Errorf("MatchesFilters() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValueJSONRoundTrip(t *testing.T) {
	for _, v := range []Value{String("x"), Number(4.25), Bool(true)} {
		data, err := v.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON: %v", err)
		}
		var back Value
		if err := back.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s): %v", data, err)
		}
		if !back.Equal(v) {
			t.Errorf("round trip %s != %s", back.Display(), v.Display())
		}
	}
}

func TestValueFromJSONRejectsComposite(t *testing.T) {
	if _, err := ValueFromJSON([]any{"a"}); err == nil {
		t.Error("expected error for array metadata value")
	}
	if _, err := ValueFromJSON(map[string]any{"a": 1}); err == nil {
		t.Error("expected error for object metadata value")
	}
}
