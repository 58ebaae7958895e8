package hash

import (
	"context"
	"testing"
)

func TestVectorDeterministic(t *testing.T) {
	a := Vector("Cats are great pets")
	b := Vector("Cats are great pets")
	if len(a) != Dimensions {
		t.Fatalf("len = %d, want %d", len(a), Dimensions)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("component %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestVectorRange(t *testing.T) {
	for _, text := range []string{"", "a", "hello world", "ünïcödé"} {
		for i, c := range Vector(text) {
			if c < 0 || c > 1 {
				t.Errorf("Vector(%q)[%d] = %v out of [0, 1]", text, i, c)
			}
		}
	}
}

func TestVectorEmptyString(t *testing.T) {
	// md5("") = d41d8cd98f00b204e9800998ecf8427e — a well-defined,
	// non-degenerate vector.
	vec := Vector("")
	if len(vec) != Dimensions {
		t.Fatalf("len = %d, want %d", len(vec), Dimensions)
	}
	if vec[0] != float64(0xd4)/255.0 {
		t.Errorf("vec[0] = %v, want %v", vec[0], float64(0xd4)/255.0)
	}
	var nonZero bool
	for _, c := range vec {
		if c != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("empty-string vector must not be all zeros")
	}
}

func TestVectorDistinctInputs(t *testing.T) {
	a := Vector("Cats are great pets")
	b := Vector("Electric cars are efficient")
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("distinct inputs produced identical vectors")
	}
}

func TestEmbedNeverFails(t *testing.T) {
	e := New()
	res, err := e.Embed(context.Background(), "")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(res.Embedding) != Dimensions {
		t.Errorf("len = %d, want %d", len(res.Embedding), Dimensions)
	}
	if res.TotalTokens != 0 {
		t.Errorf("TotalTokens = %d, want 0 for local embedder", res.TotalTokens)
	}
}
