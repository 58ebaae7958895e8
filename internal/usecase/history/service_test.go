package history

import (
	"context"
	"math"
	"testing"

	histrepo "github.com/kailas-cloud/semdex/internal/repository/history"
)

func seed(t *testing.T, queries ...string) *Service {
	t.Helper()
	log := histrepo.New(0)
	for _, q := range queries {
		log.Append(context.Background(), q, 1, nil)
	}
	return New(log)
}

func TestRecentChronological(t *testing.T) {
	svc := seed(t, "one", "two", "three")

	entries := svc.Recent(context.Background(), 2)
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Query() != "two" || entries[1].Query() != "three" {
		t.Errorf("order = [%s %s], want chronological [two three]", entries[0].Query(), entries[1].Query())
	}
}

func TestPopular(t *testing.T) {
	svc := seed(t, "b", "a", "b", "c", "a", "b")

	top := svc.Popular(context.Background(), 2)
	if len(top) != 2 {
		t.Fatalf("len = %d, want 2", len(top))
	}
	if top[0].Query != "b" || top[0].Count != 3 {
		t.Errorf("top = %+v, want b x3", top[0])
	}
	if top[1].Query != "a" || top[1].Count != 2 {
		t.Errorf("second = %+v, want a x2", top[1])
	}
}

func TestPopularTiesKeepFirstSeenOrder(t *testing.T) {
	svc := seed(t, "zed", "alpha", "zed", "alpha")

	top := svc.Popular(context.Background(), 10)
	if top[0].Query != "zed" || top[1].Query != "alpha" {
		t.Errorf("tie order = [%s %s], want first-seen order", top[0].Query, top[1].Query)
	}
}

func TestStats(t *testing.T) {
	log := histrepo.New(0)
	ctx := context.Background()
	log.Append(ctx, "a", 4, nil)
	log.Append(ctx, "b", 2, nil)
	log.Append(ctx, "a", 0, nil)
	svc := New(log)

	stats := svc.Stats(ctx)
	if stats.TotalSearches != 3 {
		t.Errorf("TotalSearches = %d, want 3", stats.TotalSearches)
	}
	if stats.UniqueQueries != 2 {
		t.Errorf("UniqueQueries = %d, want 2", stats.UniqueQueries)
	}
	if math.Abs(stats.AverageResults-2.0) > 1e-9 {
		t.Errorf("AverageResults = %v, want 2.0", stats.AverageResults)
	}
}

func TestStatsEmpty(t *testing.T) {
	svc := New(histrepo.New(0))
	stats := svc.Stats(context.Background())
	if stats.TotalSearches != 0 || stats.UniqueQueries != 0 || stats.AverageResults != 0 {
		t.Errorf("stats = %+v, want all zeroes", stats)
	}
}

func TestHistoryEviction(t *testing.T) {
	log := histrepo.New(3)
	ctx := context.Background()
	for _, q := range []string{"one", "two", "three", "four"} {
		log.Append(ctx, q, 0, nil)
	}
	svc := New(log)

	entries := svc.Recent(ctx, 10)
	if len(entries) != 3 {
		t.Fatalf("len = %d, want capacity 3", len(entries))
	}
	if entries[len(entries)-1].Query() != "two" {
		t.Errorf("oldest retained = %q, want two (one evicted)", entries[len(entries)-1].Query())
	}
}
