package history

import (
	"context"

	domhist "github.com/kailas-cloud/semdex/internal/domain/history"
)

// Log is the history store surface the analytics need.
type Log interface {
	Recent(ctx context.Context, limit int) []domhist.Entry
	All(ctx context.Context) []domhist.Entry
	Len(ctx context.Context) int
}
