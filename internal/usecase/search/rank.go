package search

import (
	"math"
	"sort"
	"time"

	"github.com/kailas-cloud/semdex/internal/textutil"
)

// titleBoostWeight is the lexical boost per query term found in a title.
const titleBoostWeight = 0.1

// hoursPerDay converts document age to the decay stage's day unit.
const hoursPerDay = 24

// sortByScore sorts descending by score. The sort is stable so ties keep
// the original scan order, which keeps ranking reproducible.
func sortByScore(ranked []scored) {
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].res.Score() > ranked[j].res.Score()
	})
}

// boostByTitle adds 0.1 per query term that literally appears in the
// result title, case-insensitively.
func boostByTitle(ranked []scored, query string) {
	for i := range ranked {
		hits := textutil.TitleHits(query, ranked[i].res.Title())
		if hits > 0 {
			ranked[i].res.SetScore(ranked[i].res.Score() + titleBoostWeight*float64(hits))
		}
	}
}

// applyTimeDecay multiplies each score by exp(-factor * age_in_days),
// measured from the document's creation time.
func applyTimeDecay(ranked []scored, factor float64, now time.Time) {
	for i := range ranked {
		createdAt := ranked[i].createdAt
		if createdAt.IsZero() {
			continue
		}
		ageDays := now.Sub(createdAt).Hours() / hoursPerDay
		ranked[i].res.SetScore(ranked[i].res.Score() * math.Exp(-factor*ageDays))
	}
}
