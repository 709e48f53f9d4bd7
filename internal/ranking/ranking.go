// Package ranking orders the pooled candidate set and selects the top N.
package ranking

import (
	"sort"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/models"
)

// Top drops zero-relevance candidates, orders the rest by descending final
// score, and truncates to n. The result never contains padding: fewer than n
// matching items means a shorter result.
//
// Ties on final score break toward the more recently published item; a
// missing publish date loses to any known one. Remaining ties fall back to
// the candidate's pooled sequence number so identical inputs always produce
// identical output.
func Top(candidates []models.ScoredItem, n int) []models.ScoredItem {
	ranked := make([]models.ScoredItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Relevance > 0 {
			ranked = append(ranked, c)
		}
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		if !a.Item.Published.Equal(b.Item.Published) {
			return a.Item.Published.After(b.Item.Published)
		}
		return a.Seq < b.Seq
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
