package ranking_test

import (
	"testing"
	"time"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/models"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/ranking"
	"github.com/stretchr/testify/require"
)

func candidate(link string, relevance, final float64, published time.Time, seq int) models.ScoredItem {
	return models.ScoredItem{
		Item:       models.Item{Title: link, Link: link, Published: published},
		Relevance:  relevance,
		FinalScore: final,
		Seq:        seq,
	}
}

func links(items []models.ScoredItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Item.Link)
	}
	return out
}

func TestTopOrdersByFinalScore(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	in := []models.ScoredItem{
		candidate("low", 1, 0.5, ts, 0),
		candidate("high", 4, 4.0, ts, 1),
		candidate("mid", 2, 1.5, ts, 2),
	}

	got := ranking.Top(in, 10)
	require.Equal(t, []string{"high", "mid", "low"}, links(got))
}

func TestTopExcludesZeroRelevance(t *testing.T) {
	ts := time.Now()
	in := []models.ScoredItem{
		candidate("match", 1, 1, ts, 0),
		candidate("nomatch", 0, 0, ts, 1),
	}

	got := ranking.Top(in, 5)
	require.Equal(t, []string{"match"}, links(got))

	require.Empty(t, ranking.Top([]models.ScoredItem{candidate("only", 0, 0, ts, 0)}, 5))
}

func TestTopTruncates(t *testing.T) {
	ts := time.Now()
	in := []models.ScoredItem{
		candidate("a", 3, 3, ts, 0),
		candidate("b", 2, 2, ts, 1),
		candidate("c", 1, 1, ts, 2),
	}

	got := ranking.Top(in, 2)
	require.Len(t, got, 2)
	require.Equal(t, []string{"a", "b"}, links(got))
}

func TestTopTieBreaksByRecency(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	in := []models.ScoredItem{
		candidate("older", 2, 2, older, 0),
		candidate("newer", 2, 2, newer, 1),
		candidate("undated", 2, 2, time.Time{}, 2),
	}

	got := ranking.Top(in, 3)
	require.Equal(t, []string{"newer", "older", "undated"}, links(got))
}

func TestTopTieBreaksBySequence(t *testing.T) {
	ts := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	in := []models.ScoredItem{
		candidate("second", 2, 2, ts, 7),
		candidate("first", 2, 2, ts, 3),
	}

	got := ranking.Top(in, 2)
	require.Equal(t, []string{"first", "second"}, links(got))
}

func TestTopDeterministic(t *testing.T) {
	ts := time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC)
	in := []models.ScoredItem{
		candidate("a", 2, 2, ts, 0),
		candidate("b", 2, 2, ts, 1),
		candidate("c", 3, 3, ts.AddDate(0, 0, -1), 2),
	}

	first := ranking.Top(append([]models.ScoredItem(nil), in...), 3)
	for i := 0; i < 5; i++ {
		require.Equal(t, links(first), links(ranking.Top(append([]models.ScoredItem(nil), in...), 3)))
	}
}
