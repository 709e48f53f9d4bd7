// Package scoring implements the lexical relevance model and the recency
// decay applied on top of it. The constants are deliberately simple so a
// result's score can be recomputed by hand from the item text:
//
//	relevance = sum over query terms of 2*countInTitle + 1*countInBody
//	final     = relevance / (1 + ageDays)^exponent
package scoring

import (
	"math"
	"time"
)

// Field weights. A title hit is a stronger topical signal than a body hit.
const (
	TitleWeight = 2.0
	BodyWeight  = 1.0
)

// maxAgeDays is the sentinel age assigned to items whose publish date is
// missing or unparseable. Treating them as maximally old keeps the decay
// formula total instead of special-casing broken dates downstream.
const maxAgeDays = 3650.0

// Relevance accumulates weighted occurrence counts of each query term in the
// title and body term sequences. Terms absent from both fields contribute
// zero, so an item with no overlap scores exactly 0.
func Relevance(queryTerms, titleTerms, bodyTerms []string) float64 {
	if len(queryTerms) == 0 {
		return 0
	}

	titleCounts := countTerms(titleTerms)
	bodyCounts := countTerms(bodyTerms)

	var score float64
	for _, term := range queryTerms {
		score += TitleWeight * float64(titleCounts[term])
		score += BodyWeight * float64(bodyCounts[term])
	}
	return score
}

// RecencyMultiplier returns the decay factor 1/(1+ageDays)^exponent in (0, 1].
// Age is measured in fractional days and clamped at zero so items published
// "in the future" (clock skew, bad feed dates) are not boosted. A zero
// published time is treated as maximally old. Exponent 0 disables the
// adjustment entirely.
func RecencyMultiplier(published, now time.Time, exponent int) float64 {
	if exponent == 0 {
		return 1
	}

	ageDays := maxAgeDays
	if !published.IsZero() {
		ageDays = now.Sub(published).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
	}

	return 1 / math.Pow(1+ageDays, float64(exponent))
}

func countTerms(terms []string) map[string]int {
	if len(terms) == 0 {
		return nil
	}
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}
