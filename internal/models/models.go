package models

import "time"

// Item is one entry extracted from a feed. Published is the zero value when
// the feed carried no parseable date.
type Item struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Link      string    `json:"link"`
	Published time.Time `json:"published"`
	FeedURL   string    `json:"feed_url"`
}

// ScoredItem pairs an Item with its match numbers. Seq preserves the position
// of the item in the pooled candidate set (feed order, then item order) and is
// the final ranking tie-break.
type ScoredItem struct {
	Item       Item
	Relevance  float64
	Recency    float64
	FinalScore float64
	Seq        int
}

// ResultItem is the projection of a ScoredItem returned to callers.
type ResultItem struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Score     float64    `json:"score"`
	Published *time.Time `json:"published"` // nil when the feed had no usable date
	FeedURL   string     `json:"feed_url"`
}

// Failure categories for feeds that did not contribute items.
const (
	FailureUnreachable = "unreachable"
	FailureTimeout     = "timeout"
	FailureMalformed   = "malformed"
)

// FeedFailure describes one feed that was dropped from a run.
type FeedFailure struct {
	FeedURL string `json:"feed_url"`
	Reason  string `json:"reason"`
	Detail  string `json:"detail,omitempty"`
}

// Request is the validated input of one search run.
type Request struct {
	Query           string
	Feeds           []string
	TopN            int
	RecencyExponent int
}

// Response bundles the ranked results with the per-feed failure report.
type Response struct {
	Results  []ResultItem  `json:"results"`
	Failures []FeedFailure `json:"failures"`
}
