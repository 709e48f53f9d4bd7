package feed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/models"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/processing"
)

// Parse turns a raw feed body into items. gofeed accepts RSS, Atom and JSON
// feeds, so the feed flavor never leaks past this function. Summaries are
// reduced to visible text before they reach scoring. Items without a
// parseable publish date keep a zero timestamp.
func Parse(feedURL string, body []byte) ([]models.Item, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Category: models.FailureMalformed, Err: fmt.Errorf("parse %s: %w", feedURL, err)}
	}

	items := make([]models.Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		if entry == nil {
			continue
		}
		items = append(items, models.Item{
			Title:     processing.StripHTML(entry.Title),
			Summary:   processing.StripHTML(summaryOf(entry)),
			Link:      entry.Link,
			Published: publishedAt(entry),
			FeedURL:   feedURL,
		})
	}

	return items, nil
}

// summaryOf prefers the short description and falls back to full content,
// which some Atom feeds use exclusively.
func summaryOf(entry *gofeed.Item) string {
	if entry.Description != "" {
		return entry.Description
	}
	return entry.Content
}

func publishedAt(entry *gofeed.Item) time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed.UTC()
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed.UTC()
	}
	return time.Time{}
}
