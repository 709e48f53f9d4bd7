package processing

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	punctuation = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
)

// Tokenize normalizes free text into comparable terms: lowercase, punctuation
// stripped, split on whitespace. Empty input yields nil. No stemming and no
// stopword removal, so scores stay auditable against the raw text.
func Tokenize(input string) []string {
	if input == "" {
		return nil
	}
	clean := punctuation.ReplaceAllString(strings.ToLower(input), " ")
	fields := strings.Fields(clean)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// TermSet returns the distinct tokens of the input, preserving first-seen
// order. Used for query terms, where a repeated word must not double its
// contribution.
func TermSet(input string) []string {
	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tokens))
	var terms []string
	for _, tok := range tokens {
		if _, ok := seen[tok]; !ok {
			seen[tok] = struct{}{}
			terms = append(terms, tok)
		}
	}
	return terms
}

// StripHTML extracts the visible text from an HTML fragment. Feed summaries
// are frequently full HTML; matching the query against markup would inflate
// scores for items with tag soup. Input without markup comes back as plain
// text with entities decoded and whitespace squeezed.
func StripHTML(input string) string {
	if input == "" {
		return ""
	}
	text := input
	if strings.ContainsRune(input, '<') {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(input)); err == nil {
			text = doc.Text()
		}
	}
	text = html.UnescapeString(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
