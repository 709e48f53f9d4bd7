// Package feed retrieves raw feed bodies over HTTP and parses them into
// items. Both halves report failures as categorized errors so the search
// layer can file them into the per-feed failure report without inspecting
// transport details.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/models"
)

// maxBodyBytes caps how much of a feed response is read. Feeds larger than
// this are almost certainly not syndication documents.
const maxBodyBytes = 10 << 20

// Error carries the failure category of a fetch or parse attempt.
type Error struct {
	Category string
	Err      error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// Categorize extracts the failure category from an error produced by this
// package. Unknown errors fall back to unreachable.
func Categorize(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Category
	}
	return models.FailureUnreachable
}

// Fetcher downloads feed bodies with a bounded per-feed budget.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher builds a Fetcher with the given per-request timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch retrieves one feed body. Errors are categorized as timeout when the
// per-feed budget or the surrounding context deadline ran out, and as
// unreachable for every other transport or status failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Category: models.FailureUnreachable, Err: fmt.Errorf("build request for %s: %w", url, err)}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{Category: fetchCategory(err), Err: fmt.Errorf("fetch %s: %w", url, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Category: models.FailureUnreachable, Err: fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{Category: fetchCategory(err), Err: fmt.Errorf("read body of %s: %w", url, err)}
	}

	return body, nil
}

func fetchCategory(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.FailureTimeout
	}
	return models.FailureUnreachable
}
