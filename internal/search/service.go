// Package search drives one search run: fan out over feeds, score every
// item against the query, pool the survivors and rank them globally.
package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/feed"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/models"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/processing"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/ranking"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/scoring"
)

// Input validation errors. These are the only errors Search returns; feed
// level trouble is reported in the response instead.
var (
	ErrEmptyQuery      = errors.New("query must not be empty")
	ErrNoFeeds         = errors.New("at least one feed URL is required")
	ErrInvalidTopN     = errors.New("top_n must be positive")
	ErrInvalidExponent = errors.New("recency_exponent must not be negative")
)

// Source supplies raw feed bodies.
type Source interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Service runs searches against a Source.
type Service struct {
	source      Source
	concurrency int
	log         *slog.Logger
}

// New builds a Service. concurrency bounds how many feed pipelines run at
// once; values below 1 fall back to one pipeline per feed.
func New(source Source, concurrency int, log *slog.Logger) *Service {
	return &Service{source: source, concurrency: concurrency, log: log}
}

// Search executes one run. Feeds are processed independently and in
// parallel; a feed that cannot be fetched or parsed is recorded in the
// failure report and never aborts its siblings. Ranking happens once over
// the pooled candidates of all feeds, so a strong match in one feed can
// outrank many weak matches in another. Only invalid input yields an error,
// and it is detected before any fetching starts.
func (s *Service) Search(ctx context.Context, req models.Request) (models.Response, error) {
	if err := validate(req); err != nil {
		return models.Response{}, err
	}

	runID := uuid.NewString()
	queryTerms := processing.TermSet(req.Query)
	now := time.Now().UTC()

	type feedOutcome struct {
		items   []models.ScoredItem
		failure *models.FeedFailure
	}
	outcomes := make([]feedOutcome, len(req.Feeds))

	g := new(errgroup.Group)
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, url := range req.Feeds {
		i, url := i, url
		g.Go(func() error {
			items, err := s.processFeed(ctx, url, queryTerms, now, req.RecencyExponent)
			if err != nil {
				s.log.Warn("feed dropped from run",
					slog.String("run_id", runID),
					slog.String("feed", url),
					slog.String("reason", feed.Categorize(err)),
					slog.Any("err", err),
				)
				outcomes[i] = feedOutcome{failure: &models.FeedFailure{
					FeedURL: url,
					Reason:  feed.Categorize(err),
					Detail:  err.Error(),
				}}
				return nil
			}
			outcomes[i] = feedOutcome{items: items}
			return nil
		})
	}
	_ = g.Wait() // pipelines never return errors; Wait is the fan-in barrier

	// Pool in declared feed order so the ranking tie-break is reproducible.
	var pooled []models.ScoredItem
	var failures []models.FeedFailure
	seq := 0
	for _, out := range outcomes {
		if out.failure != nil {
			failures = append(failures, *out.failure)
			continue
		}
		for _, item := range out.items {
			item.Seq = seq
			seq++
			pooled = append(pooled, item)
		}
	}

	ranked := ranking.Top(pooled, req.TopN)

	s.log.Info("search completed",
		slog.String("run_id", runID),
		slog.Int("feeds", len(req.Feeds)),
		slog.Int("failed_feeds", len(failures)),
		slog.Int("candidates", seq),
		slog.Int("results", len(ranked)),
	)

	return models.Response{Results: project(ranked), Failures: failures}, nil
}

func validate(req models.Request) error {
	if req.Query == "" {
		return ErrEmptyQuery
	}
	if len(req.Feeds) == 0 {
		return ErrNoFeeds
	}
	if req.TopN <= 0 {
		return ErrInvalidTopN
	}
	if req.RecencyExponent < 0 {
		return ErrInvalidExponent
	}
	return nil
}

// processFeed is one fan-out pipeline: fetch, parse, then score every item.
func (s *Service) processFeed(ctx context.Context, url string, queryTerms []string, now time.Time, exponent int) ([]models.ScoredItem, error) {
	body, err := s.source.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	items, err := feed.Parse(url, body)
	if err != nil {
		return nil, err
	}

	scored := make([]models.ScoredItem, 0, len(items))
	for _, item := range items {
		relevance := scoring.Relevance(queryTerms, processing.Tokenize(item.Title), processing.Tokenize(item.Summary))
		recency := scoring.RecencyMultiplier(item.Published, now, exponent)
		scored = append(scored, models.ScoredItem{
			Item:       item,
			Relevance:  relevance,
			Recency:    recency,
			FinalScore: relevance * recency,
		})
	}
	return scored, nil
}

func project(ranked []models.ScoredItem) []models.ResultItem {
	results := make([]models.ResultItem, 0, len(ranked))
	for _, r := range ranked {
		var published *time.Time
		if !r.Item.Published.IsZero() {
			ts := r.Item.Published
			published = &ts
		}
		results = append(results, models.ResultItem{
			Title:     r.Item.Title,
			Link:      r.Item.Link,
			Score:     r.FinalScore,
			Published: published,
			FeedURL:   r.Item.FeedURL,
		})
	}
	return results
}
