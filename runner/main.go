// The runner executes a single search run: it reads the input document from
// a file or stdin, fetches and ranks the feeds, and writes the JSON result
// to stdout. Exit code 1 means invalid input or an unreadable document;
// feed-level failures are part of the output, not an exit condition.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/config"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/feed"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/logger"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/models"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/search"
)

type searchInput struct {
	Query           string   `json:"query"`
	Feeds           []string `json:"feeds"`
	TopN            *int     `json:"top_n"`
	RecencyExponent *int     `json:"recency_exponent"`
}

func main() {
	log := logger.New("runner")
	cfg, err := config.LoadRunner()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	input, err := readInput(cfg.InputPath)
	if err != nil {
		log.Error("read input", slog.Any("err", err))
		os.Exit(1)
	}

	req, err := buildRequest(cfg, input)
	if err != nil {
		log.Error("invalid input", slog.Any("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	fetcher := feed.NewFetcher(cfg.FetchTimeout, cfg.FetchUserAgent)
	svc := search.New(fetcher, cfg.MaxConcurrency, log)

	resp, err := svc.Search(ctx, req)
	if err != nil {
		log.Error("search failed", slog.Any("err", err))
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Error("write output", slog.Any("err", err))
		os.Exit(1)
	}
}

func readInput(path string) (searchInput, error) {
	var in searchInput

	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return in, err
		}
		defer f.Close()
		r = f
	}

	err := json.NewDecoder(r).Decode(&in)
	return in, err
}

func buildRequest(cfg *config.Runner, input searchInput) (models.Request, error) {
	req := models.Request{
		Query:           strings.TrimSpace(input.Query),
		TopN:            cfg.DefaultTopN,
		RecencyExponent: cfg.DefaultRecency,
	}

	if req.Query == "" {
		return models.Request{}, search.ErrEmptyQuery
	}

	for _, url := range input.Feeds {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			req.Feeds = append(req.Feeds, trimmed)
		}
	}
	if len(req.Feeds) == 0 {
		return models.Request{}, search.ErrNoFeeds
	}

	if input.TopN != nil {
		if *input.TopN <= 0 {
			return models.Request{}, search.ErrInvalidTopN
		}
		req.TopN = *input.TopN
	}

	if input.RecencyExponent != nil {
		if *input.RecencyExponent < 0 {
			return models.Request{}, search.ErrInvalidExponent
		}
		req.RecencyExponent = *input.RecencyExponent
	}

	return req, nil
}
