package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/config"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/feed"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/fetchcache"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/logger"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/models"
	"github.com/Xiaopan-AI/Apify-RSS-Search/internal/search"
)

func main() {
	log := logger.New("api")
	cfg, err := config.LoadAPI()
	if err != nil {
		log.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}

	var source search.Source = feed.NewFetcher(cfg.FetchTimeout, cfg.FetchUserAgent)
	if cfg.CacheTTL > 0 {
		source = feed.NewCachedSource(source, fetchcache.New(cfg.CacheCapacity, cfg.CacheTTL))
	}

	srv := &server{
		log:      log,
		cfg:      cfg,
		searcher: search.New(source, cfg.MaxConcurrency, log),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Post("/search", srv.handleSearch)

	httpServer := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      2 * cfg.FetchTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	go func() {
		log.Info("api server starting", slog.String("addr", cfg.BindAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", slog.Any("err", err))
	}
}

type searcher interface {
	Search(ctx context.Context, req models.Request) (models.Response, error)
}

type server struct {
	log      *slog.Logger
	cfg      *config.API
	searcher searcher
}

// searchInput is the wire schema of POST /search. Pointer fields distinguish
// "absent, use the default" from an explicit zero.
type searchInput struct {
	Query           string   `json:"query"`
	Feeds           []string `json:"feeds"`
	TopN            *int     `json:"top_n"`
	RecencyExponent *int     `json:"recency_exponent"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var input searchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	req, err := s.buildRequest(input)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := s.searcher.Search(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// buildRequest applies defaulting and the input validation the search core
// expects to happen at the boundary.
func (s *server) buildRequest(input searchInput) (models.Request, error) {
	req := models.Request{
		Query:           strings.TrimSpace(input.Query),
		TopN:            s.cfg.DefaultTopN,
		RecencyExponent: s.cfg.DefaultRecency,
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
		if req.TopN > s.cfg.MaxTopN {
			req.TopN = s.cfg.MaxTopN
		}
	}

	if input.RecencyExponent != nil {
		if *input.RecencyExponent < 0 {
			return models.Request{}, search.ErrInvalidExponent
		}
		req.RecencyExponent = *input.RecencyExponent
	}

	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// nothing better to do
	}
}
