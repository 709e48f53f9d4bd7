package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Common holds the feed-retrieval parameters shared by every service.
type Common struct {
	FetchTimeout   time.Duration
	FetchUserAgent string
	MaxConcurrency int
	DefaultTopN    int
	MaxTopN        int
	DefaultRecency int
}

// API describes the HTTP search service.
type API struct {
	Common
	BindAddr      string
	CacheTTL      time.Duration
	CacheCapacity int
}

// Runner configures the one-shot search entrypoint.
type Runner struct {
	Common
	InputPath string
}

// LoadAPI builds an API config from environment variables.
func LoadAPI() (*API, error) {
	c := &API{
		Common:        loadCommon(),
		BindAddr:      getEnv("API_BIND_ADDR", "0.0.0.0:8080"),
		CacheTTL:      getDuration("API_FEED_CACHE_TTL", "2m"),
		CacheCapacity: getInt("API_FEED_CACHE_CAPACITY", 256),
	}

	if err := c.Common.validate(); err != nil {
		return nil, err
	}
	if c.CacheTTL < 0 {
		return nil, fmt.Errorf("API_FEED_CACHE_TTL cannot be negative")
	}
	if c.CacheCapacity <= 0 {
		return nil, fmt.Errorf("API_FEED_CACHE_CAPACITY must be positive")
	}

	return c, nil
}

// LoadRunner builds a Runner config from environment variables. An empty
// RUNNER_INPUT_PATH means the input document is read from stdin.
func LoadRunner() (*Runner, error) {
	c := &Runner{
		Common:    loadCommon(),
		InputPath: getEnv("RUNNER_INPUT_PATH", ""),
	}

	if err := c.Common.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func loadCommon() Common {
	return Common{
		FetchTimeout:   getDuration("FEED_FETCH_TIMEOUT", "30s"),
		FetchUserAgent: getEnv("FEED_USER_AGENT", "rss-search/1.0"),
		MaxConcurrency: getInt("FEED_MAX_CONCURRENCY", 8),
		DefaultTopN:    getInt("SEARCH_DEFAULT_TOP_N", 10),
		MaxTopN:        getInt("SEARCH_MAX_TOP_N", 100),
		DefaultRecency: getInt("SEARCH_DEFAULT_RECENCY_EXPONENT", 1),
	}
}

func (c Common) validate() error {
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FEED_FETCH_TIMEOUT must be positive")
	}
	if c.MaxConcurrency <= 0 {
		return fmt.Errorf("FEED_MAX_CONCURRENCY must be positive")
	}
	if c.DefaultTopN <= 0 {
		return fmt.Errorf("SEARCH_DEFAULT_TOP_N must be positive")
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("SEARCH_MAX_TOP_N cannot be below SEARCH_DEFAULT_TOP_N")
	}
	if c.DefaultRecency < 0 {
		return fmt.Errorf("SEARCH_DEFAULT_RECENCY_EXPONENT cannot be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}
