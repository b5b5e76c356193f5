package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// FeedBackend selects how "who is working now" updates are delivered.
type FeedBackend string

const (
	FeedPoll  FeedBackend = "poll"
	FeedRedis FeedBackend = "redis"
)

// Config holds all runtime settings for the tally binary.
type Config struct {
	DBPath       string
	DefaultUser  string
	TickInterval time.Duration
	PageSize     int
	Feed         FeedBackend
	PollInterval time.Duration
	RedisURL     string
	RedisChannel string
	LogUseCases  bool
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string
}

// DefaultConfig returns a Config with sensible defaults. DBPath is left
// empty and resolved against the home directory by LoadConfig.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		PageSize:     1000,
		Feed:         FeedPoll,
		PollInterval: 30 * time.Second,
		RedisURL:     "redis://localhost:6379/0",
		RedisChannel: "tally:open_sessions",
	}
}

// LoadConfig reads an optional .env file and then TALLY_* environment
// variables, falling back to defaults for unset or invalid values.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("TALLY_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".tally", "tally.db")
	}
	cfg.DefaultUser = strings.TrimSpace(os.Getenv("TALLY_USER"))

	if v := os.Getenv("TALLY_TICK_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TickInterval = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("TALLY_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("TALLY_FEED"); v != "" {
		switch FeedBackend(strings.ToLower(v)) {
		case FeedPoll:
			cfg.Feed = FeedPoll
		case FeedRedis:
			cfg.Feed = FeedRedis
		}
	}
	if v := os.Getenv("TALLY_POLL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollInterval = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("TALLY_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("TALLY_REDIS_CHANNEL"); v != "" {
		cfg.RedisChannel = v
	}
	if v := os.Getenv("TALLY_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	cfg.MetricsAddr = os.Getenv("TALLY_METRICS_ADDR")

	return cfg, nil
}
