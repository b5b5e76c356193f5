package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 1000, cfg.PageSize)
	assert.Equal(t, FeedPoll, cfg.Feed)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TALLY_DB", "/tmp/x.db")
	t.Setenv("TALLY_USER", " alice ")
	t.Setenv("TALLY_TICK_MS", "250")
	t.Setenv("TALLY_PAGE_SIZE", "50")
	t.Setenv("TALLY_FEED", "REDIS")
	t.Setenv("TALLY_POLL_MS", "5000")
	t.Setenv("TALLY_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("TALLY_REDIS_CHANNEL", "team")
	t.Setenv("TALLY_LOG_USE_CASES", "true")
	t.Setenv("TALLY_METRICS_ADDR", ":9101")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "alice", cfg.DefaultUser)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, FeedRedis, cfg.Feed)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, "team", cfg.RedisChannel)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, ":9101", cfg.MetricsAddr)
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("TALLY_DB", "/tmp/x.db")
	t.Setenv("TALLY_TICK_MS", "-1")
	t.Setenv("TALLY_PAGE_SIZE", "lots")
	t.Setenv("TALLY_FEED", "carrier-pigeon")
	t.Setenv("TALLY_LOG_USE_CASES", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 1000, cfg.PageSize)
	assert.Equal(t, FeedPoll, cfg.Feed)
	assert.False(t, cfg.LogUseCases)
}

func TestLoadConfig_DefaultDBUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TALLY_DB", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".tally", "tally.db"), cfg.DBPath)
}

func TestLoadConfig_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TALLY_REDIS_CHANNEL=from-dotenv\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("TALLY_DB", "/tmp/x.db")
	// Registers a restore, then removes the variable so .env can supply it.
	t.Setenv("TALLY_REDIS_CHANNEL", "")
	require.NoError(t, os.Unsetenv("TALLY_REDIS_CHANNEL"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.RedisChannel)
}
