package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, "storefront-service", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, time.Second, cfg.OverlayDuration)
	assert.Equal(t, 3*time.Second, cfg.AnalysisDelay)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, RateLimitConfig{Requests: 100, Window: time.Minute}, cfg.RateLimit)
	assert.False(t, cfg.TracingEnabled)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("OVERLAY_DURATION", "250ms")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")

	cfg := FromEnv()

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 250*time.Millisecond, cfg.OverlayDuration)
	assert.True(t, cfg.TracingEnabled)
	assert.Zero(t, cfg.RateLimit.Requests)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ReportsMalformedValues(t *testing.T) {
	t.Setenv("OVERLAY_DURATION", "soon")
	t.Setenv("REDIS_DB", "zero")
	t.Setenv("SESSION_STORE", "mongo")
	t.Setenv("RATE_LIMIT_WINDOW", "0s")

	cfg := FromEnv()
	err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "OVERLAY_DURATION")
	assert.Contains(t, err.Error(), "REDIS_DB")
	assert.Contains(t, err.Error(), "SESSION_STORE")
	assert.Contains(t, err.Error(), "RATE_LIMIT_WINDOW")
	// malformed values keep their defaults
	assert.Equal(t, time.Second, cfg.OverlayDuration)
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_FILE=/tmp/catalog.yaml\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("CATALOG_FILE") })

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog.yaml", cfg.CatalogFile)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))

	require.NoError(t, err)
	assert.NotNil(t, cfg)
}
