package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "nats://localhost:4222", cfg.NATSUrl)
	assert.Equal(t, "beelight", cfg.NATSStream)
	assert.Equal(t, "beelight.db", cfg.DuckDBPath)
	assert.Equal(t, "sensor/+/illuminance", cfg.MQTTTopicIlluminance)
	assert.Equal(t, 0, cfg.MinAmbient)
	assert.Equal(t, 2000, cfg.MaxAmbient)
	assert.Equal(t, 10, cfg.BinCount)
	assert.InDelta(t, 0.3, cfg.TimeWeight, 1e-9)
	assert.InDelta(t, 0.4, cfg.RecencyWeight, 1e-9)
	assert.InDelta(t, 0.3, cfg.ActivityWeight, 1e-9)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("NATS_URL", "nats://queue:4222")
	t.Setenv("DUCKDB_PATH", "/var/lib/beelight/history.db")
	t.Setenv("MODEL_BIN_COUNT", "16")
	t.Setenv("MODEL_RECENCY_WEIGHT", "0.5")
	t.Setenv("CLEANUP_INTERVAL", "30m")

	cfg := Load()

	assert.Equal(t, "nats://queue:4222", cfg.NATSUrl)
	assert.Equal(t, "/var/lib/beelight/history.db", cfg.DuckDBPath)
	assert.Equal(t, 16, cfg.BinCount)
	assert.InDelta(t, 0.5, cfg.RecencyWeight, 1e-9)
	assert.Equal(t, 30*time.Minute, cfg.CleanupInterval)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MODEL_BIN_COUNT", "lots")
	t.Setenv("MODEL_TIME_WEIGHT", "heavy")
	t.Setenv("CLEANUP_INTERVAL", "soonish")

	cfg := Load()

	assert.Equal(t, 10, cfg.BinCount)
	assert.InDelta(t, 0.3, cfg.TimeWeight, 1e-9)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
