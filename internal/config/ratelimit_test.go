package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	for _, k := range []string{"RATE_LIMIT_ENABLED", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW", "RATE_LIMIT_PREFIX"} {
		t.Setenv(k, "")
	}
	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigClampsSubSecondWindow(t *testing.T) {
	// The limiter buckets by whole seconds, so a sub-second window must
	// round up instead of reaching the middleware as-is.
	for _, w := range []string{"500ms", "1ns", "999ms"} {
		t.Setenv("RATE_LIMIT_WINDOW", w)
		cfg := LoadRateLimitConfig()
		assert.Equal(t, time.Second, cfg.Window, "window %s", w)
	}
}

func TestLoadRateLimitConfigClampsLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Limit)
}
