package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-reservation/internal/config"
)

// cmdCapture records every Redis command and fails it without a live
// server, which also exercises the limiter's pass-through on Redis
// errors.
type cmdCapture struct {
	args [][]interface{}
}

func (h *cmdCapture) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *cmdCapture) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		h.args = append(h.args, cmd.Args())
		return errors.New("no server")
	}
}

func (h *cmdCapture) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func limiterApp(capture *cmdCapture, cfg config.RateLimitConfig, pre ...echo.MiddlewareFunc) *echo.Echo {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	rdb.AddHook(capture)

	e := echo.New()
	mw := append(append([]echo.MiddlewareFunc(nil), pre...), RateLimit(cfg, rdb))
	g := e.Group("/v1", mw...)
	g.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	return e
}

func ping(e *echo.Echo) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestRateLimitKeysByAuthenticatedUser(t *testing.T) {
	setUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", uint64(42))
			return next(c)
		}
	}
	capture := &cmdCapture{}
	cfg := config.RateLimitConfig{Enabled: true, Limit: 10, Window: time.Minute, Prefix: "rl"}
	e := limiterApp(capture, cfg, setUser)

	w := ping(e)
	// Redis is failing, so the request passes through.
	require.Equal(t, http.StatusOK, w.Code)

	// The counter key carries the authenticated user, not the IP.
	require.NotEmpty(t, capture.args)
	key := fmt.Sprintf("%v", capture.args[0][1])
	assert.Contains(t, key, "u:42")
	assert.NotContains(t, key, "ip:")
}

func TestRateLimitKeysByIPWithoutUser(t *testing.T) {
	capture := &cmdCapture{}
	cfg := config.RateLimitConfig{Enabled: true, Limit: 10, Window: time.Minute, Prefix: "rl"}
	e := limiterApp(capture, cfg)

	w := ping(e)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotEmpty(t, capture.args)
	key := fmt.Sprintf("%v", capture.args[0][1])
	assert.Contains(t, key, "ip:")
}

func TestRateLimitSubSecondWindow(t *testing.T) {
	// A hand-built config with a sub-second window must serve requests,
	// not panic computing the window bucket.
	capture := &cmdCapture{}
	cfg := config.RateLimitConfig{Enabled: true, Limit: 1, Window: 500 * time.Millisecond, Prefix: "rl"}
	e := limiterApp(capture, cfg)

	w := ping(e)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, capture.args)
}

func TestRateLimitDisabledPassThrough(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(config.RateLimitConfig{}, nil))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
