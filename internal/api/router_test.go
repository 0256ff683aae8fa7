// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/garderobe/internal/engine"
	"github.com/tomtom215/garderobe/internal/feedback"
	"github.com/tomtom215/garderobe/internal/wardrobe"
)

func newRouterWithConfig(t *testing.T, cfg RouterConfig) http.Handler {
	t.Helper()

	ws, err := wardrobe.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	fs, err := feedback.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	eng, err := engine.New(nil, zerolog.Nop())
	require.NoError(t, err)

	return NewRouter(NewHandler(eng, ws, fs, staticWeather{}, 5000, zerolog.Nop()), cfg)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	router := newRouterWithConfig(t, RouterConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "garderobe_")
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()
	router := newRouterWithConfig(t, RouterConfig{})

	// Generated when absent.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// Propagated when present.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	router := newRouterWithConfig(t, RouterConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	})

	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wardrobe/items?user_id=u1", nil)
		req.RemoteAddr = "10.1.2.3:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// Health is outside the rate-limited subtree.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()
	router := newRouterWithConfig(t, RouterConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
