// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package weather fetches current conditions for outfit generation.
//
// The provider wraps an Open-Meteo-compatible forecast API with a TTL cache,
// a per-minute rate limiter, and a circuit breaker. Weather is advisory:
// every failure path degrades to the last cached snapshot or a mild static
// default, never to a request error.
package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/garderobe/internal/config"
	"github.com/tomtom215/garderobe/internal/metrics"
	"github.com/tomtom215/garderobe/internal/models"
)

// maxResponseBytes caps the upstream response body.
const maxResponseBytes = 1 << 20

// Provider serves weather snapshots. It is safe for concurrent use.
type Provider struct {
	cfg     config.WeatherConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[models.WeatherSnapshot]
	limiter *rate.Limiter
	log     zerolog.Logger

	mu       sync.RWMutex
	cached   models.WeatherSnapshot
	cachedAt time.Time
}

// New creates a weather provider.
func New(cfg config.WeatherConfig, log zerolog.Logger) *Provider {
	p := &Provider{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log.With().Str("component", "weather").Logger(),
	}

	rpm := cfg.RequestsPerMinute
	if rpm < 1 {
		rpm = 1
	}
	p.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)

	p.breaker = gobreaker.NewCircuitBreaker[models.WeatherSnapshot](gobreaker.Settings{
		Name:    "weather-upstream",
		Timeout: 2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				metrics.WeatherBreakerState.Set(1)
			} else {
				metrics.WeatherBreakerState.Set(0)
			}
			p.log.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("weather circuit breaker state changed")
		},
	})

	return p
}

// StaticDefault is the snapshot used when live weather is unavailable and
// nothing is cached: a mild clear day that biases no category.
func StaticDefault() models.WeatherSnapshot {
	return models.WeatherSnapshot{
		TemperatureC: 18,
		FeelsLikeC:   18,
		Condition:    models.ConditionClear,
		RetrievedAt:  time.Time{},
	}
}

// Snapshot returns the current weather. Order of preference: fresh cache,
// live upstream, stale cache, static default.
func (p *Provider) Snapshot(ctx context.Context) models.WeatherSnapshot {
	if !p.cfg.Enabled {
		metrics.WeatherLookups.WithLabelValues("static").Inc()
		return StaticDefault()
	}

	if snap, ok := p.fromCache(false); ok {
		metrics.WeatherLookups.WithLabelValues("cache").Inc()
		return snap
	}

	if !p.limiter.Allow() {
		return p.degrade(nil)
	}

	snap, err := p.breaker.Execute(func() (models.WeatherSnapshot, error) {
		return p.fetch(ctx)
	})
	if err != nil {
		return p.degrade(err)
	}

	p.mu.Lock()
	p.cached = snap
	p.cachedAt = time.Now()
	p.mu.Unlock()

	metrics.WeatherLookups.WithLabelValues("upstream").Inc()
	return snap
}

// fromCache returns the cached snapshot. When stale is true, TTL is ignored
// and any previously fetched snapshot qualifies.
func (p *Provider) fromCache(stale bool) (models.WeatherSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.cachedAt.IsZero() {
		return models.WeatherSnapshot{}, false
	}
	if !stale && time.Since(p.cachedAt) > p.cfg.CacheTTL {
		return models.WeatherSnapshot{}, false
	}
	return p.cached, true
}

// degrade serves the best available substitute for a failed lookup.
func (p *Provider) degrade(err error) models.WeatherSnapshot {
	if err != nil {
		p.log.Warn().Err(err).Msg("weather lookup failed, degrading")
	}
	if snap, ok := p.fromCache(true); ok {
		metrics.WeatherLookups.WithLabelValues("cache").Inc()
		return snap
	}
	metrics.WeatherLookups.WithLabelValues("static").Inc()
	return StaticDefault()
}

// openMeteoResponse is the subset of the forecast payload we consume.
type openMeteoResponse struct {
	Current struct {
		Temperature2M            float64 `json:"temperature_2m"`
		ApparentTemperature      float64 `json:"apparent_temperature"`
		PrecipitationProbability int     `json:"precipitation_probability"`
		WindSpeed10M             float64 `json:"wind_speed_10m"`
		WeatherCode              int     `json:"weather_code"`
	} `json:"current"`
}

// fetch performs one upstream request.
func (p *Provider) fetch(ctx context.Context) (models.WeatherSnapshot, error) {
	url := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,apparent_temperature,precipitation_probability,wind_speed_10m,weather_code",
		p.cfg.BaseURL, p.cfg.Latitude, p.cfg.Longitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return models.WeatherSnapshot{}, fmt.Errorf("weather upstream returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("read weather response: %w", err)
	}

	var payload openMeteoResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.WeatherSnapshot{}, fmt.Errorf("decode weather response: %w", err)
	}

	return models.WeatherSnapshot{
		TemperatureC:     payload.Current.Temperature2M,
		FeelsLikeC:       payload.Current.ApparentTemperature,
		PrecipitationPct: payload.Current.PrecipitationProbability,
		WindKPH:          payload.Current.WindSpeed10M,
		Condition:        conditionFromCode(payload.Current.WeatherCode),
		RetrievedAt:      time.Now().UTC(),
	}, nil
}

// conditionFromCode maps WMO weather interpretation codes to the coarse
// conditions the engine understands.
func conditionFromCode(code int) models.WeatherCondition {
	switch {
	case code == 0:
		return models.ConditionClear
	case code >= 1 && code <= 48:
		return models.ConditionCloudy
	case code >= 71 && code <= 77, code >= 85 && code <= 86:
		return models.ConditionSnow
	case code >= 51:
		return models.ConditionRain
	default:
		return models.ConditionClear
	}
}
