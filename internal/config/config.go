// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package config loads and validates the Garderobe service configuration.
//
// Configuration is layered: struct defaults first, then an optional YAML
// file, then environment variables, each layer overriding the last.
package config

import (
	"fmt"
	"time"
)

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Engine  EngineConfig  `koanf:"engine"`
	Storage StorageConfig `koanf:"storage"`
	Weather WeatherConfig `koanf:"weather"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host is the bind address.
	// Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port.
	// Default: 8184
	Port int `koanf:"port"`

	// Timeout bounds request read and write.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins. Empty disables CORS.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow.
	// Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window.
	// Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// EngineConfig configures the composition engine.
type EngineConfig struct {
	// StrategyTimeout bounds each composition strategy.
	// Default: 2s
	StrategyTimeout time.Duration `koanf:"strategy_timeout"`

	// ScaleFactor is the non-exclusive category scaling factor.
	// Default: 1.5
	ScaleFactor float64 `koanf:"scale_factor"`

	// MaxWardrobeItems caps the snapshot size per request.
	// Default: 5000
	MaxWardrobeItems int `koanf:"max_wardrobe_items"`

	// RecentWearWindow is the novelty penalty window.
	// Default: 168h
	RecentWearWindow time.Duration `koanf:"recent_wear_window"`
}

// StorageConfig configures the embedded Badger stores.
type StorageConfig struct {
	// Dir is the data directory. Wardrobe and feedback stores live in
	// subdirectories beneath it.
	// Default: /data/garderobe
	Dir string `koanf:"dir"`

	// InMemory runs the stores without disk persistence, for tests and
	// ephemeral deployments.
	// Default: false
	InMemory bool `koanf:"in_memory"`

	// GCInterval is how often value-log garbage collection runs.
	// Default: 10m
	GCInterval time.Duration `koanf:"gc_interval"`
}

// WeatherConfig configures the weather provider.
type WeatherConfig struct {
	// Enabled turns live weather lookups on. When false, requests use the
	// caller-supplied or static default snapshot.
	// Default: false
	Enabled bool `koanf:"enabled"`

	// BaseURL is the forecast API endpoint.
	// Default: https://api.open-meteo.com/v1/forecast
	BaseURL string `koanf:"base_url"`

	// Latitude and Longitude locate the wardrobe owner for forecasts.
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`

	// Timeout bounds one upstream request.
	// Default: 5s
	Timeout time.Duration `koanf:"timeout"`

	// CacheTTL is how long a fetched snapshot is reused.
	// Default: 15m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// RequestsPerMinute rate-limits upstream calls.
	// Default: 10
	RequestsPerMinute int `koanf:"requests_per_minute"`
}

// LoggingConfig configures the process-wide logger.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// defaultConfig returns a Config with production defaults. These are applied
// first, then overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8184,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Engine: EngineConfig{
			StrategyTimeout:  2 * time.Second,
			ScaleFactor:      1.5,
			MaxWardrobeItems: 5000,
			RecentWearWindow: 168 * time.Hour,
		},
		Storage: StorageConfig{
			Dir:        "/data/garderobe",
			GCInterval: 10 * time.Minute,
		},
		Weather: WeatherConfig{
			Enabled:           false,
			BaseURL:           "https://api.open-meteo.com/v1/forecast",
			Timeout:           5 * time.Second,
			CacheTTL:          15 * time.Minute,
			RequestsPerMinute: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if c.Server.RateLimitReqs < 1 {
		return fmt.Errorf("server.rate_limit_reqs must be positive, got %d", c.Server.RateLimitReqs)
	}

	if c.Engine.StrategyTimeout <= 0 {
		return fmt.Errorf("engine.strategy_timeout must be positive, got %v", c.Engine.StrategyTimeout)
	}
	if c.Engine.ScaleFactor <= 1 {
		return fmt.Errorf("engine.scale_factor must be > 1, got %f", c.Engine.ScaleFactor)
	}
	if c.Engine.MaxWardrobeItems < 1 {
		return fmt.Errorf("engine.max_wardrobe_items must be positive, got %d", c.Engine.MaxWardrobeItems)
	}

	if !c.Storage.InMemory && c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required unless storage.in_memory is set")
	}
	if c.Storage.GCInterval <= 0 {
		return fmt.Errorf("storage.gc_interval must be positive, got %v", c.Storage.GCInterval)
	}

	if c.Weather.Enabled {
		if c.Weather.BaseURL == "" {
			return fmt.Errorf("weather.base_url is required when weather is enabled")
		}
		if c.Weather.Latitude < -90 || c.Weather.Latitude > 90 {
			return fmt.Errorf("weather.latitude %f out of range", c.Weather.Latitude)
		}
		if c.Weather.Longitude < -180 || c.Weather.Longitude > 180 {
			return fmt.Errorf("weather.longitude %f out of range", c.Weather.Longitude)
		}
		if c.Weather.Timeout <= 0 {
			return fmt.Errorf("weather.timeout must be positive, got %v", c.Weather.Timeout)
		}
		if c.Weather.RequestsPerMinute < 1 {
			return fmt.Errorf("weather.requests_per_minute must be positive, got %d", c.Weather.RequestsPerMinute)
		}
	}

	return nil
}
