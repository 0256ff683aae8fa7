// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Command server runs the Garderobe HTTP service: embedded Badger stores,
// the outfit composition engine, the weather provider, and the API, all
// under a suture supervisor tree.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/tomtom215/garderobe/internal/api"
	"github.com/tomtom215/garderobe/internal/config"
	"github.com/tomtom215/garderobe/internal/engine"
	"github.com/tomtom215/garderobe/internal/feedback"
	"github.com/tomtom215/garderobe/internal/logging"
	"github.com/tomtom215/garderobe/internal/supervisor"
	"github.com/tomtom215/garderobe/internal/supervisor/services"
	"github.com/tomtom215/garderobe/internal/wardrobe"
	"github.com/tomtom215/garderobe/internal/weather"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	log := logging.Logger()
	log.Info().
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Bool("weather_enabled", cfg.Weather.Enabled).
		Bool("in_memory", cfg.Storage.InMemory).
		Msg("starting garderobe")

	wardrobeStore, err := wardrobe.Open(filepath.Join(cfg.Storage.Dir, "wardrobe"), cfg.Storage.InMemory)
	if err != nil {
		return fmt.Errorf("open wardrobe store: %w", err)
	}
	defer func() { _ = wardrobeStore.Close() }()

	feedbackStore, err := feedback.Open(filepath.Join(cfg.Storage.Dir, "feedback"), cfg.Storage.InMemory)
	if err != nil {
		return fmt.Errorf("open feedback store: %w", err)
	}
	defer func() { _ = feedbackStore.Close() }()

	weatherProvider := weather.New(cfg.Weather, log)

	engineCfg := engine.DefaultConfig()
	engineCfg.Limits.StrategyTimeout = cfg.Engine.StrategyTimeout
	engineCfg.Limits.ScaleFactor = cfg.Engine.ScaleFactor
	engineCfg.Limits.MaxWardrobeItems = cfg.Engine.MaxWardrobeItems
	engineCfg.RecentWearWindow = cfg.Engine.RecentWearWindow

	eng, err := engine.New(engineCfg, log)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	handler := api.NewHandler(eng, wardrobeStore, feedbackStore, weatherProvider, cfg.Engine.MaxWardrobeItems, log)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.Server.CORSOrigins,
		RateLimitReqs:   cfg.Server.RateLimitReqs,
		RateLimitWindow: cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddStorageService(services.NewStoreGCService(map[string]services.GCTarget{
		"wardrobe": wardrobeStore,
		"feedback": feedbackStore,
	}, cfg.Storage.GCInterval, log))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	log.Info().Msg("garderobe stopped")
	return nil
}
