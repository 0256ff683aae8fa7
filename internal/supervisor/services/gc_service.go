// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/garderobe/internal/feedback"
	"github.com/tomtom215/garderobe/internal/metrics"
)

// GCTarget is a store that supports value-log garbage collection.
// Satisfied by the wardrobe and feedback stores.
type GCTarget interface {
	RunGC() error
}

// StoreGCService periodically runs Badger value-log garbage collection on
// every registered store. Badger only reclaims space when GC is driven
// externally, so this runs for the life of the process.
type StoreGCService struct {
	targets  map[string]GCTarget
	interval time.Duration
	log      zerolog.Logger
}

// NewStoreGCService creates the GC loop. Targets are keyed by store name for
// logging and metrics.
func NewStoreGCService(targets map[string]GCTarget, interval time.Duration, log zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		targets:  targets,
		interval: interval,
		log:      log.With().Str("component", "store-gc").Logger(),
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

// runOnce runs one GC pass over every target. Badger reports ErrNoRewrite
// when nothing was reclaimed; that is a normal outcome, not a failure.
func (s *StoreGCService) runOnce() {
	for name, target := range s.targets {
		err := target.RunGC()
		switch {
		case err == nil:
			metrics.StoreGCRuns.WithLabelValues("reclaimed").Inc()
			s.log.Debug().Str("store", name).Msg("value log GC reclaimed space")
		case feedback.IsNoRewrite(err):
			metrics.StoreGCRuns.WithLabelValues("noop").Inc()
		default:
			metrics.StoreGCRuns.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("store", name).Msg("value log GC failed")
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (s *StoreGCService) String() string {
	return "store-gc"
}
