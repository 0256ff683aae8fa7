// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds the transport-level knobs for the HTTP router.
type RouterConfig struct {
	// CORSOrigins lists allowed CORS origins. Empty disables CORS.
	CORSOrigins []string

	// RateLimitReqs is the per-IP request budget per RateLimitWindow.
	// Zero disables rate limiting.
	RateLimitReqs int

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration
}

// NewRouter builds the full route tree.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger())
	r.Use(chimiddleware.Recoverer)

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
			MaxAge:         86400,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SecurityHeaders())
		r.Use(Metrics())
		if cfg.RateLimitReqs > 0 {
			window := cfg.RateLimitWindow
			if window <= 0 {
				window = time.Minute
			}
			r.Use(httprate.Limit(cfg.RateLimitReqs, window,
				httprate.WithKeyFuncs(httprate.KeyByIP)))
		}

		r.Post("/outfits/recommend", h.Recommend)

		r.Route("/feedback", func(r chi.Router) {
			r.Post("/", h.RecordFeedback)
			r.Get("/", h.ListFeedback)
		})

		r.Route("/wardrobe/items", func(r chi.Router) {
			r.Get("/", h.ListItems)
			r.Post("/", h.CreateItem)
			r.Get("/{id}", h.GetItem)
			r.Put("/{id}", h.UpdateItem)
			r.Delete("/{id}", h.DeleteItem)
		})
	})

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
