// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/garderobe/internal/models"
)

// Result is the outcome of one successful generation.
type Result struct {
	// Outfit is the winning candidate.
	Outfit CandidateOutfit `json:"outfit"`

	// Fallback is true when the guaranteed-minimal composer produced the
	// outfit because every configured strategy failed.
	Fallback bool `json:"fallback"`

	// Metadata describes how the result was produced.
	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata carries generation diagnostics.
type ResultMetadata struct {
	// RequestID echoes the caller-supplied request identifier.
	RequestID string `json:"request_id,omitempty"`

	// StrategiesRun is the number of configured strategies executed.
	StrategiesRun int `json:"strategies_run"`

	// StrategyFailures maps failed strategy names to their failure reasons.
	StrategyFailures map[string]string `json:"strategy_failures,omitempty"`

	// LatencyMS is the end-to-end generation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Seed echoes the request seed for reproduction.
	Seed int64 `json:"seed"`

	// Timestamp is when generation started.
	Timestamp time.Time `json:"timestamp"`
}

// strategyOutcome is one strategy's result slot. Outcomes are written into a
// pre-sized slice indexed by strategy position, so collection order never
// depends on goroutine scheduling.
type strategyOutcome struct {
	candidate *CandidateOutfit
	priority  int
	err       error
}

// Engine composes outfits by running every configured strategy concurrently
// and arbitrating the validated candidates. It is safe for concurrent use.
type Engine struct {
	cfg       *Config
	validator *Validator
	fallback  *FallbackComposer
	log       zerolog.Logger
}

// New creates an engine from the given configuration. The configuration is
// cloned; later mutation by the caller has no effect.
func New(cfg *Config, log zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	for i := range cfg.Strategies {
		if cfg.Strategies[i].Name == FallbackStrategyName {
			return nil, fmt.Errorf("strategy name %q is reserved", FallbackStrategyName)
		}
	}

	validator := NewValidator()
	return &Engine{
		cfg:       cfg.Clone(),
		validator: validator,
		fallback:  NewFallbackComposer(validator),
		log:       log.With().Str("component", "engine").Logger(),
	}, nil
}

// Generate composes one outfit for the given context. It returns
// *UnsatisfiableRequestError when no valid outfit exists, including after the
// fallback; any other error is a caller or context problem. Identical
// (wardrobe, context, seed) inputs produce identical results; recency scoring
// is anchored to gc.RequestedAt, so callers that pin it get byte-identical
// replays regardless of when they run.
func (e *Engine) Generate(ctx context.Context, gc models.GenerationContext) (*Result, error) {
	start := time.Now()
	ref := gc.RequestedAt
	if ref.IsZero() {
		ref = start
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !gc.Occasion.Valid() {
		return nil, &UnsatisfiableRequestError{Violations: []string{reasonInvalidOccasion + ": " + gc.Occasion.String()}}
	}
	if len(gc.Wardrobe) == 0 {
		return nil, &UnsatisfiableRequestError{Violations: []string{reasonWardrobeEmpty}}
	}
	if len(gc.Wardrobe) > e.cfg.Limits.MaxWardrobeItems {
		return nil, fmt.Errorf("wardrobe snapshot has %d items, limit is %d", len(gc.Wardrobe), e.cfg.Limits.MaxWardrobeItems)
	}
	if gc.AnchorItemID != "" && gc.AnchorItem() == nil {
		return nil, &UnsatisfiableRequestError{Violations: []string{reasonAnchorNotInCloset + ": " + gc.AnchorItemID}}
	}

	reqs := RequirementsFor(gc.Occasion, gc.Weather)
	outcomes := make([]strategyOutcome, len(e.cfg.Strategies))

	var wg sync.WaitGroup
	for i := range e.cfg.Strategies {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			outcomes[idx] = e.runStrategy(ctx, e.cfg.Strategies[idx], reqs, &gc, ref.Unix())
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failures := make(map[string]string)
	var best *strategyOutcome
	for i := range outcomes {
		o := &outcomes[i]
		if o.err != nil {
			failures[e.cfg.Strategies[i].Name] = o.err.Error()
			e.log.Debug().
				Str("strategy", e.cfg.Strategies[i].Name).
				Str("request_id", gc.RequestID).
				Err(o.err).
				Msg("strategy failed")
			continue
		}
		if best == nil ||
			o.candidate.Score > best.candidate.Score ||
			(o.candidate.Score == best.candidate.Score && o.priority < best.priority) {
			best = o
		}
	}

	result := &Result{
		Metadata: ResultMetadata{
			RequestID:        gc.RequestID,
			StrategiesRun:    len(e.cfg.Strategies),
			StrategyFailures: failures,
			Seed:             gc.Seed,
			Timestamp:        start.UTC(),
		},
	}

	if best != nil {
		result.Outfit = *best.candidate
	} else {
		outfit, violations := e.fallback.Compose(&gc)
		if outfit == nil {
			all := make([]string, 0, len(failures)+len(violations))
			for _, s := range e.cfg.Strategies {
				if msg, ok := failures[s.Name]; ok {
					all = append(all, msg)
				}
			}
			all = append(all, violations...)
			return nil, &UnsatisfiableRequestError{Violations: all}
		}
		result.Outfit = *outfit
		result.Fallback = true
		e.log.Info().
			Str("request_id", gc.RequestID).
			Int("failed_strategies", len(failures)).
			Err(ErrAllStrategiesFailed).
			Msg("using fallback outfit")
	}

	result.Metadata.LatencyMS = time.Since(start).Milliseconds()
	e.log.Debug().
		Str("request_id", gc.RequestID).
		Str("strategy", result.Outfit.Strategy).
		Float64("score", result.Outfit.Score).
		Int("items", len(result.Outfit.Items)).
		Bool("fallback", result.Fallback).
		Int64("latency_ms", result.Metadata.LatencyMS).
		Msg("outfit generated")

	return result, nil
}

// runStrategy executes one strategy under its timeout: filter, compose,
// validate. Panics are contained and reported as a failed attempt, never
// propagated to sibling strategies.
func (e *Engine) runStrategy(ctx context.Context, cfg StrategyConfig, reqs Requirements, gc *models.GenerationContext, nowUnix int64) (outcome strategyOutcome) {
	outcome.priority = cfg.Priority

	defer func() {
		if r := recover(); r != nil {
			outcome.candidate = nil
			outcome.err = &ComposeError{Strategy: cfg.Name, Reason: fmt.Sprintf("%s: %v", reasonPanicked, r)}
		}
	}()

	sctx, cancel := context.WithTimeout(ctx, e.cfg.Limits.StrategyTimeout)
	defer cancel()

	eligible, err := NewCandidateFilter(cfg.Match).Filter(gc)
	if err != nil {
		outcome.err = fmt.Errorf("strategy %s: %w", cfg.Name, err)
		return outcome
	}

	scorer := NewScorer(cfg, e.cfg, nowUnix, gc.Seed)
	candidate, err := NewComposer(cfg, e.cfg.Limits, scorer).Compose(sctx, eligible, reqs, gc)
	if err != nil {
		outcome.err = err
		return outcome
	}

	if res := e.validator.Validate(candidate, reqs, gc); !res.Valid {
		outcome.err = &ValidationFailedError{Strategy: cfg.Name, Violations: res.Violations}
		return outcome
	}

	outcome.candidate = candidate
	return outcome
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() *Config {
	return e.cfg.Clone()
}
