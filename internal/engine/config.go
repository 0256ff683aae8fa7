// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"fmt"
	"time"
)

// MatchMode selects how the candidate filter decides eligibility.
type MatchMode int

const (
	// MatchExact requires a tag intersection between item and context.
	MatchExact MatchMode = iota
	// MatchSemantic accepts looser similarity (style families, formality
	// distance) when exact tags do not intersect.
	MatchSemantic
)

// String returns a human-readable mode name.
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// ScoreWeights defines the relative contribution of each sub-score.
// Weights are normalized at runtime, so they don't need to sum to 1.0.
type ScoreWeights struct {
	// Style is the weight of style/mood compatibility.
	Style float64 `json:"style" koanf:"style"`

	// Weather is the weight of weather appropriateness.
	Weather float64 `json:"weather" koanf:"weather"`

	// Occasion is the weight of occasion fit.
	Occasion float64 `json:"occasion" koanf:"occasion"`

	// Feedback is the weight of historical user-feedback affinity.
	Feedback float64 `json:"feedback" koanf:"feedback"`

	// Fit is the weight of fit-profile suitability.
	Fit float64 `json:"fit" koanf:"fit"`

	// Novelty is the weight of the style-evolution novelty bonus.
	Novelty float64 `json:"novelty" koanf:"novelty"`
}

// Normalize returns a copy with weights normalized to sum to 1.0.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w ScoreWeights) Normalize() ScoreWeights {
	sum := w.Style + w.Weather + w.Occasion + w.Feedback + w.Fit + w.Novelty
	if sum == 0 {
		const equal = 1.0 / 6.0
		return ScoreWeights{
			Style: equal, Weather: equal, Occasion: equal,
			Feedback: equal, Fit: equal, Novelty: equal,
		}
	}
	return ScoreWeights{
		Style:    w.Style / sum,
		Weather:  w.Weather / sum,
		Occasion: w.Occasion / sum,
		Feedback: w.Feedback / sum,
		Fit:      w.Fit / sum,
		Novelty:  w.Novelty / sum,
	}
}

// StrategyConfig is one configured composition attempt. Strategies differ
// only in these tunables, never in the core algorithm.
type StrategyConfig struct {
	// Name identifies the strategy in results and logs.
	Name string `json:"name" koanf:"name"`

	// Priority breaks score ties during arbitration; lower wins. Must be
	// unique across strategies.
	Priority int `json:"priority" koanf:"priority"`

	// Match is the candidate filter mode for this strategy.
	Match MatchMode `json:"match" koanf:"match"`

	// Weights is the scoring weight vector.
	Weights ScoreWeights `json:"weights" koanf:"weights"`

	// TargetOffset adjusts the occasion's base target item count. The
	// result is clamped to the occasion's [min, max] range.
	TargetOffset int `json:"target_offset" koanf:"target_offset"`

	// MinItemScore is the marginal-gain threshold: once the required
	// categories and minimum count are satisfied, items scoring below it
	// are not added.
	MinItemScore float64 `json:"min_item_score" koanf:"min_item_score"`
}

// LimitsConfig contains operational limits for one generation request.
type LimitsConfig struct {
	// StrategyTimeout bounds each strategy execution. A timed-out strategy
	// is a non-fatal failure and never aborts its siblings.
	// Default: 2s.
	StrategyTimeout time.Duration `json:"strategy_timeout" koanf:"strategy_timeout"`

	// ScaleFactor (> 1) lets non-exclusive categories absorb extra slots
	// late in selection. Exclusive categories ignore it.
	// Default: 1.5.
	ScaleFactor float64 `json:"scale_factor" koanf:"scale_factor"`

	// MaxWardrobeItems caps the snapshot size a request may carry.
	// Default: 5000.
	MaxWardrobeItems int `json:"max_wardrobe_items" koanf:"max_wardrobe_items"`
}

// Config contains all configuration for the composition engine.
type Config struct {
	// Strategies are the concurrent composition attempts, in declaration
	// order. At least one is required.
	Strategies []StrategyConfig `json:"strategies" koanf:"strategies"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// RecentWearWindow is how long after wearing an item the novelty
	// sub-score penalizes re-selection.
	// Default: 168h (one week).
	RecentWearWindow time.Duration `json:"recent_wear_window" koanf:"recent_wear_window"`
}

// DefaultConfig returns a Config with production defaults: three strategies
// emphasizing balance, weather, and novelty respectively.
func DefaultConfig() *Config {
	return &Config{
		Strategies: []StrategyConfig{
			{
				Name:     "classic",
				Priority: 1,
				Match:    MatchExact,
				Weights: ScoreWeights{
					Style: 0.25, Weather: 0.15, Occasion: 0.25,
					Feedback: 0.15, Fit: 0.10, Novelty: 0.10,
				},
				TargetOffset: 0,
				MinItemScore: 0.30,
			},
			{
				Name:     "weatherwise",
				Priority: 2,
				Match:    MatchExact,
				Weights: ScoreWeights{
					Style: 0.15, Weather: 0.35, Occasion: 0.20,
					Feedback: 0.10, Fit: 0.10, Novelty: 0.10,
				},
				TargetOffset: 1,
				MinItemScore: 0.30,
			},
			{
				Name:     "fresh",
				Priority: 3,
				Match:    MatchSemantic,
				Weights: ScoreWeights{
					Style: 0.25, Weather: 0.10, Occasion: 0.15,
					Feedback: 0.10, Fit: 0.10, Novelty: 0.30,
				},
				TargetOffset: 0,
				MinItemScore: 0.25,
			},
		},
		Limits: LimitsConfig{
			StrategyTimeout:  2 * time.Second,
			ScaleFactor:      1.5,
			MaxWardrobeItems: 5000,
		},
		RecentWearWindow: 168 * time.Hour,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if len(c.Strategies) == 0 {
		return fmt.Errorf("at least one strategy is required")
	}

	names := make(map[string]struct{}, len(c.Strategies))
	priorities := make(map[int]struct{}, len(c.Strategies))
	for i := range c.Strategies {
		s := &c.Strategies[i]
		if s.Name == "" {
			return fmt.Errorf("strategies[%d]: name is required", i)
		}
		if _, dup := names[s.Name]; dup {
			return fmt.Errorf("strategies[%d]: duplicate name %q", i, s.Name)
		}
		names[s.Name] = struct{}{}
		if _, dup := priorities[s.Priority]; dup {
			return fmt.Errorf("strategies[%d]: duplicate priority %d", i, s.Priority)
		}
		priorities[s.Priority] = struct{}{}
		if s.Match != MatchExact && s.Match != MatchSemantic {
			return fmt.Errorf("strategies[%d]: unknown match mode %d", i, s.Match)
		}
		if s.MinItemScore < 0 || s.MinItemScore > 1 {
			return fmt.Errorf("strategies[%d]: min_item_score must be in [0, 1], got %f", i, s.MinItemScore)
		}
	}

	if c.Limits.StrategyTimeout <= 0 {
		return fmt.Errorf("limits.strategy_timeout must be positive, got %v", c.Limits.StrategyTimeout)
	}
	if c.Limits.ScaleFactor <= 1 {
		return fmt.Errorf("limits.scale_factor must be > 1, got %f", c.Limits.ScaleFactor)
	}
	if c.Limits.MaxWardrobeItems < 1 {
		return fmt.Errorf("limits.max_wardrobe_items must be positive, got %d", c.Limits.MaxWardrobeItems)
	}
	if c.RecentWearWindow < 0 {
		return fmt.Errorf("recent_wear_window must be non-negative, got %v", c.RecentWearWindow)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := &Config{
		Strategies:       make([]StrategyConfig, len(c.Strategies)),
		Limits:           c.Limits,
		RecentWearWindow: c.RecentWearWindow,
	}
	copy(out.Strategies, c.Strategies)
	return out
}
