// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"hash/fnv"
	"math"

	"github.com/tomtom215/garderobe/internal/models"
)

// Scorer computes item and outfit scores for one strategy within one
// generation request. It is a pure function of its construction inputs: the
// same scorer applied to the same item always returns the same score.
type Scorer struct {
	weights    ScoreWeights
	strategy   string
	seed       int64
	wearWindow float64 // seconds
	now        float64 // unix seconds, the request's pinned reference time
}

// NewScorer builds a scorer for one strategy. nowUnix is the request's
// reference time, pinned once so every strategy sees the same clock.
func NewScorer(cfg StrategyConfig, engineCfg *Config, nowUnix int64, seed int64) *Scorer {
	return &Scorer{
		weights:    cfg.Weights.Normalize(),
		strategy:   cfg.Name,
		seed:       seed,
		wearWindow: engineCfg.RecentWearWindow.Seconds(),
		now:        float64(nowUnix),
	}
}

// ScoreItem returns the weighted item score in [0, 1], plus a deterministic
// sub-unit jitter so equal-scoring items still order reproducibly per
// (seed, strategy).
func (s *Scorer) ScoreItem(item *models.GarmentItem, gc *models.GenerationContext) float64 {
	score := s.weights.Style*s.styleScore(item, gc) +
		s.weights.Weather*s.weatherScore(item, &gc.Weather) +
		s.weights.Occasion*s.occasionScore(item, gc.Occasion) +
		s.weights.Feedback*s.feedbackScore(item, gc.Feedback) +
		s.weights.Fit*s.fitScore(item, gc.FitPreference) +
		s.weights.Novelty*s.noveltyScore(item, gc.Feedback)

	return clamp01(score) + s.jitter(item.ID)
}

// ScoreOutfit returns the aggregate candidate score: the mean item score plus
// a pairwise cohesion term from historical pair affinity. The cohesion term
// is bounded so it can reorder close candidates but not dominate.
func (s *Scorer) ScoreOutfit(items []models.GarmentItem, itemScores []float64, gc *models.GenerationContext) float64 {
	if len(items) == 0 {
		return 0
	}

	var sum float64
	for _, v := range itemScores {
		sum += v
	}
	mean := sum / float64(len(itemScores))

	var cohesion float64
	var pairs int
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			cohesion += gc.Feedback.PairAffinityFor(items[i].ID, items[j].ID)
			pairs++
		}
	}
	if pairs > 0 {
		cohesion /= float64(pairs)
	}

	return mean + 0.1*cohesion
}

// styleScore rewards exact style matches, then family matches, and gives a
// small additional boost when the item carries the requested mood as a style
// tag.
func (s *Scorer) styleScore(item *models.GarmentItem, gc *models.GenerationContext) float64 {
	var base float64
	switch {
	case gc.Style == "":
		base = 0.5
	case item.HasStyleTag(gc.Style):
		base = 1.0
	default:
		base = 0.2
		for _, tag := range item.StyleTags {
			if stylesRelated(tag, gc.Style) {
				base = 0.7
				break
			}
		}
	}

	if gc.Mood != "" && item.HasStyleTag(gc.Mood) {
		base += 0.1
	}
	return clamp01(base)
}

// weatherScore compares the item's warmth rating to the warmth the weather
// calls for, and penalizes non-water-resistant outer layers in wet weather.
func (s *Scorer) weatherScore(item *models.GarmentItem, w *models.WeatherSnapshot) float64 {
	feels := w.FeelsLikeC
	if feels == 0 && w.TemperatureC != 0 {
		feels = w.TemperatureC
	}

	// Target warmth rises linearly as it gets colder; 22C and above wants 0,
	// -8C and below wants 1.
	target := clamp01((22 - feels) / 30)
	warmth := item.MetaFloat(models.MetaWarmth, 0.5)
	score := 1 - math.Abs(warmth-target)

	if w.Wet() && item.Layering == models.LayerOuter && !item.MetaBool(models.MetaWaterResistant, false) {
		score -= 0.3
	}
	return clamp01(score)
}

// occasionScore gives full credit for an explicit occasion tag, otherwise
// decays with formality distance from the occasion's target. Dresses get a
// bonus for occasions that favor them.
func (s *Scorer) occasionScore(item *models.GarmentItem, occasion models.Occasion) float64 {
	var score float64
	if item.HasOccasionTag(occasion.String()) {
		score = 1.0
	} else {
		dist := math.Abs(float64(item.Formality - occasion.FormalityTarget()))
		score = 1 - 0.25*dist
	}

	if item.Category == models.CategoryDress && occasion.FavorsDress() {
		score += 0.15
	}
	return clamp01(score)
}

// feedbackScore maps the [-1, 1] affinity onto [0, 1]. Items with no history
// land at the neutral 0.5.
func (s *Scorer) feedbackScore(item *models.GarmentItem, fb *models.FeedbackSignal) float64 {
	return clamp01((fb.AffinityFor(item.ID) + 1) / 2)
}

// fitScore rewards items matching the requested fit profile. With no
// preference everything is neutral.
func (s *Scorer) fitScore(item *models.GarmentItem, pref string) float64 {
	if pref == "" {
		return 0.7
	}
	switch item.Meta(models.MetaFit, "regular") {
	case pref:
		return 1.0
	case "regular":
		return 0.7
	default:
		return 0.4
	}
}

// noveltyScore rewards items not worn recently. Items worn within half the
// window are strongly penalized; items worn within the full window mildly.
// Items never worn get full credit.
func (s *Scorer) noveltyScore(item *models.GarmentItem, fb *models.FeedbackSignal) float64 {
	if fb == nil || fb.LastWorn == nil {
		return 1.0
	}
	t, ok := fb.LastWorn[item.ID]
	if !ok {
		return 1.0
	}
	age := s.now - float64(t.Unix())
	switch {
	case s.wearWindow <= 0:
		return 1.0
	case age <= s.wearWindow/2:
		return 0.2
	case age <= s.wearWindow:
		return 0.6
	default:
		return 1.0
	}
}

// jitter derives a deterministic tie-break offset in [0, 1e-6) from the
// request seed, the strategy name, and the item ID. It replaces shared RNG
// state so concurrent strategies stay reproducible regardless of scheduling.
func (s *Scorer) jitter(itemID string) float64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(s.seed >> (8 * i))
	}
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte(s.strategy))
	_, _ = h.Write([]byte(itemID))
	return float64(h.Sum64()%1_000_000) * 1e-12
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
