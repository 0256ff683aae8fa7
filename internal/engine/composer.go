// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/tomtom215/garderobe/internal/models"
)

// rankedItem pairs an eligible garment with its strategy score.
type rankedItem struct {
	item  models.GarmentItem
	score float64
}

// Composer greedily assembles one candidate outfit for one strategy. A new
// composer is built per strategy execution; it holds no cross-request state.
type Composer struct {
	cfg    StrategyConfig
	limits LimitsConfig
	scorer *Scorer
}

// NewComposer builds a composer for one strategy execution.
func NewComposer(cfg StrategyConfig, limits LimitsConfig, scorer *Scorer) *Composer {
	return &Composer{cfg: cfg, limits: limits, scorer: scorer}
}

// Compose assembles a candidate from the eligible items under the given
// requirements. Selection is a two-phase greedy: required categories first,
// then best-score fill up to the strategy's target size. All ordering is
// deterministic, so identical inputs yield identical candidates.
func (cp *Composer) Compose(ctx context.Context, eligible []models.GarmentItem, reqs Requirements, gc *models.GenerationContext) (*CandidateOutfit, error) {
	ranked := cp.rank(eligible, gc)

	target := reqs.BaseTarget + cp.cfg.TargetOffset
	if target < reqs.MinItems {
		target = reqs.MinItems
	}
	if target > reqs.MaxItems {
		target = reqs.MaxItems
	}

	outfit := &CandidateOutfit{Strategy: cp.cfg.Name}
	var scores []float64

	add := func(r rankedItem) {
		outfit.Items = append(outfit.Items, r.item)
		scores = append(scores, r.score)
	}

	// An anchored request must carry the anchor; an anchor the filter
	// rejected fails this strategy outright.
	if gc.AnchorItemID != "" {
		anchor, ok := findRanked(ranked, gc.AnchorItemID)
		if !ok {
			return nil, &ComposeError{Strategy: cp.cfg.Name, Reason: reasonAnchorNotEligible}
		}
		add(anchor)
		if anchor.item.Category == models.CategoryDress {
			reqs = reqs.WithoutSeparates()
		}
	}

	// Dress-first path: when the occasion favors a dress and one is
	// available, commit to it before filling separates.
	if reqs.DressAllowed && gc.Occasion.FavorsDress() && !outfit.HasDress() && outfit.CategoryCounts()[models.CategoryTop] == 0 && outfit.CategoryCounts()[models.CategoryBottom] == 0 {
		if dress, ok := bestOfCategory(ranked, models.CategoryDress, outfit); ok {
			add(dress)
			reqs = reqs.WithoutSeparates()
		}
	}

	// Phase 1: cover every required category with its best-ranked item.
	for _, cat := range reqs.Required {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("strategy %s: %w", cp.cfg.Name, err)
		}
		if outfit.CategoryCounts()[cat] > 0 {
			continue
		}
		if r, ok := bestOfCategory(ranked, cat, outfit); ok && cp.compatible(r.item, outfit, reqs, target) {
			add(r)
		}
	}

	// Phase 2: fill remaining slots best-score-first. Once the floor is met,
	// low-marginal-gain items are left out rather than padding the outfit.
	for _, r := range ranked {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("strategy %s: %w", cp.cfg.Name, err)
		}
		if len(outfit.Items) >= target {
			break
		}
		if outfit.Contains(r.item.ID) || !cp.compatible(r.item, outfit, reqs, target) {
			continue
		}
		if len(outfit.Items) >= reqs.MinItems &&
			len(reqs.MissingRequired(outfit.CategoryCounts())) == 0 &&
			r.score < cp.cfg.MinItemScore {
			continue
		}
		add(r)
	}

	if missing := reqs.MissingRequired(outfit.CategoryCounts()); len(missing) > 0 {
		return nil, &ComposeError{Strategy: cp.cfg.Name, Reason: reasonRequiredUnsat, Missing: missing}
	}

	outfit.Score = cp.scorer.ScoreOutfit(outfit.Items, scores, gc)
	return outfit, nil
}

// rank scores every eligible item and orders by score descending, breaking
// ties by garment ID ascending.
func (cp *Composer) rank(eligible []models.GarmentItem, gc *models.GenerationContext) []rankedItem {
	ranked := make([]rankedItem, len(eligible))
	for i := range eligible {
		ranked[i] = rankedItem{
			item:  eligible[i],
			score: cp.scorer.ScoreItem(&eligible[i], gc),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].item.ID < ranked[j].item.ID
	})
	return ranked
}

// compatible reports whether adding item to the outfit keeps it structurally
// valid: no duplicates, dress and separates never mix, and the category's
// scaled cap is respected.
func (cp *Composer) compatible(item models.GarmentItem, outfit *CandidateOutfit, reqs Requirements, target int) bool {
	if outfit.Contains(item.ID) {
		return false
	}

	counts := outfit.CategoryCounts()
	switch item.Category {
	case models.CategoryDress:
		if !reqs.DressAllowed || counts[models.CategoryTop] > 0 || counts[models.CategoryBottom] > 0 {
			return false
		}
	case models.CategoryTop, models.CategoryBottom:
		if counts[models.CategoryDress] > 0 {
			return false
		}
	}

	remaining := target - len(outfit.Items)
	allowed := reqs.Limits.AllowedAt(item.Category, remaining, cp.limits.ScaleFactor)
	return counts[item.Category] < allowed
}

// findRanked locates a ranked item by garment ID.
func findRanked(ranked []rankedItem, itemID string) (rankedItem, bool) {
	for _, r := range ranked {
		if r.item.ID == itemID {
			return r, true
		}
	}
	return rankedItem{}, false
}

// bestOfCategory returns the highest-ranked item of cat not already selected.
func bestOfCategory(ranked []rankedItem, cat models.Category, outfit *CandidateOutfit) (rankedItem, bool) {
	for _, r := range ranked {
		if r.item.Category == cat && !outfit.Contains(r.item.ID) {
			return r, true
		}
	}
	return rankedItem{}, false
}
