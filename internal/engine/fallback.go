// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"math"
	"sort"

	"github.com/tomtom215/garderobe/internal/models"
)

// FallbackStrategyName identifies the guaranteed-minimal fallback in results
// and logs. It is reserved; configured strategies may not use it.
const FallbackStrategyName = "fallback"

// FallbackComposer produces the guaranteed-minimal outfit when every
// configured strategy fails. It ignores style, mood, and feedback entirely
// and optimizes one thing only: a wearable outfit covering the required
// categories, picked by formality proximity with garment-ID tie-breaks. No
// scoring randomness is involved, so its output depends only on the wardrobe
// and the occasion.
type FallbackComposer struct {
	validator *Validator
}

// NewFallbackComposer returns a fallback composer.
func NewFallbackComposer(validator *Validator) *FallbackComposer {
	return &FallbackComposer{validator: validator}
}

// Compose builds the minimal outfit from the wardrobe snapshot. It returns
// the violations that prevented composition when even the minimal outfit is
// impossible; a non-nil outfit always passed the structural validation rules.
func (fc *FallbackComposer) Compose(gc *models.GenerationContext) (*CandidateOutfit, []string) {
	reqs := RequirementsFor(gc.Occasion, gc.Weather)

	// Season suitability still gates the fallback; everything else is open.
	pool := make([]models.GarmentItem, 0, len(gc.Wardrobe))
	for i := range gc.Wardrobe {
		if gc.Season == "" || gc.Wardrobe[i].InSeason(gc.Season) {
			pool = append(pool, gc.Wardrobe[i])
		}
	}

	target := gc.Occasion.FormalityTarget()
	sort.SliceStable(pool, func(i, j int) bool {
		di := math.Abs(float64(pool[i].Formality - target))
		dj := math.Abs(float64(pool[j].Formality - target))
		if di != dj {
			return di < dj
		}
		return pool[i].ID < pool[j].ID
	})

	outfit := &CandidateOutfit{Strategy: FallbackStrategyName}

	// The anchor is honored even when its tags do not suit the occasion; the
	// structural rules are the only gate here.
	if gc.AnchorItemID != "" {
		if anchor := gc.AnchorItem(); anchor != nil {
			outfit.Items = append(outfit.Items, *anchor)
			if anchor.Category == models.CategoryDress {
				reqs = reqs.WithoutSeparates()
			}
		}
	}

	// Cover required categories. When separates cannot both be covered but a
	// dress can stand in for them, take the dress instead. A top or bottom
	// anchor blocks the substitution: restructuring around a dress would evict
	// the anchor, and an anchored request must fail rather than drop it.
	fc.coverRequired(outfit, &reqs, pool)

	counts := outfit.CategoryCounts()
	if reqs.DressAllowed && !anchorIsSeparate(gc) && counts[models.CategoryDress] == 0 &&
		(missingCategory(reqs, counts, models.CategoryTop) || missingCategory(reqs, counts, models.CategoryBottom)) {
		if dress, ok := firstOfCategory(pool, models.CategoryDress, outfit); ok {
			outfit.Items = removeCategories(outfit.Items, models.CategoryTop, models.CategoryBottom)
			outfit.Items = append(outfit.Items, dress)
			reqs = reqs.WithoutSeparates()
			fc.coverRequired(outfit, &reqs, pool)
		}
	}

	// Pad to the occasion's floor from preferred categories first, then
	// whatever else fits the structural caps.
	for _, cat := range reqs.Preferred {
		if len(outfit.Items) >= reqs.MinItems {
			break
		}
		if item, ok := fc.admissible(pool, cat, outfit, reqs); ok {
			outfit.Items = append(outfit.Items, item)
		}
	}
	for i := range pool {
		if len(outfit.Items) >= reqs.MinItems {
			break
		}
		if fc.fits(pool[i], outfit, reqs) {
			outfit.Items = append(outfit.Items, pool[i])
		}
	}

	result := fc.validator.ValidateHard(outfit, reqs, gc)
	if !result.Valid {
		return nil, result.Violations
	}
	return outfit, nil
}

// coverRequired fills each still-missing required category with the closest
// formality match.
func (fc *FallbackComposer) coverRequired(outfit *CandidateOutfit, reqs *Requirements, pool []models.GarmentItem) {
	for _, cat := range reqs.Required {
		counts := outfit.CategoryCounts()
		if counts[cat] > 0 {
			continue
		}
		if reqs.DressAllowed && counts[models.CategoryDress] > 0 && (cat == models.CategoryTop || cat == models.CategoryBottom) {
			continue
		}
		if item, ok := fc.admissible(pool, cat, outfit, *reqs); ok {
			outfit.Items = append(outfit.Items, item)
		}
	}
}

// admissible returns the best formality-ranked item of cat that the outfit
// can structurally accept.
func (fc *FallbackComposer) admissible(pool []models.GarmentItem, cat models.Category, outfit *CandidateOutfit, reqs Requirements) (models.GarmentItem, bool) {
	for i := range pool {
		if pool[i].Category != cat {
			continue
		}
		if fc.fits(pool[i], outfit, reqs) {
			return pool[i], true
		}
	}
	return models.GarmentItem{}, false
}

// fits mirrors the structural validation rules at selection time.
func (fc *FallbackComposer) fits(item models.GarmentItem, outfit *CandidateOutfit, reqs Requirements) bool {
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
	return counts[item.Category] < reqs.Limits.Base[item.Category]
}

// firstOfCategory returns the best formality-ranked unselected item of cat,
// ignoring structural constraints. Used when restructuring around a dress.
func firstOfCategory(pool []models.GarmentItem, cat models.Category, outfit *CandidateOutfit) (models.GarmentItem, bool) {
	for i := range pool {
		if pool[i].Category == cat && !outfit.Contains(pool[i].ID) {
			return pool[i], true
		}
	}
	return models.GarmentItem{}, false
}

// anchorIsSeparate reports whether the request anchors a top or bottom.
func anchorIsSeparate(gc *models.GenerationContext) bool {
	if gc.AnchorItemID == "" {
		return false
	}
	anchor := gc.AnchorItem()
	return anchor != nil && (anchor.Category == models.CategoryTop || anchor.Category == models.CategoryBottom)
}

// missingCategory reports whether cat is required but uncovered.
func missingCategory(reqs Requirements, counts map[models.Category]int, cat models.Category) bool {
	for _, c := range reqs.Required {
		if c == cat {
			return counts[cat] == 0
		}
	}
	return false
}

// removeCategories drops every item of the given categories.
func removeCategories(items []models.GarmentItem, cats ...models.Category) []models.GarmentItem {
	out := items[:0]
	for i := range items {
		drop := false
		for _, cat := range cats {
			if items[i].Category == cat {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, items[i])
		}
	}
	return out
}
