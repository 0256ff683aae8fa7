// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"github.com/tomtom215/garderobe/internal/models"
)

// styleFamilies groups style tags that are close enough to substitute for one
// another under semantic matching. Membership is symmetric within a family.
var styleFamilies = map[string][]string{
	"classic":    {"minimal", "preppy", "business"},
	"minimal":    {"classic", "scandinavian"},
	"streetwear": {"sporty", "urban", "casual"},
	"sporty":     {"streetwear", "athleisure"},
	"bohemian":   {"romantic", "vintage"},
	"romantic":   {"bohemian", "elegant"},
	"elegant":    {"romantic", "classic"},
	"vintage":    {"bohemian", "retro"},
	"edgy":       {"streetwear", "rock"},
}

// stylesRelated reports whether two style tags are the same or in the same
// family.
func stylesRelated(a, b string) bool {
	if a == b {
		return true
	}
	for _, rel := range styleFamilies[a] {
		if rel == b {
			return true
		}
	}
	for _, rel := range styleFamilies[b] {
		if rel == a {
			return true
		}
	}
	return false
}

// CandidateFilter narrows a wardrobe snapshot to the items eligible for a
// generation context. Eligibility depends on the strategy's match mode; season
// suitability is a hard constraint in both modes.
type CandidateFilter struct {
	mode MatchMode
}

// NewCandidateFilter returns a filter for the given match mode.
func NewCandidateFilter(mode MatchMode) *CandidateFilter {
	return &CandidateFilter{mode: mode}
}

// Filter returns the eligible subset of the context's wardrobe, preserving
// the snapshot's item order. It returns ErrFilterEmpty when nothing is
// eligible. The returned slice references the snapshot's items; callers must
// not mutate them.
func (f *CandidateFilter) Filter(gc *models.GenerationContext) ([]models.GarmentItem, error) {
	if len(gc.Wardrobe) == 0 {
		return nil, ErrFilterEmpty
	}

	eligible := make([]models.GarmentItem, 0, len(gc.Wardrobe))
	for i := range gc.Wardrobe {
		if f.eligible(&gc.Wardrobe[i], gc) {
			eligible = append(eligible, gc.Wardrobe[i])
		}
	}
	if len(eligible) == 0 {
		return nil, ErrFilterEmpty
	}
	return eligible, nil
}

// eligible applies the per-item rules. Season always gates; occasion and
// style gate per match mode.
func (f *CandidateFilter) eligible(item *models.GarmentItem, gc *models.GenerationContext) bool {
	if !item.Category.Valid() {
		return false
	}
	if gc.Season != "" && !item.InSeason(gc.Season) {
		return false
	}

	switch f.mode {
	case MatchSemantic:
		return f.matchSemantic(item, gc)
	default:
		return f.matchExact(item, gc)
	}
}

// matchExact requires the item's occasion tags to include the requested
// occasion (untagged items pass as wildcards), and, when a style is
// requested, the item's style tags to include it.
func (f *CandidateFilter) matchExact(item *models.GarmentItem, gc *models.GenerationContext) bool {
	if len(item.OccasionTags) > 0 && !item.HasOccasionTag(gc.Occasion.String()) {
		return false
	}
	if gc.Style != "" && len(item.StyleTags) > 0 && !item.HasStyleTag(gc.Style) {
		return false
	}
	return true
}

// matchSemantic admits an item when it matches exactly, or when its formality
// sits within one level of the occasion's target, or when any of its style
// tags is in the requested style's family. This widens thin wardrobes without
// abandoning the occasion entirely.
func (f *CandidateFilter) matchSemantic(item *models.GarmentItem, gc *models.GenerationContext) bool {
	if f.matchExact(item, gc) {
		return true
	}

	target := gc.Occasion.FormalityTarget()
	dist := item.Formality - target
	if dist < 0 {
		dist = -dist
	}
	if dist <= 1 {
		return true
	}

	if gc.Style != "" {
		for _, tag := range item.StyleTags {
			if stylesRelated(tag, gc.Style) {
				return true
			}
		}
	}
	return false
}
