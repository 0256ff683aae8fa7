// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package models

import (
	"sort"
	"time"
)

// InteractionType classifies user reactions to recommended outfits and items.
type InteractionType int

const (
	// InteractionDisliked indicates an explicit thumbs-down.
	InteractionDisliked InteractionType = iota
	// InteractionDismissed indicates the suggestion was skipped without comment.
	InteractionDismissed
	// InteractionLiked indicates an explicit thumbs-up.
	InteractionLiked
	// InteractionWorn indicates the outfit was actually worn.
	InteractionWorn
)

// String returns a human-readable name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionDisliked:
		return "disliked"
	case InteractionDismissed:
		return "dismissed"
	case InteractionLiked:
		return "liked"
	case InteractionWorn:
		return "worn"
	default:
		return "unknown"
	}
}

// Affinity returns the preference weight this interaction contributes.
// Positive values indicate preference, negative values aversion.
func (t InteractionType) Affinity() float64 {
	switch t {
	case InteractionWorn:
		return 1.0
	case InteractionLiked:
		return 0.7
	case InteractionDismissed:
		return -0.1
	case InteractionDisliked:
		return -0.8
	default:
		return 0.0
	}
}

// ParseInteractionType maps an interaction name to its type.
// Unknown names map to InteractionDismissed, the weakest signal.
func ParseInteractionType(s string) InteractionType {
	switch s {
	case "disliked":
		return InteractionDisliked
	case "liked":
		return InteractionLiked
	case "worn":
		return InteractionWorn
	default:
		return InteractionDismissed
	}
}

// Interaction records one user reaction to a recommended outfit.
type Interaction struct {
	// UserID is the reacting user.
	UserID string `json:"user_id"`

	// ItemIDs are the garments in the outfit that was reacted to.
	ItemIDs []string `json:"item_ids"`

	// Type is the reaction classification.
	Type InteractionType `json:"type"`

	// Timestamp is when the reaction occurred.
	Timestamp time.Time `json:"timestamp"`
}

// FeedbackSignal is the aggregated historical feedback for one user,
// produced by the feedback store and consumed read-only by the scorer.
type FeedbackSignal struct {
	// ItemAffinity maps garment ID to an aggregate preference score,
	// clamped to [-1, 1]. Missing items are neutral (0).
	ItemAffinity map[string]float64 `json:"item_affinity,omitempty"`

	// PairAffinity maps a PairKey of two garment IDs to an aggregate
	// preference for wearing them together, clamped to [-1, 1].
	PairAffinity map[string]float64 `json:"pair_affinity,omitempty"`

	// LastWorn maps garment ID to the most recent time it appeared in a
	// worn outfit. Drives the style-evolution novelty bonus.
	LastWorn map[string]time.Time `json:"last_worn,omitempty"`
}

// AffinityFor returns the aggregate preference for an item, 0 when unknown.
func (f *FeedbackSignal) AffinityFor(itemID string) float64 {
	if f == nil || f.ItemAffinity == nil {
		return 0
	}
	return f.ItemAffinity[itemID]
}

// PairAffinityFor returns the aggregate preference for a pair of items,
// 0 when unknown. Order of arguments does not matter.
func (f *FeedbackSignal) PairAffinityFor(a, b string) float64 {
	if f == nil || f.PairAffinity == nil {
		return 0
	}
	return f.PairAffinity[PairKey(a, b)]
}

// WornWithin reports whether the item was worn within the given window
// ending at now.
func (f *FeedbackSignal) WornWithin(itemID string, window time.Duration, now time.Time) bool {
	if f == nil || f.LastWorn == nil {
		return false
	}
	t, ok := f.LastWorn[itemID]
	if !ok {
		return false
	}
	return now.Sub(t) <= window
}

// PairKey builds the canonical map key for a pair of garment IDs.
// The key is order-independent.
func PairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids[0] + "|" + ids[1]
}
