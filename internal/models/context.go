// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package models

import "time"

// Occasion is the situational context an outfit is composed for.
type Occasion string

const (
	// OccasionCasual is everyday wear.
	OccasionCasual Occasion = "casual"
	// OccasionBusiness is office and meeting wear.
	OccasionBusiness Occasion = "business"
	// OccasionFormal is weddings, galas, black-tie events.
	OccasionFormal Occasion = "formal"
	// OccasionAthletic is workouts and sports.
	OccasionAthletic Occasion = "athletic"
	// OccasionEvening is dinners, dates, parties.
	OccasionEvening Occasion = "evening"
	// OccasionOutdoor is hikes and extended time outside.
	OccasionOutdoor Occasion = "outdoor"
)

// AllOccasions lists every valid occasion.
var AllOccasions = []Occasion{
	OccasionCasual,
	OccasionBusiness,
	OccasionFormal,
	OccasionAthletic,
	OccasionEvening,
	OccasionOutdoor,
}

// Valid reports whether o is a known occasion.
func (o Occasion) Valid() bool {
	switch o {
	case OccasionCasual, OccasionBusiness, OccasionFormal, OccasionAthletic, OccasionEvening, OccasionOutdoor:
		return true
	default:
		return false
	}
}

// String returns the occasion name.
func (o Occasion) String() string {
	return string(o)
}

// FormalityTarget returns the formality level outfits for this occasion
// should center on.
func (o Occasion) FormalityTarget() int {
	switch o {
	case OccasionFormal:
		return 5
	case OccasionBusiness:
		return 4
	case OccasionEvening:
		return 3
	case OccasionCasual, OccasionOutdoor:
		return 2
	case OccasionAthletic:
		return 1
	default:
		return 2
	}
}

// FavorsDress reports whether outfits for this occasion lean toward a
// one-piece dress when one is available.
func (o Occasion) FavorsDress() bool {
	return o == OccasionFormal || o == OccasionEvening
}

// GenerationContext carries everything one outfit generation request needs.
// It is constructed once per request by the caller and passed read-only to
// every engine component; nothing in the engine mutates it.
type GenerationContext struct {
	// UserID identifies the wardrobe owner.
	UserID string `json:"user_id"`

	// Occasion is the situational context.
	Occasion Occasion `json:"occasion"`

	// Style is the requested aesthetic ("classic", "streetwear"). Optional;
	// empty means no style preference.
	Style string `json:"style,omitempty"`

	// Mood is a free-form mood hint ("confident", "cozy"). Optional.
	Mood string `json:"mood,omitempty"`

	// FitPreference is the user's preferred fit profile ("slim", "regular",
	// "relaxed", "tailored"). Optional; empty means no preference.
	FitPreference string `json:"fit_preference,omitempty"`

	// Season is the current season tag (SeasonSpring..SeasonWinter).
	Season string `json:"season,omitempty"`

	// Weather is the weather snapshot for the request.
	Weather WeatherSnapshot `json:"weather"`

	// Wardrobe is the full wardrobe snapshot for the user. The slice and its
	// items are read-only for the duration of the request.
	Wardrobe []GarmentItem `json:"-"`

	// Feedback is the historical user-feedback signal. Optional.
	Feedback *FeedbackSignal `json:"-"`

	// AnchorItemID names a garment that must appear in the result. Optional.
	AnchorItemID string `json:"anchor_item_id,omitempty"`

	// RequestedAt is the reference time for recency-sensitive scoring (the
	// novelty sub-score's wear-window buckets). The caller pins it once per
	// request; a zero value makes the engine fall back to the wall clock,
	// which sacrifices replay determinism across wear-window boundaries.
	RequestedAt time.Time `json:"requested_at,omitempty"`

	// Seed drives all scoring and tie-break randomness so identical
	// (wardrobe, context, seed) inputs reproduce identical outfits.
	Seed int64 `json:"seed"`

	// RequestID is a caller-supplied identifier for tracing. Optional.
	RequestID string `json:"request_id,omitempty"`
}

// AnchorItem returns the wardrobe item named by AnchorItemID, or nil when no
// anchor was requested or the ID does not exist in the wardrobe snapshot.
func (c *GenerationContext) AnchorItem() *GarmentItem {
	if c.AnchorItemID == "" {
		return nil
	}
	for i := range c.Wardrobe {
		if c.Wardrobe[i].ID == c.AnchorItemID {
			return &c.Wardrobe[i]
		}
	}
	return nil
}
