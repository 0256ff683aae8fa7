// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package models

import (
	"strconv"
	"time"
)

// Category identifies the garment slot a wardrobe item occupies.
type Category string

const (
	// CategoryTop is shirts, blouses, t-shirts, knitwear worn as the upper layer base.
	CategoryTop Category = "top"
	// CategoryBottom is trousers, skirts, shorts.
	CategoryBottom Category = "bottom"
	// CategoryDress is one-piece garments that replace top and bottom.
	CategoryDress Category = "dress"
	// CategoryOuterwear is jackets, coats, blazers worn over the base layer.
	CategoryOuterwear Category = "outerwear"
	// CategoryShoes is all footwear.
	CategoryShoes Category = "shoes"
	// CategoryAccessory is belts, scarves, jewelry, hats, bags.
	CategoryAccessory Category = "accessory"
)

// AllCategories lists every valid category in a fixed order.
// The order is load-bearing for deterministic iteration.
var AllCategories = []Category{
	CategoryTop,
	CategoryBottom,
	CategoryDress,
	CategoryOuterwear,
	CategoryShoes,
	CategoryAccessory,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryDress, CategoryOuterwear, CategoryShoes, CategoryAccessory:
		return true
	default:
		return false
	}
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// LayeringRole describes where a garment sits in a layered outfit.
type LayeringRole string

const (
	// LayerBase is worn directly on the body (tops, dresses, bottoms).
	LayerBase LayeringRole = "base"
	// LayerMid is worn over the base layer (cardigans, light knits).
	LayerMid LayeringRole = "mid"
	// LayerOuter is the outermost layer (coats, jackets).
	LayerOuter LayeringRole = "outer"
	// LayerNone is for items outside the layering system (shoes, accessories).
	LayerNone LayeringRole = "none"
)

// Valid reports whether r is a known layering role.
func (r LayeringRole) Valid() bool {
	switch r {
	case LayerBase, LayerMid, LayerOuter, LayerNone:
		return true
	default:
		return false
	}
}

// Formality bounds for GarmentItem.Formality and Occasion formality targets.
// 1 is loungewear, 5 is black tie.
const (
	FormalityMin = 1
	FormalityMax = 5
)

// Season tags recognized by the candidate filter. Garments may carry any
// subset; an empty set means all-season.
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// Well-known metadata keys for GarmentItem.Metadata. Metadata is free-form;
// these keys are the ones the scorer understands.
const (
	// MetaWarmth is a 0..1 warmth rating ("0.8"). Defaults to 0.5.
	MetaWarmth = "warmth"
	// MetaWaterResistant is "true" when the garment handles rain. Defaults to false.
	MetaWaterResistant = "water_resistant"
	// MetaMaterial is the primary material name ("wool", "linen").
	MetaMaterial = "material"
	// MetaFit is the fit profile ("slim", "regular", "relaxed"). Defaults to "regular".
	MetaFit = "fit"
)

// GarmentItem is a single wardrobe item. Instances are immutable for the
// duration of one generation request; the wardrobe store owns them and the
// engine references them read-only.
type GarmentItem struct {
	// ID is the unique garment identifier (UUID string).
	ID string `json:"id"`

	// Name is the display name ("navy wool blazer").
	Name string `json:"name"`

	// Category is the garment slot.
	Category Category `json:"category"`

	// Color is the dominant color name.
	Color string `json:"color"`

	// StyleTags describe the aesthetic ("classic", "streetwear", "minimal").
	StyleTags []string `json:"style_tags,omitempty"`

	// OccasionTags list the occasions the item suits ("casual", "business").
	OccasionTags []string `json:"occasion_tags,omitempty"`

	// SeasonTags list suitable seasons. Empty means all-season.
	SeasonTags []string `json:"season_tags,omitempty"`

	// Formality is the ordinal formality level (FormalityMin..FormalityMax).
	Formality int `json:"formality"`

	// Layering is the garment's layering role.
	Layering LayeringRole `json:"layering"`

	// Metadata holds free-form compatibility attributes. Access through
	// Meta/MetaFloat/MetaBool, which supply documented defaults.
	Metadata map[string]string `json:"metadata,omitempty"`

	// CreatedAt is when the item was added to the wardrobe.
	CreatedAt time.Time `json:"created_at,omitempty"`

	// UpdatedAt is when the item was last modified.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Meta returns the metadata value for key, or def when absent.
// This is the single safe-accessor for optional garment attributes; use it
// instead of indexing Metadata directly.
func (g *GarmentItem) Meta(key, def string) string {
	if g.Metadata == nil {
		return def
	}
	v, ok := g.Metadata[key]
	if !ok || v == "" {
		return def
	}
	return v
}

// MetaFloat returns the metadata value for key parsed as float64, or def
// when absent or unparseable.
func (g *GarmentItem) MetaFloat(key string, def float64) float64 {
	v := g.Meta(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// MetaBool returns the metadata value for key parsed as bool, or def when
// absent or unparseable.
func (g *GarmentItem) MetaBool(key string, def bool) bool {
	v := g.Meta(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// HasStyleTag reports whether the garment carries the given style tag.
func (g *GarmentItem) HasStyleTag(tag string) bool {
	for _, t := range g.StyleTags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasOccasionTag reports whether the garment carries the given occasion tag.
func (g *GarmentItem) HasOccasionTag(tag string) bool {
	for _, t := range g.OccasionTags {
		if t == tag {
			return true
		}
	}
	return false
}

// InSeason reports whether the garment suits the given season.
// An item with no season tags is considered all-season.
func (g *GarmentItem) InSeason(season string) bool {
	if len(g.SeasonTags) == 0 {
		return true
	}
	for _, s := range g.SeasonTags {
		if s == season {
			return true
		}
	}
	return false
}
