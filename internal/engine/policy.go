// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"math"

	"github.com/tomtom215/garderobe/internal/models"
)

// CategoryLimits caps how many items of each category an outfit may carry.
type CategoryLimits struct {
	// Base maps category to its base cap for the target outfit size.
	Base map[models.Category]int

	// TotalBase is the declared sum of all base caps, used as the
	// denominator in proportional scaling.
	TotalBase int

	// Exclusive marks categories whose cap is a hard ceiling that may never
	// be exceeded, regardless of scaling.
	Exclusive map[models.Category]struct{}
}

// exclusiveCategories are semantically singular: one per outfit, always.
// They are in the exclusive set unconditionally so that the proportional
// scaling in AllowedAt can never raise their effective cap. The unclamped
// formula admitted a second outerwear piece when remainingNeeded was large;
// the clamp closes that.
var exclusiveCategories = []models.Category{
	models.CategoryTop,
	models.CategoryBottom,
	models.CategoryDress,
	models.CategoryOuterwear,
	models.CategoryShoes,
}

// AllowedAt returns the number of items of cat an outfit may hold at a
// selection step with remainingNeeded slots left. Exclusive categories are
// clamped to their base cap; non-exclusive categories may absorb extra slots
// late in selection:
//
//	allowed = max(base, floor(base/totalBase * remainingNeeded * scaleFactor))
func (cl CategoryLimits) AllowedAt(cat models.Category, remainingNeeded int, scaleFactor float64) int {
	base := cl.Base[cat]
	if base <= 0 {
		return 0
	}
	if _, exclusive := cl.Exclusive[cat]; exclusive {
		return base
	}
	if cl.TotalBase <= 0 || remainingNeeded <= 0 {
		return base
	}
	scaled := int(math.Floor(float64(base) / float64(cl.TotalBase) * float64(remainingNeeded) * scaleFactor))
	if scaled > base {
		return scaled
	}
	return base
}

// Requirements is the category policy output for one generation context:
// which categories an outfit must and should cover, its caps, and its size
// range.
type Requirements struct {
	// Required categories must each have at least one representative.
	Required []models.Category

	// Preferred categories improve score but do not block validation.
	Preferred []models.Category

	// Limits are the per-category caps for this target outfit size.
	Limits CategoryLimits

	// MinItems and MaxItems bound the total item count for the occasion.
	MinItems int
	MaxItems int

	// BaseTarget is the occasion's nominal outfit size before strategy
	// adjustment, within [MinItems, MaxItems].
	BaseTarget int

	// DressAllowed reports whether a dress may substitute for top+bottom.
	DressAllowed bool
}

// RequirementsFor returns the category policy for an occasion and weather.
// Outerwear becomes required outdoors and in cold or wet weather, preferred
// otherwise.
func RequirementsFor(occasion models.Occasion, weather models.WeatherSnapshot) Requirements {
	req := Requirements{
		Required:     []models.Category{models.CategoryTop, models.CategoryBottom, models.CategoryShoes},
		Preferred:    []models.Category{models.CategoryAccessory},
		DressAllowed: occasion != models.OccasionAthletic,
	}

	switch occasion {
	case models.OccasionBusiness:
		req.MinItems, req.MaxItems, req.BaseTarget = 4, 6, 5
		req.Preferred = append(req.Preferred, models.CategoryOuterwear)
	case models.OccasionFormal, models.OccasionEvening:
		req.MinItems, req.MaxItems, req.BaseTarget = 3, 6, 4
		req.Preferred = append(req.Preferred, models.CategoryOuterwear)
	case models.OccasionAthletic:
		req.MinItems, req.MaxItems, req.BaseTarget = 3, 4, 3
	case models.OccasionOutdoor:
		req.MinItems, req.MaxItems, req.BaseTarget = 4, 6, 5
		req.Required = append(req.Required, models.CategoryOuterwear)
	default: // casual
		req.MinItems, req.MaxItems, req.BaseTarget = 3, 5, 4
		req.Preferred = append(req.Preferred, models.CategoryOuterwear)
	}

	// Cold or wet weather promotes outerwear to required for any occasion
	// that allows it at all.
	if occasion != models.OccasionAthletic && (weather.LayerBudget() >= 2 || weather.Wet()) {
		req.Required = appendCategoryOnce(req.Required, models.CategoryOuterwear)
		req.Preferred = removeCategory(req.Preferred, models.CategoryOuterwear)
	}

	req.Limits = limitsFor(occasion)
	return req
}

// limitsFor builds the CategoryLimits for an occasion.
func limitsFor(occasion models.Occasion) CategoryLimits {
	base := map[models.Category]int{
		models.CategoryTop:       1,
		models.CategoryBottom:    1,
		models.CategoryDress:     1,
		models.CategoryOuterwear: 1,
		models.CategoryShoes:     1,
		models.CategoryAccessory: 2,
	}
	if occasion == models.OccasionAthletic {
		base[models.CategoryAccessory] = 1
	}

	total := 0
	for _, n := range base {
		total += n
	}

	exclusive := make(map[models.Category]struct{}, len(exclusiveCategories))
	for _, c := range exclusiveCategories {
		exclusive[c] = struct{}{}
	}

	return CategoryLimits{Base: base, TotalBase: total, Exclusive: exclusive}
}

// WithoutSeparates returns a copy of the requirements with top and bottom
// removed from both required and preferred sets. Applied structurally once a
// dress is selected for a composition attempt.
func (r Requirements) WithoutSeparates() Requirements {
	out := r
	out.Required = removeCategory(removeCategory(cloneCategories(r.Required), models.CategoryTop), models.CategoryBottom)
	out.Preferred = removeCategory(removeCategory(cloneCategories(r.Preferred), models.CategoryTop), models.CategoryBottom)
	return out
}

// MissingRequired returns the required categories not covered by counts.
// When a dress is present and allowed, it satisfies the top and bottom
// requirements.
func (r Requirements) MissingRequired(counts map[models.Category]int) []models.Category {
	dress := r.DressAllowed && counts[models.CategoryDress] > 0

	var missing []models.Category
	for _, cat := range r.Required {
		if counts[cat] > 0 {
			continue
		}
		if dress && (cat == models.CategoryTop || cat == models.CategoryBottom) {
			continue
		}
		missing = append(missing, cat)
	}
	return missing
}

func appendCategoryOnce(cats []models.Category, cat models.Category) []models.Category {
	for _, c := range cats {
		if c == cat {
			return cats
		}
	}
	return append(cats, cat)
}

func removeCategory(cats []models.Category, cat models.Category) []models.Category {
	out := cats[:0]
	for _, c := range cats {
		if c != cat {
			out = append(out, c)
		}
	}
	return out
}

func cloneCategories(cats []models.Category) []models.Category {
	out := make([]models.Category, len(cats))
	copy(out, cats)
	return out
}
