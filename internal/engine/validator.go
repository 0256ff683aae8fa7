// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"fmt"
	"strings"

	"github.com/tomtom215/garderobe/internal/models"
)

// ValidationResult is the outcome of validating one candidate outfit.
type ValidationResult struct {
	// Valid is true when no rule was violated.
	Valid bool `json:"valid"`

	// Violations lists every violated rule in evaluation order. Rules never
	// short-circuit, so a rejected candidate reports all of its problems.
	Violations []string `json:"violations,omitempty"`
}

// Validator checks assembled candidates against the structural and contextual
// outfit rules. It is stateless and safe for concurrent use.
type Validator struct{}

// NewValidator returns a validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate runs the full rule set against a candidate.
func (v *Validator) Validate(outfit *CandidateOutfit, reqs Requirements, gc *models.GenerationContext) ValidationResult {
	return v.run(outfit, reqs, gc, false)
}

// ValidateHard runs only the structural rules: required coverage, count
// bounds, dress exclusivity, duplicates, and exclusive caps. The fallback
// composer validates against this set so that contextual rules can never
// block the guaranteed-minimal outfit.
func (v *Validator) ValidateHard(outfit *CandidateOutfit, reqs Requirements, gc *models.GenerationContext) ValidationResult {
	return v.run(outfit, reqs, gc, true)
}

func (v *Validator) run(outfit *CandidateOutfit, reqs Requirements, gc *models.GenerationContext, hardOnly bool) ValidationResult {
	var violations []string
	counts := outfit.CategoryCounts()

	if missing := reqs.MissingRequired(counts); len(missing) > 0 {
		cats := make([]string, len(missing))
		for i, c := range missing {
			cats[i] = c.String()
		}
		violations = append(violations, fmt.Sprintf("missing required categories: %s", strings.Join(cats, ", ")))
	}

	n := len(outfit.Items)
	if n < reqs.MinItems {
		violations = append(violations, fmt.Sprintf("item count %d below minimum %d", n, reqs.MinItems))
	}
	if n > reqs.MaxItems {
		violations = append(violations, fmt.Sprintf("item count %d above maximum %d", n, reqs.MaxItems))
	}

	if counts[models.CategoryDress] > 0 {
		if !reqs.DressAllowed {
			violations = append(violations, "dress not allowed for this occasion")
		}
		if counts[models.CategoryTop] > 0 || counts[models.CategoryBottom] > 0 {
			violations = append(violations, "dress combined with separates")
		}
	}

	if dup := firstDuplicate(outfit.Items); dup != "" {
		violations = append(violations, fmt.Sprintf("duplicate item %s", dup))
	}

	for _, cat := range models.AllCategories {
		if _, exclusive := reqs.Limits.Exclusive[cat]; !exclusive {
			continue
		}
		if limit := reqs.Limits.Base[cat]; counts[cat] > limit {
			violations = append(violations, fmt.Sprintf("category %s count %d exceeds cap %d", cat, counts[cat], limit))
		}
	}

	if !hardOnly {
		violations = append(violations, v.contextual(outfit, gc)...)
	}

	return ValidationResult{Valid: len(violations) == 0, Violations: violations}
}

// contextual evaluates the occasion and weather rules that a wearable but
// imperfect outfit may still violate.
func (v *Validator) contextual(outfit *CandidateOutfit, gc *models.GenerationContext) []string {
	var violations []string

	// Items whose formality levels are three or more apart clash regardless
	// of the occasion target.
	for i := 0; i < len(outfit.Items); i++ {
		for j := i + 1; j < len(outfit.Items); j++ {
			a, b := &outfit.Items[i], &outfit.Items[j]
			spread := a.Formality - b.Formality
			if spread < 0 {
				spread = -spread
			}
			if spread >= 3 {
				violations = append(violations, fmt.Sprintf("formality clash between %s (%d) and %s (%d)", a.Name, a.Formality, b.Name, b.Formality))
			}
		}
	}

	budget := gc.Weather.LayerBudget()
	layers := 0
	for i := range outfit.Items {
		if outfit.Items[i].Layering == models.LayerMid || outfit.Items[i].Layering == models.LayerOuter {
			layers++
		}
	}
	if layers > budget {
		violations = append(violations, fmt.Sprintf("%d layering pieces exceed weather budget of %d", layers, budget))
	}

	return violations
}

// firstDuplicate returns the first garment ID appearing more than once, or
// the empty string.
func firstDuplicate(items []models.GarmentItem) string {
	seen := make(map[string]struct{}, len(items))
	for i := range items {
		if _, dup := seen[items[i].ID]; dup {
			return items[i].ID
		}
		seen[items[i].ID] = struct{}{}
	}
	return ""
}
