// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"testing"

	"github.com/tomtom215/garderobe/internal/models"
)

// --- Test: AllowedAt ---

func TestAllowedAtExclusiveClamp(t *testing.T) {
	t.Parallel()

	limits := limitsFor(models.OccasionCasual)

	// Exclusive categories must stay at their base cap no matter how many
	// slots remain. Large remainingNeeded values used to inflate the scaled
	// term past the base for singular categories like outerwear.
	for _, cat := range exclusiveCategories {
		for _, remaining := range []int{0, 1, 5, 10, 100} {
			if got := limits.AllowedAt(cat, remaining, 1.5); got != limits.Base[cat] {
				t.Errorf("AllowedAt(%s, %d) = %d, want base %d", cat, remaining, got, limits.Base[cat])
			}
		}
	}
}

func TestAllowedAtNonExclusiveScales(t *testing.T) {
	t.Parallel()

	limits := limitsFor(models.OccasionCasual)

	tests := []struct {
		name      string
		remaining int
		scale     float64
		want      int
	}{
		{
			name:      "no remaining slots returns base",
			remaining: 0,
			scale:     1.5,
			want:      2,
		},
		{
			name:      "small remaining stays at base",
			remaining: 3,
			scale:     1.5,
			want:      2,
		},
		// base=2, total=7: floor(2/7 * 12 * 1.5) = floor(5.14) = 5
		{
			name:      "large remaining scales up",
			remaining: 12,
			scale:     1.5,
			want:      5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := limits.AllowedAt(models.CategoryAccessory, tt.remaining, tt.scale); got != tt.want {
				t.Errorf("AllowedAt(accessory, %d, %v) = %d, want %d", tt.remaining, tt.scale, got, tt.want)
			}
		})
	}
}

func TestAllowedAtUnknownCategory(t *testing.T) {
	t.Parallel()

	limits := limitsFor(models.OccasionCasual)
	if got := limits.AllowedAt(models.Category("hat"), 10, 1.5); got != 0 {
		t.Errorf("AllowedAt(unknown) = %d, want 0", got)
	}
}

// --- Test: RequirementsFor ---

func TestRequirementsFor(t *testing.T) {
	t.Parallel()

	warm := models.WeatherSnapshot{TemperatureC: 26, FeelsLikeC: 26, Condition: models.ConditionClear}
	cold := models.WeatherSnapshot{TemperatureC: 2, FeelsLikeC: 0, Condition: models.ConditionClear}
	rain := models.WeatherSnapshot{TemperatureC: 20, FeelsLikeC: 20, Condition: models.ConditionRain}

	tests := []struct {
		name          string
		occasion      models.Occasion
		weather       models.WeatherSnapshot
		wantOuterwear bool
		wantDress     bool
		wantMin       int
		wantMax       int
	}{
		{
			name:          "casual warm",
			occasion:      models.OccasionCasual,
			weather:       warm,
			wantOuterwear: false,
			wantDress:     true,
			wantMin:       3,
			wantMax:       5,
		},
		{
			name:          "casual cold promotes outerwear",
			occasion:      models.OccasionCasual,
			weather:       cold,
			wantOuterwear: true,
			wantDress:     true,
			wantMin:       3,
			wantMax:       5,
		},
		{
			name:          "casual rain promotes outerwear",
			occasion:      models.OccasionCasual,
			weather:       rain,
			wantOuterwear: true,
			wantDress:     true,
			wantMin:       3,
			wantMax:       5,
		},
		{
			name:          "outdoor always requires outerwear",
			occasion:      models.OccasionOutdoor,
			weather:       warm,
			wantOuterwear: true,
			wantDress:     true,
			wantMin:       4,
			wantMax:       6,
		},
		{
			name:          "athletic never allows dress",
			occasion:      models.OccasionAthletic,
			weather:       cold,
			wantOuterwear: false,
			wantDress:     false,
			wantMin:       3,
			wantMax:       4,
		},
		{
			name:          "business warm",
			occasion:      models.OccasionBusiness,
			weather:       warm,
			wantOuterwear: false,
			wantDress:     true,
			wantMin:       4,
			wantMax:       6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reqs := RequirementsFor(tt.occasion, tt.weather)

			hasOuterwear := false
			for _, cat := range reqs.Required {
				if cat == models.CategoryOuterwear {
					hasOuterwear = true
				}
			}
			if hasOuterwear != tt.wantOuterwear {
				t.Errorf("outerwear required = %v, want %v", hasOuterwear, tt.wantOuterwear)
			}
			if reqs.DressAllowed != tt.wantDress {
				t.Errorf("DressAllowed = %v, want %v", reqs.DressAllowed, tt.wantDress)
			}
			if reqs.MinItems != tt.wantMin || reqs.MaxItems != tt.wantMax {
				t.Errorf("bounds = [%d, %d], want [%d, %d]", reqs.MinItems, reqs.MaxItems, tt.wantMin, tt.wantMax)
			}
			if reqs.BaseTarget < reqs.MinItems || reqs.BaseTarget > reqs.MaxItems {
				t.Errorf("BaseTarget %d outside [%d, %d]", reqs.BaseTarget, reqs.MinItems, reqs.MaxItems)
			}
		})
	}
}

// --- Test: MissingRequired ---

func TestMissingRequired(t *testing.T) {
	t.Parallel()

	warm := models.WeatherSnapshot{TemperatureC: 26, FeelsLikeC: 26}
	reqs := RequirementsFor(models.OccasionCasual, warm)

	tests := []struct {
		name   string
		counts map[models.Category]int
		want   int
	}{
		{
			name: "all covered",
			counts: map[models.Category]int{
				models.CategoryTop:    1,
				models.CategoryBottom: 1,
				models.CategoryShoes:  1,
			},
			want: 0,
		},
		{
			name: "dress covers separates",
			counts: map[models.Category]int{
				models.CategoryDress: 1,
				models.CategoryShoes: 1,
			},
			want: 0,
		},
		{
			name: "missing shoes",
			counts: map[models.Category]int{
				models.CategoryTop:    1,
				models.CategoryBottom: 1,
			},
			want: 1,
		},
		{
			name:   "empty outfit",
			counts: map[models.Category]int{},
			want:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := reqs.MissingRequired(tt.counts); len(got) != tt.want {
				t.Errorf("MissingRequired() = %v, want %d categories", got, tt.want)
			}
		})
	}
}

func TestMissingRequiredDressNotAllowed(t *testing.T) {
	t.Parallel()

	reqs := RequirementsFor(models.OccasionAthletic, models.WeatherSnapshot{TemperatureC: 26, FeelsLikeC: 26})
	counts := map[models.Category]int{
		models.CategoryDress: 1,
		models.CategoryShoes: 1,
	}
	missing := reqs.MissingRequired(counts)
	if len(missing) != 2 {
		t.Errorf("MissingRequired() = %v, want top and bottom still missing", missing)
	}
}

// --- Test: WithoutSeparates ---

func TestWithoutSeparates(t *testing.T) {
	t.Parallel()

	reqs := RequirementsFor(models.OccasionCasual, models.WeatherSnapshot{TemperatureC: 26, FeelsLikeC: 26})
	stripped := reqs.WithoutSeparates()

	for _, cat := range stripped.Required {
		if cat == models.CategoryTop || cat == models.CategoryBottom {
			t.Errorf("WithoutSeparates() kept %s in required", cat)
		}
	}

	// The original is untouched.
	found := 0
	for _, cat := range reqs.Required {
		if cat == models.CategoryTop || cat == models.CategoryBottom {
			found++
		}
	}
	if found != 2 {
		t.Errorf("original Required mutated: %v", reqs.Required)
	}
}
