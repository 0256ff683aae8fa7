// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"errors"
	"testing"

	"github.com/tomtom215/garderobe/internal/models"
)

// --- Test: exact matching ---

func TestFilterExact(t *testing.T) {
	t.Parallel()

	wardrobe := []models.GarmentItem{
		{ID: "g-01", Category: models.CategoryTop, OccasionTags: []string{"casual"}, StyleTags: []string{"classic"}},
		{ID: "g-02", Category: models.CategoryTop, OccasionTags: []string{"formal"}},
		{ID: "g-03", Category: models.CategoryBottom}, // untagged wildcard
		{ID: "g-04", Category: models.CategoryShoes, OccasionTags: []string{"casual"}, StyleTags: []string{"streetwear"}},
		{ID: "g-05", Category: models.CategoryTop, SeasonTags: []string{"winter"}},
	}

	tests := []struct {
		name    string
		gc      models.GenerationContext
		wantIDs []string
		wantErr error
	}{
		{
			name: "occasion tag gates",
			gc: models.GenerationContext{
				Occasion: models.OccasionCasual,
				Wardrobe: wardrobe,
			},
			wantIDs: []string{"g-01", "g-03", "g-04", "g-05"},
		},
		{
			name: "style narrows further",
			gc: models.GenerationContext{
				Occasion: models.OccasionCasual,
				Style:    "classic",
				Wardrobe: wardrobe,
			},
			wantIDs: []string{"g-01", "g-03", "g-05"},
		},
		{
			name: "season is a hard gate",
			gc: models.GenerationContext{
				Occasion: models.OccasionCasual,
				Season:   models.SeasonSummer,
				Wardrobe: wardrobe,
			},
			wantIDs: []string{"g-01", "g-03", "g-04"},
		},
		{
			name: "nothing eligible",
			gc: models.GenerationContext{
				Occasion: models.OccasionOutdoor,
				Wardrobe: []models.GarmentItem{
					{ID: "g-09", Category: models.CategoryTop, OccasionTags: []string{"formal"}},
				},
			},
			wantErr: ErrFilterEmpty,
		},
		{
			name: "empty wardrobe",
			gc: models.GenerationContext{
				Occasion: models.OccasionCasual,
			},
			wantErr: ErrFilterEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewCandidateFilter(MatchExact).Filter(&tt.gc)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Filter() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Filter() error = %v", err)
			}

			ids := make([]string, len(got))
			for i := range got {
				ids[i] = got[i].ID
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("Filter() = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Fatalf("Filter() = %v, want %v", ids, tt.wantIDs)
				}
			}
		})
	}
}

// --- Test: semantic matching ---

func TestFilterSemantic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item models.GarmentItem
		gc   models.GenerationContext
		want bool
	}{
		{
			name: "exact match still passes",
			item: models.GarmentItem{ID: "g-01", Category: models.CategoryTop, OccasionTags: []string{"casual"}},
			gc:   models.GenerationContext{Occasion: models.OccasionCasual},
			want: true,
		},
		{
			name: "close formality passes despite wrong occasion tag",
			item: models.GarmentItem{ID: "g-02", Category: models.CategoryTop, OccasionTags: []string{"business"}, Formality: 3},
			gc:   models.GenerationContext{Occasion: models.OccasionCasual}, // target 2
			want: true,
		},
		{
			name: "distant formality fails",
			item: models.GarmentItem{ID: "g-03", Category: models.CategoryTop, OccasionTags: []string{"formal"}, Formality: 5},
			gc:   models.GenerationContext{Occasion: models.OccasionAthletic}, // target 1
			want: false,
		},
		{
			name: "related style family passes",
			item: models.GarmentItem{ID: "g-04", Category: models.CategoryTop, OccasionTags: []string{"formal"}, Formality: 5, StyleTags: []string{"minimal"}},
			gc:   models.GenerationContext{Occasion: models.OccasionAthletic, Style: "classic"},
			want: true,
		},
		{
			name: "season still hard-gates",
			item: models.GarmentItem{ID: "g-05", Category: models.CategoryTop, Formality: 2, SeasonTags: []string{"winter"}},
			gc:   models.GenerationContext{Occasion: models.OccasionCasual, Season: models.SeasonSummer},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gc := tt.gc
			gc.Wardrobe = []models.GarmentItem{tt.item}

			got, err := NewCandidateFilter(MatchSemantic).Filter(&gc)
			passed := err == nil && len(got) == 1
			if passed != tt.want {
				t.Errorf("semantic eligibility = %v, want %v (err=%v)", passed, tt.want, err)
			}
		})
	}
}

// --- Test: style families ---

func TestStylesRelated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want bool
	}{
		{"classic", "classic", true},
		{"classic", "minimal", true},
		{"minimal", "classic", true}, // symmetric
		{"streetwear", "sporty", true},
		{"classic", "streetwear", false},
		{"unknown", "classic", false},
	}

	for _, tt := range tests {
		if got := stylesRelated(tt.a, tt.b); got != tt.want {
			t.Errorf("stylesRelated(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
