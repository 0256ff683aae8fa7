// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package models

import (
	"testing"
	"time"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range AllCategories {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if Category("cape").Valid() {
		t.Error("unknown category should be invalid")
	}
}

func TestOccasionFormalityTarget(t *testing.T) {
	tests := []struct {
		occasion Occasion
		want     int
	}{
		{OccasionFormal, 5},
		{OccasionBusiness, 4},
		{OccasionEvening, 3},
		{OccasionCasual, 2},
		{OccasionOutdoor, 2},
		{OccasionAthletic, 1},
	}
	for _, tt := range tests {
		if got := tt.occasion.FormalityTarget(); got != tt.want {
			t.Errorf("%s: formality target = %d, want %d", tt.occasion, got, tt.want)
		}
	}
}

func TestGarmentMetaDefaults(t *testing.T) {
	g := GarmentItem{ID: "g1", Name: "linen shirt", Category: CategoryTop}

	if got := g.Meta(MetaMaterial, "cotton"); got != "cotton" {
		t.Errorf("Meta default = %q, want cotton", got)
	}
	if got := g.MetaFloat(MetaWarmth, 0.5); got != 0.5 {
		t.Errorf("MetaFloat default = %f, want 0.5", got)
	}
	if g.MetaBool(MetaWaterResistant, false) {
		t.Error("MetaBool default should be false")
	}

	g.Metadata = map[string]string{
		MetaWarmth:         "0.8",
		MetaWaterResistant: "true",
		MetaFit:            "not-a-bool",
	}
	if got := g.MetaFloat(MetaWarmth, 0.5); got != 0.8 {
		t.Errorf("MetaFloat = %f, want 0.8", got)
	}
	if !g.MetaBool(MetaWaterResistant, false) {
		t.Error("MetaBool should parse true")
	}
	if got := g.MetaBool(MetaFit, true); got != true {
		t.Error("unparseable MetaBool should fall back to default")
	}
}

func TestGarmentInSeason(t *testing.T) {
	allSeason := GarmentItem{ID: "g1"}
	if !allSeason.InSeason(SeasonWinter) {
		t.Error("item without season tags should be all-season")
	}

	summerOnly := GarmentItem{ID: "g2", SeasonTags: []string{SeasonSummer}}
	if summerOnly.InSeason(SeasonWinter) {
		t.Error("summer-only item should not be in season for winter")
	}
	if !summerOnly.InSeason(SeasonSummer) {
		t.Error("summer-only item should be in season for summer")
	}
}

func TestWeatherLayerBudget(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		want int
	}{
		{"freezing", -2, 3},
		{"cold", 10, 2},
		{"mild", 18, 1},
		{"hot", 28, 0},
	}
	for _, tt := range tests {
		w := WeatherSnapshot{TemperatureC: tt.temp, FeelsLikeC: tt.temp}
		if got := w.LayerBudget(); got != tt.want {
			t.Errorf("%s: layer budget = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestWeatherWet(t *testing.T) {
	if (WeatherSnapshot{Condition: ConditionClear, PrecipitationPct: 10}).Wet() {
		t.Error("clear low-precipitation weather should not be wet")
	}
	if !(WeatherSnapshot{Condition: ConditionRain}).Wet() {
		t.Error("rain should be wet")
	}
	if !(WeatherSnapshot{Condition: ConditionCloudy, PrecipitationPct: 80}).Wet() {
		t.Error("high precipitation probability should be wet")
	}
}

func TestFeedbackSignal(t *testing.T) {
	now := time.Now()
	fb := &FeedbackSignal{
		ItemAffinity: map[string]float64{"a": 0.7},
		PairAffinity: map[string]float64{PairKey("b", "a"): 0.4},
		LastWorn:     map[string]time.Time{"a": now.Add(-24 * time.Hour)},
	}

	if got := fb.AffinityFor("a"); got != 0.7 {
		t.Errorf("AffinityFor = %f, want 0.7", got)
	}
	if got := fb.AffinityFor("missing"); got != 0 {
		t.Errorf("missing item affinity = %f, want 0", got)
	}
	if got := fb.PairAffinityFor("a", "b"); got != 0.4 {
		t.Errorf("PairAffinityFor = %f, want 0.4 (order independent)", got)
	}
	if !fb.WornWithin("a", 48*time.Hour, now) {
		t.Error("item worn yesterday should be within a 48h window")
	}
	if fb.WornWithin("a", time.Hour, now) {
		t.Error("item worn yesterday should not be within a 1h window")
	}

	var nilFB *FeedbackSignal
	if nilFB.AffinityFor("a") != 0 || nilFB.PairAffinityFor("a", "b") != 0 {
		t.Error("nil signal should be neutral")
	}
}

func TestGenerationContextAnchorItem(t *testing.T) {
	gctx := GenerationContext{
		Wardrobe: []GarmentItem{{ID: "g1"}, {ID: "g2"}},
	}
	if gctx.AnchorItem() != nil {
		t.Error("no anchor requested should return nil")
	}

	gctx.AnchorItemID = "g2"
	if got := gctx.AnchorItem(); got == nil || got.ID != "g2" {
		t.Errorf("anchor item = %v, want g2", got)
	}

	gctx.AnchorItemID = "missing"
	if gctx.AnchorItem() != nil {
		t.Error("unknown anchor ID should return nil")
	}
}

func TestInteractionAffinity(t *testing.T) {
	if InteractionWorn.Affinity() <= InteractionLiked.Affinity() {
		t.Error("worn should outrank liked")
	}
	if InteractionDisliked.Affinity() >= 0 {
		t.Error("disliked should be negative")
	}
	if ParseInteractionType("nonsense") != InteractionDismissed {
		t.Error("unknown interaction should parse as dismissed")
	}
}
