// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"github.com/tomtom215/garderobe/internal/models"
)

// CandidateOutfit is a fully assembled outfit produced by one strategy's
// composer, before or after validation.
type CandidateOutfit struct {
	// Items are the selected garments in selection order.
	Items []models.GarmentItem `json:"items"`

	// Score is the strategy's aggregate score for the outfit.
	Score float64 `json:"score"`

	// Strategy names the strategy that produced the candidate.
	Strategy string `json:"strategy"`
}

// CategoryCounts returns how many items of each category the outfit holds.
func (c *CandidateOutfit) CategoryCounts() map[models.Category]int {
	counts := make(map[models.Category]int, len(models.AllCategories))
	for i := range c.Items {
		counts[c.Items[i].Category]++
	}
	return counts
}

// Contains reports whether the outfit already holds the given garment ID.
func (c *CandidateOutfit) Contains(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return true
		}
	}
	return false
}

// HasDress reports whether the outfit holds a dress.
func (c *CandidateOutfit) HasDress() bool {
	for i := range c.Items {
		if c.Items[i].Category == models.CategoryDress {
			return true
		}
	}
	return false
}

// ItemIDs returns the garment IDs in selection order.
func (c *CandidateOutfit) ItemIDs() []string {
	ids := make([]string, len(c.Items))
	for i := range c.Items {
		ids[i] = c.Items[i].ID
	}
	return ids
}
