// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/garderobe/internal/models"
)

// ErrFilterEmpty is returned by the candidate filter when no wardrobe item is
// eligible for the context. It is a non-fatal, per-strategy failure: the
// strategy that hit it produces no candidate and its siblings continue.
var ErrFilterEmpty = errors.New("no eligible items after filtering")

// ErrAllStrategiesFailed signals that every configured strategy failed to
// produce a validated candidate. It is expected, recoverable control flow
// inside the engine: it is logged as the cause of the guaranteed-minimal
// fallback transition and never crosses the engine boundary.
var ErrAllStrategiesFailed = errors.New("all strategies failed")

// UnsatisfiableRequestError is the only error the engine surfaces to callers.
// It means even the fallback composer could not satisfy the occasion's
// required categories from the eligible item set. Violations carries the
// aggregated reasons from every strategy and the fallback, for diagnostics.
type UnsatisfiableRequestError struct {
	// Violations lists the violated requirements, ordered by strategy then
	// rule order.
	Violations []string
}

// Error implements the error interface.
func (e *UnsatisfiableRequestError) Error() string {
	if len(e.Violations) == 0 {
		return "unsatisfiable request: no valid outfit could be composed"
	}
	return "unsatisfiable request: " + strings.Join(e.Violations, "; ")
}

// ValidationFailedError records a fully assembled candidate rejected by the
// validator. The candidate is discarded, not retried within the strategy.
type ValidationFailedError struct {
	Strategy   string
	Violations []string
}

// Error implements the error interface.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("strategy %s: candidate failed validation: %s", e.Strategy, strings.Join(e.Violations, ", "))
}

// ComposeError records a composition attempt that could not satisfy the
// required categories. It is a failed attempt, not a fault: the arbitrator
// still considers the other strategies.
type ComposeError struct {
	Strategy string
	Reason   string
	Missing  []models.Category
}

// Error implements the error interface.
func (e *ComposeError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("strategy %s: %s", e.Strategy, e.Reason)
	}
	cats := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		cats[i] = c.String()
	}
	return fmt.Sprintf("strategy %s: %s: missing %s", e.Strategy, e.Reason, strings.Join(cats, ", "))
}

// Compose failure reasons.
const (
	reasonAnchorNotEligible = "anchor item not in eligible set"
	reasonRequiredUnsat     = "required categories unsatisfied"
	reasonPanicked          = "strategy panicked"
	reasonWardrobeEmpty     = "wardrobe snapshot is empty"
	reasonAnchorNotInCloset = "anchor item not present in wardrobe"
	reasonInvalidOccasion   = "unknown occasion"
)
