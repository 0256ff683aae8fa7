// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package engine implements the outfit composition engine.
//
// # Architecture
//
// Generation is a pipeline over an immutable wardrobe snapshot:
//
//	GenerationContext → CandidateFilter → {Composer per strategy, concurrent}
//	                  → Validator (per candidate) → arbitration → Result
//
// Each configured strategy independently filters the wardrobe, greedily
// assembles a candidate outfit under the category policy, and validates it.
// The engine arbitrates the validated candidates by aggregate score, breaking
// ties by fixed strategy priority, and falls back to a guaranteed-minimal
// deterministic composer when every strategy fails. Only a total failure
// (even the fallback cannot satisfy the required categories) crosses the
// engine boundary, as *UnsatisfiableRequestError.
//
// # Design Principles
//
//   - Deterministic: identical (wardrobe, context, seed) inputs produce
//     byte-identical outfits; all tie-breaks are seeded or ordered
//   - Stateless: every component is a pure function of its inputs; the
//     engine holds no request-scoped state between calls
//   - Contained failures: per-strategy errors, timeouts, and panics never
//     abort sibling strategies
//
// # Usage
//
//	eng, err := engine.New(engine.DefaultConfig(), logger)
//	result, err := eng.Generate(ctx, models.GenerationContext{
//	    UserID:   userID,
//	    Occasion: models.OccasionCasual,
//	    Wardrobe: snapshot,
//	    Seed:     42,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Strategies share only read-only
// references to the wardrobe snapshot and context, so no locking is needed.
package engine
