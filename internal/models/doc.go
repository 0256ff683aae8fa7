// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package models defines the shared data types for Garderobe: garments,
// generation contexts, weather snapshots, feedback signals, and the
// standard API response envelope.
//
// Types in this package are plain data carriers with no behavior beyond
// parsing, validation helpers, and documented-default accessors. They are
// treated as immutable for the duration of a generation request: the engine
// receives them read-only and never mutates them.
package models
