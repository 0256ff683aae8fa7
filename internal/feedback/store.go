// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package feedback records user reactions to recommended outfits and
// aggregates them into the scoring signal the engine consumes.
//
// Interactions are append-only BadgerDB entries keyed by user and timestamp;
// the aggregate signal is recomputed on read. Wardrobes are small enough
// that a prefix scan per generation request is cheaper than maintaining
// incremental aggregates.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/garderobe/internal/metrics"
	"github.com/tomtom215/garderobe/internal/models"
)

// interactionKeyPrefix namespaces keys: fb:<user_id>:<unix_nano>:<uuid>.
const interactionKeyPrefix = "fb:"

// interactionWeight scales one interaction's contribution to the aggregate
// item affinity. Roughly five consistent reactions saturate the signal.
const interactionWeight = 0.2

// pairWeight scales pair contributions; pairs accumulate more slowly than
// single-item affinities.
const pairWeight = 0.1

// Store is a BadgerDB-backed feedback store. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open creates or opens the feedback store at dir. When inMemory is true no
// files are written.
func Open(dir string, inMemory bool) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.InMemory = inMemory
	if inMemory {
		opts.Dir = ""
		opts.ValueDir = ""
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open feedback store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one interaction.
func (s *Store) Record(ctx context.Context, interaction *models.Interaction) (err error) {
	defer func() { metrics.RecordStoreOperation("feedback", "record", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if interaction.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if len(interaction.ItemIDs) == 0 {
		return fmt.Errorf("at least one item id is required")
	}
	if interaction.Timestamp.IsZero() {
		interaction.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(interaction)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	key := []byte(interactionKeyPrefix + interaction.UserID + ":" +
		strconv.FormatInt(interaction.Timestamp.UnixNano(), 10) + ":" + uuid.New().String())
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// Interactions returns the user's raw interaction history in insertion
// order.
func (s *Store) Interactions(ctx context.Context, userID string) ([]models.Interaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var history []models.Interaction
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(interactionKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var interaction models.Interaction
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &interaction)
			}); err != nil {
				return fmt.Errorf("decode interaction: %w", err)
			}
			history = append(history, interaction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// Signal aggregates the user's history into the scoring signal. Item and
// pair affinities accumulate per interaction and clamp to [-1, 1]; LastWorn
// tracks the most recent worn timestamp per item.
func (s *Store) Signal(ctx context.Context, userID string) (signal *models.FeedbackSignal, err error) {
	defer func() { metrics.RecordStoreOperation("feedback", "signal", err) }()

	history, err := s.Interactions(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, nil
	}

	signal = &models.FeedbackSignal{
		ItemAffinity: make(map[string]float64),
		PairAffinity: make(map[string]float64),
		LastWorn:     make(map[string]time.Time),
	}

	for i := range history {
		interaction := &history[i]
		affinity := interaction.Type.Affinity()

		for _, itemID := range interaction.ItemIDs {
			signal.ItemAffinity[itemID] = clamp(signal.ItemAffinity[itemID]+affinity*interactionWeight, -1, 1)
		}

		for i := 0; i < len(interaction.ItemIDs); i++ {
			for j := i + 1; j < len(interaction.ItemIDs); j++ {
				key := models.PairKey(interaction.ItemIDs[i], interaction.ItemIDs[j])
				signal.PairAffinity[key] = clamp(signal.PairAffinity[key]+affinity*pairWeight, -1, 1)
			}
		}

		if interaction.Type == models.InteractionWorn {
			for _, itemID := range interaction.ItemIDs {
				if interaction.Timestamp.After(signal.LastWorn[itemID]) {
					signal.LastWorn[itemID] = interaction.Timestamp
				}
			}
		}
	}

	return signal, nil
}

// RunGC runs one value-log garbage collection pass.
func (s *Store) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}

// IsNoRewrite reports whether a GC error just means nothing was reclaimed.
func IsNoRewrite(err error) bool {
	return errors.Is(err, badger.ErrNoRewrite)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
