// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

// Package wardrobe persists garment items in an embedded BadgerDB store.
//
// Keys are namespaced per user so a full wardrobe snapshot is one prefix
// scan. Values are JSON-encoded models.GarmentItem.
package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/garderobe/internal/metrics"
	"github.com/tomtom215/garderobe/internal/models"
)

// itemKeyPrefix namespaces garment keys: item:<user_id>:<item_id>.
const itemKeyPrefix = "item:"

// ErrItemNotFound is returned when a garment does not exist.
var ErrItemNotFound = errors.New("garment item not found")

// Store is a BadgerDB-backed wardrobe store. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open creates or opens the wardrobe store at dir. When inMemory is true no
// files are written; intended for tests and ephemeral deployments.
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
		return nil, fmt.Errorf("open wardrobe store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func itemKey(userID, itemID string) []byte {
	return []byte(itemKeyPrefix + userID + ":" + itemID)
}

// Put inserts or updates a garment. A missing ID is assigned; CreatedAt is
// set on first insert and UpdatedAt on every write.
func (s *Store) Put(ctx context.Context, userID string, item *models.GarmentItem) (err error) {
	defer func() { metrics.RecordStoreOperation("wardrobe", "put", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if !item.Category.Valid() {
		return fmt.Errorf("invalid category %q", item.Category)
	}

	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.New().String()
		item.CreatedAt = now
	} else if existing, getErr := s.Get(ctx, userID, item.ID); getErr == nil {
		item.CreatedAt = existing.CreatedAt
	} else if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal garment: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(itemKey(userID, item.ID), data)
	})
}

// Get retrieves one garment. Returns ErrItemNotFound when absent.
func (s *Store) Get(ctx context.Context, userID, itemID string) (*models.GarmentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var item models.GarmentItem
	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(userID, itemID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("get garment: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes one garment. Deleting an absent garment is not an error.
func (s *Store) Delete(ctx context.Context, userID, itemID string) (err error) {
	defer func() { metrics.RecordStoreOperation("wardrobe", "delete", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(itemKey(userID, itemID)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete garment: %w", err)
		}
		return nil
	})
}

// List returns the user's full wardrobe snapshot, ordered by garment ID for
// deterministic downstream iteration.
func (s *Store) List(ctx context.Context, userID string) (items []models.GarmentItem, err error) {
	defer func() { metrics.RecordStoreOperation("wardrobe", "list", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var item models.GarmentItem
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("decode garment: %w", err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// Count returns how many garments the user owns.
func (s *Store) Count(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemKeyPrefix + userID + ":")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC runs one value-log garbage collection pass. Returns badger's
// ErrNoRewrite when nothing was reclaimed; callers treat that as a no-op.
func (s *Store) RunGC() error {
	return s.db.RunValueLogGC(0.5)
}
