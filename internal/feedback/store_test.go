// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomtom215/garderobe/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordValidates(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Record(ctx, &models.Interaction{ItemIDs: []string{"g-01"}})
	assert.Error(t, err, "missing user id")

	err = store.Record(ctx, &models.Interaction{UserID: "u1"})
	assert.Error(t, err, "missing item ids")
}

func TestSignalEmptyHistory(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	signal, err := store.Signal(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, signal)
}

func TestSignalAggregatesAffinity(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Record(ctx, &models.Interaction{
			UserID:    "u1",
			ItemIDs:   []string{"g-01", "g-02"},
			Type:      models.InteractionWorn,
			Timestamp: now.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.Record(ctx, &models.Interaction{
		UserID:    "u1",
		ItemIDs:   []string{"g-03"},
		Type:      models.InteractionDisliked,
		Timestamp: now,
	}))

	signal, err := store.Signal(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, signal)

	assert.Positive(t, signal.AffinityFor("g-01"))
	assert.Negative(t, signal.AffinityFor("g-03"))
	assert.Zero(t, signal.AffinityFor("unknown"))
	assert.Positive(t, signal.PairAffinityFor("g-01", "g-02"))
	assert.Positive(t, signal.PairAffinityFor("g-02", "g-01"), "pair affinity is order-independent")
}

func TestSignalClampsAffinity(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		require.NoError(t, store.Record(ctx, &models.Interaction{
			UserID:    "u1",
			ItemIDs:   []string{"g-01"},
			Type:      models.InteractionWorn,
			Timestamp: time.Now().UTC(),
		}))
	}

	signal, err := store.Signal(ctx, "u1")
	require.NoError(t, err)
	assert.LessOrEqual(t, signal.AffinityFor("g-01"), 1.0)
}

func TestSignalTracksLastWorn(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	early := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, &models.Interaction{
		UserID: "u1", ItemIDs: []string{"g-01"}, Type: models.InteractionWorn, Timestamp: late,
	}))
	require.NoError(t, store.Record(ctx, &models.Interaction{
		UserID: "u1", ItemIDs: []string{"g-01"}, Type: models.InteractionWorn, Timestamp: early,
	}))
	require.NoError(t, store.Record(ctx, &models.Interaction{
		UserID: "u1", ItemIDs: []string{"g-02"}, Type: models.InteractionLiked, Timestamp: late,
	}))

	signal, err := store.Signal(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, late.UnixNano(), signal.LastWorn["g-01"].UnixNano(), "keeps most recent worn time")
	_, liked := signal.LastWorn["g-02"]
	assert.False(t, liked, "liked interactions do not set LastWorn")
}

func TestSignalIsolatesUsers(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &models.Interaction{
		UserID: "u1", ItemIDs: []string{"g-01"}, Type: models.InteractionLiked, Timestamp: time.Now().UTC(),
	}))

	signal, err := store.Signal(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, signal)
}
