package entitlement_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlabs/billingkit/pkg/entitlement"
	"github.com/voxlabs/billingkit/pkg/tier"
)

func TestCache_SequenceFencing(t *testing.T) {
	t.Parallel()

	t.Run("newer response wins regardless of arrival order", func(t *testing.T) {
		t.Parallel()
		cache := entitlement.NewCache()

		older := cache.Begin()
		newer := cache.Begin()

		// The newer refresh resolves first.
		assert.True(t, cache.Commit(newer, &entitlement.Snapshot{Tier: tier.Premium, CreditsRemaining: 900}))
		// The older response arrives late and must be discarded.
		assert.False(t, cache.Commit(older, &entitlement.Snapshot{Tier: tier.Basic, CreditsRemaining: 3}))

		snap := cache.Current()
		require.NotNil(t, snap)
		assert.Equal(t, tier.Premium, snap.Tier)
		assert.Equal(t, 900, snap.CreditsRemaining)
	})

	t.Run("in-order commits apply normally", func(t *testing.T) {
		t.Parallel()
		cache := entitlement.NewCache()

		first := cache.Begin()
		assert.True(t, cache.Commit(first, &entitlement.Snapshot{Tier: tier.Basic}))

		second := cache.Begin()
		assert.True(t, cache.Commit(second, &entitlement.Snapshot{Tier: tier.Standard}))

		assert.Equal(t, tier.Standard, cache.Current().Tier)
	})

	t.Run("nil snapshot keeps previous value", func(t *testing.T) {
		t.Parallel()
		cache := entitlement.NewCache()

		seq := cache.Begin()
		require.True(t, cache.Commit(seq, &entitlement.Snapshot{Tier: tier.Basic, CreditsRemaining: 7}))

		failed := cache.Begin()
		assert.False(t, cache.Commit(failed, nil))

		snap := cache.Current()
		require.NotNil(t, snap)
		assert.Equal(t, 7, snap.CreditsRemaining)
	})

	t.Run("empty cache returns nil", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, entitlement.NewCache().Current())
	})
}

func TestCachedRefresher(t *testing.T) {
	t.Parallel()

	t.Run("successful refresh installs snapshot", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"tier":"standard","credits_remaining":21,"is_active":true}`))
		})
		cache := entitlement.NewCache()
		refresher := entitlement.NewCachedRefresher(client, cache)

		snap := refresher.Refresh(context.Background(), "device-123")
		require.NotNil(t, snap)
		assert.Equal(t, tier.Standard, snap.Tier)
		assert.Equal(t, snap, refresher.Current())
	})

	t.Run("failed refresh keeps cached snapshot", func(t *testing.T) {
		t.Parallel()
		fail := false
		client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			if fail {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"tier":"basic","credits_remaining":5}`))
		})
		cache := entitlement.NewCache()
		refresher := entitlement.NewCachedRefresher(client, cache)

		require.NotNil(t, refresher.Refresh(context.Background(), "device-123"))

		fail = true
		assert.Nil(t, refresher.Refresh(context.Background(), "device-123"))

		snap := refresher.Current()
		require.NotNil(t, snap)
		assert.Equal(t, tier.Basic, snap.Tier)
		assert.Equal(t, 5, snap.CreditsRemaining)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round-trips a snapshot", func(t *testing.T) {
		t.Parallel()
		store := entitlement.NewMemoryStore()
		in := &entitlement.Snapshot{Tier: tier.Premium, CreditsRemaining: 100, IsActive: true}

		require.NoError(t, store.Save(ctx, "device-1", in))
		out, err := store.Get(ctx, "device-1")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("returns copies, not aliases", func(t *testing.T) {
		t.Parallel()
		store := entitlement.NewMemoryStore()
		require.NoError(t, store.Save(ctx, "device-1", &entitlement.Snapshot{CreditsRemaining: 10}))

		out, err := store.Get(ctx, "device-1")
		require.NoError(t, err)
		out.CreditsRemaining = 0

		again, err := store.Get(ctx, "device-1")
		require.NoError(t, err)
		assert.Equal(t, 10, again.CreditsRemaining)
	})

	t.Run("missing device", func(t *testing.T) {
		t.Parallel()
		store := entitlement.NewMemoryStore()
		_, err := store.Get(ctx, "unknown")
		assert.ErrorIs(t, err, entitlement.ErrSnapshotNotFound)
	})

	t.Run("rejects empty device ID", func(t *testing.T) {
		t.Parallel()
		store := entitlement.NewMemoryStore()
		err := store.Save(ctx, "", &entitlement.Snapshot{})
		assert.ErrorIs(t, err, entitlement.ErrMissingDeviceID)
	})
}
