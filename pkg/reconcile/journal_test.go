package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxlabs/billingkit/pkg/reconcile"
)

func TestMemoryJournal_Record(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()
		journal := reconcile.NewMemoryJournal()

		entry := &reconcile.Entry{
			DeviceID:  "device-1",
			ProductID: "sub_basic_monthly",
			Reason:    reconcile.ReasonNoTransactionID,
		}
		require.NoError(t, journal.Record(ctx, entry))

		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("rejects nil entry", func(t *testing.T) {
		t.Parallel()
		journal := reconcile.NewMemoryJournal()
		assert.ErrorIs(t, journal.Record(ctx, nil), reconcile.ErrNilEntry)
	})

	t.Run("rejects missing device ID", func(t *testing.T) {
		t.Parallel()
		journal := reconcile.NewMemoryJournal()
		err := journal.Record(ctx, &reconcile.Entry{ProductID: "p"})
		assert.ErrorIs(t, err, reconcile.ErrMissingDeviceID)
	})
}

func TestMemoryJournal_OpenAndResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	journal := reconcile.NewMemoryJournal()

	older := &reconcile.Entry{
		DeviceID:  "device-1",
		ProductID: "sub_premium_monthly",
		Reason:    reconcile.ReasonVerificationRejected,
		Detail:    "backend returned status 402",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	newer := &reconcile.Entry{
		DeviceID:  "device-2",
		ProductID: "credits_pack_500",
		Reason:    reconcile.ReasonNoTransactionID,
	}
	require.NoError(t, journal.Record(ctx, newer))
	require.NoError(t, journal.Record(ctx, older))

	open, err := journal.Open(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, older.ID, open[0].ID, "oldest entry first")

	require.NoError(t, journal.Resolve(ctx, older.ID))

	open, err = journal.Open(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, newer.ID, open[0].ID)

	t.Run("resolve unknown entry", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, journal.Resolve(ctx, uuid.New()), reconcile.ErrEntryNotFound)
	})
}
