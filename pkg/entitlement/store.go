package entitlement

import (
	"context"
	"sync"
)

// SnapshotStore persists cached snapshots so a hosting app can share them
// across processes or survive restarts. The device ID is the key.
type SnapshotStore interface {
	// Get retrieves the stored snapshot for a device.
	// Returns ErrSnapshotNotFound when nothing is stored.
	Get(ctx context.Context, deviceID string) (*Snapshot, error)

	// Save stores or replaces the snapshot for a device.
	Save(ctx context.Context, deviceID string, snap *Snapshot) error
}

// MemoryStore is an in-process SnapshotStore suitable for single-process
// clients and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]Snapshot)}
}

func (s *MemoryStore) Get(ctx context.Context, deviceID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[deviceID]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	// Copy out so callers cannot mutate the stored value.
	out := snap
	return &out, nil
}

func (s *MemoryStore) Save(ctx context.Context, deviceID string, snap *Snapshot) error {
	if deviceID == "" {
		return ErrMissingDeviceID
	}
	if snap == nil {
		return ErrNilSnapshot
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[deviceID] = *snap
	return nil
}
