package reconcile

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reason classifies why a purchase needs manual reconciliation.
type Reason string

const (
	// ReasonNoTransactionID marks a store purchase that reported success
	// without a transaction identifier. The purchase is indeterminate:
	// money may have moved, but nothing can be verified.
	ReasonNoTransactionID Reason = "no_transaction_id"

	// ReasonVerificationRejected marks a completed store transaction the
	// backend refused to verify. The user paid but is not credited until
	// the evidence is re-submitted.
	ReasonVerificationRejected Reason = "verification_rejected"
)

// Entry is one purchase awaiting manual follow-up.
type Entry struct {
	ID            uuid.UUID
	DeviceID      string
	ProductID     string
	TransactionID string // empty for ReasonNoTransactionID
	Reason        Reason
	Detail        string // backend rejection body or bridge error text
	CreatedAt     time.Time
	ResolvedAt    *time.Time
}

// Resolved reports whether the entry has been closed by an operator.
func (e Entry) Resolved() bool {
	return e.ResolvedAt != nil
}

// Journal persists reconciliation entries.
type Journal interface {
	// Record stores a new entry. The entry's ID and CreatedAt are
	// assigned by the journal when zero.
	Record(ctx context.Context, entry *Entry) error

	// Open lists unresolved entries, oldest first.
	Open(ctx context.Context) ([]Entry, error)

	// Resolve closes an entry. Returns ErrEntryNotFound for unknown IDs.
	Resolve(ctx context.Context, id uuid.UUID) error
}

// MemoryJournal is an in-process Journal for clients and tests.
type MemoryJournal struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryJournal creates an empty in-memory journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{}
}

func (j *MemoryJournal) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return ErrNilEntry
	}
	if entry.DeviceID == "" {
		return ErrMissingDeviceID
	}

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, *entry)
	return nil
}

func (j *MemoryJournal) Open(ctx context.Context) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	var open []Entry
	for _, e := range j.entries {
		if !e.Resolved() {
			open = append(open, e)
		}
	}
	slices.SortFunc(open, func(a, b Entry) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return open, nil
}

func (j *MemoryJournal) Resolve(ctx context.Context, id uuid.UUID) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	for i := range j.entries {
		if j.entries[i].ID == id {
			now := time.Now().UTC()
			j.entries[i].ResolvedAt = &now
			return nil
		}
	}
	return ErrEntryNotFound
}
