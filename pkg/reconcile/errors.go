package reconcile

import "errors"

var (
	ErrNilEntry        = errors.New("reconcile: entry is required")
	ErrMissingDeviceID = errors.New("reconcile: device ID is required")
	ErrEntryNotFound   = errors.New("reconcile: journal entry not found")
	ErrRecordFailed    = errors.New("reconcile: failed to record journal entry")
	ErrListFailed      = errors.New("reconcile: failed to list journal entries")
	ErrResolveFailed   = errors.New("reconcile: failed to resolve journal entry")
	ErrMigrationFailed = errors.New("reconcile: failed to apply journal migrations")
)
