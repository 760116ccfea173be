package purchase

import "errors"

var (
	// ErrAlreadyInFlight rejects a purchase attempt while another one is
	// running. Attempts are never queued; the caller retries manually.
	ErrAlreadyInFlight = errors.New("purchase: another purchase is already in flight")

	// ErrUnsupportedTier rejects tiers with no purchase action (free).
	ErrUnsupportedTier = errors.New("purchase: tier has no purchasable product")

	// ErrUnknownProduct means the tier resolved to no catalog product.
	ErrUnknownProduct = errors.New("purchase: no product mapped for tier")

	// ErrUserCancelled is the distinguished non-error outcome for a
	// user-dismissed store dialog. Bridges return it from Purchase; the
	// UI should not present it as a failure.
	ErrUserCancelled = errors.New("purchase: cancelled by user")

	// ErrNoTransactionID marks an indeterminate purchase: the store
	// reported success without a transaction identifier. Money may have
	// moved; the attempt is journaled for manual reconciliation and is
	// never treated as successful.
	ErrNoTransactionID = errors.New("purchase: store returned no transaction identifier")

	// ErrStoreRejected wraps any other native purchase failure.
	ErrStoreRejected = errors.New("purchase: store purchase failed")

	// ErrRestoreFailed wraps a failed restore-purchases replay.
	ErrRestoreFailed = errors.New("purchase: restore purchases failed")
)
