package entitlement

import (
	"errors"
	"fmt"
)

var (
	ErrVerificationFailed = errors.New("entitlement: purchase verification failed")
	ErrRefreshFailed      = errors.New("entitlement: failed to fetch subscription status")
	ErrMissingDeviceID    = errors.New("entitlement: device ID is required")
	ErrSnapshotNotFound   = errors.New("entitlement: snapshot not found")
	ErrNilSnapshot        = errors.New("entitlement: snapshot is required")
)

// StatusError carries the HTTP status and response body of a rejected
// backend call so callers can surface it for support and reconciliation.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}
