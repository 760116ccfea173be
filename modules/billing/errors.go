package billing

import "errors"

var (
	errMalformedRequest    = errors.New("malformed request body")
	errSnapshotUnavailable = errors.New("no entitlement snapshot available")
)
