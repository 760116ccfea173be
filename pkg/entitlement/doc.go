// Package entitlement talks to the backend entitlement service: it submits
// purchase evidence for verification and fetches the authoritative
// subscription/credit snapshot for a device.
//
// Verification is strict. Any non-2xx response or transport error fails the
// call, and the purchase flow treats that as a failed purchase even when the
// store-level transaction went through; an unverified purchase must never
// entitle the user.
//
// Refresh is forgiving. Refresh returns nil on any failure and callers keep
// their previously cached snapshot; missing fields in a successful response
// default to the free tier with zero credits rather than failing the parse.
//
// The Cache fences concurrent refreshes with a monotonic sequence number so
// a slow, older response can never overwrite a newer snapshot:
//
//	refresher := entitlement.NewCachedRefresher(client, cache)
//	snap := refresher.Refresh(ctx, deviceID) // nil => keep previous
package entitlement
