// Package catalog loads the purchasable product catalog from the remote
// pricing endpoint, substituting an embedded static catalog when the
// endpoint is unreachable or returns garbage.
//
// Callers that must never block on pricing use Load, which always returns a
// usable catalog:
//
//	loader := catalog.NewLoader(cfg)
//	cat := loader.Load(ctx) // live catalog, or the fallback on any failure
//
// Fetch exposes the underlying failure for tests and callers that want to
// distinguish the two sources; Load is Fetch composed with OrFallback.
//
// The fallback catalog carries the same product identifiers and tier
// coverage as the live one, so eligibility and product mapping never need
// to know which source is active.
package catalog
