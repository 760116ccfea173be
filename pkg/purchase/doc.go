// Package purchase drives a single in-app purchase attempt end to end:
// product resolution, the native store call, receipt capture, backend
// verification, and the entitlement refresh that follows.
//
// A Session owns all mutable purchase state. There are no package-level
// flags; tests and hosts construct independent sessions with their own
// bridge, verifier, and refresher:
//
//	session := purchase.NewSession(cfg, bridge, verifier, refresher, cat,
//		purchase.WithEventSink(purchase.NewSlogSink(log)),
//	)
//	conf, err := session.Purchase(ctx, tier.Standard)
//
// At most one purchase attempt is in flight per session. A second call
// while one is running fails immediately with ErrAlreadyInFlight; nothing
// is queued and nothing is cancelled. Retries are always a fresh
// user-initiated call.
//
// A store-level success is not a purchase success. If verification rejects
// the evidence the whole attempt is reported as failed and the transaction
// is journaled for manual reconciliation. An unverified purchase must
// never entitle the user, even though the user may already have paid.
//
// The Bridge interface abstracts the platform purchase SDK. Native store
// bridges live in the host app; PaddleBridge covers web builds without
// native billing.
package purchase
