// Package reconcile records purchases that need manual follow-up.
//
// Two purchase outcomes leave money possibly moved without entitlement
// granted: the store reported success but returned no transaction
// identifier, and the store transaction succeeded but backend verification
// rejected it. Neither is retried automatically; both are journaled so a
// support workflow can resolve them.
//
// MemoryJournal serves on-device clients and tests. PostgresJournal backs a
// server-side reconciliation queue, with its schema managed by the embedded
// goose migrations (see Migrate).
package reconcile
