// Package services contains the application services of the budget client:
// accounts, the per-process session, the per-user ledger, form validation
// and persisted preferences.
//
// Services are built on kv.Store values passed in by the caller. Persisted
// collections are JSON documents rewritten as a whole on every change; when a
// stored document cannot be decoded it is treated as empty and a warning is
// logged.
package services
