// Package store defines the persistence contract for the posting
// application: one store interface per record kind, the DBTX abstraction
// shared by connections and transactions, the transaction runner, and the
// errors every implementation returns.
//
// Lookups by ID report absence as a nil entity with a nil error. Deletes of
// missing IDs are no-ops. Updates that must hit an existing row return an
// error wrapping ErrNotFound.
package store
