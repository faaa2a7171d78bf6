// Package database defines the abstract KV store contract the consensus
// stores are built on (§1: "the design refers to an abstract KV store";
// §9: no walker ever reaches into a concrete backend directly).
package database

// DataAccessor is the common read/write surface shared by a Database
// handle and a Transaction opened over it.
type DataAccessor interface {
	// Put sets the value for the given key, overwriting any previous value.
	Put(key []byte, value []byte) error

	// Get gets the value for the given key. Returns ErrNotFound if absent.
	Get(key []byte) ([]byte, error)

	// Has returns true if the database contains the given key.
	Has(key []byte) (bool, error)

	// Delete deletes the value for the given key. Not an error if absent.
	Delete(key []byte) error

	// Cursor begins a new cursor over the given key prefix.
	Cursor(prefix []byte) (Cursor, error)
}

// Database is a KV store that can begin batched transactions.
type Database interface {
	DataAccessor

	// Begin begins a new write batch. Kaspad-style stores batch every
	// multi-key write under one exclusive lock per store (§5).
	Begin() (Transaction, error)

	// Close closes the database.
	Close() error
}

// Transaction is a batch of writes/reads that commits atomically.
type Transaction interface {
	DataAccessor

	// Commit flushes the batch to the underlying store.
	Commit() error

	// Rollback discards the batch.
	Rollback() error

	// RollbackUnlessClosed rolls back unless Commit/Rollback already ran --
	// the idiomatic `defer tx.RollbackUnlessClosed()` guard.
	RollbackUnlessClosed() error
}

// Cursor iterates over key/value pairs sharing a prefix, in key order.
type Cursor interface {
	Next() bool
	First() bool
	Key() ([]byte, error)
	Value() ([]byte, error)
	Close() error
}
