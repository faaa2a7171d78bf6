package model

import "github.com/ghostdag-labs/ghostdagd/infrastructure/db/database"

// DBReader is the read surface every store is handed; stores never see a
// concrete backend (§1, §9).
type DBReader interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Cursor(prefix []byte) (database.Cursor, error)
}

// DBWriter is the write surface used inside a batched transaction (§5:
// writes are batched under an exclusive lock per store).
type DBWriter interface {
	DBReader
	Put(key []byte, value []byte) error
	Delete(key []byte) error
}

// DBTransaction is a batched read/write unit of work.
type DBTransaction interface {
	DBWriter
	Commit() error
	Rollback() error
	RollbackUnlessClosed() error
}

// DBManager can both serve reads directly and open transactions, the
// composite surface the per-process managers (ghostdag, pruning, ...)
// are constructed with.
type DBManager interface {
	DBReader
	Begin() (DBTransaction, error)
}
