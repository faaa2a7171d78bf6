// Package dbaccess wraps infrastructure/db/database with the logical
// key-prefix scheme named in §6 (HEADER, BLOCK_TX, GHOSTDAG(level), ...)
// and the per-consensus-instance directory naming the consensus factory
// uses to lay out multiple instances under one data directory (§4.9). The
// management database itself (which instance is active) lives one level
// up, in domain/consensus/datastructures/managementstore, since it must
// be queryable before any per-instance DatabaseContext exists.
package dbaccess

import (
	"path/filepath"

	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/database"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/database/ldb"
)

// DatabaseContext represents a context in which all database queries run,
// exactly as the teacher's dbaccess.DatabaseContext wraps a database.Database.
type DatabaseContext struct {
	db database.Database
}

// New creates a new DatabaseContext backed by a leveldb instance at path.
func New(path string) (*DatabaseContext, error) {
	db, err := ldb.NewLevelDB(path)
	if err != nil {
		return nil, err
	}
	return &DatabaseContext{db: db}, nil
}

// Close closes the DatabaseContext's connection, if it's open.
func (ctx *DatabaseContext) Close() error {
	return ctx.db.Close()
}

// Put implements database.DataAccessor via the underlying handle.
func (ctx *DatabaseContext) Put(key, value []byte) error { return ctx.db.Put(key, value) }

// Get implements database.DataAccessor via the underlying handle.
func (ctx *DatabaseContext) Get(key []byte) ([]byte, error) { return ctx.db.Get(key) }

// Has implements database.DataAccessor via the underlying handle.
func (ctx *DatabaseContext) Has(key []byte) (bool, error) { return ctx.db.Has(key) }

// Delete implements database.DataAccessor via the underlying handle.
func (ctx *DatabaseContext) Delete(key []byte) error { return ctx.db.Delete(key) }

// Cursor implements database.DataAccessor via the underlying handle.
func (ctx *DatabaseContext) Cursor(prefix []byte) (database.Cursor, error) {
	return ctx.db.Cursor(prefix)
}

// Begin opens a new write batch against the underlying handle (§5: stores
// batch multi-key writes under one exclusive lock per store).
func (ctx *DatabaseContext) Begin() (database.Transaction, error) { return ctx.db.Begin() }

// ConsensusDataDir returns the per-consensus-instance subdirectory under
// dataDir for the given consensus key, matching §4.9/§6's
// "consensus-<key>" layout.
func ConsensusDataDir(dataDir string, key uint64) string {
	return filepath.Join(dataDir, consensusDirName(key))
}

func consensusDirName(key uint64) string {
	return "consensus-" + zeroPad(key)
}

func zeroPad(key uint64) string {
	digits := [3]byte{'0', '0', '0'}
	s := uintToString(key)
	if len(s) >= len(digits) {
		return s
	}
	copy(digits[len(digits)-len(s):], s)
	return string(digits[:])
}

func uintToString(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
