// Package ldb implements the database.Database contract over goleveldb,
// the concrete backend the teacher wires behind its dbaccess layer
// (§1 calls the backend choice external; we still wire a real one so the
// store layer has something to exercise end-to-end).
package ldb

import (
	"github.com/btcsuite/goleveldb/leveldb"
	"github.com/btcsuite/goleveldb/leveldb/iterator"
	"github.com/btcsuite/goleveldb/leveldb/util"
	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/database"
)

// LevelDB is a database.Database backed by a goleveldb instance.
type LevelDB struct {
	db *leveldb.DB
}

// NewLevelDB opens (or creates) a goleveldb instance at path.
func NewLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed opening leveldb at %s", path)
	}
	return &LevelDB{db: db}, nil
}

// Put implements database.DataAccessor.
func (l *LevelDB) Put(key, value []byte) error {
	return l.db.Put(key, value, nil)
}

// Get implements database.DataAccessor.
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	value, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Has implements database.DataAccessor.
func (l *LevelDB) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

// Delete implements database.DataAccessor.
func (l *LevelDB) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

// Cursor implements database.DataAccessor.
func (l *LevelDB) Cursor(prefix []byte) (database.Cursor, error) {
	iter := l.db.NewIterator(util.BytesPrefix(prefix), nil)
	return &levelDBCursor{iterator: iter}, nil
}

// Begin implements database.Database.
func (l *LevelDB) Begin() (database.Transaction, error) {
	batch := new(leveldb.Batch)
	return &levelDBTransaction{db: l.db, batch: batch}, nil
}

// Close implements database.Database.
func (l *LevelDB) Close() error {
	return l.db.Close()
}

type levelDBCursor struct {
	iterator iterator.Iterator
}

func (c *levelDBCursor) Next() bool  { return c.iterator.Next() }
func (c *levelDBCursor) First() bool { return c.iterator.First() }
func (c *levelDBCursor) Key() ([]byte, error) {
	key := c.iterator.Key()
	clone := make([]byte, len(key))
	copy(clone, key)
	return clone, nil
}
func (c *levelDBCursor) Value() ([]byte, error) {
	value := c.iterator.Value()
	clone := make([]byte, len(value))
	copy(clone, value)
	return clone, nil
}
func (c *levelDBCursor) Close() error {
	c.iterator.Release()
	return c.iterator.Error()
}

// levelDBTransaction buffers writes in a leveldb.Batch and serves reads
// straight through to the underlying DB -- the teacher's database2/ffldb
// transaction explicitly documents that reads do not see the batch's own
// uncommitted writes, and we keep that same contract here.
type levelDBTransaction struct {
	db     *leveldb.DB
	batch  *leveldb.Batch
	closed bool
}

func (tx *levelDBTransaction) Put(key, value []byte) error {
	tx.batch.Put(key, value)
	return nil
}

func (tx *levelDBTransaction) Get(key []byte) ([]byte, error) {
	value, err := tx.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (tx *levelDBTransaction) Has(key []byte) (bool, error) {
	return tx.db.Has(key, nil)
}

func (tx *levelDBTransaction) Delete(key []byte) error {
	tx.batch.Delete(key)
	return nil
}

func (tx *levelDBTransaction) Cursor(prefix []byte) (database.Cursor, error) {
	iter := tx.db.NewIterator(util.BytesPrefix(prefix), nil)
	return &levelDBCursor{iterator: iter}, nil
}

func (tx *levelDBTransaction) Commit() error {
	if tx.closed {
		return errors.New("transaction already closed")
	}
	tx.closed = true
	return tx.db.Write(tx.batch, nil)
}

func (tx *levelDBTransaction) Rollback() error {
	if tx.closed {
		return errors.New("transaction already closed")
	}
	tx.closed = true
	tx.batch.Reset()
	return nil
}

func (tx *levelDBTransaction) RollbackUnlessClosed() error {
	if tx.closed {
		return nil
	}
	return tx.Rollback()
}
