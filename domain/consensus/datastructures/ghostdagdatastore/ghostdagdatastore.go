// Package ghostdagdatastore stores each block's GHOSTDAG classification
// (§3, §4.6), keyed by (hash, isTrustedData) per level -- the second axis
// lets pruning-proof-supplied trusted data coexist with normally derived
// data without colliding.
package ghostdagdatastore

import (
	"fmt"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const defaultCacheSize = 10000

type ghostdagEntry struct {
	hash          externalapi.DomainHash
	isTrustedData bool
}

type ghostdagDataStagingShard struct {
	toAdd map[ghostdagEntry]*externalapi.BlockGHOSTDAGData
}

type ghostdagDataStore struct {
	level int
	cache *cache.HashCache
}

// New creates a GHOSTDAG data store for the given DAG level.
func New(level int) model.GHOSTDAGDataStore {
	return &ghostdagDataStore{level: level, cache: cache.New(defaultCacheSize)}
}

func (s *ghostdagDataStore) shardName() string {
	return fmt.Sprintf("ghostdagdatastore-%d", s.level)
}

func (s *ghostdagDataStore) stagingShard(stagingArea *model.StagingArea) *ghostdagDataStagingShard {
	return stagingArea.GetOrCreateShard(s.shardName(), func() model.StagingShard {
		return &ghostdagDataStagingShard{toAdd: make(map[ghostdagEntry]*externalapi.BlockGHOSTDAGData)}
	}).(*ghostdagDataStagingShard)
}

// cacheKey folds isTrustedData into the hash-keyed cache by flipping its
// first byte -- a cheap partition since trusted and non-trusted entries
// for the same real hash never need to collide in the same cache slot.
func cacheKey(blockHash *externalapi.DomainHash, isTrustedData bool) externalapi.DomainHash {
	key := *blockHash
	if isTrustedData {
		key[0] ^= 0xff
	}
	return key
}

func (s *ghostdagDataStore) key(blockHash *externalapi.DomainHash, isTrustedData bool) []byte {
	suffix := byte(0)
	if isTrustedData {
		suffix = 1
	}
	key := dbaccess.LevelKey(dbaccess.HashKey(dbaccess.PrefixGHOSTDAG, blockHash[:]), s.level)
	return append(key, suffix)
}

func (s *ghostdagDataStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, data *externalapi.BlockGHOSTDAGData, isTrustedData bool) {
	shard := s.stagingShard(stagingArea)
	shard.toAdd[ghostdagEntry{hash: *blockHash, isTrustedData: isTrustedData}] = data
}

func (s *ghostdagDataStore) IsStaged(stagingArea *model.StagingArea) bool {
	return len(s.stagingShard(stagingArea).toAdd) != 0
}

func (s *ghostdagDataStore) Get(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, isTrustedData bool) (*externalapi.BlockGHOSTDAGData, error) {
	shard := s.stagingShard(stagingArea)
	if data, ok := shard.toAdd[ghostdagEntry{hash: *blockHash, isTrustedData: isTrustedData}]; ok {
		return data, nil
	}
	key := cacheKey(blockHash, isTrustedData)
	if cached, ok := s.cache.Get(&key); ok {
		return cached.(*externalapi.BlockGHOSTDAGData), nil
	}
	raw, err := dbContext.Get(s.key(blockHash, isTrustedData))
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	data, err := binaryserialization.DeserializeGHOSTDAGData(raw)
	if err != nil {
		return nil, err
	}
	s.cache.Add(&key, data)
	return data, nil
}

// UnstagedBlockHashes always returns nil: the store keeps no independent
// list of hashes beyond the entries staged or committed under their keys.
func (s *ghostdagDataStore) UnstagedBlockHashes() []*externalapi.DomainHash {
	return nil
}

func (s *ghostdagDataStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for entry, data := range shard.toAdd {
		entry := entry
		raw, err := binaryserialization.SerializeGHOSTDAGData(data)
		if err != nil {
			return err
		}
		err = dbTx.Put(s.key(&entry.hash, entry.isTrustedData), raw)
		if err != nil {
			return err
		}
		key := cacheKey(&entry.hash, entry.isTrustedData)
		s.cache.Add(&key, data)
	}
	shard.toAdd = make(map[ghostdagEntry]*externalapi.BlockGHOSTDAGData)
	return nil
}
