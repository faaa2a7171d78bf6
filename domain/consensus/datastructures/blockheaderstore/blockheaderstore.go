// Package blockheaderstore stores block headers, keyed by hash, grounded
// on the teacher's domain/consensus/datastructures/blockheaderstore
// package (batched staged writes flushed to the KV backend on Commit,
// with a bounded in-memory cache in front of it).
package blockheaderstore

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "blockheaderstore"

const defaultCacheSize = 10000

type blockHeaderStagingShard struct {
	store    *blockHeaderStore
	toAdd    map[externalapi.DomainHash]*externalapi.DomainBlockHeader
	toDelete map[externalapi.DomainHash]struct{}
}

// blockHeaderStore implements model.BlockHeaderStore.
type blockHeaderStore struct {
	cache *cache.HashCache
}

// New creates a new block header store.
func New() model.BlockHeaderStore {
	return &blockHeaderStore{cache: cache.New(defaultCacheSize)}
}

func (s *blockHeaderStore) stagingShard(stagingArea *model.StagingArea) *blockHeaderStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &blockHeaderStagingShard{
			store:    s,
			toAdd:    make(map[externalapi.DomainHash]*externalapi.DomainBlockHeader),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*blockHeaderStagingShard)
}

// Stage queues header for the given hash to be written on Commit.
func (s *blockHeaderStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, header *externalapi.DomainBlockHeader) {
	shard := s.stagingShard(stagingArea)
	shard.toAdd[*blockHash] = header
}

// IsStaged returns whether this store has pending writes in stagingArea.
func (s *blockHeaderStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := s.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || len(shard.toDelete) != 0
}

// BlockHeader returns the header for blockHash, checking the staging area,
// then the cache, then the KV backend in that order.
func (s *blockHeaderStore) BlockHeader(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {
	shard := s.stagingShard(stagingArea)
	if header, ok := shard.toAdd[*blockHash]; ok {
		return header, nil
	}
	if _, deleted := shard.toDelete[*blockHash]; deleted {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	if cached, ok := s.cache.Get(blockHash); ok {
		return cached.(*externalapi.DomainBlockHeader), nil
	}

	data, err := dbContext.Get(dbaccess.HashKey(dbaccess.PrefixHeader, blockHash[:]))
	if err != nil {
		return nil, err
	}
	header, err := binaryserialization.DeserializeHeader(data)
	if err != nil {
		return nil, err
	}
	s.cache.Add(blockHash, header)
	return header, nil
}

// HasHeader returns whether blockHash has a stored header.
func (s *blockHeaderStore) HasHeader(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
	shard := s.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if _, deleted := shard.toDelete[*blockHash]; deleted {
		return false, nil
	}
	if s.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(dbaccess.HashKey(dbaccess.PrefixHeader, blockHash[:]))
}

// Delete queues blockHash's header for removal on Commit (pruning, §3).
func (s *blockHeaderStore) Delete(dbTx model.DBTransaction, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	shard := s.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
	return nil
}

// Commit flushes staged writes to dbTx and updates the cache.
func (s *blockHeaderStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash, header := range shard.toAdd {
		hash := hash
		data, err := binaryserialization.SerializeHeader(header)
		if err != nil {
			return err
		}
		err = dbTx.Put(dbaccess.HashKey(dbaccess.PrefixHeader, hash[:]), data)
		if err != nil {
			return err
		}
		s.cache.Add(&hash, header)
	}
	for hash := range shard.toDelete {
		hash := hash
		err := dbTx.Delete(dbaccess.HashKey(dbaccess.PrefixHeader, hash[:]))
		if err != nil {
			return err
		}
		s.cache.Remove(&hash)
	}
	shard.toAdd = make(map[externalapi.DomainHash]*externalapi.DomainBlockHeader)
	shard.toDelete = make(map[externalapi.DomainHash]struct{})
	return nil
}
