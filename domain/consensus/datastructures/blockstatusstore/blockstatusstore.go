// Package blockstatusstore tracks each block's validity state machine
// (§3): HeaderOnly -> UTXOPendingVerification -> Valid|Disqualified, any
// non-terminal -> Invalid. Unlike the append-only stores, this one is
// mutated repeatedly per hash as status advances.
package blockstatusstore

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "blockstatusstore"
const defaultCacheSize = 10000

type blockStatusStagingShard struct {
	toAdd map[externalapi.DomainHash]externalapi.BlockStatus
}

type blockStatusStore struct {
	cache *cache.HashCache
}

// New creates a new block status store.
func New() model.BlockStatusStore {
	return &blockStatusStore{cache: cache.New(defaultCacheSize)}
}

func (s *blockStatusStore) stagingShard(stagingArea *model.StagingArea) *blockStatusStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &blockStatusStagingShard{toAdd: make(map[externalapi.DomainHash]externalapi.BlockStatus)}
	}).(*blockStatusStagingShard)
}

func (s *blockStatusStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, status externalapi.BlockStatus) {
	s.stagingShard(stagingArea).toAdd[*blockHash] = status
}

func (s *blockStatusStore) IsStaged(stagingArea *model.StagingArea) bool {
	return len(s.stagingShard(stagingArea).toAdd) != 0
}

func (s *blockStatusStore) Exists(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
	shard := s.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if s.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(dbaccess.HashKey(dbaccess.PrefixStatuses, blockHash[:]))
}

func (s *blockStatusStore) Get(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error) {
	shard := s.stagingShard(stagingArea)
	if status, ok := shard.toAdd[*blockHash]; ok {
		return status, nil
	}
	if cached, ok := s.cache.Get(blockHash); ok {
		return cached.(externalapi.BlockStatus), nil
	}
	data, err := dbContext.Get(dbaccess.HashKey(dbaccess.PrefixStatuses, blockHash[:]))
	if err != nil {
		return 0, errors.WithStack(database.ErrNotFound)
	}
	status, err := binaryserialization.DeserializeBlockStatus(data)
	if err != nil {
		return 0, err
	}
	s.cache.Add(blockHash, status)
	return status, nil
}

func (s *blockStatusStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash, status := range shard.toAdd {
		hash := hash
		err := dbTx.Put(dbaccess.HashKey(dbaccess.PrefixStatuses, hash[:]), binaryserialization.SerializeBlockStatus(status))
		if err != nil {
			return err
		}
		s.cache.Add(&hash, status)
	}
	shard.toAdd = make(map[externalapi.DomainHash]externalapi.BlockStatus)
	return nil
}
