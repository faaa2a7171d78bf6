// Package reachabilitydatastore stores the reachability tree's per-block
// data plus the single reindex root (§4.5, §6: REACHABILITY).
package reachabilitydatastore

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "reachabilitydatastore"
const defaultCacheSize = 10000

var reindexRootKey = dbaccess.HashKey(dbaccess.PrefixReachability, []byte("reindex-root"))

type reachabilityDataStagingShard struct {
	toAdd       map[externalapi.DomainHash]*model.ReachabilityData
	reindexRoot *externalapi.DomainHash
}

type reachabilityDataStore struct {
	cache            *cache.HashCache
	reindexRootCache *externalapi.DomainHash
}

// New creates a new reachability data store.
func New() model.ReachabilityDataStore {
	return &reachabilityDataStore{cache: cache.New(defaultCacheSize)}
}

func (s *reachabilityDataStore) stagingShard(stagingArea *model.StagingArea) *reachabilityDataStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &reachabilityDataStagingShard{toAdd: make(map[externalapi.DomainHash]*model.ReachabilityData)}
	}).(*reachabilityDataStagingShard)
}

func (s *reachabilityDataStore) key(blockHash *externalapi.DomainHash) []byte {
	return dbaccess.HashKey(dbaccess.PrefixReachability, blockHash[:])
}

func (s *reachabilityDataStore) StageReachabilityData(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, reachabilityData *model.ReachabilityData) {
	s.stagingShard(stagingArea).toAdd[*blockHash] = reachabilityData
}

func (s *reachabilityDataStore) StageReindexRoot(stagingArea *model.StagingArea, reindexRoot *externalapi.DomainHash) {
	s.stagingShard(stagingArea).reindexRoot = reindexRoot
}

func (s *reachabilityDataStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := s.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || shard.reindexRoot != nil
}

func (s *reachabilityDataStore) ReachabilityData(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*model.ReachabilityData, error) {
	shard := s.stagingShard(stagingArea)
	if data, ok := shard.toAdd[*blockHash]; ok {
		return data, nil
	}
	if cached, ok := s.cache.Get(blockHash); ok {
		return cached.(*model.ReachabilityData), nil
	}
	raw, err := dbContext.Get(s.key(blockHash))
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	data, err := binaryserialization.DeserializeReachabilityData(raw)
	if err != nil {
		return nil, err
	}
	s.cache.Add(blockHash, data)
	return data, nil
}

func (s *reachabilityDataStore) HasReachabilityData(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
	shard := s.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if s.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(s.key(blockHash))
}

func (s *reachabilityDataStore) ReachabilityReindexRoot(dbContext model.DBReader, stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	shard := s.stagingShard(stagingArea)
	if shard.reindexRoot != nil {
		return shard.reindexRoot, nil
	}
	if s.reindexRootCache != nil {
		return s.reindexRootCache, nil
	}
	data, err := dbContext.Get(reindexRootKey)
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	root, err := externalapi.NewDomainHashFromByteSlice(data)
	if err != nil {
		return nil, err
	}
	s.reindexRootCache = root
	return root, nil
}

func (s *reachabilityDataStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash, data := range shard.toAdd {
		hash := hash
		raw, err := binaryserialization.SerializeReachabilityData(data)
		if err != nil {
			return err
		}
		err = dbTx.Put(s.key(&hash), raw)
		if err != nil {
			return err
		}
		s.cache.Add(&hash, data)
	}
	if shard.reindexRoot != nil {
		err := dbTx.Put(reindexRootKey, shard.reindexRoot[:])
		if err != nil {
			return err
		}
		s.reindexRootCache = shard.reindexRoot
	}
	shard.toAdd = make(map[externalapi.DomainHash]*model.ReachabilityData)
	shard.reindexRoot = nil
	return nil
}
