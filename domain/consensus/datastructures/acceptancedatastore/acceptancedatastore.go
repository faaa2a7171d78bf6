// Package acceptancedatastore stores, per chain block, which mergeset
// transactions it accepted (§3, §4.4, §6: ACCEPTANCE_DATA).
package acceptancedatastore

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "acceptancedatastore"
const defaultCacheSize = 2000

type acceptanceDataStagingShard struct {
	toAdd    map[externalapi.DomainHash]externalapi.AcceptanceData
	toDelete map[externalapi.DomainHash]struct{}
}

type acceptanceDataStore struct {
	cache *cache.HashCache
}

// New creates a new acceptance data store.
func New() model.AcceptanceDataStore {
	return &acceptanceDataStore{cache: cache.New(defaultCacheSize)}
}

func (s *acceptanceDataStore) stagingShard(stagingArea *model.StagingArea) *acceptanceDataStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &acceptanceDataStagingShard{
			toAdd:    make(map[externalapi.DomainHash]externalapi.AcceptanceData),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*acceptanceDataStagingShard)
}

func (s *acceptanceDataStore) key(blockHash *externalapi.DomainHash) []byte {
	return dbaccess.HashKey(dbaccess.PrefixAcceptanceData, blockHash[:])
}

func (s *acceptanceDataStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, acceptanceData externalapi.AcceptanceData) {
	s.stagingShard(stagingArea).toAdd[*blockHash] = acceptanceData
}

func (s *acceptanceDataStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := s.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || len(shard.toDelete) != 0
}

func (s *acceptanceDataStore) Get(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (externalapi.AcceptanceData, error) {
	shard := s.stagingShard(stagingArea)
	if data, ok := shard.toAdd[*blockHash]; ok {
		return data, nil
	}
	if _, deleted := shard.toDelete[*blockHash]; deleted {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	if cached, ok := s.cache.Get(blockHash); ok {
		return cached.(externalapi.AcceptanceData), nil
	}
	raw, err := dbContext.Get(s.key(blockHash))
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	data, err := binaryserialization.DeserializeAcceptanceData(raw)
	if err != nil {
		return nil, err
	}
	s.cache.Add(blockHash, data)
	return data, nil
}

func (s *acceptanceDataStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := s.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (s *acceptanceDataStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash, data := range shard.toAdd {
		hash := hash
		raw, err := binaryserialization.SerializeAcceptanceData(data)
		if err != nil {
			return err
		}
		err = dbTx.Put(s.key(&hash), raw)
		if err != nil {
			return err
		}
		s.cache.Add(&hash, data)
	}
	for hash := range shard.toDelete {
		hash := hash
		err := dbTx.Delete(s.key(&hash))
		if err != nil {
			return err
		}
		s.cache.Remove(&hash)
	}
	shard.toAdd = make(map[externalapi.DomainHash]externalapi.AcceptanceData)
	shard.toDelete = make(map[externalapi.DomainHash]struct{})
	return nil
}
