// Package blockrelationstore stores each block's parents/children at one
// DAG level (§3, §6: RELATIONS(level) -- pruning proofs carry one relation
// set per level 0..max_block_level).
package blockrelationstore

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

type blockRelationStagingShard struct {
	toAdd map[externalapi.DomainHash]*model.BlockRelations
}

type blockRelationStore struct {
	level int
	cache *cache.HashCache
}

// New creates a block relation store for the given DAG level.
func New(level int) model.BlockRelationStore {
	return &blockRelationStore{level: level, cache: cache.New(defaultCacheSize)}
}

func (s *blockRelationStore) shardName() string {
	return fmt.Sprintf("blockrelationstore-%d", s.level)
}

func (s *blockRelationStore) stagingShard(stagingArea *model.StagingArea) *blockRelationStagingShard {
	return stagingArea.GetOrCreateShard(s.shardName(), func() model.StagingShard {
		return &blockRelationStagingShard{toAdd: make(map[externalapi.DomainHash]*model.BlockRelations)}
	}).(*blockRelationStagingShard)
}

func (s *blockRelationStore) key(blockHash *externalapi.DomainHash) []byte {
	return dbaccess.LevelKey(dbaccess.HashKey(dbaccess.PrefixRelations, blockHash[:]), s.level)
}

func (s *blockRelationStore) StageBlockRelation(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, blockRelations *model.BlockRelations) {
	s.stagingShard(stagingArea).toAdd[*blockHash] = blockRelations
}

func (s *blockRelationStore) IsStaged(stagingArea *model.StagingArea) bool {
	return len(s.stagingShard(stagingArea).toAdd) != 0
}

func (s *blockRelationStore) BlockRelation(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*model.BlockRelations, error) {
	shard := s.stagingShard(stagingArea)
	if relations, ok := shard.toAdd[*blockHash]; ok {
		return relations, nil
	}
	if cached, ok := s.cache.Get(blockHash); ok {
		return cached.(*model.BlockRelations), nil
	}
	data, err := dbContext.Get(s.key(blockHash))
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	relations, err := binaryserialization.DeserializeBlockRelations(data)
	if err != nil {
		return nil, err
	}
	s.cache.Add(blockHash, relations)
	return relations, nil
}

func (s *blockRelationStore) Has(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
	shard := s.stagingShard(stagingArea)
	if _, ok := shard.toAdd[*blockHash]; ok {
		return true, nil
	}
	if s.cache.Has(blockHash) {
		return true, nil
	}
	return dbContext.Has(s.key(blockHash))
}

func (s *blockRelationStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash, relations := range shard.toAdd {
		hash := hash
		data, err := binaryserialization.SerializeBlockRelations(relations)
		if err != nil {
			return err
		}
		err = dbTx.Put(s.key(&hash), data)
		if err != nil {
			return err
		}
		s.cache.Add(&hash, relations)
	}
	shard.toAdd = make(map[externalapi.DomainHash]*model.BlockRelations)
	return nil
}
