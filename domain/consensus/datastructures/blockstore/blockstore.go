// Package blockstore stores full blocks, keyed by hash: Commit writes the
// header under dbaccess.PrefixHeader and the transaction list under
// dbaccess.PrefixBlockTransactions, and Block reads both back. HasBlock
// and Delete look only at the transaction-list key. Header-only blocks
// are never staged here, so they never pay for body storage (§3).
package blockstore

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "blockstore"
const defaultCacheSize = 2000

type blockStagingShard struct {
	toAdd    map[externalapi.DomainHash]*externalapi.DomainBlock
	toDelete map[externalapi.DomainHash]struct{}
}

type blockStore struct {
	cache *cache.HashCache
}

// New creates a new block store.
func New() model.BlockStore {
	return &blockStore{cache: cache.New(defaultCacheSize)}
}

func (s *blockStore) stagingShard(stagingArea *model.StagingArea) *blockStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &blockStagingShard{
			toAdd:    make(map[externalapi.DomainHash]*externalapi.DomainBlock),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*blockStagingShard)
}

func (s *blockStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, block *externalapi.DomainBlock) {
	s.stagingShard(stagingArea).toAdd[*blockHash] = block
}

func (s *blockStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := s.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || len(shard.toDelete) != 0
}

func (s *blockStore) Block(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	shard := s.stagingShard(stagingArea)
	if block, ok := shard.toAdd[*blockHash]; ok {
		return block, nil
	}
	if _, deleted := shard.toDelete[*blockHash]; deleted {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	if cached, ok := s.cache.Get(blockHash); ok {
		return cached.(*externalapi.DomainBlock), nil
	}

	headerData, err := dbContext.Get(dbaccess.HashKey(dbaccess.PrefixHeader, blockHash[:]))
	if err != nil {
		return nil, err
	}
	header, err := binaryserialization.DeserializeHeader(headerData)
	if err != nil {
		return nil, err
	}
	txData, err := dbContext.Get(dbaccess.HashKey(dbaccess.PrefixBlockTransactions, blockHash[:]))
	if err != nil {
		return nil, err
	}
	transactions, err := binaryserialization.DeserializeBlockTransactions(txData)
	if err != nil {
		return nil, err
	}
	block := &externalapi.DomainBlock{Header: header, Transactions: transactions}
	s.cache.Add(blockHash, block)
	return block, nil
}

func (s *blockStore) HasBlock(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
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
	return dbContext.Has(dbaccess.HashKey(dbaccess.PrefixBlockTransactions, blockHash[:]))
}

func (s *blockStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := s.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (s *blockStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash, block := range shard.toAdd {
		hash := hash
		headerData, err := binaryserialization.SerializeHeader(block.Header)
		if err != nil {
			return err
		}
		err = dbTx.Put(dbaccess.HashKey(dbaccess.PrefixHeader, hash[:]), headerData)
		if err != nil {
			return err
		}
		txData, err := binaryserialization.SerializeBlockTransactions(block.Transactions)
		if err != nil {
			return err
		}
		err = dbTx.Put(dbaccess.HashKey(dbaccess.PrefixBlockTransactions, hash[:]), txData)
		if err != nil {
			return err
		}
		s.cache.Add(&hash, block)
	}
	for hash := range shard.toDelete {
		hash := hash
		err := dbTx.Delete(dbaccess.HashKey(dbaccess.PrefixBlockTransactions, hash[:]))
		if err != nil {
			return err
		}
		s.cache.Remove(&hash)
	}
	shard.toAdd = make(map[externalapi.DomainHash]*externalapi.DomainBlock)
	shard.toDelete = make(map[externalapi.DomainHash]struct{})
	return nil
}
