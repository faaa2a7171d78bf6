// Package utxodiffstore stores, per block, its UTXO diff and diff-child
// pointer -- the diff chain the virtual state is built by folding (§4.4,
// §9).
package utxodiffstore

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "utxodiffstore"
const defaultCacheSize = 2000

type diffAndChild struct {
	diff  *externalapi.UTXODiff
	child *externalapi.DomainHash
}

type utxoDiffStagingShard struct {
	toAdd    map[externalapi.DomainHash]*diffAndChild
	toDelete map[externalapi.DomainHash]struct{}
}

type utxoDiffStore struct {
	cache *cache.HashCache
}

// New creates a new UTXO diff store.
func New() model.UTXODiffStore {
	return &utxoDiffStore{cache: cache.New(defaultCacheSize)}
}

func (s *utxoDiffStore) stagingShard(stagingArea *model.StagingArea) *utxoDiffStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &utxoDiffStagingShard{
			toAdd:    make(map[externalapi.DomainHash]*diffAndChild),
			toDelete: make(map[externalapi.DomainHash]struct{}),
		}
	}).(*utxoDiffStagingShard)
}

func (s *utxoDiffStore) diffKey(blockHash *externalapi.DomainHash) []byte {
	return dbaccess.HashKey(dbaccess.PrefixUTXODiff, blockHash[:])
}

func (s *utxoDiffStore) childKey(blockHash *externalapi.DomainHash) []byte {
	return append(s.diffKey(blockHash), '-', 'c')
}

func (s *utxoDiffStore) Stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, utxoDiff *externalapi.UTXODiff, utxoDiffChild *externalapi.DomainHash) {
	s.stagingShard(stagingArea).toAdd[*blockHash] = &diffAndChild{diff: utxoDiff, child: utxoDiffChild}
}

func (s *utxoDiffStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := s.stagingShard(stagingArea)
	return len(shard.toAdd) != 0 || len(shard.toDelete) != 0
}

func (s *utxoDiffStore) get(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*diffAndChild, error) {
	shard := s.stagingShard(stagingArea)
	if entry, ok := shard.toAdd[*blockHash]; ok {
		return entry, nil
	}
	if _, deleted := shard.toDelete[*blockHash]; deleted {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	if cached, ok := s.cache.Get(blockHash); ok {
		return cached.(*diffAndChild), nil
	}

	diffRaw, err := dbContext.Get(s.diffKey(blockHash))
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	diff, err := binaryserialization.DeserializeUTXODiff(diffRaw)
	if err != nil {
		return nil, err
	}
	var child *externalapi.DomainHash
	hasChild, err := dbContext.Has(s.childKey(blockHash))
	if err != nil {
		return nil, err
	}
	if hasChild {
		childRaw, err := dbContext.Get(s.childKey(blockHash))
		if err != nil {
			return nil, err
		}
		child, err = externalapi.NewDomainHashFromByteSlice(childRaw)
		if err != nil {
			return nil, err
		}
	}
	entry := &diffAndChild{diff: diff, child: child}
	s.cache.Add(blockHash, entry)
	return entry, nil
}

func (s *utxoDiffStore) UTXODiff(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*externalapi.UTXODiff, error) {
	entry, err := s.get(dbContext, stagingArea, blockHash)
	if err != nil {
		return nil, err
	}
	return entry.diff, nil
}

func (s *utxoDiffStore) UTXODiffChild(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*externalapi.DomainHash, error) {
	entry, err := s.get(dbContext, stagingArea, blockHash)
	if err != nil {
		return nil, err
	}
	return entry.child, nil
}

func (s *utxoDiffStore) HasUTXODiffChild(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
	entry, err := s.get(dbContext, stagingArea, blockHash)
	if err != nil {
		if database.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return entry.child != nil, nil
}

func (s *utxoDiffStore) Delete(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) {
	shard := s.stagingShard(stagingArea)
	delete(shard.toAdd, *blockHash)
	shard.toDelete[*blockHash] = struct{}{}
}

func (s *utxoDiffStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash, entry := range shard.toAdd {
		hash := hash
		diffRaw, err := binaryserialization.SerializeUTXODiff(entry.diff)
		if err != nil {
			return err
		}
		err = dbTx.Put(s.diffKey(&hash), diffRaw)
		if err != nil {
			return err
		}
		if entry.child != nil {
			err = dbTx.Put(s.childKey(&hash), entry.child[:])
			if err != nil {
				return err
			}
		}
		s.cache.Add(&hash, entry)
	}
	for hash := range shard.toDelete {
		hash := hash
		err := dbTx.Delete(s.diffKey(&hash))
		if err != nil {
			return err
		}
		err = dbTx.Delete(s.childKey(&hash))
		if err != nil {
			return err
		}
		s.cache.Remove(&hash)
	}
	shard.toAdd = make(map[externalapi.DomainHash]*diffAndChild)
	shard.toDelete = make(map[externalapi.DomainHash]struct{})
	return nil
}
