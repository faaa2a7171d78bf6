// Package selectedchainstore indexes the selected-parent chain both ways
// -- hash to chain index and index to hash -- so the virtual processor
// and RPC layer can answer "is this block on the selected chain" and
// "what's at chain height N" without walking parent pointers (§4.4).
package selectedchainstore

import (
	"encoding/binary"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/cache"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "selectedchainstore"
const defaultCacheSize = 10000

var highestIndexKey = dbaccess.HashKey(dbaccess.PrefixSelectedChain, []byte("highest-index"))

type selectedChainStagingShard struct {
	addedByHash  map[externalapi.DomainHash]uint64
	addedByIndex map[uint64]*externalapi.DomainHash
	removed      map[externalapi.DomainHash]struct{}
	highestIndex *uint64
}

type selectedChainStore struct {
	hashToIndexCache *cache.HashCache
	indexToHashCache map[uint64]*externalapi.DomainHash
	highestIndex     *uint64
}

// New creates a new selected chain store.
func New() model.SelectedChainStore {
	return &selectedChainStore{
		hashToIndexCache: cache.New(defaultCacheSize),
		indexToHashCache: make(map[uint64]*externalapi.DomainHash),
	}
}

func (s *selectedChainStore) stagingShard(stagingArea *model.StagingArea) *selectedChainStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &selectedChainStagingShard{
			addedByHash:  make(map[externalapi.DomainHash]uint64),
			addedByIndex: make(map[uint64]*externalapi.DomainHash),
			removed:      make(map[externalapi.DomainHash]struct{}),
		}
	}).(*selectedChainStagingShard)
}

func byHashKey(blockHash *externalapi.DomainHash) []byte {
	return dbaccess.HashKey(dbaccess.PrefixSelectedChain, append([]byte("h-"), blockHash[:]...))
}

func byIndexKey(index uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, index)
	return dbaccess.HashKey(dbaccess.PrefixSelectedChain, append([]byte("i-"), buf...))
}

// Stage applies a chain change set: Removed blocks are popped off the top
// of the chain (highest indices first, in the order given), then Added
// blocks are appended in order starting from the new top.
func (s *selectedChainStore) Stage(stagingArea *model.StagingArea, chainChangeSet *externalapi.ChainPath) error {
	shard := s.stagingShard(stagingArea)

	current, err := s.highestIndexUnstaged(stagingArea)
	if err != nil && !database.IsNotFoundError(err) {
		return err
	}
	var next uint64
	haveIndex := err == nil
	if haveIndex {
		next = current
	}

	for _, removedBlock := range chainChangeSet.Removed {
		if !haveIndex {
			return errors.New("cannot remove from an empty selected chain")
		}
		shard.removed[*removedBlock.Hash] = struct{}{}
		delete(shard.addedByIndex, next)
		delete(shard.addedByHash, *removedBlock.Hash)
		if next == 0 {
			haveIndex = false
			continue
		}
		next--
	}

	for _, addedBlock := range chainChangeSet.Added {
		if haveIndex {
			next++
		} else {
			next = 0
			haveIndex = true
		}
		shard.addedByHash[*addedBlock.Hash] = next
		shard.addedByIndex[next] = addedBlock.Hash
		delete(shard.removed, *addedBlock.Hash)
	}

	if haveIndex {
		shard.highestIndex = &next
	}
	return nil
}

func (s *selectedChainStore) highestIndexUnstaged(stagingArea *model.StagingArea) (uint64, error) {
	shard := s.stagingShard(stagingArea)
	if shard.highestIndex != nil {
		return *shard.highestIndex, nil
	}
	if s.highestIndex != nil {
		return *s.highestIndex, nil
	}
	return 0, errors.WithStack(database.ErrNotFound)
}

func (s *selectedChainStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := s.stagingShard(stagingArea)
	return len(shard.addedByHash) != 0 || len(shard.removed) != 0
}

func (s *selectedChainStore) GetIndexByHash(dbContext model.DBReader, stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (uint64, error) {
	shard := s.stagingShard(stagingArea)
	if index, ok := shard.addedByHash[*blockHash]; ok {
		return index, nil
	}
	if _, removed := shard.removed[*blockHash]; removed {
		return 0, errors.WithStack(database.ErrNotFound)
	}
	if cached, ok := s.hashToIndexCache.Get(blockHash); ok {
		return cached.(uint64), nil
	}
	raw, err := dbContext.Get(byHashKey(blockHash))
	if err != nil {
		return 0, errors.WithStack(database.ErrNotFound)
	}
	index := binary.LittleEndian.Uint64(raw)
	s.hashToIndexCache.Add(blockHash, index)
	return index, nil
}

func (s *selectedChainStore) GetHashByIndex(dbContext model.DBReader, stagingArea *model.StagingArea, index uint64) (*externalapi.DomainHash, error) {
	shard := s.stagingShard(stagingArea)
	if hash, ok := shard.addedByIndex[index]; ok {
		return hash, nil
	}
	if hash, ok := s.indexToHashCache[index]; ok {
		return hash, nil
	}
	raw, err := dbContext.Get(byIndexKey(index))
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	hash, err := externalapi.NewDomainHashFromByteSlice(raw)
	if err != nil {
		return nil, err
	}
	s.indexToHashCache[index] = hash
	return hash, nil
}

func (s *selectedChainStore) HighestIndex(dbContext model.DBReader, stagingArea *model.StagingArea) (uint64, error) {
	index, err := s.highestIndexUnstaged(stagingArea)
	if err == nil {
		return index, nil
	}
	if !database.IsNotFoundError(err) {
		return 0, err
	}
	raw, err := dbContext.Get(highestIndexKey)
	if err != nil {
		return 0, errors.WithStack(database.ErrNotFound)
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func (s *selectedChainStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	for hash := range shard.removed {
		hash := hash
		err := dbTx.Delete(byHashKey(&hash))
		if err != nil {
			return err
		}
		s.hashToIndexCache.Remove(&hash)
	}
	for hash, index := range shard.addedByHash {
		hash := hash
		indexBuf := make([]byte, 8)
		binary.LittleEndian.PutUint64(indexBuf, index)
		err := dbTx.Put(byHashKey(&hash), indexBuf)
		if err != nil {
			return err
		}
		err = dbTx.Put(byIndexKey(index), hash[:])
		if err != nil {
			return err
		}
		s.hashToIndexCache.Add(&hash, index)
		s.indexToHashCache[index] = &hash
	}
	if shard.highestIndex != nil {
		indexBuf := make([]byte, 8)
		binary.LittleEndian.PutUint64(indexBuf, *shard.highestIndex)
		err := dbTx.Put(highestIndexKey, indexBuf)
		if err != nil {
			return err
		}
		s.highestIndex = shard.highestIndex
	}
	shard.addedByHash = make(map[externalapi.DomainHash]uint64)
	shard.addedByIndex = make(map[uint64]*externalapi.DomainHash)
	shard.removed = make(map[externalapi.DomainHash]struct{})
	shard.highestIndex = nil
	return nil
}
