// Package pruningstore stores the current pruning point, the next
// candidate awaiting confirmation, the list of past pruning points, and
// the pruning point's own UTXO set (§4.6, §6: PRUNING_POINT,
// PAST_PRUNING_POINTS).
package pruningstore

import (
	"bytes"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "pruningstore"

var pruningPointKey = dbaccess.HashKey(dbaccess.PrefixPruningPoint, []byte("current"))
var pruningPointCandidateKey = dbaccess.HashKey(dbaccess.PrefixPruningPoint, []byte("candidate"))
var pastPruningPointsKey = dbaccess.PrefixPastPruningPoints
var pruningPointUTXOPrefix = append(append([]byte{}, dbaccess.PrefixPruningPoint...), '-', 'u', 't', 'x', 'o')

type pruningStagingShard struct {
	pruningPoint          *externalapi.DomainHash
	pruningPointCandidate *externalapi.DomainHash
	pastPruningPointsToAdd []*externalapi.DomainHash
	utxoSetToStage        []*externalapi.OutpointAndUTXOEntryPair
}

type pruningStore struct {
	pruningPointCache          *externalapi.DomainHash
	pruningPointCandidateCache *externalapi.DomainHash
}

// New creates a new pruning store.
func New() model.PruningStore {
	return &pruningStore{}
}

func (s *pruningStore) stagingShard(stagingArea *model.StagingArea) *pruningStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &pruningStagingShard{}
	}).(*pruningStagingShard)
}

func (s *pruningStore) StagePruningPoint(stagingArea *model.StagingArea, pruningPointHash *externalapi.DomainHash) {
	s.stagingShard(stagingArea).pruningPoint = pruningPointHash
}

func (s *pruningStore) StagePruningPointCandidate(stagingArea *model.StagingArea, candidate *externalapi.DomainHash) {
	s.stagingShard(stagingArea).pruningPointCandidate = candidate
}

func (s *pruningStore) IsStaged(stagingArea *model.StagingArea) bool {
	shard := s.stagingShard(stagingArea)
	return shard.pruningPoint != nil || shard.pruningPointCandidate != nil ||
		len(shard.pastPruningPointsToAdd) != 0 || len(shard.utxoSetToStage) != 0
}

func (s *pruningStore) PruningPoint(dbContext model.DBReader, stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	shard := s.stagingShard(stagingArea)
	if shard.pruningPoint != nil {
		return shard.pruningPoint, nil
	}
	if s.pruningPointCache != nil {
		return s.pruningPointCache, nil
	}
	data, err := dbContext.Get(pruningPointKey)
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	hash, err := externalapi.NewDomainHashFromByteSlice(data)
	if err != nil {
		return nil, err
	}
	s.pruningPointCache = hash
	return hash, nil
}

func (s *pruningStore) PruningPointCandidate(dbContext model.DBReader, stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	shard := s.stagingShard(stagingArea)
	if shard.pruningPointCandidate != nil {
		return shard.pruningPointCandidate, nil
	}
	if s.pruningPointCandidateCache != nil {
		return s.pruningPointCandidateCache, nil
	}
	data, err := dbContext.Get(pruningPointCandidateKey)
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	hash, err := externalapi.NewDomainHashFromByteSlice(data)
	if err != nil {
		return nil, err
	}
	s.pruningPointCandidateCache = hash
	return hash, nil
}

func (s *pruningStore) HasPruningPointCandidate(dbContext model.DBReader, stagingArea *model.StagingArea) (bool, error) {
	shard := s.stagingShard(stagingArea)
	if shard.pruningPointCandidate != nil || s.pruningPointCandidateCache != nil {
		return true, nil
	}
	return dbContext.Has(pruningPointCandidateKey)
}

func (s *pruningStore) AppendPastPruningPoint(stagingArea *model.StagingArea, pruningPointHash *externalapi.DomainHash) {
	shard := s.stagingShard(stagingArea)
	shard.pastPruningPointsToAdd = append(shard.pastPruningPointsToAdd, pruningPointHash)
}

func (s *pruningStore) PastPruningPoints(dbContext model.DBReader, stagingArea *model.StagingArea) ([]*externalapi.DomainHash, error) {
	has, err := dbContext.Has(pastPruningPointsKey)
	if err != nil {
		return nil, err
	}
	if !has {
		return s.stagingShard(stagingArea).pastPruningPointsToAdd, nil
	}
	data, err := dbContext.Get(pastPruningPointsKey)
	if err != nil {
		return nil, err
	}
	existing, err := decodeHashList(data)
	if err != nil {
		return nil, err
	}
	return append(existing, s.stagingShard(stagingArea).pastPruningPointsToAdd...), nil
}

func (s *pruningStore) StagePruningPointUTXOSet(stagingArea *model.StagingArea, utxoSetIterator []*externalapi.OutpointAndUTXOEntryPair) {
	shard := s.stagingShard(stagingArea)
	shard.utxoSetToStage = utxoSetIterator
}

func (s *pruningStore) PruningPointUTXOs(dbContext model.DBReader, stagingArea *model.StagingArea, fromOutpoint *externalapi.DomainOutpoint, limit int) ([]*externalapi.OutpointAndUTXOEntryPair, error) {
	cursor, err := dbContext.Cursor(pruningPointUTXOPrefix)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var fromKey []byte
	if fromOutpoint != nil {
		fromKey, err = binaryserialization.SerializeOutpoint(fromOutpoint)
		if err != nil {
			return nil, err
		}
	}

	result := make([]*externalapi.OutpointAndUTXOEntryPair, 0, limit)
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return nil, err
		}
		suffix := key[len(pruningPointUTXOPrefix):]
		if fromKey != nil && bytes.Compare(suffix, fromKey) <= 0 {
			continue
		}
		outpoint, err := binaryserialization.DeserializeOutpoint(suffix)
		if err != nil {
			return nil, err
		}
		value, err := cursor.Value()
		if err != nil {
			return nil, err
		}
		entry, err := binaryserialization.DeserializeUTXOEntry(value)
		if err != nil {
			return nil, err
		}
		result = append(result, &externalapi.OutpointAndUTXOEntryPair{Outpoint: outpoint, UTXOEntry: entry})
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (s *pruningStore) ClearPruningPointUTXOSet(dbTx model.DBTransaction) error {
	cursor, err := dbTx.Cursor(pruningPointUTXOPrefix)
	if err != nil {
		return err
	}
	defer cursor.Close()
	var keys [][]byte
	for ok := cursor.First(); ok; ok = cursor.Next() {
		key, err := cursor.Key()
		if err != nil {
			return err
		}
		keyCopy := make([]byte, len(key))
		copy(keyCopy, key)
		keys = append(keys, keyCopy)
	}
	for _, key := range keys {
		err := dbTx.Delete(key)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *pruningStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	if shard.pruningPoint != nil {
		err := dbTx.Put(pruningPointKey, shard.pruningPoint[:])
		if err != nil {
			return err
		}
		s.pruningPointCache = shard.pruningPoint
	}
	if shard.pruningPointCandidate != nil {
		err := dbTx.Put(pruningPointCandidateKey, shard.pruningPointCandidate[:])
		if err != nil {
			return err
		}
		s.pruningPointCandidateCache = shard.pruningPointCandidate
	}
	if len(shard.pastPruningPointsToAdd) != 0 {
		existing, err := s.PastPruningPoints(dbTx, stagingArea)
		if err != nil && !database.IsNotFoundError(err) {
			return err
		}
		data, err := encodeHashList(existing)
		if err != nil {
			return err
		}
		err = dbTx.Put(pastPruningPointsKey, data)
		if err != nil {
			return err
		}
	}
	for _, pair := range shard.utxoSetToStage {
		keySuffix, err := binaryserialization.SerializeOutpoint(pair.Outpoint)
		if err != nil {
			return err
		}
		key := append(append([]byte{}, pruningPointUTXOPrefix...), keySuffix...)
		value, err := binaryserialization.SerializeUTXOEntry(pair.UTXOEntry)
		if err != nil {
			return err
		}
		err = dbTx.Put(key, value)
		if err != nil {
			return err
		}
	}
	shard.pruningPoint = nil
	shard.pruningPointCandidate = nil
	shard.pastPruningPointsToAdd = nil
	shard.utxoSetToStage = nil
	return nil
}

func encodeHashList(hashes []*externalapi.DomainHash) ([]byte, error) {
	buf := make([]byte, 0, 4+len(hashes)*externalapi.DomainHashSize)
	count := uint32(len(hashes))
	buf = append(buf, byte(count), byte(count>>8), byte(count>>16), byte(count>>24))
	for _, hash := range hashes {
		buf = append(buf, hash[:]...)
	}
	return buf, nil
}

func decodeHashList(data []byte) ([]*externalapi.DomainHash, error) {
	if len(data) < 4 {
		return nil, errors.New("truncated past-pruning-points list")
	}
	count := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	data = data[4:]
	hashes := make([]*externalapi.DomainHash, count)
	for i := uint32(0); i < count; i++ {
		if len(data) < externalapi.DomainHashSize {
			return nil, errors.New("truncated past-pruning-points list")
		}
		hash, err := externalapi.NewDomainHashFromByteSlice(data[:externalapi.DomainHashSize])
		if err != nil {
			return nil, err
		}
		hashes[i] = hash
		data = data[externalapi.DomainHashSize:]
	}
	return hashes, nil
}
