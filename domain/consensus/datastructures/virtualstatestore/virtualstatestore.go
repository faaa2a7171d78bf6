// Package virtualstatestore stores the single mutable virtual state cell
// (§3, §6: VIRTUAL_STATE). The selected-parent chain index lives in
// selectedchainstore.
package virtualstatestore

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/pkg/errors"
)

const shardName = "virtualstatestore"

var virtualStateKey = dbaccess.HashKey(dbaccess.PrefixVirtualState, []byte("current"))

type virtualStateStagingShard struct {
	state *externalapi.VirtualState
}

type virtualStateStore struct {
	cache *externalapi.VirtualState
}

// New creates a new virtual state store.
func New() model.VirtualStateStore {
	return &virtualStateStore{}
}

func (s *virtualStateStore) stagingShard(stagingArea *model.StagingArea) *virtualStateStagingShard {
	return stagingArea.GetOrCreateShard(shardName, func() model.StagingShard {
		return &virtualStateStagingShard{}
	}).(*virtualStateStagingShard)
}

func (s *virtualStateStore) Stage(stagingArea *model.StagingArea, virtualState *externalapi.VirtualState) {
	s.stagingShard(stagingArea).state = virtualState
}

func (s *virtualStateStore) IsStaged(stagingArea *model.StagingArea) bool {
	return s.stagingShard(stagingArea).state != nil
}

func (s *virtualStateStore) VirtualState(dbContext model.DBReader, stagingArea *model.StagingArea) (*externalapi.VirtualState, error) {
	shard := s.stagingShard(stagingArea)
	if shard.state != nil {
		return shard.state, nil
	}
	if s.cache != nil {
		return s.cache, nil
	}
	raw, err := dbContext.Get(virtualStateKey)
	if err != nil {
		return nil, errors.WithStack(database.ErrNotFound)
	}
	state, err := binaryserialization.DeserializeVirtualState(raw)
	if err != nil {
		return nil, err
	}
	s.cache = state
	return state, nil
}

func (s *virtualStateStore) Commit(dbTx model.DBTransaction, stagingArea *model.StagingArea) error {
	shard := s.stagingShard(stagingArea)
	if shard.state == nil {
		return nil
	}
	raw, err := binaryserialization.SerializeVirtualState(shard.state)
	if err != nil {
		return err
	}
	err = dbTx.Put(virtualStateKey, raw)
	if err != nil {
		return err
	}
	s.cache = shard.state
	shard.state = nil
	return nil
}
