// Package daascoremanager derives a block's difficulty-adjusted-accumulated
// score from its selected parent's DAA score and its mergeset size (§4.7),
// mirroring how GHOSTDAGManager derives blue score from blue mergeset size.
package daascoremanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type daaScoreManager struct {
	databaseContext   model.DBReader
	ghostdagDataStore model.GHOSTDAGDataStore
	blockHeaderStore  model.BlockHeaderStore
}

// New instantiates a new DAAScoreManager.
func New(databaseContext model.DBReader, ghostdagDataStore model.GHOSTDAGDataStore, blockHeaderStore model.BlockHeaderStore) model.DAAScoreManager {
	return &daaScoreManager{
		databaseContext:   databaseContext,
		ghostdagDataStore: ghostdagDataStore,
		blockHeaderStore:  blockHeaderStore,
	}
}

// DAAScore returns blockHash's difficulty-adjusted-accumulated score: its
// selected parent's DAA score (read from its header, §3) plus the size of
// its own mergeset (blues and reds alike, since every mergeset member
// contributes one difficulty window sample regardless of color).
func (dsm *daaScoreManager) DAAScore(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (uint64, error) {
	ghostdagData, err := dsm.ghostdagDataStore.Get(dsm.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return 0, err
	}

	if ghostdagData.SelectedParent() == nil {
		return 0, nil
	}

	selectedParentHeader, err := dsm.blockHeaderStore.BlockHeader(dsm.databaseContext, stagingArea, ghostdagData.SelectedParent())
	if err != nil {
		return 0, err
	}

	mergeSetSize := uint64(len(ghostdagData.MergeSetBlues())) + uint64(len(ghostdagData.MergeSetReds()))

	return selectedParentHeader.DAAScore + mergeSetSize, nil
}

var _ model.DAAScoreManager = (*daaScoreManager)(nil)
