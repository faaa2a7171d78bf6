package pruningpointmanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// IsValidPruningPoint reports whether blockHash could legally be a
// pruning point: it must sit on the virtual's selected-parent chain, at
// least PruningDepth blue score below it, and be the lowest chain block
// carrying its own finality score (§4.6). "On the selected chain" is
// answered directly by SelectedChainStore -- a block only has an index
// there if it's a link of that chain -- substituting for the teacher's
// IsInSelectedParentChainOf against a dedicated headers-selected-tip,
// which this repo doesn't track separately from the virtual.
func (ppm *pruningPointManager) IsValidPruningPoint(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
	if blockHash.Equal(ppm.genesisHash) {
		return true, nil
	}

	virtualState, err := ppm.virtualStateStore.VirtualState(ppm.databaseContext, stagingArea)
	if err != nil {
		if database.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	_, err = ppm.selectedChainStore.GetIndexByHash(ppm.databaseContext, stagingArea, blockHash)
	if err != nil {
		if database.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	ghostdagData, err := ppm.ghostdagDataStore.Get(ppm.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return false, err
	}

	sinkBlueScore := virtualState.GhostdagData.BlueScore()
	if sinkBlueScore-ghostdagData.BlueScore() < ppm.pruningDepth {
		return false, nil
	}

	selectedParent := ghostdagData.SelectedParent()
	if selectedParent == nil {
		return true, nil
	}
	selectedParentData, err := ppm.ghostdagDataStore.Get(ppm.databaseContext, stagingArea, selectedParent, false)
	if err != nil {
		return false, err
	}
	if ppm.finalityScore(ghostdagData.BlueScore()) == ppm.finalityScore(selectedParentData.BlueScore()) {
		return false, nil
	}

	return true, nil
}

// ExpectedHeaderPruningPoint returns the pruning point a new header
// should declare. This repo tracks one global pruning point rather than
// per-branch candidates imported via a pruning-point proof, so every
// header is simply expected to declare whatever this node currently
// considers the pruning point -- a documented simplification (see
// DESIGN.md) of the teacher's IBD-by-proof-aware validation.
func (ppm *pruningPointManager) ExpectedHeaderPruningPoint(stagingArea *model.StagingArea,
	blockGHOSTDAGData *externalapi.BlockGHOSTDAGData) (*externalapi.DomainHash, error) {

	return ppm.currentPruningPoint(stagingArea)
}
