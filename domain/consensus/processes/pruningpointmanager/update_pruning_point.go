package pruningpointmanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// UpdatePruningPointByVirtual re-derives the pruning point candidate and,
// once it has moved far enough ahead, promotes it to the new pruning
// point (§4.6). It walks the already-maintained selected-chain index
// forward from the current candidate toward the virtual's selected
// parent -- substituting for the teacher's SelectedChildIterator, which
// this repo has no equivalent primitive for, since SelectedChainStore
// already indexes exactly that chain.
func (ppm *pruningPointManager) UpdatePruningPointByVirtual(stagingArea *model.StagingArea) error {
	currentPruningPoint, err := ppm.currentPruningPoint(stagingArea)
	if err != nil {
		return err
	}
	currentPruningPointData, err := ppm.ghostdagDataStore.Get(ppm.databaseContext, stagingArea, currentPruningPoint, false)
	if err != nil {
		return err
	}

	currentCandidate, err := ppm.pruningPointCandidate(stagingArea)
	if err != nil {
		return err
	}
	currentCandidateData, err := ppm.ghostdagDataStore.Get(ppm.databaseContext, stagingArea, currentCandidate, false)
	if err != nil {
		return err
	}

	virtualState, err := ppm.virtualStateStore.VirtualState(ppm.databaseContext, stagingArea)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil
		}
		return err
	}
	if virtualState.SelectedParent.Equal(ppm.genesisHash) {
		// The virtual hasn't advanced past genesis yet; nothing to prune.
		return nil
	}
	virtualBlueScore := virtualState.GhostdagData.BlueScore()

	startIndex, err := ppm.chainStartIndex(stagingArea, currentCandidate)
	if err != nil {
		return err
	}
	sinkIndex, err := ppm.selectedChainStore.GetIndexByHash(ppm.databaseContext, stagingArea, virtualState.SelectedParent)
	if err != nil {
		return err
	}

	newCandidate, newCandidateData := currentCandidate, currentCandidateData
	newPruningPoint, newPruningPointData := currentPruningPoint, currentPruningPointData

	for index := startIndex; index <= sinkIndex; index++ {
		hash, err := ppm.selectedChainStore.GetHashByIndex(ppm.databaseContext, stagingArea, index)
		if err != nil {
			return err
		}
		data, err := ppm.ghostdagDataStore.Get(ppm.databaseContext, stagingArea, hash, false)
		if err != nil {
			return err
		}
		if virtualBlueScore-data.BlueScore() < ppm.pruningDepth {
			break
		}

		newCandidate, newCandidateData = hash, data
		if ppm.finalityScore(newCandidateData.BlueScore()) > ppm.finalityScore(newPruningPointData.BlueScore()) {
			newPruningPoint, newPruningPointData = newCandidate, newCandidateData
		}
	}

	if !newCandidate.Equal(currentCandidate) {
		ppm.pruningStore.StagePruningPointCandidate(stagingArea, newCandidate)
	}

	if ppm.finalityScore(newCandidateData.BlueScore()) <= ppm.finalityScore(currentPruningPointData.BlueScore()) {
		return nil
	}

	if !newPruningPoint.Equal(currentPruningPoint) {
		return ppm.savePruningPoint(stagingArea, newPruningPoint)
	}
	return nil
}

// chainStartIndex returns the selected-chain index to begin the forward
// walk from, one past hash's own position -- or index 0 if hash is
// genesis, which (being the chain's implicit root) is never itself given
// an explicit index by SelectedChainStore.
func (ppm *pruningPointManager) chainStartIndex(stagingArea *model.StagingArea, hash *externalapi.DomainHash) (uint64, error) {
	if hash.Equal(ppm.genesisHash) {
		return 0, nil
	}
	index, err := ppm.selectedChainStore.GetIndexByHash(ppm.databaseContext, stagingArea, hash)
	if err != nil {
		return 0, err
	}
	return index + 1, nil
}

func (ppm *pruningPointManager) currentPruningPoint(stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	pruningPoint, err := ppm.pruningStore.PruningPoint(ppm.databaseContext, stagingArea)
	if err != nil {
		if database.IsNotFoundError(err) {
			return ppm.genesisHash, nil
		}
		return nil, err
	}
	return pruningPoint, nil
}

func (ppm *pruningPointManager) pruningPointCandidate(stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	hasCandidate, err := ppm.pruningStore.HasPruningPointCandidate(ppm.databaseContext, stagingArea)
	if err != nil {
		return nil, err
	}
	if !hasCandidate {
		return ppm.genesisHash, nil
	}
	return ppm.pruningStore.PruningPointCandidate(ppm.databaseContext, stagingArea)
}

// savePruningPoint validates that the new pruning point's UTXO set
// matches its header's declared commitment before publishing it, the
// same sanity check the teacher runs before ever trusting a pruning
// point move (§4.6).
func (ppm *pruningPointManager) savePruningPoint(stagingArea *model.StagingArea, pruningPointHash *externalapi.DomainHash) error {
	pairs, err := ppm.consensusStateManager.RestorePastUTXOSetIterator(stagingArea, pruningPointHash)
	if err != nil {
		return err
	}
	err = ppm.validateUTXOSetFitsCommitment(stagingArea, pruningPointHash, pairs)
	if err != nil {
		return err
	}

	ppm.pruningStore.StagePruningPoint(stagingArea, pruningPointHash)
	ppm.pruningStore.AppendPastPruningPoint(stagingArea, pruningPointHash)
	ppm.pruningStore.StagePruningPointUTXOSet(stagingArea, pairs)
	return nil
}
