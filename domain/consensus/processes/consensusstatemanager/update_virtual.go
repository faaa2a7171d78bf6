package consensusstatemanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// UpdateVirtual advances the single mutable virtual cell past newBlockHash
// (§4.4): it picks the new selected-tip candidate among the DAG's
// non-disqualified, non-finality-violating tips, computes the reorg path
// against the current sink, resolves every joining chain block in turn,
// and republishes the virtual state and selected-chain index. A joining
// block that resolves Disqualified stops this call from advancing any
// further along that candidate path -- a documented simplification of the
// teacher's exhaustive alternate-candidate search (see DESIGN.md).
func (csm *consensusStateManager) UpdateVirtual(stagingArea *model.StagingArea, newBlockHash *externalapi.DomainHash) (
	*externalapi.ChainPath, error) {

	currentSink, err := csm.currentSink(stagingArea)
	if err != nil {
		return nil, err
	}

	candidateSink, err := csm.selectedSinkCandidate(stagingArea, currentSink)
	if err != nil {
		return nil, err
	}

	chainPath, err := csm.findReorgPath(stagingArea, currentSink, candidateSink)
	if err != nil {
		return nil, err
	}

	newSink := currentSink
	var lastAcceptedIDMerkleRoot *externalapi.DomainHash
	appliedAdded := make([]*externalapi.ChainBlock, 0, len(chainPath.Added))
	for _, added := range chainPath.Added {
		status, err := csm.ResolveBlockStatus(stagingArea, added.Hash)
		if err != nil {
			return nil, err
		}
		if status == externalapi.StatusDisqualifiedFromChain {
			break
		}

		acceptanceData, err := csm.acceptanceDataStore.Get(csm.databaseContext, stagingArea, added.Hash)
		if err != nil {
			return nil, err
		}
		added.AcceptanceData = acceptanceData

		header, err := csm.blockHeaderStore.BlockHeader(csm.databaseContext, stagingArea, added.Hash)
		if err != nil {
			return nil, err
		}
		lastAcceptedIDMerkleRoot = header.AcceptedIDMerkleRoot

		newSink = added.Hash
		appliedAdded = append(appliedAdded, added)
	}
	chainPath.Added = appliedAdded

	for i := 0; i < len(appliedAdded)-1; i++ {
		diff, err := csm.utxoDiffStore.UTXODiff(csm.databaseContext, stagingArea, appliedAdded[i].Hash)
		if err != nil {
			return nil, err
		}
		csm.utxoDiffStore.Stage(stagingArea, appliedAdded[i].Hash, diff, appliedAdded[i+1].Hash)
	}

	err = csm.selectedChainStore.Stage(stagingArea, chainPath)
	if err != nil {
		return nil, err
	}

	err = csm.reachabilityManager.UpdateReindexRoot(stagingArea, newSink)
	if err != nil {
		return nil, err
	}

	virtualState, err := csm.buildVirtualState(stagingArea, newSink, lastAcceptedIDMerkleRoot)
	if err != nil {
		return nil, err
	}
	csm.virtualStateStore.Stage(stagingArea, virtualState)

	return chainPath, nil
}

// buildVirtualState republishes the virtual cell around the new sink.
// Without a literal virtual pseudo-block, GhostdagData, DAAScore and Bits
// are taken directly from the new sink's own already-computed values (a
// documented simplification, see DESIGN.md) rather than recomputed for a
// hypothetical block merging every current tip.
func (csm *consensusStateManager) buildVirtualState(stagingArea *model.StagingArea, newSink *externalapi.DomainHash,
	lastAcceptedIDMerkleRoot *externalapi.DomainHash) (*externalapi.VirtualState, error) {

	tips, err := csm.dagTopologyManager.Tips(stagingArea)
	if err != nil {
		return nil, err
	}

	sinkGHOSTDAGData, err := csm.ghostdagDataStore.Get(csm.databaseContext, stagingArea, newSink, false)
	if err != nil {
		return nil, err
	}

	daaScore, err := csm.daaScoreManager.DAAScore(stagingArea, newSink)
	if err != nil {
		return nil, err
	}

	bits, err := csm.difficultyManager.RequiredDifficulty(stagingArea, newSink)
	if err != nil {
		return nil, err
	}

	pastMedianTime, err := csm.pastMedianTimeManager.PastMedianTime(stagingArea, newSink)
	if err != nil {
		return nil, err
	}

	if lastAcceptedIDMerkleRoot == nil {
		header, err := csm.blockHeaderStore.BlockHeader(csm.databaseContext, stagingArea, newSink)
		if err != nil {
			return nil, err
		}
		lastAcceptedIDMerkleRoot = header.AcceptedIDMerkleRoot
	}

	return &externalapi.VirtualState{
		Parents:                 tips,
		SelectedParent:          newSink,
		GhostdagData:            sinkGHOSTDAGData,
		DAAScore:                daaScore,
		Bits:                    bits,
		PastMedianTime:          pastMedianTime,
		UTXODiffFromSelectedTip: externalapi.NewUTXODiff(),
		AcceptedIDMerkleRoot:    lastAcceptedIDMerkleRoot,
	}, nil
}

// currentSink returns the virtual's current selected parent, or genesis
// before any virtual state has been staged.
func (csm *consensusStateManager) currentSink(stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	virtualState, err := csm.virtualStateStore.VirtualState(csm.databaseContext, stagingArea)
	if err != nil {
		if database.IsNotFoundError(err) {
			return csm.genesisHash, nil
		}
		return nil, err
	}
	if virtualState.SelectedParent == nil {
		return csm.genesisHash, nil
	}
	return virtualState.SelectedParent, nil
}

// selectedSinkCandidate picks the virtual's new selected-tip candidate:
// the maximum-(blue_work,hash) tip among those not disqualified, not
// invalid, and not violating finality against the current sink (§4.4
// step 1).
func (csm *consensusStateManager) selectedSinkCandidate(stagingArea *model.StagingArea, currentSink *externalapi.DomainHash) (
	*externalapi.DomainHash, error) {

	tips, err := csm.dagTopologyManager.Tips(stagingArea)
	if err != nil {
		return nil, err
	}

	finalityPoint, err := csm.virtualFinalityPoint(stagingArea, currentSink)
	if err != nil {
		return nil, err
	}

	var best *externalapi.DomainHash
	for _, tip := range tips {
		status, err := csm.blockStatusStore.Get(csm.databaseContext, stagingArea, tip)
		if err != nil {
			return nil, err
		}
		if status == externalapi.StatusDisqualifiedFromChain || status == externalapi.StatusInvalid {
			continue
		}

		violatesFinality, err := csm.isViolatingFinality(stagingArea, tip, finalityPoint)
		if err != nil {
			return nil, err
		}
		if violatesFinality {
			continue
		}

		if best == nil {
			best = tip
			continue
		}
		best, err = csm.ghostdagManager.ChooseSelectedParent(stagingArea, best, tip)
		if err != nil {
			return nil, err
		}
	}
	if best == nil {
		return csm.genesisHash, nil
	}
	return best, nil
}

// findReorgPath walks both the current sink's and the candidate sink's
// selected-parent chains back to their common selected-ancestor (§4.4
// step 2): everything strictly above the ancestor on the current side
// leaves the chain, everything strictly above it on the candidate side
// joins, in ancestor-to-tip order.
func (csm *consensusStateManager) findReorgPath(stagingArea *model.StagingArea, currentSink, candidateSink *externalapi.DomainHash) (
	*externalapi.ChainPath, error) {

	chainPath := &externalapi.ChainPath{}
	if currentSink.Equal(candidateSink) {
		return chainPath, nil
	}

	currentChainIndex := map[externalapi.DomainHash]int{}
	currentOrder := []*externalapi.DomainHash{}
	currentIterator := csm.dagTraversalManager.SelectedParentIterator(stagingArea, currentSink)
	for currentIterator.Next() {
		hash := currentIterator.Get()
		if hash == nil {
			break
		}
		currentChainIndex[*hash] = len(currentOrder)
		currentOrder = append(currentOrder, hash)
	}

	commonAncestorIndex := -1
	addedReversed := []*externalapi.DomainHash{}
	candidateIterator := csm.dagTraversalManager.SelectedParentIterator(stagingArea, candidateSink)
	for candidateIterator.Next() {
		hash := candidateIterator.Get()
		if hash == nil {
			break
		}
		if index, ok := currentChainIndex[*hash]; ok {
			commonAncestorIndex = index
			break
		}
		addedReversed = append(addedReversed, hash)
	}
	if commonAncestorIndex == -1 {
		commonAncestorIndex = len(currentOrder)
	}

	for _, hash := range currentOrder[:commonAncestorIndex] {
		chainPath.Removed = append(chainPath.Removed, &externalapi.ChainBlock{Hash: hash})
	}
	for i := len(addedReversed) - 1; i >= 0; i-- {
		chainPath.Added = append(chainPath.Added, &externalapi.ChainBlock{Hash: addedReversed[i]})
	}

	return chainPath, nil
}
