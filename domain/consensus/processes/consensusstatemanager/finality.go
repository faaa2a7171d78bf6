package consensusstatemanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// virtualFinalityPoint returns the highest block on the current sink's
// selected-parent chain whose blue score is more than finalityDepth below
// the sink's own (§4.4's candidate-tip selection consults this so a
// competing chain that never passed through it can't reorg past it). Nil
// while the sink's blue score is at most finalityDepth, since nothing is
// final yet.
func (csm *consensusStateManager) virtualFinalityPoint(stagingArea *model.StagingArea, sink *externalapi.DomainHash) (*externalapi.DomainHash, error) {
	if sink.Equal(csm.genesisHash) {
		return nil, nil
	}

	sinkGHOSTDAGData, err := csm.ghostdagDataStore.Get(csm.databaseContext, stagingArea, sink, false)
	if err != nil {
		return nil, err
	}
	if sinkGHOSTDAGData.BlueScore() <= csm.finalityDepth {
		return nil, nil
	}

	return csm.dagTraversalManager.HighestChainBlockBelowBlueScore(
		stagingArea, sink, sinkGHOSTDAGData.BlueScore()-csm.finalityDepth)
}

// isViolatingFinality reports whether candidate's selected-parent chain
// does not pass through finalityPoint -- the chain-ancestor relation
// (§4.5's is_chain_ancestor), substituting for the teacher's
// IsInSelectedParentChainOf which this repo's DAGTopologyManager has no
// equivalent of.
func (csm *consensusStateManager) isViolatingFinality(stagingArea *model.StagingArea, candidate, finalityPoint *externalapi.DomainHash) (bool, error) {
	if finalityPoint == nil {
		return false, nil
	}
	isChainAncestor, err := csm.reachabilityManager.IsReachabilityTreeAncestorOf(stagingArea, finalityPoint, candidate)
	if err != nil {
		return false, err
	}
	return !isChainAncestor, nil
}
