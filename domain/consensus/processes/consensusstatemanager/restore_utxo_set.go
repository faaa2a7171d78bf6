package consensusstatemanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/utxo"
)

// RestorePastUTXOSetIterator reconstructs blockHash's full historical UTXO
// set by folding the selected-parent-chain diffs between the pruning
// point and blockHash onto the pruning point's persisted full set (§9:
// the diff chain avoids materializing every block's full set, so any
// block's set must be rebuilt by walking forward from the nearest
// persisted base).
func (csm *consensusStateManager) RestorePastUTXOSetIterator(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (
	[]*externalapi.OutpointAndUTXOEntryPair, error) {

	utxoSet, err := csm.restorePastUTXOSet(stagingArea, blockHash)
	if err != nil {
		return nil, err
	}

	pairs := make([]*externalapi.OutpointAndUTXOEntryPair, 0, len(utxoSet))
	for outpoint, entry := range utxoSet {
		outpointCopy := outpoint
		pairs = append(pairs, &externalapi.OutpointAndUTXOEntryPair{Outpoint: &outpointCopy, UTXOEntry: entry})
	}
	return pairs, nil
}

// restorePastUTXOSet is the internal counterpart used both by
// RestorePastUTXOSetIterator and by CalculatePastUTXOAndAcceptanceData,
// which needs a joining chain block's selected parent's full set as the
// base it applies the new block's own mergeset transactions onto.
func (csm *consensusStateManager) restorePastUTXOSet(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (
	map[externalapi.DomainOutpoint]*externalapi.UTXOEntry, error) {

	pruningPoint, err := csm.currentPruningPointOrNil(stagingArea)
	if err != nil {
		return nil, err
	}

	path := []*externalapi.DomainHash{}
	iterator := csm.dagTraversalManager.SelectedParentIterator(stagingArea, blockHash)
	for iterator.Next() {
		current := iterator.Get()
		if current == nil {
			break
		}
		if pruningPoint != nil && current.Equal(pruningPoint) {
			break
		}
		if pruningPoint == nil && current.Equal(csm.genesisHash) {
			break
		}
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	utxoSet, err := csm.pruningPointUTXOSet(stagingArea)
	if err != nil {
		return nil, err
	}

	for _, hash := range path {
		diff, err := csm.utxoDiffStore.UTXODiff(csm.databaseContext, stagingArea, hash)
		if err != nil {
			return nil, err
		}
		utxoSet = utxo.Apply(utxoSet, diff)
	}
	return utxoSet, nil
}

// currentPruningPointOrNil returns the staged pruning point, or nil if
// none has been set yet (the node hasn't pruned past genesis).
func (csm *consensusStateManager) currentPruningPointOrNil(stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	pruningPoint, err := csm.pruningStore.PruningPoint(csm.databaseContext, stagingArea)
	if err != nil {
		if database.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return pruningPoint, nil
}

// pruningPointUTXOSet pages through the persisted pruning-point UTXO set
// in full, seeding the base set restorePastUTXOSet folds chain diffs onto.
func (csm *consensusStateManager) pruningPointUTXOSet(stagingArea *model.StagingArea) (
	map[externalapi.DomainOutpoint]*externalapi.UTXOEntry, error) {

	const pageSize = 1000

	utxoSet := make(map[externalapi.DomainOutpoint]*externalapi.UTXOEntry)
	var fromOutpoint *externalapi.DomainOutpoint
	for {
		page, err := csm.pruningStore.PruningPointUTXOs(csm.databaseContext, stagingArea, fromOutpoint, pageSize)
		if err != nil {
			return nil, err
		}
		for _, pair := range page {
			utxoSet[*pair.Outpoint] = pair.UTXOEntry
		}
		if len(page) < pageSize {
			break
		}
		fromOutpoint = page[len(page)-1].Outpoint
	}
	return utxoSet, nil
}
