package blockprocessor

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// processVirtual runs §4.4 now that blockHash sits at
// UTXOPendingVerification: it advances the virtual past whichever tip now
// wins selection (not necessarily blockHash itself -- a block that never
// becomes part of the selected chain simply stays UTXOPendingVerification
// indefinitely, same as the teacher's own chain-selection semantics), then
// re-derives the pruning point against the new virtual.
func (bp *blockProcessor) processVirtual(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error) {
	if _, err := bp.consensusStateManager.UpdateVirtual(stagingArea, blockHash); err != nil {
		log.Criticalf("error updating virtual after block %s: %+v", blockHash, err)
		return externalapi.StatusInvalid, err
	}

	if err := bp.pruningPointManager.UpdatePruningPointByVirtual(stagingArea); err != nil {
		log.Criticalf("error updating pruning point after block %s: %+v", blockHash, err)
		return externalapi.StatusInvalid, err
	}

	return bp.blockStatusStore.Get(bp.databaseContext, stagingArea, blockHash)
}
