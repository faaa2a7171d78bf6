package blockprocessor

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
)

// processBody runs §4.3 against a header already admitted in the given
// staging area. It returns the same (status, shouldCommit, alreadyDone,
// err) shape processHeader does.
func (bp *blockProcessor) processBody(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	block *externalapi.DomainBlock) (status externalapi.BlockStatus, shouldCommit bool, alreadyDone bool, err error) {

	currentStatus, err := bp.blockStatusStore.Get(bp.databaseContext, stagingArea, blockHash)
	if err != nil {
		return externalapi.StatusInvalid, false, false, err
	}
	if currentStatus != externalapi.StatusHeaderOnly {
		// Invalid is terminal; UTXOPendingVerification/Valid/Disqualified
		// already have a body on record. Either way there's nothing to redo.
		return currentStatus, false, true, nil
	}

	bp.blockStore.Stage(stagingArea, blockHash, block)

	if err := bp.blockValidator.ValidateBodyInIsolation(stagingArea, blockHash); err != nil {
		return bp.bodyFailure(stagingArea, blockHash, err)
	}
	if err := bp.blockValidator.ValidateBodyInContext(stagingArea, blockHash); err != nil {
		return bp.bodyFailure(stagingArea, blockHash, err)
	}

	bp.blockStatusStore.Stage(stagingArea, blockHash, externalapi.StatusUTXOPendingVerification)
	return externalapi.StatusUTXOPendingVerification, true, false, nil
}

// bodyFailure classifies a body-validation error (§4.3, §4.10):
// ErrBadMerkleRoot leaves the block at HeaderOnly so its body may be
// re-offered; any other violation marks it Invalid.
func (bp *blockProcessor) bodyFailure(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, err error) (
	externalapi.BlockStatus, bool, bool, error) {

	if ruleerrors.IsNonTerminal(err) {
		return externalapi.StatusHeaderOnly, false, false, err
	}
	if ruleerrors.IsRuleError(err) {
		log.Warnf("rejecting block %s: %s", blockHash, err)
		bp.blockStatusStore.Stage(stagingArea, blockHash, externalapi.StatusInvalid)
		return externalapi.StatusInvalid, true, false, err
	}
	log.Criticalf("store error validating block %s: %+v", blockHash, err)
	return externalapi.StatusInvalid, false, false, err
}
