package blockprocessor

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/consensushashing"
)

// ValidateAndInsertHeader runs the header stage (§4.2) for a header
// arriving on its own, deduplicating concurrent resubmissions and parking
// on any direct parent still mid-flight via the task-dependency manager
// (§4.1) before validating.
func (bp *blockProcessor) ValidateAndInsertHeader(header *externalapi.DomainBlockHeader) (externalapi.BlockStatus, error) {
	blockHash := consensushashing.HeaderHash(header)

	if !bp.taskDependencyManager.RegisterBlock(blockHash) {
		bp.taskDependencyManager.WaitForBlock(blockHash)
		return bp.statusOf(blockHash)
	}
	defer bp.taskDependencyManager.EndProcessing(blockHash)

	for _, parent := range header.DirectParents() {
		bp.taskDependencyManager.WaitForBlock(parent)
	}
	bp.taskDependencyManager.TryBeginProcessing(blockHash)

	stagingArea := model.NewStagingArea()

	status, shouldCommit, _, err := bp.processHeader(stagingArea, blockHash, header)
	if shouldCommit {
		if commitErr := bp.commit(stagingArea); commitErr != nil {
			return externalapi.StatusInvalid, commitErr
		}
	}
	return status, err
}

// processHeader runs §4.2 steps 1-10 against an already-opened staging
// area. It returns whether stagingArea holds writes worth committing
// (shouldCommit) and whether the block was already known and nothing
// further needs doing (alreadyKnown).
func (bp *blockProcessor) processHeader(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash,
	header *externalapi.DomainBlockHeader) (status externalapi.BlockStatus, shouldCommit bool, alreadyKnown bool, err error) {

	hasHeader, err := bp.blockHeaderStore.HasHeader(bp.databaseContext, stagingArea, blockHash)
	if err != nil {
		return externalapi.StatusInvalid, false, false, err
	}
	if hasHeader {
		status, err := bp.blockStatusStore.Get(bp.databaseContext, stagingArea, blockHash)
		if err != nil {
			return externalapi.StatusInvalid, false, false, err
		}
		return status, false, true, nil
	}

	bp.blockHeaderStore.Stage(stagingArea, blockHash, header)

	if err := bp.blockValidator.ValidateHeaderInIsolation(stagingArea, blockHash); err != nil {
		return bp.headerFailure(stagingArea, blockHash, err)
	}
	if err := bp.blockValidator.ValidatePruningPointViolationAndProofOfWorkAndDifficulty(stagingArea, blockHash); err != nil {
		return bp.headerFailure(stagingArea, blockHash, err)
	}
	if err := bp.blockValidator.ValidateHeaderInContext(stagingArea, blockHash); err != nil {
		return bp.headerFailure(stagingArea, blockHash, err)
	}

	ghostdagData, err := bp.ghostdagDataStore.Get(bp.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return externalapi.StatusInvalid, false, false, err
	}
	expectedPruningPoint, err := bp.pruningPointManager.ExpectedHeaderPruningPoint(stagingArea, ghostdagData)
	if err != nil {
		return externalapi.StatusInvalid, false, false, err
	}
	if !header.PruningPoint.Equal(expectedPruningPoint) {
		return bp.headerFailure(stagingArea, blockHash, ruleerrors.NewErrUnexpectedPruningPoint())
	}

	if err := bp.reachabilityManager.AddBlock(stagingArea, blockHash); err != nil {
		return externalapi.StatusInvalid, false, false, err
	}

	bp.blockStatusStore.Stage(stagingArea, blockHash, externalapi.StatusHeaderOnly)
	return externalapi.StatusHeaderOnly, true, false, nil
}

// headerFailure classifies a validation error (§4.10): ErrMissingParents
// leaves nothing staged so the block can be retried once its parent
// arrives; any other rule violation marks the header Invalid and persists
// that verdict so a resubmission short-circuits instead of re-validating.
func (bp *blockProcessor) headerFailure(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, err error) (
	externalapi.BlockStatus, bool, bool, error) {

	if ruleerrors.IsNonTerminal(err) {
		return externalapi.StatusInvalid, false, false, err
	}
	if ruleerrors.IsRuleError(err) {
		log.Warnf("rejecting header %s: %s", blockHash, err)
		bp.blockStatusStore.Stage(stagingArea, blockHash, externalapi.StatusInvalid)
		return externalapi.StatusInvalid, true, false, err
	}
	log.Criticalf("store error validating header %s: %+v", blockHash, err)
	return externalapi.StatusInvalid, false, false, err
}
