package blockvalidator

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
)

// ValidateHeaderInContext validates a header against the consensus state
// built up by its already-admitted parents (§4.2 steps 4, 6, 7): it runs
// GHOSTDAG classification and the retarget check against it (both skipped
// if the block already has status HeaderOnly, since they ran when its
// header was first admitted), checks the header's timestamp against the sampled
// past-median-time window, and bounds the block's mergeset size.
func (v *blockValidator) ValidateHeaderInContext(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	header, err := v.blockHeaderStore.BlockHeader(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}

	headersOnly, err := v.isHeadersOnlyBlock(stagingArea, blockHash)
	if err != nil {
		return err
	}

	if !headersOnly {
		if err := v.ghostdagManager.GHOSTDAG(stagingArea, blockHash); err != nil {
			return err
		}

		if err := v.validateDifficulty(stagingArea, blockHash, header); err != nil {
			return err
		}
	}

	if err := v.validateMedianTime(stagingArea, blockHash, header); err != nil {
		return err
	}

	return v.checkMergeSizeLimit(stagingArea, blockHash)
}

func (v *blockValidator) validateDifficulty(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, header *externalapi.DomainBlockHeader) error {
	expectedBits, err := v.difficultyManager.RequiredDifficulty(stagingArea, blockHash)
	if err != nil {
		return err
	}
	if header.Bits != expectedBits {
		return ruleerrors.NewErrUnexpectedDifficulty(expectedBits, header.Bits)
	}
	return nil
}

func (v *blockValidator) isHeadersOnlyBlock(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (bool, error) {
	exists, err := v.blockStatusStore.Exists(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	status, err := v.blockStatusStore.Get(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return false, err
	}
	return status == externalapi.StatusHeaderOnly, nil
}

func (v *blockValidator) validateMedianTime(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, header *externalapi.DomainBlockHeader) error {
	if len(header.DirectParents()) == 0 {
		return nil
	}

	pastMedianTime, err := v.pastMedianTimeManager.PastMedianTime(stagingArea, blockHash)
	if err != nil {
		return err
	}

	if header.TimeInMilliseconds <= pastMedianTime {
		return ruleerrors.NewErrTimeTooOld()
	}

	return nil
}

func (v *blockValidator) checkMergeSizeLimit(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	ghostdagData, err := v.ghostdagDataStore.Get(v.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return err
	}

	mergeSetSize := uint64(len(ghostdagData.MergeSetReds()) + len(ghostdagData.MergeSetBlues()))
	if mergeSetSize > v.mergeSetSizeLimit {
		return ruleerrors.NewErrViolatingMergeLimit(int(mergeSetSize), v.mergeSetSizeLimit)
	}

	return nil
}
