package blockvalidator

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/pow"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/workcalc"
)

// ValidatePruningPointViolationAndProofOfWorkAndDifficulty runs before a
// header's parents are wired into the DAG topology: it confirms every
// parent is already admitted and not Invalid, that the parents don't
// descend from each other, that the pruning point is in at least one
// parent's past, that the declared proof of work is valid, and wires the
// parent/child relation into the topology manager (§4.2 steps 3, 5). The
// retarget check that shares this step's name runs in
// ValidateHeaderInContext instead, since it samples a window rooted at
// this block's own GHOSTDAG data, which doesn't exist until that later
// step computes it.
func (v *blockValidator) ValidatePruningPointViolationAndProofOfWorkAndDifficulty(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	header, err := v.blockHeaderStore.BlockHeader(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}

	if err := v.checkParentsExist(stagingArea, blockHash, header); err != nil {
		return err
	}

	if err := v.checkParentsIncest(stagingArea, header); err != nil {
		return err
	}

	if err := v.checkPruningPointViolation(stagingArea, header); err != nil {
		return err
	}

	if err := v.checkProofOfWork(header); err != nil {
		return err
	}

	return v.dagTopologyManager.SetParents(stagingArea, blockHash, header.DirectParents())
}

// checkProofOfWork ensures the header's declared bits are in range and
// that the header's hash satisfies the claimed target.
func (v *blockValidator) checkProofOfWork(header *externalapi.DomainBlockHeader) error {
	target := workcalc.TargetFromBits(header.Bits)
	if target.Sign() <= 0 {
		return ruleerrors.NewErrInvalidPoW()
	}
	if target.Cmp(v.powMax) > 0 {
		return ruleerrors.NewErrInvalidPoW()
	}

	if !v.skipPoW {
		if !pow.CheckProofOfWorkWithTarget(header, target) {
			return ruleerrors.NewErrInvalidPoW()
		}
	}
	return nil
}

// checkParentsExist rejects a header naming a parent whose own header
// isn't known yet (a MissingParents condition, non-terminal: the block is
// parked and retried once the parent is admitted) or whose status is
// Invalid (terminal for this header too).
func (v *blockValidator) checkParentsExist(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, header *externalapi.DomainBlockHeader) error {
	var missingParentHashes []*externalapi.DomainHash

	for _, parent := range header.DirectParents() {
		hasHeader, err := v.blockHeaderStore.HasHeader(v.databaseContext, stagingArea, parent)
		if err != nil {
			return err
		}
		if !hasHeader {
			missingParentHashes = append(missingParentHashes, parent)
			continue
		}

		parentStatus, err := v.blockStatusStore.Get(v.databaseContext, stagingArea, parent)
		if err != nil {
			return err
		}
		if parentStatus == externalapi.StatusInvalid {
			return ruleerrors.NewErrInvalidAncestorBlock(parent)
		}
	}

	if len(missingParentHashes) > 0 {
		return ruleerrors.NewErrMissingParents(missingParentHashes)
	}

	return nil
}

// checkParentsIncest rejects a header whose direct parents are not an
// antichain: if one parent is an ancestor of another, they don't belong
// together in the same parent set.
func (v *blockValidator) checkParentsIncest(stagingArea *model.StagingArea, header *externalapi.DomainBlockHeader) error {
	parents := header.DirectParents()

	for _, parentA := range parents {
		for _, parentB := range parents {
			if parentA.Equal(parentB) {
				continue
			}

			isAAncestorOfB, err := v.dagTopologyManager.IsAncestorOf(stagingArea, parentA, parentB)
			if err != nil {
				return err
			}
			if isAAncestorOfB {
				return ruleerrors.NewErrInvalidParentsRelation(parentA, parentB)
			}
		}
	}

	return nil
}

// checkPruningPointViolation requires the pruning point to be in the past
// of at least one direct parent, unless no pruning point has been set yet
// (still at genesis).
func (v *blockValidator) checkPruningPointViolation(stagingArea *model.StagingArea, header *externalapi.DomainBlockHeader) error {
	pruningPoint, err := v.pruningStore.PruningPoint(v.databaseContext, stagingArea)
	if err != nil {
		if database.IsNotFoundError(err) {
			// No pruning point has been set yet: still at genesis, no violation possible.
			return nil
		}
		return err
	}

	isAncestorOfAny, err := v.dagTopologyManager.IsAncestorOfAny(stagingArea, pruningPoint, header.DirectParents())
	if err != nil {
		return err
	}
	if !isAncestorOfAny {
		return ruleerrors.NewErrPruningPointViolation()
	}

	return nil
}
