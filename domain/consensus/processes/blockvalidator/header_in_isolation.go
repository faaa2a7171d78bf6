package blockvalidator

import (
	"sort"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
)

// ValidateHeaderInIsolation validates a header without consulting any
// other block's state (§4.2 step 2): its direct-parent set is non-empty
// (unless this is the genesis) and does not exceed the configured bound,
// and the parents are listed in sorted-by-hash order.
func (v *blockValidator) ValidateHeaderInIsolation(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	header, err := v.blockHeaderStore.BlockHeader(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}

	if err := v.checkParentsLimit(blockHash, header); err != nil {
		return err
	}

	return checkBlockParentsOrder(header)
}

func (v *blockValidator) checkParentsLimit(blockHash *externalapi.DomainHash, header *externalapi.DomainBlockHeader) error {
	parents := header.DirectParents()

	if len(parents) == 0 && !blockHash.Equal(v.genesisHash) {
		return ruleerrors.NewErrInvalidParentsLevel()
	}

	if len(parents) > v.maxBlockParents {
		return ruleerrors.NewErrTooManyParents(len(parents), v.maxBlockParents)
	}

	return nil
}

// checkBlockParentsOrder ensures that the block's direct parents are
// ordered by hash, mirroring the teacher's checkBlockParentsOrder.
func checkBlockParentsOrder(header *externalapi.DomainBlockHeader) error {
	parents := header.DirectParents()

	isSorted := sort.SliceIsSorted(parents, func(i, j int) bool {
		return externalapi.Less(parents[i], parents[j])
	})
	if !isSorted {
		return ruleerrors.NewErrWrongParentsOrder()
	}

	return nil
}
