package consensusstatemanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
)

// ResolveBlockStatus runs CalculatePastUTXOAndAcceptanceData for blockHash,
// stages the resulting diff (chained off its selected parent's own diff)
// and verifies the computed accepted-ID merkle root against the header's
// declared value, settling blockHash's status at Valid or Disqualified
// (§4.4 step 3, §4.10). A non-rule error -- a store or IO failure -- is
// propagated unresolved rather than downgraded to a status.
func (csm *consensusStateManager) ResolveBlockStatus(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (
	externalapi.BlockStatus, error) {

	utxoDiff, _, acceptedIDMerkleRoot, err := csm.CalculatePastUTXOAndAcceptanceData(stagingArea, blockHash)
	if err != nil {
		if ruleerrors.IsRuleError(err) {
			csm.blockStatusStore.Stage(stagingArea, blockHash, externalapi.StatusDisqualifiedFromChain)
			return externalapi.StatusDisqualifiedFromChain, nil
		}
		return externalapi.StatusInvalid, err
	}

	header, err := csm.blockHeaderStore.BlockHeader(csm.databaseContext, stagingArea, blockHash)
	if err != nil {
		return externalapi.StatusInvalid, err
	}
	if !header.AcceptedIDMerkleRoot.Equal(acceptedIDMerkleRoot) {
		csm.blockStatusStore.Stage(stagingArea, blockHash, externalapi.StatusDisqualifiedFromChain)
		return externalapi.StatusDisqualifiedFromChain, nil
	}

	csm.utxoDiffStore.Stage(stagingArea, blockHash, utxoDiff, nil)
	csm.blockStatusStore.Stage(stagingArea, blockHash, externalapi.StatusValid)
	return externalapi.StatusValid, nil
}
