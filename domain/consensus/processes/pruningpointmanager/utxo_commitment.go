package pruningpointmanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/multiset"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/utxo"
	"github.com/pkg/errors"
)

// validateUTXOSetFitsCommitment recomputes the MuHash digest of a
// pruning point candidate's restored UTXO set and compares it against
// the block's own declared UTXOCommitment (§4.6, §C.2) -- a sanity check
// against ever publishing a pruning point whose UTXO set a syncing peer
// could not be handed in good faith.
func (ppm *pruningPointManager) validateUTXOSetFitsCommitment(stagingArea *model.StagingArea, pruningPointHash *externalapi.DomainHash,
	pairs []*externalapi.OutpointAndUTXOEntryPair) error {

	utxoSetMultiset := multiset.New()
	for _, pair := range pairs {
		serialized, err := utxo.SerializeUTXO(pair.UTXOEntry, pair.Outpoint)
		if err != nil {
			return err
		}
		utxoSetMultiset.Add(serialized)
	}
	utxoSetHash := utxoSetMultiset.Finalize()

	header, err := ppm.blockHeaderStore.BlockHeader(ppm.databaseContext, stagingArea, pruningPointHash)
	if err != nil {
		return err
	}

	if !header.UTXOCommitment.Equal(&utxoSetHash) {
		return errors.Errorf("calculated UTXO set for new pruning point %s doesn't match its UTXO commitment: "+
			"calculated %s, declared %s", pruningPointHash, &utxoSetHash, header.UTXOCommitment)
	}
	return nil
}
