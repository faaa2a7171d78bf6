package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// PruningPointManager decides when the pruning point can advance (enough
// finality confirmations past the current one) and, on advancing, builds
// the new pruning point's UTXO set and checks it against the block's
// UTXOCommitment (§4.6).
type PruningPointManager interface {
	UpdatePruningPointByVirtual(stagingArea *StagingArea) error
	IsValidPruningPoint(stagingArea *StagingArea, blockHash *externalapi.DomainHash) (bool, error)
	ExpectedHeaderPruningPoint(stagingArea *StagingArea, blockGHOSTDAGData *externalapi.BlockGHOSTDAGData) (*externalapi.DomainHash, error)
}
