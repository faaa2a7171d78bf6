package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// UTXODiffStore stores, per block, its UTXO diff relative to a "diff
// parent" plus the diff child pointer, forming the diff-chain the virtual
// state is built by folding (§4.4, §9: diff chains avoid materializing
// every block's full UTXO set).
type UTXODiffStore interface {
	Stage(stagingArea *StagingArea, blockHash *externalapi.DomainHash, utxoDiff *externalapi.UTXODiff, utxoDiffChild *externalapi.DomainHash)
	IsStaged(stagingArea *StagingArea) bool
	UTXODiff(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (*externalapi.UTXODiff, error)
	UTXODiffChild(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (*externalapi.DomainHash, error)
	HasUTXODiffChild(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (bool, error)
	Delete(stagingArea *StagingArea, blockHash *externalapi.DomainHash)
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}
