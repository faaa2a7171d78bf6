package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// BlockStatusStore tracks each block's validity state machine (§3: header
// only -> UTXO-pending -> valid, or -> invalid/disqualified at any point).
type BlockStatusStore interface {
	Stage(stagingArea *StagingArea, blockHash *externalapi.DomainHash, status externalapi.BlockStatus)
	IsStaged(stagingArea *StagingArea) bool
	Exists(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (bool, error)
	Get(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error)
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}
