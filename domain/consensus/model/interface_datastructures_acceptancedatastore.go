package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// AcceptanceDataStore stores, per block, which transactions each block in
// its mergeset contributed to the accepted history (§3, §4.4).
type AcceptanceDataStore interface {
	Stage(stagingArea *StagingArea, blockHash *externalapi.DomainHash, acceptanceData externalapi.AcceptanceData)
	IsStaged(stagingArea *StagingArea) bool
	Get(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (externalapi.AcceptanceData, error)
	Delete(stagingArea *StagingArea, blockHash *externalapi.DomainHash)
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}
