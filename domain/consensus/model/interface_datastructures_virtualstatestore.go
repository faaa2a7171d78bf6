package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// VirtualStateStore stores the single mutable virtual state cell (§3:
// "exactly one mutable cell in the whole system").
type VirtualStateStore interface {
	Stage(stagingArea *StagingArea, virtualState *externalapi.VirtualState)
	IsStaged(stagingArea *StagingArea) bool
	VirtualState(dbContext DBReader, stagingArea *StagingArea) (*externalapi.VirtualState, error)
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}

// SelectedChainStore stores the selected-parent chain as an index from
// chain order to block hash and back, incrementally maintained by the
// chain-change set the virtual processor produces on every reorg (§4.4).
type SelectedChainStore interface {
	Stage(stagingArea *StagingArea, chainChangeSet *externalapi.ChainPath) error
	IsStaged(stagingArea *StagingArea) bool
	GetIndexByHash(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (uint64, error)
	GetHashByIndex(dbContext DBReader, stagingArea *StagingArea, index uint64) (*externalapi.DomainHash, error)
	HighestIndex(dbContext DBReader, stagingArea *StagingArea) (uint64, error)
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}
