package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// BlockStore stores full blocks: a block's header together with its
// transactions. Header-only blocks are kept only in BlockHeaderStore, so
// they never pay for body storage (§3).
type BlockStore interface {
	Stage(stagingArea *StagingArea, blockHash *externalapi.DomainHash, block *externalapi.DomainBlock)
	IsStaged(stagingArea *StagingArea) bool
	Block(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)
	HasBlock(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (bool, error)
	Delete(stagingArea *StagingArea, blockHash *externalapi.DomainHash)
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}
