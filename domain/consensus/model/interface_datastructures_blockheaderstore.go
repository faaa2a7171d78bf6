package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// BlockHeaderStore represents a store of block headers (§3: append-only,
// a header is created once on first admission and never mutated).
type BlockHeaderStore interface {
	Stage(stagingArea *StagingArea, blockHash *externalapi.DomainHash, header *externalapi.DomainBlockHeader)
	IsStaged(stagingArea *StagingArea) bool
	BlockHeader(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error)
	HasHeader(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash) (bool, error)
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
	Delete(dbTx DBTransaction, stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
}
