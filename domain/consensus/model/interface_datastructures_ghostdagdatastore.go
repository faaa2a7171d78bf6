package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// GHOSTDAGDataStore stores each block's GHOSTDAG classification (blue
// score/work, selected parent, mergeset split), keyed per DAG level since
// the pruning-proof levels each run their own GHOSTDAG instance (§4.6).
type GHOSTDAGDataStore interface {
	Stage(stagingArea *StagingArea, blockHash *externalapi.DomainHash, data *externalapi.BlockGHOSTDAGData, isTrustedData bool)
	IsStaged(stagingArea *StagingArea) bool
	Get(dbContext DBReader, stagingArea *StagingArea, blockHash *externalapi.DomainHash, isTrustedData bool) (*externalapi.BlockGHOSTDAGData, error)
	UnstagedBlockHashes() []*externalapi.DomainHash
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}
