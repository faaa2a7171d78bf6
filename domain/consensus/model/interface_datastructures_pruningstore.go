package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// PruningStore stores the current pruning point, the next pruning point
// candidate awaiting enough confirmations to be promoted, the list of past
// pruning points (§4.6), and the pruning point's own serialized UTXO set
// used to answer §4.6's MuHash commitment check and to seed a new node's
// virtual state after an IBD-by-proof bootstrap.
type PruningStore interface {
	StagePruningPoint(stagingArea *StagingArea, pruningPointHash *externalapi.DomainHash)
	StagePruningPointCandidate(stagingArea *StagingArea, candidate *externalapi.DomainHash)
	IsStaged(stagingArea *StagingArea) bool
	PruningPoint(dbContext DBReader, stagingArea *StagingArea) (*externalapi.DomainHash, error)
	PruningPointCandidate(dbContext DBReader, stagingArea *StagingArea) (*externalapi.DomainHash, error)
	HasPruningPointCandidate(dbContext DBReader, stagingArea *StagingArea) (bool, error)
	AppendPastPruningPoint(stagingArea *StagingArea, pruningPointHash *externalapi.DomainHash)
	PastPruningPoints(dbContext DBReader, stagingArea *StagingArea) ([]*externalapi.DomainHash, error)
	StagePruningPointUTXOSet(stagingArea *StagingArea, utxoSetIterator []*externalapi.OutpointAndUTXOEntryPair)
	PruningPointUTXOs(dbContext DBReader, stagingArea *StagingArea, fromOutpoint *externalapi.DomainOutpoint, limit int) ([]*externalapi.OutpointAndUTXOEntryPair, error)
	ClearPruningPointUTXOSet(dbTx DBTransaction) error
	Commit(dbTx DBTransaction, stagingArea *StagingArea) error
}
