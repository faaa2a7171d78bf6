package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// ReachabilityManager maintains the interval-labelled reachability tree and
// answers is-ancestor-of queries: a tree-ancestry query is one interval
// comparison, and a DAG-ancestry query also walks future-covering sets
// recursively (§4.5).
type ReachabilityManager interface {
	AddBlock(stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
	IsDAGAncestorOf(stagingArea *StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsInPast(stagingArea *StagingArea, candidate, context *externalapi.DomainHash) (bool, error)
	IsReachabilityTreeAncestorOf(stagingArea *StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	UpdateReindexRoot(stagingArea *StagingArea, selectedTip *externalapi.DomainHash) error
}
