package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// DAGTopologyManager answers structural DAG queries (parents, children,
// ancestry) against the BlockRelationStore and ReachabilityManager.
type DAGTopologyManager interface {
	Parents(stagingArea *StagingArea, blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
	Children(stagingArea *StagingArea, blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
	IsParentOf(stagingArea *StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsAncestorOf(stagingArea *StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error)
	IsAncestorOfAny(stagingArea *StagingArea, blockHash *externalapi.DomainHash, potentialDescendants []*externalapi.DomainHash) (bool, error)
	Tips(stagingArea *StagingArea) ([]*externalapi.DomainHash, error)
	SetParents(stagingArea *StagingArea, blockHash *externalapi.DomainHash, parents []*externalapi.DomainHash) error
}
