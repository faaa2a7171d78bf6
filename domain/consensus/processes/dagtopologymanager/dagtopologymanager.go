// Package dagtopologymanager answers structural DAG queries -- parents,
// children, ancestry, tips -- against the BlockRelationStore and
// ReachabilityManager (§4.5, §9: "No walker ever follows raw child
// pointers; all traversals are index lookups").
package dagtopologymanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type dagTopologyManager struct {
	databaseContext     model.DBReader
	reachabilityManager model.ReachabilityManager
	blockRelationStore  model.BlockRelationStore
	blockStatusStore    model.BlockStatusStore
	tips                []*externalapi.DomainHash
}

// New instantiates a new DAGTopologyManager.
func New(
	databaseContext model.DBReader,
	reachabilityManager model.ReachabilityManager,
	blockRelationStore model.BlockRelationStore,
	blockStatusStore model.BlockStatusStore) model.DAGTopologyManager {

	return &dagTopologyManager{
		databaseContext:     databaseContext,
		reachabilityManager: reachabilityManager,
		blockRelationStore:  blockRelationStore,
		blockStatusStore:    blockStatusStore,
	}
}

// Parents returns the DAG parents of the given blockHash.
func (dtm *dagTopologyManager) Parents(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	relations, err := dtm.blockRelationStore.BlockRelation(dtm.databaseContext, stagingArea, blockHash)
	if err != nil {
		return nil, err
	}
	return relations.Parents, nil
}

// Children returns the DAG children of the given blockHash.
func (dtm *dagTopologyManager) Children(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error) {
	relations, err := dtm.blockRelationStore.BlockRelation(dtm.databaseContext, stagingArea, blockHash)
	if err != nil {
		return nil, err
	}
	return relations.Children, nil
}

// IsParentOf returns whether blockHashA is a direct DAG parent of blockHashB.
func (dtm *dagTopologyManager) IsParentOf(stagingArea *model.StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	relations, err := dtm.blockRelationStore.BlockRelation(dtm.databaseContext, stagingArea, blockHashB)
	if err != nil {
		return false, err
	}
	return isHashInSlice(blockHashA, relations.Parents), nil
}

// IsAncestorOf returns whether blockHashA is a DAG ancestor of blockHashB.
func (dtm *dagTopologyManager) IsAncestorOf(stagingArea *model.StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	return dtm.reachabilityManager.IsDAGAncestorOf(stagingArea, blockHashA, blockHashB)
}

// IsAncestorOfAny returns whether blockHash is an ancestor of at least one
// of potentialDescendants.
func (dtm *dagTopologyManager) IsAncestorOfAny(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, potentialDescendants []*externalapi.DomainHash) (bool, error) {
	for _, descendant := range potentialDescendants {
		isAncestor, err := dtm.IsAncestorOf(stagingArea, blockHash, descendant)
		if err != nil {
			return false, err
		}
		if isAncestor {
			return true, nil
		}
	}
	return false, nil
}

// Tips returns the current set of DAG tips: blocks with no known children,
// tracked incrementally as SetParents wires new blocks in.
func (dtm *dagTopologyManager) Tips(stagingArea *model.StagingArea) ([]*externalapi.DomainHash, error) {
	return dtm.tips, nil
}

// SetParents records blockHash's parent set and updates each parent's
// child list and the tracked tip set accordingly (§4.2 step 10: header
// persistence writes relations in the same batch as everything else).
func (dtm *dagTopologyManager) SetParents(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, parents []*externalapi.DomainHash) error {
	for _, parent := range parents {
		hasRelations, err := dtm.blockRelationStore.Has(dtm.databaseContext, stagingArea, parent)
		if err != nil {
			return err
		}
		var parentRelations *model.BlockRelations
		if hasRelations {
			parentRelations, err = dtm.blockRelationStore.BlockRelation(dtm.databaseContext, stagingArea, parent)
			if err != nil {
				return err
			}
		} else {
			parentRelations = &model.BlockRelations{}
		}
		parentRelations.Children = append(parentRelations.Children, blockHash)
		dtm.blockRelationStore.StageBlockRelation(stagingArea, parent, parentRelations)

		dtm.removeTip(parent)
	}

	dtm.blockRelationStore.StageBlockRelation(stagingArea, blockHash, &model.BlockRelations{
		Parents: externalapi.CloneHashes(parents),
	})
	dtm.tips = append(dtm.tips, blockHash)

	return nil
}

func (dtm *dagTopologyManager) removeTip(hash *externalapi.DomainHash) {
	for i, tip := range dtm.tips {
		if tip.Equal(hash) {
			dtm.tips = append(dtm.tips[:i], dtm.tips[i+1:]...)
			return
		}
	}
}

func isHashInSlice(hash *externalapi.DomainHash, hashes []*externalapi.DomainHash) bool {
	for _, h := range hashes {
		if h.Equal(hash) {
			return true
		}
	}
	return false
}

var _ model.DAGTopologyManager = (*dagTopologyManager)(nil)
