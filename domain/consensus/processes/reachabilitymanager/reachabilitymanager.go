// Package reachabilitymanager maintains the interval-labelled reachability
// tree over selected-parent edges and answers ancestor queries against it
// (§4.5). Every block is attached to the tree as a child of its GHOSTDAG
// selected parent; its other direct parents only contribute a
// future-covering-set entry, since they are DAG edges the tree itself
// does not walk.
package reachabilitymanager

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// reachabilityManager implements model.ReachabilityManager.
type reachabilityManager struct {
	databaseContext       model.DBReader
	reachabilityDataStore model.ReachabilityDataStore
	ghostdagDataStore     model.GHOSTDAGDataStore
	blockRelationStore    model.BlockRelationStore
}

// New instantiates a new ReachabilityManager.
func New(
	databaseContext model.DBReader,
	reachabilityDataStore model.ReachabilityDataStore,
	ghostdagDataStore model.GHOSTDAGDataStore,
	blockRelationStore model.BlockRelationStore) model.ReachabilityManager {

	return &reachabilityManager{
		databaseContext:       databaseContext,
		reachabilityDataStore: reachabilityDataStore,
		ghostdagDataStore:     ghostdagDataStore,
		blockRelationStore:    blockRelationStore,
	}
}

// fullRangeSize is 2^64; the root interval is [0, fullRangeSize-1): the reachability tree
// never needs more than 2^64-1 leaf slots across the tree's lifetime in
// any realistic chain (§4.5, §9's "capacity exhausted" case is handled by
// reindexing rather than by widening this constant).
var fullRangeSize = new(big.Int).Lsh(big.NewInt(1), 64)

func (rm *reachabilityManager) get(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (*model.ReachabilityData, error) {
	return rm.reachabilityDataStore.ReachabilityData(rm.databaseContext, stagingArea, blockHash)
}

func (rm *reachabilityManager) stage(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, data *model.ReachabilityData) {
	rm.reachabilityDataStore.StageReachabilityData(stagingArea, blockHash, data)
}

// AddBlock attaches blockHash to the reachability tree as a child of its
// GHOSTDAG selected parent, and records its other direct parents' merge
// edges in their future-covering sets (§4.5).
func (rm *reachabilityManager) AddBlock(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	hasData, err := rm.reachabilityDataStore.HasReachabilityData(rm.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}
	if hasData {
		return nil
	}

	relations, err := rm.blockRelationStore.BlockRelation(rm.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}

	if len(relations.Parents) == 0 {
		// Genesis: the tree root owns the entire interval.
		rm.stage(stagingArea, blockHash, &model.ReachabilityData{
			Interval: &model.ReachabilityInterval{Start: 0, End: new(big.Int).Sub(fullRangeSize, big.NewInt(1)).Uint64()},
		})
		return rm.StageReindexRoot(stagingArea, blockHash)
	}

	ghostdagData, err := rm.ghostdagDataStore.Get(rm.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return err
	}
	selectedParent := ghostdagData.SelectedParent()

	interval, err := rm.allocateInterval(stagingArea, selectedParent)
	if err != nil {
		return err
	}

	parentData, err := rm.get(stagingArea, selectedParent)
	if err != nil {
		return err
	}
	parentData.Children = append(parentData.Children, blockHash)
	rm.stage(stagingArea, selectedParent, parentData)

	rm.stage(stagingArea, blockHash, &model.ReachabilityData{
		Interval: interval,
		Parent:   selectedParent,
	})

	for _, parent := range relations.Parents {
		if parent.Equal(selectedParent) {
			continue
		}
		err := rm.addFutureCoveringEntry(stagingArea, parent, blockHash)
		if err != nil {
			return err
		}
	}

	return nil
}

func (rm *reachabilityManager) addFutureCoveringEntry(stagingArea *model.StagingArea, mergeParent, newHash *externalapi.DomainHash) error {
	data, err := rm.get(stagingArea, mergeParent)
	if err != nil {
		return err
	}
	data.FutureCoveringSet = append(data.FutureCoveringSet, newHash)
	rm.stage(stagingArea, mergeParent, data)
	return nil
}

// allocateInterval carves a sub-interval for a new child of parent out of
// parent's remaining free capacity, halving what's left each time so a
// long selected-parent chain never runs out before a reindex would anyway
// become due (§4.5: "Reallocation policy").
func (rm *reachabilityManager) allocateInterval(stagingArea *model.StagingArea, parent *externalapi.DomainHash) (*model.ReachabilityInterval, error) {
	parentData, err := rm.get(stagingArea, parent)
	if err != nil {
		return nil, err
	}

	used := uint64(0)
	for _, child := range parentData.Children {
		childData, err := rm.get(stagingArea, child)
		if err != nil {
			return nil, err
		}
		used += childData.Interval.Size()
	}

	remaining := parentData.Interval.Size() - used
	if remaining < 2 {
		err := rm.reindexChildren(stagingArea, parent)
		if err != nil {
			return nil, err
		}
		parentData, err = rm.get(stagingArea, parent)
		if err != nil {
			return nil, err
		}
		used = 0
		for _, child := range parentData.Children {
			childData, err := rm.get(stagingArea, child)
			if err != nil {
				return nil, err
			}
			used += childData.Interval.Size()
		}
		remaining = parentData.Interval.Size() - used
	}

	size := remaining / 2
	if size < 1 {
		size = 1
	}
	start := parentData.Interval.Start + used
	return &model.ReachabilityInterval{Start: start, End: start + size}, nil
}

// reindexChildren re-splits parent's interval across its current children
// (proportional to each child's existing subtree width) and
// recursively rescales each child's own subtree so every descendant's
// interval stays nested inside its ancestors' (§4.5).
func (rm *reachabilityManager) reindexChildren(stagingArea *model.StagingArea, parent *externalapi.DomainHash) error {
	parentData, err := rm.get(stagingArea, parent)
	if err != nil {
		return err
	}
	if len(parentData.Children) == 0 {
		return nil
	}

	total := parentData.Interval.Size()
	oldTotal := uint64(0)
	oldSizes := make([]uint64, len(parentData.Children))
	for i, child := range parentData.Children {
		childData, err := rm.get(stagingArea, child)
		if err != nil {
			return err
		}
		oldSizes[i] = childData.Interval.Size()
		oldTotal += oldSizes[i]
	}
	if oldTotal == 0 {
		return errors.New("reachability: parent has children but zero combined interval width")
	}

	offset := parentData.Interval.Start
	for i, child := range parentData.Children {
		share := new(big.Int).Mul(big.NewInt(0).SetUint64(oldSizes[i]), big.NewInt(0).SetUint64(total))
		share.Div(share, big.NewInt(0).SetUint64(oldTotal))
		shareSize := share.Uint64()
		if shareSize < 1 {
			shareSize = 1
		}
		newInterval := &model.ReachabilityInterval{Start: offset, End: offset + shareSize}
		err := rm.rescaleSubtree(stagingArea, child, newInterval)
		if err != nil {
			return err
		}
		offset += shareSize
	}
	return nil
}

func (rm *reachabilityManager) rescaleSubtree(stagingArea *model.StagingArea, node *externalapi.DomainHash, newInterval *model.ReachabilityInterval) error {
	data, err := rm.get(stagingArea, node)
	if err != nil {
		return err
	}
	oldInterval := data.Interval
	data.Interval = newInterval
	rm.stage(stagingArea, node, data)

	if len(data.Children) == 0 || oldInterval.Size() == 0 {
		return nil
	}

	oldTotal := uint64(0)
	oldSizes := make([]uint64, len(data.Children))
	for i, child := range data.Children {
		childData, err := rm.get(stagingArea, child)
		if err != nil {
			return err
		}
		oldSizes[i] = childData.Interval.Size()
		oldTotal += oldSizes[i]
	}
	if oldTotal == 0 {
		return nil
	}

	offset := newInterval.Start
	newTotal := newInterval.Size()
	for i, child := range data.Children {
		share := new(big.Int).Mul(big.NewInt(0).SetUint64(oldSizes[i]), big.NewInt(0).SetUint64(newTotal))
		share.Div(share, big.NewInt(0).SetUint64(oldTotal))
		shareSize := share.Uint64()
		if shareSize < 1 {
			shareSize = 1
		}
		if offset+shareSize > newInterval.End {
			shareSize = newInterval.End - offset
		}
		childInterval := &model.ReachabilityInterval{Start: offset, End: offset + shareSize}
		err := rm.rescaleSubtree(stagingArea, child, childInterval)
		if err != nil {
			return err
		}
		offset += shareSize
	}
	return nil
}

// IsReachabilityTreeAncestorOf returns whether blockHashA's interval
// contains blockHashB's interval: the O(1) selected-parent-chain ancestry
// test (§4.5).
func (rm *reachabilityManager) IsReachabilityTreeAncestorOf(stagingArea *model.StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	if blockHashA.Equal(blockHashB) {
		return true, nil
	}
	dataA, err := rm.get(stagingArea, blockHashA)
	if err != nil {
		return false, err
	}
	dataB, err := rm.get(stagingArea, blockHashB)
	if err != nil {
		return false, err
	}
	return dataA.Interval.Start <= dataB.Interval.Start && dataB.Interval.End <= dataA.Interval.End, nil
}

// IsDAGAncestorOf returns whether blockHashA is an ancestor of blockHashB
// anywhere in the DAG, not just along the selected-parent chain (§4.5).
func (rm *reachabilityManager) IsDAGAncestorOf(stagingArea *model.StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (bool, error) {
	return rm.isDAGAncestorOf(stagingArea, blockHashA, blockHashB, make(map[externalapi.DomainHash]bool))
}

func (rm *reachabilityManager) isDAGAncestorOf(stagingArea *model.StagingArea, a, b *externalapi.DomainHash, visited map[externalapi.DomainHash]bool) (bool, error) {
	isTreeAncestor, err := rm.IsReachabilityTreeAncestorOf(stagingArea, a, b)
	if err != nil {
		return false, err
	}
	if isTreeAncestor {
		return true, nil
	}

	aData, err := rm.get(stagingArea, a)
	if err != nil {
		return false, err
	}
	for _, covered := range aData.FutureCoveringSet {
		if visited[*covered] {
			continue
		}
		visited[*covered] = true

		isAncestor, err := rm.IsReachabilityTreeAncestorOf(stagingArea, covered, b)
		if err != nil {
			return false, err
		}
		if isAncestor {
			return true, nil
		}
		isAncestor, err = rm.isDAGAncestorOf(stagingArea, covered, b, visited)
		if err != nil {
			return false, err
		}
		if isAncestor {
			return true, nil
		}
	}
	return false, nil
}

// IsInPast returns whether candidate is in context's DAG past -- the same
// relation as IsDAGAncestorOf with the arguments read as a sentence (§4.5).
func (rm *reachabilityManager) IsInPast(stagingArea *model.StagingArea, candidate, context *externalapi.DomainHash) (bool, error) {
	return rm.IsDAGAncestorOf(stagingArea, candidate, context)
}

// UpdateReindexRoot stages selectedTip as the reindex root in the
// reachability data store (§4.5). No reindexing code reads the reindex root
// back: reindexChildren rescales only the subtree under the parent that ran
// out of interval room.
func (rm *reachabilityManager) UpdateReindexRoot(stagingArea *model.StagingArea, selectedTip *externalapi.DomainHash) error {
	return rm.StageReindexRoot(stagingArea, selectedTip)
}

// StageReindexRoot is a small helper so AddBlock's genesis case and
// UpdateReindexRoot share one code path for recording the root.
func (rm *reachabilityManager) StageReindexRoot(stagingArea *model.StagingArea, root *externalapi.DomainHash) error {
	rm.reachabilityDataStore.StageReindexRoot(stagingArea, root)
	return nil
}

var _ model.ReachabilityManager = (*reachabilityManager)(nil)
