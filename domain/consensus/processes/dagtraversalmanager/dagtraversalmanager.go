// Package dagtraversalmanager walks the DAG along selected-parent edges
// (§4.4, §4.5), grounded on the teacher's dagtraversalmanager package
// whose retrieved snapshot carried only empty stubs for
// SelectedParentIterator/HighestChainBlockBelowBlueScore (`return nil, nil`)
// -- the walk itself is reconstructed here from the GHOSTDAG data each
// block already carries (BlockGHOSTDAGData.SelectedParent/BlueScore), the
// only surviving full-bodied file being anticone.go.
package dagtraversalmanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type dagTraversalManager struct {
	databaseContext    model.DBReader
	dagTopologyManager model.DAGTopologyManager
	ghostdagDataStore  model.GHOSTDAGDataStore
}

// New instantiates a new DAGTraversalManager.
func New(
	databaseContext model.DBReader,
	dagTopologyManager model.DAGTopologyManager,
	ghostdagDataStore model.GHOSTDAGDataStore) model.DAGTraversalManager {

	return &dagTraversalManager{
		databaseContext:    databaseContext,
		dagTopologyManager: dagTopologyManager,
		ghostdagDataStore:  ghostdagDataStore,
	}
}

type selectedParentIterator struct {
	dtm         *dagTraversalManager
	stagingArea *model.StagingArea
	current     *externalapi.DomainHash
	started     bool
}

// SelectedParentIterator returns an iterator that yields highHash, then its
// selected parent, then that block's selected parent, and so on down to
// genesis (whose selected parent is nil, ending the walk).
func (dtm *dagTraversalManager) SelectedParentIterator(stagingArea *model.StagingArea, highHash *externalapi.DomainHash) model.SelectedParentIterator {
	return &selectedParentIterator{dtm: dtm, stagingArea: stagingArea, current: highHash}
}

func (it *selectedParentIterator) Next() bool {
	if !it.started {
		it.started = true
		return it.current != nil
	}
	if it.current == nil {
		return false
	}
	data, err := it.dtm.ghostdagDataStore.Get(it.dtm.databaseContext, it.stagingArea, it.current, false)
	if err != nil {
		it.current = nil
		return false
	}
	it.current = data.SelectedParent()
	return it.current != nil
}

func (it *selectedParentIterator) Get() *externalapi.DomainHash {
	return it.current
}

// HighestChainBlockBelowBlueScore walks highHash's selected-parent chain
// and returns the highest block whose blue score is strictly lower than
// blueScore (§4.4's finality-point computation: virtual blue score minus
// the finality depth).
func (dtm *dagTraversalManager) HighestChainBlockBelowBlueScore(stagingArea *model.StagingArea, highHash *externalapi.DomainHash, blueScore uint64) (*externalapi.DomainHash, error) {
	current := highHash
	for current != nil {
		data, err := dtm.ghostdagDataStore.Get(dtm.databaseContext, stagingArea, current, false)
		if err != nil {
			return nil, err
		}
		if data.BlueScore() < blueScore {
			return current, nil
		}
		current = data.SelectedParent()
	}
	return current, nil
}
