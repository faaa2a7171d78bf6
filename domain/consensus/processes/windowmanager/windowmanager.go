// Package windowmanager samples the block window both the difficulty and
// past-median-time managers read from, so they never re-walk the DAG
// independently (§4.7). Grounded on the teacher's blockWindow/blueBlockWindow
// (blockdag/blockwindow.go), translated from in-memory blockNode pointers to
// the store-backed GHOSTDAGDataStore/BlockHeaderStore shape.
package windowmanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type windowManager struct {
	databaseContext   model.DBReader
	ghostdagDataStore model.GHOSTDAGDataStore
	genesisHash       *externalapi.DomainHash
}

// New instantiates a new WindowManager.
func New(
	databaseContext model.DBReader,
	ghostdagDataStore model.GHOSTDAGDataStore,
	genesisHash *externalapi.DomainHash) model.WindowManager {

	return &windowManager{
		databaseContext:   databaseContext,
		ghostdagDataStore: ghostdagDataStore,
		genesisHash:       genesisHash,
	}
}

// BlockWindow returns a window of up to windowSize blocks sampled from
// blockHash's selected-parent chain: each chain block contributes itself
// plus its own MergeSetBlues (which exclude the chain block by this
// repo's convention, so it has to be pushed separately), most recent
// first. If fewer than windowSize blocks exist in blockHash's past, the
// window is padded with the genesis hash (§4.7, grounded on
// blueBlockWindow's genesis-padding branch).
func (wm *windowManager) BlockWindow(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, windowSize int) (model.BlockWindowHeap, error) {
	window := make(model.BlockWindowHeap, 0, windowSize)

	current := blockHash
	for len(window) < windowSize {
		data, err := wm.ghostdagDataStore.Get(wm.databaseContext, stagingArea, current, false)
		if err != nil {
			return nil, err
		}

		selectedParent := data.SelectedParent()
		if selectedParent == nil {
			// current is the genesis: nothing further to walk.
			break
		}

		// The chain block itself is never a member of its own
		// MergeSetBlues (selected parent is excluded by convention), so
		// it has to be pushed explicitly before the rest of the mergeset.
		window = append(window, selectedParent)
		if len(window) == windowSize {
			break
		}

		for _, blue := range data.MergeSetBlues() {
			window = append(window, blue)
			if len(window) == windowSize {
				break
			}
		}

		current = selectedParent
	}

	for len(window) < windowSize {
		window = append(window, wm.genesisHash)
	}

	return window, nil
}

var _ model.WindowManager = (*windowManager)(nil)
