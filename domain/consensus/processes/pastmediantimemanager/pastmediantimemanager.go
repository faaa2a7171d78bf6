// Package pastmediantimemanager resolves a block's past median time, the
// floor its own timestamp must clear (§4.7). Grounded on the teacher's
// pastmediantimemanager.PastMedianTime, adapted to the store-backed
// WindowManager instead of DAGTraversalManager.BlueWindow.
package pastmediantimemanager

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type pastMedianTimeManager struct {
	timestampDeviationTolerance int

	databaseContext model.DBReader

	windowManager    model.WindowManager
	blockHeaderStore model.BlockHeaderStore
}

// New instantiates a new PastMedianTimeManager.
func New(
	timestampDeviationTolerance int,
	databaseContext model.DBReader,
	windowManager model.WindowManager,
	blockHeaderStore model.BlockHeaderStore) model.PastMedianTimeManager {

	return &pastMedianTimeManager{
		timestampDeviationTolerance: timestampDeviationTolerance,
		databaseContext:             databaseContext,
		windowManager:               windowManager,
		blockHeaderStore:            blockHeaderStore,
	}
}

// PastMedianTime returns the past median time for blockHash.
func (pmtm *pastMedianTimeManager) PastMedianTime(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (int64, error) {
	windowSize := 2*pmtm.timestampDeviationTolerance - 1
	window, err := pmtm.windowManager.BlockWindow(stagingArea, blockHash, windowSize)
	if err != nil {
		return 0, err
	}

	return pmtm.windowMedianTimestamp(stagingArea, window)
}

func (pmtm *pastMedianTimeManager) windowMedianTimestamp(stagingArea *model.StagingArea, window model.BlockWindowHeap) (int64, error) {
	if len(window) == 0 {
		return 0, errors.New("cannot calculate median timestamp for an empty block window")
	}

	timestamps := make([]int64, len(window))
	for i, blockHash := range window {
		header, err := pmtm.blockHeaderStore.BlockHeader(pmtm.databaseContext, stagingArea, blockHash)
		if err != nil {
			return 0, err
		}
		timestamps[i] = header.TimeInMilliseconds
	}

	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i] < timestamps[j]
	})

	return timestamps[len(timestamps)/2], nil
}

var _ model.PastMedianTimeManager = (*pastMedianTimeManager)(nil)
