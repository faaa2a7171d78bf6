// Package difficultymanager derives a block's required difficulty bits from
// a sampled window of past targets and timestamps (§4.7). Grounded on the
// teacher's blockWindow.averageTarget/minMaxTimestamps (blockdag/blockwindow.go)
// and difficultymanager.EstimateNetworkHashesPerSecond (hashrate.go) for the
// blue-work-delta idiom; the retarget formula itself (the body of the
// teacher's unretrieved requiredDifficulty) is reconstructed from spec.md
// §4.7's description -- scale the window's average target by how far the
// window's actual timespan deviates from its expected timespan.
package difficultymanager

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/workcalc"
)

type difficultyManager struct {
	databaseContext model.DBReader

	windowManager    model.WindowManager
	blockHeaderStore model.BlockHeaderStore
	ghostdagStore    model.GHOSTDAGDataStore

	powMax                         *big.Int
	difficultyAdjustmentWindowSize int
	targetTimePerBlockMilliseconds int64
	genesisBits                    uint32
}

// New instantiates a new DifficultyManager.
func New(
	databaseContext model.DBReader,
	windowManager model.WindowManager,
	blockHeaderStore model.BlockHeaderStore,
	ghostdagStore model.GHOSTDAGDataStore,
	powMax *big.Int,
	difficultyAdjustmentWindowSize int,
	targetTimePerBlockMilliseconds int64,
	genesisBits uint32) model.DifficultyManager {

	return &difficultyManager{
		databaseContext:                databaseContext,
		windowManager:                  windowManager,
		blockHeaderStore:               blockHeaderStore,
		ghostdagStore:                  ghostdagStore,
		powMax:                         powMax,
		difficultyAdjustmentWindowSize: difficultyAdjustmentWindowSize,
		targetTimePerBlockMilliseconds: targetTimePerBlockMilliseconds,
		genesisBits:                    genesisBits,
	}
}

// RequiredDifficulty returns the difficulty bits blockHash itself must
// carry, retargeted from the window of blocks in its past; genesis gets
// genesisBits.
func (dm *difficultyManager) RequiredDifficulty(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) (uint32, error) {
	ghostdagData, err := dm.ghostdagStore.Get(dm.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return 0, err
	}
	if ghostdagData.SelectedParent() == nil {
		// blockHash is the genesis; nothing to retarget against yet.
		return dm.genesisBits, nil
	}

	window, err := dm.windowManager.BlockWindow(stagingArea, blockHash, dm.difficultyAdjustmentWindowSize)
	if err != nil {
		return 0, err
	}
	if len(window) == 0 {
		return dm.genesisBits, nil
	}

	timestamps := make([]int64, len(window))
	averageTarget := big.NewInt(0)
	for i, hash := range window {
		header, err := dm.blockHeaderStore.BlockHeader(dm.databaseContext, stagingArea, hash)
		if err != nil {
			return 0, err
		}
		timestamps[i] = header.TimeInMilliseconds
		averageTarget.Add(averageTarget, workcalc.TargetFromBits(header.Bits))
	}
	averageTarget.Div(averageTarget, big.NewInt(int64(len(window))))

	minTimestamp, maxTimestamp := timestamps[0], timestamps[0]
	for _, timestamp := range timestamps[1:] {
		if timestamp < minTimestamp {
			minTimestamp = timestamp
		}
		if timestamp > maxTimestamp {
			maxTimestamp = timestamp
		}
	}

	actualTimespan := maxTimestamp - minTimestamp
	expectedTimespan := dm.targetTimePerBlockMilliseconds * int64(len(window))
	if expectedTimespan <= 0 {
		return 0, errors.New("difficultymanager: non-positive expected timespan")
	}
	if actualTimespan <= 0 {
		actualTimespan = 1
	}

	newTarget := new(big.Int).Mul(averageTarget, big.NewInt(actualTimespan))
	newTarget.Div(newTarget, big.NewInt(expectedTimespan))

	if newTarget.Sign() <= 0 {
		newTarget = big.NewInt(1)
	}
	if newTarget.Cmp(dm.powMax) > 0 {
		newTarget = dm.powMax
	}

	return workcalc.BitsFromTarget(newTarget), nil
}

// EstimateNetworkHashesPerSecond estimates the network's current hashrate
// from the total proof-of-work a windowSize-block sample required divided
// by the time it took to mine, the same average-work-over-elapsed-time
// idiom RequiredDifficulty already samples its window for (§6:
// estimate_network_hashes_per_second).
func (dm *difficultyManager) EstimateNetworkHashesPerSecond(stagingArea *model.StagingArea, startHash *externalapi.DomainHash, windowSize int) (uint64, error) {
	window, err := dm.windowManager.BlockWindow(stagingArea, startHash, windowSize)
	if err != nil {
		return 0, err
	}
	if len(window) < 2 {
		return 0, nil
	}

	totalWork := big.NewInt(0)
	timestamps := make([]int64, len(window))
	for i, hash := range window {
		header, err := dm.blockHeaderStore.BlockHeader(dm.databaseContext, stagingArea, hash)
		if err != nil {
			return 0, err
		}
		timestamps[i] = header.TimeInMilliseconds
		totalWork.Add(totalWork, workcalc.CalcWork(header.Bits).BigInt())
	}

	minTimestamp, maxTimestamp := timestamps[0], timestamps[0]
	for _, timestamp := range timestamps[1:] {
		if timestamp < minTimestamp {
			minTimestamp = timestamp
		}
		if timestamp > maxTimestamp {
			maxTimestamp = timestamp
		}
	}
	elapsedSeconds := (maxTimestamp - minTimestamp) / 1000
	if elapsedSeconds <= 0 {
		return 0, nil
	}

	hashesPerSecond := new(big.Int).Div(totalWork, big.NewInt(elapsedSeconds))
	if !hashesPerSecond.IsUint64() {
		return ^uint64(0), nil
	}
	return hashesPerSecond.Uint64(), nil
}

var _ model.DifficultyManager = (*difficultyManager)(nil)
