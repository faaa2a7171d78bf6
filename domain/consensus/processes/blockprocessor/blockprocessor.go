// Package blockprocessor wires the header, body and virtual-state
// validation stages into the three-stage pipeline the consensus core runs
// every submitted block through (§2, §4.2-§4.4). No literal teacher source
// survives for this orchestration layer -- the retrieved snapshot's own
// blockprocessor.go is a pair of stub methods that return nil -- so the
// call sequencing here is grounded directly in spec.md's own step-by-step
// description of each stage, gluing together blockvalidator,
// consensusstatemanager, pruningpointmanager, reachabilitymanager and
// taskdependencymanager, every one of which already implements its own
// piece (§9: "stores hold shared immutable values ... every processor
// borrows shared handles to stores and services").
package blockprocessor

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type blockProcessor struct {
	databaseContext model.DBManager

	blockValidator         model.BlockValidator
	consensusStateManager  model.ConsensusStateManager
	pruningPointManager    model.PruningPointManager
	reachabilityManager    model.ReachabilityManager
	taskDependencyManager  model.TaskDependencyManager

	blockStore        model.BlockStore
	blockHeaderStore  model.BlockHeaderStore
	blockStatusStore  model.BlockStatusStore
	ghostdagDataStore model.GHOSTDAGDataStore
}

// New instantiates a new BlockProcessor.
func New(
	databaseContext model.DBManager,
	blockValidator model.BlockValidator,
	consensusStateManager model.ConsensusStateManager,
	pruningPointManager model.PruningPointManager,
	reachabilityManager model.ReachabilityManager,
	taskDependencyManager model.TaskDependencyManager,
	blockStore model.BlockStore,
	blockHeaderStore model.BlockHeaderStore,
	blockStatusStore model.BlockStatusStore,
	ghostdagDataStore model.GHOSTDAGDataStore) model.BlockProcessor {

	return &blockProcessor{
		databaseContext:       databaseContext,
		blockValidator:        blockValidator,
		consensusStateManager: consensusStateManager,
		pruningPointManager:   pruningPointManager,
		reachabilityManager:   reachabilityManager,
		taskDependencyManager: taskDependencyManager,
		blockStore:            blockStore,
		blockHeaderStore:      blockHeaderStore,
		blockStatusStore:      blockStatusStore,
		ghostdagDataStore:     ghostdagDataStore,
	}
}

// commit opens a transaction, flushes stagingArea into it, and commits.
func (bp *blockProcessor) commit(stagingArea *model.StagingArea) error {
	dbTx, err := bp.databaseContext.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	if err := stagingArea.Commit(dbTx); err != nil {
		return err
	}
	return dbTx.Commit()
}

// statusOf reads blockHash's persisted status through a fresh, write-free
// staging area -- used once a concurrent submission's processing has
// already ended and this call only needs to report its outcome.
func (bp *blockProcessor) statusOf(blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error) {
	stagingArea := model.NewStagingArea()
	return bp.blockStatusStore.Get(bp.databaseContext, stagingArea, blockHash)
}

var _ model.BlockProcessor = (*blockProcessor)(nil)
