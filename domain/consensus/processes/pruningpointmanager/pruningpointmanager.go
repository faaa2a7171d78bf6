// Package pruningpointmanager resolves and advances the pruning point
// (§4.6): it tracks a candidate chain block at least PruningDepth below
// the virtual, promotes it once its finality score has moved past the
// current pruning point's, and checks a declared pruning point's UTXO
// set against its header's UTXOCommitment. Grounded on the teacher's
// pruningmanager.go (candidate/finality-score tracking,
// validateUTXOSetFitsCommitment) and consensusstatemanager's
// update_pruning_utxo_set.go for the MuHash commitment comparison; the
// teacher's deletePastBlocks/archival-node GC and pruning-point-proof
// import machinery are out of scope here since model.PruningPointManager
// names only the three methods below (see DESIGN.md).
package pruningpointmanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type pruningPointManager struct {
	databaseContext model.DBReader

	consensusStateManager model.ConsensusStateManager

	ghostdagDataStore  model.GHOSTDAGDataStore
	blockHeaderStore   model.BlockHeaderStore
	virtualStateStore  model.VirtualStateStore
	selectedChainStore model.SelectedChainStore
	pruningStore       model.PruningStore

	genesisHash      *externalapi.DomainHash
	finalityInterval uint64
	pruningDepth     uint64
}

// New instantiates a new PruningPointManager.
func New(
	databaseContext model.DBReader,
	consensusStateManager model.ConsensusStateManager,
	ghostdagDataStore model.GHOSTDAGDataStore,
	blockHeaderStore model.BlockHeaderStore,
	virtualStateStore model.VirtualStateStore,
	selectedChainStore model.SelectedChainStore,
	pruningStore model.PruningStore,
	genesisHash *externalapi.DomainHash,
	finalityInterval uint64,
	pruningDepth uint64) model.PruningPointManager {

	return &pruningPointManager{
		databaseContext:        databaseContext,
		consensusStateManager:  consensusStateManager,
		ghostdagDataStore:      ghostdagDataStore,
		blockHeaderStore:       blockHeaderStore,
		virtualStateStore:      virtualStateStore,
		selectedChainStore:     selectedChainStore,
		pruningStore:           pruningStore,
		genesisHash:            genesisHash,
		finalityInterval:       finalityInterval,
		pruningDepth:           pruningDepth,
	}
}

// finalityScore is the number of whole finality intervals between genesis
// and the given blue score.
func (ppm *pruningPointManager) finalityScore(blueScore uint64) uint64 {
	return blueScore / ppm.finalityInterval
}

var _ model.PruningPointManager = (*pruningPointManager)(nil)
