// Package consensusstatemanager runs the virtual-state processor (§4.4):
// it picks the candidate selected tip among the DAG's disqualification-free
// tips, walks the reorg path against the current virtual, resolves every
// joining chain block's mergeset transactions against its past UTXO set,
// and folds the result into the single mutable virtual cell. Grounded on
// the teacher's consensusstatemanager package -- struct shape and
// verify_and_build_utxo.go for the per-block UTXO/acceptance-data
// algorithm, finality.go for the finality-point check (adapted to this
// repo's ReachabilityManager, which has no IsInSelectedParentChainOf) --
// enriched by the already-built dagtraversalmanager, utils/utxo diff
// algebra and utils/merkle for the accepted-ID merkle root.
package consensusstatemanager

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

type consensusStateManager struct {
	genesisHash   *externalapi.DomainHash
	finalityDepth uint64

	databaseContext       model.DBReader
	ghostdagManager       model.GHOSTDAGManager
	dagTopologyManager    model.DAGTopologyManager
	dagTraversalManager   model.DAGTraversalManager
	reachabilityManager   model.ReachabilityManager
	pastMedianTimeManager model.PastMedianTimeManager
	daaScoreManager       model.DAAScoreManager
	difficultyManager     model.DifficultyManager
	transactionValidator  model.TransactionValidator
	coinbaseManager       model.CoinbaseManager

	blockStore          model.BlockStore
	blockHeaderStore    model.BlockHeaderStore
	blockStatusStore    model.BlockStatusStore
	ghostdagDataStore   model.GHOSTDAGDataStore
	utxoDiffStore       model.UTXODiffStore
	acceptanceDataStore model.AcceptanceDataStore
	virtualStateStore   model.VirtualStateStore
	selectedChainStore  model.SelectedChainStore
	pruningStore        model.PruningStore
}

// New instantiates a new ConsensusStateManager.
func New(
	genesisHash *externalapi.DomainHash,
	finalityDepth uint64,
	databaseContext model.DBReader,
	ghostdagManager model.GHOSTDAGManager,
	dagTopologyManager model.DAGTopologyManager,
	dagTraversalManager model.DAGTraversalManager,
	reachabilityManager model.ReachabilityManager,
	pastMedianTimeManager model.PastMedianTimeManager,
	daaScoreManager model.DAAScoreManager,
	difficultyManager model.DifficultyManager,
	transactionValidator model.TransactionValidator,
	coinbaseManager model.CoinbaseManager,
	blockStore model.BlockStore,
	blockHeaderStore model.BlockHeaderStore,
	blockStatusStore model.BlockStatusStore,
	ghostdagDataStore model.GHOSTDAGDataStore,
	utxoDiffStore model.UTXODiffStore,
	acceptanceDataStore model.AcceptanceDataStore,
	virtualStateStore model.VirtualStateStore,
	selectedChainStore model.SelectedChainStore,
	pruningStore model.PruningStore) model.ConsensusStateManager {

	return &consensusStateManager{
		genesisHash:           genesisHash,
		finalityDepth:         finalityDepth,
		databaseContext:       databaseContext,
		ghostdagManager:       ghostdagManager,
		dagTopologyManager:    dagTopologyManager,
		dagTraversalManager:   dagTraversalManager,
		reachabilityManager:   reachabilityManager,
		pastMedianTimeManager: pastMedianTimeManager,
		daaScoreManager:       daaScoreManager,
		difficultyManager:     difficultyManager,
		transactionValidator:  transactionValidator,
		coinbaseManager:       coinbaseManager,
		blockStore:            blockStore,
		blockHeaderStore:      blockHeaderStore,
		blockStatusStore:      blockStatusStore,
		ghostdagDataStore:     ghostdagDataStore,
		utxoDiffStore:         utxoDiffStore,
		acceptanceDataStore:   acceptanceDataStore,
		virtualStateStore:     virtualStateStore,
		selectedChainStore:    selectedChainStore,
		pruningStore:          pruningStore,
	}
}

var _ model.ConsensusStateManager = (*consensusStateManager)(nil)
