// Package blockvalidator runs the header and body validation stages a
// block passes through the pipeline (§4.2, §4.3): header-in-isolation and
// header-in-context on header arrival, body-in-isolation and
// body-in-context once its transactions attach, and the combined
// pruning-point/proof-of-work/difficulty check that gates GHOSTDAG and
// topology wiring. Grounded on the teacher's blockvalidator package
// (struct shape, block_header_in_isolation.go, block_header_in_context.go,
// proof_of_work.go); body-in-isolation/body-in-context have no surviving
// teacher source (only a context test remains in the pack) and are built
// from spec.md §4.3's description instead, wired to the merkle,
// coinbasemanager, transactionvalidator and mass packages.
package blockvalidator

import (
	"math/big"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/mass"
)

type blockValidator struct {
	powMax                   *big.Int
	skipPoW                  bool
	genesisHash              *externalapi.DomainHash
	maxBlockParents          int
	maxBlockMass             uint64
	maxCoinbasePayloadLen    int
	mergeSetSizeLimit        uint64
	massParams               *mass.Params

	databaseContext       model.DBReader
	difficultyManager     model.DifficultyManager
	pastMedianTimeManager model.PastMedianTimeManager
	daaScoreManager       model.DAAScoreManager
	transactionValidator  model.TransactionValidator
	coinbaseManager       model.CoinbaseManager
	ghostdagManager       model.GHOSTDAGManager
	dagTopologyManager    model.DAGTopologyManager

	blockStore        model.BlockStore
	blockHeaderStore  model.BlockHeaderStore
	blockStatusStore  model.BlockStatusStore
	ghostdagDataStore model.GHOSTDAGDataStore
	pruningStore      model.PruningStore
}

// New instantiates a new BlockValidator.
func New(
	powMax *big.Int,
	skipPoW bool,
	genesisHash *externalapi.DomainHash,
	maxBlockParents int,
	maxBlockMass uint64,
	maxCoinbasePayloadLen int,
	mergeSetSizeLimit uint64,
	massParams *mass.Params,
	databaseContext model.DBReader,
	difficultyManager model.DifficultyManager,
	pastMedianTimeManager model.PastMedianTimeManager,
	daaScoreManager model.DAAScoreManager,
	transactionValidator model.TransactionValidator,
	coinbaseManager model.CoinbaseManager,
	ghostdagManager model.GHOSTDAGManager,
	dagTopologyManager model.DAGTopologyManager,
	blockStore model.BlockStore,
	blockHeaderStore model.BlockHeaderStore,
	blockStatusStore model.BlockStatusStore,
	ghostdagDataStore model.GHOSTDAGDataStore,
	pruningStore model.PruningStore) model.BlockValidator {

	return &blockValidator{
		powMax:                powMax,
		skipPoW:               skipPoW,
		genesisHash:           genesisHash,
		maxBlockParents:       maxBlockParents,
		maxBlockMass:          maxBlockMass,
		maxCoinbasePayloadLen: maxCoinbasePayloadLen,
		mergeSetSizeLimit:     mergeSetSizeLimit,
		massParams:            massParams,
		databaseContext:       databaseContext,
		difficultyManager:     difficultyManager,
		pastMedianTimeManager: pastMedianTimeManager,
		daaScoreManager:       daaScoreManager,
		transactionValidator:  transactionValidator,
		coinbaseManager:       coinbaseManager,
		ghostdagManager:       ghostdagManager,
		dagTopologyManager:    dagTopologyManager,
		blockStore:            blockStore,
		blockHeaderStore:      blockHeaderStore,
		blockStatusStore:      blockStatusStore,
		ghostdagDataStore:     ghostdagDataStore,
		pruningStore:          pruningStore,
	}
}

var _ model.BlockValidator = (*blockValidator)(nil)
