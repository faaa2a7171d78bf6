// Factory wires every store and process manager into a running Consensus
// handle and owns the management database that tracks which on-disk
// consensus instance is active (§4.9), grounded on
// _examples/original_source/consensus/src/consensus/factory.rs's
// MultiConsensusManagementStore/Factory -- the only source found for this
// component, since the retrieved teacher snapshot predates the
// staging-consensus feature entirely.
package consensus

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	consensusdatabase "github.com/ghostdag-labs/ghostdagd/domain/consensus/database"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/acceptancedatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockheaderstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockrelationstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockstatusstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/managementstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/pruningstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/reachabilitydatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/selectedchainstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/utxodiffstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/virtualstatestore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/blockprocessor"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/blockvalidator"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/coinbasemanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/consensusstatemanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/daascoremanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/dagtopologymanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/dagtraversalmanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/difficultymanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/ghostdagmanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/pastmediantimemanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/pruningpointmanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/reachabilitymanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/taskdependencymanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/transactionvalidator"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/windowmanager"
	"github.com/ghostdag-labs/ghostdagd/domain/dagconfig"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/dbaccess"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/database/ldb"
	"github.com/ghostdag-labs/ghostdagd/infrastructure/logger"
)

var log = logger.BackendLog.Logger(logger.SubsystemConsensus)

const managementDirName = "meta"

// Factory opens and bootstraps Consensus instances against a single data
// directory, consulting the management store to decide which on-disk
// instance is active before opening anything else (§4.9).
type Factory struct {
	dataDir         string
	params          *dagconfig.Params
	managementStore *managementstore.Store
}

// NewFactory opens (or initializes) the management database under dataDir
// and returns a Factory ready to bootstrap or reopen consensus instances.
func NewFactory(dataDir string, params *dagconfig.Params) (*Factory, error) {
	metaDB, err := ldb.NewLevelDB(filepath.Join(dataDir, managementDirName))
	if err != nil {
		return nil, errors.Wrap(err, "opening management database")
	}
	managementStore, err := managementstore.New(metaDB)
	if err != nil {
		return nil, errors.Wrap(err, "initializing management store")
	}
	return &Factory{dataDir: dataDir, params: params, managementStore: managementStore}, nil
}

// NewActiveConsensus opens the currently active consensus instance,
// bootstrapping a brand-new one (genesis block, virtual state pointed at
// genesis, pruning point set to genesis) if none has ever been saved.
func (f *Factory) NewActiveConsensus() (Consensus, error) {
	entry, isNew, err := f.managementStore.ActiveConsensusEntry(nowMilliseconds)
	if err != nil {
		return nil, errors.Wrap(err, "reading active consensus entry")
	}

	built, err := f.open(entry)
	if err != nil {
		return nil, err
	}

	if isNew {
		log.Infof("bootstrapping new active consensus %s", entry.DirectoryName)
		if err := built.bootstrapGenesis(f.params); err != nil {
			return nil, errors.Wrap(err, "bootstrapping genesis")
		}
		if err := f.managementStore.SaveNewActiveConsensus(entry); err != nil {
			return nil, errors.Wrap(err, "saving new active consensus entry")
		}
	}

	return built.consensus, nil
}

// NewStagingConsensus reserves and opens a staging consensus instance
// alongside the active one, for a pruning-proof-driven reinitialization
// (§4.9). This repo has no pruning-point-proof import subsystem (see
// DESIGN.md), so the staging instance is bootstrapped with the same
// genesis-only state a brand-new active consensus gets; a real importer
// would instead populate it from a verified proof before CommitStaging.
func (f *Factory) NewStagingConsensus() (Consensus, error) {
	entry, err := f.managementStore.NewStagingConsensusEntry(nowMilliseconds)
	if err != nil {
		return nil, err
	}

	built, err := f.open(entry)
	if err != nil {
		return nil, err
	}
	if err := built.bootstrapGenesis(f.params); err != nil {
		return nil, errors.Wrap(err, "bootstrapping staging genesis")
	}
	return built.consensus, nil
}

// CommitStagingConsensus promotes the reserved staging instance to active.
func (f *Factory) CommitStagingConsensus() error {
	return f.managementStore.CommitStagingConsensus()
}

// CancelStagingConsensus discards the reserved staging instance's entry
// without promoting it. The on-disk directory itself is left for the
// caller to remove -- this repo carries no archival garbage collector
// (§1 Non-goals).
func (f *Factory) CancelStagingConsensus() error {
	return f.managementStore.CancelStagingConsensus()
}

func nowMilliseconds() int64 {
	return time.Now().UnixMilli()
}

// builtConsensus bundles a freshly wired Consensus handle together with
// the lower-level pieces genesis bootstrap needs direct access to --
// pieces the Consensus interface deliberately doesn't expose to callers.
type builtConsensus struct {
	consensus Consensus

	databaseContext model.DBManager

	blockStore          model.BlockStore
	blockHeaderStore    model.BlockHeaderStore
	blockStatusStore    model.BlockStatusStore
	ghostdagDataStore   model.GHOSTDAGDataStore
	virtualStateStore   model.VirtualStateStore
	selectedChainStore  model.SelectedChainStore
	pruningStore        model.PruningStore
	dagTopologyManager  model.DAGTopologyManager
	ghostdagManager     model.GHOSTDAGManager
	reachabilityManager model.ReachabilityManager
}

func (f *Factory) open(entry managementstore.ConsensusEntry) (*builtConsensus, error) {
	params := f.params

	dbCtx, err := dbaccess.New(dbaccess.ConsensusDataDir(f.dataDir, entry.Key))
	if err != nil {
		return nil, errors.Wrap(err, "opening consensus database")
	}
	databaseContext := consensusdatabase.New(dbCtx)

	blockHeaderStoreInstance := blockheaderstore.New()
	blockStoreInstance := blockstore.New()
	blockStatusStoreInstance := blockstatusstore.New()
	blockRelationStoreInstance := blockrelationstore.New(0)
	ghostdagDataStoreInstance := ghostdagdatastore.New(0)
	reachabilityDataStoreInstance := reachabilitydatastore.New()
	utxoDiffStoreInstance := utxodiffstore.New()
	acceptanceDataStoreInstance := acceptancedatastore.New()
	pruningStoreInstance := pruningstore.New()
	virtualStateStoreInstance := virtualstatestore.New()
	selectedChainStoreInstance := selectedchainstore.New()

	reachabilityManagerInstance := reachabilitymanager.New(
		databaseContext, reachabilityDataStoreInstance, ghostdagDataStoreInstance, blockRelationStoreInstance)
	dagTopologyManagerInstance := dagtopologymanager.New(
		databaseContext, reachabilityManagerInstance, blockRelationStoreInstance, blockStatusStoreInstance)
	ghostdagManagerInstance := ghostdagmanager.New(
		databaseContext, dagTopologyManagerInstance, ghostdagDataStoreInstance, blockHeaderStoreInstance, params.K)
	windowManagerInstance := windowmanager.New(
		databaseContext, ghostdagDataStoreInstance, params.GenesisHash)
	difficultyManagerInstance := difficultymanager.New(
		databaseContext, windowManagerInstance, blockHeaderStoreInstance, ghostdagDataStoreInstance,
		params.PowMax, params.DifficultyAdjustmentWindowSize, params.TargetTimePerBlock.Milliseconds(),
		params.GenesisBlock.Header.Bits)
	pastMedianTimeManagerInstance := pastmediantimemanager.New(
		params.TimestampDeviationTolerance, databaseContext, windowManagerInstance, blockHeaderStoreInstance)
	daaScoreManagerInstance := daascoremanager.New(databaseContext, ghostdagDataStoreInstance, blockHeaderStoreInstance)
	dagTraversalManagerInstance := dagtraversalmanager.New(
		databaseContext, dagTopologyManagerInstance, ghostdagDataStoreInstance)
	coinbaseManagerInstance := coinbasemanager.New(
		databaseContext, params.SubsidyReductionInterval, ghostdagDataStoreInstance, acceptanceDataStoreInstance, blockStoreInstance)
	transactionValidatorInstance := transactionvalidator.New(
		params.BlockCoinbaseMaturity, params.MassParams, params.MaxBlockMass,
		params.MinTransactionVersion, params.MaxTransactionVersion,
		params.MinTransactionInputsOutputs, params.MaxTransactionInputsOutputs,
		params.MaxSignatureScriptLen, params.MaxScriptPublicKeyVersion, params.MinRelayTransactionFee,
		databaseContext, pastMedianTimeManagerInstance, ghostdagDataStoreInstance)

	finalityDepth := uint64(params.FinalityDuration.Milliseconds() / params.TargetTimePerBlock.Milliseconds())

	consensusStateManagerInstance := consensusstatemanager.New(
		params.GenesisHash, finalityDepth,
		databaseContext, ghostdagManagerInstance, dagTopologyManagerInstance, dagTraversalManagerInstance,
		reachabilityManagerInstance, pastMedianTimeManagerInstance, daaScoreManagerInstance, difficultyManagerInstance,
		transactionValidatorInstance, coinbaseManagerInstance,
		blockStoreInstance, blockHeaderStoreInstance, blockStatusStoreInstance, ghostdagDataStoreInstance,
		utxoDiffStoreInstance, acceptanceDataStoreInstance, virtualStateStoreInstance, selectedChainStoreInstance, pruningStoreInstance)

	pruningPointManagerInstance := pruningpointmanager.New(
		databaseContext, consensusStateManagerInstance, ghostdagDataStoreInstance, blockHeaderStoreInstance,
		virtualStateStoreInstance, selectedChainStoreInstance, pruningStoreInstance,
		params.GenesisHash, finalityDepth, params.PruningDepth)

	blockValidatorInstance := blockvalidator.New(
		params.PowMax, false, params.GenesisHash, params.MaxBlockParents, params.MaxBlockMass,
		params.MaxCoinbasePayloadLen, params.MergeSetSizeLimit, params.MassParams,
		databaseContext, difficultyManagerInstance, pastMedianTimeManagerInstance, daaScoreManagerInstance,
		transactionValidatorInstance, coinbaseManagerInstance, ghostdagManagerInstance, dagTopologyManagerInstance,
		blockStoreInstance, blockHeaderStoreInstance, blockStatusStoreInstance, ghostdagDataStoreInstance, pruningStoreInstance)

	taskDependencyManagerInstance := taskdependencymanager.New()

	blockProcessorInstance := blockprocessor.New(
		databaseContext, blockValidatorInstance, consensusStateManagerInstance, pruningPointManagerInstance,
		reachabilityManagerInstance, taskDependencyManagerInstance,
		blockStoreInstance, blockHeaderStoreInstance, blockStatusStoreInstance, ghostdagDataStoreInstance)

	consensusInstance := New(
		databaseContext, blockProcessorInstance, dagTraversalManagerInstance, difficultyManagerInstance,
		ghostdagDataStoreInstance, blockStoreInstance, blockHeaderStoreInstance, blockStatusStoreInstance,
		virtualStateStoreInstance, selectedChainStoreInstance)

	return &builtConsensus{
		consensus:           consensusInstance,
		databaseContext:     databaseContext,
		blockStore:          blockStoreInstance,
		blockHeaderStore:    blockHeaderStoreInstance,
		blockStatusStore:    blockStatusStoreInstance,
		ghostdagDataStore:   ghostdagDataStoreInstance,
		virtualStateStore:   virtualStateStoreInstance,
		selectedChainStore:  selectedChainStoreInstance,
		pruningStore:        pruningStoreInstance,
		dagTopologyManager:  dagTopologyManagerInstance,
		ghostdagManager:     ghostdagManagerInstance,
		reachabilityManager: reachabilityManagerInstance,
	}, nil
}

// bootstrapGenesis wires the genesis block directly into the stores
// rather than running it through the pipeline's three stages: genesis has
// no parents, and several of blockvalidator's checks (e.g. the pruning
// point must lie in some parent's past) are unsatisfiable for a
// zero-parent block by construction. GHOSTDAG and reachability both
// special-case a zero-parent block into trivial data
// (ghostdagmanager.GHOSTDAG, reachabilitymanager.AddBlock), so this
// method still drives those through their real code paths; only the
// pipeline's validation stages are skipped.
func (b *builtConsensus) bootstrapGenesis(params *dagconfig.Params) error {
	stagingArea := model.NewStagingArea()
	genesisHash := params.GenesisHash
	genesisBlock := params.GenesisBlock

	b.blockHeaderStore.Stage(stagingArea, genesisHash, genesisBlock.Header)
	b.blockStore.Stage(stagingArea, genesisHash, genesisBlock)

	if err := b.dagTopologyManager.SetParents(stagingArea, genesisHash, nil); err != nil {
		return err
	}
	if err := b.ghostdagManager.GHOSTDAG(stagingArea, genesisHash); err != nil {
		return err
	}
	if err := b.reachabilityManager.AddBlock(stagingArea, genesisHash); err != nil {
		return err
	}

	ghostdagData, err := b.ghostdagManager.BlockData(stagingArea, genesisHash)
	if err != nil {
		return err
	}

	b.blockStatusStore.Stage(stagingArea, genesisHash, externalapi.StatusValid)

	b.virtualStateStore.Stage(stagingArea, &externalapi.VirtualState{
		Parents:                 []*externalapi.DomainHash{},
		SelectedParent:          genesisHash,
		GhostdagData:            ghostdagData,
		DAAScore:                genesisBlock.Header.DAAScore,
		Bits:                    genesisBlock.Header.Bits,
		PastMedianTime:          genesisBlock.Header.TimeInMilliseconds,
		UTXODiffFromSelectedTip: externalapi.NewUTXODiff(),
		AcceptedIDMerkleRoot:    genesisBlock.Header.AcceptedIDMerkleRoot,
	})

	if err := b.selectedChainStore.Stage(stagingArea, &externalapi.ChainPath{
		Added: []*externalapi.ChainBlock{{Hash: genesisHash}},
	}); err != nil {
		return err
	}

	b.pruningStore.StagePruningPoint(stagingArea, genesisHash)
	b.pruningStore.AppendPastPruningPoint(stagingArea, genesisHash)

	dbTx, err := b.databaseContext.Begin()
	if err != nil {
		return err
	}
	defer dbTx.RollbackUnlessClosed()

	if err := stagingArea.Commit(dbTx); err != nil {
		return err
	}
	return dbTx.Commit()
}
