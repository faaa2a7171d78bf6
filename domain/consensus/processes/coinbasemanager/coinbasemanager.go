// Package coinbasemanager builds the expected coinbase transaction for a
// block: one reward output per blue mergeset member that earned a reward
// (subsidy plus the fees of its own accepted transactions), plus the
// block's own subsidy-halving schedule (§4.3, §C.1). Grounded on the
// teacher's coinbasemanager.coinbaseManager (full file retrieved),
// adapted from its in-progress hashserialization/subnetworks imports to
// this repo's consensushashing/externalapi packages and from per-block
// `Get(ctx, hash)` calls to the StagingArea-threaded store signatures.
package coinbasemanager

import (
	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

const scriptPublicKeyMaxLength = 150

const baseSubsidy = 5_000_000_000

type coinbaseManager struct {
	subsidyReductionInterval uint64

	databaseContext     model.DBReader
	ghostdagDataStore    model.GHOSTDAGDataStore
	acceptanceDataStore  model.AcceptanceDataStore
	blockStore           model.BlockStore
}

// New instantiates a new CoinbaseManager.
func New(
	databaseContext model.DBReader,
	subsidyReductionInterval uint64,
	ghostdagDataStore model.GHOSTDAGDataStore,
	acceptanceDataStore model.AcceptanceDataStore,
	blockStore model.BlockStore) model.CoinbaseManager {

	return &coinbaseManager{
		subsidyReductionInterval: subsidyReductionInterval,
		databaseContext:          databaseContext,
		ghostdagDataStore:        ghostdagDataStore,
		acceptanceDataStore:      acceptanceDataStore,
		blockStore:               blockStore,
	}
}

// ExpectedCoinbaseTransaction builds the coinbase transaction blockHash's
// body must contain: one output per blue mergeset member with a nonzero
// reward, plus a payload recording blueScore and the caller-supplied
// coinbase data (§4.3).
func (c *coinbaseManager) ExpectedCoinbaseTransaction(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, coinbaseData *externalapi.DomainCoinbaseData) (*externalapi.DomainTransaction, error) {
	err := c.checkScriptPublicKey(coinbaseData.ScriptPublicKey)
	if err != nil {
		return nil, err
	}

	ghostdagData, err := c.ghostdagDataStore.Get(c.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return nil, err
	}

	acceptanceData, err := c.acceptanceDataStore.Get(c.databaseContext, stagingArea, blockHash)
	if err != nil {
		return nil, err
	}

	acceptanceDataByBlock := make(map[externalapi.DomainHash]*externalapi.BlockAcceptanceData, len(acceptanceData))
	for _, blockAcceptanceData := range acceptanceData {
		acceptanceDataByBlock[*blockAcceptanceData.BlockHash] = blockAcceptanceData
	}

	txOuts := make([]*externalapi.DomainTransactionOutput, 0, len(ghostdagData.MergeSetBlues()))
	for _, blue := range ghostdagData.MergeSetBlues() {
		blockAcceptanceData, ok := acceptanceDataByBlock[*blue]
		if !ok {
			return nil, errors.Errorf("coinbasemanager: no acceptance data for blue block %s", blue)
		}

		txOut, hasReward, err := c.coinbaseOutputForBlueBlock(stagingArea, blue, blockAcceptanceData)
		if err != nil {
			return nil, err
		}
		if hasReward {
			txOuts = append(txOuts, txOut)
		}
	}

	subsidy := c.CalcBlockSubsidy(ghostdagData.BlueScore())
	payload, err := serializeCoinbasePayload(ghostdagData.BlueScore(), subsidy, coinbaseData)
	if err != nil {
		return nil, err
	}

	return &externalapi.DomainTransaction{
		Version:      0,
		Inputs:       []*externalapi.DomainTransactionInput{},
		Outputs:      txOuts,
		LockTime:     0,
		SubnetworkID: externalapi.SubnetworkIDCoinbase,
		Gas:          0,
		Payload:      payload,
	}, nil
}

func (c *coinbaseManager) coinbaseOutputForBlueBlock(stagingArea *model.StagingArea, blueBlock *externalapi.DomainHash, blockAcceptanceData *externalapi.BlockAcceptanceData) (*externalapi.DomainTransactionOutput, bool, error) {
	block, err := c.blockStore.Block(c.databaseContext, stagingArea, blueBlock)
	if err != nil {
		return nil, false, err
	}
	if len(block.Transactions) == 0 || !block.Transactions[0].IsCoinbase() {
		return nil, false, errors.Errorf("coinbasemanager: block %s has no coinbase transaction", blueBlock)
	}
	blueBlockCoinbase := block.Transactions[0]

	payload, err := deserializeCoinbasePayload(blueBlockCoinbase)
	if err != nil {
		return nil, false, err
	}
	coinbaseData := payload.coinbaseData

	totalFees := uint64(0)
	for _, accepted := range blockAcceptanceData.AcceptedTransactions {
		totalFees += c.acceptedTransactionFee(block, accepted)
	}

	subsidy := c.CalcBlockSubsidy(c.blueScoreOf(stagingArea, blueBlock))
	totalReward := subsidy + totalFees
	if totalReward == 0 {
		return nil, false, nil
	}

	return &externalapi.DomainTransactionOutput{
		Value:           totalReward,
		ScriptPublicKey: coinbaseData.ScriptPublicKey,
	}, true, nil
}

func (c *coinbaseManager) acceptedTransactionFee(block *externalapi.DomainBlock, accepted *externalapi.AcceptedTransaction) uint64 {
	if int(accepted.IndexWithinBlock) >= len(block.Transactions) {
		return 0
	}
	return block.Transactions[accepted.IndexWithinBlock].Fee
}

func (c *coinbaseManager) blueScoreOf(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) uint64 {
	data, err := c.ghostdagDataStore.Get(c.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return 0
	}
	return data.BlueScore()
}

// CalcBlockSubsidy returns the subsidy a block at blueScore should carry:
// baseSubsidy halved every SubsidyReductionInterval blue-score units.
func (c *coinbaseManager) CalcBlockSubsidy(blueScore uint64) uint64 {
	if c.subsidyReductionInterval == 0 {
		return baseSubsidy
	}
	return baseSubsidy >> uint(blueScore/c.subsidyReductionInterval)
}

// ExtractCoinbaseBlueScoreAndSubsidy reads back the blue score and subsidy
// a coinbase transaction's payload declares.
func (c *coinbaseManager) ExtractCoinbaseBlueScoreAndSubsidy(coinbaseTransaction *externalapi.DomainTransaction) (uint64, uint64, error) {
	payload, err := deserializeCoinbasePayload(coinbaseTransaction)
	if err != nil {
		return 0, 0, err
	}
	return payload.blueScore, payload.subsidy, nil
}

// ExtractCoinbaseData reads back the caller-supplied part of a coinbase's
// payload (script public key and extra data).
func (c *coinbaseManager) ExtractCoinbaseData(coinbaseTransaction *externalapi.DomainTransaction) (*externalapi.DomainCoinbaseData, error) {
	payload, err := deserializeCoinbasePayload(coinbaseTransaction)
	if err != nil {
		return nil, err
	}
	return payload.coinbaseData, nil
}

func (c *coinbaseManager) checkScriptPublicKey(scriptPublicKey *externalapi.ScriptPublicKey) error {
	if len(scriptPublicKey.Script) > scriptPublicKeyMaxLength {
		return errors.Errorf("coinbase's payload script public key is longer than the max allowed length of %d", scriptPublicKeyMaxLength)
	}
	return nil
}

var _ model.CoinbaseManager = (*coinbaseManager)(nil)
