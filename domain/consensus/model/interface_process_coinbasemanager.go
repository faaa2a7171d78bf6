package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// CoinbaseManager builds the expected coinbase transaction for a block
// (subsidy plus per-blue-block payouts for the mergeset's blue set) and
// validates a candidate coinbase against it (§4.3, §C.1).
type CoinbaseManager interface {
	ExpectedCoinbaseTransaction(stagingArea *StagingArea, blockHash *externalapi.DomainHash, coinbaseData *externalapi.DomainCoinbaseData) (*externalapi.DomainTransaction, error)
	CalcBlockSubsidy(blueScore uint64) uint64

	// ExtractCoinbaseBlueScoreAndSubsidy reads back the blue score and
	// subsidy a coinbase transaction's payload declares, for the body
	// processor's shape check against the block's own header (§4.3).
	ExtractCoinbaseBlueScoreAndSubsidy(coinbaseTransaction *externalapi.DomainTransaction) (blueScore, subsidy uint64, err error)

	// ExtractCoinbaseData reads back the caller-supplied part of a
	// coinbase's payload (script public key, extra data), so the virtual
	// processor can rebuild the expected coinbase for comparison (§4.4).
	ExtractCoinbaseData(coinbaseTransaction *externalapi.DomainTransaction) (*externalapi.DomainCoinbaseData, error)
}
