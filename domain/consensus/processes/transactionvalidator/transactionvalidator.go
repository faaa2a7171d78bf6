// Package transactionvalidator validates a single transaction both in
// isolation (no context needed) and in context (UTXO resolution, maturity,
// lock-time, mass, script verification) (§4.3, §4.4). Grounded on the
// teacher's transactionvalidator.transactionValidator (struct/New shape)
// and the legacy blockdag.CheckTransactionSanity/
// CheckTransactionInputsAndCalulateFee (blockdag/validate.go) for the
// individual rule bodies, translated to the externalapi/StagingArea shape.
package transactionvalidator

import (
	"math"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/consensushashing"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/mass"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/sign"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/txscript"
)

const sigCacheSize = 10_000

// maxSompi bounds a single amount and the sum of all amounts in a
// transaction, mirroring the teacher's util.MaxSatoshi sanity bound.
const maxSompi = 21_000_000 * 100_000_000

type transactionValidator struct {
	blockCoinbaseMaturity    uint64
	massParams               *mass.Params
	maxBlockMass             uint64
	minTransactionVersion    uint16
	maxTransactionVersion    uint16
	minInputsOutputs         int
	maxInputsOutputs         int
	maxSignatureScriptLen    int
	maxScriptPublicKeyVersion uint16
	minRelayTransactionFee   uint64

	databaseContext       model.DBReader
	pastMedianTimeManager model.PastMedianTimeManager
	ghostdagDataStore     model.GHOSTDAGDataStore

	sigCache *sign.SigCache
}

// New instantiates a new TransactionValidator.
func New(
	blockCoinbaseMaturity uint64,
	massParams *mass.Params,
	maxBlockMass uint64,
	minTransactionVersion, maxTransactionVersion uint16,
	minInputsOutputs, maxInputsOutputs int,
	maxSignatureScriptLen int,
	maxScriptPublicKeyVersion uint16,
	minRelayTransactionFee uint64,
	databaseContext model.DBReader,
	pastMedianTimeManager model.PastMedianTimeManager,
	ghostdagDataStore model.GHOSTDAGDataStore) model.TransactionValidator {

	return &transactionValidator{
		blockCoinbaseMaturity:     blockCoinbaseMaturity,
		massParams:                massParams,
		maxBlockMass:              maxBlockMass,
		minTransactionVersion:     minTransactionVersion,
		maxTransactionVersion:     maxTransactionVersion,
		minInputsOutputs:          minInputsOutputs,
		maxInputsOutputs:          maxInputsOutputs,
		maxSignatureScriptLen:     maxSignatureScriptLen,
		maxScriptPublicKeyVersion: maxScriptPublicKeyVersion,
		minRelayTransactionFee:    minRelayTransactionFee,
		databaseContext:           databaseContext,
		pastMedianTimeManager:     pastMedianTimeManager,
		ghostdagDataStore:         ghostdagDataStore,
		sigCache:                  sign.NewSigCache(sigCacheSize),
	}
}

// ValidateTransactionInIsolation performs the context-free checks of §4.3's
// "per-tx isolation" bullet: version range, input/output count bounds,
// signature-script length, output script version, and dust.
func (tv *transactionValidator) ValidateTransactionInIsolation(tx *externalapi.DomainTransaction) error {
	isCoinbase := tx.IsCoinbase()

	if !isCoinbase && len(tx.Inputs) == 0 {
		return ruleerrors.NewErrNoTxInputs()
	}

	if tx.Version < tv.minTransactionVersion || tx.Version > tv.maxTransactionVersion {
		return ruleerrors.NewErrInvalidVersion()
	}

	if !isCoinbase {
		if len(tx.Inputs) < tv.minInputsOutputs || len(tx.Inputs) > tv.maxInputsOutputs {
			return ruleerrors.NewErrInvalidTransactionsInIsolation("input count out of bounds")
		}
	}
	if len(tx.Outputs) < tv.minInputsOutputs || len(tx.Outputs) > tv.maxInputsOutputs {
		return ruleerrors.NewErrInvalidTransactionsInIsolation("output count out of bounds")
	}

	existingOutpoints := make(map[externalapi.DomainOutpoint]struct{}, len(tx.Inputs))
	for _, in := range tx.Inputs {
		if len(in.SignatureScript) > tv.maxSignatureScriptLen {
			return ruleerrors.NewErrInvalidTransactionsInIsolation("signature script too long")
		}
		if !isCoinbase && isNullOutpoint(&in.PreviousOutpoint) {
			return ruleerrors.NewErrBadTxInput()
		}
		if _, exists := existingOutpoints[in.PreviousOutpoint]; exists {
			return ruleerrors.NewErrDuplicateTxInputs()
		}
		existingOutpoints[in.PreviousOutpoint] = struct{}{}
	}

	var totalOut uint64
	for _, out := range tx.Outputs {
		if out.ScriptPublicKey.Version > tv.maxScriptPublicKeyVersion {
			return ruleerrors.NewErrInvalidTransactionsInIsolation("unsupported script public key version")
		}
		if out.Value > maxSompi {
			return ruleerrors.NewErrBadTxOutValue("output exceeds maximum allowed value")
		}
		if !isCoinbase && out.Value < tv.minRelayTransactionFee && out.Value != 0 {
			return ruleerrors.NewErrDust(out.Value)
		}

		newTotal := totalOut + out.Value
		if newTotal < totalOut || newTotal > maxSompi {
			return ruleerrors.NewErrBadTxOutValue("total output value exceeds maximum allowed value")
		}
		totalOut = newTotal
	}

	if tx.SubnetworkID.Equal(&externalapi.SubnetworkIDNative) && len(tx.Payload) > 0 {
		return ruleerrors.NewErrInvalidPayload("native subnetwork transaction carries a payload")
	}
	if (tx.SubnetworkID.Equal(&externalapi.SubnetworkIDNative) || tx.SubnetworkID.Equal(&externalapi.SubnetworkIDCoinbase)) && tx.Gas > 0 {
		return ruleerrors.NewErrInvalidGas()
	}

	return nil
}

// ValidateTransactionInContextAndPopulateMassAndFee resolves each input's
// coinbase-maturity and lock-time constraints against povBlockDAAScore and
// the block's past median time, verifies scripts, and populates tx.Fee and
// tx.Mass (§4.4). Every input's UTXOEntry must already be resolved by the
// caller before this is invoked.
func (tv *transactionValidator) ValidateTransactionInContextAndPopulateMassAndFee(stagingArea *model.StagingArea, tx *externalapi.DomainTransaction, povBlockDAAScore uint64, povBlockPastMedianTime int64) error {
	if tx.IsCoinbase() {
		tx.Mass = mass.TransactionMass(tv.massParams, tx)
		return nil
	}

	if !tv.sequenceLockSatisfied(tx, povBlockDAAScore, povBlockPastMedianTime) {
		return ruleerrors.NewErrLockTime()
	}

	var totalIn uint64
	for _, in := range tx.Inputs {
		if in.UTXOEntry == nil {
			return ruleerrors.NewErrMissingTxOut()
		}
		if in.UTXOEntry.IsCoinbase {
			sinceCoinbase := povBlockDAAScore - in.UTXOEntry.BlockDAAScore
			if sinceCoinbase < tv.blockCoinbaseMaturity {
				return ruleerrors.NewErrImmatureCoinbaseSpend()
			}
		}
		if in.UTXOEntry.Amount > maxSompi {
			return ruleerrors.NewErrBadTxOutValue("input amount exceeds maximum allowed value")
		}
		newTotal := totalIn + in.UTXOEntry.Amount
		if newTotal < totalIn || newTotal > maxSompi {
			return ruleerrors.NewErrBadTxOutValue("total input value exceeds maximum allowed value")
		}
		totalIn = newTotal
	}

	var totalOut uint64
	for _, out := range tx.Outputs {
		totalOut += out.Value
	}
	if totalIn < totalOut {
		return ruleerrors.NewErrSpendTooHigh()
	}

	reused := &consensushashing.SighashReusedValues{}
	for inputIdx := range tx.Inputs {
		engine := txscript.NewEngine(tx, inputIdx, tv.sigCache, reused)
		if err := engine.Execute(); err != nil {
			return ruleerrors.NewErrScriptValidation(err.Error())
		}
	}

	tx.Fee = totalIn - totalOut
	tx.Mass = mass.TransactionMass(tv.massParams, tx)

	return nil
}

// sequenceLockSatisfied reports whether tx's lock time has been cleared:
// block lock times compare against povBlockDAAScore, wall-clock lock
// times against povBlockPastMedianTime (§4.3's "lock-time check against
// block's DAA score and past-median-time").
func (tv *transactionValidator) sequenceLockSatisfied(tx *externalapi.DomainTransaction, povBlockDAAScore uint64, povBlockPastMedianTime int64) bool {
	if tx.LockTime == 0 {
		return true
	}

	const lockTimeThreshold = 5e8 // lock times below this are DAA-score-based, above are Unix-time-based
	if tx.LockTime < lockTimeThreshold {
		return povBlockDAAScore >= tx.LockTime
	}

	return povBlockPastMedianTime >= int64(tx.LockTime)
}

func isNullOutpoint(outpoint *externalapi.DomainOutpoint) bool {
	zeroTxID := externalapi.DomainTransactionID{}
	return outpoint.TransactionID.Equal(&zeroTxID) && outpoint.Index == math.MaxUint32
}

var _ model.TransactionValidator = (*transactionValidator)(nil)
