// Package dagconfig carries the per-network consensus parameters the rest
// of domain/consensus is built against, grounded on the teacher's own
// dagconfig/params.go pruned to the consensus-core surface (§1 excludes
// the P2P/RPC/address-encoding fields the teacher's Params also carries).
package dagconfig

import (
	"math/big"
	"time"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/mass"
	"github.com/pkg/errors"
)

var bigOne = big.NewInt(1)

// mainPowMax is the highest proof-of-work value a mainnet block may have:
// 2^255 - 1.
var mainPowMax = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

// Params defines one network's consensus-core parameters.
type Params struct {
	Name string

	GenesisBlock *externalapi.DomainBlock
	GenesisHash  *externalapi.DomainHash

	// K is the GHOSTDAG anticone-size bound (§4.1).
	K externalapi.KType

	PowMax *big.Int

	MaxBlockLevel int

	BlockCoinbaseMaturity    uint64
	SubsidyReductionInterval uint64
	BaseSubsidy              uint64

	TargetTimePerBlock             time.Duration
	FinalityDuration                time.Duration
	DifficultyAdjustmentWindowSize  int
	TimestampDeviationTolerance     int
	PastMedianTimeWindowSize        int

	// PruningDepth is how many blocks of blue score separate the virtual
	// selected parent chain tip from a block eligible to become the new
	// pruning point (§4.6, §9).
	PruningDepth uint64

	MaxBlockParents       int
	MaxBlockMass          uint64
	MaxCoinbasePayloadLen int
	MaxScriptPublicKeyVersion uint16
	MinTransactionVersion uint16
	MaxTransactionVersion uint16
	MinTransactionInputsOutputs int
	MaxTransactionInputsOutputs int
	MaxSignatureScriptLen int
	MinRelayTransactionFee uint64

	MassParams *mass.Params

	// MergeSetSizeLimit bounds a mergeset so a single block cannot force
	// unbounded per-block work (guards §4.1's mergeset walk).
	MergeSetSizeLimit uint64
}

// SimnetParams is a small, fast-confirming network tuned for tests (§8's
// end-to-end scenarios are written against a network shaped like this).
var SimnetParams = Params{
	Name: "ghostdag-simnet",

	K: 18,

	PowMax: mainPowMax,

	MaxBlockLevel: 225,

	BlockCoinbaseMaturity:    100,
	SubsidyReductionInterval: 210000,
	BaseSubsidy:              50 * 100000000,

	TargetTimePerBlock:             time.Millisecond,
	FinalityDuration:               time.Minute,
	DifficultyAdjustmentWindowSize: 2640,
	TimestampDeviationTolerance:    132,
	PastMedianTimeWindowSize:       86,

	PruningDepth: 185798,

	MaxBlockParents:           10,
	MaxBlockMass:              500000,
	MaxCoinbasePayloadLen:     204,
	MaxScriptPublicKeyVersion: 0,
	MinTransactionVersion:     0,
	MaxTransactionVersion:     0,
	MinTransactionInputsOutputs: 1,
	MaxTransactionInputsOutputs: 1 << 16,
	MaxSignatureScriptLen:       1650,
	MinRelayTransactionFee:      1000,

	MassParams: &mass.Params{
		MassPerTxByte:           1,
		MassPerScriptPubKeyByte: 10,
		MassPerSigOp:            1000,
	},

	MergeSetSizeLimit: 18 * 10,
}

// ErrDuplicateNet is returned by Register for an already-registered network.
var ErrDuplicateNet = errors.New("duplicate network")

var registeredNets = make(map[string]struct{})

// Register records params.Name as a known network, rejecting duplicates.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Name]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Name] = struct{}{}
	return nil
}

func init() {
	if err := Register(&SimnetParams); err != nil {
		panic(err)
	}
}
