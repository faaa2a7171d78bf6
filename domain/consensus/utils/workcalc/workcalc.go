// Package workcalc converts the compact "bits" encoding of a block's target
// into the big.Int values used for difficulty comparisons and blue work
// accumulation (spec.md §4.2 step 4).
package workcalc

import (
	"math/big"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// compactToBig converts a compact representation of a whole number N to an
// unsigned 32-bit number. The representation is similar to IEEE754 floating
// point numbers: the high 8 bits hold the exponent (in bytes, not bits), and
// the low 23 bits hold the mantissa's magnitude, with the sign bit in bit 24.
// Kept bit-for-bit compatible with the teacher's `util.CompactToBig`, which
// was referenced across the tree but not present in the retrieved snapshot;
// reconstructed here from the standard Bitcoin "compact" target encoding.
func compactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := compact >> 24

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, uint(8*(exponent-3)))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}

	return bn
}

// bigToCompact converts a whole number N to a compact representation using
// an relative exponent and mantissa. Only used by tests/miners in the
// teacher; kept here for symmetry and for components that need to derive
// bits from a target (e.g. difficultymanager).
func bigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	var mantissa uint32
	exponent := uint(len(n.Bytes()))

	if exponent <= 3 {
		mantissa = uint32(n.Bits()[0])
		mantissa <<= 8 * (3 - exponent)
	} else {
		tn := new(big.Int).Set(n)
		mantissa = uint32(tn.Rsh(tn, 8*(exponent-3)).Bits()[0])
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := uint32(exponent<<24) | mantissa

	if n.Sign() < 0 {
		compact |= 0x00800000
	}

	return compact
}

var one = big.NewInt(1)

// CalcWork derives a block's contribution to cumulative blue work from its
// difficulty bits: work(h) = 2^256 / (target(bits(h))+1). Grounded on the
// teacher's `blockdag.CalcWork`, which feeds `blockNode.blueWork` the same
// way GHOSTDAGManager.GHOSTDAG feeds externalapi.BlueWork here.
func CalcWork(bits uint32) *externalapi.BlueWork {
	target := compactToBig(bits)
	if target.Sign() <= 0 {
		return externalapi.BlueWorkFromUint64(0)
	}

	denominator := new(big.Int).Add(target, one)
	numerator := new(big.Int).Lsh(one, 256)
	work := new(big.Int).Div(numerator, denominator)

	return externalapi.NewBlueWork(work)
}

// TargetFromBits is an exported wrapper around compactToBig for components
// (difficultymanager, proof-of-work validation) that need the raw target.
func TargetFromBits(bits uint32) *big.Int {
	return compactToBig(bits)
}

// BitsFromTarget is an exported wrapper around bigToCompact.
func BitsFromTarget(target *big.Int) uint32 {
	return bigToCompact(target)
}
