// Package pow checks a block header's hash against its declared target
// (§4.2 step 4, §4.10's proof-of-work terminal rule). Grounded on the
// teacher's blockvalidator.checkProofOfWork call site (only the call site
// was retrieved; `model/pow`'s definition was not present in the
// snapshot), reconstructed here the same way workcalc reconstructs the
// compact-bits codec it builds on: hash the header with
// consensushashing.HeaderHash, read the digest as a big-endian uint256,
// and require it not exceed the target.
package pow

import (
	"math/big"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/consensushashing"
)

// CheckProofOfWorkWithTarget reports whether header's hash, read as a
// big-endian unsigned integer, does not exceed target.
func CheckProofOfWorkWithTarget(header *externalapi.DomainBlockHeader, target *big.Int) bool {
	hash := consensushashing.HeaderHash(header)
	hashNum := new(big.Int).SetBytes(hash[:])
	return hashNum.Cmp(target) <= 0
}
