// Package sign verifies the two signature schemes script execution can
// encounter (§4.4): ECDSA and Schnorr (x-only; BIP340-style), both over
// secp256k1. The teacher calls into kaspanet/go-secp256k1, a cgo wrapper
// that can't be fetched from this retrieval pack; decred/dcrd's pure-Go
// secp256k1 implementation covers the same concern (see DESIGN.md).
package sign

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// VerifySchnorr verifies a 64-byte Schnorr (x-only) signature over sigHash
// using the given 32-byte x-only public key.
func VerifySchnorr(pubKeyXOnly []byte, sigHash *externalapi.DomainHash, signature []byte) (bool, error) {
	pubKey, err := schnorr.ParsePubKey(pubKeyXOnly)
	if err != nil {
		return false, errors.Wrap(err, "failed parsing x-only public key")
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false, errors.Wrap(err, "failed parsing schnorr signature")
	}
	return sig.Verify(sigHash[:], pubKey), nil
}

// VerifyECDSA verifies a DER-encoded ECDSA signature over sigHash using the
// given compressed or uncompressed public key.
func VerifyECDSA(pubKeyBytes []byte, sigHash *externalapi.DomainHash, signature []byte) (bool, error) {
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false, errors.Wrap(err, "failed parsing public key")
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false, errors.Wrap(err, "failed parsing ECDSA signature")
	}
	return sig.Verify(sigHash[:], pubKey), nil
}
