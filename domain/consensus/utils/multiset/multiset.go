// Package multiset implements a MuHash accumulator: a succinct,
// order-independent, incrementally updatable digest of a UTXO set
// (GLOSSARY: "UTXO commitment"), grounded on rusty-kaspa's
// crypto/muhash/src/lib.rs (see SPEC_FULL.md §C.2) and the teacher's
// calls into it from pruningmanager.go/update_pruning_utxo_set.go.
//
// Every element is mapped into the multiplicative group of integers modulo
// a fixed large safe prime (the well-known RFC 3526 2048-bit MODP group
// prime) via a domain-separated hash, then folded into the accumulator by
// multiplication; removing an element divides it back out via modular
// inverse. Because the modulus is prime, every nonzero element has an
// inverse, so Add and Remove commute regardless of order -- the property
// that lets MuHash represent a *set* rather than a sequence.
package multiset

import (
	"math/big"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/hashes"
)

// modulus is the RFC 3526 2048-bit MODP group prime.
var modulus, _ = new(big.Int).SetString(
	"FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74020BBEA63B139B2"+
		"2514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245E485B576625E7"+
		"EC6F44C42E9A637ED6B0BFF5CB6F406B7EDEE386BFB5A899FA5AE9F24117C4B1FE649286651ECE4"+
		"5B3DC2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208"+
		"552BB9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3BE39E772C18"+
		"0E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF6955817183995497CEA956AE515D2261898"+
		"FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF",
	16)

// MuHash is a mutable MuHash accumulator over the multiplicative group
// modulo `modulus`. Use New to get the empty set; the zero value has nil
// accumulators and is not usable.
type MuHash struct {
	numerator   *big.Int
	denominator *big.Int
}

// New creates an empty MuHash (the digest of the empty UTXO set).
func New() *MuHash {
	return &MuHash{numerator: big.NewInt(1), denominator: big.NewInt(1)}
}

// Add folds data into the set, e.g. a UTXO's serialized (outpoint, entry).
func (m *MuHash) Add(data []byte) {
	m.numerator.Mod(m.numerator.Mul(m.numerator, elementOf(data)), modulus)
}

// Remove removes previously-added data from the set.
func (m *MuHash) Remove(data []byte) {
	m.denominator.Mod(m.denominator.Mul(m.denominator, elementOf(data)), modulus)
}

// Clone returns a deep copy.
func (m *MuHash) Clone() *MuHash {
	return &MuHash{
		numerator:   new(big.Int).Set(m.numerator),
		denominator: new(big.Int).Set(m.denominator),
	}
}

// Finalize collapses the accumulator (numerator * denominator^-1 mod p)
// and hashes the result into a DomainHash-sized commitment.
func (m *MuHash) Finalize() externalapi.DomainHash {
	inverse := new(big.Int).ModInverse(m.denominator, modulus)
	if inverse == nil {
		inverse = big.NewInt(1)
	}
	combined := new(big.Int).Mod(new(big.Int).Mul(m.numerator, inverse), modulus)

	w := hashes.NewMuHashFinalizeHashWriter()
	w.InfallibleWrite(combined.Bytes())
	return w.Finalize()
}

func elementOf(data []byte) *big.Int {
	w := hashes.NewMuHashElementHashWriter()
	w.InfallibleWrite(data)
	digest := w.Finalize()
	// Expand the 32-byte digest into a value comfortably inside the group:
	// hash seven more times with a one-byte counter domain-separated suffix, to
	// get enough entropy relative to the 2048-bit modulus while staying
	// entirely a function of `data`.
	value := new(big.Int).SetBytes(digest[:])
	for i := byte(1); i <= 7; i++ {
		w2 := hashes.NewMuHashElementHashWriter()
		w2.InfallibleWrite(digest[:])
		w2.WriteByte(i)
		next := w2.Finalize()
		value.Lsh(value, 256)
		value.Or(value, new(big.Int).SetBytes(next[:]))
	}
	value.Mod(value, modulus)
	if value.Sign() == 0 {
		value.SetInt64(1)
	}
	return value
}
