// Package consensushashing computes the hash-bearing identities named in
// §3: block hash, transaction hash/ID, and (in sighash.go) the
// transaction signing hash of §4.8.
package consensushashing

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/hashes"
)

// HeaderHash computes a header's hash: a keyed BLAKE2b over every field
// except the hash itself (§3 invariant: hash == blake2b_keyed("BlockHash",
// serialize_without_hash(header))). The result is what callers cache on
// the header; it is always re-derivable from the struct contents.
func HeaderHash(header *externalapi.DomainBlockHeader) *externalapi.DomainHash {
	w := hashes.NewBlockHashWriter()

	w.WriteUint16(header.Version)
	w.WriteUint64(uint64(len(header.ParentsByLevel)))
	for _, level := range header.ParentsByLevel {
		w.WriteUint64(uint64(len(level)))
		for _, parent := range level {
			w.WriteHash(parent)
		}
	}
	w.WriteHash(header.HashMerkleRoot)
	w.WriteHash(header.AcceptedIDMerkleRoot)
	w.WriteHash(header.UTXOCommitment)
	w.WriteUint64(uint64(header.TimeInMilliseconds))
	w.WriteUint32(header.Bits)
	w.WriteUint64(header.Nonce)
	w.WriteUint64(header.DAAScore)
	blueWorkBytes := header.BlueWork.BigInt().Bytes()
	w.WriteUint64(uint64(len(blueWorkBytes)))
	w.InfallibleWrite(blueWorkBytes)
	w.WriteUint64(header.BlueScore)
	w.WriteHash(header.PruningPoint)

	result := w.Finalize()
	return &result
}
