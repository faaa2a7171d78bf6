// Package merkle computes a transaction-hash merkle root, validated by
// the body processor against a block header's declared root (§4.3).
package merkle

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/consensushashing"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/hashes"
)

// CalculateHashMerkleRoot builds the merkle tree over the full
// transaction hashes (signature scripts included, matching
// consensushashing.TransactionHash) and returns its root.
func CalculateHashMerkleRoot(transactions []*externalapi.DomainTransaction) *externalapi.DomainHash {
	if len(transactions) == 0 {
		zero := externalapi.DomainHash{}
		return &zero
	}

	leaves := make([]*externalapi.DomainHash, len(transactions))
	for i, tx := range transactions {
		leaves[i] = consensushashing.TransactionHash(tx)
	}
	return calculateRoot(leaves)
}

// CalculateIDMerkleRoot builds the merkle tree over transaction IDs rather
// than full transaction hashes, the root the virtual processor stages as
// each chain block's accepted-id-merkle-root (§4.4 step 3).
func CalculateIDMerkleRoot(transactionIDs []*externalapi.DomainTransactionID) *externalapi.DomainHash {
	if len(transactionIDs) == 0 {
		zero := externalapi.DomainHash{}
		return &zero
	}

	leaves := make([]*externalapi.DomainHash, len(transactionIDs))
	for i, id := range transactionIDs {
		hash := externalapi.DomainHash(*id)
		leaves[i] = &hash
	}
	return calculateRoot(leaves)
}

func calculateRoot(level []*externalapi.DomainHash) *externalapi.DomainHash {
	for len(level) > 1 {
		nextLevel := make([]*externalapi.DomainHash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			nextLevel = append(nextLevel, hashPair(left, right))
		}
		level = nextLevel
	}
	return level[0]
}

func hashPair(left, right *externalapi.DomainHash) *externalapi.DomainHash {
	w := hashes.NewMerkleBranchHashWriter()
	w.WriteHash(left)
	w.WriteHash(right)
	result := w.Finalize()
	return &result
}
