// Package mass computes a transaction's consensus mass, the unit the body
// processor sums against the configured block mass limit (§4.3).
package mass

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// Params names the per-unit weights a transaction's mass is built from.
type Params struct {
	MassPerTxByte           uint64
	MassPerScriptPubKeyByte uint64
	MassPerSigOp            uint64
}

// TransactionSize returns an estimate of a transaction's serialized size
// in bytes -- every field contributes its own encoded length plus a
// length-prefix overhead, mirroring the length-prefixed wire layout named
// in §6.
func TransactionSize(tx *externalapi.DomainTransaction) uint64 {
	size := uint64(2 + 8 + 8 + 20 + 8 + 8 + len(tx.Payload)) // version, locktime, gas placeholder, subnetwork, lengths
	for _, in := range tx.Inputs {
		size += 32 + 4 + 8 + 1 + uint64(len(in.SignatureScript)) + 8
	}
	for _, out := range tx.Outputs {
		size += 8 + 2 + uint64(len(out.ScriptPublicKey.Script)) + 8
	}
	return size
}

// scriptPublicKeysSize sums the length of every output's locking script,
// the quantity MassPerScriptPubKeyByte is charged against (§4.3).
func scriptPublicKeysSize(tx *externalapi.DomainTransaction) uint64 {
	size := uint64(0)
	for _, out := range tx.Outputs {
		size += uint64(len(out.ScriptPublicKey.Script))
	}
	return size
}

func sigOpCount(tx *externalapi.DomainTransaction) uint64 {
	count := uint64(0)
	for _, in := range tx.Inputs {
		count += uint64(in.SigOpCount)
	}
	return count
}

// TransactionMass computes mass_of(tx) per §4.3:
// mass_per_tx_byte*size + mass_per_script_pub_key_byte*spk_len + mass_per_sig_op*sig_op_count.
func TransactionMass(params *Params, tx *externalapi.DomainTransaction) uint64 {
	return params.MassPerTxByte*TransactionSize(tx) +
		params.MassPerScriptPubKeyByte*scriptPublicKeysSize(tx) +
		params.MassPerSigOp*sigOpCount(tx)
}

// BlockMass sums the mass of every transaction in the block.
func BlockMass(params *Params, transactions []*externalapi.DomainTransaction) uint64 {
	total := uint64(0)
	for _, tx := range transactions {
		total += TransactionMass(params, tx)
	}
	return total
}
