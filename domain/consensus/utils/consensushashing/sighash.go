package consensushashing

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/hashes"
)

// SigHashType is the hash-type flag byte appended to a signature, per §4.8.
type SigHashType uint8

// Hash type flags. ANYONECANPAY, SINGLE and NONE zero out the named
// summaries the way comparable DAG-consensus designs (and Bitcoin-style
// sighash schemes more broadly) substitute zero-hashes for the portions of
// the transaction a signer opts not to commit to.
const (
	SigHashAll          SigHashType = 0x01
	SigHashNone         SigHashType = 0x02
	SigHashSingle       SigHashType = 0x03
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMaskBaseType = 0x1f
)

func (t SigHashType) baseType() SigHashType { return t & sigHashMaskBaseType }
func (t SigHashType) isAnyOneCanPay() bool  { return t&SigHashAnyOneCanPay != 0 }

// SighashReusedValues caches the four order-independent summaries named in
// §4.8 (previous outpoints, sequences, sig-op counts, outputs) so that
// signing N inputs of the same transaction costs O(N) total rather than
// O(N^2): computed once on first use, reused for every subsequent input
// with the same hash type (§8 property 7: sighash is a pure function of
// the transaction and hash type, warmed or cold).
type SighashReusedValues struct {
	previousOutputsHash *externalapi.DomainHash
	sequencesHash       *externalapi.DomainHash
	sigOpCountsHash     *externalapi.DomainHash
	outputsHashAll      *externalapi.DomainHash
}

// CalculateSchnorrSignatureHash computes the signing hash for input
// inputIndex of tx under hashType, per the field order of §4.8:
// version, H(previous_outpoints), H(sequences), H(sig_op_counts),
// outpoint(i), script_public_key(i), amount(i), sequence(i),
// sig_op_count(i), H(outputs|policy), lock_time, subnetwork_id, gas,
// H(payload), hash_type.
func CalculateSchnorrSignatureHash(
	tx *externalapi.DomainTransaction,
	inputIndex int,
	hashType SigHashType,
	reused *SighashReusedValues,
) *externalapi.DomainHash {

	w := hashes.NewTransactionSigningHashWriter()
	in := tx.Inputs[inputIndex]

	w.WriteUint16(tx.Version)
	w.WriteHash(previousOutputsHash(tx, hashType, reused))
	w.WriteHash(sequencesHash(tx, hashType, reused))
	w.WriteHash(sigOpCountsHash(tx, hashType, reused))

	writeOutpoint(w, &in.PreviousOutpoint)
	w.WriteUint16(in.UTXOEntry.ScriptPublicKey.Version)
	w.WriteUint64(uint64(len(in.UTXOEntry.ScriptPublicKey.Script)))
	w.InfallibleWrite(in.UTXOEntry.ScriptPublicKey.Script)
	w.WriteUint64(in.UTXOEntry.Amount)
	w.WriteUint64(in.Sequence)
	w.WriteByte(in.SigOpCount)

	w.WriteHash(outputsHash(tx, inputIndex, hashType, reused))

	w.WriteUint64(tx.LockTime)
	w.InfallibleWrite(tx.SubnetworkID[:])
	w.WriteUint64(tx.Gas)
	w.WriteHash(payloadHash(tx))
	w.WriteByte(byte(hashType))

	result := w.Finalize()
	return &result
}

func previousOutputsHash(tx *externalapi.DomainTransaction, hashType SigHashType, reused *SighashReusedValues) *externalapi.DomainHash {
	if hashType.isAnyOneCanPay() {
		return zeroHash()
	}
	if reused.previousOutputsHash == nil {
		w := hashes.NewTransactionSigningHashWriter()
		for _, in := range tx.Inputs {
			writeOutpoint(w, &in.PreviousOutpoint)
		}
		h := w.Finalize()
		reused.previousOutputsHash = &h
	}
	return reused.previousOutputsHash
}

func sequencesHash(tx *externalapi.DomainTransaction, hashType SigHashType, reused *SighashReusedValues) *externalapi.DomainHash {
	if hashType.isAnyOneCanPay() || hashType.baseType() == SigHashSingle || hashType.baseType() == SigHashNone {
		return zeroHash()
	}
	if reused.sequencesHash == nil {
		w := hashes.NewTransactionSigningHashWriter()
		for _, in := range tx.Inputs {
			w.WriteUint64(in.Sequence)
		}
		h := w.Finalize()
		reused.sequencesHash = &h
	}
	return reused.sequencesHash
}

func sigOpCountsHash(tx *externalapi.DomainTransaction, hashType SigHashType, reused *SighashReusedValues) *externalapi.DomainHash {
	if hashType.isAnyOneCanPay() {
		return zeroHash()
	}
	if reused.sigOpCountsHash == nil {
		w := hashes.NewTransactionSigningHashWriter()
		for _, in := range tx.Inputs {
			w.WriteByte(in.SigOpCount)
		}
		h := w.Finalize()
		reused.sigOpCountsHash = &h
	}
	return reused.sigOpCountsHash
}

func outputsHash(tx *externalapi.DomainTransaction, inputIndex int, hashType SigHashType, reused *SighashReusedValues) *externalapi.DomainHash {
	switch hashType.baseType() {
	case SigHashNone:
		return zeroHash()
	case SigHashSingle:
		if inputIndex >= len(tx.Outputs) {
			return zeroHash()
		}
		w := hashes.NewTransactionSigningHashWriter()
		writeOutput(w, tx.Outputs[inputIndex])
		h := w.Finalize()
		return &h
	default:
		if reused.outputsHashAll == nil {
			w := hashes.NewTransactionSigningHashWriter()
			for _, out := range tx.Outputs {
				writeOutput(w, out)
			}
			h := w.Finalize()
			reused.outputsHashAll = &h
		}
		return reused.outputsHashAll
	}
}

func payloadHash(tx *externalapi.DomainTransaction) *externalapi.DomainHash {
	w := hashes.NewTransactionSigningHashWriter()
	w.InfallibleWrite(tx.Payload)
	h := w.Finalize()
	return &h
}

func zeroHash() *externalapi.DomainHash {
	var zero externalapi.DomainHash
	return &zero
}
