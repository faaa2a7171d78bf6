package consensushashing

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/hashes"
)

// TransactionHash computes a transaction's hash, including signature
// scripts (§3).
func TransactionHash(tx *externalapi.DomainTransaction) *externalapi.DomainHash {
	w := hashes.NewTransactionHashWriter()
	writeTransaction(w, tx, true)
	result := w.Finalize()
	return &result
}

// TransactionID computes a transaction's ID, excluding signature scripts
// (§3) -- this is the identity used in outpoints and acceptance data.
func TransactionID(tx *externalapi.DomainTransaction) *externalapi.DomainTransactionID {
	w := hashes.NewTransactionIDWriter()
	writeTransaction(w, tx, false)
	result := w.Finalize()
	id := externalapi.DomainTransactionID(result)
	return &id
}

func writeTransaction(w *hashes.HashWriter, tx *externalapi.DomainTransaction, includeSignatureScript bool) {
	w.WriteUint16(tx.Version)
	w.WriteUint64(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		writeOutpoint(w, &in.PreviousOutpoint)
		if includeSignatureScript {
			w.WriteUint64(uint64(len(in.SignatureScript)))
			w.InfallibleWrite(in.SignatureScript)
		}
		w.WriteUint64(in.Sequence)
		w.WriteByte(in.SigOpCount)
	}
	w.WriteUint64(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		writeOutput(w, out)
	}
	w.WriteUint64(tx.LockTime)
	w.InfallibleWrite(tx.SubnetworkID[:])
	w.WriteUint64(tx.Gas)
	w.WriteUint64(uint64(len(tx.Payload)))
	w.InfallibleWrite(tx.Payload)
}

func writeOutpoint(w *hashes.HashWriter, outpoint *externalapi.DomainOutpoint) {
	txID := externalapi.DomainHash(outpoint.TransactionID)
	w.WriteHash(&txID)
	w.WriteUint32(outpoint.Index)
}

func writeOutput(w *hashes.HashWriter, out *externalapi.DomainTransactionOutput) {
	w.WriteUint64(out.Value)
	w.WriteUint16(out.ScriptPublicKey.Version)
	w.WriteUint64(uint64(len(out.ScriptPublicKey.Script)))
	w.InfallibleWrite(out.ScriptPublicKey.Script)
}
