package binaryserialization

import (
	"bytes"
	"io"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

func writeOutpoint(w io.Writer, outpoint *externalapi.DomainOutpoint) error {
	txID := externalapi.DomainHash(outpoint.TransactionID)
	err := writeHash(w, &txID)
	if err != nil {
		return err
	}
	return writeUint32(w, outpoint.Index)
}

func readOutpoint(r io.Reader) (*externalapi.DomainOutpoint, error) {
	txIDHash, err := readHash(r)
	if err != nil {
		return nil, err
	}
	index, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	return &externalapi.DomainOutpoint{
		TransactionID: externalapi.DomainTransactionID(*txIDHash),
		Index:         index,
	}, nil
}

func writeScriptPublicKey(w io.Writer, spk *externalapi.ScriptPublicKey) error {
	err := writeUint16(w, spk.Version)
	if err != nil {
		return err
	}
	return writeBytes(w, spk.Script)
}

func readScriptPublicKey(r io.Reader) (*externalapi.ScriptPublicKey, error) {
	version, err := readUint16(r)
	if err != nil {
		return nil, err
	}
	script, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	return &externalapi.ScriptPublicKey{Version: version, Script: script}, nil
}

func writeInput(w io.Writer, in *externalapi.DomainTransactionInput) error {
	err := writeOutpoint(w, &in.PreviousOutpoint)
	if err != nil {
		return err
	}
	err = writeBytes(w, in.SignatureScript)
	if err != nil {
		return err
	}
	err = writeUint64(w, in.Sequence)
	if err != nil {
		return err
	}
	return writeByte(w, in.SigOpCount)
}

func readInput(r io.Reader) (*externalapi.DomainTransactionInput, error) {
	outpoint, err := readOutpoint(r)
	if err != nil {
		return nil, err
	}
	sigScript, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	sequence, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	sigOpCount, err := readByte(r)
	if err != nil {
		return nil, err
	}
	return &externalapi.DomainTransactionInput{
		PreviousOutpoint: *outpoint,
		SignatureScript:  sigScript,
		Sequence:         sequence,
		SigOpCount:       sigOpCount,
	}, nil
}

func writeOutput(w io.Writer, out *externalapi.DomainTransactionOutput) error {
	err := writeUint64(w, out.Value)
	if err != nil {
		return err
	}
	return writeScriptPublicKey(w, out.ScriptPublicKey)
}

func readOutput(r io.Reader) (*externalapi.DomainTransactionOutput, error) {
	value, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	spk, err := readScriptPublicKey(r)
	if err != nil {
		return nil, err
	}
	return &externalapi.DomainTransactionOutput{Value: value, ScriptPublicKey: spk}, nil
}

// SerializeTransaction encodes a transaction for persistence (§6: BLOCK_TX).
func SerializeTransaction(tx *externalapi.DomainTransaction) ([]byte, error) {
	buf := newBuffer()
	err := writeUint16(buf, tx.Version)
	if err != nil {
		return nil, err
	}
	err = writeUint32(buf, uint32(len(tx.Inputs)))
	if err != nil {
		return nil, err
	}
	for _, in := range tx.Inputs {
		err = writeInput(buf, in)
		if err != nil {
			return nil, err
		}
	}
	err = writeUint32(buf, uint32(len(tx.Outputs)))
	if err != nil {
		return nil, err
	}
	for _, out := range tx.Outputs {
		err = writeOutput(buf, out)
		if err != nil {
			return nil, err
		}
	}
	err = writeUint64(buf, tx.LockTime)
	if err != nil {
		return nil, err
	}
	_, err = buf.Write(tx.SubnetworkID[:])
	if err != nil {
		return nil, err
	}
	err = writeUint64(buf, tx.Gas)
	if err != nil {
		return nil, err
	}
	err = writeBytes(buf, tx.Payload)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeTransaction decodes a transaction written by SerializeTransaction.
func DeserializeTransaction(data []byte) (*externalapi.DomainTransaction, error) {
	r := bytes.NewReader(data)
	tx := &externalapi.DomainTransaction{}

	var err error
	tx.Version, err = readUint16(r)
	if err != nil {
		return nil, errShortRead("tx.version", err)
	}

	inputCount, err := readUint32(r)
	if err != nil {
		return nil, errShortRead("tx.inputCount", err)
	}
	tx.Inputs = make([]*externalapi.DomainTransactionInput, inputCount)
	for i := range tx.Inputs {
		tx.Inputs[i], err = readInput(r)
		if err != nil {
			return nil, errShortRead("tx.inputs", err)
		}
	}

	outputCount, err := readUint32(r)
	if err != nil {
		return nil, errShortRead("tx.outputCount", err)
	}
	tx.Outputs = make([]*externalapi.DomainTransactionOutput, outputCount)
	for i := range tx.Outputs {
		tx.Outputs[i], err = readOutput(r)
		if err != nil {
			return nil, errShortRead("tx.outputs", err)
		}
	}

	tx.LockTime, err = readUint64(r)
	if err != nil {
		return nil, errShortRead("tx.lockTime", err)
	}

	_, err = io.ReadFull(r, tx.SubnetworkID[:])
	if err != nil {
		return nil, errShortRead("tx.subnetworkID", err)
	}

	tx.Gas, err = readUint64(r)
	if err != nil {
		return nil, errShortRead("tx.gas", err)
	}

	tx.Payload, err = readBytes(r)
	if err != nil {
		return nil, errShortRead("tx.payload", err)
	}

	return tx, nil
}
