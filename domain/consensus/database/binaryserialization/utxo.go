package binaryserialization

import (
	"bytes"
	"io"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

func writeUTXOEntry(w io.Writer, entry *externalapi.UTXOEntry) error {
	err := writeUint64(w, entry.Amount)
	if err != nil {
		return err
	}
	err = writeScriptPublicKey(w, entry.ScriptPublicKey)
	if err != nil {
		return err
	}
	err = writeUint64(w, entry.BlockDAAScore)
	if err != nil {
		return err
	}
	return writeBool(w, entry.IsCoinbase)
}

func readUTXOEntry(r io.Reader) (*externalapi.UTXOEntry, error) {
	amount, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	spk, err := readScriptPublicKey(r)
	if err != nil {
		return nil, err
	}
	blockDAAScore, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	isCoinbase, err := readBool(r)
	if err != nil {
		return nil, err
	}
	return externalapi.NewUTXOEntry(amount, spk, isCoinbase, blockDAAScore), nil
}

func writeOutpointEntryMap(w io.Writer, m map[externalapi.DomainOutpoint]*externalapi.UTXOEntry) error {
	err := writeUint32(w, uint32(len(m)))
	if err != nil {
		return err
	}
	for outpoint, entry := range m {
		outpointCopy := outpoint
		err = writeOutpoint(w, &outpointCopy)
		if err != nil {
			return err
		}
		err = writeUTXOEntry(w, entry)
		if err != nil {
			return err
		}
	}
	return nil
}

func readOutpointEntryMap(r io.Reader) (map[externalapi.DomainOutpoint]*externalapi.UTXOEntry, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	m := make(map[externalapi.DomainOutpoint]*externalapi.UTXOEntry, count)
	for i := uint32(0); i < count; i++ {
		outpoint, err := readOutpoint(r)
		if err != nil {
			return nil, err
		}
		entry, err := readUTXOEntry(r)
		if err != nil {
			return nil, err
		}
		m[*outpoint] = entry
	}
	return m, nil
}

// SerializeUTXODiff encodes a UTXO diff for persistence (§6: UTXO_DIFF).
func SerializeUTXODiff(diff *externalapi.UTXODiff) ([]byte, error) {
	buf := newBuffer()
	err := writeOutpointEntryMap(buf, diff.ToAdd)
	if err != nil {
		return nil, err
	}
	err = writeOutpointEntryMap(buf, diff.ToRemove)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeUTXODiff decodes a diff written by SerializeUTXODiff.
func DeserializeUTXODiff(data []byte) (*externalapi.UTXODiff, error) {
	r := bytes.NewReader(data)
	toAdd, err := readOutpointEntryMap(r)
	if err != nil {
		return nil, errShortRead("utxodiff.toAdd", err)
	}
	toRemove, err := readOutpointEntryMap(r)
	if err != nil {
		return nil, errShortRead("utxodiff.toRemove", err)
	}
	return &externalapi.UTXODiff{ToAdd: toAdd, ToRemove: toRemove}, nil
}

// SerializeUTXOEntry encodes a single UTXO entry (used by the pruning-point
// UTXO set store, which persists entries individually keyed by outpoint).
func SerializeUTXOEntry(entry *externalapi.UTXOEntry) ([]byte, error) {
	buf := newBuffer()
	err := writeUTXOEntry(buf, entry)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeUTXOEntry decodes an entry written by SerializeUTXOEntry.
func DeserializeUTXOEntry(data []byte) (*externalapi.UTXOEntry, error) {
	r := bytes.NewReader(data)
	entry, err := readUTXOEntry(r)
	if err != nil {
		return nil, errShortRead("utxoentry", err)
	}
	return entry, nil
}

// SerializeOutpoint encodes an outpoint as a standalone key suffix, used by
// the pruning-point UTXO set store to key entries for ordered iteration.
func SerializeOutpoint(outpoint *externalapi.DomainOutpoint) ([]byte, error) {
	buf := newBuffer()
	err := writeOutpoint(buf, outpoint)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeOutpoint decodes an outpoint written by SerializeOutpoint.
func DeserializeOutpoint(data []byte) (*externalapi.DomainOutpoint, error) {
	r := bytes.NewReader(data)
	outpoint, err := readOutpoint(r)
	if err != nil {
		return nil, errShortRead("outpoint", err)
	}
	return outpoint, nil
}
