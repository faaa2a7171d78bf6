// Package binaryserialization encodes store values to and from bytes for
// the KV backend. Rather than the teacher's protobuf-generated
// domain/consensus/database/serialization package (which needs a .proto
// compiler this environment doesn't have — see DESIGN.md), it follows the
// manual little-endian element codec idiom the teacher itself uses one
// layer down in wire/common.go's ReadElement/WriteElement, applied to the
// consensus types instead of P2P wire messages. Variable-length fields
// (byte slices, hash lists, maps) carry an element count before their
// contents; fixed-width fields are written without a prefix, and a
// serialized value as a whole carries no length prefix of its own.
package binaryserialization

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

var le = binary.LittleEndian

func writeUint64(w io.Writer, v uint64) error {
	var b [8]byte
	le.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var b [8]byte
	_, err := io.ReadFull(r, b[:])
	if err != nil {
		return 0, err
	}
	return le.Uint64(b[:]), nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	le.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	_, err := io.ReadFull(r, b[:])
	if err != nil {
		return 0, err
	}
	return le.Uint32(b[:]), nil
}

func writeUint16(w io.Writer, v uint16) error {
	var b [2]byte
	le.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	_, err := io.ReadFull(r, b[:])
	if err != nil {
		return 0, err
	}
	return le.Uint16(b[:]), nil
}

func writeByte(w io.Writer, v byte) error {
	_, err := w.Write([]byte{v})
	return err
}

func readByte(r io.Reader) (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(r, b[:])
	return b[0], err
}

func writeBool(w io.Writer, v bool) error {
	if v {
		return writeByte(w, 1)
	}
	return writeByte(w, 0)
}

func readBool(r io.Reader) (bool, error) {
	b, err := readByte(r)
	return b != 0, err
}

// writeBytes length-prefixes an arbitrary byte slice with a uint32 count.
func writeBytes(w io.Writer, data []byte) error {
	err := writeUint32(w, uint32(len(data)))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func readBytes(r io.Reader) ([]byte, error) {
	length, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	data := make([]byte, length)
	_, err = io.ReadFull(r, data)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func writeHash(w io.Writer, hash *externalapi.DomainHash) error {
	if hash == nil {
		hash = &externalapi.DomainHash{}
	}
	_, err := w.Write(hash[:])
	return err
}

func readHash(r io.Reader) (*externalapi.DomainHash, error) {
	var hash externalapi.DomainHash
	_, err := io.ReadFull(r, hash[:])
	if err != nil {
		return nil, err
	}
	return &hash, nil
}

func writeHashes(w io.Writer, hashes []*externalapi.DomainHash) error {
	err := writeUint32(w, uint32(len(hashes)))
	if err != nil {
		return err
	}
	for _, hash := range hashes {
		err = writeHash(w, hash)
		if err != nil {
			return err
		}
	}
	return nil
}

func readHashes(r io.Reader) ([]*externalapi.DomainHash, error) {
	count, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	hashes := make([]*externalapi.DomainHash, count)
	for i := range hashes {
		hashes[i], err = readHash(r)
		if err != nil {
			return nil, err
		}
	}
	return hashes, nil
}

func newBuffer() *bytes.Buffer {
	return &bytes.Buffer{}
}

// errShortRead wraps an unexpected EOF with the entity name being decoded.
func errShortRead(what string, err error) error {
	return errors.Wrapf(err, "short read decoding %s", what)
}
