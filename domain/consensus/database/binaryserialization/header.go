package binaryserialization

import (
	"bytes"
	"math/big"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// SerializeHeader encodes a header for persistence (§6: HEADER prefix).
func SerializeHeader(header *externalapi.DomainBlockHeader) ([]byte, error) {
	buf := newBuffer()
	err := writeUint16(buf, header.Version)
	if err != nil {
		return nil, err
	}
	err = writeUint32(buf, uint32(len(header.ParentsByLevel)))
	if err != nil {
		return nil, err
	}
	for _, level := range header.ParentsByLevel {
		err = writeHashes(buf, level)
		if err != nil {
			return nil, err
		}
	}
	for _, h := range []*externalapi.DomainHash{
		header.HashMerkleRoot, header.AcceptedIDMerkleRoot, header.UTXOCommitment, header.PruningPoint,
	} {
		err = writeHash(buf, h)
		if err != nil {
			return nil, err
		}
	}
	err = writeUint64(buf, uint64(header.TimeInMilliseconds))
	if err != nil {
		return nil, err
	}
	err = writeUint32(buf, header.Bits)
	if err != nil {
		return nil, err
	}
	err = writeUint64(buf, header.Nonce)
	if err != nil {
		return nil, err
	}
	err = writeUint64(buf, header.DAAScore)
	if err != nil {
		return nil, err
	}
	err = writeBytes(buf, header.BlueWork.BigInt().Bytes())
	if err != nil {
		return nil, err
	}
	err = writeUint64(buf, header.BlueScore)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeHeader decodes a header written by SerializeHeader.
func DeserializeHeader(data []byte) (*externalapi.DomainBlockHeader, error) {
	r := bytes.NewReader(data)
	header := &externalapi.DomainBlockHeader{}

	version, err := readUint16(r)
	if err != nil {
		return nil, errShortRead("header.version", err)
	}
	header.Version = version

	levelCount, err := readUint32(r)
	if err != nil {
		return nil, errShortRead("header.levelCount", err)
	}
	header.ParentsByLevel = make([][]*externalapi.DomainHash, levelCount)
	for i := range header.ParentsByLevel {
		header.ParentsByLevel[i], err = readHashes(r)
		if err != nil {
			return nil, errShortRead("header.parentsByLevel", err)
		}
	}

	header.HashMerkleRoot, err = readHash(r)
	if err != nil {
		return nil, errShortRead("header.hashMerkleRoot", err)
	}
	header.AcceptedIDMerkleRoot, err = readHash(r)
	if err != nil {
		return nil, errShortRead("header.acceptedIDMerkleRoot", err)
	}
	header.UTXOCommitment, err = readHash(r)
	if err != nil {
		return nil, errShortRead("header.utxoCommitment", err)
	}
	header.PruningPoint, err = readHash(r)
	if err != nil {
		return nil, errShortRead("header.pruningPoint", err)
	}

	timeInMilliseconds, err := readUint64(r)
	if err != nil {
		return nil, errShortRead("header.timeInMilliseconds", err)
	}
	header.TimeInMilliseconds = int64(timeInMilliseconds)

	header.Bits, err = readUint32(r)
	if err != nil {
		return nil, errShortRead("header.bits", err)
	}
	header.Nonce, err = readUint64(r)
	if err != nil {
		return nil, errShortRead("header.nonce", err)
	}
	header.DAAScore, err = readUint64(r)
	if err != nil {
		return nil, errShortRead("header.daaScore", err)
	}

	blueWorkBytes, err := readBytes(r)
	if err != nil {
		return nil, errShortRead("header.blueWork", err)
	}
	header.BlueWork = externalapi.NewBlueWork(new(big.Int).SetBytes(blueWorkBytes))

	header.BlueScore, err = readUint64(r)
	if err != nil {
		return nil, errShortRead("header.blueScore", err)
	}

	return header, nil
}
