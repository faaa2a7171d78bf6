package binaryserialization

import (
	"bytes"
	"math/big"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// SerializeGHOSTDAGData encodes GHOSTDAG data for persistence (§6:
// GHOSTDAG(level)).
func SerializeGHOSTDAGData(data *externalapi.BlockGHOSTDAGData) ([]byte, error) {
	buf := newBuffer()
	err := writeUint64(buf, data.BlueScore())
	if err != nil {
		return nil, err
	}
	err = writeBytes(buf, data.BlueWork().BigInt().Bytes())
	if err != nil {
		return nil, err
	}
	err = writeHash(buf, data.SelectedParent())
	if err != nil {
		return nil, err
	}
	err = writeHashes(buf, data.MergeSetBlues())
	if err != nil {
		return nil, err
	}
	err = writeHashes(buf, data.MergeSetReds())
	if err != nil {
		return nil, err
	}
	anticoneSizes := data.BluesAnticoneSizes()
	err = writeUint32(buf, uint32(len(anticoneSizes)))
	if err != nil {
		return nil, err
	}
	for hash, size := range anticoneSizes {
		hashCopy := hash
		err = writeHash(buf, &hashCopy)
		if err != nil {
			return nil, err
		}
		err = writeByte(buf, byte(size))
		if err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DeserializeGHOSTDAGData decodes data written by SerializeGHOSTDAGData.
func DeserializeGHOSTDAGData(raw []byte) (*externalapi.BlockGHOSTDAGData, error) {
	r := bytes.NewReader(raw)

	blueScore, err := readUint64(r)
	if err != nil {
		return nil, errShortRead("ghostdag.blueScore", err)
	}
	blueWorkBytes, err := readBytes(r)
	if err != nil {
		return nil, errShortRead("ghostdag.blueWork", err)
	}
	blueWork := externalapi.NewBlueWork(new(big.Int).SetBytes(blueWorkBytes))
	selectedParent, err := readHash(r)
	if err != nil {
		return nil, errShortRead("ghostdag.selectedParent", err)
	}
	mergeSetBlues, err := readHashes(r)
	if err != nil {
		return nil, errShortRead("ghostdag.mergeSetBlues", err)
	}
	mergeSetReds, err := readHashes(r)
	if err != nil {
		return nil, errShortRead("ghostdag.mergeSetReds", err)
	}
	anticoneCount, err := readUint32(r)
	if err != nil {
		return nil, errShortRead("ghostdag.anticoneCount", err)
	}
	anticoneSizes := make(map[externalapi.DomainHash]externalapi.KType, anticoneCount)
	for i := uint32(0); i < anticoneCount; i++ {
		hash, err := readHash(r)
		if err != nil {
			return nil, errShortRead("ghostdag.anticoneSizes", err)
		}
		size, err := readByte(r)
		if err != nil {
			return nil, errShortRead("ghostdag.anticoneSizes", err)
		}
		anticoneSizes[*hash] = externalapi.KType(size)
	}

	return externalapi.NewBlockGHOSTDAGData(
		blueScore, blueWork, selectedParent, mergeSetBlues, mergeSetReds, anticoneSizes), nil
}
