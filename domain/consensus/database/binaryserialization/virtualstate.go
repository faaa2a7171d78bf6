package binaryserialization

import (
	"bytes"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// SerializeVirtualState encodes the virtual state for persistence (§6: no
// dedicated prefix is named for it in spec.md's list; it is kept under the
// GHOSTDAG-shaped VIRTUAL_STATE prefix the virtual-state store defines).
func SerializeVirtualState(state *externalapi.VirtualState) ([]byte, error) {
	buf := newBuffer()
	err := writeHashes(buf, state.Parents)
	if err != nil {
		return nil, err
	}
	err = writeHash(buf, state.SelectedParent)
	if err != nil {
		return nil, err
	}
	ghostdagBytes, err := SerializeGHOSTDAGData(state.GhostdagData)
	if err != nil {
		return nil, err
	}
	err = writeBytes(buf, ghostdagBytes)
	if err != nil {
		return nil, err
	}
	err = writeUint64(buf, state.DAAScore)
	if err != nil {
		return nil, err
	}
	err = writeUint32(buf, state.Bits)
	if err != nil {
		return nil, err
	}
	err = writeUint64(buf, uint64(state.PastMedianTime))
	if err != nil {
		return nil, err
	}
	utxoDiffBytes, err := SerializeUTXODiff(state.UTXODiffFromSelectedTip)
	if err != nil {
		return nil, err
	}
	err = writeBytes(buf, utxoDiffBytes)
	if err != nil {
		return nil, err
	}
	err = writeHash(buf, state.AcceptedIDMerkleRoot)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeVirtualState decodes state written by SerializeVirtualState.
func DeserializeVirtualState(raw []byte) (*externalapi.VirtualState, error) {
	r := bytes.NewReader(raw)

	parents, err := readHashes(r)
	if err != nil {
		return nil, errShortRead("virtualstate.parents", err)
	}
	selectedParent, err := readHash(r)
	if err != nil {
		return nil, errShortRead("virtualstate.selectedParent", err)
	}
	ghostdagBytes, err := readBytes(r)
	if err != nil {
		return nil, errShortRead("virtualstate.ghostdagData", err)
	}
	ghostdagData, err := DeserializeGHOSTDAGData(ghostdagBytes)
	if err != nil {
		return nil, err
	}
	daaScore, err := readUint64(r)
	if err != nil {
		return nil, errShortRead("virtualstate.daaScore", err)
	}
	bits, err := readUint32(r)
	if err != nil {
		return nil, errShortRead("virtualstate.bits", err)
	}
	pastMedianTime, err := readUint64(r)
	if err != nil {
		return nil, errShortRead("virtualstate.pastMedianTime", err)
	}
	utxoDiffBytes, err := readBytes(r)
	if err != nil {
		return nil, errShortRead("virtualstate.utxoDiff", err)
	}
	utxoDiff, err := DeserializeUTXODiff(utxoDiffBytes)
	if err != nil {
		return nil, err
	}
	acceptedIDMerkleRoot, err := readHash(r)
	if err != nil {
		return nil, errShortRead("virtualstate.acceptedIDMerkleRoot", err)
	}

	return &externalapi.VirtualState{
		Parents:                 parents,
		SelectedParent:          selectedParent,
		GhostdagData:            ghostdagData,
		DAAScore:                daaScore,
		Bits:                    bits,
		PastMedianTime:          int64(pastMedianTime),
		UTXODiffFromSelectedTip: utxoDiff,
		AcceptedIDMerkleRoot:    acceptedIDMerkleRoot,
	}, nil
}
