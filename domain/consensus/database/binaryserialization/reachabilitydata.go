package binaryserialization

import (
	"bytes"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
)

// SerializeReachabilityData encodes reachability data for persistence (§6:
// REACHABILITY).
func SerializeReachabilityData(data *model.ReachabilityData) ([]byte, error) {
	buf := newBuffer()
	err := writeUint64(buf, data.Interval.Start)
	if err != nil {
		return nil, err
	}
	err = writeUint64(buf, data.Interval.End)
	if err != nil {
		return nil, err
	}
	err = writeHash(buf, data.Parent)
	if err != nil {
		return nil, err
	}
	err = writeHashes(buf, data.Children)
	if err != nil {
		return nil, err
	}
	err = writeHashes(buf, data.FutureCoveringSet)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeReachabilityData decodes data written by SerializeReachabilityData.
func DeserializeReachabilityData(raw []byte) (*model.ReachabilityData, error) {
	r := bytes.NewReader(raw)
	start, err := readUint64(r)
	if err != nil {
		return nil, errShortRead("reachability.start", err)
	}
	end, err := readUint64(r)
	if err != nil {
		return nil, errShortRead("reachability.end", err)
	}
	parent, err := readHash(r)
	if err != nil {
		return nil, errShortRead("reachability.parent", err)
	}
	children, err := readHashes(r)
	if err != nil {
		return nil, errShortRead("reachability.children", err)
	}
	futureCoveringSet, err := readHashes(r)
	if err != nil {
		return nil, errShortRead("reachability.futureCoveringSet", err)
	}
	return &model.ReachabilityData{
		Interval:          &model.ReachabilityInterval{Start: start, End: end},
		Parent:            parent,
		Children:          children,
		FutureCoveringSet: futureCoveringSet,
	}, nil
}
