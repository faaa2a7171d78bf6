package binaryserialization

import (
	"bytes"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
)

// SerializeBlockRelations encodes block relations for persistence (§6:
// RELATIONS(level)).
func SerializeBlockRelations(relations *model.BlockRelations) ([]byte, error) {
	buf := newBuffer()
	err := writeHashes(buf, relations.Parents)
	if err != nil {
		return nil, err
	}
	err = writeHashes(buf, relations.Children)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializeBlockRelations decodes relations written by SerializeBlockRelations.
func DeserializeBlockRelations(raw []byte) (*model.BlockRelations, error) {
	r := bytes.NewReader(raw)
	parents, err := readHashes(r)
	if err != nil {
		return nil, errShortRead("blockrelations.parents", err)
	}
	children, err := readHashes(r)
	if err != nil {
		return nil, errShortRead("blockrelations.children", err)
	}
	return &model.BlockRelations{Parents: parents, Children: children}, nil
}
