package binaryserialization

import (
	"bytes"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// SerializeBlockTransactions encodes a block's transaction list for
// persistence (§6: BLOCK_TX -- the header lives separately under HEADER).
func SerializeBlockTransactions(transactions []*externalapi.DomainTransaction) ([]byte, error) {
	buf := newBuffer()
	err := writeUint32(buf, uint32(len(transactions)))
	if err != nil {
		return nil, err
	}
	for _, tx := range transactions {
		txBytes, err := SerializeTransaction(tx)
		if err != nil {
			return nil, err
		}
		err = writeBytes(buf, txBytes)
		if err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DeserializeBlockTransactions decodes a transaction list written by
// SerializeBlockTransactions.
func DeserializeBlockTransactions(raw []byte) ([]*externalapi.DomainTransaction, error) {
	r := bytes.NewReader(raw)
	count, err := readUint32(r)
	if err != nil {
		return nil, errShortRead("blocktransactions.count", err)
	}
	transactions := make([]*externalapi.DomainTransaction, count)
	for i := range transactions {
		txBytes, err := readBytes(r)
		if err != nil {
			return nil, errShortRead("blocktransactions.tx", err)
		}
		transactions[i], err = DeserializeTransaction(txBytes)
		if err != nil {
			return nil, err
		}
	}
	return transactions, nil
}

// SerializeBlockStatus encodes a block status as a single byte (§6: STATUSES).
func SerializeBlockStatus(status externalapi.BlockStatus) []byte {
	return []byte{byte(status)}
}

// DeserializeBlockStatus decodes a status byte written by SerializeBlockStatus.
func DeserializeBlockStatus(raw []byte) (externalapi.BlockStatus, error) {
	if len(raw) != 1 {
		return 0, errShortRead("blockstatus", bytes.ErrTooLarge)
	}
	return externalapi.BlockStatus(raw[0]), nil
}
