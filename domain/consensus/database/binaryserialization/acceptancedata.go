package binaryserialization

import (
	"bytes"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// SerializeAcceptanceData encodes acceptance data for persistence (§6:
// ACCEPTANCE_DATA).
func SerializeAcceptanceData(data externalapi.AcceptanceData) ([]byte, error) {
	buf := newBuffer()
	err := writeUint32(buf, uint32(len(data)))
	if err != nil {
		return nil, err
	}
	for _, blockAcceptance := range data {
		err = writeHash(buf, blockAcceptance.BlockHash)
		if err != nil {
			return nil, err
		}
		err = writeUint32(buf, uint32(len(blockAcceptance.AcceptedTransactions)))
		if err != nil {
			return nil, err
		}
		for _, accepted := range blockAcceptance.AcceptedTransactions {
			txIDHash := externalapi.DomainHash(accepted.TransactionID)
			err = writeHash(buf, &txIDHash)
			if err != nil {
				return nil, err
			}
			err = writeUint16(buf, accepted.IndexWithinBlock)
			if err != nil {
				return nil, err
			}
		}
	}
	return buf.Bytes(), nil
}

// DeserializeAcceptanceData decodes data written by SerializeAcceptanceData.
func DeserializeAcceptanceData(raw []byte) (externalapi.AcceptanceData, error) {
	r := bytes.NewReader(raw)
	count, err := readUint32(r)
	if err != nil {
		return nil, errShortRead("acceptancedata.count", err)
	}
	data := make(externalapi.AcceptanceData, count)
	for i := range data {
		blockHash, err := readHash(r)
		if err != nil {
			return nil, errShortRead("acceptancedata.blockHash", err)
		}
		txCount, err := readUint32(r)
		if err != nil {
			return nil, errShortRead("acceptancedata.txCount", err)
		}
		accepted := make([]*externalapi.AcceptedTransaction, txCount)
		for j := range accepted {
			txIDHash, err := readHash(r)
			if err != nil {
				return nil, errShortRead("acceptancedata.txID", err)
			}
			index, err := readUint16(r)
			if err != nil {
				return nil, errShortRead("acceptancedata.index", err)
			}
			accepted[j] = &externalapi.AcceptedTransaction{
				TransactionID:    externalapi.DomainTransactionID(*txIDHash),
				IndexWithinBlock: index,
			}
		}
		data[i] = &externalapi.BlockAcceptanceData{BlockHash: blockHash, AcceptedTransactions: accepted}
	}
	return data, nil
}
