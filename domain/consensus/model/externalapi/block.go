package externalapi

// DomainBlock is a header plus its ordered transaction list (§3). The
// first transaction must be a coinbase transaction on the native
// subnetwork reserved for coinbases.
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// Clone returns a deep clone of the block.
func (b *DomainBlock) Clone() *DomainBlock {
	transactions := make([]*DomainTransaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		transactions[i] = tx.Clone()
	}
	return &DomainBlock{
		Header:       b.Header.Clone(),
		Transactions: transactions,
	}
}

// DomainCoinbaseData is the caller-supplied part of a coinbase payload:
// the script paid to and arbitrary extra data (§4.3).
type DomainCoinbaseData struct {
	ScriptPublicKey *ScriptPublicKey
	ExtraData       []byte
}
