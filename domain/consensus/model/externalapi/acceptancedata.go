package externalapi

// AcceptedTransaction names one transaction accepted by a chain block,
// together with its position within the block it originated in (§3).
type AcceptedTransaction struct {
	TransactionID  DomainTransactionID
	IndexWithinBlock uint16
}

// BlockAcceptanceData is one chain block's ordered acceptance record,
// covering its mergeset (§3).
type BlockAcceptanceData struct {
	BlockHash            *DomainHash
	AcceptedTransactions []*AcceptedTransaction
}

// AcceptanceData is the full acceptance record of a chain block: one entry
// per blue mergeset member, then one for the block itself, then one entry
// with no accepted transactions per red mergeset member.
type AcceptanceData []*BlockAcceptanceData
