package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// TransactionValidator validates a single transaction both in isolation
// (structure, no context needed) and in context (UTXO lookups, maturity,
// script verification) (§4.3).
type TransactionValidator interface {
	ValidateTransactionInIsolation(tx *externalapi.DomainTransaction) error
	ValidateTransactionInContextAndPopulateMassAndFee(stagingArea *StagingArea, tx *externalapi.DomainTransaction, povBlockDAAScore uint64, povBlockPastMedianTime int64) error
}
