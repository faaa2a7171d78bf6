package blockvalidator

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/consensushashing"
)

// ValidateBodyInContext validates a block's transactions against the
// consensus state accumulated by its mergeset (§4.3's "Context" bullet):
// an input spending a transaction that belongs to this block's own
// mergeset must resolve to an output that transaction actually has, and
// every non-coinbase transaction's lock time must have cleared against
// the block's own DAA score and past median time. Inputs spending
// anything outside the mergeset are left for the virtual processor's
// full UTXO resolution (§4.4), which runs only once this block joins the
// selected chain.
func (v *blockValidator) ValidateBodyInContext(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	block, err := v.blockStore.Block(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}

	mergeSetOutputCounts, err := v.mergeSetOutputCounts(stagingArea, blockHash, block)
	if err != nil {
		return err
	}

	povBlockDAAScore, err := v.daaScoreManager.DAAScore(stagingArea, blockHash)
	if err != nil {
		return err
	}
	povBlockPastMedianTime, err := v.pastMedianTimeManager.PastMedianTime(stagingArea, blockHash)
	if err != nil {
		return err
	}

	for _, tx := range block.Transactions {
		if tx.IsCoinbase() {
			continue
		}

		for _, in := range tx.Inputs {
			outputCount, isMergeSetInternal := mergeSetOutputCounts[in.PreviousOutpoint.TransactionID]
			if !isMergeSetInternal {
				continue
			}
			if in.PreviousOutpoint.Index >= outputCount {
				return ruleerrors.NewErrUnresolvedMergesetTxInput()
			}
		}

		if !sequenceLockClearedForBody(tx, povBlockDAAScore, povBlockPastMedianTime) {
			return ruleerrors.NewErrLockTime()
		}
	}

	return nil
}

// mergeSetOutputCounts maps every transaction ID produced by blockHash's
// own body and its blue mergeset blocks to its output count, the lookup
// table the mergeset-internal resolvability check consults.
func (v *blockValidator) mergeSetOutputCounts(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash, block *externalapi.DomainBlock) (map[externalapi.DomainTransactionID]uint32, error) {
	counts := make(map[externalapi.DomainTransactionID]uint32)
	addBlockTransactions(counts, block)

	ghostdagData, err := v.ghostdagDataStore.Get(v.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return nil, err
	}

	for _, blue := range ghostdagData.MergeSetBlues() {
		if blue.Equal(blockHash) {
			continue
		}
		blueBlock, err := v.blockStore.Block(v.databaseContext, stagingArea, blue)
		if err != nil {
			continue // merged block's body not yet available; its outputs are resolved later by the virtual processor
		}
		addBlockTransactions(counts, blueBlock)
	}

	return counts, nil
}

func addBlockTransactions(counts map[externalapi.DomainTransactionID]uint32, block *externalapi.DomainBlock) {
	for _, tx := range block.Transactions {
		counts[*consensushashing.TransactionID(tx)] = uint32(len(tx.Outputs))
	}
}

// sequenceLockClearedForBody mirrors transactionvalidator's lock-time
// rule (§4.3: "lock-time check against block's DAA score and
// past-median-time"), evaluated here since the body processor runs
// before any UTXO entries are resolved.
func sequenceLockClearedForBody(tx *externalapi.DomainTransaction, povBlockDAAScore uint64, povBlockPastMedianTime int64) bool {
	if tx.LockTime == 0 {
		return true
	}

	const lockTimeThreshold = 5e8
	if tx.LockTime < lockTimeThreshold {
		return povBlockDAAScore >= tx.LockTime
	}

	return povBlockPastMedianTime >= int64(tx.LockTime)
}
