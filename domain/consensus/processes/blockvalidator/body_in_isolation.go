package blockvalidator

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/ruleerrors"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/mass"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/merkle"
)

// ValidateBodyInIsolation validates a block's attached transactions
// without consulting any other block's state (§4.3): the recomputed
// merkle root, the coinbase's shape and declared blue score, each
// transaction's own structural rules, and the block's total mass.
func (v *blockValidator) ValidateBodyInIsolation(stagingArea *model.StagingArea, blockHash *externalapi.DomainHash) error {
	block, err := v.blockStore.Block(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}
	header, err := v.blockHeaderStore.BlockHeader(v.databaseContext, stagingArea, blockHash)
	if err != nil {
		return err
	}

	if err := v.checkMerkleRoot(block, header); err != nil {
		return err
	}

	if err := v.checkCoinbaseShape(block, header); err != nil {
		return err
	}

	for _, tx := range block.Transactions {
		if err := v.transactionValidator.ValidateTransactionInIsolation(tx); err != nil {
			return err
		}
	}

	return v.checkBlockMass(block)
}

func (v *blockValidator) checkMerkleRoot(block *externalapi.DomainBlock, header *externalapi.DomainBlockHeader) error {
	computed := merkle.CalculateHashMerkleRoot(block.Transactions)
	if !computed.Equal(header.HashMerkleRoot) {
		return ruleerrors.NewErrBadMerkleRoot(header.HashMerkleRoot, computed)
	}
	return nil
}

// checkCoinbaseShape requires exactly one coinbase transaction, at index
// 0, on the coinbase subnetwork, whose payload's declared blue score
// matches the header's and whose payload doesn't exceed the configured
// length (§4.3).
func (v *blockValidator) checkCoinbaseShape(block *externalapi.DomainBlock, header *externalapi.DomainBlockHeader) error {
	if len(block.Transactions) == 0 || !block.Transactions[0].IsCoinbase() {
		return ruleerrors.NewErrFirstTxNotCoinbase()
	}

	for _, tx := range block.Transactions[1:] {
		if tx.IsCoinbase() {
			return ruleerrors.NewErrMultipleCoinbases()
		}
	}

	coinbaseTx := block.Transactions[0]
	if len(coinbaseTx.Payload) > v.maxCoinbasePayloadLen {
		return ruleerrors.NewErrBadCoinbasePayload("payload longer than the maximum allowed length")
	}

	blueScore, _, err := v.coinbaseManager.ExtractCoinbaseBlueScoreAndSubsidy(coinbaseTx)
	if err != nil {
		return ruleerrors.NewErrBadCoinbasePayload(err.Error())
	}
	if blueScore != header.BlueScore {
		return ruleerrors.NewErrBadCoinbasePayload("payload blue score does not match the header's")
	}

	return nil
}

func (v *blockValidator) checkBlockMass(block *externalapi.DomainBlock) error {
	totalMass := mass.BlockMass(v.massParams, block.Transactions)
	if totalMass > v.maxBlockMass {
		return ruleerrors.NewErrMassTooHigh()
	}
	return nil
}
