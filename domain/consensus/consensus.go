// Package consensus exposes the node's external surface over the
// pipeline built in processes/blockprocessor (§6): the three submission
// entry points P2P/IBD drive, and the read-only queries RPC/indexer
// layers issue against the current virtual state. No literal teacher
// source survives for this file at the externalapi/StagingArea shape
// this repo settled on -- the retrieved consensus.go is the pre-refactor
// appmessage.MsgBlock-based version kept only for its struct/interface
// shape -- so the query bodies are grounded directly in spec.md §6's
// operation list, composed from the managers the factory wires.
package consensus

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// Consensus is the node's consensus-core handle: the three pipeline
// submission entry points plus the read-only queries RPC/indexer layers
// issue against it.
type Consensus interface {
	SubmitHeader(header *externalapi.DomainBlockHeader) (externalapi.BlockStatus, error)
	SubmitBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error)
	SubmitTrustedBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error)

	GetBlockStatus(blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error)
	GetBlock(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error)
	GetBlockHeader(blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error)
	GetBlockTransactions(blockHash *externalapi.DomainHash) ([]*externalapi.DomainTransaction, error)
	GetHeaders(lowChainIndex, highChainIndex uint64) ([]*externalapi.DomainBlockHeader, error)
	GetBlockColor(blockHash *externalapi.DomainHash) (externalapi.BlockColor, error)

	GetVirtualSelectedParent() (*externalapi.DomainHash, error)
	GetVirtualDAAScore() (uint64, error)
	GetSinkBlueScore() (uint64, error)
	GetVirtualChainFromBlock(blockHash *externalapi.DomainHash) (*externalapi.ChainPath, error)

	EstimateNetworkHashesPerSecond(windowSize int) (uint64, error)
}

type consensus struct {
	databaseContext model.DBManager

	blockProcessor      model.BlockProcessor
	dagTraversalManager model.DAGTraversalManager
	difficultyManager   model.DifficultyManager
	ghostdagDataStore   model.GHOSTDAGDataStore
	blockStore          model.BlockStore
	blockHeaderStore    model.BlockHeaderStore
	blockStatusStore    model.BlockStatusStore
	virtualStateStore   model.VirtualStateStore
	selectedChainStore  model.SelectedChainStore
}

// New wires an already-constructed set of managers/stores into a Consensus
// handle. Called once per active/staging instance by the factory.
func New(
	databaseContext model.DBManager,
	blockProcessor model.BlockProcessor,
	dagTraversalManager model.DAGTraversalManager,
	difficultyManager model.DifficultyManager,
	ghostdagDataStore model.GHOSTDAGDataStore,
	blockStore model.BlockStore,
	blockHeaderStore model.BlockHeaderStore,
	blockStatusStore model.BlockStatusStore,
	virtualStateStore model.VirtualStateStore,
	selectedChainStore model.SelectedChainStore) Consensus {

	return &consensus{
		databaseContext:     databaseContext,
		blockProcessor:      blockProcessor,
		dagTraversalManager: dagTraversalManager,
		difficultyManager:   difficultyManager,
		ghostdagDataStore:   ghostdagDataStore,
		blockStore:          blockStore,
		blockHeaderStore:    blockHeaderStore,
		blockStatusStore:    blockStatusStore,
		virtualStateStore:   virtualStateStore,
		selectedChainStore:  selectedChainStore,
	}
}

// SubmitHeader runs a lone header through the header stage (§6: submit_header).
func (c *consensus) SubmitHeader(header *externalapi.DomainBlockHeader) (externalapi.BlockStatus, error) {
	return c.blockProcessor.ValidateAndInsertHeader(header)
}

// SubmitBlock runs a full header+body unit through the pipeline (§6: submit_block).
func (c *consensus) SubmitBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error) {
	return c.blockProcessor.ValidateAndInsertBlock(block, false)
}

// SubmitTrustedBlock is the pruning-proof bootstrap entry point (§6:
// submit_trusted_block). This repo has no pruning-point-proof import
// subsystem (see DESIGN.md), so it still runs full independent
// validation rather than trusting caller-supplied GHOSTDAG data.
func (c *consensus) SubmitTrustedBlock(block *externalapi.DomainBlock) (externalapi.BlockStatus, error) {
	return c.blockProcessor.ValidateAndInsertBlock(block, true)
}

func (c *consensus) GetBlockStatus(blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error) {
	stagingArea := model.NewStagingArea()
	return c.blockStatusStore.Get(c.databaseContext, stagingArea, blockHash)
}

func (c *consensus) GetBlock(blockHash *externalapi.DomainHash) (*externalapi.DomainBlock, error) {
	stagingArea := model.NewStagingArea()
	return c.blockStore.Block(c.databaseContext, stagingArea, blockHash)
}

func (c *consensus) GetBlockHeader(blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {
	stagingArea := model.NewStagingArea()
	return c.blockHeaderStore.BlockHeader(c.databaseContext, stagingArea, blockHash)
}

func (c *consensus) GetBlockTransactions(blockHash *externalapi.DomainHash) ([]*externalapi.DomainTransaction, error) {
	block, err := c.GetBlock(blockHash)
	if err != nil {
		return nil, err
	}
	return block.Transactions, nil
}

// GetHeaders returns the headers of the selected-chain blocks between two
// chain indices, inclusive (a documented reading of spec.md §6's
// `get_headers(low,high)`, whose own low/high units aren't named there;
// the selected-chain index is the only monotonic, externally-stable axis
// this repo keeps a direct lookup for).
func (c *consensus) GetHeaders(lowChainIndex, highChainIndex uint64) ([]*externalapi.DomainBlockHeader, error) {
	if highChainIndex < lowChainIndex {
		return nil, errors.Errorf("high chain index %d below low chain index %d", highChainIndex, lowChainIndex)
	}
	stagingArea := model.NewStagingArea()

	headers := make([]*externalapi.DomainBlockHeader, 0, highChainIndex-lowChainIndex+1)
	for index := lowChainIndex; index <= highChainIndex; index++ {
		hash, err := c.selectedChainStore.GetHashByIndex(c.databaseContext, stagingArea, index)
		if err != nil {
			return nil, err
		}
		header, err := c.blockHeaderStore.BlockHeader(c.databaseContext, stagingArea, hash)
		if err != nil {
			return nil, err
		}
		headers = append(headers, header)
	}
	return headers, nil
}

// GetBlockColor resolves blockHash's mergeset classification against the
// chain block that accepted it (§6: get_block_color). The containing
// chain block is found by walking to the nearest chain ancestor at or
// below blockHash's own blue score, then stepping one chain index
// forward -- mergeset members always carry a lower blue score than the
// chain block that accepted them, so that next chain block is the first
// candidate whose mergeset could contain blockHash.
func (c *consensus) GetBlockColor(blockHash *externalapi.DomainHash) (externalapi.BlockColor, error) {
	stagingArea := model.NewStagingArea()

	ghostdagData, err := c.ghostdagDataStore.Get(c.databaseContext, stagingArea, blockHash, false)
	if err != nil {
		return externalapi.ColorUnknown, err
	}

	sink, err := c.sink(stagingArea)
	if err != nil {
		return externalapi.ColorUnknown, err
	}

	belowChainBlock, err := c.dagTraversalManager.HighestChainBlockBelowBlueScore(stagingArea, sink, ghostdagData.BlueScore())
	if err != nil {
		return externalapi.ColorUnknown, err
	}
	if belowChainBlock != nil && belowChainBlock.Equal(blockHash) {
		// blockHash is itself on the selected chain.
		return externalapi.ColorBlue, nil
	}

	var candidateIndex uint64
	if belowChainBlock == nil {
		candidateIndex = 0
	} else {
		belowIndex, err := c.selectedChainStore.GetIndexByHash(c.databaseContext, stagingArea, belowChainBlock)
		if err != nil {
			return externalapi.ColorUnknown, err
		}
		candidateIndex = belowIndex + 1
	}

	highestIndex, err := c.selectedChainStore.HighestIndex(c.databaseContext, stagingArea)
	if err != nil {
		return externalapi.ColorUnknown, err
	}
	if candidateIndex > highestIndex {
		return externalapi.ColorUnknown, nil
	}

	candidateHash, err := c.selectedChainStore.GetHashByIndex(c.databaseContext, stagingArea, candidateIndex)
	if err != nil {
		return externalapi.ColorUnknown, err
	}
	if candidateHash.Equal(blockHash) {
		return externalapi.ColorBlue, nil
	}

	candidateGhostdagData, err := c.ghostdagDataStore.Get(c.databaseContext, stagingArea, candidateHash, false)
	if err != nil {
		return externalapi.ColorUnknown, err
	}
	if candidateGhostdagData.IsBlue(blockHash) {
		return externalapi.ColorBlue, nil
	}
	for _, red := range candidateGhostdagData.MergeSetReds() {
		if red.Equal(blockHash) {
			return externalapi.ColorRed, nil
		}
	}
	return externalapi.ColorUnknown, nil
}

func (c *consensus) GetVirtualSelectedParent() (*externalapi.DomainHash, error) {
	stagingArea := model.NewStagingArea()
	return c.sink(stagingArea)
}

func (c *consensus) GetVirtualDAAScore() (uint64, error) {
	stagingArea := model.NewStagingArea()
	virtualState, err := c.virtualStateStore.VirtualState(c.databaseContext, stagingArea)
	if err != nil {
		return 0, err
	}
	return virtualState.DAAScore, nil
}

func (c *consensus) GetSinkBlueScore() (uint64, error) {
	stagingArea := model.NewStagingArea()
	sink, err := c.sink(stagingArea)
	if err != nil {
		return 0, err
	}
	ghostdagData, err := c.ghostdagDataStore.Get(c.databaseContext, stagingArea, sink, false)
	if err != nil {
		return 0, err
	}
	return ghostdagData.BlueScore(), nil
}

// GetVirtualChainFromBlock streams the chain change set between blockHash
// and the current sink (§6: get_virtual_chain_from_block). Only the
// still-an-ancestor case is implemented: if blockHash was since reorged
// off the selected chain, this returns an error rather than the full
// tree diff a fork-aware implementation would compute (documented
// simplification, see DESIGN.md).
func (c *consensus) GetVirtualChainFromBlock(blockHash *externalapi.DomainHash) (*externalapi.ChainPath, error) {
	stagingArea := model.NewStagingArea()

	fromIndex, err := c.selectedChainStore.GetIndexByHash(c.databaseContext, stagingArea, blockHash)
	if err != nil {
		return nil, errors.Wrap(err, "blockHash is not on the current selected chain")
	}
	highestIndex, err := c.selectedChainStore.HighestIndex(c.databaseContext, stagingArea)
	if err != nil {
		return nil, err
	}

	chainPath := &externalapi.ChainPath{}
	for index := fromIndex + 1; index <= highestIndex; index++ {
		hash, err := c.selectedChainStore.GetHashByIndex(c.databaseContext, stagingArea, index)
		if err != nil {
			return nil, err
		}
		chainPath.Added = append(chainPath.Added, &externalapi.ChainBlock{Hash: hash})
	}
	return chainPath, nil
}

func (c *consensus) EstimateNetworkHashesPerSecond(windowSize int) (uint64, error) {
	stagingArea := model.NewStagingArea()
	sink, err := c.sink(stagingArea)
	if err != nil {
		return 0, err
	}
	return c.difficultyManager.EstimateNetworkHashesPerSecond(stagingArea, sink, windowSize)
}

func (c *consensus) sink(stagingArea *model.StagingArea) (*externalapi.DomainHash, error) {
	virtualState, err := c.virtualStateStore.VirtualState(c.databaseContext, stagingArea)
	if err != nil {
		return nil, err
	}
	return virtualState.SelectedParent, nil
}

var _ Consensus = (*consensus)(nil)
