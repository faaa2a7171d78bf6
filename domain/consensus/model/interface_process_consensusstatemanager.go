package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// ConsensusStateManager owns virtual-state resolution: recomputing the
// virtual's parents (the DAG tips), folding their UTXO diffs, walking any
// selected-parent-chain reorg, and producing the chain-change set the
// selected-chain store and RPC/indexer layers consume (§4.4).
type ConsensusStateManager interface {
	ResolveBlockStatus(stagingArea *StagingArea, blockHash *externalapi.DomainHash) (externalapi.BlockStatus, error)
	UpdateVirtual(stagingArea *StagingArea, newBlockHash *externalapi.DomainHash) (*externalapi.ChainPath, error)
	CalculatePastUTXOAndAcceptanceData(stagingArea *StagingArea, blockHash *externalapi.DomainHash) (*externalapi.UTXODiff, externalapi.AcceptanceData, *externalapi.DomainHash, error)
	RestorePastUTXOSetIterator(stagingArea *StagingArea, blockHash *externalapi.DomainHash) ([]*externalapi.OutpointAndUTXOEntryPair, error)
}
