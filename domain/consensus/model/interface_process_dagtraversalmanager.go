package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// SelectedParentIterator walks a selected-parent chain from a starting
// block down toward the DAG origin, one GHOSTDAG-selected-parent hop at a
// time (§4.4's reorg-path walk, §4.5's chain-ancestor notion).
type SelectedParentIterator interface {
	Next() bool
	Get() *externalapi.DomainHash
}

// DAGTraversalManager walks the DAG along selected-parent edges and
// computes a block's anticone, the two traversal primitives the virtual
// processor's reorg-path and finality logic are built from (§4.4, §4.5).
type DAGTraversalManager interface {
	SelectedParentIterator(stagingArea *StagingArea, highHash *externalapi.DomainHash) SelectedParentIterator
	HighestChainBlockBelowBlueScore(stagingArea *StagingArea, highHash *externalapi.DomainHash, blueScore uint64) (*externalapi.DomainHash, error)
	Anticone(stagingArea *StagingArea, blockHash *externalapi.DomainHash) ([]*externalapi.DomainHash, error)
}
