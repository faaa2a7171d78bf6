package reachabilitymanager

import (
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockrelationstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/reachabilitydatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

func TestReachabilityLinearChainAncestry(t *testing.T) {
	stagingArea := model.NewStagingArea()
	ghostdagDataStore := ghostdagdatastore.New(0)
	reachabilityDataStore := reachabilitydatastore.New()
	blockRelationStore := blockrelationstore.New(0)
	rm := New(nil, reachabilityDataStore, ghostdagDataStore, blockRelationStore)

	genesisHash := testHash(0)
	blockRelationStore.StageBlockRelation(stagingArea, genesisHash, &model.BlockRelations{})
	ghostdagDataStore.Stage(stagingArea, genesisHash, externalapi.NewBlockGHOSTDAGData(
		0, externalapi.BlueWorkFromUint64(0), nil, nil, nil, nil), false)
	if err := rm.AddBlock(stagingArea, genesisHash); err != nil {
		t.Fatalf("AddBlock (genesis): %+v", err)
	}

	block1 := testHash(1)
	blockRelationStore.StageBlockRelation(stagingArea, block1, &model.BlockRelations{Parents: []*externalapi.DomainHash{genesisHash}})
	ghostdagDataStore.Stage(stagingArea, block1, externalapi.NewBlockGHOSTDAGData(
		1, externalapi.BlueWorkFromUint64(1), genesisHash, nil, nil, nil), false)
	if err := rm.AddBlock(stagingArea, block1); err != nil {
		t.Fatalf("AddBlock (block1): %+v", err)
	}

	block2 := testHash(2)
	blockRelationStore.StageBlockRelation(stagingArea, block2, &model.BlockRelations{Parents: []*externalapi.DomainHash{block1}})
	ghostdagDataStore.Stage(stagingArea, block2, externalapi.NewBlockGHOSTDAGData(
		2, externalapi.BlueWorkFromUint64(2), block1, nil, nil, nil), false)
	if err := rm.AddBlock(stagingArea, block2); err != nil {
		t.Fatalf("AddBlock (block2): %+v", err)
	}

	isAncestor, err := rm.IsDAGAncestorOf(stagingArea, genesisHash, block2)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf: %+v", err)
	}
	if !isAncestor {
		t.Fatalf("expected genesis to be an ancestor of block2")
	}

	isAncestor, err = rm.IsDAGAncestorOf(stagingArea, block2, genesisHash)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf (reversed): %+v", err)
	}
	if isAncestor {
		t.Fatalf("did not expect block2 to be an ancestor of genesis")
	}
}

func TestReachabilityMergeParentViaFutureCoveringSet(t *testing.T) {
	stagingArea := model.NewStagingArea()
	ghostdagDataStore := ghostdagdatastore.New(0)
	reachabilityDataStore := reachabilitydatastore.New()
	blockRelationStore := blockrelationstore.New(0)
	rm := New(nil, reachabilityDataStore, ghostdagDataStore, blockRelationStore)

	genesisHash := testHash(0)
	blockRelationStore.StageBlockRelation(stagingArea, genesisHash, &model.BlockRelations{})
	ghostdagDataStore.Stage(stagingArea, genesisHash, externalapi.NewBlockGHOSTDAGData(
		0, externalapi.BlueWorkFromUint64(0), nil, nil, nil, nil), false)
	if err := rm.AddBlock(stagingArea, genesisHash); err != nil {
		t.Fatalf("AddBlock (genesis): %+v", err)
	}

	// Two siblings off genesis.
	sideBlock := testHash(1)
	blockRelationStore.StageBlockRelation(stagingArea, sideBlock, &model.BlockRelations{Parents: []*externalapi.DomainHash{genesisHash}})
	ghostdagDataStore.Stage(stagingArea, sideBlock, externalapi.NewBlockGHOSTDAGData(
		1, externalapi.BlueWorkFromUint64(1), genesisHash, nil, nil, nil), false)
	if err := rm.AddBlock(stagingArea, sideBlock); err != nil {
		t.Fatalf("AddBlock (sideBlock): %+v", err)
	}

	chainBlock := testHash(2)
	blockRelationStore.StageBlockRelation(stagingArea, chainBlock, &model.BlockRelations{Parents: []*externalapi.DomainHash{genesisHash}})
	ghostdagDataStore.Stage(stagingArea, chainBlock, externalapi.NewBlockGHOSTDAGData(
		1, externalapi.BlueWorkFromUint64(1), genesisHash, nil, nil, nil), false)
	if err := rm.AddBlock(stagingArea, chainBlock); err != nil {
		t.Fatalf("AddBlock (chainBlock): %+v", err)
	}

	// A block with both as parents: chainBlock as selected parent (tree
	// edge), sideBlock as the other parent (future-covering-set edge).
	mergeBlock := testHash(3)
	blockRelationStore.StageBlockRelation(stagingArea, mergeBlock, &model.BlockRelations{
		Parents: []*externalapi.DomainHash{chainBlock, sideBlock},
	})
	ghostdagDataStore.Stage(stagingArea, mergeBlock, externalapi.NewBlockGHOSTDAGData(
		2, externalapi.BlueWorkFromUint64(2), chainBlock, []*externalapi.DomainHash{sideBlock}, nil, nil), false)
	if err := rm.AddBlock(stagingArea, mergeBlock); err != nil {
		t.Fatalf("AddBlock (mergeBlock): %+v", err)
	}

	isAncestor, err := rm.IsDAGAncestorOf(stagingArea, sideBlock, mergeBlock)
	if err != nil {
		t.Fatalf("IsDAGAncestorOf: %+v", err)
	}
	if !isAncestor {
		t.Fatalf("expected sideBlock (merged via a non-selected-parent edge) to be recognized as mergeBlock's ancestor")
	}
}
