package ghostdagmanager

import (
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockheaderstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockrelationstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/blockstatusstore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/reachabilitydatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/dagtopologymanager"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/reachabilitymanager"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

// testHarness wires real (in-memory, staged-only) topology, reachability
// and GHOSTDAG data stores the same way the block processor does, so
// GHOSTDAG's IsAncestorOf/Parents lookups see a genuine DAG.
type testHarness struct {
	stagingArea      *model.StagingArea
	topology         model.DAGTopologyManager
	reachability     model.ReachabilityManager
	ghostdag         model.GHOSTDAGManager
	blockHeaderStore model.BlockHeaderStore
}

func newTestHarness(k externalapi.KType) *testHarness {
	stagingArea := model.NewStagingArea()
	blockRelationStore := blockrelationstore.New(0)
	blockStatusStore := blockstatusstore.New()
	reachabilityDataStore := reachabilitydatastore.New()
	ghostdagDataStore := ghostdagdatastore.New(0)
	blockHeaderStore := blockheaderstore.New()

	reachability := reachabilitymanager.New(nil, reachabilityDataStore, ghostdagDataStore, blockRelationStore)
	topology := dagtopologymanager.New(nil, reachability, blockRelationStore, blockStatusStore)
	ghostdag := New(nil, topology, ghostdagDataStore, blockHeaderStore, k)

	return &testHarness{
		stagingArea:      stagingArea,
		topology:         topology,
		reachability:     reachability,
		ghostdag:         ghostdag,
		blockHeaderStore: blockHeaderStore,
	}
}

// addBlock stages a minimal header (for the blue-work accumulation), wires
// topology, runs GHOSTDAG classification, then adds the block to the
// reachability tree -- the same sequence processHeader drives in the real
// pipeline.
func (h *testHarness) addBlock(t *testing.T, blockHash *externalapi.DomainHash, parents []*externalapi.DomainHash, bits uint32) {
	t.Helper()

	h.blockHeaderStore.Stage(h.stagingArea, blockHash, &externalapi.DomainBlockHeader{
		ParentsByLevel: [][]*externalapi.DomainHash{parents},
		HashMerkleRoot: testHash(0xff),
		Bits:           bits,
	})
	if err := h.topology.SetParents(h.stagingArea, blockHash, parents); err != nil {
		t.Fatalf("SetParents(%s): %+v", blockHash, err)
	}
	if err := h.ghostdag.GHOSTDAG(h.stagingArea, blockHash); err != nil {
		t.Fatalf("GHOSTDAG(%s): %+v", blockHash, err)
	}
	if err := h.reachability.AddBlock(h.stagingArea, blockHash); err != nil {
		t.Fatalf("AddBlock(%s): %+v", blockHash, err)
	}
}

func TestGHOSTDAGGenesisIsTrivial(t *testing.T) {
	h := newTestHarness(3)
	genesisHash := testHash(0)
	h.addBlock(t, genesisHash, nil, 0x207fffff)

	data, err := h.ghostdag.BlockData(h.stagingArea, genesisHash)
	if err != nil {
		t.Fatalf("BlockData: %+v", err)
	}
	if data.BlueScore() != 0 {
		t.Fatalf("expected genesis blue score 0, got %d", data.BlueScore())
	}
	if data.SelectedParent() != nil {
		t.Fatalf("expected genesis to have no selected parent, got %s", data.SelectedParent())
	}
}

// TestGHOSTDAGMergesSiblingAsBlueUnderLargeK builds genesis -> {blockA,
// blockB} -> mergeBlock and confirms the non-selected parent is classified
// blue when k is large enough to admit it (§4.1 step 4).
func TestGHOSTDAGMergesSiblingAsBlueUnderLargeK(t *testing.T) {
	h := newTestHarness(3)

	genesisHash := testHash(0)
	h.addBlock(t, genesisHash, nil, 0x207fffff)

	blockA := testHash(1)
	h.addBlock(t, blockA, []*externalapi.DomainHash{genesisHash}, 0x207fffff)

	blockB := testHash(2)
	h.addBlock(t, blockB, []*externalapi.DomainHash{genesisHash}, 0x207fffff)

	mergeBlock := testHash(3)
	h.addBlock(t, mergeBlock, []*externalapi.DomainHash{blockA, blockB}, 0x207fffff)

	data, err := h.ghostdag.BlockData(h.stagingArea, mergeBlock)
	if err != nil {
		t.Fatalf("BlockData: %+v", err)
	}

	selectedParent, err := h.ghostdag.ChooseSelectedParent(h.stagingArea, blockA, blockB)
	if err != nil {
		t.Fatalf("ChooseSelectedParent: %+v", err)
	}
	if !data.SelectedParent().Equal(selectedParent) {
		t.Fatalf("expected mergeBlock's selected parent to match ChooseSelectedParent's independent verdict")
	}

	var other *externalapi.DomainHash
	if selectedParent.Equal(blockA) {
		other = blockB
	} else {
		other = blockA
	}

	found := false
	for _, blue := range data.MergeSetBlues() {
		if blue.Equal(other) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the non-selected sibling %s to be classified blue under k=3, got blues=%v reds=%v",
			other, data.MergeSetBlues(), data.MergeSetReds())
	}
	if data.BlueScore() != 3 {
		t.Fatalf("expected blue score 3 (selected parent's 1, plus the selected parent itself and one merged blue), got %d", data.BlueScore())
	}
}

func TestChooseSelectedParentPrefersHigherBlueWork(t *testing.T) {
	h := newTestHarness(3)

	genesisHash := testHash(0)
	h.addBlock(t, genesisHash, nil, 0x207fffff)

	// A lower (harder) Bits value yields strictly more work per block
	// (workcalc.CalcWork is monotonically decreasing in the target), so
	// heavyBlock should accumulate more blue work than lightBlock despite
	// both extending genesis directly.
	lightBlock := testHash(1)
	h.addBlock(t, lightBlock, []*externalapi.DomainHash{genesisHash}, 0x207fffff)

	heavyBlock := testHash(2)
	h.addBlock(t, heavyBlock, []*externalapi.DomainHash{genesisHash}, 0x1e7fffff)

	selected, err := h.ghostdag.ChooseSelectedParent(h.stagingArea, lightBlock, heavyBlock)
	if err != nil {
		t.Fatalf("ChooseSelectedParent: %+v", err)
	}
	if !selected.Equal(heavyBlock) {
		t.Fatalf("expected the higher-work block to be selected, got %s", selected)
	}
}
