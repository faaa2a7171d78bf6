package windowmanager

import (
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

func containsHash(window model.BlockWindowHeap, hash *externalapi.DomainHash) bool {
	for _, h := range window {
		if h.Equal(hash) {
			return true
		}
	}
	return false
}

// TestBlockWindowWalksChainBlocksThemselves guards against the regression
// where BlockWindow only ever appended each chain block's MergeSetBlues
// (which exclude the chain block itself by convention) and never the
// chain block: a non-forking chain would then produce an all-genesis
// window no matter how deep its history actually is.
func TestBlockWindowWalksChainBlocksThemselves(t *testing.T) {
	stagingArea := model.NewStagingArea()
	ghostdagStore := ghostdagdatastore.New(0)

	genesisHash := testHash(0)
	ghostdagStore.Stage(stagingArea, genesisHash, externalapi.NewBlockGHOSTDAGData(
		0, externalapi.BlueWorkFromUint64(0), nil, nil, nil, nil), false)

	block1 := testHash(1)
	ghostdagStore.Stage(stagingArea, block1, externalapi.NewBlockGHOSTDAGData(
		1, externalapi.BlueWorkFromUint64(1), genesisHash, nil, nil, nil), false)

	block2 := testHash(2)
	ghostdagStore.Stage(stagingArea, block2, externalapi.NewBlockGHOSTDAGData(
		2, externalapi.BlueWorkFromUint64(2), block1, nil, nil, nil), false)

	wm := New(nil, ghostdagStore, genesisHash)

	window, err := wm.BlockWindow(stagingArea, block2, 2)
	if err != nil {
		t.Fatalf("BlockWindow: %+v", err)
	}
	if len(window) != 2 {
		t.Fatalf("expected a full 2-block window, got %d", len(window))
	}
	if !containsHash(window, block1) {
		t.Fatalf("expected the window to contain the chain block %s itself, got %v", block1, window)
	}
	if !containsHash(window, genesisHash) {
		t.Fatalf("expected the window to reach back to genesis, got %v", window)
	}
}

// TestBlockWindowIncludesMergeSetBlues confirms a chain block's
// non-selected-parent blue merges still surface in the window alongside
// the chain block itself.
func TestBlockWindowIncludesMergeSetBlues(t *testing.T) {
	stagingArea := model.NewStagingArea()
	ghostdagStore := ghostdagdatastore.New(0)

	genesisHash := testHash(0)
	ghostdagStore.Stage(stagingArea, genesisHash, externalapi.NewBlockGHOSTDAGData(
		0, externalapi.BlueWorkFromUint64(0), nil, nil, nil, nil), false)

	sideBlock := testHash(1)
	ghostdagStore.Stage(stagingArea, sideBlock, externalapi.NewBlockGHOSTDAGData(
		1, externalapi.BlueWorkFromUint64(1), genesisHash, nil, nil, nil), false)

	chainTip := testHash(2)
	ghostdagStore.Stage(stagingArea, chainTip, externalapi.NewBlockGHOSTDAGData(
		2, externalapi.BlueWorkFromUint64(2), genesisHash, []*externalapi.DomainHash{sideBlock}, nil, nil), false)

	wm := New(nil, ghostdagStore, genesisHash)

	window, err := wm.BlockWindow(stagingArea, chainTip, 10)
	if err != nil {
		t.Fatalf("BlockWindow: %+v", err)
	}
	if !containsHash(window, genesisHash) {
		t.Fatalf("expected genesis in the window, got %v", window)
	}
	if !containsHash(window, sideBlock) {
		t.Fatalf("expected the merged side block in the window, got %v", window)
	}
}

func TestBlockWindowPadsShortHistoryWithGenesis(t *testing.T) {
	stagingArea := model.NewStagingArea()
	ghostdagStore := ghostdagdatastore.New(0)

	genesisHash := testHash(0)
	ghostdagStore.Stage(stagingArea, genesisHash, externalapi.NewBlockGHOSTDAGData(
		0, externalapi.BlueWorkFromUint64(0), nil, nil, nil, nil), false)

	wm := New(nil, ghostdagStore, genesisHash)

	window, err := wm.BlockWindow(stagingArea, genesisHash, 3)
	if err != nil {
		t.Fatalf("BlockWindow: %+v", err)
	}
	if len(window) != 3 {
		t.Fatalf("expected the window to be padded out to size 3, got %d", len(window))
	}
	for _, hash := range window {
		if !hash.Equal(genesisHash) {
			t.Fatalf("expected every padding entry to be genesis, got %s", hash)
		}
	}
}
