package difficultymanager

import (
	"math/big"
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/datastructures/ghostdagdatastore"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/processes/windowmanager"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

// fakeHeaderStore is a minimal model.BlockHeaderStore good enough for the
// windowmanager/difficultymanager pair: only BlockHeader is ever called by
// either package, and only against hashes the test stages directly.
type fakeHeaderStore struct {
	model.BlockHeaderStore
	headers map[externalapi.DomainHash]*externalapi.DomainBlockHeader
}

func newFakeHeaderStore() *fakeHeaderStore {
	return &fakeHeaderStore{headers: make(map[externalapi.DomainHash]*externalapi.DomainBlockHeader)}
}

func (f *fakeHeaderStore) stage(hash *externalapi.DomainHash, header *externalapi.DomainBlockHeader) {
	f.headers[*hash] = header
}

func (f *fakeHeaderStore) BlockHeader(_ model.DBReader, _ *model.StagingArea, blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {
	return f.headers[*blockHash], nil
}

// buildChain stages a genesis block plus count linear blocks atop it, each
// one blue-work unit heavier than its selected parent and spaced
// intervalMilliseconds apart, returning the tip hash.
func buildChain(stagingArea *model.StagingArea, headerStore *fakeHeaderStore, ghostdagStore model.GHOSTDAGDataStore, count int, bits uint32, intervalMilliseconds int64) *externalapi.DomainHash {
	genesisHash := testHash(0)
	headerStore.stage(genesisHash, &externalapi.DomainBlockHeader{
		Bits:               bits,
		TimeInMilliseconds: 0,
	})
	ghostdagStore.Stage(stagingArea, genesisHash, externalapi.NewBlockGHOSTDAGData(
		0, externalapi.BlueWorkFromUint64(0), nil, nil, nil, nil), false)

	parent := genesisHash
	var parentWork uint64
	for i := 1; i <= count; i++ {
		hash := testHash(byte(i))
		timestamp := int64(i) * intervalMilliseconds
		headerStore.stage(hash, &externalapi.DomainBlockHeader{
			Bits:               bits,
			TimeInMilliseconds: timestamp,
		})
		parentWork++
		ghostdagStore.Stage(stagingArea, hash, externalapi.NewBlockGHOSTDAGData(
			uint64(i), externalapi.BlueWorkFromUint64(parentWork), parent, nil, nil, nil), false)
		parent = hash
	}
	return parent
}

func TestEstimateNetworkHashesPerSecond(t *testing.T) {
	stagingArea := model.NewStagingArea()
	headerStore := newFakeHeaderStore()
	ghostdagStore := ghostdagdatastore.New(0)

	const bits = 0x207fffff // minimum difficulty: easy to reason about CalcWork for
	const intervalMilliseconds = 1000
	tip := buildChain(stagingArea, headerStore, ghostdagStore, 5, bits, intervalMilliseconds)

	windowManagerInstance := windowmanager.New(nil, ghostdagStore, testHash(0))
	dm := New(nil, windowManagerInstance, headerStore, ghostdagStore, big.NewInt(0), 2640, 1000, bits).(*difficultyManager)

	hashesPerSecond, err := dm.EstimateNetworkHashesPerSecond(stagingArea, tip, 5)
	if err != nil {
		t.Fatalf("EstimateNetworkHashesPerSecond: %+v", err)
	}
	if hashesPerSecond == 0 {
		t.Fatalf("expected a positive hashrate estimate over a 5-block, evenly-spaced window")
	}
}

func TestEstimateNetworkHashesPerSecondShortWindow(t *testing.T) {
	stagingArea := model.NewStagingArea()
	headerStore := newFakeHeaderStore()
	ghostdagStore := ghostdagdatastore.New(0)

	genesisHash := testHash(0)
	headerStore.stage(genesisHash, &externalapi.DomainBlockHeader{Bits: 0x207fffff})
	ghostdagStore.Stage(stagingArea, genesisHash, externalapi.NewBlockGHOSTDAGData(
		0, externalapi.BlueWorkFromUint64(0), nil, nil, nil, nil), false)

	windowManagerInstance := windowmanager.New(nil, ghostdagStore, genesisHash)
	dm := New(nil, windowManagerInstance, headerStore, ghostdagStore, big.NewInt(0), 2640, 1000, 0x207fffff).(*difficultyManager)

	// windowSize 1 against a lone genesis pads to a 1-element window --
	// fewer than the two samples needed to measure an elapsed time.
	hashesPerSecond, err := dm.EstimateNetworkHashesPerSecond(stagingArea, genesisHash, 1)
	if err != nil {
		t.Fatalf("EstimateNetworkHashesPerSecond: %+v", err)
	}
	if hashesPerSecond != 0 {
		t.Fatalf("expected 0 for a single-sample window, got %d", hashesPerSecond)
	}
}
