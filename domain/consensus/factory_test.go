package consensus

import (
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/dagconfig"
)

func TestFactoryBootstrapsGenesis(t *testing.T) {
	factory, err := NewFactory(t.TempDir(), &dagconfig.SimnetParams)
	if err != nil {
		t.Fatalf("NewFactory: %+v", err)
	}

	c, err := factory.NewActiveConsensus()
	if err != nil {
		t.Fatalf("NewActiveConsensus: %+v", err)
	}

	genesisHash := dagconfig.SimnetParams.GenesisHash

	status, err := c.GetBlockStatus(genesisHash)
	if err != nil {
		t.Fatalf("GetBlockStatus: %+v", err)
	}
	if status != externalapi.StatusValid {
		t.Fatalf("expected the genesis block to be StatusValid, got %v", status)
	}

	selectedParent, err := c.GetVirtualSelectedParent()
	if err != nil {
		t.Fatalf("GetVirtualSelectedParent: %+v", err)
	}
	if !selectedParent.Equal(genesisHash) {
		t.Fatalf("expected the virtual selected parent to be genesis, got %s", selectedParent)
	}

	blueScore, err := c.GetSinkBlueScore()
	if err != nil {
		t.Fatalf("GetSinkBlueScore: %+v", err)
	}
	if blueScore != 0 {
		t.Fatalf("expected genesis blue score 0, got %d", blueScore)
	}

	daaScore, err := c.GetVirtualDAAScore()
	if err != nil {
		t.Fatalf("GetVirtualDAAScore: %+v", err)
	}
	if daaScore != dagconfig.SimnetParams.GenesisBlock.Header.DAAScore {
		t.Fatalf("expected genesis DAA score, got %d", daaScore)
	}

	header, err := c.GetBlockHeader(genesisHash)
	if err != nil {
		t.Fatalf("GetBlockHeader: %+v", err)
	}
	if header.Bits != dagconfig.SimnetParams.GenesisBlock.Header.Bits {
		t.Fatalf("expected the stored genesis header to round-trip, got bits %x", header.Bits)
	}

	color, err := c.GetBlockColor(genesisHash)
	if err != nil {
		t.Fatalf("GetBlockColor: %+v", err)
	}
	if color != externalapi.ColorBlue {
		t.Fatalf("expected genesis to be blue (it's the selected chain tip), got %v", color)
	}
}

func TestFactoryReopensExistingActiveConsensus(t *testing.T) {
	dataDir := t.TempDir()

	firstFactory, err := NewFactory(dataDir, &dagconfig.SimnetParams)
	if err != nil {
		t.Fatalf("NewFactory (first): %+v", err)
	}
	if _, err := firstFactory.NewActiveConsensus(); err != nil {
		t.Fatalf("NewActiveConsensus (first): %+v", err)
	}

	secondFactory, err := NewFactory(dataDir, &dagconfig.SimnetParams)
	if err != nil {
		t.Fatalf("NewFactory (second): %+v", err)
	}
	c, err := secondFactory.NewActiveConsensus()
	if err != nil {
		t.Fatalf("NewActiveConsensus (second): %+v", err)
	}

	status, err := c.GetBlockStatus(dagconfig.SimnetParams.GenesisHash)
	if err != nil {
		t.Fatalf("GetBlockStatus: %+v", err)
	}
	if status != externalapi.StatusValid {
		t.Fatalf("expected the reopened instance to already have genesis, got status %v", status)
	}
}

func TestFactoryStagingConsensusLifecycle(t *testing.T) {
	factory, err := NewFactory(t.TempDir(), &dagconfig.SimnetParams)
	if err != nil {
		t.Fatalf("NewFactory: %+v", err)
	}
	if _, err := factory.NewActiveConsensus(); err != nil {
		t.Fatalf("NewActiveConsensus: %+v", err)
	}

	staging, err := factory.NewStagingConsensus()
	if err != nil {
		t.Fatalf("NewStagingConsensus: %+v", err)
	}

	status, err := staging.GetBlockStatus(dagconfig.SimnetParams.GenesisHash)
	if err != nil {
		t.Fatalf("GetBlockStatus on staging instance: %+v", err)
	}
	if status != externalapi.StatusValid {
		t.Fatalf("expected the staging instance's own genesis bootstrap, got status %v", status)
	}

	if err := factory.CommitStagingConsensus(); err != nil {
		t.Fatalf("CommitStagingConsensus: %+v", err)
	}

	if _, err := factory.NewStagingConsensus(); err != nil {
		t.Fatalf("expected a fresh staging reservation to succeed once the prior one committed: %+v", err)
	}
}
