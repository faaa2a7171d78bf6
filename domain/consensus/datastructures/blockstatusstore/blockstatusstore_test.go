package blockstatusstore

import (
	"testing"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

func testHash(b byte) *externalapi.DomainHash {
	var h externalapi.DomainHash
	h[0] = b
	return &h
}

func TestStageAndGetRoundTripsWithoutTouchingTheDatabase(t *testing.T) {
	store := New()
	stagingArea := model.NewStagingArea()
	blockHash := testHash(1)

	store.Stage(stagingArea, blockHash, externalapi.StatusHeaderOnly)
	if !store.IsStaged(stagingArea) {
		t.Fatalf("expected the store to report a staged write")
	}

	status, err := store.Get(nil, stagingArea, blockHash)
	if err != nil {
		t.Fatalf("Get: %+v", err)
	}
	if status != externalapi.StatusHeaderOnly {
		t.Fatalf("expected StatusHeaderOnly, got %v", status)
	}

	exists, err := store.Exists(nil, stagingArea, blockHash)
	if err != nil {
		t.Fatalf("Exists: %+v", err)
	}
	if !exists {
		t.Fatalf("expected the staged block to be reported as existing")
	}
}

func TestStageOverwritesPreviousStatus(t *testing.T) {
	store := New()
	stagingArea := model.NewStagingArea()
	blockHash := testHash(1)

	store.Stage(stagingArea, blockHash, externalapi.StatusHeaderOnly)
	store.Stage(stagingArea, blockHash, externalapi.StatusValid)

	status, err := store.Get(nil, stagingArea, blockHash)
	if err != nil {
		t.Fatalf("Get: %+v", err)
	}
	if status != externalapi.StatusValid {
		t.Fatalf("expected the later Stage call to win, got %v", status)
	}
}
