package managementstore

import (
	"path/filepath"
	"testing"

	"github.com/ghostdag-labs/ghostdagd/infrastructure/db/database/ldb"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := ldb.NewLevelDB(filepath.Join(t.TempDir(), "meta"))
	if err != nil {
		t.Fatalf("NewLevelDB: %+v", err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := New(db)
	if err != nil {
		t.Fatalf("New: %+v", err)
	}
	return store
}

func TestActiveConsensusEntryFirstCallIsNew(t *testing.T) {
	store := newTestStore(t)

	entry, isNew, err := store.ActiveConsensusEntry(func() int64 { return 1000 })
	if err != nil {
		t.Fatalf("ActiveConsensusEntry: %+v", err)
	}
	if !isNew {
		t.Fatalf("expected isNew=true on an empty store")
	}
	if entry.Key != 1 {
		t.Fatalf("expected first reserved key to be 1, got %d", entry.Key)
	}
	if entry.DirectoryName != "consensus-001" {
		t.Fatalf("unexpected directory name %q", entry.DirectoryName)
	}
}

func TestActiveConsensusEntryPersistsAfterSave(t *testing.T) {
	store := newTestStore(t)

	entry, _, err := store.ActiveConsensusEntry(func() int64 { return 1000 })
	if err != nil {
		t.Fatalf("ActiveConsensusEntry: %+v", err)
	}
	if err := store.SaveNewActiveConsensus(entry); err != nil {
		t.Fatalf("SaveNewActiveConsensus: %+v", err)
	}

	again, isNew, err := store.ActiveConsensusEntry(func() int64 { return 2000 })
	if err != nil {
		t.Fatalf("ActiveConsensusEntry (second call): %+v", err)
	}
	if isNew {
		t.Fatalf("expected isNew=false once an active consensus was saved")
	}
	if again.Key != entry.Key || again.DirectoryName != entry.DirectoryName {
		t.Fatalf("expected the saved entry back, got %+v", again)
	}
	if again.CreationTimestamp != entry.CreationTimestamp {
		t.Fatalf("expected creation timestamp to survive the round trip, got %d want %d",
			again.CreationTimestamp, entry.CreationTimestamp)
	}
}

func TestStagingConsensusLifecycle(t *testing.T) {
	store := newTestStore(t)

	active, _, err := store.ActiveConsensusEntry(func() int64 { return 1000 })
	if err != nil {
		t.Fatalf("ActiveConsensusEntry: %+v", err)
	}
	if err := store.SaveNewActiveConsensus(active); err != nil {
		t.Fatalf("SaveNewActiveConsensus: %+v", err)
	}

	staging, err := store.NewStagingConsensusEntry(func() int64 { return 1001 })
	if err != nil {
		t.Fatalf("NewStagingConsensusEntry: %+v", err)
	}
	if staging.Key == active.Key {
		t.Fatalf("staging entry should have a distinct key from the active one")
	}

	if _, err := store.NewStagingConsensusEntry(func() int64 { return 1002 }); err != ErrStagingConsensusExists {
		t.Fatalf("expected ErrStagingConsensusExists, got %v", err)
	}

	if err := store.CommitStagingConsensus(); err != nil {
		t.Fatalf("CommitStagingConsensus: %+v", err)
	}

	promoted, isNew, err := store.ActiveConsensusEntry(func() int64 { return 1003 })
	if err != nil {
		t.Fatalf("ActiveConsensusEntry after commit: %+v", err)
	}
	if isNew {
		t.Fatalf("expected isNew=false after a staging commit")
	}
	if promoted.Key != staging.Key {
		t.Fatalf("expected the promoted active key to be the staging key %d, got %d", staging.Key, promoted.Key)
	}

	if _, err := store.NewStagingConsensusEntry(func() int64 { return 1004 }); err != nil {
		t.Fatalf("expected a fresh staging reservation to succeed once the prior one committed: %+v", err)
	}
}

func TestCancelStagingConsensus(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.NewStagingConsensusEntry(func() int64 { return 1000 }); err != nil {
		t.Fatalf("NewStagingConsensusEntry: %+v", err)
	}
	if err := store.CancelStagingConsensus(); err != nil {
		t.Fatalf("CancelStagingConsensus: %+v", err)
	}
	if _, err := store.NewStagingConsensusEntry(func() int64 { return 1001 }); err != nil {
		t.Fatalf("expected a new staging reservation to succeed after cancel: %+v", err)
	}
}

func TestArchivalFlagDefaultsFalse(t *testing.T) {
	store := newTestStore(t)

	isArchival, err := store.IsArchival()
	if err != nil {
		t.Fatalf("IsArchival: %+v", err)
	}
	if isArchival {
		t.Fatalf("expected a fresh store to default to non-archival")
	}

	if err := store.SetArchival(true); err != nil {
		t.Fatalf("SetArchival: %+v", err)
	}
	isArchival, err = store.IsArchival()
	if err != nil {
		t.Fatalf("IsArchival after SetArchival: %+v", err)
	}
	if !isArchival {
		t.Fatalf("expected the archival flag to persist as true")
	}
}
