package model

// StagingShard is the per-store slice of a StagingArea: the set of writes
// one store has queued against it, and the logic to flush them into a
// transaction. Every datastructures store defines its own shard type.
type StagingShard interface {
	Commit(dbTx DBTransaction) error
}

// StagingArea batches the writes of a single consensus operation (one
// block's admission, one virtual resolve) across every store touched, so
// they commit together in one DBTransaction (§5: "writes are batched").
// A StagingArea is used once: committing it a second time panics. Staging
// into one that has already committed is not checked.
type StagingArea struct {
	shards    map[string]StagingShard
	committed bool
}

// NewStagingArea returns an empty StagingArea.
func NewStagingArea() *StagingArea {
	return &StagingArea{shards: make(map[string]StagingShard)}
}

// GetOrCreateShard returns the named shard, creating it via create on first
// use. Stores call this once per StagingArea to get (and lazily initialize)
// their own staged-writes bookkeeping.
func (sa *StagingArea) GetOrCreateShard(name string, create func() StagingShard) StagingShard {
	if shard, ok := sa.shards[name]; ok {
		return shard
	}
	shard := create()
	sa.shards[name] = shard
	return shard
}

// Commit flushes every shard's staged writes into dbTx. Committing twice is
// a programming error and panics.
func (sa *StagingArea) Commit(dbTx DBTransaction) error {
	if sa.committed {
		panic("StagingArea committed more than once")
	}
	sa.committed = true
	for _, shard := range sa.shards {
		err := shard.Commit(dbTx)
		if err != nil {
			return err
		}
	}
	return nil
}
