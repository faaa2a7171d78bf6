package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// BlockWindowHeap is a window of ancestor blocks walked back along the
// selected-parent chain: each chain block's selected parent, then that
// block's blue mergeset members, most recent first, bounded to a configured
// size. The blocks stay in walk order and are not sorted by blue work (§4.7).
type BlockWindowHeap []*externalapi.DomainHash

// WindowManager builds the sampled windows the difficulty and past-median-
// time managers both sample from, so the two managers never re-walk the
// DAG independently (§4.7).
type WindowManager interface {
	BlockWindow(stagingArea *StagingArea, blockHash *externalapi.DomainHash, windowSize int) (BlockWindowHeap, error)
}

// DifficultyManager derives the next block's required target from a
// sampled window of past targets and timestamps (§4.7).
type DifficultyManager interface {
	RequiredDifficulty(stagingArea *StagingArea, blockHash *externalapi.DomainHash) (uint32, error)
	EstimateNetworkHashesPerSecond(stagingArea *StagingArea, startHash *externalapi.DomainHash, windowSize int) (uint64, error)
}

// PastMedianTimeManager computes the median of a sampled window of past
// timestamps, the floor a new block's own timestamp must clear (§4.7).
type PastMedianTimeManager interface {
	PastMedianTime(stagingArea *StagingArea, blockHash *externalapi.DomainHash) (int64, error)
}

// DAAScoreManager derives a block's difficulty-adjusted-accumulated score
// from its selected parent's DAA score and its mergeset size (§4.7).
type DAAScoreManager interface {
	DAAScore(stagingArea *StagingArea, blockHash *externalapi.DomainHash) (uint64, error)
}
