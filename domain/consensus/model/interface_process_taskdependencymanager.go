package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// TaskDependencyManager deduplicates concurrent submissions of the same
// block and parks a block behind its missing parents until they resolve
// (§4.1). RegisterBlock must be called before a block enters the pipeline;
// TryBeginProcessing returns false if the block is already in flight under
// another goroutine; EndProcessing releases waiters parked on this block as
// a missing parent.
type TaskDependencyManager interface {
	RegisterBlock(blockHash *externalapi.DomainHash) bool
	TryBeginProcessing(blockHash *externalapi.DomainHash) bool
	EndProcessing(blockHash *externalapi.DomainHash)
	WaitForBlock(blockHash *externalapi.DomainHash)
	WaitForIdle()
}
