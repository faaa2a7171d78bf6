package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// GHOSTDAGManager runs the GHOSTDAG k-cluster algorithm (§4.1): given a
// block's direct parents it walks the mergeset against the selected
// parent's past, classifies each mergeset block blue or red, and picks the
// new block's own selected parent by blue work.
type GHOSTDAGManager interface {
	GHOSTDAG(stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
	BlockData(stagingArea *StagingArea, blockHash *externalapi.DomainHash) (*externalapi.BlockGHOSTDAGData, error)
	ChooseSelectedParent(stagingArea *StagingArea, blockHashA, blockHashB *externalapi.DomainHash) (*externalapi.DomainHash, error)
	Less(blockHashA *externalapi.DomainHash, ghostdagDataA *externalapi.BlockGHOSTDAGData, blockHashB *externalapi.DomainHash, ghostdagDataB *externalapi.BlockGHOSTDAGData) bool
}
