package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// BlockValidator runs the three validation stages a block passes through
// the pipeline (§4.2, §4.3): header-in-isolation on submission, then
// header-in-context once parents resolve, then body-in-isolation and
// body-in-context once transactions are attached.
type BlockValidator interface {
	ValidateHeaderInIsolation(stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
	ValidateHeaderInContext(stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
	ValidateBodyInIsolation(stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
	ValidateBodyInContext(stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
	ValidatePruningPointViolationAndProofOfWorkAndDifficulty(stagingArea *StagingArea, blockHash *externalapi.DomainHash) error
}
