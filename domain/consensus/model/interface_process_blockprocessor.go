package model

import "github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"

// BlockProcessor drives a submitted header or full block through the
// pipeline's three stages (§4.2-§4.4): header validation and GHOSTDAG/
// reachability wiring, body validation, and virtual-state resolution,
// committing each call's store writes in one batch.
type BlockProcessor interface {
	// ValidateAndInsertHeader runs the header stage alone (§4.2), for
	// header-first relay and submit_header (§6).
	ValidateAndInsertHeader(header *externalapi.DomainBlockHeader) (externalapi.BlockStatus, error)

	// ValidateAndInsertBlock runs all three stages for a header+body unit
	// that arrived together (§6's submit_block, submit_trusted_block).
	// isTrustedData is accepted but not used: the block is validated the
	// same way either way, and nothing is written under the GHOSTDAG data
	// store's trusted-data axis (§4.6); see DESIGN.md.
	ValidateAndInsertBlock(block *externalapi.DomainBlock, isTrustedData bool) (externalapi.BlockStatus, error)
}
