package externalapi

// VirtualState is the single mutable cell of consensus (§3): the node's
// current view of the tip, keyed to its selected parent (the sink).
type VirtualState struct {
	Parents               []*DomainHash
	SelectedParent        *DomainHash
	GhostdagData          *BlockGHOSTDAGData
	DAAScore              uint64
	Bits                  uint32
	PastMedianTime        int64
	UTXODiffFromSelectedTip *UTXODiff
	AcceptedIDMerkleRoot  *DomainHash
}

// Clone returns a deep-enough clone for safe publishing to readers; the
// UTXO diff itself is shared (readers hold it read-only via the session
// lock, consistent with §5's virtual read-write lock policy).
func (v *VirtualState) Clone() *VirtualState {
	return &VirtualState{
		Parents:                 CloneHashes(v.Parents),
		SelectedParent:          v.SelectedParent.Clone(),
		GhostdagData:            v.GhostdagData,
		DAAScore:                v.DAAScore,
		Bits:                    v.Bits,
		PastMedianTime:          v.PastMedianTime,
		UTXODiffFromSelectedTip: v.UTXODiffFromSelectedTip,
		AcceptedIDMerkleRoot:    v.AcceptedIDMerkleRoot.Clone(),
	}
}

// BlockColor is the externally-visible mergeset classification of a block
// relative to the chain block that accepted it (§6: get_block_color).
type BlockColor byte

const (
	// ColorUnknown is returned for blocks not yet known to any chain block.
	ColorUnknown BlockColor = iota
	// ColorBlue blocks were classified blue in their containing mergeset.
	ColorBlue
	// ColorRed blocks were classified red in their containing mergeset.
	ColorRed
)

// ChainPath names a contiguous change to the selected chain (§6:
// get_virtual_chain_from_block): blocks that left the chain and blocks
// that joined it, in order, each removed or added block bundled with its
// acceptance data.
type ChainPath struct {
	Removed []*ChainBlock
	Added   []*ChainBlock
}

// ChainBlock bundles a chain block hash with its acceptance data for
// streaming to RPC/indexer consumers.
type ChainBlock struct {
	Hash           *DomainHash
	AcceptanceData AcceptanceData
}
