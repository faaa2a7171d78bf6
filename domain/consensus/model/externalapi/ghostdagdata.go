package externalapi

// BlockGHOSTDAGData is the per-header GHOSTDAG classification result (§3).
// It is immutable once written: the header processor writes it exactly
// once per (hash, isTrustedData) key (§4.6).
type BlockGHOSTDAGData struct {
	blueScore          uint64
	blueWork           *BlueWork
	selectedParent     *DomainHash
	mergeSetBlues      []*DomainHash
	mergeSetReds       []*DomainHash
	bluesAnticoneSizes map[DomainHash]KType
}

// KType is the GHOSTDAG k-cluster size type (§4.2 step 4). A byte is ample:
// k never exceeds ~256 in any sane parameterization.
type KType byte

// NewBlockGHOSTDAGData creates ghostdag data from the computed fields.
func NewBlockGHOSTDAGData(
	blueScore uint64,
	blueWork *BlueWork,
	selectedParent *DomainHash,
	mergeSetBlues []*DomainHash,
	mergeSetReds []*DomainHash,
	bluesAnticoneSizes map[DomainHash]KType) *BlockGHOSTDAGData {

	return &BlockGHOSTDAGData{
		blueScore:          blueScore,
		blueWork:           blueWork,
		selectedParent:     selectedParent,
		mergeSetBlues:      mergeSetBlues,
		mergeSetReds:       mergeSetReds,
		bluesAnticoneSizes: bluesAnticoneSizes,
	}
}

// BlueScore returns the cumulative count of blues along the selected chain.
func (dgd *BlockGHOSTDAGData) BlueScore() uint64 { return dgd.blueScore }

// BlueWork returns the cumulative proof-of-work across blues.
func (dgd *BlockGHOSTDAGData) BlueWork() *BlueWork { return dgd.blueWork }

// SelectedParent returns the block's GHOSTDAG-selected parent.
func (dgd *BlockGHOSTDAGData) SelectedParent() *DomainHash { return dgd.selectedParent }

// MergeSetBlues returns the blue-classified mergeset members, in
// topological order, selected parent excluded.
func (dgd *BlockGHOSTDAGData) MergeSetBlues() []*DomainHash { return dgd.mergeSetBlues }

// MergeSetReds returns the red-classified mergeset members.
func (dgd *BlockGHOSTDAGData) MergeSetReds() []*DomainHash { return dgd.mergeSetReds }

// BluesAnticoneSizes returns, for every blue in MergeSetBlues, the size of
// its anticone within the mergeset at the time it was classified.
func (dgd *BlockGHOSTDAGData) BluesAnticoneSizes() map[DomainHash]KType { return dgd.bluesAnticoneSizes }

// MergeSet returns the blues followed by the reds, the concatenation used
// whenever an operation needs every mergeset member regardless of color.
func (dgd *BlockGHOSTDAGData) MergeSet() []*DomainHash {
	mergeSet := make([]*DomainHash, 0, len(dgd.mergeSetBlues)+len(dgd.mergeSetReds))
	mergeSet = append(mergeSet, dgd.mergeSetBlues...)
	mergeSet = append(mergeSet, dgd.mergeSetReds...)
	return mergeSet
}

// IsBlue returns whether the given hash was classified blue in this
// block's mergeset (selected parent included, it's trivially blue).
func (dgd *BlockGHOSTDAGData) IsBlue(hash *DomainHash) bool {
	if dgd.selectedParent.Equal(hash) {
		return true
	}
	for _, blue := range dgd.mergeSetBlues {
		if blue.Equal(hash) {
			return true
		}
	}
	return false
}
