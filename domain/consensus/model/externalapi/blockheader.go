package externalapi

// DomainBlockHeader represents the header part of a block, as named in
// the data model (§3): version, per-level parents, merkle roots, timing
// and proof-of-work fields, and the DAG bookkeeping (blue score/work,
// DAA score, declared pruning point).
type DomainBlockHeader struct {
	Version              uint16
	ParentsByLevel        [][]*DomainHash
	HashMerkleRoot        *DomainHash
	AcceptedIDMerkleRoot  *DomainHash
	UTXOCommitment        *DomainHash
	TimeInMilliseconds    int64
	Bits                  uint32
	Nonce                 uint64
	DAAScore              uint64
	BlueWork              *BlueWork
	BlueScore             uint64
	PruningPoint          *DomainHash
}

// DirectParents returns level-0 parents -- the direct parent set.
func (h *DomainBlockHeader) DirectParents() []*DomainHash {
	if len(h.ParentsByLevel) == 0 {
		return nil
	}
	return h.ParentsByLevel[0]
}

// Clone returns a deep clone of the header.
func (h *DomainBlockHeader) Clone() *DomainBlockHeader {
	parentsByLevel := make([][]*DomainHash, len(h.ParentsByLevel))
	for i, level := range h.ParentsByLevel {
		parentsByLevel[i] = CloneHashes(level)
	}

	return &DomainBlockHeader{
		Version:             h.Version,
		ParentsByLevel:       parentsByLevel,
		HashMerkleRoot:       h.HashMerkleRoot.Clone(),
		AcceptedIDMerkleRoot: h.AcceptedIDMerkleRoot.Clone(),
		UTXOCommitment:       h.UTXOCommitment.Clone(),
		TimeInMilliseconds:   h.TimeInMilliseconds,
		Bits:                 h.Bits,
		Nonce:                h.Nonce,
		DAAScore:             h.DAAScore,
		BlueWork:             h.BlueWork.Clone(),
		BlueScore:            h.BlueScore,
		PruningPoint:         h.PruningPoint.Clone(),
	}
}

// Equal returns whether header equals to other
func (h *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if h == nil || other == nil {
		return h == other
	}

	if h.Version != other.Version {
		return false
	}
	if len(h.ParentsByLevel) != len(other.ParentsByLevel) {
		return false
	}
	for i, level := range h.ParentsByLevel {
		if !HashesEqual(level, other.ParentsByLevel[i]) {
			return false
		}
	}
	if !h.HashMerkleRoot.Equal(other.HashMerkleRoot) {
		return false
	}
	if !h.AcceptedIDMerkleRoot.Equal(other.AcceptedIDMerkleRoot) {
		return false
	}
	if !h.UTXOCommitment.Equal(other.UTXOCommitment) {
		return false
	}
	if h.TimeInMilliseconds != other.TimeInMilliseconds {
		return false
	}
	if h.Bits != other.Bits {
		return false
	}
	if h.Nonce != other.Nonce {
		return false
	}
	if h.DAAScore != other.DAAScore {
		return false
	}
	if h.BlueWork.Cmp(other.BlueWork) != 0 {
		return false
	}
	if h.BlueScore != other.BlueScore {
		return false
	}
	return h.PruningPoint.Equal(other.PruningPoint)
}
