package externalapi

// UTXOEntry represents a spendable transaction output, as named in §3.
type UTXOEntry struct {
	Amount          uint64
	ScriptPublicKey *ScriptPublicKey
	BlockDAAScore   uint64
	IsCoinbase      bool
}

// NewUTXOEntry instantiates a new UTXOEntry
func NewUTXOEntry(amount uint64, scriptPublicKey *ScriptPublicKey, isCoinbase bool, blockDAAScore uint64) *UTXOEntry {
	return &UTXOEntry{
		Amount:          amount,
		ScriptPublicKey: scriptPublicKey,
		BlockDAAScore:   blockDAAScore,
		IsCoinbase:      isCoinbase,
	}
}

// Clone returns a deep clone of the entry.
func (e *UTXOEntry) Clone() *UTXOEntry {
	if e == nil {
		return nil
	}
	return &UTXOEntry{
		Amount: e.Amount,
		ScriptPublicKey: &ScriptPublicKey{
			Version: e.ScriptPublicKey.Version,
			Script:  cloneBytes(e.ScriptPublicKey.Script),
		},
		BlockDAAScore: e.BlockDAAScore,
		IsCoinbase:    e.IsCoinbase,
	}
}

// Equal returns whether entry equals to other.
func (e *UTXOEntry) Equal(other *UTXOEntry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Amount != other.Amount {
		return false
	}
	if e.BlockDAAScore != other.BlockDAAScore {
		return false
	}
	if e.IsCoinbase != other.IsCoinbase {
		return false
	}
	if e.ScriptPublicKey.Version != other.ScriptPublicKey.Version {
		return false
	}
	return string(e.ScriptPublicKey.Script) == string(other.ScriptPublicKey.Script)
}

// OutpointAndUTXOEntryPair pairs an outpoint with its resolved entry, used
// when streaming UTXO set contents to indexers (§4.4 step 5).
type OutpointAndUTXOEntryPair struct {
	Outpoint *DomainOutpoint
	UTXOEntry *UTXOEntry
}

// UTXODiff is the additive/subtractive pair over the UTXO set produced by
// applying one chain block (§3). By invariant add ∩ remove is empty after
// cancellation -- maintained by utils/utxo.WithDiff, which cancels an
// outpoint added on one side and removed on the other, rather than here,
// since UTXODiff itself is a plain value type.
type UTXODiff struct {
	ToAdd    map[DomainOutpoint]*UTXOEntry
	ToRemove map[DomainOutpoint]*UTXOEntry
}

// NewUTXODiff creates an empty UTXODiff.
func NewUTXODiff() *UTXODiff {
	return &UTXODiff{
		ToAdd:    make(map[DomainOutpoint]*UTXOEntry),
		ToRemove: make(map[DomainOutpoint]*UTXOEntry),
	}
}
