package externalapi

// DomainSubnetworkIDSize is the length, in bytes, of a subnetwork ID.
const DomainSubnetworkIDSize = 20

// DomainSubnetworkID identifies the subnetwork a transaction belongs to.
type DomainSubnetworkID [DomainSubnetworkIDSize]byte

// Equal returns whether subnetworkID equals to other
func (id *DomainSubnetworkID) Equal(other *DomainSubnetworkID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return *id == *other
}

// SubnetworkIDNative is the subnetwork ID of the native, coin-transferring subnetwork.
var SubnetworkIDNative = DomainSubnetworkID{}

// SubnetworkIDCoinbase is the subnetwork ID reserved for coinbase transactions.
var SubnetworkIDCoinbase = DomainSubnetworkID{1}

// DomainOutpoint is a combination of a transaction ID and an index into its
// outputs, uniquely identifying a transaction output.
type DomainOutpoint struct {
	TransactionID DomainTransactionID
	Index         uint32
}

// DomainTransactionIDSize is the size in bytes of a transaction ID.
const DomainTransactionIDSize = DomainHashSize

// DomainTransactionID is the ID of a transaction, i.e. its hash excluding
// signature scripts (§3).
type DomainTransactionID DomainHash

// Equal returns whether id equals to other.
func (id *DomainTransactionID) Equal(other *DomainTransactionID) bool {
	if id == nil || other == nil {
		return id == other
	}
	return *id == *other
}

// String returns the hexadecimal string representation of the transaction ID.
func (id DomainTransactionID) String() string {
	return DomainHash(id).String()
}

// DomainTransactionInput is a transaction input: the outpoint being spent,
// the unlocking script, the sequence number, and the number of signature
// operations it contributes toward mass computation (§4.3).
type DomainTransactionInput struct {
	PreviousOutpoint DomainOutpoint
	SignatureScript  []byte
	Sequence         uint64
	SigOpCount       byte

	// UTXOEntry is resolved lazily during validation (§4.4); nil until then.
	UTXOEntry *UTXOEntry
}

// DomainTransactionOutput is a transaction output: the amount and the
// locking script it pays to.
type DomainTransactionOutput struct {
	Value           uint64
	ScriptPublicKey *ScriptPublicKey
}

// ScriptPublicKey is a versioned locking script (§3).
type ScriptPublicKey struct {
	Version uint16
	Script  []byte
}

// DomainTransaction is the full transaction as named in §3.
type DomainTransaction struct {
	Version      uint16
	Inputs       []*DomainTransactionInput
	Outputs      []*DomainTransactionOutput
	LockTime     uint64
	SubnetworkID DomainSubnetworkID
	Gas          uint64
	Payload      []byte

	// Fee and Mass are populated during processing, not part of wire
	// identity (excluded from ID/hash computation).
	Fee  uint64
	Mass uint64

	// identity hash slots; nothing reads or writes them, and
	// consensushashing.TransactionID/TransactionHash recompute on every call.
	id   *DomainTransactionID
	hash *DomainHash
}

// TransactionIndexPair names the position of a transaction within a block,
// as required for acceptance data (§3) and the tx-index triple (§9 open
// question resolution): (inclusion block, index within block).
type TransactionIndexPair struct {
	TransactionID DomainTransactionID
	IndexInBlock  uint16
}

// Clone returns a deep clone of the input.
func (in *DomainTransactionInput) Clone() *DomainTransactionInput {
	clone := &DomainTransactionInput{
		PreviousOutpoint: in.PreviousOutpoint,
		SignatureScript:  cloneBytes(in.SignatureScript),
		Sequence:         in.Sequence,
		SigOpCount:       in.SigOpCount,
	}
	if in.UTXOEntry != nil {
		clone.UTXOEntry = in.UTXOEntry.Clone()
	}
	return clone
}

// Clone returns a deep clone of the output.
func (out *DomainTransactionOutput) Clone() *DomainTransactionOutput {
	return &DomainTransactionOutput{
		Value: out.Value,
		ScriptPublicKey: &ScriptPublicKey{
			Version: out.ScriptPublicKey.Version,
			Script:  cloneBytes(out.ScriptPublicKey.Script),
		},
	}
}

// Clone returns a deep clone of the transaction, with cached hashes reset.
func (tx *DomainTransaction) Clone() *DomainTransaction {
	inputs := make([]*DomainTransactionInput, len(tx.Inputs))
	for i, in := range tx.Inputs {
		inputs[i] = in.Clone()
	}
	outputs := make([]*DomainTransactionOutput, len(tx.Outputs))
	for i, out := range tx.Outputs {
		outputs[i] = out.Clone()
	}
	return &DomainTransaction{
		Version:      tx.Version,
		Inputs:       inputs,
		Outputs:      outputs,
		LockTime:     tx.LockTime,
		SubnetworkID: tx.SubnetworkID,
		Gas:          tx.Gas,
		Payload:      cloneBytes(tx.Payload),
		Fee:          tx.Fee,
		Mass:         tx.Mass,
	}
}

// IsCoinbase returns whether the transaction is on the coinbase subnetwork.
func (tx *DomainTransaction) IsCoinbase() bool {
	return tx.SubnetworkID.Equal(&SubnetworkIDCoinbase)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	clone := make([]byte, len(b))
	copy(clone, b)
	return clone
}
