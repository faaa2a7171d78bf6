package externalapi

// BlockStatus represents the validation status of a block, as named in
// §3. Transitions are monotonic except that StatusInvalid is terminal:
// none -> HeaderOnly -> UTXOPendingVerification -> (Valid | Disqualified),
// and any non-terminal status -> Invalid on a fatal rule violation.
type BlockStatus byte

const (
	// StatusInvalid blocks violated a consensus rule and can never be revisited.
	StatusInvalid BlockStatus = iota

	// StatusHeaderOnly blocks have had only their header processed so far.
	StatusHeaderOnly

	// StatusUTXOPendingVerification blocks have a verified body but have
	// not yet had their UTXO-state effects resolved by the virtual processor.
	StatusUTXOPendingVerification

	// StatusValid blocks have been fully validated, including UTXO state.
	StatusValid

	// StatusDisqualifiedFromChain blocks failed UTXO/script verification
	// when applied to the selected chain, but did not violate a rule that
	// invalidates the block outright -- another chain may still accept it.
	StatusDisqualifiedFromChain
)

func (status BlockStatus) String() string {
	switch status {
	case StatusInvalid:
		return "Invalid"
	case StatusHeaderOnly:
		return "HeaderOnly"
	case StatusUTXOPendingVerification:
		return "UTXOPendingVerification"
	case StatusValid:
		return "Valid"
	case StatusDisqualifiedFromChain:
		return "DisqualifiedFromChain"
	default:
		return "Unknown"
	}
}

// IsValid returns whether the block is valid according to its status.
func (status BlockStatus) IsValid() bool {
	return status != StatusInvalid && status != StatusDisqualifiedFromChain
}
