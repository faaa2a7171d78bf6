// Package ruleerrors names the RuleError taxonomy (§7). Every rule
// violation a processor can detect has a distinct type here so that
// callers -- chiefly the pipeline and its task-dependency manager -- can
// tell a terminal violation (marks the block Invalid) from the two
// explicitly non-terminal ones, ErrMissingParents and ErrBadMerkleRoot
// (§4.10).
package ruleerrors

import (
	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// RuleError wraps a specific consensus-rule violation.
type RuleError struct {
	error
}

func newRuleError(message string) error {
	return &RuleError{errors.New(message)}
}

func newRuleErrorf(format string, args ...interface{}) error {
	return &RuleError{errors.Errorf(format, args...)}
}

// ErrMissingParents is returned when a header names a parent whose header
// has not yet been admitted. Transient, not a terminal rule violation
// (§4.2 step 3, §4.10) -- the block is parked by the task-dependency
// manager and retried once the parent is admitted.
type ErrMissingParents struct {
	MissingParentHashes []*externalapi.DomainHash
}

func (e *ErrMissingParents) Error() string {
	return "block has missing parents: " +
		join(externalapi.DomainHashesToStrings(e.MissingParentHashes))
}

// NewErrMissingParents constructs the missing-parents condition.
func NewErrMissingParents(missing []*externalapi.DomainHash) error {
	return &ErrMissingParents{MissingParentHashes: missing}
}

// IsMissingParentsError reports whether err represents ErrMissingParents.
func IsMissingParentsError(err error) bool {
	_, ok := err.(*ErrMissingParents)
	return ok
}

// ErrBadMerkleRoot is returned when a block's declared hash-merkle-root
// doesn't match its recomputed value (§4.3). Non-terminal: the body may
// be re-offered.
type ErrBadMerkleRoot struct {
	Expected *externalapi.DomainHash
	Got      *externalapi.DomainHash
}

func (e *ErrBadMerkleRoot) Error() string {
	return "bad merkle root: header declares " + e.Expected.String() + ", computed " + e.Got.String()
}

// NewErrBadMerkleRoot constructs the bad-merkle-root condition.
func NewErrBadMerkleRoot(expected, got *externalapi.DomainHash) error {
	return &ErrBadMerkleRoot{Expected: expected, Got: got}
}

// IsBadMerkleRootError reports whether err represents a bad-merkle-root condition.
func IsBadMerkleRootError(err error) bool {
	_, ok := err.(*ErrBadMerkleRoot)
	return ok
}

// IsNonTerminal reports whether err is one of the two rule violations that
// do not mark a block Invalid (§4.10): ErrMissingParents and ErrBadMerkleRoot.
func IsNonTerminal(err error) bool {
	return IsMissingParentsError(err) || IsBadMerkleRootError(err)
}

func join(strs []string) string {
	out := ""
	for i, s := range strs {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// The remaining named rule violations from the taxonomy (§7, §4.10) are
// terminal: any non-Invalid status transitions to Invalid when one of
// these is returned.

// NewErrInvalidPoW is returned when a header's hash doesn't satisfy its declared bits.
func NewErrInvalidPoW() error { return newRuleError("block does not satisfy proof of work") }

// NewErrUnexpectedDifficulty is returned when declared bits don't match the computed value.
func NewErrUnexpectedDifficulty(expected, got uint32) error {
	return newRuleErrorf("block difficulty of %d is not the expected value of %d", got, expected)
}

// NewErrTimeTooOld is returned when a header's timestamp doesn't exceed the past median time.
func NewErrTimeTooOld() error { return newRuleError("block timestamp is not after median time") }

// NewErrTimeTooNew is returned when a header's timestamp is further in the future than allowed.
func NewErrTimeTooNew() error { return newRuleError("block timestamp too far in the future") }

// NewErrUnexpectedPruningPoint is returned when a header declares an unexpected pruning point.
func NewErrUnexpectedPruningPoint() error { return newRuleError("unexpected pruning point") }

// NewErrPrunedBlock is returned when referenced data falls before the pruning point.
func NewErrPrunedBlock() error { return newRuleError("block refers to pruned data") }

// NewErrImmatureCoinbaseSpend is returned when a transaction spends a coinbase before maturity.
func NewErrImmatureCoinbaseSpend() error { return newRuleError("attempt to spend immature coinbase") }

// NewErrMissingTxOut is returned when a referenced previous outpoint cannot be resolved.
func NewErrMissingTxOut() error { return newRuleError("missing transaction output") }

// NewErrDuplicateTxInputs is returned when a transaction spends the same outpoint twice.
func NewErrDuplicateTxInputs() error { return newRuleError("transaction spends duplicate inputs") }

// NewErrBadCoinbasePayload is returned when a coinbase payload doesn't match the expected shape.
func NewErrBadCoinbasePayload(reason string) error {
	return newRuleErrorf("bad coinbase payload: %s", reason)
}

// NewErrMultipleCoinbases is returned when more than one coinbase transaction is present.
func NewErrMultipleCoinbases() error {
	return newRuleError("block contains multiple coinbase transactions")
}

// NewErrFirstTxNotCoinbase is returned when the first transaction is not a coinbase.
func NewErrFirstTxNotCoinbase() error { return newRuleError("first transaction is not a coinbase") }

// NewErrDust is returned when an output value falls below the dust threshold.
func NewErrDust(value uint64) error { return newRuleErrorf("output value %d is dust", value) }

// NewErrMassTooHigh is returned when a block's summed mass exceeds the configured maximum.
func NewErrMassTooHigh() error { return newRuleError("block mass exceeds the maximum allowed") }

// NewErrInvalidTransactionsInIsolation wraps a per-tx-in-isolation violation.
func NewErrInvalidTransactionsInIsolation(reason string) error {
	return newRuleErrorf("transaction invalid in isolation: %s", reason)
}

// NewErrLockTime is returned when a transaction's lock time hasn't yet been reached.
func NewErrLockTime() error { return newRuleError("transaction is not finalized") }

// NewErrScriptValidation is returned when script execution for an input fails.
func NewErrScriptValidation(reason string) error {
	return newRuleErrorf("signature script validation failed: %s", reason)
}

// NewErrInvalidParentsLevel is returned when the level-0 parent set is empty.
func NewErrInvalidParentsLevel() error { return newRuleError("block has no direct parents") }

// NewErrInvalidVersion is returned when a header or transaction declares an unsupported version.
func NewErrInvalidVersion() error { return newRuleError("unsupported version") }

// NewErrInsufficientDAAWindowSize is returned when the sampled window terminates
// at the DAG origin before reaching its configured size (§4.7).
func NewErrInsufficientDAAWindowSize() error {
	return newRuleError("insufficient DAA window size")
}

// NewErrNoTxInputs is returned when a non-coinbase transaction has no inputs.
func NewErrNoTxInputs() error { return newRuleError("transaction has no inputs") }

// NewErrBadTxOutValue is returned when an output (or input total) value falls outside the legal range.
func NewErrBadTxOutValue(reason string) error {
	return newRuleErrorf("bad transaction output value: %s", reason)
}

// NewErrSpendTooHigh is returned when a transaction's outputs exceed its inputs.
func NewErrSpendTooHigh() error {
	return newRuleError("transaction spends more than its inputs provide")
}

// NewErrBadTxInput is returned when an input refers to a null previous outpoint.
func NewErrBadTxInput() error {
	return newRuleError("transaction input refers to a null previous outpoint")
}

// NewErrInvalidPayload is returned when a transaction's payload violates its subnetwork's rules.
func NewErrInvalidPayload(reason string) error {
	return newRuleErrorf("invalid payload: %s", reason)
}

// NewErrInvalidGas is returned when a native or coinbase-subnetwork transaction declares nonzero gas.
func NewErrInvalidGas() error {
	return newRuleError("transaction in the native or coinbase subnetwork has nonzero gas")
}

// NewErrTooManyParents is returned when a header names more direct parents than allowed.
func NewErrTooManyParents(got, max int) error {
	return newRuleErrorf("block header has %d parents, but the maximum allowed amount is %d", got, max)
}

// NewErrWrongParentsOrder is returned when a header's direct parents are not sorted by hash.
func NewErrWrongParentsOrder() error { return newRuleError("block parents are not ordered by hash") }

// NewErrInvalidParentsRelation is returned when one parent is an ancestor of another.
func NewErrInvalidParentsRelation(ancestor, descendant *externalapi.DomainHash) error {
	return newRuleErrorf("parent %s is an ancestor of another parent %s", ancestor, descendant)
}

// NewErrPruningPointViolation is returned when a header's parents don't descend from the pruning point.
func NewErrPruningPointViolation() error {
	return newRuleError("block parents are not in the future of the pruning point")
}

// NewErrMissingParentBody is returned when a header-only block must not yet gain a body.
func NewErrMissingParentBody(parent *externalapi.DomainHash) error {
	return newRuleErrorf("parent %s is missing a body; blocks with bodies must wait for their parents' bodies "+
		"unless the parent is in the pruning point's past", parent)
}

// NewErrInvalidAncestorBlock is returned when a header names a parent already marked Invalid.
func NewErrInvalidAncestorBlock(parent *externalapi.DomainHash) error {
	return newRuleErrorf("parent %s is invalid", parent)
}

// NewErrViolatingMergeLimit is returned when a block's mergeset exceeds the configured size limit.
func NewErrViolatingMergeLimit(mergeSetSize int, limit uint64) error {
	return newRuleErrorf("block merges %d blocks, exceeding the %d merge set size limit", mergeSetSize, limit)
}

// NewErrBadCoinbaseTransaction is returned when a candidate coinbase doesn't match the expected one.
func NewErrBadCoinbaseTransaction(reason string) error {
	return newRuleErrorf("bad coinbase transaction: %s", reason)
}

// NewErrUnresolvedMergesetTxInput is returned when an input spending a mergeset-internal
// transaction refers to an output that transaction doesn't have.
func NewErrUnresolvedMergesetTxInput() error {
	return newRuleError("transaction input refers to an unresolvable mergeset-internal output")
}

// NewErrBadAcceptedIDMerkleRoot is returned when a block's declared
// accepted-id-merkle-root doesn't match the virtual processor's computed
// value (§4.4 step 3).
func NewErrBadAcceptedIDMerkleRoot(expected, got *externalapi.DomainHash) error {
	return newRuleErrorf("bad accepted ID merkle root: header declares %s, computed %s", expected, got)
}

// IsRuleError reports whether err represents any named consensus-rule
// violation, as opposed to a store/IO failure. The virtual processor uses
// this to decide Disqualified (a rule violation resolving a chain block's
// UTXO effects, §4.10) from a fatal error that must halt the pipeline.
func IsRuleError(err error) bool {
	switch err.(type) {
	case *RuleError, *ErrMissingParents, *ErrBadMerkleRoot:
		return true
	default:
		return false
	}
}
