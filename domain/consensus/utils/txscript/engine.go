// Package txscript verifies a transaction input's signature script against
// its resolved output's locking script (§4.4). Grounded on the teacher's
// txscript.Engine (txscript/engine.go, a 645-line opcode-by-opcode stack
// VM) for the overall verify-one-input shape, scoped down to the two
// standard pay-to-pubkey templates spec.md §4.4 names explicitly (ECDSA
// and Schnorr x-only) rather than a general-purpose opcode interpreter:
// the VM's supporting tables (opcode.go, stack.go, crypto helpers) were
// not present in the retrieved snapshot, and hand-fabricating a full
// opcode set without them would mean inventing consensus rules rather
// than learning them. See DESIGN.md for the scope note.
package txscript

import (
	"github.com/pkg/errors"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/consensushashing"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/utils/sign"
)

// Locking-script templates this engine recognizes. Each is a pubkey push
// (fixed length, identifying the scheme) followed by a one-byte opcode.
const (
	opCheckSigECDSA   = 0xac
	opCheckSigSchnorr = 0xbb

	ecdsaPubKeyLen   = 33
	schnorrPubKeyLen = 32
)

// Engine verifies one transaction input's signature script in the context
// of the full transaction, caching verdicts in a shared SigCache (§4.4,
// §5: "every cache ... store remains the authority on a miss").
type Engine struct {
	tx       *externalapi.DomainTransaction
	inputIdx int
	sigCache *sign.SigCache
	reused   *consensushashing.SighashReusedValues
}

// NewEngine constructs an Engine for verifying input inputIdx of tx.
// reused may be shared across every input of the same transaction to
// amortize sighash computation (§4.8).
func NewEngine(tx *externalapi.DomainTransaction, inputIdx int, sigCache *sign.SigCache, reused *consensushashing.SighashReusedValues) *Engine {
	return &Engine{
		tx:       tx,
		inputIdx: inputIdx,
		sigCache: sigCache,
		reused:   reused,
	}
}

// Execute verifies the input's signature script against its resolved
// UTXOEntry's locking script, returning a descriptive error on failure.
func (e *Engine) Execute() error {
	in := e.tx.Inputs[e.inputIdx]
	if in.UTXOEntry == nil {
		return errors.New("txscript: input has no resolved UTXO entry")
	}

	lockingScript := in.UTXOEntry.ScriptPublicKey.Script
	pubKey, scheme, err := parseLockingScript(lockingScript)
	if err != nil {
		return err
	}

	signature, hashType, err := parseSignatureScript(in.SignatureScript)
	if err != nil {
		return err
	}

	sigHash := consensushashing.CalculateSchnorrSignatureHash(e.tx, e.inputIdx, hashType, e.reused)

	if cached, found := e.sigCache.Get(sigHash, pubKey, signature); found {
		if !cached {
			return errors.New("txscript: signature verification failed (cached)")
		}
		return nil
	}

	var valid bool
	switch scheme {
	case opCheckSigECDSA:
		valid, err = sign.VerifyECDSA(pubKey, sigHash, signature)
	case opCheckSigSchnorr:
		valid, err = sign.VerifySchnorr(pubKey, sigHash, signature)
	default:
		return errors.Errorf("txscript: unknown checksig scheme 0x%x", scheme)
	}

	e.sigCache.Add(sigHash, pubKey, signature, err == nil && valid)

	if err != nil {
		return errors.Wrap(err, "txscript: signature verification errored")
	}
	if !valid {
		return errors.New("txscript: signature verification failed")
	}
	return nil
}

// parseLockingScript recognizes a pubKeyPush||checksigOpcode template and
// returns the pushed public key and the opcode that names its scheme.
func parseLockingScript(script []byte) (pubKey []byte, scheme byte, err error) {
	switch {
	case len(script) == ecdsaPubKeyLen+1 && script[len(script)-1] == opCheckSigECDSA:
		return script[:ecdsaPubKeyLen], opCheckSigECDSA, nil
	case len(script) == schnorrPubKeyLen+1 && script[len(script)-1] == opCheckSigSchnorr:
		return script[:schnorrPubKeyLen], opCheckSigSchnorr, nil
	default:
		return nil, 0, errors.New("txscript: unrecognized locking script template")
	}
}

// parseSignatureScript splits an unlocking script into its signature and
// trailing sighash-type byte.
func parseSignatureScript(script []byte) (signature []byte, hashType consensushashing.SigHashType, err error) {
	if len(script) < 2 {
		return nil, 0, errors.New("txscript: signature script too short")
	}
	return script[:len(script)-1], consensushashing.SigHashType(script[len(script)-1]), nil
}
