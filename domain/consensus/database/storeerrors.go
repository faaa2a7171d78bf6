package database

import "github.com/pkg/errors"

// ErrNotFound is returned by stores when a key is absent. Per §7, whether
// this is fatal depends on the caller: required-by-invariant data missing
// is a programming error (the caller should panic), optional lookups
// propagate it to let the caller decide.
var ErrNotFound = errors.New("key not found")

// ErrKeyAlreadyExists names the overwrite of an existing key in a store
// with append-only semantics (headers, ghostdag data, acceptance data,
// block transactions, per-chain UTXO diffs -- §3). No store returns it:
// the stores' Stage and Commit methods overwrite an existing value without
// checking for one.
var ErrKeyAlreadyExists = errors.New("key already exists")

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
