// Package utxo implements the UTXO diff algebra named in §3: composition
// of diffs, and the commutativity law exercised by §8 property 5
// (apply-then-reverse is a no-op).
package utxo

import (
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/database/binaryserialization"
	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// WithDiff returns a new diff equal to applying `other` on top of `base`,
// collapsing outpoints that cancel out (added by base, removed by other,
// or vice versa) so that, by invariant, ToAdd ∩ ToRemove is always empty.
func WithDiff(base, other *externalapi.UTXODiff) *externalapi.UTXODiff {
	result := externalapi.NewUTXODiff()

	for outpoint, entry := range base.ToAdd {
		result.ToAdd[outpoint] = entry
	}
	for outpoint, entry := range base.ToRemove {
		result.ToRemove[outpoint] = entry
	}

	for outpoint, entry := range other.ToAdd {
		if _, wasRemoved := result.ToRemove[outpoint]; wasRemoved {
			delete(result.ToRemove, outpoint)
			continue
		}
		result.ToAdd[outpoint] = entry
	}
	for outpoint, entry := range other.ToRemove {
		if _, wasAdded := result.ToAdd[outpoint]; wasAdded {
			delete(result.ToAdd, outpoint)
			continue
		}
		result.ToRemove[outpoint] = entry
	}

	return result
}

// Reversed returns the diff that undoes `diff`: add and remove swapped.
// Applying `diff` and then `Reversed(diff)` is the no-op required by §8
// property 5.
func Reversed(diff *externalapi.UTXODiff) *externalapi.UTXODiff {
	reversed := externalapi.NewUTXODiff()
	for outpoint, entry := range diff.ToAdd {
		reversed.ToRemove[outpoint] = entry
	}
	for outpoint, entry := range diff.ToRemove {
		reversed.ToAdd[outpoint] = entry
	}
	return reversed
}

// Apply applies a diff on top of an explicit UTXO set snapshot, returning
// the resulting set. The caller owns the returned map.
func Apply(set map[externalapi.DomainOutpoint]*externalapi.UTXOEntry, diff *externalapi.UTXODiff) map[externalapi.DomainOutpoint]*externalapi.UTXOEntry {
	result := make(map[externalapi.DomainOutpoint]*externalapi.UTXOEntry, len(set)+len(diff.ToAdd))
	for outpoint, entry := range set {
		if _, removed := diff.ToRemove[outpoint]; removed {
			continue
		}
		result[outpoint] = entry
	}
	for outpoint, entry := range diff.ToAdd {
		result[outpoint] = entry
	}
	return result
}

// SerializeUTXO encodes a single (outpoint, entry) pair into the byte
// string fed to the pruning point's MuHash commitment (§4.6, §C.2): the
// outpoint followed by the entry, in the same binary codec the store
// layer already uses for both halves.
func SerializeUTXO(entry *externalapi.UTXOEntry, outpoint *externalapi.DomainOutpoint) ([]byte, error) {
	outpointBytes, err := binaryserialization.SerializeOutpoint(outpoint)
	if err != nil {
		return nil, err
	}
	entryBytes, err := binaryserialization.SerializeUTXOEntry(entry)
	if err != nil {
		return nil, err
	}
	return append(outpointBytes, entryBytes...), nil
}
