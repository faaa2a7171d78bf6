package externalapi

import "math/big"

// BlueWork is an up-to-192-bit accumulator of proof-of-work, stored as a
// big.Int under the hood (§3: blue_work is a Uint192). We don't bound the
// width explicitly -- big.Int naturally stays within 192 bits for any
// realistic chain length, and serialization trims to the minimal big-endian
// encoding the way the teacher's difficulty code already treats blue work.
type BlueWork struct {
	value *big.Int
}

// NewBlueWork wraps a big.Int as a BlueWork value.
func NewBlueWork(value *big.Int) *BlueWork {
	return &BlueWork{value: new(big.Int).Set(value)}
}

// BlueWorkFromUint64 is a convenience constructor for tests and genesis setup.
func BlueWorkFromUint64(value uint64) *BlueWork {
	return &BlueWork{value: new(big.Int).SetUint64(value)}
}

// BigInt exposes the underlying big.Int. Callers must not mutate the result.
func (w *BlueWork) BigInt() *big.Int {
	if w == nil {
		return new(big.Int)
	}
	return w.value
}

// Add returns a new BlueWork equal to w+other.
func (w *BlueWork) Add(other *BlueWork) *BlueWork {
	return NewBlueWork(new(big.Int).Add(w.BigInt(), other.BigInt()))
}

// Cmp compares two BlueWork values the way big.Int.Cmp does.
func (w *BlueWork) Cmp(other *BlueWork) int {
	return w.BigInt().Cmp(other.BigInt())
}

// Clone returns a deep copy.
func (w *BlueWork) Clone() *BlueWork {
	if w == nil {
		return nil
	}
	return NewBlueWork(w.value)
}

// String renders the blue work as a hex string, as the teacher's logs do
// for blue-work quantities.
func (w *BlueWork) String() string {
	return w.BigInt().Text(16)
}
