package gas

import (
	stdmath "math"

	gethmath "github.com/ethereum/go-ethereum/common/math"
)

// Gas is the metering unit charged per unit of computation, storage and
// bandwidth consumed by a transaction.
//
// All arithmetic on Gas saturates at Max instead of wrapping. Offsets, lengths
// and exponent sizes flow in from attacker-controlled transaction payloads, so
// a wrap here would turn a deliberately huge access into a cheap one. Max
// exceeds any feasible gas budget and therefore always fails the charge.
type Gas uint64

// Max is the fail-closed cost: no block gas limit can pay for it.
const Max = Gas(stdmath.MaxUint64)

// Add returns g+other, saturating at Max on overflow.
func (g Gas) Add(other Gas) Gas {
	sum, overflow := gethmath.SafeAdd(uint64(g), uint64(other))
	if overflow {
		return Max
	}
	return Gas(sum)
}

// Mul returns g*other, saturating at Max on overflow.
func (g Gas) Mul(other Gas) Gas {
	product, overflow := gethmath.SafeMul(uint64(g), uint64(other))
	if overflow {
		return Max
	}
	return Gas(product)
}

// Of converts a uint64 magnitude into Gas.
func Of(v uint64) Gas {
	return Gas(v)
}

// wordsFor returns the number of 32-byte words needed to hold length bytes,
// rounding up. Saturates instead of wrapping for lengths near MaxUint64.
func wordsFor(length uint64) Gas {
	if length > stdmath.MaxUint64-31 {
		return Max
	}
	return Gas((length + 31) / 32)
}

// wordsForRange returns the word count covering [0, offset+length), i.e. the
// memory words an access at offset of the given length requires.
func wordsForRange(offset, length uint64) Gas {
	end, overflow := gethmath.SafeAdd(offset, length)
	if overflow {
		return Max
	}
	return wordsFor(end)
}
