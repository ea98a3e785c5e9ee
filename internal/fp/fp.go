// Package fp implements the fixed-point numeric substrate every resolver
// component computes against. A Scalar is an integer count of
// thousandths — 1.5 world-units is stored as Scalar(1500) — so that two
// hosts running the same sequence of operations produce bit-identical
// results regardless of CPU or compiler. No float64 appears on this
// path; the only transcendental is the lookup-table trig in heading.go.
package fp

import "math/bits"

// Scale is the fixed-point denominator. One whole unit is Scale.
const Scale int64 = 1000

// Scalar is a fixed-point number at 1/Scale resolution.
type Scalar int64

// FromInt lifts a whole number into fixed point.
func FromInt(n int64) Scalar { return Scalar(n * Scale) }

// Add returns a+b, saturating on overflow. The resolver always runs in
// release mode for replay determinism across hosts, so saturation (not
// wrapping) is the only behavior this package implements — a debug
// build that wants wrapping semantics should do its own int64 add.
func Add(a, b Scalar) Scalar {
	sum := int64(a) + int64(b)
	if (int64(b) > 0 && sum < int64(a)) || (int64(b) < 0 && sum > int64(a)) {
		if b > 0 {
			return Scalar(maxInt64)
		}
		return Scalar(minInt64)
	}
	return Scalar(sum)
}

// Sub returns a-b, saturating on overflow.
func Sub(a, b Scalar) Scalar {
	return Add(a, Negate(b))
}

// Negate returns -a, saturating at the int64 boundary (negating MinInt64
// would otherwise overflow).
func Negate(a Scalar) Scalar {
	if int64(a) == minInt64 {
		return Scalar(maxInt64)
	}
	return -a
}

const (
	maxInt64 = 1<<63 - 1
	minInt64 = -1 << 63
)

// Mul computes (a*b)/Scale with truncation toward zero, using a 64x64->128
// bit intermediate product so large magnitudes never silently wrap.
func Mul(a, b Scalar) Scalar {
	hi, lo := bits.Mul64(uint64(absInt64(int64(a))), uint64(absInt64(int64(b))))
	// Divide the 128-bit unsigned product by Scale.
	qhi, qlo := divu128(hi, lo, uint64(Scale))
	_ = qhi // result is guaranteed to fit in 64 bits for any in-range fixed-point operand
	neg := (a < 0) != (b < 0)
	if qlo > uint64(maxInt64) {
		if neg {
			return Scalar(minInt64)
		}
		return Scalar(maxInt64)
	}
	if neg {
		return Scalar(-int64(qlo))
	}
	return Scalar(qlo)
}

// Div computes (a*Scale)/b with truncation toward zero. Division by zero
// is total: it yields 0 rather than panicking, keeping every handler a
// pure total function as required by the resolver contract.
func Div(a, b Scalar) Scalar {
	if b == 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(absInt64(int64(a))), uint64(Scale))
	qhi, qlo := divu128(hi, lo, uint64(absInt64(int64(b))))
	_ = qhi
	neg := (a < 0) != (b < 0)
	if qlo > uint64(maxInt64) {
		if neg {
			return Scalar(minInt64)
		}
		return Scalar(maxInt64)
	}
	if neg {
		return Scalar(-int64(qlo))
	}
	return Scalar(qlo)
}

func absInt64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// divu128 divides the 128-bit unsigned value (hi:lo) by a 64-bit divisor,
// returning a 128-bit quotient as (qhi, qlo). Panics if the quotient
// would not fit in 64 bits, which bits.Div64 already enforces.
func divu128(hi, lo, divisor uint64) (qhi, qlo uint64) {
	if hi == 0 {
		return 0, lo / divisor
	}
	q, _ := bits.Div64(hi, lo, divisor)
	return 0, q
}

// Min returns the smaller of a and b.
func Min(a, b Scalar) Scalar {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Scalar) Scalar {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi Scalar) Scalar {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
