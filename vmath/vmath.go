package vmath

import (
	"math"
	"math/bits"
)

// Q32.32 fixed point constants
const (
	Shift  = 32
	Scale  = 1 << Shift
	ScaleF = float64(Scale)
	Half   = 1 << (Shift - 1)

	// MaxValue is the largest representable scalar, used as the
	// "no hit yet" sentinel for closest-fraction tracking
	MaxValue = math.MaxInt64
	MinValue = math.MinInt64
)

// --- Conversions ---

func FromInt(i int) int64       { return int64(i) << Shift }
func ToInt(f int64) int         { return int(f >> Shift) }
func FromFloat(f float64) int64 { return int64(f * Scale) }
func ToFloat(f int64) float64   { return float64(f) / Scale }

// --- Arithmetic ---

// Mul multiplies two Q32.32 scalars through a 128-bit intermediate,
// so products never lose the low fractional bits to pre-shift truncation
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}

	// Q32.32 * Q32.32 = Q64.64; drop 32 fractional bits
	hi, lo := bits.Mul64(ua, ub)
	result := int64((hi << 32) | (lo >> 32))

	if negative {
		return -result
	}
	return result
}

// Div divides two Q32.32 scalars with a 128-bit shifted numerator.
// Division by zero returns zero; quotients outside the representable
// range saturate rather than wrap
func Div(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
	}
	if b < 0 {
		ub = uint64(-b)
	}

	// a << 32 as a 128-bit value
	hi := ua >> 32
	lo := ua << 32

	// Quotient will not fit in 64 bits
	if hi >= ub {
		if negative {
			return MinValue
		}
		return MaxValue
	}

	quo, _ := bits.Div64(hi, lo, ub)

	if quo > math.MaxInt64 {
		if negative {
			return MinValue
		}
		return MaxValue
	}

	if negative {
		return -int64(quo)
	}
	return int64(quo)
}

// MulDiv computes (a * b) / c with a 128-bit intermediate, for ratio
// calculations without precision loss
func MulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	neg := ((a < 0) != (b < 0)) != (c < 0)
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if c < 0 {
		c = -c
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	q, _ := bits.Div64(hi, lo, uint64(c))
	r := int64(q)
	if neg {
		return -r
	}
	return r
}

// Abs returns absolute value
func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -Scale, 0, or Scale
func Sign(x int64) int64 {
	if x < 0 {
		return -Scale
	}
	if x > 0 {
		return Scale
	}
	return 0
}

func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits x to [lo, hi]
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Cmp is a three-way comparison returning -1, 0, or 1.
// Plain integer compare: sort order must come out identical on every
// platform, so no subtraction tricks and no float round-trips
func Cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sqrt returns the Q32.32 square root via Newton-Raphson.
// Integer-only so results are bit-identical across platforms; converges
// in 12 iterations for the coordinate ranges a simulation world uses
func Sqrt(x int64) int64 {
	if x <= 0 {
		return 0
	}

	guess := x
	if guess > Scale {
		guess = Scale
		for guess < x>>1 {
			guess <<= 1
		}
	} else {
		guess = x >> 1
		if guess == 0 {
			guess = 1
		}
	}

	for i := 0; i < 12; i++ {
		if guess == 0 {
			return 0
		}
		guess = (guess + Div(x, guess)) >> 1
	}
	return guess
}

// --- Randomness ---

// FastRand is a xorshift64 generator for reproducible scene setup and
// property tests; identical seeds yield identical sequences everywhere
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Range returns a Q32.32 scalar uniformly in [lo, hi)
func (r *FastRand) Range(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(r.Next()%uint64(hi-lo))
}
