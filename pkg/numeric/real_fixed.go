//go:build fixedpoint

package numeric

import (
	"math"
	"math/big"
)

// fracBits is the implementation-defined fractional bit count for the
// fixed-point backing (spec.md 4.1). The stored int64 is the true value
// scaled by 1<<fracBits.
const fracBits = 20

const scale = int64(1) << fracBits

// Real is a signed fixed-point value.
type Real int64

const (
	Zero Real = 0
	One  Real = Real(scale)
)

// Const builds a Real from a compile-time double literal.
func Const(v float64) Real { return Real(math.Round(v * float64(scale))) }

// FromInt converts an integer to a Real.
func FromInt(i int) Real { return Real(int64(i) * scale) }

// ToInt truncates towards zero.
func (r Real) ToInt() int { return int(int64(r) / scale) }

// ToFloat64 converts to a double for logging.
func (r Real) ToFloat64() float64 { return float64(r) / float64(scale) }

func (r Real) Add(o Real) Real { return r + o }
func (r Real) Sub(o Real) Real { return r - o }
func (r Real) Neg() Real       { return -r }

// rescale multiplies n raw fixed-point values and divides by scale^(n-1) in
// one big.Int pass, so intermediate products never lose precision to
// per-pair truncation (the reason mult3/mult4 exist as primitives rather
// than chained mult calls, spec.md 4.1, 9).
func rescale(vals ...Real) Real {
	acc := big.NewInt(int64(vals[0]))
	for _, v := range vals[1:] {
		acc.Mul(acc, big.NewInt(int64(v)))
	}
	divisor := new(big.Int).Exp(big.NewInt(scale), big.NewInt(int64(len(vals)-1)), nil)
	acc.Quo(acc, divisor)
	return Real(acc.Int64())
}

func (r Real) Mul(o Real) Real       { return rescale(r, o) }
func (r Real) Mul3(a, b Real) Real   { return rescale(r, a, b) }
func (r Real) Mul4(a, b, c Real) Real {
	return rescale(r, a, b, c)
}

func (r Real) Div(o Real) Real {
	num := new(big.Int).Mul(big.NewInt(int64(r)), big.NewInt(scale))
	num.Quo(num, big.NewInt(int64(o)))
	return Real(num.Int64())
}

func (r Real) Less(o Real) bool    { return r < o }
func (r Real) Greater(o Real) bool { return r > o }
func (r Real) Equal(o Real) bool   { return r == o }

func (r Real) Abs() Real {
	if r < 0 {
		return -r
	}
	return r
}
