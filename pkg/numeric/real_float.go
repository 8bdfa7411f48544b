//go:build !fixedpoint

// Package numeric provides the Real number abstraction that all POET
// control math is written against. This file is the floating-point
// backing; real_fixed.go (built with the fixedpoint tag) is the
// interchangeable fixed-point backing described in spec.md 4.1.
package numeric

import "math"

// Real is a single real-number value. With this build tag it is an IEEE
// double; every operation below has a fixed-point counterpart with the
// identical signature.
type Real float64

// Zero and One are the additive and multiplicative identities.
const (
	Zero Real = 0
	One  Real = 1
)

// Const builds a Real from a compile-time double literal.
func Const(v float64) Real { return Real(v) }

// FromInt converts an integer to a Real.
func FromInt(i int) Real { return Real(i) }

// ToInt truncates towards zero.
func (r Real) ToInt() int { return int(r) }

// ToFloat64 converts to a double for logging.
func (r Real) ToFloat64() float64 { return float64(r) }

func (r Real) Add(o Real) Real { return r + o }
func (r Real) Sub(o Real) Real { return r - o }
func (r Real) Neg() Real       { return -r }
func (r Real) Mul(o Real) Real { return r * o }

// Mul3 and Mul4 multiply three/four values. On the floating-point backing
// these are plain chained multiplications; they exist as primitives so the
// fixed-point backing can rescale once instead of after every pairwise
// multiply (spec.md 4.1 and 9).
func (r Real) Mul3(a, b Real) Real    { return r * a * b }
func (r Real) Mul4(a, b, c Real) Real { return r * a * b * c }

func (r Real) Div(o Real) Real { return r / o }

func (r Real) Less(o Real) bool    { return r < o }
func (r Real) Greater(o Real) bool { return r > o }
func (r Real) Equal(o Real) bool   { return r == o }

// Abs returns the absolute value, used by steady-state convergence checks.
func (r Real) Abs() Real { return Real(math.Abs(float64(r))) }
