package control

import "github.com/wattctl/poet/pkg/numeric"

// Control-law coefficients (spec.md 4.3). These are the two poles (P1, P2),
// the zero (Z1), and the tuning parameter (MU) baked into calculateXup's
// A/B/C/D/F expressions. The reference's poet_constants.h was not part of
// the retrieved original source, so these are our own stable tuning: Z1 is
// strictly inside (0,1) so F = 1/(Z1-1) stays finite and negative, and
// P1/P2 sit inside (0,1) so the filter settles rather than oscillating.
var (
	p1 = numeric.Const(0.3)
	p2 = numeric.Const(0.3)
	z1 = numeric.Const(0.9)
	mu = numeric.Const(1.0)
)

// Kalman filter process/measurement noise (spec.md 4.2).
var (
	processNoiseQ     = numeric.Const(0.001)
	measurementNoiseR = numeric.Const(1.0)
)

// Filter state initial values, shared across the performance and cost
// filters at Init (spec.md 3).
var (
	xHatMinusStart = numeric.Const(1.0)
	xHatStart      = numeric.Const(1.0)
	pMinusStart    = numeric.Const(1.0)
	hStart         = numeric.Const(1.0)
	kStart         = numeric.Zero
	pStart         = numeric.Const(1.0)
)

// Multiplier state initial error values (spec.md 3).
var (
	eStart  = numeric.Zero
	eoStart = numeric.Zero
)

// currentActionStart is the initial value of the per-session tick counter.
const currentActionStart = 0

// uMinSpeedup and uMinCost are the floors below which umin may not fall
// (spec.md 3, "Floors").
var (
	uMinSpeedup = numeric.Const(0.01)
	uMinCost    = numeric.Const(0.01)
)

// bigReal mirrors the reference's BIG_REAL_T, the initial "best cost" of a
// PERFORMANCE-constraint planner search (spec.md 4.5). planConfiguration
// does not read it: it takes its initial best cost from the first
// candidate pair.
var bigReal = numeric.Const(1e18)
