// Package control implements the POET decision engine: a workload
// estimator, a fixed-coefficient control law, and an N^2 configuration
// planner that together decide which pre-characterised system
// configuration a host should run in, and for how long, to meet a
// performance or power goal.
package control

import "github.com/wattctl/poet/pkg/numeric"

// Real is the numeric type all controller math is written against.
type Real = numeric.Real

// ConstraintType selects which of the two quantities the goal constrains.
type ConstraintType int

const (
	// Performance holds the observed rate to the goal and minimizes cost.
	Performance ConstraintType = iota
	// Power holds the observed power to the goal and maximizes performance.
	Power
)

func (c ConstraintType) String() string {
	if c == Power {
		return "POWER"
	}
	return "PERFORMANCE"
}

// SystemState is one pre-characterised configuration entry. The table is
// immutable for the controller's lifetime and is borrowed, never owned.
type SystemState struct {
	// Speedup is the relative performance of this configuration versus a
	// calibration baseline.
	Speedup Real
	// Cost is the relative power/energy of this configuration versus the
	// baseline.
	Cost Real
	// IdlePartnerID names a non-idle entry to compose hybrid iterations
	// with. Only consulted when Speedup < 1 (the idle class).
	IdlePartnerID int
}

// IsIdle reports whether this entry belongs to the idle class.
func (s SystemState) IsIdle() bool { return s.Speedup.Less(numeric.One) }

// ApplyStates is an opaque handle owned by the host and passed through to
// the Apply collaborator verbatim. The controller never dereferences it.
type ApplyStates any

// ApplyFunc idempotently reconfigures the host to newID, optionally idling
// idleNS nanoseconds on entry. Called only when newID != lastID, or on the
// first successful apply of a session.
type ApplyFunc func(states ApplyStates, n int, newID, lastID int, idleNS uint64, isFirstApply bool)

// CurrentFunc queries the host's initial configuration id. On failure the
// session defaults lastID to N-1.
type CurrentFunc func(states ApplyStates, n int) (id int, err error)

// filterState is the Kalman filter state used twice: once for the
// performance workload, once for the cost workload (spec.md 4.2).
type filterState struct {
	xHatMinus Real
	xHat      Real
	pMinus    Real
	h         Real
	k         Real
	p         Real
}

// xupState holds a multiplier's running history and the history-independent
// bounds derived once at Init (spec.md 3, "multiplier state").
type xupState struct {
	u    Real
	uo   Real
	uoo  Real
	e    Real
	eo   Real
	umin Real
	umax Real
}
