package control

import "errors"

// Init argument-validation errors (spec.md 7). Init returns one of these
// in place of the reference's errno/EINVAL: the validation errors as they
// are, ErrLogOpenFailed wrapped with the sink's own error.
var (
	ErrInvalidGoal          = errors.New("control: goal must be > 0")
	ErrNoSystemStates       = errors.New("control: num system states must be > 0")
	ErrNilControlStates     = errors.New("control: control states must not be nil")
	ErrInvalidPeriod        = errors.New("control: period must be > 0")
	ErrBufferDepthWithLog   = errors.New("control: buffer depth must be > 0 when a log sink is configured")
	ErrLogOpenFailed        = errors.New("control: failed to open log sink")
	ErrInvalidIdlePartner   = errors.New("control: idle-class entry names a partner that is itself idle, or an out-of-range id")

	// ErrNoValidConfiguration is returned by ApplyControl when no (lower,
	// upper) pair in the table brackets the controller's clamped multiplier
	// (spec.md 4.5, "no feasible pair"). The caller's last-known
	// configuration is left unchanged.
	ErrNoValidConfiguration = errors.New("control: no system state pair brackets the goal")

	// errAllocationFailed documents the reference's allocation-failure error
	// kind (spec.md 7) for taxonomy parity; Go's runtime panics on
	// allocation failure instead of returning an error, so this is never
	// actually returned.
	errAllocationFailed = errors.New("control: allocation failed")
)

var _ = errAllocationFailed
