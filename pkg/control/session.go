package control

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/wattctl/poet/pkg/numeric"
)

// Config is everything Init needs to stand up a session: the
// pre-characterised table, the goal and what it constrains, the planning
// horizon, the host collaborators, and an optional snapshot sink
// (spec.md 3).
type Config struct {
	Table          []SystemState
	Goal           Real
	ConstraintType ConstraintType
	Period         int

	ApplyStates ApplyStates
	Apply       ApplyFunc
	Current     CurrentFunc

	// Log, if non-nil, receives one fixed-width row per control action
	// once BufferDepth rows have accumulated (spec.md 6).
	Log         io.Writer
	BufferDepth int
}

// Controller is a single running POET session. All exported methods are
// safe to call from one goroutine at a time; ApplyControl holds an internal
// mutex only so a concurrent monitoring reader (internal/api) can take a
// consistent snapshot without racing the control loop (spec.md 9).
type Controller struct {
	mu sync.Mutex

	table      []SystemState
	goal       Real
	constraint ConstraintType
	period     int

	applyStates ApplyStates
	apply       ApplyFunc

	perfFilter filterState
	costFilter filterState
	perfXup    xupState
	costXup    xupState

	lastID       int
	action       int
	firstApplied bool
	tick         uint64

	disableControl bool
	disableIdle    bool
	disableApply   bool

	plan    planResult
	hasPlan bool

	log *logger
}

// Init validates cfg and constructs a ready-to-drive Controller. umin/umax
// are derived once here: umin is the largest value no smaller than the
// floor (uMinSpeedup/uMinCost) for which every table entry's controlled
// metric is reachable going downward, i.e. the minimum over the table
// clamped up to the floor; umax is the maximum over the table (spec.md 9,
// resolving the umin/umax open question the way the reference's running
// min/floor-clamp loop actually behaves).
func Init(cfg Config) (*Controller, error) {
	if !cfg.Goal.Greater(numeric.Zero) {
		return nil, ErrInvalidGoal
	}
	if cfg.Table == nil {
		return nil, ErrNilControlStates
	}
	if len(cfg.Table) == 0 {
		return nil, ErrNoSystemStates
	}
	if cfg.Period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if cfg.Log != nil && cfg.BufferDepth <= 0 {
		return nil, ErrBufferDepthWithLog
	}
	for _, s := range cfg.Table {
		if s.IsIdle() {
			if s.IdlePartnerID < 0 || s.IdlePartnerID >= len(cfg.Table) {
				return nil, ErrInvalidIdlePartner
			}
			if cfg.Table[s.IdlePartnerID].IsIdle() {
				return nil, ErrInvalidIdlePartner
			}
		}
	}

	c := &Controller{
		table:       cfg.Table,
		goal:        cfg.Goal,
		constraint:  cfg.ConstraintType,
		period:      cfg.Period,
		applyStates: cfg.ApplyStates,
		apply:       cfg.Apply,

		perfFilter: newFilterState(),
		costFilter: newFilterState(),
		action:     currentActionStart,

		disableControl: os.Getenv("POET_DISABLE_CONTROL") != "",
		disableIdle:    os.Getenv("POET_DISABLE_IDLE") != "",
		disableApply:   os.Getenv("POET_DISABLE_APPLY") != "",
	}

	lastID := len(cfg.Table) - 1
	if cfg.Current != nil {
		if id, err := cfg.Current(cfg.ApplyStates, len(cfg.Table)); err == nil {
			lastID = id
		}
	}
	c.lastID = lastID

	// u/uo/uoo seed from the configuration already in effect, not from an
	// arbitrary constant: the reference primes both multiplier histories
	// from control_states[last_id] (original_source/src/poet.c 211-222), so
	// the first calculateXup call sees a real trajectory instead of a
	// spurious step from zero.
	speedupMin, speedupMax, costMin, costMax := deriveMultiplierBounds(cfg.Table)
	c.perfXup = newXupState(cfg.Table[lastID].Speedup, speedupMin, speedupMax)
	c.costXup = newXupState(cfg.Table[lastID].Cost, costMin, costMax)
	c.plan = planResult{lowerID: lastID, upperID: lastID}

	if cfg.Log != nil {
		log, err := newLogger(cfg.Log, cfg.BufferDepth)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLogOpenFailed, err)
		}
		c.log = log
	}

	return c, nil
}

// deriveMultiplierBounds computes, per metric, the plain min/max over the
// table, with the min clamped up to the metric's floor (spec.md 9): umin is
// the largest value no smaller than the floor that the min over the table
// still respects, umax is simply the table's maximum.
func deriveMultiplierBounds(table []SystemState) (speedupMin, speedupMax, costMin, costMax Real) {
	speedupMin, costMin = table[0].Speedup, table[0].Cost
	speedupMax, costMax = table[0].Speedup, table[0].Cost
	for _, s := range table[1:] {
		if s.Speedup.Less(speedupMin) {
			speedupMin = s.Speedup
		}
		if s.Speedup.Greater(speedupMax) {
			speedupMax = s.Speedup
		}
		if s.Cost.Less(costMin) {
			costMin = s.Cost
		}
		if s.Cost.Greater(costMax) {
			costMax = s.Cost
		}
	}
	if speedupMin.Less(uMinSpeedup) {
		speedupMin = uMinSpeedup
	}
	if costMin.Less(uMinCost) {
		costMin = uMinCost
	}
	return speedupMin, speedupMax, costMin, costMax
}

// SetConstraintType switches which quantity future ApplyControl calls
// constrain, forcing a replan on the next call (spec.md 4.6).
func (c *Controller) SetConstraintType(ct ConstraintType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.constraint = ct
	c.action = 0
	c.hasPlan = false
}

// ApplyControl is the per-iteration driver (spec.md 4.6). n identifies the
// current host iteration and is passed through to the Apply collaborator;
// log rows are tagged with the controller's own tick count instead.
// observedRate and observedCost are the metrics measured since the
// previous call. At most one Apply call is issued per invocation.
func (c *Controller) ApplyControl(n int, observedRate, observedCost Real) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disableControl {
		return nil
	}

	perfWorkload := estimateBaseWorkload(observedRate, c.perfXup.u, &c.perfFilter)
	costWorkload := estimateBaseWorkload(observedCost, c.costXup.u, &c.costFilter)

	var planErr error
	if c.action == 0 {
		controlled, secondary := &c.perfXup, &c.costXup
		observed, workload := observedRate, perfWorkload
		if c.constraint == Power {
			controlled, secondary = &c.costXup, &c.perfXup
			observed, workload = observedCost, costWorkload
		}
		calculateXup(observed, c.goal, workload, controlled)
		target := controlled.u

		plan, ok := planConfiguration(c.table, target, c.constraint, c.disableIdle, workload, c.period)
		if !ok {
			// Non-fatal: choose-id/apply/log/advance below still run, but
			// with no plan in effect they keep lastID for the whole period
			// (spec.md 4.6, 7).
			planErr = ErrNoValidConfiguration
			c.hasPlan = false
		} else {
			calculateCostXup(plan.costXupEstimate, secondary)
			c.plan = plan
			c.hasPlan = true
		}
	}

	newID := c.lastID
	var idleNS uint64
	if c.hasPlan {
		newID = c.plan.upperID
		if c.action < c.plan.lowStateIters {
			newID = c.plan.lowerID
			if c.action == 0 && c.table[c.plan.lowerID].IsIdle() {
				idleNS = c.plan.idleNS
			}
		}
	}

	isFirst := !c.firstApplied
	if !c.disableApply && c.apply != nil && (newID != c.lastID || isFirst) {
		c.apply(c.applyStates, n, newID, c.lastID, idleNS, isFirst)
		c.firstApplied = true
	}

	c.lastID = newID
	if c.period > 0 {
		c.action = (c.action + 1) % c.period
	}
	c.tick++

	if c.log != nil {
		perfSpeedup, perfError := c.perfXup.u, c.perfXup.e
		costPowerup, costError := c.costXup.u, c.costXup.e
		c.log.record(snapshot{
			tag:            int(c.tick),
			constraint:     c.constraint,
			actualRate:     observedRate,
			perfFilter:     c.perfFilter,
			perfSpeedup:    perfSpeedup,
			perfError:      perfError,
			actualPower:    observedCost,
			costFilter:     c.costFilter,
			costPowerup:    costPowerup,
			costError:      costError,
			timeWorkload:   perfWorkload,
			energyWorkload: costWorkload,
			lowerID:        c.plan.lowerID,
			upperID:        c.plan.upperID,
			lowStateIters:  c.plan.lowStateIters,
			idleNS:         idleNS,
		})
	}

	return planErr
}

// Close releases the session. It does not flush a partial log buffer: the
// reference only ever flushes on a full ring-buffer cycle, and a partial
// tail of snapshots is lost on destroy there too (spec.md 9).
func (c *Controller) Close() error {
	return nil
}

// Snapshot is a read-only copy of the controller's most recent decision,
// safe to export to a monitoring reader (spec.md 9).
type Snapshot struct {
	Tick           uint64
	LastID         int
	Goal           Real
	ConstraintType ConstraintType
	PerfXHat       Real
	CostXHat       Real
}

// Snapshot returns the controller's current state without mutating it.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Tick:           c.tick,
		LastID:         c.lastID,
		Goal:           c.goal,
		ConstraintType: c.constraint,
		PerfXHat:       c.perfFilter.xHat,
		CostXHat:       c.costFilter.xHat,
	}
}
