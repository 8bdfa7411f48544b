package control

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wattctl/poet/pkg/numeric"
)

func twoStateTable() []SystemState {
	return []SystemState{
		{Speedup: numeric.Const(1), Cost: numeric.Const(1)},
		{Speedup: numeric.Const(2), Cost: numeric.Const(3)},
	}
}

type applyCall struct {
	n, newID, lastID int
	idleNS           uint64
	isFirst          bool
}

func newTestController(t *testing.T, applies *[]applyCall) *Controller {
	t.Helper()
	c, err := Init(Config{
		Table:          twoStateTable(),
		Goal:           numeric.Const(1.5),
		ConstraintType: Performance,
		Period:         10,
		ApplyStates:    struct{}{},
		Apply: func(states ApplyStates, n, newID, lastID int, idleNS uint64, isFirst bool) {
			*applies = append(*applies, applyCall{n, newID, lastID, idleNS, isFirst})
		},
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c
}

func TestApplyControlCallsApplyAtMostOnceAndAppliesFirstConfiguration(t *testing.T) {
	var applies []applyCall
	c := newTestController(t, &applies)

	if err := c.ApplyControl(0, numeric.Const(1.5), numeric.Const(1.5)); err != nil {
		t.Fatalf("ApplyControl: %v", err)
	}
	if len(applies) != 1 {
		t.Fatalf("got %d apply calls on the first tick, want 1", len(applies))
	}
	if !applies[0].isFirst {
		t.Error("first ApplyControl call must mark isFirstApply")
	}
}

func TestApplyControlDisableApplySuppressesHostCalls(t *testing.T) {
	t.Setenv("POET_DISABLE_APPLY", "1")
	var applies []applyCall
	c := newTestController(t, &applies)

	for i := 0; i < 20; i++ {
		if err := c.ApplyControl(i, numeric.Const(1.5), numeric.Const(1.5)); err != nil {
			t.Fatalf("ApplyControl: %v", err)
		}
	}
	if len(applies) != 0 {
		t.Errorf("got %d apply calls with POET_DISABLE_APPLY set, want 0", len(applies))
	}
}

func TestApplyControlDisableControlFreezesConfiguration(t *testing.T) {
	t.Setenv("POET_DISABLE_CONTROL", "1")
	var applies []applyCall
	c := newTestController(t, &applies)

	for i := 0; i < 20; i++ {
		if err := c.ApplyControl(i, numeric.Const(1.5), numeric.Const(1.5)); err != nil {
			t.Fatalf("ApplyControl: %v", err)
		}
	}
	// POET_DISABLE_CONTROL makes the whole call a no-op from the first
	// tick: no replanning, no choose-id, no Apply, no action/tick advance.
	if len(applies) != 0 {
		t.Errorf("got %d apply calls with POET_DISABLE_CONTROL set, want 0", len(applies))
	}
}

// TestApplyControlNoFeasiblePairReturnsError: calculateXup clamps the
// requested multiplier into [umin, umax], so a goal beyond the table alone
// never empties the planner's search. Here idle entries are disabled and the
// goal is far below the only non-idle speedup (2): the multiplier is clamped
// to umin (0.01), no non-idle entry is at or below it, and no pair exists.
func TestApplyControlNoFeasiblePairReturnsError(t *testing.T) {
	t.Setenv("POET_DISABLE_IDLE", "1")
	var applies []applyCall
	c, err := Init(Config{
		Table: []SystemState{
			{Speedup: numeric.Zero, Cost: numeric.Zero, IdlePartnerID: 1},
			{Speedup: numeric.Const(2), Cost: numeric.Const(3)},
		},
		Goal:           numeric.Const(0.1),
		ConstraintType: Performance,
		Period:         10,
		ApplyStates:    struct{}{},
		Apply: func(states ApplyStates, n, newID, lastID int, idleNS uint64, isFirst bool) {
			applies = append(applies, applyCall{n, newID, lastID, idleNS, isFirst})
		},
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.ApplyControl(0, numeric.Const(2), numeric.Const(3)); err != ErrNoValidConfiguration {
		t.Errorf("ApplyControl error = %v, want ErrNoValidConfiguration", err)
	}
}

func TestLoggerFlushesOnlyOnFullBuffer(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, 4)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	afterHeader := buf.Len()
	if afterHeader == 0 {
		t.Fatal("logger did not write the header row at construction")
	}

	for i := 0; i < 3; i++ {
		l.record(snapshot{tag: i})
	}
	if buf.Len() != afterHeader {
		t.Fatalf("logger flushed early with a partial buffer: %q", buf.String())
	}

	l.record(snapshot{tag: 3})
	if buf.Len() == afterHeader {
		t.Fatal("logger did not flush once the buffer filled")
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 5 { // header + 4 rows
		t.Errorf("got %d lines, want 5 (header + 4 rows)", len(lines))
	}
}

func TestInitRejectsInvalidGoal(t *testing.T) {
	_, err := Init(Config{
		Table:          twoStateTable(),
		Goal:           numeric.Zero,
		ConstraintType: Performance,
		Period:         10,
		ApplyStates:    struct{}{},
	})
	if err != ErrInvalidGoal {
		t.Errorf("Init error = %v, want ErrInvalidGoal", err)
	}
}

func TestInitRejectsLogWithoutBufferDepth(t *testing.T) {
	var buf bytes.Buffer
	_, err := Init(Config{
		Table:          twoStateTable(),
		Goal:           numeric.Const(1),
		ConstraintType: Performance,
		Period:         10,
		ApplyStates:    struct{}{},
		Log:            &buf,
		BufferDepth:    0,
	})
	if err != ErrBufferDepthWithLog {
		t.Errorf("Init error = %v, want ErrBufferDepthWithLog", err)
	}
}
