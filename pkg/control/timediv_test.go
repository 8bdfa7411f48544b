package control

import (
	"testing"

	"github.com/wattctl/poet/pkg/numeric"
)

// TestCalculateTimeDivisionNonIdle exercises spec.md 8 scenario 2: two-state
// table {(1,1),(2,3)}, goal 1.5, period 10. Solving 1/1.5 = x/1 + (1-x)/2
// gives x = 1/3, so low_state_iters = trunc(10/3) = 3 and the per-period
// cost is 3/1*1 + 7/2*3 = 13.5.
func TestCalculateTimeDivisionNonIdle(t *testing.T) {
	res := calculateTimeDivision(10,
		numeric.Const(1), numeric.Const(2), numeric.Zero,
		numeric.Const(1), numeric.Const(3), numeric.Zero,
		numeric.Const(1.5), numeric.Const(1))

	if res.lowStateIters != 3 {
		t.Errorf("lowStateIters = %d, want 3", res.lowStateIters)
	}
	if res.idleNS != 0 {
		t.Errorf("idleNS = %d, want 0 for a non-idle lower state", res.idleNS)
	}
	wantCost := numeric.Const(13.5)
	if diff := res.costEstimate.Sub(wantCost).Abs(); diff.Greater(numeric.Const(1e-6)) {
		t.Errorf("costEstimate = %v, want ~13.5", res.costEstimate.ToFloat64())
	}
}

func TestCalculateTimeDivisionEqualRates(t *testing.T) {
	res := calculateTimeDivision(10,
		numeric.Const(2), numeric.Const(2), numeric.Zero,
		numeric.Const(1), numeric.Const(1), numeric.Zero,
		numeric.Const(2), numeric.Const(1))

	if res.lowStateIters != 0 {
		t.Errorf("lowStateIters = %d, want 0 when upper == lower (no split needed)", res.lowStateIters)
	}
}

// TestCalculateTimeDivisionIdle exercises spec.md 8 scenario 3: an idle
// lower state with a non-idle partner should produce exactly one low-state
// iteration with a positive idle duration.
func TestCalculateTimeDivisionIdle(t *testing.T) {
	// table {(0,0,partner=1),(1,1),(4,5)}, goal 2, period 10
	res := calculateTimeDivision(10,
		numeric.Zero, numeric.Const(4), numeric.Const(1),
		numeric.Zero, numeric.Const(5), numeric.Const(1),
		numeric.Const(2), numeric.Const(1))

	if res.lowStateIters != 1 {
		t.Errorf("lowStateIters = %d, want 1 for an idle lower state", res.lowStateIters)
	}
	if res.idleNS == 0 {
		t.Error("idleNS = 0, want > 0 for an idle lower state below the hybrid rate")
	}
}

func TestCalculateTimeDivisionIdleTooFastForIdling(t *testing.T) {
	// hybrid rate ends up >= partner rate: idling would be wasted, so the
	// solver must fall back to pure-upper timing with zero idle iterations.
	res := calculateTimeDivision(2,
		numeric.Const(0.1), numeric.Const(100), numeric.Const(0.2),
		numeric.Const(0.1), numeric.Const(100), numeric.Const(0.2),
		numeric.Const(99), numeric.Const(1))

	if res.lowStateIters != 0 {
		t.Errorf("lowStateIters = %d, want 0 when the hybrid rate already exceeds the partner rate", res.lowStateIters)
	}
	if res.idleNS != 0 {
		t.Errorf("idleNS = %d, want 0", res.idleNS)
	}
}
