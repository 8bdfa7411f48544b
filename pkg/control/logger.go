package control

import (
	"fmt"
	"io"
)

// snapshot is one control action's worth of state, captured the instant
// ApplyControl decides it (spec.md 6). Field names mirror the log columns
// they feed: P_ prefixes the performance filter/multiplier, C_ the cost
// filter/multiplier.
type snapshot struct {
	tag        int
	constraint ConstraintType

	actualRate  Real
	perfFilter  filterState
	perfSpeedup Real
	perfError   Real

	actualPower Real
	costFilter  filterState
	costPowerup Real
	costError   Real

	timeWorkload   Real
	energyWorkload Real

	lowerID       int
	upperID       int
	lowStateIters int
	idleNS        uint64
}

// logHeader names every fixed-width column logger writes, in order
// (spec.md 6, "Log format").
var logHeader = []string{
	"TAG", "CONSTRAINT", "ACTUAL_RATE",
	"P_X_HAT_MINUS", "P_X_HAT", "P_P_MINUS", "P_H", "P_K", "P_P",
	"P_SPEEDUP", "P_ERROR",
	"ACTUAL_POWER",
	"C_X_HAT_MINUS", "C_X_HAT", "C_P_MINUS", "C_H", "C_K", "C_P",
	"C_POWERUP", "C_ERROR",
	"TIME_WORKLOAD", "ENERGY_WORKLOAD",
	"LOWER_ID", "UPPER_ID", "LOW_STATE_ITERS", "IDLE_NS",
}

// logger is a fixed-depth ring buffer that only touches its io.Writer sink
// for data rows once a full cycle has accumulated, matching the reference's
// buffer-then-flush log (spec.md 6): a crash between flushes loses at most
// one buffer's worth of history, never a partial row. The header row is
// written once, unconditionally, at construction (spec.md 6, "Header row
// ... written at init").
type logger struct {
	sink  io.Writer
	rows  []snapshot
	depth int
	next  int
	count int
}

func newLogger(sink io.Writer, depth int) (*logger, error) {
	l := &logger{
		sink:  sink,
		rows:  make([]snapshot, depth),
		depth: depth,
	}
	if err := l.writeHeader(); err != nil {
		return nil, err
	}
	return l, nil
}

// record appends row to the ring buffer, flushing automatically whenever
// the buffer fills.
func (l *logger) record(row snapshot) {
	l.rows[l.next] = row
	l.next = (l.next + 1) % l.depth
	l.count++
	if l.count == l.depth {
		_ = l.flush()
	}
}

// flush writes every buffered row to the sink, oldest first, and resets the
// buffer.
func (l *logger) flush() error {
	if l.count == 0 {
		return nil
	}

	start := (l.next - l.count + l.depth) % l.depth
	for i := 0; i < l.count; i++ {
		row := l.rows[(start+i)%l.depth]
		if err := l.writeRow(row); err != nil {
			return err
		}
	}
	l.count = 0
	return nil
}

func (l *logger) writeHeader() error {
	line := ""
	for i, h := range logHeader {
		if i > 0 {
			line += " "
		}
		line += fmt.Sprintf("%16s", h)
	}
	_, err := fmt.Fprintln(l.sink, line)
	return err
}

// writeRow emits the 26 space-separated, 16-character right-aligned fields
// spec.md 6 mandates: TAG CONSTRAINT ACTUAL_RATE P_X_HAT_MINUS P_X_HAT
// P_P_MINUS P_H P_K P_P P_SPEEDUP P_ERROR ACTUAL_POWER C_X_HAT_MINUS C_X_HAT
// C_P_MINUS C_H C_K C_P C_POWERUP C_ERROR TIME_WORKLOAD ENERGY_WORKLOAD
// LOWER_ID UPPER_ID LOW_STATE_ITERS IDLE_NS.
func (l *logger) writeRow(row snapshot) error {
	_, err := fmt.Fprintf(l.sink,
		"%16d %16s"+
			" %16f %16f %16f %16f %16f %16f %16f %16f %16f"+
			" %16f %16f %16f %16f %16f %16f %16f %16f %16f"+
			" %16f %16f"+
			" %16d %16d %16d %16d\n",
		row.tag, row.constraint.String(),
		row.actualRate.ToFloat64(),
		row.perfFilter.xHatMinus.ToFloat64(), row.perfFilter.xHat.ToFloat64(),
		row.perfFilter.pMinus.ToFloat64(), row.perfFilter.h.ToFloat64(),
		row.perfFilter.k.ToFloat64(), row.perfFilter.p.ToFloat64(),
		row.perfSpeedup.ToFloat64(), row.perfError.ToFloat64(),
		row.actualPower.ToFloat64(),
		row.costFilter.xHatMinus.ToFloat64(), row.costFilter.xHat.ToFloat64(),
		row.costFilter.pMinus.ToFloat64(), row.costFilter.h.ToFloat64(),
		row.costFilter.k.ToFloat64(), row.costFilter.p.ToFloat64(),
		row.costPowerup.ToFloat64(), row.costError.ToFloat64(),
		row.timeWorkload.ToFloat64(), row.energyWorkload.ToFloat64(),
		row.lowerID, row.upperID, row.lowStateIters, row.idleNS,
	)
	return err
}
