package numeric

import "testing"

func TestArithmetic(t *testing.T) {
	a := Const(2.5)
	b := Const(4.0)

	if got := a.Add(b); got != Const(6.5) {
		t.Errorf("Add = %v, want 6.5", got.ToFloat64())
	}
	if got := b.Sub(a); got != Const(1.5) {
		t.Errorf("Sub = %v, want 1.5", got.ToFloat64())
	}
	if got := a.Neg(); got != Const(-2.5) {
		t.Errorf("Neg = %v, want -2.5", got.ToFloat64())
	}
	if got := a.Mul(b); got != Const(10.0) {
		t.Errorf("Mul = %v, want 10.0", got.ToFloat64())
	}
	if got := b.Div(a); got != Const(1.6) {
		t.Errorf("Div = %v, want 1.6", got.ToFloat64())
	}
}

func TestMul3Mul4(t *testing.T) {
	two := Const(2.0)
	three := Const(3.0)
	four := Const(4.0)

	if got := two.Mul3(three, four); got != Const(24.0) {
		t.Errorf("Mul3(2,3,4) = %v, want 24", got.ToFloat64())
	}
	if got := two.Mul4(three, four, Const(0.5)); got != Const(12.0) {
		t.Errorf("Mul4(2,3,4,0.5) = %v, want 12", got.ToFloat64())
	}
}

func TestConversions(t *testing.T) {
	if got := FromInt(7); got.ToInt() != 7 {
		t.Errorf("FromInt(7).ToInt() = %d, want 7", got.ToInt())
	}
	if got := Const(3.75).ToInt(); got != 3 {
		t.Errorf("Const(3.75).ToInt() = %d, want 3 (truncate toward zero)", got)
	}
	if got := Const(-3.75).ToInt(); got != -3 {
		t.Errorf("Const(-3.75).ToInt() = %d, want -3 (truncate toward zero)", got)
	}
}

func TestOrdering(t *testing.T) {
	if !Const(1).Less(Const(2)) {
		t.Error("1 < 2 failed")
	}
	if !Const(2).Greater(Const(1)) {
		t.Error("2 > 1 failed")
	}
	if !Const(1).Equal(One) {
		t.Error("Const(1) != One")
	}
	if !Zero.Equal(Const(0)) {
		t.Error("Zero != Const(0)")
	}
}

func TestAbs(t *testing.T) {
	if got := Const(-4.5).Abs(); got != Const(4.5) {
		t.Errorf("Abs(-4.5) = %v, want 4.5", got.ToFloat64())
	}
}
