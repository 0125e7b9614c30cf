package math3d

import "testing"

func TestVec2AddSubScale(t *testing.T) {
	a := V2(1, 2)
	b := V2(3, -1)

	if got := a.Add(b); got != V2(4, 1) {
		t.Errorf("Add = %v, want (4,1)", got)
	}
	if got := a.Sub(b); got != V2(-2, 3) {
		t.Errorf("Sub = %v, want (-2,3)", got)
	}
	if got := a.Scale(2); got != V2(2, 4) {
		t.Errorf("Scale = %v, want (2,4)", got)
	}
}

func TestVec2Lerp(t *testing.T) {
	a := V2(0, 0)
	b := V2(10, 20)

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, want a = %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(t=1) = %v, want b = %v", got, b)
	}
	if got := a.Lerp(b, 0.5); got != V2(5, 10) {
		t.Errorf("Lerp(t=0.5) = %v, want (5,10)", got)
	}
}

func TestVec2Zero(t *testing.T) {
	if got := Zero2(); got != V2(0, 0) {
		t.Errorf("Zero2() = %v, want (0,0)", got)
	}
}
