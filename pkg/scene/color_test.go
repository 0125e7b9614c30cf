package scene

import "testing"

// TestColorBytesTruncates verifies Bytes truncates toward zero rather
// than rounding, per the reference conversion convention.
func TestColorBytesTruncates(t *testing.T) {
	c := RGB(0.999, 0.501, 0.004)
	r, g, b, _ := c.Bytes()

	if r != 254 {
		t.Errorf("0.999*255 truncated should be 254, got %d", r)
	}
	if g != 127 {
		t.Errorf("0.501*255 truncated should be 127, got %d", g)
	}
	if b != 1 {
		t.Errorf("0.004*255 truncated should be 1, got %d", b)
	}
}

// TestColorBytesClamps verifies out-of-range components clamp to 0/255.
func TestColorBytesClamps(t *testing.T) {
	c := RGBA(-1, 2, 0.5, 10)
	r, g, b, a := c.Bytes()

	if r != 0 {
		t.Errorf("negative R should clamp to 0, got %d", r)
	}
	if g != 255 {
		t.Errorf("G>1 should clamp to 255, got %d", g)
	}
	if b != 127 {
		t.Errorf("0.5*255 truncated should be 127, got %d", b)
	}
	if a != 255 {
		t.Errorf("alpha>1 should clamp to 255, got %d", a)
	}
}

// TestColorScaleAndAddPreserveAlpha verifies scalar ops never touch A.
func TestColorScaleAndAddPreserveAlpha(t *testing.T) {
	c := RGBA(0.2, 0.4, 0.6, 0.5)
	scaled := c.Scale(2)
	if scaled.A != 0.5 {
		t.Errorf("Scale should preserve alpha, got %f", scaled.A)
	}
	sum := c.Add(RGB(0.1, 0.1, 0.1))
	if sum.A != 0.5 {
		t.Errorf("Add should preserve receiver's alpha, got %f", sum.A)
	}
}
