package scene

import (
	"math"
	"testing"

	"github.com/CygnusX-26/swrast/pkg/math3d"
)

// TestCameraViewMatrixIdentityAtOriginLookingDownZ verifies the default
// camera placement (origin, looking down -Z) produces an identity view
// matrix, the baseline every rasterizer projection test assumes.
func TestCameraViewMatrixIdentityAtOriginLookingDownZ(t *testing.T) {
	c := NewCamera()
	c.LookAt(math3d.V3(0, 0, -1))

	view := c.ViewMatrix()
	identity := math3d.Identity()
	for i := range view {
		if math.Abs(view[i]-identity[i]) > 1e-9 {
			t.Fatalf("ViewMatrix()[%d] = %f, want identity[%d] = %f", i, view[i], i, identity[i])
		}
	}
}

// TestCameraWorldToScreenRejectsBehindEye verifies a point behind the
// camera (negative w after projection) is reported not visible.
func TestCameraWorldToScreenRejectsBehindEye(t *testing.T) {
	c := NewCamera()
	c.LookAt(math3d.V3(0, 0, -1))

	_, _, _, visible := c.WorldToScreen(math3d.V3(0, 0, 5), 100, 100)
	if visible {
		t.Error("a point behind the camera should not be visible")
	}
}

// TestCameraWorldToScreenCentersOriginAhead verifies a point straight
// ahead of the camera projects to the center of the screen.
func TestCameraWorldToScreenCentersOriginAhead(t *testing.T) {
	c := NewCamera()
	c.LookAt(math3d.V3(0, 0, -1))

	x, y, _, visible := c.WorldToScreen(math3d.V3(0, 0, -5), 100, 100)
	if !visible {
		t.Fatal("a point straight ahead of the camera should be visible")
	}
	if math.Abs(x-50) > 1e-6 || math.Abs(y-50) > 1e-6 {
		t.Errorf("WorldToScreen((0,0,-5)) = (%f,%f), want (50,50)", x, y)
	}
}

// TestCameraSettersMarkMatricesDirty verifies changing position
// invalidates the cached view matrix rather than reusing a stale one.
func TestCameraSettersMarkMatricesDirty(t *testing.T) {
	c := NewCamera()
	c.LookAt(math3d.V3(0, 0, -1))
	before := c.ViewMatrix()

	c.SetPosition(math3d.V3(1, 2, 3))
	after := c.ViewMatrix()

	if before == after {
		t.Error("SetPosition should invalidate the cached view matrix")
	}
}
