package raster

import "fmt"

// MathError reports a fatal numerical failure encountered while
// transforming an object: a non-invertible normal matrix. A vertex
// whose projection is non-finite is not a MathError; its triangle is
// skipped like any other out-of-frustum triangle. MathErrors map to the
// fatal Math category; unlike a rejected or back-facing triangle, a
// MathError aborts the whole frame.
type MathError struct {
	Object string
	Reason string
}

func (e *MathError) Error() string {
	return fmt.Sprintf("raster: object %q: %s", e.Object, e.Reason)
}
