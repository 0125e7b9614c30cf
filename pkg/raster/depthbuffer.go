// Package raster implements the perspective-correct, depth-tested
// triangle rasterizer that turns a scene.World into a pixel buffer.
package raster

import (
	"math"
	"sync/atomic"
)

// DepthBuffer is a per-pixel array of float32 depth values, each owned
// by an atomic.Uint32 holding its IEEE-754 bit pattern. Triangles across
// a frame race to claim each pixel; TryUpdate resolves the race with a
// single compare-and-swap attempt rather than a lock, so a pixel that
// loses the race is simply not drawn by the loser and no retry is made.
type DepthBuffer struct {
	Width, Height int
	cells         []atomic.Uint32
}

// farBits is the bit pattern of float32(1.0), the far-plane depth every
// cell is initialized to: anything closer than the far plane (z < 1)
// always passes the first comparison against a fresh buffer.
var farBits = math.Float32bits(1.0)

// NewDepthBuffer allocates a w*h depth buffer with every cell reset to
// far-plane depth.
func NewDepthBuffer(w, h int) *DepthBuffer {
	d := &DepthBuffer{Width: w, Height: h, cells: make([]atomic.Uint32, w*h)}
	d.Reset()
	return d
}

// Reset reinitializes every cell to far-plane depth, e.g. between
// frames when a DepthBuffer is reused.
func (d *DepthBuffer) Reset() {
	for i := range d.cells {
		d.cells[i].Store(farBits)
	}
}

// index converts (x, y) into the flat cell index.
func (d *DepthBuffer) index(x, y int) int {
	return y*d.Width + x
}

// Depth returns the current depth stored at (x, y).
func (d *DepthBuffer) Depth(x, y int) float32 {
	return math.Float32frombits(d.cells[d.index(x, y)].Load())
}

// TryUpdate attempts to claim pixel (x, y) for depth z: it loads the
// current cell, rejects if z is not strictly nearer (z >= current), and
// otherwise attempts exactly one compare-and-swap from the observed bits
// to z's bits. A losing CAS is treated the same as a failed comparison:
// the caller does not retry and the pixel is left to whichever triangle
// won the race.
func (d *DepthBuffer) TryUpdate(x, y int, z float32) bool {
	cell := &d.cells[d.index(x, y)]
	current := cell.Load()
	if z >= math.Float32frombits(current) {
		return false
	}
	return cell.CompareAndSwap(current, math.Float32bits(z))
}
