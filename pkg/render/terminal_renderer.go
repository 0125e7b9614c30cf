package render

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalRenderer drives a half-block Framebuffer onto an ultraviolet
// terminal: it owns the framebuffer's pixel dimensions (2x the terminal's
// row count, since each cell covers two framebuffer rows) and flushes a
// completed frame to the screen.
type TerminalRenderer struct {
	term *uv.Terminal
	cols int
	rows int
}

// NewTerminalRenderer sizes a renderer to the given terminal dimensions
// in columns and rows.
func NewTerminalRenderer(term *uv.Terminal, cols, rows int) *TerminalRenderer {
	return &TerminalRenderer{term: term, cols: cols, rows: rows}
}

// FramebufferSize returns the pixel dimensions a Framebuffer should be
// allocated at to exactly cover this renderer's terminal area: one
// column per pixel, two framebuffer rows per terminal row.
func (t *TerminalRenderer) FramebufferSize() (width, height int) {
	return t.cols, t.rows * 2
}

// Render draws fb's pixels onto the terminal's screen buffer as
// half-block cells. Call Flush afterward to present the frame.
func (t *TerminalRenderer) Render(fb *Framebuffer) {
	fb.Draw(t.term, uv.Rect(0, 0, t.cols, t.rows))
}

// Flush presents whatever has been drawn onto the terminal's screen
// buffer since the last Flush.
func (t *TerminalRenderer) Flush() error {
	return t.term.Display()
}
