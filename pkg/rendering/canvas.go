// Package rendering defines the drawing surface the widget tree paints
// into, along with a recording implementation used for offscreen painting
// and tests. The core never talks to a concrete backend directly; hosts
// inject a Canvas.
package rendering

import "github.com/go-loom/loom/pkg/graphics"

// Paint describes how geometry is filled.
type Paint struct {
	Color graphics.Color
}

// DefaultPaint returns an opaque black fill.
func DefaultPaint() Paint {
	return Paint{Color: graphics.ColorBlack}
}

// Canvas is a 2D drawing surface with save/restore-style state stacking
// and translation.
//
// Save and Restore return errors rather than panicking: backend state
// stacks can fail (for example when a restore has no matching save), and
// callers are expected to treat such failures as recoverable, abandoning
// only the narrowest possible scope of painting.
type Canvas interface {
	// Save pushes the current transform onto the state stack.
	Save() error
	// Restore pops the most recently saved state.
	Restore() error
	// Translate moves the origin of subsequent drawing operations.
	Translate(dx, dy float64)
	// DrawRect fills a rectangle with the given paint.
	DrawRect(rect graphics.Rect, paint Paint)
}
