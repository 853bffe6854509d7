// Package platform declares the capabilities the host windowing system
// supplies to the widget tree: text layout, timer scheduling, and window
// invalidation. The core never talks to the OS directly; hosts implement
// WindowHandle and the in-process StubWindow stands in for tests and
// headless use.
package platform

import (
	"sync/atomic"
	"time"

	"github.com/go-loom/loom/pkg/rendering"
)

// WindowID identifies a window within the process.
type WindowID uint64

var windowCounter atomic.Uint64

// NextWindowID allocates a fresh window identity.
func NextWindowID() WindowID {
	return WindowID(windowCounter.Add(1))
}

// TimerToken is an opaque handle returned when a timer is scheduled. It is
// delivered back inside the timer event so widgets can match requests to
// firings.
type TimerToken uint64

// Cursor is the mouse cursor icon a widget can request.
type Cursor int

const (
	CursorArrow Cursor = iota
	CursorIBeam
	CursorCrosshair
	CursorOpenHand
	CursorNotAllowed
	CursorResizeLeftRight
	CursorResizeUpDown
)

// WindowHandle is the platform capability bundle for one window.
type WindowHandle interface {
	// TextFactory returns the window's text layout factory.
	TextFactory() rendering.TextFactory
	// RequestTimer schedules a wakeup at the given deadline and returns a
	// token identifying the request.
	RequestTimer(deadline time.Time) TimerToken
	// Invalidate marks the entire window as needing repaint.
	Invalidate()
}

// StubWindow is an in-memory WindowHandle that records what was asked of
// it. Hosts without a native backend and tests both use it.
type StubWindow struct {
	Text        rendering.TextFactory
	Invalidated int
	Timers      []time.Time

	nextTimer TimerToken
}

// NewStubWindow returns a stub window with the bundled text factory.
func NewStubWindow() *StubWindow {
	return &StubWindow{Text: rendering.BasicTextFactory()}
}

// TextFactory returns the configured text factory.
func (w *StubWindow) TextFactory() rendering.TextFactory {
	return w.Text
}

// RequestTimer records the deadline and hands back a fresh token.
func (w *StubWindow) RequestTimer(deadline time.Time) TimerToken {
	w.Timers = append(w.Timers, deadline)
	w.nextTimer++
	return w.nextTimer
}

// Invalidate counts invalidation requests.
func (w *StubWindow) Invalidate() {
	w.Invalidated++
}
