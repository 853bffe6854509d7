package core

import (
	"time"

	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/platform"
)

// Event is something delivered into the widget tree: raw input from the
// platform, or a synthesized notification like HotChanged. The set of
// variants is closed; containers propagate events through WidgetPod rather
// than interpreting them.
type Event interface {
	// recurse reports whether this event kind is propagated down the tree
	// by WidgetPod. Non-recursive kinds are delivered directly from other
	// points in the library.
	recurse() bool
}

// LifeCycleKind labels window lifecycle transitions.
type LifeCycleKind int

const (
	LifeCycleConnected LifeCycleKind = iota
	LifeCycleDisconnected
)

// LifeCycleEvent notifies the tree of a window lifecycle transition.
type LifeCycleEvent struct {
	Kind LifeCycleKind
}

// SizeEvent is delivered when the window size changes. It is only
// propagated at the tree root: containers re-derive child sizes through
// layout rather than receiving size events.
type SizeEvent struct {
	Size graphics.Size
}

// MouseButton identifies which mouse button an event refers to.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// Modifiers is a bitmask of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// MouseEvent carries the shared payload of mouse events. Pos is in the
// coordinate space of the receiving widget: WidgetPod translates it on the
// way down.
type MouseEvent struct {
	Pos    graphics.Offset
	Button MouseButton
	Count  int
	Mods   Modifiers
}

// MouseDownEvent is a mouse button press.
type MouseDownEvent struct {
	MouseEvent
}

// MouseUpEvent is a mouse button release.
type MouseUpEvent struct {
	MouseEvent
}

// MouseMoveEvent is a mouse cursor move.
type MouseMoveEvent struct {
	MouseEvent
}

// KeyEvent carries the shared payload of keyboard events.
type KeyEvent struct {
	Code rune
	Mods Modifiers
}

// KeyDownEvent is a key press, delivered only along the focus path.
type KeyDownEvent struct {
	KeyEvent
}

// KeyUpEvent is a key release, delivered only along the focus path.
type KeyUpEvent struct {
	KeyEvent
}

// PasteEvent delivers clipboard text along the focus path.
type PasteEvent struct {
	Text string
}

// WheelEvent is a scroll wheel movement, delivered to hot or active
// widgets.
type WheelEvent struct {
	Delta graphics.Offset
	Mods  Modifiers
}

// ZoomEvent is a pinch/zoom gesture, delivered to hot or active widgets.
type ZoomEvent struct {
	Delta float64
}

// HotChangedEvent notifies a widget that its hot (hover) status changed.
// It is synthesized per-pod and delivered directly, never walked down the
// tree.
type HotChangedEvent struct {
	Hot bool
}

// FocusChangedEvent notifies a widget that keyboard focus moved. The
// payload a widget observes reflects its own new focus status, which
// WidgetPod computes from the pending focus request.
type FocusChangedEvent struct {
	Focused bool
}

// AnimFrameEvent is delivered to widgets that requested an animation
// frame; Interval is the time since the previous frame.
type AnimFrameEvent struct {
	Interval time.Duration
}

// TimerEvent is delivered when a requested timer fires.
type TimerEvent struct {
	Token platform.TimerToken
}

// CommandEvent delivers a queued Command back into the tree.
type CommandEvent struct {
	Command Command
}

func (LifeCycleEvent) recurse() bool    { return true }
func (SizeEvent) recurse() bool         { return true }
func (MouseDownEvent) recurse() bool    { return true }
func (MouseUpEvent) recurse() bool      { return true }
func (MouseMoveEvent) recurse() bool    { return true }
func (KeyDownEvent) recurse() bool      { return true }
func (KeyUpEvent) recurse() bool        { return true }
func (PasteEvent) recurse() bool        { return true }
func (WheelEvent) recurse() bool        { return true }
func (ZoomEvent) recurse() bool         { return true }
func (HotChangedEvent) recurse() bool   { return false }
func (FocusChangedEvent) recurse() bool { return true }
func (AnimFrameEvent) recurse() bool    { return true }
func (TimerEvent) recurse() bool        { return true }
func (CommandEvent) recurse() bool      { return true }
