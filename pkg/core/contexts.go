package core

import (
	"time"

	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/platform"
	"github.com/go-loom/loom/pkg/rendering"
)

// EventCtx is the mutable context handed to Widget.Event. Each propagation
// pass builds one context value per pod, scoped strictly to that pass:
// widgets must not retain a context beyond the call they received it in.
//
// Widgets should call Invalidate whenever an event causes a change in
// their appearance, to schedule a repaint.
type EventCtx struct {
	winHandle    platform.WindowHandle
	cursor       *platform.Cursor
	commandQueue *CommandQueue
	windowID     platform.WindowID
	baseState    *BaseState
	hadActive    bool
	isHandled    bool
	isRoot       bool
}

// NewRootEventCtx builds the context for delivering one event into the
// tree root. cursor is an output slot: after dispatch it holds the cursor
// the deepest widget requested, if any. state collects the flags merged up
// out of the tree.
func NewRootEventCtx(
	win platform.WindowHandle,
	windowID platform.WindowID,
	queue *CommandQueue,
	state *BaseState,
	cursor *platform.Cursor,
) *EventCtx {
	return &EventCtx{
		winHandle:    win,
		cursor:       cursor,
		commandQueue: queue,
		windowID:     windowID,
		baseState:    state,
		isRoot:       true,
	}
}

// Invalidate schedules a repaint. Right now it marks the entire window
// dirty; the single flag is a placeholder for fine-grained invalidation
// regions.
func (c *EventCtx) Invalidate() {
	c.baseState.needsInval = true
}

// Text returns the factory for creating text layouts.
func (c *EventCtx) Text() rendering.TextFactory {
	return c.winHandle.TextFactory()
}

// SetCursor sets the cursor icon. Within one event propagation only the
// last call has any effect, so containers can safely set a cursor and then
// recurse.
func (c *EventCtx) SetCursor(cursor platform.Cursor) {
	*c.cursor = cursor
}

// SetActive sets the active state of the widget. Widgets with
// button-like behavior set it on mouse down and clear it on mouse up.
func (c *EventCtx) SetActive(active bool) {
	c.baseState.isActive = active
	// TODO: plumb mouse grab through to the platform window.
}

// IsHot reports the hot state of the widget.
func (c *EventCtx) IsHot() bool {
	return c.baseState.isHot
}

// IsActive reports the active state of the widget.
func (c *EventCtx) IsActive() bool {
	return c.baseState.isActive
}

// HasFocus reports the focus state of the widget.
func (c *EventCtx) HasFocus() bool {
	return c.baseState.hasFocus
}

// SetHandled marks the event as handled, which stops its propagation to
// other widgets.
func (c *EventCtx) SetHandled() {
	c.isHandled = true
}

// IsHandled reports whether some widget already handled the event.
func (c *EventCtx) IsHandled() bool {
	return c.isHandled
}

// RequestFocus asks for keyboard focus. The request is consumed by the
// next FocusChanged dispatch.
func (c *EventCtx) RequestFocus() {
	c.baseState.requestFocus = true
}

// RequestAnimFrame asks for an animation frame.
func (c *EventCtx) RequestAnimFrame() {
	c.baseState.requestAnim = true
}

// RequestTimer schedules a timer and returns the token that will identify
// the matching TimerEvent.
func (c *EventCtx) RequestTimer(deadline time.Time) platform.TimerToken {
	c.baseState.requestTimer = true
	return c.winHandle.RequestTimer(deadline)
}

// Size returns the layout size of the current widget.
func (c *EventCtx) Size() graphics.Size {
	return c.baseState.Size()
}

// SubmitCommand queues a command for this window, to be run after this
// event is handled. Commands run in submission order; all commands
// submitted while handling an event execute before the following update
// pass.
func (c *EventCtx) SubmitCommand(cmd Command) {
	c.commandQueue.Push(c.windowID, cmd)
}

// SubmitCommandTo queues a command for another window.
func (c *EventCtx) SubmitCommandTo(target platform.WindowID, cmd Command) {
	c.commandQueue.Push(target, cmd)
}

// WindowID returns the id of the window this event belongs to.
func (c *EventCtx) WindowID() platform.WindowID {
	return c.windowID
}

// UpdateCtx is the context handed to Widget.Update. Widgets should call
// Invalidate whenever a data change affects their appearance.
type UpdateCtx struct {
	textFactory rendering.TextFactory
	windowID    platform.WindowID
	needsInval  bool
}

// NewUpdateCtx builds the context for one update pass.
func NewUpdateCtx(text rendering.TextFactory, windowID platform.WindowID) *UpdateCtx {
	return &UpdateCtx{textFactory: text, windowID: windowID}
}

// Invalidate schedules a repaint of the entire window. See
// EventCtx.Invalidate for discussion.
func (c *UpdateCtx) Invalidate() {
	c.needsInval = true
}

// NeedsInvalidation reports whether any widget invalidated during the
// pass.
func (c *UpdateCtx) NeedsInvalidation() bool {
	return c.needsInval
}

// Text returns the factory for creating text layouts.
func (c *UpdateCtx) Text() rendering.TextFactory {
	return c.textFactory
}

// WindowID returns the id of the window being updated.
func (c *UpdateCtx) WindowID() platform.WindowID {
	return c.windowID
}

// LayoutCtx is the context handed to Widget.Layout. Its main service is
// access to a factory for text layout objects, which are often needed to
// measure content during layout.
type LayoutCtx struct {
	textFactory rendering.TextFactory
	windowID    platform.WindowID
}

// NewLayoutCtx builds the context for one layout pass.
func NewLayoutCtx(text rendering.TextFactory, windowID platform.WindowID) *LayoutCtx {
	return &LayoutCtx{textFactory: text, windowID: windowID}
}

// Text returns the factory for creating text layouts.
func (c *LayoutCtx) Text() rendering.TextFactory {
	return c.textFactory
}

// WindowID returns the id of the window being laid out.
func (c *LayoutCtx) WindowID() platform.WindowID {
	return c.windowID
}

// PaintCtx is the context handed to Widget.Paint: the canvas to draw into
// and the currently visible region, used to cull subtrees that cannot
// appear on screen.
type PaintCtx struct {
	// Canvas is the drawing surface for actually painting.
	Canvas   rendering.Canvas
	windowID platform.WindowID
	region   graphics.Region
}

// NewPaintCtx builds the context for one paint pass over the given visible
// region.
func NewPaintCtx(canvas rendering.Canvas, windowID platform.WindowID, region graphics.Region) *PaintCtx {
	return &PaintCtx{Canvas: canvas, windowID: windowID, region: region}
}

// Region returns the currently visible region.
func (c *PaintCtx) Region() graphics.Region {
	return c.region
}

// WindowID returns the id of the window being painted.
func (c *PaintCtx) WindowID() platform.WindowID {
	return c.windowID
}

// WithChildCtx runs f with a temporary context whose visible region is
// narrowed for a child, without mutating this context. Containers use it
// so children observe the correct visible region for their layout.
func (c *PaintCtx) WithChildCtx(visible graphics.Rect, f func(*PaintCtx)) {
	child := PaintCtx{
		Canvas:   c.Canvas,
		windowID: c.windowID,
		region:   graphics.RegionFromRect(visible),
	}
	f(&child)
}
