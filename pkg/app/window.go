// Package app hosts a widget tree inside a platform window. It owns the
// application data, drives the four propagation passes in response to
// platform callbacks, and enforces the ordering guarantees between them:
// commands submitted during an event run before the update pass that
// follows it.
package app

import (
	"go.uber.org/zap"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/data"
	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/platform"
	"github.com/go-loom/loom/pkg/rendering"
)

// CommandHandler receives commands drained from the window's queue. The
// handler may mutate the data it is given; changes are picked up by the
// update pass that runs after the drain.
type CommandHandler[T data.Value[T]] interface {
	Command(cmd core.TargetedCommand, dataRef *T)
}

// CommandHandlerFunc adapts a function to a CommandHandler.
type CommandHandlerFunc[T data.Value[T]] func(cmd core.TargetedCommand, dataRef *T)

func (f CommandHandlerFunc[T]) Command(cmd core.TargetedCommand, dataRef *T) {
	f(cmd, dataRef)
}

// Window binds a widget tree to a platform window and a data value. All
// methods must be called from the window's event thread.
type Window[T data.Value[T]] struct {
	id      platform.WindowID
	handle  platform.WindowHandle
	root    *core.WidgetPod[T]
	data    T
	env     core.Env
	queue   *core.CommandQueue
	handler CommandHandler[T]
	logger  *zap.Logger
	size    graphics.Size
	cursor  platform.Cursor
}

// NewWindow creates a window host around a root widget and initial data.
func NewWindow[T data.Value[T]](handle platform.WindowHandle, root core.Widget[T], initial T, env core.Env) *Window[T] {
	return &Window[T]{
		id:     platform.NextWindowID(),
		handle: handle,
		root:   core.NewWidgetPod[T](root),
		data:   initial,
		env:    env,
		queue:  &core.CommandQueue{},
		logger: zap.NewNop(),
	}
}

// SetLogger replaces the nop logger.
func (w *Window[T]) SetLogger(logger *zap.Logger) {
	w.logger = logger
}

// SetCommandHandler installs the receiver for drained commands. Without
// one, commands are logged and dropped.
func (w *Window[T]) SetCommandHandler(handler CommandHandler[T]) {
	w.handler = handler
}

// ID returns the window's identifier.
func (w *Window[T]) ID() platform.WindowID {
	return w.id
}

// Data returns a pointer to the application data. The pointer stays valid
// for the life of the window.
func (w *Window[T]) Data() *T {
	return &w.data
}

// Cursor returns the cursor requested during the last event dispatch.
func (w *Window[T]) Cursor() platform.Cursor {
	return w.cursor
}

// DispatchEvent delivers one platform event into the tree and runs the
// passes it triggers, in order: the event itself, a synthesized
// FocusChanged pass if focus was requested, the command drain, and the
// update pass. It reports whether a widget handled the event.
func (w *Window[T]) DispatchEvent(event core.Event) bool {
	defer errors.Recover("app.Window.DispatchEvent")

	if sized, ok := event.(core.SizeEvent); ok {
		w.size = sized.Size
	}

	handled := w.dispatch(event)

	w.drainCommands()
	w.runUpdate()
	return handled
}

func (w *Window[T]) dispatch(event core.Event) bool {
	var state core.BaseState
	w.cursor = platform.CursorArrow
	ctx := core.NewRootEventCtx(w.handle, w.id, w.queue, &state, &w.cursor)
	w.root.Event(ctx, event, &w.data, &w.env)

	needsInval := state.NeedsInvalidation()
	needsAnim := state.AnimRequested()
	if state.FocusRequested() {
		w.logger.Debug("focus requested, running focus pass")
		var focusState core.BaseState
		focusCtx := core.NewRootEventCtx(w.handle, w.id, w.queue, &focusState, &w.cursor)
		w.root.Event(focusCtx, core.FocusChangedEvent{Focused: true}, &w.data, &w.env)
		// Widgets commonly repaint on gaining focus; the flags raised
		// during this pass count the same as the main pass's.
		needsInval = needsInval || focusState.NeedsInvalidation()
		needsAnim = needsAnim || focusState.AnimRequested()
	}

	if needsInval || needsAnim {
		w.handle.Invalidate()
	}
	return ctx.IsHandled()
}

func (w *Window[T]) drainCommands() {
	for w.queue.Len() > 0 {
		for _, cmd := range w.queue.Drain() {
			if w.handler == nil {
				w.logger.Warn("dropping command, no handler installed",
					zap.String("selector", cmd.Command.Selector))
				continue
			}
			w.handler.Command(cmd, &w.data)
		}
	}
}

func (w *Window[T]) runUpdate() {
	ctx := core.NewUpdateCtx(w.handle.TextFactory(), w.id)
	w.root.Update(ctx, &w.data, &w.env)
	if ctx.NeedsInvalidation() {
		w.handle.Invalidate()
	}
}

// UpdateData replaces the application data from outside the event flow
// (a background task result delivered to the event thread, for example)
// and runs an update pass.
func (w *Window[T]) UpdateData(newData T) {
	w.data = newData
	w.runUpdate()
}

// SetEnv swaps the environment and propagates the change.
func (w *Window[T]) SetEnv(env core.Env) {
	w.env = env
	w.runUpdate()
}

// DoLayout lays the tree out for the given window size. The root pod is
// positioned at the origin covering the whole window.
func (w *Window[T]) DoLayout(size graphics.Size) {
	w.size = size
	ctx := core.NewLayoutCtx(w.handle.TextFactory(), w.id)
	bc := core.TightConstraints(size)
	laid := w.root.Layout(ctx, bc, &w.data, &w.env)
	w.root.SetLayoutRect(graphics.RectFromOriginSize(graphics.Offset{}, laid))
}

// DoPaint paints the tree onto the given canvas. The visible region is the
// whole window; fine-grained damage regions can narrow this later.
func (w *Window[T]) DoPaint(canvas rendering.Canvas) {
	region := graphics.RegionFromRect(graphics.RectFromOriginSize(graphics.Offset{}, w.size))
	ctx := core.NewPaintCtx(canvas, w.id, region)
	w.root.PaintWithOffset(ctx, &w.data, &w.env)
}
