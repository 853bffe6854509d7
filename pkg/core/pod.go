package core

import (
	"github.com/go-loom/loom/pkg/data"
	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/graphics"
)

// WidgetPod is a container for one widget in the hierarchy.
//
// Container widgets don't hold children directly; they hold WidgetPods,
// which carry the additional state a widget needs to participate in layout
// and event flow: the layout rectangle, the hot/active/focus flags, and
// the previous data snapshot that update propagation diffs against.
type WidgetPod[T data.Value[T]] struct {
	state   BaseState
	oldData *T
	env     *Env
	inner   Widget[T]
}

// NewWidgetPod wraps a widget so it can participate in layout and event
// flow. Containers call this when adding a child.
func NewWidgetPod[T data.Value[T]](inner Widget[T]) *WidgetPod[T] {
	return &WidgetPod[T]{inner: inner}
}

// IsActive reports the active state of the widget.
func (p *WidgetPod[T]) IsActive() bool {
	return p.state.isActive
}

// HasActive reports whether this widget or any descendant is active.
func (p *WidgetPod[T]) HasActive() bool {
	return p.state.hasActive
}

// IsHot reports the hot state of the widget.
func (p *WidgetPod[T]) IsHot() bool {
	return p.state.isHot
}

// HasFocus reports whether this widget or a descendant has keyboard focus.
func (p *WidgetPod[T]) HasFocus() bool {
	return p.state.hasFocus
}

// Widget returns the inner widget.
func (p *WidgetPod[T]) Widget() Widget[T] {
	return p.inner
}

// State returns the pod's base state, read-only by convention.
func (p *WidgetPod[T]) State() *BaseState {
	return &p.state
}

// SetLayoutRect records the position and size the parent chose for this
// child. Intended to be called from the container's Layout implementation;
// the pod never decides its own position.
func (p *WidgetPod[T]) SetLayoutRect(rect graphics.Rect) {
	p.state.layoutRect = rect
}

// LayoutRect returns the rectangle set by SetLayoutRect.
func (p *WidgetPod[T]) LayoutRect() graphics.Rect {
	return p.state.layoutRect
}

// Event propagates an event to the inner widget.
//
// Containers call this from their own Event methods. This is where most of
// the event flow logic lives: per event kind, the pod decides whether to
// recurse into the child, translates pointer coordinates into the child's
// space, maintains hot/active/focus state, and merges child flags upward.
func (p *WidgetPod[T]) Event(ctx *EventCtx, event Event, dataRef *T, env *Env) {
	if ctx.isHandled || !event.recurse() {
		// Non-recursive events are delivered directly from other points in
		// the library, and handled events stop propagating.
		return
	}
	hadActive := p.state.hasActive
	childCtx := EventCtx{
		winHandle:    ctx.winHandle,
		cursor:       ctx.cursor,
		commandQueue: ctx.commandQueue,
		windowID:     ctx.windowID,
		baseState:    &p.state,
		hadActive:    hadActive,
	}
	rect := p.state.layoutRect

	recurse := true
	var hotChanged *bool
	childEvent := event
	switch ev := event.(type) {
	case SizeEvent:
		// Size events don't walk past the root: containers re-derive child
		// constraints through layout instead.
		recurse = ctx.isRoot
	case MouseDownEvent:
		hadHot := p.state.isHot
		nowHot := rect.Winding(ev.Pos) != 0
		if !hadHot && nowHot {
			p.state.isHot = true
			v := true
			hotChanged = &v
		}
		recurse = hadActive || !ctx.hadActive && nowHot
		ev.Pos = ev.Pos.Sub(rect.Origin())
		childEvent = ev
	case MouseUpEvent:
		recurse = hadActive || !ctx.hadActive && rect.Winding(ev.Pos) != 0
		ev.Pos = ev.Pos.Sub(rect.Origin())
		childEvent = ev
	case MouseMoveEvent:
		hadHot := p.state.isHot
		p.state.isHot = rect.Winding(ev.Pos) != 0
		if hadHot != p.state.isHot {
			v := p.state.isHot
			hotChanged = &v
		}
		recurse = hadActive || hadHot || p.state.isHot
		ev.Pos = ev.Pos.Sub(rect.Origin())
		childEvent = ev
	case KeyDownEvent, KeyUpEvent, PasteEvent:
		recurse = p.state.hasFocus
	case WheelEvent, ZoomEvent:
		recurse = hadActive || p.state.isHot
	case FocusChangedEvent:
		hadFocus := p.state.hasFocus
		focus := p.state.requestFocus
		p.state.requestFocus = false
		p.state.hasFocus = focus
		recurse = focus || hadFocus
		// The child observes its own new focus status, not the
		// platform-delivered payload.
		childEvent = FocusChangedEvent{Focused: focus}
	case AnimFrameEvent:
		recurse = p.state.requestAnim
		p.state.requestAnim = false
	case TimerEvent:
		// requestTimer is sticky: several timers may be pending and there
		// is no per-timer bookkeeping here.
		recurse = p.state.requestTimer
	}
	// LifeCycle and Command events fall through: always forwarded unchanged.

	p.state.needsInval = false
	if hotChanged != nil {
		p.inner.Event(&childCtx, HotChangedEvent{Hot: *hotChanged}, dataRef, env)
	}
	if recurse {
		p.state.hasActive = false
		p.inner.Event(&childCtx, childEvent, dataRef, env)
		p.state.hasActive = p.state.hasActive || p.state.isActive
	}

	// Merge child state upward; each flag is monotonic within one pass.
	ctx.baseState.needsInval = ctx.baseState.needsInval || p.state.needsInval
	ctx.baseState.requestAnim = ctx.baseState.requestAnim || p.state.requestAnim
	ctx.baseState.requestTimer = ctx.baseState.requestTimer || p.state.requestTimer
	ctx.baseState.isHot = ctx.baseState.isHot || p.state.isHot
	ctx.baseState.hasActive = ctx.baseState.hasActive || p.state.hasActive
	ctx.baseState.requestFocus = ctx.baseState.requestFocus || p.state.requestFocus
	ctx.isHandled = ctx.isHandled || childCtx.isHandled
}

// Update propagates a data change.
//
// The stored previous data and env are compared against the new values; if
// both are unchanged the inner widget is not called at all. Unchanged
// subtrees do zero update work, which is what keeps whole-tree updates
// cheap.
func (p *WidgetPod[T]) Update(ctx *UpdateCtx, dataRef *T, env *Env) {
	dataSame := false
	if p.oldData != nil {
		dataSame = (*p.oldData).Same(*dataRef)
	}
	envSame := false
	if p.env != nil {
		envSame = p.env.Same(*env)
	}
	if dataSame && envSame {
		return
	}
	p.inner.Update(ctx, p.oldData, dataRef, env)
	snapshot := (*dataRef).Clone()
	p.oldData = &snapshot
	envSnapshot := env.Clone()
	p.env = &envSnapshot
}

// Layout computes the layout of the inner widget. The caller is
// responsible for calling SetLayoutRect afterward to position this child;
// the pod only reports a size upward.
func (p *WidgetPod[T]) Layout(ctx *LayoutCtx, bc BoxConstraints, dataRef *T, env *Env) graphics.Size {
	return p.inner.Layout(ctx, bc, dataRef, env)
}

// Paint paints the inner widget in the current coordinate space, without
// applying the layout rect offset. Use PaintWithOffset for that.
func (p *WidgetPod[T]) Paint(ctx *PaintCtx, dataRef *T, env *Env) {
	p.inner.Paint(ctx, &p.state, dataRef, env)
}

// PaintWithOffset paints the widget translated by the origin of its layout
// rectangle, skipping entirely if the layout rect does not intersect the
// currently visible region.
func (p *WidgetPod[T]) PaintWithOffset(ctx *PaintCtx, dataRef *T, env *Env) {
	p.paintWithOffset(ctx, dataRef, env, false)
}

// PaintWithOffsetAlways paints the widget translated by the origin of its
// layout rectangle, even when the layout rect is outside the visible
// region.
func (p *WidgetPod[T]) PaintWithOffsetAlways(ctx *PaintCtx, dataRef *T, env *Env) {
	p.paintWithOffset(ctx, dataRef, env, true)
}

func (p *WidgetPod[T]) paintWithOffset(ctx *PaintCtx, dataRef *T, env *Env, paintIfNotVisible bool) {
	if !paintIfNotVisible && !ctx.region.Intersects(p.state.layoutRect) {
		return
	}
	if err := ctx.Canvas.Save(); err != nil {
		errors.Report(&errors.Error{
			Op:   "core.WidgetPod.PaintWithOffset",
			Kind: errors.KindRender,
			Err:  err,
		})
		return
	}

	origin := p.state.layoutRect.Origin()
	ctx.Canvas.Translate(origin.X, origin.Y)
	visible := ctx.region.ToRect().Translate(graphics.Offset{X: -origin.X, Y: -origin.Y})
	ctx.WithChildCtx(visible, func(child *PaintCtx) {
		p.inner.Paint(child, &p.state, dataRef, env)
	})

	if err := ctx.Canvas.Restore(); err != nil {
		errors.Report(&errors.Error{
			Op:   "core.WidgetPod.PaintWithOffset",
			Kind: errors.KindRender,
			Err:  err,
		})
	}
}
