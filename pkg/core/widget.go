// Package core contains the fundamental types of the widget tree: the
// widget contract, the per-child WidgetPod wrapper that implements event,
// update, layout, and paint propagation, the per-operation context objects,
// and the Env configuration bag.
package core

import (
	"github.com/go-loom/loom/pkg/data"
	"github.com/go-loom/loom/pkg/graphics"
)

// Widget is the contract every visual component implements, polymorphic
// over the application data type T.
//
// Containers don't reimplement propagation: they hold their children in
// WidgetPods and delegate each operation to the pod, which applies the
// cross-cutting policy (hot tracking, focus routing, update
// short-circuiting, paint culling) before calling back into the child.
type Widget[T data.Value[T]] interface {
	// Event handles an event. It may mutate data and internal widget
	// state, and may use the context to submit commands or request
	// invalidation, focus, animation frames, or timers.
	Event(ctx *EventCtx, event Event, data *T, env *Env)

	// Update is called when data or env may have changed. oldData is nil
	// only on the very first call after construction.
	Update(ctx *UpdateCtx, oldData *T, data *T, env *Env)

	// Layout computes the widget's size given a constraint range. The
	// returned size must satisfy the constraints. Containers lay out their
	// children through the child pods and position them with
	// SetLayoutRect.
	Layout(ctx *LayoutCtx, bc BoxConstraints, data *T, env *Env) graphics.Size

	// Paint draws the widget. It must not mutate data.
	Paint(ctx *PaintCtx, state *BaseState, data *T, env *Env)
}

// BaseState is the cross-cutting state a WidgetPod attaches to its widget:
// the layout rectangle assigned by the parent, and the flags that drive
// event propagation.
//
// It is provided to Paint calls read-only, largely so a widget can know
// its size, and because hot, active, and focus status often affect
// appearance. Widgets otherwise interact with it only through the narrow
// setters on the context objects.
type BaseState struct {
	layoutRect graphics.Rect

	// needsInval should become an invalidation rect eventually; for now it
	// marks the entire window dirty.
	needsInval bool

	isHot    bool
	isActive bool

	// hasActive is true iff this widget or some descendant is active. It
	// is recomputed every event pass, never persisted stale.
	hasActive bool

	// requestAnim is set when this widget or a descendant requested an
	// animation frame; consumed when the frame event is delivered.
	requestAnim bool

	// requestTimer is set when this widget or a descendant requested a
	// timer. There is no way of clearing this request: multiple timers may
	// be pending and there is no per-timer bookkeeping at this layer.
	requestTimer bool

	// hasFocus is true for the focused leaf and every one of its
	// ancestors: focus is a path property, not a single-node property.
	hasFocus bool

	// requestFocus is set when this widget or a descendant asked for
	// focus; consumed by the next FocusChanged dispatch.
	requestFocus bool
}

// IsHot reports the hot (hover) status of the widget. In a container
// hierarchy, every widget whose layout rect contains the mouse position is
// hot.
func (s *BaseState) IsHot() bool {
	return s.isHot
}

// IsActive reports the active status of the widget. Active generally
// corresponds to a held mouse button: an active widget keeps receiving
// mouse events even when the cursor is dragged away.
func (s *BaseState) IsActive() bool {
	return s.isActive
}

// HasActive reports whether this widget or any descendant is active.
func (s *BaseState) HasActive() bool {
	return s.hasActive
}

// HasFocus reports whether this widget or a descendant receives keyboard
// events.
func (s *BaseState) HasFocus() bool {
	return s.hasFocus
}

// Size returns the layout size as ultimately determined by the parent
// container.
func (s *BaseState) Size() graphics.Size {
	return s.layoutRect.Size()
}

// NeedsInvalidation reports whether a repaint was requested during the
// pass that just ran. Hosts read it off the root state after dispatch.
func (s *BaseState) NeedsInvalidation() bool {
	return s.needsInval
}

// AnimRequested reports whether an animation frame is pending.
func (s *BaseState) AnimRequested() bool {
	return s.requestAnim
}

// TimerRequested reports whether a timer request was ever made.
func (s *BaseState) TimerRequested() bool {
	return s.requestTimer
}

// FocusRequested reports whether a focus request is pending. Hosts use it
// to decide whether to run a FocusChanged pass after the current event.
func (s *BaseState) FocusRequested() bool {
	return s.requestFocus
}
