package widgets

import (
	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/data"
	"github.com/go-loom/loom/pkg/graphics"
)

// BranchSelector decides which branch of an Either is live for the current
// data and environment.
type BranchSelector[T data.Value[T]] interface {
	Branch(dataRef *T, env *core.Env) bool
}

// BranchFunc adapts a plain function to a BranchSelector.
type BranchFunc[T data.Value[T]] func(dataRef *T, env *core.Env) bool

func (f BranchFunc[T]) Branch(dataRef *T, env *core.Env) bool {
	return f(dataRef, env)
}

// Either switches between two child views. The selector is re-evaluated on
// every update; when its result flips, the widget invalidates and the
// other branch takes over. Only the live branch receives events, updates,
// layout, and paint.
type Either[T data.Value[T]] struct {
	selector    BranchSelector[T]
	trueBranch  *core.WidgetPod[T]
	falseBranch *core.WidgetPod[T]
	current     bool
}

// NewEither creates a two-branch switcher. When the selector reports true
// the trueBranch widget is shown, otherwise falseBranch. The selector is
// first consulted during update, so the false branch is live until then.
func NewEither[T data.Value[T]](selector BranchSelector[T], trueBranch, falseBranch core.Widget[T]) *Either[T] {
	return &Either[T]{
		selector:    selector,
		trueBranch:  core.NewWidgetPod[T](trueBranch),
		falseBranch: core.NewWidgetPod[T](falseBranch),
	}
}

func (e *Either[T]) live() *core.WidgetPod[T] {
	if e.current {
		return e.trueBranch
	}
	return e.falseBranch
}

func (e *Either[T]) Event(ctx *core.EventCtx, event core.Event, dataRef *T, env *core.Env) {
	e.live().Event(ctx, event, dataRef, env)
}

func (e *Either[T]) Update(ctx *core.UpdateCtx, oldData *T, dataRef *T, env *core.Env) {
	current := e.selector.Branch(dataRef, env)
	if current != e.current {
		e.current = current
		ctx.Invalidate()
	}
	e.live().Update(ctx, dataRef, env)
}

func (e *Either[T]) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, dataRef *T, env *core.Env) graphics.Size {
	pod := e.live()
	size := pod.Layout(ctx, bc, dataRef, env)
	pod.SetLayoutRect(graphics.RectFromOriginSize(graphics.Offset{}, size))
	return size
}

func (e *Either[T]) Paint(ctx *core.PaintCtx, state *core.BaseState, dataRef *T, env *core.Env) {
	e.live().PaintWithOffset(ctx, dataRef, env)
}
