// Package widgets provides composition wrappers built on the core widget
// contract: lens-focused subtrees, alignment, and conditional branching.
// Leaf widgets (text, buttons, inputs) live with the application; this
// package only carries the wrappers whose behavior interacts with state
// propagation.
package widgets

import (
	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/data"
	"github.com/go-loom/loom/pkg/graphics"
	"github.com/go-loom/loom/pkg/lens"
)

// LensWrap adapts a widget operating on a part of the data to a position
// in the tree where the whole is available. The wrapped widget sees only
// the focused value; during update the focused old and new values are
// compared with Same, so changes outside the focus never reach the inner
// widget.
type LensWrap[T data.Value[T], U data.Value[U]] struct {
	inner core.Widget[U]
	lens  lens.Lens[T, U]
}

// NewLensWrap wraps a widget with a lens. The inner widget has data of
// type U; the returned widget has data of type T.
func NewLensWrap[T data.Value[T], U data.Value[U]](inner core.Widget[U], l lens.Lens[T, U]) *LensWrap[T, U] {
	return &LensWrap[T, U]{inner: inner, lens: l}
}

func (w *LensWrap[T, U]) Event(ctx *core.EventCtx, event core.Event, dataRef *T, env *core.Env) {
	w.lens.WithMut(dataRef, func(focused *U) {
		w.inner.Event(ctx, event, focused, env)
	})
}

func (w *LensWrap[T, U]) Update(ctx *core.UpdateCtx, oldData *T, dataRef *T, env *core.Env) {
	if oldData == nil {
		w.lens.With(dataRef, func(focused *U) {
			w.inner.Update(ctx, nil, focused, env)
		})
		return
	}
	w.lens.With(oldData, func(oldFocused *U) {
		w.lens.With(dataRef, func(focused *U) {
			if !(*oldFocused).Same(*focused) {
				w.inner.Update(ctx, oldFocused, focused, env)
			}
		})
	})
}

func (w *LensWrap[T, U]) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, dataRef *T, env *core.Env) graphics.Size {
	var size graphics.Size
	w.lens.With(dataRef, func(focused *U) {
		size = w.inner.Layout(ctx, bc, focused, env)
	})
	return size
}

func (w *LensWrap[T, U]) Paint(ctx *core.PaintCtx, state *core.BaseState, dataRef *T, env *core.Env) {
	w.lens.With(dataRef, func(focused *U) {
		w.inner.Paint(ctx, state, focused, env)
	})
}
