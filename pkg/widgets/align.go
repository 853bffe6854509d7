package widgets

import (
	"math"

	"github.com/go-loom/loom/pkg/core"
	"github.com/go-loom/loom/pkg/data"
	"github.com/go-loom/loom/pkg/graphics"
)

// Align positions its child within the space the parent offers, according
// to a UnitPoint. Without factors it expands to fill any bounded axis and
// parks the child at the alignment point; with a width or height factor it
// sizes that axis as a multiple of the child's size instead.
type Align[T data.Value[T]] struct {
	align        graphics.UnitPoint
	child        *core.WidgetPod[T]
	widthFactor  float64
	heightFactor float64
	hasWidth     bool
	hasHeight    bool
}

// NewAlign creates an alignment container around child.
func NewAlign[T data.Value[T]](align graphics.UnitPoint, child core.Widget[T]) *Align[T] {
	return &Align[T]{align: align, child: core.NewWidgetPod[T](child)}
}

// Centered creates a container that centers its child.
func Centered[T data.Value[T]](child core.Widget[T]) *Align[T] {
	return NewAlign[T](graphics.UnitCenter, child)
}

// Horizontal aligns only on the horizontal axis, keeping the child's
// height.
func Horizontal[T data.Value[T]](align graphics.UnitPoint, child core.Widget[T]) *Align[T] {
	a := NewAlign[T](align, child)
	a.heightFactor = 1
	a.hasHeight = true
	return a
}

// Vertical aligns only on the vertical axis, keeping the child's width.
func Vertical[T data.Value[T]](align graphics.UnitPoint, child core.Widget[T]) *Align[T] {
	a := NewAlign[T](align, child)
	a.widthFactor = 1
	a.hasWidth = true
	return a
}

func (a *Align[T]) Event(ctx *core.EventCtx, event core.Event, dataRef *T, env *core.Env) {
	a.child.Event(ctx, event, dataRef, env)
}

func (a *Align[T]) Update(ctx *core.UpdateCtx, oldData *T, dataRef *T, env *core.Env) {
	a.child.Update(ctx, dataRef, env)
}

func (a *Align[T]) Layout(ctx *core.LayoutCtx, bc core.BoxConstraints, dataRef *T, env *core.Env) graphics.Size {
	bc.DebugCheck("Align")

	size := a.child.Layout(ctx, bc.Loosen(), dataRef, env)
	mySize := size
	if bc.IsWidthBounded() {
		mySize.Width = bc.Max.Width
	}
	if bc.IsHeightBounded() {
		mySize.Height = bc.Max.Height
	}
	if a.hasWidth {
		mySize.Width = size.Width * a.widthFactor
	}
	if a.hasHeight {
		mySize.Height = size.Height * a.heightFactor
	}

	mySize = bc.Constrain(mySize)
	extraWidth := math.Max(mySize.Width-size.Width, 0)
	extraHeight := math.Max(mySize.Height-size.Height, 0)
	origin := a.align.Resolve(graphics.RectFromLTWH(0, 0, extraWidth, extraHeight))
	a.child.SetLayoutRect(graphics.RectFromOriginSize(origin, size))
	return mySize
}

func (a *Align[T]) Paint(ctx *core.PaintCtx, state *core.BaseState, dataRef *T, env *core.Env) {
	a.child.PaintWithOffset(ctx, dataRef, env)
}
