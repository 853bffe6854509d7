package core

import (
	"fmt"
	"math"

	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/graphics"
)

// Unbounded marks an axis with no maximum constraint.
func Unbounded() float64 {
	return math.Inf(1)
}

// BoxConstraints is the range of sizes a parent hands a child during
// layout. The child must return a size within the range; the parent then
// positions the child via SetLayoutRect.
type BoxConstraints struct {
	Min graphics.Size
	Max graphics.Size
}

// TightConstraints admits exactly one size.
func TightConstraints(size graphics.Size) BoxConstraints {
	return BoxConstraints{Min: size, Max: size}
}

// Constrain clamps the given size into the constraint range.
func (bc BoxConstraints) Constrain(size graphics.Size) graphics.Size {
	return size.Clamp(bc.Min, bc.Max)
}

// Loosen returns the constraints with the minimum removed.
func (bc BoxConstraints) Loosen() BoxConstraints {
	return BoxConstraints{Max: bc.Max}
}

// IsWidthBounded reports whether the maximum width is finite.
func (bc BoxConstraints) IsWidthBounded() bool {
	return !math.IsInf(bc.Max.Width, 1)
}

// IsHeightBounded reports whether the maximum height is finite.
func (bc BoxConstraints) IsHeightBounded() bool {
	return !math.IsInf(bc.Max.Height, 1)
}

// IsTight reports whether the constraints admit exactly one size.
func (bc BoxConstraints) IsTight() bool {
	return bc.Min == bc.Max
}

// DebugCheck reports malformed constraints (min exceeding max, negative or
// NaN values). Container layout methods call this with their own name so
// the report identifies the misbehaving parent. Malformed constraints are
// reported, not fatal; layout proceeds best-effort.
func (bc BoxConstraints) DebugCheck(name string) {
	if bc.Min.Width <= bc.Max.Width && bc.Min.Height <= bc.Max.Height &&
		bc.Min.Width >= 0 && bc.Min.Height >= 0 &&
		!math.IsNaN(bc.Max.Width) && !math.IsNaN(bc.Max.Height) {
		return
	}
	errors.Report(&errors.Error{
		Op:   "core.BoxConstraints.DebugCheck",
		Kind: errors.KindUnknown,
		Err:  fmt.Errorf("bad constraints passed to %s: min %+v max %+v", name, bc.Min, bc.Max),
	})
}
