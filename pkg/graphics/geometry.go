package graphics

import "math"

// Offset represents a 2D point or vector in logical pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Size represents width and height dimensions in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Clamp restricts the size to the given minimum and maximum.
func (s Size) Clamp(min, max Size) Size {
	return Size{
		Width:  math.Min(math.Max(s.Width, min.Width), max.Width),
		Height: math.Min(math.Max(s.Height, min.Height), max.Height),
	}
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromOriginSize constructs a Rect from an origin point and a size.
func RectFromOriginSize(origin Offset, size Size) Rect {
	return RectFromLTWH(origin.X, origin.Y, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Origin returns the top-left corner of the rectangle.
func (r Rect) Origin() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// Area returns the area of the rectangle, or zero if it is empty.
func (r Rect) Area() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.Width() * r.Height()
}

// IsEmpty returns true if the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Translate returns the rectangle moved by the given offset.
func (r Rect) Translate(offset Offset) Rect {
	return Rect{
		Left:   r.Left + offset.X,
		Top:    r.Top + offset.Y,
		Right:  r.Right + offset.X,
		Bottom: r.Bottom + offset.Y,
	}
}

// Intersect returns the intersection of two rectangles.
// Returns an empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Winding returns the non-zero winding number of the rectangle's boundary
// around the given point: 1 when the point is inside, 0 when outside.
// The left and top edges are inside; the right and bottom edges are outside,
// so adjacent rectangles never both claim a shared edge.
func (r Rect) Winding(pt Offset) int {
	if pt.X >= r.Left && pt.X < r.Right && pt.Y >= r.Top && pt.Y < r.Bottom {
		return 1
	}
	return 0
}

// Region describes the part of a window that is currently visible or needs
// to be drawn. It is represented as a single bounding rectangle: the true
// invalidated area may be smaller, trading paint precision for simplicity.
type Region struct {
	rect Rect
}

// RegionFromRect constructs a region covering the given rectangle.
func RegionFromRect(rect Rect) Region {
	return Region{rect: rect}
}

// ToRect returns the smallest Rect that encloses the entire region.
func (g Region) ToRect() Rect {
	return g.rect
}

// Intersects returns true if the region overlaps the given rectangle.
func (g Region) Intersects(rect Rect) bool {
	return g.rect.Intersect(rect).Area() > 0
}

// UnitPoint describes a position within a rectangle as fractions of its
// size: (0,0) is the top-left corner and (1,1) the bottom-right.
type UnitPoint struct {
	U float64
	V float64
}

// Common alignment points.
var (
	UnitTopLeft     = UnitPoint{0, 0}
	UnitTop         = UnitPoint{0.5, 0}
	UnitTopRight    = UnitPoint{1, 0}
	UnitLeft        = UnitPoint{0, 0.5}
	UnitCenter      = UnitPoint{0.5, 0.5}
	UnitRight       = UnitPoint{1, 0.5}
	UnitBottomLeft  = UnitPoint{0, 1}
	UnitBottom      = UnitPoint{0.5, 1}
	UnitBottomRight = UnitPoint{1, 1}
)

// Resolve maps the unit point into concrete coordinates within the rect.
func (u UnitPoint) Resolve(r Rect) Offset {
	return Offset{
		X: r.Left + u.U*r.Width(),
		Y: r.Top + u.V*r.Height(),
	}
}
