package geometry

// Rect is an axis-aligned box in a single coordinate space.
type Rect struct {
	X, Y, Width, Height float64
}

// Size is the measured extent of the floating element.
type Size struct {
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Size returns the width and height of r.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Sides holds a value per side. For overflow, positive values are the
// distance by which a box crosses the boundary on that side.
type Sides struct {
	Top, Right, Bottom, Left float64
}

// Get returns the value for side s.
func (o Sides) Get(s Side) float64 {
	switch s {
	case SideTop:
		return o.Top
	case SideRight:
		return o.Right
	case SideBottom:
		return o.Bottom
	default:
		return o.Left
	}
}

// Overflow measures how far box crosses boundary inset by padding.
func Overflow(box, boundary Rect, padding float64) Sides {
	return Sides{
		Top:    boundary.Y + padding - box.Y,
		Right:  box.Right() - (boundary.Right() - padding),
		Bottom: box.Bottom() - (boundary.Bottom() - padding),
		Left:   boundary.X + padding - box.X,
	}
}

// FullyOutside reports whether box lies entirely beyond boundary on at least
// one side.
func FullyOutside(box, boundary Rect) bool {
	return box.Right() <= boundary.X ||
		box.X >= boundary.Right() ||
		box.Bottom() <= boundary.Y ||
		box.Y >= boundary.Bottom()
}

func clamp(lo, v, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
