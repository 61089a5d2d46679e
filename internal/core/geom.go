// Package core provides fundamental types shared by the simulation and the
// platform layer. It has no external dependencies so that simulation logic
// stays pure and testable.
package core

// Vec2 is a point in world space. World space is y-up: larger Y is higher.
type Vec2 struct {
	X, Y float32
}

// Box is an axis-aligned bounding box described by its center and size.
type Box struct {
	Center Vec2
	W, H   float32
}

// NewBox creates a box centered at (x, y) with the given dimensions.
func NewBox(x, y, w, h float32) Box {
	return Box{Center: Vec2{X: x, Y: y}, W: w, H: h}
}

// Left returns the x-coordinate of the left edge.
func (b Box) Left() float32 {
	return b.Center.X - b.W/2
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float32 {
	return b.Center.X + b.W/2
}

// Top returns the y-coordinate of the upper edge.
func (b Box) Top() float32 {
	return b.Center.Y + b.H/2
}

// Bottom returns the y-coordinate of the lower edge.
func (b Box) Bottom() float32 {
	return b.Center.Y - b.H/2
}

// Overlaps reports whether the interiors of two boxes intersect.
// Boxes that only share an edge or a corner do not overlap.
func (b Box) Overlaps(other Box) bool {
	return b.Left() < other.Right() &&
		b.Right() > other.Left() &&
		b.Top() > other.Bottom() &&
		b.Bottom() < other.Top()
}

// Rect is an integer rectangle in screen space (top-left origin, y-down).
// Used only for drawing into a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
