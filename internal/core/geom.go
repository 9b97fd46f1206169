// Package core provides the screen buffer, geometry and input types shared by
// the game and the terminal front end. It has no Bubble Tea dependency so the
// game logic stays pure and testable.
package core

// Rect is an axis-aligned box in screen cells. Collisions between the craft,
// the pipes and the frame are all checked with it.
type Rect struct {
	X, Y int
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the box.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row below the box.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the box covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersects reports whether r and o share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// CenteredIn returns a w by h box placed in the middle of outer.
func CenteredIn(outer Rect, w, h int) Rect {
	return Rect{X: outer.X + (outer.W-w)/2, Y: outer.Y + (outer.H-h)/2, W: w, H: h}
}
