package physics

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned rectangle in world space with a top-left origin
// and +Y pointing down.
type Rect struct {
	Pos  cp.Vector
	Size cp.Vector
}

// NewRect builds a rect from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: cp.Vector{X: x, Y: y}, Size: cp.Vector{X: w, Y: h}}
}

func (r Rect) Left() float64   { return r.Pos.X }
func (r Rect) Top() float64    { return r.Pos.Y }
func (r Rect) Right() float64  { return r.Pos.X + r.Size.X }
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Size.Y }

// Center returns the midpoint of the rect.
func (r Rect) Center() cp.Vector {
	return cp.Vector{X: r.Pos.X + r.Size.X/2, Y: r.Pos.Y + r.Size.Y/2}
}

// Empty reports whether the rect has no positive area.
func (r Rect) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// Contains reports whether p lies inside the rect, far edges excluded.
func (r Rect) Contains(p cp.Vector) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Translate returns the rect moved by delta.
func (r Rect) Translate(delta cp.Vector) Rect {
	return Rect{Pos: r.Pos.Add(delta), Size: r.Size}
}

// BB converts the rect to a chipmunk bounding box. Screen space keeps the
// smaller Y in B, matching how the level shapes were built on top of cp.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.Left(), B: r.Top(), R: r.Right(), T: r.Bottom()}
}
