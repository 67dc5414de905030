package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
)

// gridContact is the outcome of resolving one projected move against one
// grid.
type gridContact struct {
	pos            cp.Vector
	movedX, movedY bool
	stopX, stopY   bool
	contacts       Contacts
}

// axisPick keeps the candidate with the largest correction on one axis.
type axisPick struct {
	value      float64
	correction float64
	set        bool
}

func (p *axisPick) offer(value, target float64) {
	c := math.Abs(value - target)
	if !p.set || c > p.correction {
		p.value, p.correction, p.set = value, c, true
	}
}

// resolveTiles moves b's owner by velocity*dt, stopping it against every
// registered grid. Each grid resolves the same projected move; per axis the
// grid that corrects it most wins, so overlapping grids behave the same
// regardless of registration order.
func (w *World) resolveTiles(b *Body, aabb Rect, grids []*TileGrid, dt float64) {
	ds := b.Velocity.Mult(dt)
	target := aabb.Pos.Add(ds)

	var pickX, pickY axisPick
	for _, g := range grids {
		r := g.resolve(aabb, ds, b.UseGravity)
		if r.movedX {
			pickX.offer(r.pos.X, target.X)
		}
		if r.movedY {
			pickY.offer(r.pos.Y, target.Y)
		}
		if r.stopX {
			b.Velocity.X = 0
		}
		if r.stopY {
			b.Velocity.Y = 0
		}
		b.contacts.Below = b.contacts.Below || r.contacts.Below
		b.contacts.Above = b.contacts.Above || r.contacts.Above
		b.contacts.Left = b.contacts.Left || r.contacts.Left
		b.contacts.Right = b.contacts.Right || r.contacts.Right
		b.contacts.OnTopOfLadder = b.contacts.OnTopOfLadder || r.contacts.OnTopOfLadder
	}

	final := target
	if pickX.set {
		final.X = pickX.value
	}
	if pickY.set {
		final.Y = pickY.value
	}
	// The collider may sit away from the actor origin, so move by delta.
	b.Owner.Translate(final.Sub(aabb.Pos))
	w.clampVelocity(b)
}

// resolve runs the horizontal pass on the original Y and the vertical pass
// on the original X of aabb.
func (g *TileGrid) resolve(aabb Rect, ds cp.Vector, gravity bool) gridContact {
	const tol = common.FarEdgeTolerance
	pos, size := aabb.Pos, aabb.Size
	r := gridContact{pos: pos.Add(ds)}

	if ds.X != 0 {
		rowTop := g.row(pos.Y)
		rowBottom := g.row(pos.Y + size.Y - tol)

		var edge float64
		if ds.X > 0 {
			edge = r.pos.X + size.X
		} else {
			edge = r.pos.X
		}
		col := g.column(edge)
		top, bottom := g.TileTypeAt(col, rowTop), g.TileTypeAt(col, rowBottom)

		switch {
		case top == TileSolid || bottom == TileSolid:
			if ds.X > 0 {
				r.pos.X = g.cellLeft(col) - size.X
				r.contacts.Right = true
			} else {
				r.pos.X = g.cellLeft(col + 1)
				r.contacts.Left = true
			}
			r.movedX, r.stopX = true, true
		case bottom.IsSlope():
			h := SlopeHeight(bottom, edge-g.cellLeft(col), g.tileSize)
			surface := g.cellTop(rowBottom+1) - h
			if h > 0 && r.pos.Y+size.Y > surface {
				r.pos.Y = surface - size.Y
				r.movedY = true
				r.contacts.Below = true
			}
		}
	}

	colLeft := g.column(pos.X)
	colRight := g.column(pos.X + size.X - tol)

	switch {
	case ds.Y > 0:
		edge := r.pos.Y + size.Y
		row := g.row(edge)
		left, right := g.TileTypeAt(colLeft, row), g.TileTypeAt(colRight, row)

		switch {
		case left.stopsFalling() || right.stopsFalling():
			r.pos.Y = g.cellTop(row) - size.Y
			r.movedY, r.stopY = true, true
			r.contacts.Below = true
		case gravity && g.ladderTop(colLeft, row) && g.ladderTop(colRight, row):
			r.pos.Y = g.cellTop(row) - size.Y
			r.movedY, r.stopY = true, true
			r.contacts.Below = true
			r.contacts.OnTopOfLadder = true
		default:
			h := math.Max(
				SlopeHeight(left, pos.X-g.cellLeft(colLeft), g.tileSize),
				SlopeHeight(right, pos.X+size.X-g.cellLeft(colRight), g.tileSize),
			)
			surface := g.cellTop(row+1) - h
			if h > 0 && edge > surface {
				r.pos.Y = surface - size.Y
				r.movedY, r.stopY = true, true
				r.contacts.Below = true
			}
		}
	case ds.Y < 0:
		row := g.row(r.pos.Y)
		if g.TileTypeAt(colLeft, row) == TileSolid || g.TileTypeAt(colRight, row) == TileSolid {
			r.pos.Y = g.cellTop(row + 1)
			r.movedY, r.stopY = true, true
			r.contacts.Above = true
		}
	}

	return r
}

// ladderTop reports whether (x, y) is the topmost cell of a ladder shaft.
func (g *TileGrid) ladderTop(x, y int) bool {
	return g.TileTypeAt(x, y) == TileLadder && g.TileTypeAt(x, y-1) != TileLadder
}
