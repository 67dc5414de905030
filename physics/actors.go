package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
)

type placedBody struct {
	body     *Body
	collider *Collider
	aabb     Rect
	solid    bool
}

// detectActorOverlaps tests every unordered pair of enabled bodies once.
// A solid/non-solid overlap pushes the non-solid body out; every other
// overlap is reported as a collision pair.
func (w *World) detectActorOverlaps() {
	placed := make([]placedBody, 0, len(w.active))
	for _, e := range w.active {
		b := e.body
		if b.Owner == nil {
			continue
		}
		c := b.Owner.Collider()
		if !c.Usable() {
			continue
		}
		placed = append(placed, placedBody{body: b, collider: c, solid: b.Owner.Solid()})
	}

	for i := 0; i < len(placed); i++ {
		for j := i + 1; j < len(placed); j++ {
			a, b := &placed[i], &placed[j]
			// Earlier push-outs may have moved either body this frame.
			a.aabb = a.collider.WorldAABB(a.body.Owner.Position(), actorScale(a.body.Owner))
			b.aabb = b.collider.WorldAABB(b.body.Owner.Position(), actorScale(b.body.Owner))
			if !Overlap(a.collider.Shape, a.aabb, b.collider.Shape, b.aabb) {
				continue
			}
			switch {
			case a.solid && !b.solid:
				pushOut(b.body, b.aabb, a.aabb)
			case b.solid && !a.solid:
				pushOut(a.body, a.aabb, b.aabb)
			default:
				w.pairs = append(w.pairs, CollisionPair{A: a.body.Owner, B: b.body.Owner})
			}
		}
	}
}

// pushOut separates the moving body from a solid along the axis of least
// overlap.
func pushOut(moving *Body, m, solid Rect) {
	mc, sc := m.Center(), solid.Center()
	dx, dy := mc.X-sc.X, mc.Y-sc.Y
	overlapX := (m.Size.X+solid.Size.X)/2 - math.Abs(dx)
	overlapY := (m.Size.Y+solid.Size.Y)/2 - math.Abs(dy)
	if overlapX < common.PushOutEpsilon && overlapY < common.PushOutEpsilon {
		return
	}

	if overlapX < overlapY {
		if dx < 0 {
			moving.Owner.Translate(cp.Vector{X: -overlapX})
			if moving.Velocity.X > 0 {
				moving.Velocity.X = 0
				moving.contacts.Right = true
			}
		} else {
			moving.Owner.Translate(cp.Vector{X: overlapX})
			if moving.Velocity.X < 0 {
				moving.Velocity.X = 0
				moving.contacts.Left = true
			}
		}
		return
	}

	if dy < 0 {
		moving.Owner.Translate(cp.Vector{Y: -overlapY})
		if moving.Velocity.Y > 0 {
			moving.Velocity.Y = 0
			moving.contacts.Below = true
		}
	} else {
		moving.Owner.Translate(cp.Vector{Y: overlapY})
		if moving.Velocity.Y < 0 {
			moving.Velocity.Y = 0
			moving.contacts.Above = true
		}
	}
}
