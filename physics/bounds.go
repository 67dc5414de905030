package physics

import "github.com/jakecoffman/cp"

// clampToBounds keeps the body's collider inside the left, top and right
// world edges. The bottom stays open so bodies can fall into pits.
func (w *World) clampToBounds(b *Body) {
	if !w.hasBounds {
		return
	}
	_, aabb, ok := b.usableCollider()
	if !ok {
		return
	}

	var delta cp.Vector
	if aabb.Left() < w.bounds.Left() {
		delta.X = w.bounds.Left() - aabb.Left()
		b.Velocity.X = 0
	}
	if aabb.Top() < w.bounds.Top() {
		delta.Y = w.bounds.Top() - aabb.Top()
		b.Velocity.Y = 0
	}
	if aabb.Right() > w.bounds.Right() {
		delta.X = w.bounds.Right() - aabb.Right()
		b.Velocity.X = 0
	}
	if delta.X != 0 || delta.Y != 0 {
		b.Owner.Translate(delta)
	}
}
