package physics

import "github.com/jakecoffman/cp"

// OverlapAABB reports whether two rects share interior area. Touching
// edges do not overlap.
func OverlapAABB(a, b Rect) bool {
	if a.Right() <= b.Left() || a.Left() >= b.Right() || a.Bottom() <= b.Top() || a.Top() >= b.Bottom() {
		return false
	}
	return true
}

// OverlapCircles reports whether the centre distance is strictly less than
// the radius sum.
func OverlapCircles(centerA cp.Vector, radiusA float64, centerB cp.Vector, radiusB float64) bool {
	return centerA.Distance(centerB) < radiusA+radiusB
}

// PointInCircle reports whether p is strictly inside the circle.
func PointInCircle(p, center cp.Vector, radius float64) bool {
	return p.Distance(center) < radius
}

// OverlapBoxCircle clamps the circle centre into the box and tests the
// clamped point against the circle.
func OverlapBoxCircle(box Rect, center cp.Vector, radius float64) bool {
	nearest := box.BB().ClampVect(&center)
	return PointInCircle(nearest, center, radius)
}

// Overlap tests two placed shapes. aabbA and aabbB are the world AABBs the
// shapes occupy; circles are inscribed in theirs.
func Overlap(a Shape, aabbA Rect, b Shape, aabbB Rect) bool {
	if !OverlapAABB(aabbA, aabbB) {
		return false
	}
	switch {
	case a.Kind == ShapeBox && b.Kind == ShapeBox:
		return true
	case a.Kind == ShapeCircle && b.Kind == ShapeCircle:
		return OverlapCircles(aabbA.Center(), aabbA.Size.X/2, aabbB.Center(), aabbB.Size.X/2)
	case a.Kind == ShapeBox && b.Kind == ShapeCircle:
		return OverlapBoxCircle(aabbA, aabbB.Center(), aabbB.Size.X/2)
	case a.Kind == ShapeCircle && b.Kind == ShapeBox:
		return OverlapBoxCircle(aabbB, aabbA.Center(), aabbA.Size.X/2)
	}
	return false
}
