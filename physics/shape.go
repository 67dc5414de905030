package physics

import "github.com/jakecoffman/cp"

// ShapeKind identifies the geometry of a Shape.
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota + 1
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	}
	return "none"
}

// Shape is the closed set of collider geometries. Only the fields of the
// active Kind are meaningful.
type Shape struct {
	Kind   ShapeKind
	Size   cp.Vector
	Radius float64
}

// NewBox returns a box shape of the given size.
func NewBox(w, h float64) Shape {
	return Shape{Kind: ShapeBox, Size: cp.Vector{X: w, Y: h}}
}

// NewCircle returns a circle shape of the given radius.
func NewCircle(radius float64) Shape {
	return Shape{Kind: ShapeCircle, Radius: radius}
}

// AABBSize is the unscaled bounding size used for all broad tests.
func (s Shape) AABBSize() cp.Vector {
	switch s.Kind {
	case ShapeBox:
		return s.Size
	case ShapeCircle:
		return cp.Vector{X: s.Radius * 2, Y: s.Radius * 2}
	}
	return cp.Vector{}
}

// Alignment anchors a collider relative to its actor's origin.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignTopLeft
	AlignTopCenter
	AlignTopRight
	AlignCenterLeft
	AlignCenter
	AlignCenterRight
	AlignBottomLeft
	AlignBottomCenter
	AlignBottomRight
)

var alignmentNames = map[string]Alignment{
	"none":          AlignNone,
	"top_left":      AlignTopLeft,
	"top_center":    AlignTopCenter,
	"top_right":     AlignTopRight,
	"center_left":   AlignCenterLeft,
	"center":        AlignCenter,
	"center_right":  AlignCenterRight,
	"bottom_left":   AlignBottomLeft,
	"bottom_center": AlignBottomCenter,
	"bottom_right":  AlignBottomRight,
}

// ParseAlignment maps a snake_case name to an Alignment.
func ParseAlignment(name string) (Alignment, bool) {
	a, ok := alignmentNames[name]
	return a, ok
}

// anchor returns the fraction of the size subtracted on each axis.
func (a Alignment) anchor() (fx, fy float64, ok bool) {
	switch a {
	case AlignTopLeft:
		return 0, 0, true
	case AlignTopCenter:
		return 0.5, 0, true
	case AlignTopRight:
		return 1, 0, true
	case AlignCenterLeft:
		return 0, 0.5, true
	case AlignCenter:
		return 0.5, 0.5, true
	case AlignCenterRight:
		return 1, 0.5, true
	case AlignBottomLeft:
		return 0, 1, true
	case AlignBottomCenter:
		return 0.5, 1, true
	case AlignBottomRight:
		return 1, 1, true
	}
	return 0, 0, false
}

// Collider attaches a Shape to an actor.
type Collider struct {
	Shape     Shape
	Alignment Alignment
	// Offset from the actor position to the top-left of the world AABB,
	// already scaled. Recomputed by UpdateOffset unless Alignment is None.
	Offset    cp.Vector
	IsTrigger bool
	Active    bool
}

// NewCollider returns an active, non-trigger collider with a zero offset.
// Call UpdateOffset once the owner's scale is known.
func NewCollider(shape Shape, alignment Alignment) *Collider {
	return &Collider{Shape: shape, Alignment: alignment, Active: true}
}

// Usable reports whether the collider can take part in contact at all.
func (c *Collider) Usable() bool {
	if c == nil || !c.Active {
		return false
	}
	size := c.Shape.AABBSize()
	return size.X > 0 && size.Y > 0
}

// SetAlignment changes the anchor and recomputes the offset.
func (c *Collider) SetAlignment(a Alignment, scale cp.Vector) {
	c.Alignment = a
	c.UpdateOffset(scale)
}

// UpdateOffset recomputes Offset from the alignment and the owner's scale.
// It must be called again whenever either changes.
func (c *Collider) UpdateOffset(scale cp.Vector) {
	if c == nil {
		return
	}
	size := c.Shape.AABBSize()
	if size.X <= 0 || size.Y <= 0 {
		c.Offset = cp.Vector{}
		return
	}
	fx, fy, ok := c.Alignment.anchor()
	if !ok {
		return
	}
	c.Offset = cp.Vector{X: -size.X * fx * scale.X, Y: -size.Y * fy * scale.Y}
}

// WorldAABB places the collider at position with the given owner scale.
func (c *Collider) WorldAABB(position, scale cp.Vector) Rect {
	if c == nil {
		return Rect{}
	}
	size := c.Shape.AABBSize()
	return Rect{
		Pos:  position.Add(c.Offset),
		Size: cp.Vector{X: size.X * scale.X, Y: size.Y * scale.Y},
	}
}
