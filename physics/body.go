package physics

import "github.com/jakecoffman/cp"

// Actor is the narrow capability the world needs from whatever owns a body.
type Actor interface {
	// Position is the actor origin in world space.
	Position() cp.Vector
	// Translate moves the actor origin by delta.
	Translate(delta cp.Vector)
	// Scale multiplies collider size and offset. Zero components mean 1.
	Scale() cp.Vector
	// Collider returns nil when the actor has none.
	Collider() *Collider
	// Solid marks actors that push dynamic actors out instead of
	// producing collision pairs.
	Solid() bool
}

// Contacts holds the per-frame collision outputs of a body.
type Contacts struct {
	Below         bool
	Above         bool
	Left          bool
	Right         bool
	OnLadder      bool
	OnTopOfLadder bool
}

// Any reports whether any directional flag is set.
func (c Contacts) Any() bool {
	return c.Below || c.Above || c.Left || c.Right
}

// Body is the kinematic state of an actor.
type Body struct {
	Owner      Actor
	Velocity   cp.Vector
	UseGravity bool
	Enabled    bool

	force    cp.Vector
	mass     float64
	contacts Contacts
}

// NewBody returns an enabled body. A non-positive mass becomes 1.
func NewBody(owner Actor, useGravity bool, mass float64) *Body {
	b := &Body{Owner: owner, UseGravity: useGravity, Enabled: true}
	b.SetMass(mass)
	return b
}

// AddForce accumulates a force for the next step. Ignored while disabled.
func (b *Body) AddForce(f cp.Vector) {
	if b.Enabled {
		b.force = b.force.Add(f)
	}
}

func (b *Body) Force() cp.Vector { return b.force }
func (b *Body) ClearForce()      { b.force = cp.Vector{} }
func (b *Body) Mass() float64    { return b.mass }

// SetMass sets the mass, falling back to 1 for non-positive values.
func (b *Body) SetMass(mass float64) {
	if mass <= 0 {
		mass = 1
	}
	b.mass = mass
}

// Contacts returns the flags produced by the last step.
func (b *Body) Contacts() Contacts { return b.contacts }

// Grounded reports whether the body stood on something last step.
func (b *Body) Grounded() bool {
	return b.contacts.Below || b.contacts.OnTopOfLadder
}

func (b *Body) resetDirectional() {
	b.contacts.Below = false
	b.contacts.Above = false
	b.contacts.Left = false
	b.contacts.Right = false
	b.contacts.OnTopOfLadder = false
}

// usableCollider returns the owner's collider and world AABB when the body
// can take part in contact.
func (b *Body) usableCollider() (*Collider, Rect, bool) {
	if b.Owner == nil {
		return nil, Rect{}, false
	}
	c := b.Owner.Collider()
	if !c.Usable() {
		return nil, Rect{}, false
	}
	return c, c.WorldAABB(b.Owner.Position(), actorScale(b.Owner)), true
}

func actorScale(a Actor) cp.Vector {
	s := a.Scale()
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}
