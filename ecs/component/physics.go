package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/physics"
)

// PhysicsBody configures a body and carries its runtime link into the
// physics world. Velocity and Disabled are authoritative on the component:
// the physics system copies them in before stepping and back out after.
type PhysicsBody struct {
	Velocity   cp.Vector
	Mass       float64
	UseGravity bool
	Disabled   bool

	Body   *physics.Body
	Handle physics.BodyHandle
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
