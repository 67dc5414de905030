package component

import "github.com/milk9111/tilephys/physics"

// CollisionState stores per-entity collision state derived from physics
// contacts.
type CollisionState struct {
	Contacts physics.Contacts
	Previous physics.Contacts
	// GroundGrace counts down frames since the entity last stood on
	// something.
	GroundGrace int
}

// Grounded reports contact with the ground this frame or within the grace
// window.
func (c *CollisionState) Grounded() bool {
	return c.Contacts.Below || c.Contacts.OnTopOfLadder || c.GroundGrace > 0
}

var CollisionStateComponent = NewComponent[CollisionState]()
