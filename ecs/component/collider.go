package component

import "github.com/milk9111/tilephys/physics"

// Collider is the physics collider itself; the world reads it in place.
var ColliderComponent = NewComponent[physics.Collider]()
