package component

import "github.com/milk9111/tilephys/physics"

// TileLayer puts a tile grid into the physics world while the entity lives.
type TileLayer struct {
	Grid   *physics.TileGrid
	Handle physics.GridHandle
}

var TileLayerComponent = NewComponent[TileLayer]()
