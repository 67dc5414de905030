package component

// LevelBounds stores the world-space bounds of the current level.
type LevelBounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
