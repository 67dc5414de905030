package component

// Camera frames the view. The camera entity's Transform holds the world
// position of the top-left corner of the view.
type Camera struct {
	Zoom       float64
	Smoothness float64
	ViewWidth  float64
	ViewHeight float64
}

var CameraComponent = NewComponent[Camera]()
