package common

const (
	// TileSize is the default tile edge in world units.
	TileSize = 16

	// Gravity is the default downward acceleration (screen space, +Y down).
	Gravity = 980.0

	// MaxSpeed bounds each velocity component after integration.
	MaxSpeed = 500.0

	// FarEdgeTolerance pulls far-edge samples one unit inward so a body
	// flush against a tile boundary does not sample the next row or column.
	FarEdgeTolerance = 1.0

	// PushOutEpsilon is the overlap below which solid contact is ignored.
	PushOutEpsilon = 0.1

	// TicksPerSecond is the fixed simulation rate of the playground.
	TicksPerSecond = 60
)
