package physics

import "github.com/jakecoffman/cp"

// SlopeHeight returns the surface height of a slope tile measured up from
// the tile's bottom edge, at localX units from its left edge. Non-slope
// tiles have height 0.
func SlopeHeight(t TileType, localX float64, tileSize cp.Vector) float64 {
	if tileSize.X <= 0 {
		return 0
	}
	relx := cp.Clamp(localX/tileSize.X, 0, 1)
	h := tileSize.Y
	switch t {
	case TileSlopeRise:
		return relx * h
	case TileSlopeFall:
		return (1 - relx) * h
	case TileSlopeRiseLow:
		return relx * h * 0.5
	case TileSlopeRiseHigh:
		return relx*h*0.5 + h*0.5
	case TileSlopeFallHigh:
		return (1-relx)*h*0.5 + h*0.5
	case TileSlopeFallLow:
		return (1 - relx) * h * 0.5
	}
	return 0
}
