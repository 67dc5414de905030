package physics

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jakecoffman/cp"
)

var (
	ErrGridSize = errors.New("physics: tile count does not match grid dimensions")
	ErrTileSize = errors.New("physics: tile size must be positive")
)

// TileType is the physical behaviour of a tile cell.
type TileType uint8

const (
	TileEmpty TileType = iota
	TileNormal
	TileSolid
	// TileOneWay only stops bodies falling onto it from above.
	TileOneWay
	// TileSlopeRise climbs from 0 on the left to full height on the right.
	TileSlopeRise
	// TileSlopeFall drops from full height on the left to 0 on the right.
	TileSlopeFall
	// TileSlopeRiseLow climbs from 0 to half height.
	TileSlopeRiseLow
	// TileSlopeRiseHigh climbs from half to full height.
	TileSlopeRiseHigh
	// TileSlopeFallHigh drops from full to half height.
	TileSlopeFallHigh
	// TileSlopeFallLow drops from half height to 0.
	TileSlopeFallLow
	TileHazard
	TileLadder

	tileTypeCount
)

var tileTypeNames = [tileTypeCount]string{
	TileEmpty:         "empty",
	TileNormal:        "normal",
	TileSolid:         "solid",
	TileOneWay:        "one_way",
	TileSlopeRise:     "slope_rise",
	TileSlopeFall:     "slope_fall",
	TileSlopeRiseLow:  "slope_rise_low",
	TileSlopeRiseHigh: "slope_rise_high",
	TileSlopeFallHigh: "slope_fall_high",
	TileSlopeFallLow:  "slope_fall_low",
	TileHazard:        "hazard",
	TileLadder:        "ladder",
}

func (t TileType) String() string {
	if t < tileTypeCount {
		return tileTypeNames[t]
	}
	return "tile(" + strconv.Itoa(int(t)) + ")"
}

// ParseTileType accepts a tile name or its numeric value.
func ParseTileType(s string) (TileType, error) {
	for i, name := range tileTypeNames {
		if name == s {
			return TileType(i), nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= int(tileTypeCount) {
		return TileEmpty, fmt.Errorf("physics: unknown tile type %q", s)
	}
	return TileType(n), nil
}

// IsSlope reports whether the tile has a sloped surface.
func (t TileType) IsSlope() bool {
	return t >= TileSlopeRise && t <= TileSlopeFallLow
}

// IsTrigger reports whether covering the tile emits a trigger event.
func (t TileType) IsTrigger() bool {
	return t == TileHazard
}

func (t TileType) stopsFalling() bool {
	return t == TileSolid || t == TileOneWay
}

// Tile is one grid cell. Visual is opaque to physics.
type Tile struct {
	Type   TileType
	Visual int
}

// TileGrid is a fixed rectangular array of tiles placed at an offset.
type TileGrid struct {
	width    int
	height   int
	tileSize cp.Vector
	tiles    []Tile
	offset   cp.Vector
}

// NewTileGrid validates dimensions and takes ownership of tiles, which are
// row-major.
func NewTileGrid(width, height int, tileSize cp.Vector, tiles []Tile) (*TileGrid, error) {
	if tileSize.X <= 0 || tileSize.Y <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrTileSize, tileSize.X, tileSize.Y)
	}
	if width < 0 || height < 0 || len(tiles) != width*height {
		return nil, fmt.Errorf("%w: %d tiles for %dx%d", ErrGridSize, len(tiles), width, height)
	}
	return &TileGrid{width: width, height: height, tileSize: tileSize, tiles: tiles}, nil
}

// NewTileGridFromTypes builds a grid from bare tile types.
func NewTileGridFromTypes(width, height int, tileSize cp.Vector, types []TileType) (*TileGrid, error) {
	tiles := make([]Tile, len(types))
	for i, t := range types {
		tiles[i] = Tile{Type: t}
	}
	return NewTileGrid(width, height, tileSize, tiles)
}

func (g *TileGrid) Width() int            { return g.width }
func (g *TileGrid) Height() int           { return g.height }
func (g *TileGrid) TileSize() cp.Vector   { return g.tileSize }
func (g *TileGrid) Offset() cp.Vector     { return g.offset }
func (g *TileGrid) SetOffset(o cp.Vector) { g.offset = o }

// WorldSize is the extent of the grid in world units.
func (g *TileGrid) WorldSize() cp.Vector {
	return cp.Vector{X: float64(g.width) * g.tileSize.X, Y: float64(g.height) * g.tileSize.Y}
}

// Tile returns the cell at (x, y), or false when out of range.
func (g *TileGrid) Tile(x, y int) (Tile, bool) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return Tile{}, false
	}
	return g.tiles[y*g.width+x], true
}

// TileTypeAt returns the type at cell (x, y); out of range is empty.
func (g *TileGrid) TileTypeAt(x, y int) TileType {
	t, _ := g.Tile(x, y)
	return t.Type
}

// CellAt converts a world position to cell coordinates.
func (g *TileGrid) CellAt(p cp.Vector) (int, int) {
	return g.column(p.X), g.row(p.Y)
}

// TileTypeAtWorld returns the type of the cell containing p.
func (g *TileGrid) TileTypeAtWorld(p cp.Vector) TileType {
	return g.TileTypeAt(g.CellAt(p))
}

// CellRect is the world rect covered by cell (x, y).
func (g *TileGrid) CellRect(x, y int) Rect {
	return Rect{
		Pos:  cp.Vector{X: g.cellLeft(x), Y: g.cellTop(y)},
		Size: g.tileSize,
	}
}

// Each visits every non-empty cell in row-major order.
func (g *TileGrid) Each(fn func(x, y int, t Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			t := g.tiles[y*g.width+x]
			if t.Type == TileEmpty {
				continue
			}
			fn(x, y, t)
		}
	}
}

func (g *TileGrid) column(worldX float64) int {
	return int(math.Floor((worldX - g.offset.X) / g.tileSize.X))
}

func (g *TileGrid) row(worldY float64) int {
	return int(math.Floor((worldY - g.offset.Y) / g.tileSize.Y))
}

func (g *TileGrid) cellLeft(x int) float64 {
	return g.offset.X + float64(x)*g.tileSize.X
}

func (g *TileGrid) cellTop(y int) float64 {
	return g.offset.Y + float64(y)*g.tileSize.Y
}
