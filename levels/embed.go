package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
	"github.com/milk9111/tilephys/physics"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrDimensions = errors.New("levels: width and height must be positive")
	ErrLayerSize  = errors.New("levels: layer length does not match width*height")
)

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]Tile    `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

// LayerMeta holds per-layer settings. Layers without physics are visual
// only and never reach the physics world.
type LayerMeta struct {
	Physics bool    `json:"physics"`
	OffsetX float64 `json:"offset_x,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// Tile is a tile type written either as its number or its name.
type Tile physics.TileType

func (t *Tile) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		tt, err := physics.ParseTileType(strconv.Itoa(n))
		if err != nil {
			return err
		}
		*t = Tile(tt)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("levels: tile must be a number or name: %s", data)
	}
	tt, err := physics.ParseTileType(s)
	if err != nil {
		return err
	}
	*t = Tile(tt)
	return nil
}

func (t Tile) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

// Load reads a level from disk when name exists there, otherwise from the
// embedded levels.
func Load(name string) (*Level, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return lvl, nil
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = common.TileSize
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return ErrDimensions
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrLayerSize, i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

// Meta returns the metadata of layer i; layers past LayerMeta are physics
// layers.
func (l *Level) Meta(i int) LayerMeta {
	if i < len(l.LayerMeta) {
		return l.LayerMeta[i]
	}
	return LayerMeta{Physics: true}
}

// Grids builds one tile grid per physics layer, in layer order.
func (l *Level) Grids() ([]*physics.TileGrid, error) {
	size := cp.Vector{X: l.TileSize, Y: l.TileSize}
	var grids []*physics.TileGrid
	for i, layer := range l.Layers {
		meta := l.Meta(i)
		if !meta.Physics {
			continue
		}
		types := make([]physics.TileType, len(layer))
		for j, t := range layer {
			types[j] = physics.TileType(t)
		}
		g, err := physics.NewTileGridFromTypes(l.Width, l.Height, size, types)
		if err != nil {
			return nil, fmt.Errorf("levels: layer %d: %w", i, err)
		}
		g.SetOffset(cp.Vector{X: meta.OffsetX, Y: meta.OffsetY})
		grids = append(grids, g)
	}
	return grids, nil
}

// Bounds is the world-space rectangle covered by the level.
func (l *Level) Bounds() physics.Rect {
	return physics.NewRect(0, 0, float64(l.Width)*l.TileSize, float64(l.Height)*l.TileSize)
}

// EntitiesOfType filters the spawn list.
func (l *Level) EntitiesOfType(typ string) []Entity {
	var out []Entity
	for _, e := range l.Entities {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// Float reads a numeric prop, falling back to def.
func (e Entity) Float(key string, def float64) float64 {
	if v, ok := e.Props[key].(float64); ok {
		return v
	}
	return def
}

// Bool reads a boolean prop, falling back to def.
func (e Entity) Bool(key string, def bool) bool {
	if v, ok := e.Props[key].(bool); ok {
		return v
	}
	return def
}
