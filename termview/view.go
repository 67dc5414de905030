// Package termview draws a level and its actors onto a terminal screen,
// one character cell per tile.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/physics"
)

var tileGlyphs = map[physics.TileType]rune{
	physics.TileNormal:        '.',
	physics.TileSolid:         '█',
	physics.TileOneWay:        '=',
	physics.TileSlopeRise:     '/',
	physics.TileSlopeRiseLow:  '/',
	physics.TileSlopeRiseHigh: '/',
	physics.TileSlopeFall:     '\\',
	physics.TileSlopeFallHigh: '\\',
	physics.TileSlopeFallLow:  '\\',
	physics.TileHazard:        '^',
	physics.TileLadder:        'H',
}

var (
	tileStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	hazardStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	solidStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(160, 110, 60))
	pickupStyle = tcell.StyleDefault.Foreground(tcell.ColorGold)
	enemyStyle  = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// View renders the world at a fixed scale of CellSize world units per
// terminal cell. The top rows are left for the status line.
type View struct {
	Screen   tcell.Screen
	CellSize float64
	// Top is the number of rows reserved above the map.
	Top int

	originX, originY int
}

func New(screen tcell.Screen, cellSize float64) *View {
	return &View{Screen: screen, CellSize: cellSize, Top: 1}
}

// Draw clears the screen, scrolls so the player stays in view and draws
// tiles, actors and status. It does not call Show.
func (v *View) Draw(w *ecs.World, status string) {
	if v == nil || v.Screen == nil || w == nil || v.CellSize <= 0 {
		return
	}
	v.Screen.Clear()
	v.follow(w)

	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(_ ecs.Entity, layer *component.TileLayer) {
		g := layer.Grid
		if g == nil {
			return
		}
		g.Each(func(x, y int, t physics.Tile) {
			glyph, ok := tileGlyphs[t.Type]
			if !ok {
				return
			}
			style := tileStyle
			if t.Type == physics.TileHazard {
				style = hazardStyle
			}
			v.fill(g.CellRect(x, y), glyph, style)
		})
	})

	for _, e := range w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind()) {
		c, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if !c.Usable() {
			continue
		}
		glyph, style := actorGlyph(w, e)
		v.fill(c.WorldAABB(cp.Vector{X: t.X, Y: t.Y}, actorScale(t)), glyph, style)
	}

	v.text(0, 0, status)
}

// follow picks an origin that centers the player on screen.
func (v *View) follow(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	width, height := v.Screen.Size()
	v.originX = int(math.Floor(t.X/v.CellSize)) - width/2
	v.originY = int(math.Floor(t.Y/v.CellSize)) - (height-v.Top)/2
}

// fill sets every cell the world rect r touches.
func (v *View) fill(r physics.Rect, glyph rune, style tcell.Style) {
	x0 := int(math.Floor(r.Left() / v.CellSize))
	y0 := int(math.Floor(r.Top() / v.CellSize))
	x1 := int(math.Ceil(r.Right()/v.CellSize)) - 1
	y1 := int(math.Ceil(r.Bottom()/v.CellSize)) - 1
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			v.set(x, y, glyph, style)
		}
	}
}

func (v *View) set(cellX, cellY int, glyph rune, style tcell.Style) {
	sx, sy := cellX-v.originX, cellY-v.originY+v.Top
	width, height := v.Screen.Size()
	if sx < 0 || sy < v.Top || sx >= width || sy >= height {
		return
	}
	v.Screen.SetContent(sx, sy, glyph, nil, style)
}

func (v *View) text(x, y int, s string) {
	width, _ := v.Screen.Size()
	for _, r := range s {
		if x >= width {
			return
		}
		v.Screen.SetContent(x, y, r, nil, textStyle)
		x++
	}
}

func actorGlyph(w *ecs.World, e ecs.Entity) (rune, tcell.Style) {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return '@', playerStyle
	case ecs.Has(w, e, component.PickupTagComponent.Kind()):
		return 'o', pickupStyle
	case ecs.Has(w, e, component.EnemyTagComponent.Kind()):
		return 'e', enemyStyle
	case ecs.Has(w, e, component.SolidTagComponent.Kind()):
		return '#', solidStyle
	}
	return '?', textStyle
}

func actorScale(t *component.Transform) cp.Vector {
	s := cp.Vector{X: t.ScaleX, Y: t.ScaleY}
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}
