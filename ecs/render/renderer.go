package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/ecs/system"
	"github.com/milk9111/tilephys/physics"
	"golang.org/x/image/colornames"
)

var tileColors = map[physics.TileType]color.RGBA{
	physics.TileNormal: colornames.Dimgray,
	physics.TileSolid:  colornames.Slategray,
	physics.TileOneWay: colornames.Peru,
	physics.TileHazard: colornames.Orangered,
	physics.TileLadder: colornames.Burlywood,
}

const slopeStrokeWidth = 2

// Renderer draws tile layers and actor colliders as flat shapes.
type Renderer struct {
	Background color.Color
}

func NewRenderer() *Renderer {
	return &Renderer{Background: colornames.Midnightblue}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if r.Background != nil {
		screen.Fill(r.Background)
	}

	camX, camY, zoom := system.CameraTransform(w)
	toScreen := func(v cp.Vector) (float32, float32) {
		return float32((v.X - camX) * zoom), float32((v.Y - camY) * zoom)
	}
	z := float32(zoom)

	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(_ ecs.Entity, layer *component.TileLayer) {
		g := layer.Grid
		if g == nil {
			return
		}
		g.Each(func(x, y int, t physics.Tile) {
			cell := g.CellRect(x, y)
			sx, sy := toScreen(cell.Pos)
			sw, sh := float32(cell.Size.X)*z, float32(cell.Size.Y)*z
			if t.Type.IsSlope() {
				bottom := cell.Bottom()
				ax, ay := toScreen(cp.Vector{X: cell.Left(), Y: bottom - physics.SlopeHeight(t.Type, 0, g.TileSize())})
				bx, by := toScreen(cp.Vector{X: cell.Right(), Y: bottom - physics.SlopeHeight(t.Type, cell.Size.X, g.TileSize())})
				vector.StrokeLine(screen, ax, ay, bx, by, slopeStrokeWidth*z, colornames.Darkolivegreen, true)
				return
			}
			clr, ok := tileColors[t.Type]
			if !ok {
				return
			}
			if t.Type == physics.TileOneWay {
				sh = 3 * z
			}
			vector.FillRect(screen, sx, sy, sw, sh, clr, false)
		})
	})

	for _, e := range w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind()) {
		c, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if !c.Usable() {
			continue
		}
		aabb := c.WorldAABB(cp.Vector{X: t.X, Y: t.Y}, cp.Vector{X: unitScale(t.ScaleX), Y: unitScale(t.ScaleY)})
		clr := actorColor(w, e)
		sx, sy := toScreen(aabb.Pos)
		if c.Shape.Kind == physics.ShapeCircle {
			cx, cy := toScreen(aabb.Center())
			vector.FillCircle(screen, cx, cy, float32(aabb.Size.X/2)*z, clr, true)
			continue
		}
		vector.FillRect(screen, sx, sy, float32(aabb.Size.X)*z, float32(aabb.Size.Y)*z, clr, false)
	}
}

func actorColor(w *ecs.World, e ecs.Entity) color.RGBA {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		return colornames.Crimson
	case ecs.Has(w, e, component.PickupTagComponent.Kind()):
		return colornames.Gold
	case ecs.Has(w, e, component.EnemyTagComponent.Kind()):
		return colornames.Mediumorchid
	case ecs.Has(w, e, component.SolidTagComponent.Kind()):
		return colornames.Saddlebrown
	}
	return colornames.Lightgray
}

// unitScale treats an unset scale as 1.
func unitScale(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
