package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/ecs/system"
	"github.com/milk9111/tilephys/physics"
	"golang.org/x/image/colornames"
)

const debugStrokeWidth = 1

// DrawPhysicsDebug outlines grid extents and body colliders. Bodies that
// touched something last step are drawn red, bodies on a ladder blue.
func DrawPhysicsDebug(pw *physics.World, w *ecs.World, screen *ebiten.Image) {
	if pw == nil || w == nil || screen == nil {
		return
	}

	camX, camY, zoom := system.CameraTransform(w)
	d := &physicsDebugDrawer{screen: screen, camX: camX, camY: camY, zoom: zoom}

	for _, g := range pw.TileGrids() {
		d.strokeRect(physics.Rect{Pos: g.Offset(), Size: g.WorldSize()}, colornames.Teal)
	}
	if bounds, ok := pw.WorldBounds(); ok {
		d.strokeRect(bounds, colornames.Yellow)
	}

	pw.EachBody(func(_ physics.BodyHandle, b *physics.Body) {
		if b.Owner == nil {
			return
		}
		c := b.Owner.Collider()
		if !c.Usable() {
			return
		}
		s := b.Owner.Scale()
		aabb := c.WorldAABB(b.Owner.Position(), cp.Vector{X: unitScale(s.X), Y: unitScale(s.Y)})

		var clr color.Color = colornames.Lime
		contacts := b.Contacts()
		switch {
		case !b.Enabled:
			clr = colornames.Gray
		case contacts.Any():
			clr = colornames.Red
		case contacts.OnLadder:
			clr = colornames.Deepskyblue
		}
		if c.Shape.Kind == physics.ShapeCircle {
			d.strokeCircle(aabb.Center(), aabb.Size.X/2, clr)
		} else {
			d.strokeRect(aabb, clr)
		}
		// velocity
		center := aabb.Center()
		d.drawLine(center, center.Add(b.Velocity.Mult(0.1)), colornames.White)
	})

	ebitenutil.DebugPrintAt(screen, debugText(pw, w), 10, 10)
}

func debugText(pw *physics.World, w *ecs.World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TPS: %0.1f\n", ebiten.ActualTPS())
	fmt.Fprintf(&sb, "Bodies: %d  Grids: %d\n", pw.BodyCount(), len(pw.TileGrids()))
	fmt.Fprintf(&sb, "Pairs: %d  Triggers: %d\n", len(pw.CollisionPairs()), len(pw.TriggerEvents()))

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return sb.String()
	}
	if state, ok := ecs.Get(w, player, component.CollisionStateComponent.Kind()); ok {
		c := state.Contacts
		fmt.Fprintf(&sb, "Grounded: %v (grace %d)\nBelow: %v Above: %v Left: %v Right: %v\nLadder: %v Top: %v\n",
			state.Grounded(), state.GroundGrace, c.Below, c.Above, c.Left, c.Right, c.OnLadder, c.OnTopOfLadder)
	}
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		fmt.Fprintf(&sb, "Collected: %d\n", p.Collected)
	}
	return sb.String()
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, clr color.Color) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, x1, y1, x2, y2, debugStrokeWidth, clr, true)
}

func (d *physicsDebugDrawer) strokeRect(r physics.Rect, clr color.Color) {
	x, y := d.toScreen(r.Pos)
	vector.StrokeRect(d.screen, x, y, float32(r.Size.X*d.zoom), float32(r.Size.Y*d.zoom), debugStrokeWidth, clr, false)
}

func (d *physicsDebugDrawer) strokeCircle(center cp.Vector, radius float64, clr color.Color) {
	if radius <= 0 {
		return
	}
	x, y := d.toScreen(center)
	vector.StrokeCircle(d.screen, x, y, float32(radius*d.zoom), debugStrokeWidth, clr, true)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float32, float32) {
	return float32((v.X - d.camX) * d.zoom), float32((v.Y - d.camY) * d.zoom)
}
