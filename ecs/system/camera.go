package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases the camera toward the player and keeps the view inside the
// level bounds.
func (cs *CameraSystem) Update(w *ecs.World) {
	if !w.IsAlive(cs.camEntity) {
		cs.camEntity, _ = w.First(component.CameraComponent.Kind())
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity, _ = w.First(component.PlayerTagComponent.Kind())
	}

	camComp, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	center, ok := entityCenter(w, cs.targetEntity)
	if !ok {
		return
	}

	zoom := orDefault(camComp.Zoom, 1)
	viewW, viewH := camComp.ViewWidth/zoom, camComp.ViewHeight/zoom
	goalX := center.X - viewW/2
	goalY := center.Y - viewH/2

	if e, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind()); ok {
			goalX = clampView(goalX, b.X, b.Width, viewW)
			goalY = clampView(goalY, b.Y, b.Height, viewH)
		}
	}

	t := 1.0
	if camComp.Smoothness > 0 && camComp.Smoothness < 1 {
		t = 1 - camComp.Smoothness
	}
	camTransform.X = common.Lerp(camTransform.X, goalX, t)
	camTransform.Y = common.Lerp(camTransform.Y, goalY, t)
}

// clampView keeps [pos, pos+view) inside [lo, lo+extent). A view larger
// than the level is centered on it.
func clampView(pos, lo, extent, view float64) float64 {
	if view >= extent {
		return lo + (extent-view)/2
	}
	return cp.Clamp(pos, lo, lo+extent-view)
}

// entityCenter is the collider center when there is one, else the
// transform position.
func entityCenter(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	pos := cp.Vector{X: t.X, Y: t.Y}
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok && c.Usable() {
		return c.WorldAABB(pos, cp.Vector{X: orDefault(t.ScaleX, 1), Y: orDefault(t.ScaleY, 1)}).Center(), true
	}
	return pos, true
}

// CameraTransform returns the view's top-left corner and zoom, or the
// identity view when there is no camera.
func CameraTransform(w *ecs.World) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	return camX, camY, zoom
}
