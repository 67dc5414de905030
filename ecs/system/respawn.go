package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
)

const defaultFallMargin = 64

// RespawnSystem remembers where each player last stood and sends players
// that fall below the level back there.
type RespawnSystem struct {
	// FallMargin is how far below the level bounds a player may fall.
	FallMargin float64

	// waiting holds requests already warned about for lack of a safe
	// position.
	waiting map[ecs.Entity]struct{}
}

func NewRespawnSystem() *RespawnSystem {
	return &RespawnSystem{FallMargin: defaultFallMargin, waiting: make(map[ecs.Entity]struct{})}
}

// Update should run after the PhysicsSystem so it sees this tick's contacts.
func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	bottom, hasBounds := s.killPlane(w)
	for _, e := range w.Query(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if state, ok := ecs.Get(w, e, component.CollisionStateComponent.Kind()); ok && state.Contacts.Below {
			_ = ecs.Add(w, e, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{X: t.X, Y: t.Y, Initialized: true})
		}
		if hasBounds && t.Y > bottom && !ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
			_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
		}
	}

	for e := range s.waiting {
		if !ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
			delete(s.waiting, e)
		}
	}

	// A request without a safe position stays until the player has one.
	for _, e := range w.Query(component.RespawnRequestComponent.Kind()) {
		if s.respawn(w, e) {
			ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
			delete(s.waiting, e)
		}
	}
}

func (s *RespawnSystem) killPlane(w *ecs.World) (float64, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return 0, false
	}
	b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	if !ok || b.Height <= 0 {
		return 0, false
	}
	return b.Y + b.Height + s.FallMargin, true
}

// respawn reports whether the request is finished. Requests on entities
// that can never respawn are finished too.
func (s *RespawnSystem) respawn(w *ecs.World, e ecs.Entity) bool {
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return true
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return true
	}
	safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
	if !ok || !safe.Initialized {
		if _, warned := s.waiting[e]; !warned {
			if s.waiting == nil {
				s.waiting = make(map[ecs.Entity]struct{})
			}
			s.waiting[e] = struct{}{}
			w.Logger().Warn("respawn: no safe position yet", "entity", e)
		}
		return false
	}

	t.X, t.Y = safe.X, safe.Y
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Velocity = cp.Vector{}
		if body.Body != nil {
			body.Body.Velocity = cp.Vector{}
		}
	}
	w.Logger().Debug("respawn: player moved to safe position", "entity", e, "x", t.X, "y", t.Y)
	return true
}
