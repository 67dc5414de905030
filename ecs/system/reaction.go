package system

import (
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/script"
)

// ReactionSystem drains collision events: players collect pickups they
// overlap, and the optional reaction script may rewrite the velocity of
// bodies that hit trigger tiles or other actors.
type ReactionSystem struct {
	reactor *script.Reactor
}

func NewReactionSystem(reactor *script.Reactor) *ReactionSystem {
	return &ReactionSystem{reactor: reactor}
}

// SetReactor swaps the reaction script; nil disables scripting.
func (s *ReactionSystem) SetReactor(r *script.Reactor) {
	s.reactor = r
}

func (s *ReactionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		ce, ok := evt.Data.(ecs.CollisionEvent)
		if !ok || evt.Type != ecs.EventTypeCollision {
			continue
		}
		switch ce.Kind {
		case ecs.CollisionEventOverlap:
			s.overlap(w, ce.Entity, ce.Other)
			s.overlap(w, ce.Other, ce.Entity)
		case ecs.CollisionEventHitHazard:
			body, ok := ecs.Get(w, ce.Entity, component.PhysicsBodyComponent.Kind())
			if !ok || s.reactor == nil {
				continue
			}
			vel, err := s.reactor.OnTrigger(ce.Tile, body.Velocity)
			if err != nil {
				w.Logger().Warn("reaction: trigger script failed", "entity", ce.Entity, "tile", ce.Tile, "err", err)
				continue
			}
			body.Velocity = vel
		}
	}
}

// overlap handles e touching other.
func (s *ReactionSystem) overlap(w *ecs.World, e, other ecs.Entity) {
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) || !w.IsAlive(other) {
		return
	}
	kind := "actor"
	if ecs.Has(w, other, component.PickupTagComponent.Kind()) {
		kind = "pickup"
		if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			p.Collected++
		}
		w.DestroyEntity(other)
		w.Logger().Debug("reaction: pickup collected", "player", e, "pickup", other)
	}

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || s.reactor == nil {
		return
	}
	vel, err := s.reactor.OnPair(kind, body.Velocity)
	if err != nil {
		w.Logger().Warn("reaction: pair script failed", "entity", e, "err", err)
		return
	}
	body.Velocity = vel
}
