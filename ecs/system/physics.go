package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/physics"
)

const groundGraceFrames = 6

// PhysicsSystem mirrors ECS entities into a physics.World, steps it once per
// tick and publishes contacts back as components and collision events.
type PhysicsSystem struct {
	world *physics.World
	dt    float64

	entities map[ecs.Entity]*bodyInfo
	grids    map[ecs.Entity]physics.GridHandle
}

type bodyInfo struct {
	body   *physics.Body
	handle physics.BodyHandle
	actor  *entityActor
}

// NewPhysicsSystem steps pw, or a fresh world when pw is nil, at the fixed
// tick rate.
func NewPhysicsSystem(pw *physics.World) *PhysicsSystem {
	if pw == nil {
		pw = physics.NewWorld()
	}
	return &PhysicsSystem{
		world:    pw,
		dt:       1.0 / common.TicksPerSecond,
		entities: make(map[ecs.Entity]*bodyInfo),
		grids:    make(map[ecs.Entity]physics.GridHandle),
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

// SetTimeStep overrides the per-tick dt. Non-positive values are ignored.
func (ps *PhysicsSystem) SetTimeStep(dt float64) {
	if dt > 0 {
		ps.dt = dt
	}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanupEntities(w)
	ps.syncTileLayers(w)
	ps.syncEntities(w)
	ps.syncWorldBounds(w)

	ps.world.Update(ps.dt)

	ps.syncBodies(w)
	ps.publishPairs(w)
	ps.publishTriggers(w)
}

// cleanupEntities unregisters bodies and grids whose entity died or lost
// the components that put them into the world.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) && ecs.Has(w, e, component.TransformComponent.Kind()) {
			continue
		}
		ps.world.UnregisterBody(info.handle)
		delete(ps.entities, e)
		w.Logger().Debug("physics system: body removed", "entity", e)
	}
	for e, h := range ps.grids {
		if w.IsAlive(e) && ecs.Has(w, e, component.TileLayerComponent.Kind()) {
			continue
		}
		ps.world.UnregisterTileGrid(h)
		delete(ps.grids, e)
	}
}

func (ps *PhysicsSystem) syncTileLayers(w *ecs.World) {
	ecs.ForEach(w, component.TileLayerComponent.Kind(), func(e ecs.Entity, layer *component.TileLayer) {
		if h, ok := ps.grids[e]; ok {
			if g, live := ps.world.TileGrid(h); live && g == layer.Grid {
				return
			}
			ps.world.UnregisterTileGrid(h)
			delete(ps.grids, e)
		}
		if layer.Grid == nil {
			return
		}
		layer.Handle = ps.world.RegisterTileGrid(layer.Grid)
		ps.grids[e] = layer.Handle
	})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	entities := w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			actor := &entityActor{w: w, e: e}
			body := physics.NewBody(actor, bodyComp.UseGravity, bodyComp.Mass)
			info = &bodyInfo{body: body, handle: ps.world.RegisterBody(body), actor: actor}
			ps.entities[e] = info
			w.Logger().Debug("physics system: body created", "entity", e, "handle", info.handle)
		}

		body := info.body
		body.Velocity = bodyComp.Velocity
		body.UseGravity = bodyComp.UseGravity
		body.Enabled = !bodyComp.Disabled
		body.SetMass(bodyComp.Mass)
		bodyComp.Body = body
		bodyComp.Handle = info.handle
	}
}

func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok || bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	ps.world.SetWorldBounds(physics.NewRect(bounds.X, bounds.Y, bounds.Width, bounds.Height))
}

// syncBodies copies velocities and contacts back and raises edge events.
func (ps *PhysicsSystem) syncBodies(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		info := ps.entities[e]
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if info == nil || !ok {
			continue
		}
		bodyComp.Velocity = info.body.Velocity

		state, ok := ecs.Get(w, e, component.CollisionStateComponent.Kind())
		if !ok {
			continue
		}
		contacts := info.body.Contacts()
		state.Previous = state.Contacts
		state.Contacts = contacts

		grounded := contacts.Below || contacts.OnTopOfLadder
		wasGrounded := state.Previous.Below || state.Previous.OnTopOfLadder
		switch {
		case grounded:
			state.GroundGrace = graceFrames(w, e)
		case state.GroundGrace > 0:
			state.GroundGrace--
		}
		if grounded && !wasGrounded {
			pushCollision(w, ecs.CollisionEvent{Entity: e, Kind: ecs.CollisionEventGrounded})
		}
		if contacts.OnLadder && !state.Previous.OnLadder {
			pushCollision(w, ecs.CollisionEvent{Entity: e, Kind: ecs.CollisionEventLadder, Tile: physics.TileLadder})
		}
	}
}

func graceFrames(w *ecs.World, e ecs.Entity) int {
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && p.CoyoteFrames > 0 {
		return p.CoyoteFrames
	}
	return groundGraceFrames
}

func (ps *PhysicsSystem) publishPairs(w *ecs.World) {
	for _, pair := range ps.world.CollisionPairs() {
		a, aok := pair.A.(*entityActor)
		b, bok := pair.B.(*entityActor)
		if !aok || !bok {
			continue
		}
		pushCollision(w, ecs.CollisionEvent{Entity: a.e, Kind: ecs.CollisionEventOverlap, Other: b.e})
	}
}

func (ps *PhysicsSystem) publishTriggers(w *ecs.World) {
	for _, ev := range ps.world.TriggerEvents() {
		a, ok := ev.Actor.(*entityActor)
		if !ok {
			continue
		}
		pushCollision(w, ecs.CollisionEvent{Entity: a.e, Kind: ecs.CollisionEventHitHazard, Tile: ev.Tile})
	}
}

func pushCollision(w *ecs.World, ev ecs.CollisionEvent) {
	w.Events().Push(ecs.Event{Type: ecs.EventTypeCollision, Data: ev})
}

// entityActor exposes an entity's Transform and Collider to the physics
// world.
type entityActor struct {
	w *ecs.World
	e ecs.Entity
}

func (a *entityActor) transform() *component.Transform {
	t, _ := ecs.Get(a.w, a.e, component.TransformComponent.Kind())
	return t
}

func (a *entityActor) Position() cp.Vector {
	t := a.transform()
	if t == nil {
		return cp.Vector{}
	}
	return cp.Vector{X: t.X, Y: t.Y}
}

func (a *entityActor) Translate(delta cp.Vector) {
	if t := a.transform(); t != nil {
		t.X += delta.X
		t.Y += delta.Y
	}
}

func (a *entityActor) Scale() cp.Vector {
	t := a.transform()
	if t == nil {
		return cp.Vector{X: 1, Y: 1}
	}
	return cp.Vector{X: t.ScaleX, Y: t.ScaleY}
}

func (a *entityActor) Collider() *physics.Collider {
	c, _ := ecs.Get(a.w, a.e, component.ColliderComponent.Kind())
	return c
}

func (a *entityActor) Solid() bool {
	return ecs.Has(a.w, a.e, component.SolidTagComponent.Kind())
}
