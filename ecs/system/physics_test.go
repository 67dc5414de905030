package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

func spawnBox(t *testing.T, w *ecs.World, x, y, width, height float64, gravity bool) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), physics.NewCollider(physics.NewBox(width, height), physics.AlignTopLeft)))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Mass: 1, UseGravity: gravity}))
	require.NoError(t, ecs.Add(w, e, component.CollisionStateComponent.Kind(), &component.CollisionState{}))
	return e
}

func addLayer(t *testing.T, w *ecs.World, width, height int, types ...physics.TileType) *physics.TileGrid {
	t.Helper()
	g, err := physics.NewTileGridFromTypes(width, height, cp.Vector{X: 16, Y: 16}, types)
	require.NoError(t, err)
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TileLayerComponent.Kind(), &component.TileLayer{Grid: g}))
	return g
}

func collisionEvents(w *ecs.World) []ecs.CollisionEvent {
	var out []ecs.CollisionEvent
	for _, evt := range w.Events().Drain() {
		if ce, ok := evt.Data.(ecs.CollisionEvent); ok {
			out = append(out, ce)
		}
	}
	return out
}

func TestPhysicsSystemAppliesGravity(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	e := spawnBox(t, w, 0, 0, 16, 16, true)

	ps.Update(w)

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, body.Body)
	assert.True(t, body.Handle.Valid())
	assert.InDelta(t, 980*tick, body.Velocity.Y, 1e-9)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 980*tick*tick, tr.Y, 1e-9)
	assert.Equal(t, 1, ps.World().BodyCount())
}

func TestPhysicsSystemLandsAndEmitsGrounded(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	E, S := physics.TileEmpty, physics.TileSolid
	addLayer(t, w, 4, 4,
		E, E, E, E,
		E, E, E, E,
		E, E, E, E,
		S, S, S, S,
	)
	e := spawnBox(t, w, 16, 32, 16, 16, true)

	ps.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 32, tr.Y, 1e-9)
	state, _ := ecs.Get(w, e, component.CollisionStateComponent.Kind())
	assert.True(t, state.Contacts.Below)
	assert.Equal(t, groundGraceFrames, state.GroundGrace)
	assert.True(t, state.Grounded())

	events := collisionEvents(w)
	require.Len(t, events, 1)
	assert.Equal(t, ecs.CollisionEvent{Entity: e, Kind: ecs.CollisionEventGrounded}, events[0])

	ps.Update(w)
	assert.Empty(t, collisionEvents(w), "grounded fires on the rising edge only")
}

func TestPhysicsSystemGroundGraceCountsDown(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	e := spawnBox(t, w, 0, 0, 8, 8, false)
	state, _ := ecs.Get(w, e, component.CollisionStateComponent.Kind())
	state.GroundGrace = 2

	ps.Update(w)
	assert.Equal(t, 1, state.GroundGrace)
	ps.Update(w)
	ps.Update(w)
	assert.Equal(t, 0, state.GroundGrace)
}

func TestPhysicsSystemUnregistersDeadEntities(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	a := spawnBox(t, w, 0, 0, 8, 8, false)
	b := spawnBox(t, w, 40, 0, 8, 8, false)
	layer := w.CreateEntity()
	g, err := physics.NewTileGridFromTypes(1, 1, cp.Vector{X: 16, Y: 16}, []physics.TileType{physics.TileSolid})
	require.NoError(t, err)
	require.NoError(t, ecs.Add(w, layer, component.TileLayerComponent.Kind(), &component.TileLayer{Grid: g}))

	ps.Update(w)
	require.Equal(t, 2, ps.World().BodyCount())
	require.Len(t, ps.World().TileGrids(), 1)

	w.DestroyEntity(a)
	ecs.Remove(w, b, component.PhysicsBodyComponent.Kind())
	w.DestroyEntity(layer)
	ps.Update(w)

	assert.Equal(t, 0, ps.World().BodyCount())
	assert.Empty(t, ps.World().TileGrids())
}

func TestPhysicsSystemOverlapAndTriggerEvents(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	E, H := physics.TileEmpty, physics.TileHazard
	addLayer(t, w, 4, 1, E, E, E, H)

	a := spawnBox(t, w, 0, 0, 16, 16, false)
	b := spawnBox(t, w, 8, 0, 16, 16, false)
	c := spawnBox(t, w, 50, 0, 8, 8, false)

	ps.Update(w)

	events := collisionEvents(w)
	require.Len(t, events, 2)
	assert.Equal(t, ecs.CollisionEvent{Entity: a, Kind: ecs.CollisionEventOverlap, Other: b}, events[0])
	assert.Equal(t, ecs.CollisionEvent{Entity: c, Kind: ecs.CollisionEventHitHazard, Tile: physics.TileHazard}, events[1])
}

func TestPhysicsSystemSolidTagPushesOut(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	ps.World().SetGravity(cp.Vector{})
	wall := spawnBox(t, w, 100, 100, 32, 32, false)
	require.NoError(t, ecs.Add(w, wall, component.SolidTagComponent.Kind(), &component.SolidTag{}))
	mover := spawnBox(t, w, 90, 110, 16, 16, false)
	body, _ := ecs.Get(w, mover, component.PhysicsBodyComponent.Kind())
	body.Velocity = cp.Vector{X: 1}
	ps.SetTimeStep(1e-9)

	ps.Update(w)

	tr, _ := ecs.Get(w, mover, component.TransformComponent.Kind())
	assert.InDelta(t, 84, tr.X, 1e-6)
	assert.Zero(t, body.Velocity.X)
	assert.Empty(t, collisionEvents(w))
}

func TestPhysicsSystemLevelBounds(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 320, Height: 180}))

	ps.Update(w)

	bounds, ok := ps.World().WorldBounds()
	require.True(t, ok)
	assert.Equal(t, physics.NewRect(0, 0, 320, 180), bounds)
}

func TestPhysicsSystemDisabledBody(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(nil)
	e := spawnBox(t, w, 0, 0, 8, 8, true)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	body.Disabled = true

	ps.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Zero(t, tr.Y)
	assert.Zero(t, body.Velocity.Y)
}
