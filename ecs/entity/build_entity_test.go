package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/levels"
	"github.com/milk9111/tilephys/physics"
	"github.com/milk9111/tilephys/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEntityPlayerPrefab(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "player.yaml")
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.CollisionStateComponent.Kind()))

	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Player{MoveSpeed: 160, JumpSpeed: 360, ClimbSpeed: 90, CoyoteFrames: 6}, *p)

	c, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, physics.ShapeBox, c.Shape.Kind)
	assert.Equal(t, cp.Vector{X: 12, Y: 16}, c.Shape.AABBSize())
	assert.Equal(t, physics.AlignTopLeft, c.Alignment)

	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	assert.True(t, body.UseGravity)
	assert.Equal(t, 1.0, body.Mass)
}

func TestBuildEntityFromSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    prefabs.EntityBuildSpec
		wantErr string
	}{
		{name: "no components", spec: prefabs.EntityBuildSpec{Name: "empty"}, wantErr: "does not define components"},
		{name: "unknown component", spec: prefabs.EntityBuildSpec{Components: map[string]any{"sprite": map[string]any{}, "transform": nil}}, wantErr: "[sprite]"},
		{name: "bad shape", spec: prefabs.EntityBuildSpec{Components: map[string]any{"collider": map[string]any{"shape": "hexagon"}}}, wantErr: "unknown collider shape"},
		{name: "bad alignment", spec: prefabs.EntityBuildSpec{Components: map[string]any{"collider": map[string]any{"width": 4, "height": 4, "align": "middle"}}}, wantErr: "unknown collider alignment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := BuildEntityFromSpec(w, tt.spec, tt.name)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Empty(t, w.Entities(), "failed builds leave no entity behind")
		})
	}
}

func TestBuildEntityColliderScaleAndOffset(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntityBuildSpec{Components: map[string]any{
		"collider":     map[string]any{"shape": "box", "width": 10, "height": 20, "align": "bottom_center", "trigger": true},
		"transform":    map[string]any{"x": 5, "y": 6, "scale_x": 2, "scale_y": 1},
		"physics_body": map[string]any{"mass": 0},
	}}

	e, err := BuildEntityFromSpec(w, spec, "inline")
	require.NoError(t, err)

	c, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	assert.True(t, c.IsTrigger)
	assert.Equal(t, cp.Vector{X: -10, Y: -20}, c.Offset)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, component.Transform{X: 5, Y: 6, ScaleX: 2, ScaleY: 1}, *tr)

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	assert.Equal(t, 1.0, body.Mass)
	assert.False(t, body.UseGravity)
}

func TestSetEntityTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	c := physics.NewCollider(physics.NewCircle(4), physics.AlignCenter)
	require.NoError(t, ecs.Add(w, e, component.ColliderComponent.Kind(), c))

	require.NoError(t, SetEntityTransform(w, e, 30, 40))

	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.Transform{X: 30, Y: 40, ScaleX: 1, ScaleY: 1}, *tr)
	assert.Equal(t, cp.Vector{X: -4, Y: -4}, c.Offset)
}

func TestSpawnersApplyProps(t *testing.T) {
	w := ecs.NewWorld()

	crate, err := NewCrateAt(w, levels.Entity{Type: "crate", X: 10, Y: 20, Props: map[string]any{"width": 24.0, "height": 8.0}})
	require.NoError(t, err)
	assert.True(t, ecs.Has(w, crate, component.SolidTagComponent.Kind()))
	c, _ := ecs.Get(w, crate, component.ColliderComponent.Kind())
	assert.Equal(t, cp.Vector{X: 24, Y: 8}, c.Shape.AABBSize())
	tr, _ := ecs.Get(w, crate, component.TransformComponent.Kind())
	assert.Equal(t, 10.0, tr.X)
	assert.Equal(t, 20.0, tr.Y)

	coin, err := NewCoinAt(w, levels.Entity{Type: "coin", X: 50, Y: 60, Props: map[string]any{"radius": 8.0}})
	require.NoError(t, err)
	assert.True(t, ecs.Has(w, coin, component.PickupTagComponent.Kind()))
	c, _ = ecs.Get(w, coin, component.ColliderComponent.Kind())
	assert.Equal(t, 8.0, c.Shape.Radius)
	assert.Equal(t, cp.Vector{X: -8, Y: -8}, c.Offset)
}

func TestNewEnemyAt(t *testing.T) {
	tests := []struct {
		name        string
		props       map[string]any
		want        component.AI
		wantGravity bool
		wantErr     bool
	}{
		{
			name:        "prefab patrol",
			want:        component.AI{Behavior: component.AIPatrol, Speed: 60, Forward: true},
			wantGravity: true,
		},
		{
			name:        "patrol range from props",
			props:       map[string]any{"min": 32.0, "max": 160.0},
			want:        component.AI{Behavior: component.AIPatrol, Min: 32, Max: 160, Speed: 60, Forward: true},
			wantGravity: true,
		},
		{
			name:  "flyer turns gravity off",
			props: map[string]any{"behavior": "updown", "speed": 40.0},
			want:  component.AI{Behavior: component.AIUpDown, Speed: 40, Forward: true},
		},
		{
			name:    "unknown behavior",
			props:   map[string]any{"behavior": "teleport"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := NewEnemyAt(w, levels.Entity{Type: "enemy", X: 96, Y: 322, Props: tt.props})
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, w.Entities(), "failed spawns are destroyed")
				return
			}
			require.NoError(t, err)
			assert.True(t, ecs.Has(w, e, component.EnemyTagComponent.Kind()))
			ai, ok := ecs.Get(w, e, component.AIComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, tt.want, *ai)
			body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			assert.Equal(t, tt.wantGravity, body.UseGravity)
		})
	}
}

func TestBuildEntityRejectsUnknownAIBehavior(t *testing.T) {
	w := ecs.NewWorld()
	spec := prefabs.EntityBuildSpec{Name: "bad", Components: map[string]any{
		"ai": map[string]any{"behavior": "orbit"},
	}}

	_, err := BuildEntityFromSpec(w, spec, "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orbit")
	assert.Empty(t, w.Entities())
}
