package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/physics"
	"github.com/milk9111/tilephys/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":      addPlayerTag,
	"solid_tag":       addSolidTag,
	"pickup_tag":      addPickupTag,
	"enemy_tag":       addEnemyTag,
	"ai":              addAI,
	"player":          addPlayer,
	"input":           addInput,
	"collision_state": addCollisionState,
	"transform":       addTransform,
	"collider":        addCollider,
	"physics_body":    addPhysicsBody,
}

// Collider offsets depend on the transform scale, so transform goes first.
var componentBuildOrder = []string{
	"player_tag",
	"solid_tag",
	"pickup_tag",
	"enemy_tag",
	"player",
	"ai",
	"input",
	"collision_state",
	"transform",
	"collider",
	"physics_body",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

// BuildEntityFromSpec creates an entity from an already decoded prefab. The
// entity is destroyed again when any component fails to build.
func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := w.CreateEntity()
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	if len(remaining) > 0 {
		w.DestroyEntity(e)
		unknown := make([]string, 0, len(remaining))
		for name := range remaining {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, unknown)
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityTransform moves e and refreshes its collider offset for the
// current scale.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		c.UpdateOffset(transformScale(t))
	}
	return nil
}

func transformScale(t *component.Transform) cp.Vector {
	return cp.Vector{X: t.ScaleX, Y: t.ScaleY}
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addSolidTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
}

func addPickupTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PickupTagComponent.Kind(), &component.PickupTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

type aiSpec = prefabs.AIComponentSpec

func addAI(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[aiSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ai spec: %w", err)
	}
	behavior := component.AIBehavior(strings.ToLower(spec.Behavior))
	switch behavior {
	case component.AIPatrol, component.AIUpDown, component.AIHop:
	default:
		return fmt.Errorf("ai: unknown behavior %q", spec.Behavior)
	}
	return ecs.Add(w, e, component.AIComponent.Kind(), &component.AI{
		Behavior:  behavior,
		Min:       spec.Min,
		Max:       spec.Max,
		Speed:     spec.Speed,
		JumpX:     spec.JumpX,
		JumpY:     spec.JumpY,
		HopFrames: spec.HopFrames,
		Forward:   spec.Forward,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addCollisionState(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CollisionStateComponent.Kind(), &component.CollisionState{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    spec.MoveSpeed,
		JumpSpeed:    spec.JumpSpeed,
		ClimbSpeed:   spec.ClimbSpeed,
		CoyoteFrames: spec.CoyoteFrames,
	})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		ScaleX: spec.ScaleX,
		ScaleY: spec.ScaleY,
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}

	var shape physics.Shape
	switch spec.Shape {
	case "", "box":
		shape = physics.NewBox(spec.Width, spec.Height)
	case "circle":
		shape = physics.NewCircle(spec.Radius)
	default:
		return fmt.Errorf("unknown collider shape %q", spec.Shape)
	}

	align := physics.AlignTopLeft
	if spec.Align != "" {
		var ok bool
		if align, ok = physics.ParseAlignment(spec.Align); !ok {
			return fmt.Errorf("unknown collider alignment %q", spec.Align)
		}
	}

	c := physics.NewCollider(shape, align)
	c.IsTrigger = spec.Trigger
	c.Offset = cp.Vector{X: spec.OffsetX, Y: spec.OffsetY}
	scale := cp.Vector{X: 1, Y: 1}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		scale = transformScale(t)
	}
	c.UpdateOffset(scale)
	return ecs.Add(w, e, component.ColliderComponent.Kind(), c)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Mass:       spec.Mass,
		UseGravity: spec.Gravity,
		Disabled:   spec.Disabled,
	})
}
