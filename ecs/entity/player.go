package entity

import (
	"fmt"

	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/levels"
	"github.com/milk9111/tilephys/physics"
)

func NewPlayerAt(w *ecs.World, spawn levels.Entity) (ecs.Entity, error) {
	return buildAt(w, "player.yaml", spawn)
}

func NewCrateAt(w *ecs.World, spawn levels.Entity) (ecs.Entity, error) {
	return buildAt(w, "crate.yaml", spawn)
}

func NewCoinAt(w *ecs.World, spawn levels.Entity) (ecs.Entity, error) {
	return buildAt(w, "coin.yaml", spawn)
}

// NewEnemyAt spawns an enemy. The behavior, min, max and speed props
// override the prefab's AI.
func NewEnemyAt(w *ecs.World, spawn levels.Entity) (ecs.Entity, error) {
	e, err := buildAt(w, "enemy.yaml", spawn)
	if err != nil {
		return 0, err
	}
	ai, ok := ecs.Get(w, e, component.AIComponent.Kind())
	if !ok {
		return e, nil
	}
	if b, ok := spawn.Props["behavior"].(string); ok {
		switch behavior := component.AIBehavior(b); behavior {
		case component.AIPatrol, component.AIUpDown, component.AIHop:
			ai.Behavior = behavior
		default:
			w.DestroyEntity(e)
			return 0, fmt.Errorf("enemy.yaml: unknown behavior %q", b)
		}
	}
	ai.Min = spawn.Float("min", ai.Min)
	ai.Max = spawn.Float("max", ai.Max)
	ai.Speed = spawn.Float("speed", ai.Speed)
	if ai.Behavior == component.AIUpDown {
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			body.UseGravity = false
		}
	}
	return e, nil
}

// buildAt builds a prefab at the spawn point. Size props override the
// prefab collider.
func buildAt(w *ecs.World, prefab string, spawn levels.Entity) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if c, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		resizeCollider(c, spawn)
	}
	if err := SetEntityTransform(w, e, spawn.X, spawn.Y); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("%s: override transform: %w", prefab, err)
	}
	return e, nil
}

func resizeCollider(c *physics.Collider, spawn levels.Entity) {
	switch c.Shape.Kind {
	case physics.ShapeCircle:
		c.Shape.Radius = spawn.Float("radius", c.Shape.Radius)
	default:
		c.Shape.Size.X = spawn.Float("width", c.Shape.Size.X)
		c.Shape.Size.Y = spawn.Float("height", c.Shape.Size.Y)
	}
}
