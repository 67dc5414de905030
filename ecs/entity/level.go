package entity

import (
	"fmt"
	"strings"

	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/levels"
)

// LoadLevelToWorld creates the bounds entity, one TileLayer entity per
// physics layer and the level's spawn entities.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) error {
	if world == nil || lvl == nil {
		return fmt.Errorf("load level: world and level are required")
	}

	bounds := lvl.Bounds()
	boundsEntity := world.CreateEntity()
	if err := ecs.Add(world, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		X:      bounds.Left(),
		Y:      bounds.Top(),
		Width:  bounds.Size.X,
		Height: bounds.Size.Y,
	}); err != nil {
		return err
	}

	grids, err := lvl.Grids()
	if err != nil {
		return err
	}
	for _, g := range grids {
		e := world.CreateEntity()
		if err := ecs.Add(world, e, component.TileLayerComponent.Kind(), &component.TileLayer{Grid: g}); err != nil {
			return err
		}
	}

	for _, ent := range lvl.Entities {
		var spawn func(*ecs.World, levels.Entity) (ecs.Entity, error)
		switch strings.ToLower(ent.Type) {
		case "player":
			spawn = NewPlayerAt
		case "crate":
			spawn = NewCrateAt
		case "coin":
			spawn = NewCoinAt
		case "enemy":
			spawn = NewEnemyAt
		default:
			world.Logger().Warn("load level: unknown entity type", "type", ent.Type)
			continue
		}
		if _, err := spawn(world, ent); err != nil {
			return fmt.Errorf("load level: spawn %s: %w", ent.Type, err)
		}
	}
	return nil
}
