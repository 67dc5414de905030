package system

import (
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
)

const (
	playerMoveSpeed  = 160.0
	playerJumpSpeed  = 360.0
	playerClimbSpeed = 90.0
)

// PlayerControllerSystem turns Input into body velocity: walking, jumping
// while grounded and climbing ladders with gravity switched off.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}
		state, ok := ecs.Get(w, e, component.CollisionStateComponent.Kind())
		if !ok {
			state = &component.CollisionState{}
		}

		move, jump, climb := playerMoveSpeed, playerJumpSpeed, playerClimbSpeed
		if params, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
			move = orDefault(params.MoveSpeed, move)
			jump = orDefault(params.JumpSpeed, jump)
			climb = orDefault(params.ClimbSpeed, climb)
		}

		vel := bodyComp.Velocity
		vel.X = input.MoveX * move

		c := state.Contacts
		switch {
		case input.MoveY != 0 && (c.OnLadder || (c.OnTopOfLadder && input.MoveY > 0)):
			// Grab the ladder; stepping down from its top passes through.
			bodyComp.UseGravity = false
			vel.Y = input.MoveY * climb
		case c.OnLadder && !bodyComp.UseGravity:
			vel.Y = 0
		default:
			bodyComp.UseGravity = true
		}

		if input.JumpPressed && state.Grounded() {
			vel.Y = -jump
			bodyComp.UseGravity = true
			state.GroundGrace = 0
		}

		bodyComp.Velocity = vel
	}
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
