package system

import (
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/physics"
)

const (
	aiDefaultSpeed     = 60.0
	aiDefaultJumpX     = 120.0
	aiDefaultJumpY     = 300.0
	aiDefaultHopFrames = 120
)

// AISystem steers AI bodies from last tick's contacts. Run it before the
// PhysicsSystem.
type AISystem struct{}

func NewAISystem() *AISystem {
	return &AISystem{}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.AIComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		ai, _ := ecs.Get(w, e, component.AIComponent.Kind())
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		var contacts physics.Contacts
		if state, ok := ecs.Get(w, e, component.CollisionStateComponent.Kind()); ok {
			contacts = state.Contacts
		}

		switch ai.Behavior {
		case component.AIPatrol:
			ai.Forward = turn(ai, ai.Forward, t.X, contacts.Left, contacts.Right)
			body.Velocity.X = signed(ai.Forward, orDefault(ai.Speed, aiDefaultSpeed))
		case component.AIUpDown:
			body.UseGravity = false
			ai.Forward = turn(ai, ai.Forward, t.Y, contacts.Above, contacts.Below)
			body.Velocity.Y = signed(ai.Forward, orDefault(ai.Speed, aiDefaultSpeed))
		case component.AIHop:
			hop(ai, body, t, contacts)
		default:
			w.Logger().Warn("ai: unknown behavior", "entity", e, "behavior", ai.Behavior)
		}
	}
}

// hop stands still while grounded and jumps every HopFrames ticks.
func hop(ai *component.AI, body *component.PhysicsBody, t *component.Transform, c physics.Contacts) {
	if !c.Below {
		return
	}
	body.Velocity.X = 0
	ai.Wait++
	frames := ai.HopFrames
	if frames <= 0 {
		frames = aiDefaultHopFrames
	}
	if ai.Wait < frames {
		return
	}
	ai.Wait = 0
	ai.Forward = turn(ai, ai.Forward, t.X, c.Left, c.Right)
	body.Velocity.X = signed(ai.Forward, orDefault(ai.JumpX, aiDefaultJumpX))
	body.Velocity.Y = -orDefault(ai.JumpY, aiDefaultJumpY)
}

// turn returns the new direction on one axis. back and ahead are the
// contacts on the negative and positive side.
func turn(ai *component.AI, forward bool, pos float64, back, ahead bool) bool {
	ranged := ai.Max > ai.Min
	switch {
	case forward && (ahead || (ranged && pos >= ai.Max)):
		return false
	case !forward && (back || (ranged && pos <= ai.Min)):
		return true
	}
	return forward
}

func signed(forward bool, speed float64) float64 {
	if forward {
		return speed
	}
	return -speed
}
