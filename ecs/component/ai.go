package component

// AIBehavior names a movement pattern driven by collision contacts.
type AIBehavior string

const (
	// AIPatrol walks left and right, turning at walls or the range ends.
	AIPatrol AIBehavior = "patrol"
	// AIUpDown flies up and down with gravity off, turning at ceilings,
	// floors or the range ends.
	AIUpDown AIBehavior = "updown"
	// AIHop waits on the ground, then jumps sideways, turning like patrol.
	AIHop AIBehavior = "hop"
)

type AI struct {
	Behavior AIBehavior
	// Min and Max bound the patrol axis (x, or y for AIUpDown). The range is
	// ignored unless Max > Min.
	Min, Max float64
	Speed    float64
	// JumpX and JumpY are the hop launch speeds; HopFrames is the wait on
	// the ground between hops.
	JumpX, JumpY float64
	HopFrames    int

	// Forward is right for walkers and down for AIUpDown.
	Forward bool
	Wait    int
}

var AIComponent = NewComponent[AI]()
