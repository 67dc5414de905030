package component

type Player struct {
	MoveSpeed    float64
	JumpSpeed    float64
	ClimbSpeed   float64
	CoyoteFrames int
	Collected    int
}

var PlayerComponent = NewComponent[Player]()
