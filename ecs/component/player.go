package component

type Player struct {
	JumpSpeed   float64
	ProbeLength float64
	// FootOffset is the distance from the body center to the bottom of
	// the collider, where the ground probe starts.
	FootOffset float64
	Grounded   bool
	Ducking    bool
}

var PlayerComponent = NewComponent[Player]()
