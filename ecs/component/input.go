package component

// Input stores per-frame action state for an entity.
type Input struct {
	Jump        bool
	JumpPressed bool
	Duck        bool
}

var InputComponent = NewComponent[Input]()
