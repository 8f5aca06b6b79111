package component

import "github.com/jakecoffman/cp"

type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyStatic
)

// PhysicsBody stores Chipmunk2D runtime data for an entity whose collider
// children provide the shapes. Body is filled in by the physics system.
type PhysicsBody struct {
	Body         *cp.Body
	Kind         BodyKind
	Mass         float64
	Friction     float64
	LockRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
