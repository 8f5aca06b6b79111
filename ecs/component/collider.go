package component

import (
	"errors"
	"fmt"
)

var ErrInvalidCollider = errors.New("collider: invalid descriptor")

type ColliderShape string

const (
	// ShapeCapsuleY is a vertical capsule. HalfHeight is half the length of
	// the inner segment, Radius the cap radius.
	ShapeCapsuleY ColliderShape = "capsule_y"
	ShapeCuboid   ColliderShape = "cuboid"
	ShapeBall     ColliderShape = "ball"
)

// ColliderDescriptor is the data-defined shape of one child collider.
type ColliderDescriptor struct {
	Shape      ColliderShape
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
	OffsetX    float64
	OffsetY    float64
	Sensor     bool
}

func (d ColliderDescriptor) Validate() error {
	switch d.Shape {
	case ShapeCapsuleY:
		if d.Radius <= 0 || d.HalfHeight < 0 {
			return fmt.Errorf("%s radius %.2f half height %.2f: %w", d.Shape, d.Radius, d.HalfHeight, ErrInvalidCollider)
		}
	case ShapeCuboid:
		if d.HalfWidth <= 0 || d.HalfHeight <= 0 {
			return fmt.Errorf("%s %.2fx%.2f: %w", d.Shape, d.HalfWidth, d.HalfHeight, ErrInvalidCollider)
		}
	case ShapeBall:
		if d.Radius <= 0 {
			return fmt.Errorf("%s radius %.2f: %w", d.Shape, d.Radius, ErrInvalidCollider)
		}
	default:
		return fmt.Errorf("shape %q: %w", d.Shape, ErrInvalidCollider)
	}
	return nil
}

// ColliderChild marks an entity whose only job is to carry one collision
// shape for its Owner. Owner is the raw ecs.Entity handle of the parent.
type ColliderChild struct {
	Owner      uint64
	Descriptor ColliderDescriptor
}

var ColliderChildComponent = NewComponent[ColliderChild]()

// Children lists raw entity handles despawned together with the parent.
type Children struct {
	Entities []uint64
}

func (c *Children) Add(raw uint64) {
	c.Entities = append(c.Entities, raw)
}

var ChildrenComponent = NewComponent[Children]()

// CollisionEvents opts a collider child into start/stop reporting.
type CollisionEvents struct{}

var CollisionEventsComponent = NewComponent[CollisionEvents]()

// Bottom returns how far below the owner's origin the shape reaches, in
// screen-down coordinates.
func (d ColliderDescriptor) Bottom() float64 {
	switch d.Shape {
	case ShapeCapsuleY:
		return d.OffsetY + d.HalfHeight + d.Radius
	case ShapeCuboid:
		return d.OffsetY + d.HalfHeight
	case ShapeBall:
		return d.OffsetY + d.Radius
	default:
		return d.OffsetY
	}
}

// LowestBottom returns the largest Bottom over descs, or zero.
func LowestBottom(descs []ColliderDescriptor) float64 {
	bottom := 0.0
	for _, d := range descs {
		if b := d.Bottom(); b > bottom {
			bottom = b
		}
	}
	return bottom
}
