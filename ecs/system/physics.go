package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/sim"
)

const (
	collisionTypeCommon cp.CollisionType = iota + 1
	collisionTypePlayer
	collisionTypeEnemy
	collisionTypeDespawner
	collisionTypeWall
)

// maxStep keeps a long frame from tunnelling bodies through the floor.
const maxStep = 1.0 / 20.0

// RayHit is the closest shape a ray cast touched.
type RayHit struct {
	Entity   ecs.Entity
	X, Y     float64
	Fraction float64
}

// RayCaster answers segment queries against the collision world.
type RayCaster interface {
	CastRay(x0, y0, x1, y1 float64, mask component.CollisionGroup) (RayHit, bool)
}

// PhysicsSystem mirrors physics bodies and collider children into a
// Chipmunk space, steps it, and reports collider contacts as records.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool

	bodies map[ecs.Entity]*bodyInfo
	shapes map[ecs.Entity]*shapeInfo
	owners map[*cp.Shape]ecs.Entity

	events ecs.EventQueue[ecs.CollisionEvent]
}

type bodyInfo struct {
	body   *cp.Body
	static bool
}

type shapeInfo struct {
	shape  *cp.Shape
	owner  ecs.Entity
	events bool
}

func NewPhysicsSystem(gravity float64, iterations int) *PhysicsSystem {
	space := cp.NewSpace()
	if iterations > 0 {
		space.Iterations = uint(iterations)
	}
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &PhysicsSystem{
		space:  space,
		bodies: make(map[ecs.Entity]*bodyInfo),
		shapes: make(map[ecs.Entity]*shapeInfo),
		owners: make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(ctx *sim.Context) {
	if ps == nil || ctx == nil {
		return
	}
	w := ctx.World
	ps.ensureHandlers()
	ps.Sync(w)

	dt := ctx.Delta().Seconds()
	if dt > maxStep {
		dt = maxStep
	}
	if dt > 0 {
		ps.space.Step(dt)
		ps.syncTransforms(w)
	}
	ctx.Collisions = append(ctx.Collisions, ps.events.Drain()...)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}
	for _, pair := range [][2]cp.CollisionType{
		{collisionTypeDespawner, collisionTypeEnemy},
		{collisionTypePlayer, collisionTypeEnemy},
	} {
		h := ps.space.NewCollisionHandler(pair[0], pair[1])
		h.UserData = ps
		h.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
			if sys, ok := userData.(*PhysicsSystem); ok {
				sys.record(ecs.CollisionStarted, arb)
			}
			return true
		}
		h.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
			if sys, ok := userData.(*PhysicsSystem); ok {
				sys.record(ecs.CollisionStopped, arb)
			}
		}
	}
	ps.handlersReady = true
}

func (ps *PhysicsSystem) record(kind ecs.CollisionEventKind, arb *cp.Arbiter) {
	a, b := arb.Shapes()
	ea, okA := ps.owners[a]
	eb, okB := ps.owners[b]
	if !okA || !okB {
		return
	}
	sa, sb := ps.shapes[ea], ps.shapes[eb]
	if sa == nil || sb == nil || (!sa.events && !sb.events) {
		return
	}
	ps.events.Push(ecs.CollisionEvent{Kind: kind, A: ea, B: eb})
}

// Sync creates bodies and shapes for new entities and removes those whose
// entities are gone.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	ps.cleanup(w)

	for _, e := range w.Query(component.PhysicsBodyComponent.Kind().ID(), component.TransformComponent.Kind().ID()) {
		if _, ok := ps.bodies[e]; ok {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		info := ps.createBody(bodyComp, transform)
		ps.bodies[e] = info
		bodyComp.Body = info.body
	}

	for _, child := range w.Query(component.ColliderChildComponent.Kind().ID()) {
		if _, ok := ps.shapes[child]; ok {
			continue
		}
		cc, _ := ecs.Get(w, child, component.ColliderChildComponent.Kind())
		owner := ecs.FromRaw(cc.Owner)
		body, ok := ps.bodies[owner]
		if !ok {
			continue
		}
		shape := ps.createShape(w, owner, body.body, cc.Descriptor)
		ps.space.AddShape(shape)
		ps.shapes[child] = &shapeInfo{
			shape:  shape,
			owner:  owner,
			events: ecs.Has(w, child, component.CollisionEventsComponent.Kind()),
		}
		ps.owners[shape] = child
	}
}

func (ps *PhysicsSystem) createBody(bodyComp *component.PhysicsBody, t *component.Transform) *bodyInfo {
	if bodyComp.Kind == component.BodyStatic {
		body := cp.NewStaticBody()
		body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		ps.space.AddBody(body)
		return &bodyInfo{body: body, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	moment := math.Inf(1)
	if !bodyComp.LockRotation {
		moment = cp.MomentForBox(mass, 32, 32)
	}
	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)
	ps.space.AddBody(body)
	return &bodyInfo{body: body}
}

func (ps *PhysicsSystem) createShape(w *ecs.World, owner ecs.Entity, body *cp.Body, d component.ColliderDescriptor) *cp.Shape {
	var shape *cp.Shape
	switch d.Shape {
	case component.ShapeCapsuleY:
		shape = cp.NewSegment(body,
			cp.Vector{X: d.OffsetX, Y: d.OffsetY - d.HalfHeight},
			cp.Vector{X: d.OffsetX, Y: d.OffsetY + d.HalfHeight},
			d.Radius)
	case component.ShapeBall:
		shape = cp.NewCircle(body, d.Radius, cp.Vector{X: d.OffsetX, Y: d.OffsetY})
	default:
		shape = cp.NewBox2(body, cp.BB{
			L: d.OffsetX - d.HalfWidth,
			B: d.OffsetY - d.HalfHeight,
			R: d.OffsetX + d.HalfWidth,
			T: d.OffsetY + d.HalfHeight,
		}, 0)
	}

	if bodyComp, ok := ecs.Get(w, owner, component.PhysicsBodyComponent.Kind()); ok {
		shape.SetFriction(bodyComp.Friction)
	}
	layer := component.CollisionLayer{}
	if l, ok := ecs.Get(w, owner, component.CollisionLayerComponent.Kind()); ok {
		layer = *l
	}
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: uint(layer.Categories()),
		Mask:       uint(layer.Mask()),
	})
	shape.SetCollisionType(collisionTypeOf(w, owner))
	shape.SetSensor(d.Sensor)
	return shape
}

func collisionTypeOf(w *ecs.World, owner ecs.Entity) cp.CollisionType {
	switch {
	case ecs.Has(w, owner, component.PlayerTagComponent.Kind()):
		return collisionTypePlayer
	case ecs.Has(w, owner, component.EnemyTagComponent.Kind()):
		return collisionTypeEnemy
	case ecs.Has(w, owner, component.DespawnerTagComponent.Kind()):
		return collisionTypeDespawner
	case ecs.Has(w, owner, component.GroundTagComponent.Kind()):
		return collisionTypeWall
	default:
		return collisionTypeCommon
	}
}

func (ps *PhysicsSystem) cleanup(w *ecs.World) {
	for child, info := range ps.shapes {
		if w.IsAlive(child) && w.IsAlive(info.owner) {
			continue
		}
		if ps.space.ContainsShape(info.shape) {
			ps.space.RemoveShape(info.shape)
		}
		delete(ps.owners, info.shape)
		delete(ps.shapes, child)
	}
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		var attached []*cp.Shape
		info.body.EachShape(func(s *cp.Shape) { attached = append(attached, s) })
		for _, s := range attached {
			if ps.space.ContainsShape(s) {
				ps.space.RemoveShape(s)
			}
			delete(ps.owners, s)
		}
		if ps.space.ContainsBody(info.body) {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.bodies {
		if info.static {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = info.body.Angle()
	}
}

// CastRay returns the first non-sensor shape in a group of mask crossed by
// the segment from (x0,y0) to (x1,y1).
func (ps *PhysicsSystem) CastRay(x0, y0, x1, y1 float64, mask component.CollisionGroup) (RayHit, bool) {
	if ps == nil || ps.space == nil {
		return RayHit{}, false
	}
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: uint(mask)}
	info := ps.space.SegmentQueryFirst(cp.Vector{X: x0, Y: y0}, cp.Vector{X: x1, Y: y1}, 0, filter)
	if info.Shape == nil {
		return RayHit{}, false
	}
	return RayHit{
		Entity:   ps.owners[info.Shape],
		X:        info.Point.X,
		Y:        info.Point.Y,
		Fraction: info.Alpha,
	}, true
}
