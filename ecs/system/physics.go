package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/common"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/prefabs"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeCoin
	collisionTypeBouncer
	collisionTypeBox
	collisionTypeBall
	collisionTypeBoundary
)

// PhysicsSystem owns the Chipmunk space. It instantiates bodies for entities
// carrying a PhysicsBody config, removes bodies whose entities died, steps
// the space, and writes positions back to transforms. Collision handlers
// record events that are pushed to the world queue after the step.
type PhysicsSystem struct {
	space         *cp.Space
	worldSpec     *prefabs.WorldSpec
	gravity       cp.Vector
	handlersReady bool

	bodies        map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity

	// set for the duration of one Update so handlers can resolve entities
	world   *ecs.World
	pending []ecs.CollisionEvent
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem(worldSpec *prefabs.WorldSpec) *PhysicsSystem {
	ps := &PhysicsSystem{
		worldSpec:     worldSpec,
		bodies:        make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
	}
	ps.resetSpace()
	return ps
}

// Space returns the underlying Chipmunk space.
func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Gravity returns the current space gravity.
func (ps *PhysicsSystem) Gravity() cp.Vector {
	if ps == nil {
		return cp.Vector{}
	}
	return ps.gravity
}

// SetGravity updates the space gravity.
func (ps *PhysicsSystem) SetGravity(x, y float64) {
	if ps == nil || ps.space == nil {
		return
	}
	ps.gravity = cp.Vector{X: x, Y: y}
	ps.space.SetGravity(ps.gravity)
}

// Body returns the physics body for an entity, or nil.
func (ps *PhysicsSystem) Body(e ecs.Entity) *cp.Body {
	if ps == nil {
		return nil
	}
	info, ok := ps.bodies[e]
	if !ok {
		return nil
	}
	return info.body
}

// HasBody reports whether an entity currently owns a body in the space.
func (ps *PhysicsSystem) HasBody(e ecs.Entity) bool {
	return ps.Body(e) != nil
}

// Reset drops every body and rebuilds an empty space with the boundary
// shapes and default gravity. Entities must be destroyed separately.
func (ps *PhysicsSystem) Reset() {
	if ps == nil {
		return
	}
	ps.bodies = make(map[ecs.Entity]*bodyInfo)
	ps.shapeToEntity = make(map[*cp.Shape]ecs.Entity)
	ps.handlersReady = false
	ps.pending = nil
	ps.resetSpace()
}

func (ps *PhysicsSystem) resetSpace() {
	space := cp.NewSpace()
	space.Iterations = 20
	gx, gy := 0.0, float64(common.DefaultGravityY)
	if ps.worldSpec != nil {
		gx, gy = ps.worldSpec.GravityX, ps.worldSpec.GravityY
	}
	ps.gravity = cp.Vector{X: gx, Y: gy}
	space.SetGravity(ps.gravity)
	ps.space = space
	ps.buildBoundaries()
	ps.setupHandlers()
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}
	ps.world = w
	defer func() { ps.world = nil }()

	ps.consumeGravityRequests(w)
	ps.SyncBodies(w)
	ps.reapDead(w)

	ps.space.Step(common.TimeStep)

	ps.writeBackTransforms(w)
	ps.flushEvents(w)
}

func (ps *PhysicsSystem) consumeGravityRequests(w *ecs.World) {
	ecs.ForEach(w, component.GravityRequestComponent.Kind(), func(e ecs.Entity, req *component.GravityRequest) {
		ps.SetGravity(req.X, req.Y)
		ecs.DestroyEntity(w, e)
	})
}

// SyncBodies instantiates bodies and shapes for entities whose PhysicsBody
// config has not been realized yet. Exposed so snapshot loading can realize
// bodies before restoring velocities.
func (ps *PhysicsSystem) SyncBodies(w *ecs.World) {
	if ps == nil || w == nil || ps.space == nil {
		return
	}
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body != nil {
			return
		}
		ps.ensureBody(w, e, pb, t)
	})
}

func (ps *PhysicsSystem) ensureBody(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
	var body *cp.Body
	if pb.Static {
		body = cp.NewStaticBody()
	} else {
		var moment float64
		switch pb.ShapeKind {
		case component.ShapeBox:
			moment = cp.MomentForBox(pb.Mass, pb.Width, pb.Height)
		default:
			moment = cp.MomentForCircle(pb.Mass, 0, pb.Radius, cp.Vector{})
		}
		body = cp.NewBody(pb.Mass, moment)
	}
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)

	var shape *cp.Shape
	switch pb.ShapeKind {
	case component.ShapeBox:
		shape = cp.NewBox(body, pb.Width, pb.Height, 0)
	default:
		shape = cp.NewCircle(body, pb.Radius, cp.Vector{})
	}
	shape.SetFriction(pb.Friction)
	shape.SetElasticity(pb.Elasticity)
	shape.SetCollisionType(ps.collisionTypeFor(w, e))

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	pb.Body = body
	pb.Shape = shape
	ps.bodies[e] = &bodyInfo{body: body, shape: shape}
	ps.shapeToEntity[shape] = e
}

func (ps *PhysicsSystem) collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	kind, ok := ecs.Get(w, e, component.EntityKindComponent.Kind())
	if !ok {
		return collisionTypeBall
	}
	switch kind.Name {
	case component.KindPlayer:
		return collisionTypePlayer
	case component.KindCoin:
		return collisionTypeCoin
	case component.KindBouncer:
		return collisionTypeBouncer
	case component.KindBox:
		return collisionTypeBox
	default:
		return collisionTypeBall
	}
}

// reapDead removes bodies whose entities are gone, keeping the space and the
// registry in lockstep.
func (ps *PhysicsSystem) reapDead(w *ecs.World) {
	for e, info := range ps.bodies {
		if ecs.IsAlive(w, e) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.shapeToEntity, info.shape)
		delete(ps.bodies, e)
	}
}

func (ps *PhysicsSystem) writeBackTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Static {
			return
		}
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = pb.Body.Angle()
	})
}

func (ps *PhysicsSystem) flushEvents(w *ecs.World) {
	for _, evt := range ps.pending {
		w.Events().Push(evt)
	}
	ps.pending = ps.pending[:0]
}

// FindAt returns the most recently created entity whose shape contains the
// world point within radius. Ties break toward the last inserted.
func (ps *PhysicsSystem) FindAt(w *ecs.World, x, y, radius float64) (ecs.Entity, bool) {
	if ps == nil || w == nil {
		return 0, false
	}
	point := cp.Vector{X: x, Y: y}
	var found ecs.Entity
	ok := false
	for _, e := range ecs.Entities(w) {
		pb, has := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !has || pb.Shape == nil {
			continue
		}
		info := pb.Shape.PointQuery(point)
		if info.Distance <= radius {
			found = e
			ok = true
		}
	}
	return found, ok
}

func (ps *PhysicsSystem) buildBoundaries() {
	spec := prefabs.BoundarySpec{Extent: 5000, Thickness: 50, Friction: 0.9, Elasticity: 0.7}
	if ps.worldSpec != nil && ps.worldSpec.Boundary.Thickness > 0 {
		spec = ps.worldSpec.Boundary
	}

	w := float64(common.ScreenWidth)
	h := float64(common.ScreenHeight)
	ext := spec.Extent
	th := spec.Thickness

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: -ext, Y: h + th}, b: cp.Vector{X: w + ext, Y: h + th}},
		{a: cp.Vector{X: -th, Y: -ext}, b: cp.Vector{X: -th, Y: h + ext}},
		{a: cp.Vector{X: w + th, Y: -ext}, b: cp.Vector{X: w + th, Y: h + ext}},
		{a: cp.Vector{X: -ext, Y: -th}, b: cp.Vector{X: w + ext, Y: -th}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, th)
		shape.SetFriction(spec.Friction)
		shape.SetElasticity(spec.Elasticity)
		shape.SetCollisionType(collisionTypeBoundary)
		ps.space.AddShape(shape)
	}
}

func (ps *PhysicsSystem) setupHandlers() {
	if ps == nil || ps.handlersReady || ps.space == nil {
		return
	}

	coinHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeCoin)
	coinHandler.UserData = ps
	coinHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.world == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		player, okA := sys.shapeToEntity[shapeA]
		coin, okB := sys.shapeToEntity[shapeB]
		if !okA || !okB {
			return true
		}
		sys.pending = append(sys.pending, ecs.CollisionEvent{
			Kind: ecs.CollisionEventCoin,
			A:    player,
			B:    coin,
		})
		return true
	}

	bounceHandler := ps.space.NewWildcardCollisionHandler(collisionTypeBouncer)
	bounceHandler.UserData = ps
	bounceHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil || sys.world == nil {
			return true
		}
		bouncerShape, otherShape := arb.Shapes()
		bouncerEnt, okA := sys.shapeToEntity[bouncerShape]
		if okA && !ecs.Has(sys.world, bouncerEnt, component.BouncerComponent.Kind()) {
			bouncerShape, otherShape = otherShape, bouncerShape
			bouncerEnt, okA = sys.shapeToEntity[bouncerShape]
		}
		otherEnt, okB := sys.shapeToEntity[otherShape]
		if !okA {
			return true
		}
		bouncer, okC := ecs.Get(sys.world, bouncerEnt, component.BouncerComponent.Kind())
		if !okC {
			return true
		}
		other := otherShape.Body()
		if other == nil || other.GetType() != cp.BODY_DYNAMIC {
			return true
		}
		dir := other.Position().Sub(bouncerShape.Body().Position())
		if dir.Length() == 0 {
			return true
		}
		impulse := dir.Normalize().Mult(bouncer.Impulse * common.TimeStep)
		other.ApplyImpulseAtLocalPoint(impulse, cp.Vector{})
		if okB {
			sys.pending = append(sys.pending, ecs.CollisionEvent{
				Kind: ecs.CollisionEventBounce,
				A:    bouncerEnt,
				B:    otherEnt,
			})
		}
		log.Printf("physics system: bouncer %s pushed %s", bouncerEnt, otherEnt)
		return true
	}

	ps.handlersReady = true
}
