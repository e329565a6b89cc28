package spacerocks

import (
	"github.com/ByteArena/box2d"
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

type ColliderKind int

const (
	ColliderCircle ColliderKind = iota
	ColliderPolygon
)

// Collision categories.
const (
	CategoryShip       uint16 = 1 << 0
	CategoryAsteroid   uint16 = 1 << 1
	CategoryProjectile uint16 = 1 << 2
)

type Collider struct {
	Kind   ColliderKind
	Radius float32
	Points []mgl32.Vec2

	Density     float32
	Friction    float32
	Restitution float32
	Sensor      bool

	Category uint16
	Mask     uint16
}

// BodyComponent describes a rigid body. Before spawn it is the initial state;
// afterwards the physics system mirrors the simulated state back into it every
// step. Positions and velocities are in world units, angles in degrees.
type BodyComponent struct {
	Position        mgl32.Vec2
	Angle           float32
	Velocity        mgl32.Vec2
	AngularVelocity float32

	LinearDamping  float32
	AngularDamping float32
	Bullet         bool
	// MaxSpeed caps linear speed when non-zero.
	MaxSpeed float32

	Collider Collider

	Body *box2d.B2Body
}

// DynamicBody inserts the rigid-body bundle: body, collider and force accumulator.
func DynamicBody(body BodyComponent) Builder {
	return BuilderFunc(func(e *Entity) {
		b := body
		e.Body = &b
		e.Force = &ForceComponent{}
		e.SpaceComponent.SetCenter(engo.Point{X: b.Position.X(), Y: b.Position.Y()})
		e.SpaceComponent.Rotation = b.Angle
	})
}

type contactQueue struct {
	pairs [][2]uint64
}

func (q *contactQueue) BeginContact(contact box2d.B2ContactInterface) {
	a, okA := contact.GetFixtureA().GetBody().GetUserData().(uint64)
	b, okB := contact.GetFixtureB().GetBody().GetUserData().(uint64)
	if okA && okB {
		q.pairs = append(q.pairs, [2]uint64{a, b})
	}
}
func (q *contactQueue) EndContact(box2d.B2ContactInterface)                         {}
func (q *contactQueue) PreSolve(box2d.B2ContactInterface, box2d.B2Manifold)         {}
func (q *contactQueue) PostSolve(box2d.B2ContactInterface, *box2d.B2ContactImpulse) {}

// PhysicsSystem owns the box2d world. Box2d works in meters, everything else in
// world units; PixelsPerMeter converts between them.
type PhysicsSystem struct {
	Mailbox *engo.MessageManager

	PixelsPerMeter     float32
	VelocityIterations int
	PositionIterations int

	world    *box2d.B2World
	contacts contactQueue
	entities []*Entity
	byID     map[uint64]*Entity
}

func (ps *PhysicsSystem) New(*ecs.World) {
	ps.init()
	log.Debug("Physics world created")
}

func (ps *PhysicsSystem) init() {
	if ps.world != nil {
		return
	}
	if ps.PixelsPerMeter <= 0 {
		ps.PixelsPerMeter = 32
	}
	if ps.VelocityIterations <= 0 {
		ps.VelocityIterations = 8
	}
	if ps.PositionIterations <= 0 {
		ps.PositionIterations = 3
	}
	w := box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))
	ps.world = &w
	ps.world.SetContactListener(&ps.contacts)
	ps.byID = map[uint64]*Entity{}
}

func (*PhysicsSystem) Priority() int { return priorityPhysics }

func (ps *PhysicsSystem) toMeters(v mgl32.Vec2) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(float64(v.X()/ps.PixelsPerMeter), float64(v.Y()/ps.PixelsPerMeter))
}

func (ps *PhysicsSystem) fromMeters(v box2d.B2Vec2) mgl32.Vec2 {
	return mgl32.Vec2{float32(v.X) * ps.PixelsPerMeter, float32(v.Y) * ps.PixelsPerMeter}
}

func (ps *PhysicsSystem) shape(c Collider) box2d.B2ShapeInterface {
	switch c.Kind {
	case ColliderPolygon:
		verts := make([]box2d.B2Vec2, 0, len(c.Points))
		for _, p := range c.Points {
			verts = append(verts, ps.toMeters(p))
		}
		poly := box2d.MakeB2PolygonShape()
		poly.Set(verts, len(verts))
		return &poly
	default:
		circle := box2d.MakeB2CircleShape()
		circle.M_radius = float64(c.Radius / ps.PixelsPerMeter)
		return &circle
	}
}

// Add creates the body for any entity that carries a BodyComponent.
func (ps *PhysicsSystem) Add(e *Entity) {
	if e.Body == nil {
		return
	}
	ps.init()
	b := e.Body

	def := box2d.MakeB2BodyDef()
	def.Type = box2d.B2BodyType.B2_dynamicBody
	def.Position = ps.toMeters(b.Position)
	def.Angle = float64(mgl32.DegToRad(b.Angle))
	def.LinearVelocity = ps.toMeters(b.Velocity)
	def.AngularVelocity = float64(mgl32.DegToRad(b.AngularVelocity))
	def.LinearDamping = float64(b.LinearDamping)
	def.AngularDamping = float64(b.AngularDamping)
	def.Bullet = b.Bullet
	def.AllowSleep = false
	def.UserData = e.ID()

	fd := box2d.MakeB2FixtureDef()
	fd.Shape = ps.shape(b.Collider)
	fd.Density = float64(b.Collider.Density)
	fd.Friction = float64(b.Collider.Friction)
	fd.Restitution = float64(b.Collider.Restitution)
	fd.IsSensor = b.Collider.Sensor
	if b.Collider.Category != 0 {
		fd.Filter.CategoryBits = b.Collider.Category
		fd.Filter.MaskBits = b.Collider.Mask
	}

	b.Body = ps.world.CreateBody(&def)
	b.Body.CreateFixtureFromDef(&fd)

	ps.entities = append(ps.entities, e)
	ps.byID[e.ID()] = e
}

// Remove is called when an entity is removed from the world so the body goes with it.
func (ps *PhysicsSystem) Remove(basic ecs.BasicEntity) {
	e, ok := ps.byID[basic.ID()]
	if !ok {
		return
	}
	delete(ps.byID, basic.ID())
	ps.entities = removeEntity(ps.entities, basic)
	if e.Body.Body != nil {
		ps.world.DestroyBody(e.Body.Body)
		e.Body.Body = nil
	}
}

// Teleport moves a body without touching its velocity.
func (ps *PhysicsSystem) Teleport(e *Entity, pos mgl32.Vec2) {
	if e.Body == nil {
		return
	}
	e.Body.Position = pos
	if e.Body.Body != nil {
		e.Body.Body.SetTransform(ps.toMeters(pos), e.Body.Body.GetAngle())
	}
	e.SpaceComponent.SetCenter(engo.Point{X: pos.X(), Y: pos.Y()})
}

// Place puts a body at pos facing angle (degrees) and stops it dead.
func (ps *PhysicsSystem) Place(e *Entity, pos mgl32.Vec2, angle float32) {
	if e.Body == nil {
		return
	}
	b := e.Body
	b.Position, b.Angle = pos, angle
	b.Velocity, b.AngularVelocity = mgl32.Vec2{}, 0
	if b.Body != nil {
		b.Body.SetTransform(ps.toMeters(pos), float64(mgl32.DegToRad(angle)))
		b.Body.SetLinearVelocity(box2d.MakeB2Vec2(0, 0))
		b.Body.SetAngularVelocity(0)
	}
	e.SpaceComponent.SetCenter(engo.Point{X: pos.X(), Y: pos.Y()})
	e.SpaceComponent.Rotation = angle
}

func (ps *PhysicsSystem) SetVelocity(e *Entity, vel mgl32.Vec2) {
	if e.Body == nil {
		return
	}
	e.Body.Velocity = vel
	if e.Body.Body != nil {
		e.Body.Body.SetLinearVelocity(ps.toMeters(vel))
	}
}

// BodyCount is the number of bodies in the box2d world.
func (ps *PhysicsSystem) BodyCount() int {
	if ps.world == nil {
		return 0
	}
	return ps.world.GetBodyCount()
}

// Update applies accumulated forces, steps the world, mirrors body state back
// into components and then reports the contacts that began during the step.
func (ps *PhysicsSystem) Update(dt float32) {
	ps.init()
	if dt <= 0 {
		return
	}

	for _, e := range ps.entities {
		body := e.Body.Body
		if e.Force == nil || body == nil {
			continue
		}
		if f := e.Force.Force; f.X() != 0 || f.Y() != 0 {
			body.ApplyForceToCenter(box2d.MakeB2Vec2(float64(f.X()/ps.PixelsPerMeter), float64(f.Y()/ps.PixelsPerMeter)), true)
		}
		if e.Force.Torque != 0 {
			body.ApplyTorque(float64(e.Force.Torque/(ps.PixelsPerMeter*ps.PixelsPerMeter)), true)
		}
	}

	ps.world.Step(float64(dt), ps.VelocityIterations, ps.PositionIterations)

	for _, e := range ps.entities {
		b := e.Body
		if b.Body == nil {
			continue
		}
		vel := ps.fromMeters(b.Body.GetLinearVelocity())
		if b.MaxSpeed > 0 && vel.Len() > b.MaxSpeed {
			vel = vel.Normalize().Mul(b.MaxSpeed)
			b.Body.SetLinearVelocity(ps.toMeters(vel))
		}
		b.Velocity = vel
		b.Position = ps.fromMeters(b.Body.GetPosition())
		b.Angle = mgl32.RadToDeg(float32(b.Body.GetAngle()))
		b.AngularVelocity = mgl32.RadToDeg(float32(b.Body.GetAngularVelocity()))

		e.SpaceComponent.SetCenter(engo.Point{X: b.Position.X(), Y: b.Position.Y()})
		e.SpaceComponent.Rotation = b.Angle
	}

	pairs := ps.contacts.pairs
	ps.contacts.pairs = nil
	for _, p := range pairs {
		a, okA := ps.byID[p[0]]
		b, okB := ps.byID[p[1]]
		if !okA || !okB {
			continue
		}
		if ps.Mailbox != nil {
			ps.Mailbox.Dispatch(CollisionMessage{A: a, B: b})
		}
	}
}
