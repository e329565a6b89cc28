package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Entity is the full component set an entity can carry. Builders fill in the
// parts they need; systems pick up entities whose components they handle.
type Entity struct {
	ecs.BasicEntity
	common.SpaceComponent

	Marks Marks
	Local LocalTransform

	Body       *BodyComponent
	Force      *ForceComponent
	Health     *HealthComponent
	Damage     *DamageComponent
	Energy     *EnergyComponent
	Engine     *EngineComponent
	Emitter    *EmitterComponent
	Weapon     *WeaponComponent
	Projectile *ProjectileComponent
	Asteroid   *AsteroidComponent
	Particle   *ParticleComponent
	Input      *PlayerInputComponent
	Steering   *SteeringComponent
	Fire       *FireComponent

	Parent   *Entity
	Children []*Entity

	despawned bool
}

// Builder mutates an entity's component set.
type Builder interface {
	Build(e *Entity)
}

type BuilderFunc func(e *Entity)

func (f BuilderFunc) Build(e *Entity) { f(e) }

// NewEntity runs builders in order on a fresh entity.
func NewEntity(builders ...Builder) *Entity {
	e := &Entity{BasicEntity: ecs.NewBasic()}
	Chain(builders...).Build(e)
	return e
}

// Chain runs builders in order. Nil builders are skipped.
func Chain(builders ...Builder) Builder {
	return BuilderFunc(func(e *Entity) {
		for _, b := range builders {
			if b != nil {
				b.Build(e)
			}
		}
	})
}

// Inject runs b and then lets fn adjust whatever b produced.
func Inject(b Builder, fn func(e *Entity)) Builder {
	return BuilderFunc(func(e *Entity) {
		if b != nil {
			b.Build(e)
		}
		fn(e)
	})
}

// WithChild builds a separate entity from b and attaches it as a child.
func WithChild(b Builder) Builder {
	return BuilderFunc(func(e *Entity) {
		e.AddChild(NewEntity(b))
	})
}

func WithMarks(m Marks) Builder {
	return BuilderFunc(func(e *Entity) {
		e.Marks |= m
	})
}

// At places an entity relative to its parent.
func At(offset mgl32.Vec2, angle float32) Builder {
	return BuilderFunc(func(e *Entity) {
		e.Local = LocalTransform{Offset: offset, Angle: angle}
	})
}

func (e *Entity) AddChild(c *Entity) {
	c.Parent = e
	e.Children = append(e.Children, c)
}

func (e *Entity) removeChild(c *Entity) {
	for i, child := range e.Children {
		if child == c {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

// Despawned reports whether the entity has been queued for removal.
func (e *Entity) Despawned() bool { return e.despawned }

// alive is false once the entity is despawned or its health has run out.
func (e *Entity) alive() bool {
	if e.despawned {
		return false
	}
	return e.Health == nil || !e.Health.Dead
}

// Root walks up to the nearest entity that owns a rigid body. It also returns
// e's origin and orientation (radians) in that body's frame.
func (e *Entity) Root() (*Entity, mgl32.Vec2, float32) {
	var offset mgl32.Vec2
	var angle float32
	for cur := e; cur != nil; cur = cur.Parent {
		if cur.Body != nil {
			return cur, offset, angle
		}
		a := mgl32.DegToRad(cur.Local.Angle)
		offset = cur.Local.Offset.Add(Rotate(offset, a))
		angle += a
	}
	return nil, offset, angle
}

// WorldTransform resolves e's position, heading (radians) and velocity through
// its body root. ok is false when there is no body above e.
func (e *Entity) WorldTransform() (pos mgl32.Vec2, angle float32, vel mgl32.Vec2, ok bool) {
	root, offset, local := e.Root()
	if root == nil {
		return pos, angle, vel, false
	}
	b := root.Body
	bodyAngle := mgl32.DegToRad(b.Angle)
	r := Rotate(offset, bodyAngle)
	pos = b.Position.Add(r)
	angle = bodyAngle + local

	// v + w x r
	w := mgl32.DegToRad(b.AngularVelocity)
	vel = b.Velocity.Add(mgl32.Vec2{-r.Y(), r.X()}.Mul(w))
	return pos, angle, vel, true
}

// each visits e and all its descendants, parents first.
func (e *Entity) each(fn func(*Entity)) {
	fn(e)
	for _, c := range e.Children {
		c.each(fn)
	}
}

func removeEntity(list []*Entity, basic ecs.BasicEntity) []*Entity {
	for i, e := range list {
		if e.ID() == basic.ID() {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
