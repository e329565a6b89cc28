package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// ProjectileBuilder is a small fast sensor body that damages asteroids and
// vanishes on the first hit or when its lifetime runs out.
type ProjectileBuilder struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Radius   float32
	Damage   float32
	Lifetime float32
	Owner    uint64
}

func (pb ProjectileBuilder) Build(e *Entity) {
	angle := float32(0)
	if pb.Velocity.Len() > 0 {
		angle = mgl32.RadToDeg(float32(atan2(pb.Velocity.Y(), pb.Velocity.X())))
	}
	Chain(
		WithMarks(MarkProjectile|MarkWrap),
		DynamicBody(BodyComponent{
			Position: pb.Position,
			Angle:    angle,
			Velocity: pb.Velocity,
			Bullet:   true,
			Collider: Collider{
				Kind:     ColliderCircle,
				Radius:   pb.Radius,
				Density:  0.1,
				Sensor:   true,
				Category: CategoryProjectile,
				Mask:     CategoryAsteroid,
			},
		}),
		BuilderFunc(func(e *Entity) {
			e.Projectile = &ProjectileComponent{Lifetime: pb.Lifetime, Remaining: pb.Lifetime, Owner: pb.Owner}
			e.Damage = &DamageComponent{Amount: pb.Damage, Targets: MarkAsteroid, DespawnOnHit: true}
			e.SpaceComponent.Width = pb.Radius * 2
			e.SpaceComponent.Height = pb.Radius * 2
		}),
	).Build(e)
}

// ProjectileSystem expires projectiles.
type ProjectileSystem struct {
	G *Game

	entities []*Entity
}

func (ps *ProjectileSystem) Add(e *Entity) {
	if e.Projectile != nil {
		ps.entities = append(ps.entities, e)
	}
}
func (ps *ProjectileSystem) Remove(basic ecs.BasicEntity) {
	ps.entities = removeEntity(ps.entities, basic)
}
func (*ProjectileSystem) Priority() int { return priorityProjectile }
func (ps *ProjectileSystem) Update(dt float32) {
	for _, e := range ps.entities {
		e.Projectile.Remaining -= dt
		if e.Projectile.Remaining <= 0 {
			e.Projectile.Remaining = 0
			ps.G.Despawn(e)
		}
	}
}
