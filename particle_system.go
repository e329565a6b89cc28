package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// ParticleSystem ages particles and removes them once they expire or drift out
// of the world. Anything destroyed goes out with an explosion.
type ParticleSystem struct {
	G *Game

	entities []*Entity
	queued   int
}

func (ps *ParticleSystem) New(*ecs.World) {
	ps.G.Mailbox.Listen(DestroyedMessage{}.Type(), func(msg engo.Message) {
		dm, ok := msg.(DestroyedMessage)
		if !ok || dm.Entity.Body == nil {
			return
		}
		b := dm.Entity.Body
		ps.Emit(Explosion(b.Position, b.Velocity, b.Collider.Radius, ps.G.Config.Particles, ps.G.Rand)...)
	})
}

func (ps *ParticleSystem) Add(e *Entity) {
	if e.Particle != nil {
		ps.entities = append(ps.entities, e)
		if ps.queued > 0 {
			ps.queued--
		}
	}
}
func (ps *ParticleSystem) Remove(basic ecs.BasicEntity) {
	ps.entities = removeEntity(ps.entities, basic)
}
func (*ParticleSystem) Priority() int { return priorityParticle }
func (ps *ParticleSystem) Update(dt float32) {
	for _, e := range ps.entities {
		p := e.Particle
		alive := p.Advance(dt)
		e.SpaceComponent.Width = p.Size
		e.SpaceComponent.Height = p.Size
		e.SpaceComponent.SetCenter(engo.Point{X: p.Position.X(), Y: p.Position.Y()})
		if !alive || !ps.G.InBounds(p.Position) {
			ps.G.Despawn(e)
		}
	}
}

// Emit spawns particles while there is room under MaxParticles.
func (ps *ParticleSystem) Emit(builders ...Builder) int {
	max := ps.G.Config.Particles.MaxParticles
	n := 0
	for _, b := range builders {
		if max > 0 && len(ps.entities)+ps.queued >= max {
			break
		}
		ps.G.Spawn(NewEntity(b))
		ps.queued++
		n++
	}
	return n
}

func (ps *ParticleSystem) Count() int {
	return len(ps.entities)
}

// ExhaustSystem emits particles behind thrusting engines, against the thrust.
// A reversible engine running backwards exhausts out of its other side.
type ExhaustSystem struct {
	G *Game

	engines []*Entity
}

func (es *ExhaustSystem) Add(e *Entity) {
	if e.Engine != nil && e.Emitter != nil {
		es.engines = append(es.engines, e)
	}
}
func (es *ExhaustSystem) Remove(basic ecs.BasicEntity) {
	es.engines = removeEntity(es.engines, basic)
}
func (*ExhaustSystem) Priority() int { return priorityExhaust }
func (es *ExhaustSystem) Update(dt float32) {
	for _, e := range es.engines {
		throttle := e.Engine.Throttle.Value()
		dir := e.Engine.Direction
		if throttle < 0 {
			throttle, dir = -throttle, dir.Mul(-1)
		}
		n := e.Emitter.Emit(throttle, dt)
		if n == 0 || dir.Len() == 0 {
			continue
		}
		pos, angle, vel, ok := e.WorldTransform()
		if !ok {
			continue
		}
		back := Rotate(dir.Normalize(), angle).Mul(-1)
		es.G.Particles.Emit(e.Emitter.Burst(pos, back, vel, n, es.G.Rand)...)
	}
}

// FireSystem lights fire emitters on damaged ships. Flames trail away from the
// ship's heading.
type FireSystem struct {
	G *Game

	fires []*Entity
}

func (fs *FireSystem) Add(e *Entity) {
	if e.Fire != nil && e.Emitter != nil {
		fs.fires = append(fs.fires, e)
	}
}
func (fs *FireSystem) Remove(basic ecs.BasicEntity) {
	fs.fires = removeEntity(fs.fires, basic)
}
func (*FireSystem) Priority() int { return priorityExhaust - 1 }
func (fs *FireSystem) Update(dt float32) {
	for _, e := range fs.fires {
		root, _, _ := e.Root()
		if root == nil || root.Health == nil {
			continue
		}
		heat := e.Fire.Intensity(root.Health.Fraction())
		if root.Health.Dead {
			heat = 0
		}
		e.Emitter.Rate = heat * e.Fire.MaxRate
		e.Emitter.Spread = heat * e.Fire.MaxSpread

		n := e.Emitter.Emit(1, dt)
		if n == 0 {
			continue
		}
		pos, _, vel, _ := e.WorldTransform()
		back := heading(root.Body.Angle).Mul(-1)
		fs.G.Particles.Emit(e.Emitter.Burst(pos, back, vel, n, fs.G.Rand)...)
	}
}
