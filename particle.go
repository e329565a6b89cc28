package spacerocks

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
)

// ParticleComponent is a short-lived cosmetic point. Size and colour are
// interpolated linearly from start to end over the lifetime.
type ParticleComponent struct {
	Lifetime float32
	Elapsed  float32

	StartSize  float32
	EndSize    float32
	StartColor color.RGBA
	EndColor   color.RGBA

	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Damping  float32

	Size  float32
	Color color.RGBA
}

// Progress is elapsed/lifetime clamped to [0,1].
func (p *ParticleComponent) Progress() float32 {
	if p.Lifetime <= 0 {
		return 1
	}
	return mgl32.Clamp(p.Elapsed/p.Lifetime, 0, 1)
}

// Advance moves the particle on by dt and reports whether it is still alive.
func (p *ParticleComponent) Advance(dt float32) bool {
	p.Elapsed += dt
	t := p.Progress()
	p.Size = lerp(p.StartSize, p.EndSize, t)
	p.Color = lerpColor(p.StartColor, p.EndColor, t)

	if p.Damping > 0 {
		p.Velocity = p.Velocity.Mul(float32(math.Exp(float64(-p.Damping * dt))))
	}
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	return t < 1
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerpColor(a, b color.RGBA, t float32) color.RGBA {
	ch := func(x, y uint8) uint8 {
		return uint8(mgl32.Clamp(lerp(float32(x), float32(y), t)+0.5, 0, 255))
	}
	return color.RGBA{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B), A: ch(a.A, b.A)}
}

type ParticleBuilder struct {
	Position   mgl32.Vec2
	Velocity   mgl32.Vec2
	Lifetime   float32
	StartSize  float32
	EndSize    float32
	StartColor color.RGBA
	EndColor   color.RGBA
	Damping    float32
}

func (pb ParticleBuilder) Build(e *Entity) {
	e.Marks |= MarkParticle
	e.Particle = &ParticleComponent{
		Lifetime:   pb.Lifetime,
		StartSize:  pb.StartSize,
		EndSize:    pb.EndSize,
		StartColor: pb.StartColor,
		EndColor:   pb.EndColor,
		Position:   pb.Position,
		Velocity:   pb.Velocity,
		Damping:    pb.Damping,
		Size:       pb.StartSize,
		Color:      pb.StartColor,
	}
	e.SpaceComponent.SetCenter(engo.Point{X: pb.Position.X(), Y: pb.Position.Y()})
}

// Explosion is a burst of debris scaled by the size of what blew up.
func Explosion(pos, vel mgl32.Vec2, radius float32, cfg ParticleConfig, rng *rand.Rand) []Builder {
	n := int(cfg.ExplosionPerRadius * radius)
	if n < 1 {
		n = 1
	}
	if cfg.ExplosionMax > 0 && n > cfg.ExplosionMax {
		n = cfg.ExplosionMax
	}

	out := make([]Builder, n)
	for i := range out {
		a := rng.Float64() * 2 * math.Pi
		dir := mgl32.Vec2{float32(math.Cos(a)), float32(math.Sin(a))}
		speed := randRange(rng, 0.3, 1) * cfg.ExplosionSpeed
		out[i] = ParticleBuilder{
			Position:   pos.Add(dir.Mul(rng.Float32() * radius / 2)),
			Velocity:   vel.Add(dir.Mul(speed)),
			Lifetime:   randRange(rng, 0.5, 1) * cfg.Lifetime,
			StartSize:  cfg.StartSize,
			StartColor: cfg.StartColor.RGBA(),
			EndColor:   cfg.EndColor.RGBA(),
			Damping:    cfg.Damping,
		}
	}
	return out
}

// EmitterComponent spits particles out at Rate per second, scaled by a
// throttle. Spread is in degrees either side of the emission direction.
type EmitterComponent struct {
	Rate     float32
	Speed    float32
	Spread   float32
	Lifetime float32
	Size     float32
	EndSize  float32
	Color    color.RGBA
	EndColor color.RGBA

	accumulated float32
}

// Emit accumulates throttle*Rate*dt and returns how many whole particles are due.
func (em *EmitterComponent) Emit(throttle, dt float32) int {
	if throttle <= 0 || em.Rate <= 0 {
		return 0
	}
	em.accumulated += em.Rate * throttle * dt
	n := int(em.accumulated)
	em.accumulated -= float32(n)
	return n
}

// Burst builds n particles leaving from pos along dir (a unit vector), on top
// of the emitter's own velocity vel.
func (em *EmitterComponent) Burst(pos, dir, vel mgl32.Vec2, n int, rng *rand.Rand) []Builder {
	out := make([]Builder, n)
	for i := range out {
		spread := mgl32.DegToRad(randRange(rng, -em.Spread, em.Spread))
		out[i] = ParticleBuilder{
			Position:   pos,
			Velocity:   vel.Add(Rotate(dir, spread).Mul(em.Speed)),
			Lifetime:   em.Lifetime,
			StartSize:  em.Size,
			EndSize:    em.EndSize,
			StartColor: em.Color,
			EndColor:   em.EndColor,
		}
	}
	return out
}

func ExhaustEmitter(cfg ParticleConfig) Builder {
	return BuilderFunc(func(e *Entity) {
		c := cfg.ExhaustColor.RGBA()
		e.Emitter = &EmitterComponent{
			Rate:     cfg.ExhaustRate,
			Speed:    cfg.ExhaustSpeed,
			Spread:   cfg.ExhaustSpread,
			Lifetime: cfg.ExhaustLifetime,
			Size:     cfg.ExhaustSize,
			Color:    c,
			EndColor: color.RGBA{R: c.R, G: c.G, B: c.B},
		}
	})
}

// FireComponent makes an emitter burn harder the more damaged its ship is.
// Below Threshold health the rate and spread grow linearly to their maximum at
// zero health.
type FireComponent struct {
	Threshold float32
	MaxRate   float32
	MaxSpread float32
}

// Intensity is 0 at or above Threshold and 1 at zero health.
func (f *FireComponent) Intensity(health float32) float32 {
	if f.Threshold <= 0 || health >= f.Threshold {
		return 0
	}
	return mgl32.Clamp(1-health/f.Threshold, 0, 1)
}

// FireEmitter is an emitter that stays dark until FireSystem lights it.
func FireEmitter(cfg ParticleConfig) Builder {
	return BuilderFunc(func(e *Entity) {
		e.Fire = &FireComponent{Threshold: cfg.FireThreshold, MaxRate: cfg.FireRate, MaxSpread: cfg.FireSpread}
		e.Emitter = &EmitterComponent{
			Speed:    cfg.FireSpeed,
			Lifetime: cfg.FireLifetime,
			Size:     1,
			EndSize:  cfg.FireSize,
			Color:    cfg.FireStartColor.RGBA(),
			EndColor: cfg.FireEndColor.RGBA(),
		}
	})
}
