package spacerocks

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// AsteroidBuilder makes a spinning rock with a randomised outline. The collider
// is a circle at the outline's mean radius; health and contact damage scale
// with size.
type AsteroidBuilder struct {
	Position   mgl32.Vec2
	Velocity   mgl32.Vec2
	Angle      float32
	Spin       float32
	Radius     float32
	Generation int

	Config AsteroidConfig
	Rand   *rand.Rand
}

func (ab AsteroidBuilder) Build(e *Entity) {
	cfg := ab.Config
	outline := AsteroidOutline(ab.Rand, ab.Radius, cfg.OutlinePoints, cfg.OutlineSigma)
	radius := MeanRadius(outline)

	Chain(
		WithMarks(MarkAsteroid|MarkWrap),
		DynamicBody(BodyComponent{
			Position:        ab.Position,
			Angle:           ab.Angle,
			Velocity:        ab.Velocity,
			AngularVelocity: ab.Spin,
			Collider: Collider{
				Kind:        ColliderCircle,
				Radius:      radius,
				Density:     cfg.Density,
				Restitution: cfg.Restitution,
				Category:    CategoryAsteroid,
				Mask:        CategoryShip | CategoryAsteroid | CategoryProjectile,
			},
		}),
		BuilderFunc(func(e *Entity) {
			e.Asteroid = &AsteroidComponent{Radius: ab.Radius, Generation: ab.Generation, Outline: outline}
			e.Health = NewHealth(cfg.HealthPerRadius*ab.Radius, 0)
			e.Damage = &DamageComponent{Amount: cfg.DamagePerRadius * ab.Radius, Targets: MarkPlayer}
			e.SpaceComponent.Width = radius * 2
			e.SpaceComponent.Height = radius * 2
		}),
	).Build(e)
}

// Split returns builders for the fragments of a destroyed asteroid, or nil if
// it is too small to break up. Fragments are spread evenly around the parent
// at half its radius and fly outward on top of the parent's velocity.
func Split(parent *Entity, cfg AsteroidConfig, rng *rand.Rand) []Builder {
	a := parent.Asteroid
	if a == nil || parent.Body == nil || cfg.Fragments < 2 {
		return nil
	}
	radius := a.Radius * cfg.SplitFactor
	if radius < cfg.MinRadius {
		return nil
	}

	step := 2 * math.Pi / float64(cfg.Fragments)
	base := rng.Float64() * 2 * math.Pi
	out := make([]Builder, 0, cfg.Fragments)
	for i := 0; i < cfg.Fragments; i++ {
		jitter := math.Max(-step/4, math.Min(step/4, rng.NormFloat64()*step/8))
		angle := base + float64(i)*step + jitter
		dir := mgl32.Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))}

		speed := randRange(rng, cfg.MinSpeed, cfg.MaxSpeed) * cfg.FragmentSpeedScale
		out = append(out, AsteroidBuilder{
			Position:   parent.Body.Position.Add(dir.Mul(a.Radius / 2)),
			Velocity:   parent.Body.Velocity.Add(dir.Mul(speed)),
			Angle:      randRange(rng, 0, 360),
			Spin:       randRange(rng, -cfg.MaxSpin, cfg.MaxSpin),
			Radius:     radius,
			Generation: a.Generation + 1,
			Config:     cfg,
			Rand:       rng,
		})
	}
	return out
}

// asteroidWeight counts a rock as the number of smallest rocks it will break into, roughly.
func asteroidWeight(radius, minRadius float32) int {
	if minRadius <= 0 {
		return 1
	}
	w := int(math.Ceil(float64(radius / minRadius)))
	if w < 1 {
		w = 1
	}
	return w
}
