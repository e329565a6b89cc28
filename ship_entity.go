package spacerocks

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShipBuilder assembles the player ship: a triangular hull with health, energy
// and a steering controller, driven by main, retro, sway and turn engines. It
// carries one nose gun and a fire emitter that lights up when badly damaged.
type ShipBuilder struct {
	Position mgl32.Vec2
	Angle    float32

	Ship      ShipConfig
	Weapon    WeaponConfig
	Particles ParticleConfig
}

func (sb ShipBuilder) Build(e *Entity) {
	cfg := sb.Ship
	hull := Triangle(cfg.Length, cfg.Width)

	Chain(
		WithMarks(MarkPlayer|MarkWrap),
		DynamicBody(BodyComponent{
			Position:       sb.Position,
			Angle:          sb.Angle,
			LinearDamping:  cfg.LinearDamping,
			AngularDamping: cfg.AngularDamping,
			MaxSpeed:       cfg.MaxSpeed,
			Collider: Collider{
				Kind:        ColliderPolygon,
				Points:      hull,
				Radius:      BoundingRadius(hull),
				Density:     cfg.Density,
				Restitution: cfg.Restitution,
				Category:    CategoryShip,
				Mask:        CategoryAsteroid,
			},
		}),
		BuilderFunc(func(e *Entity) {
			e.Health = NewHealth(cfg.Health, cfg.InvulnerableFor)
			e.Energy = &EnergyComponent{Current: cfg.Energy, Max: cfg.Energy, ChargeRate: cfg.ChargeRate}
			e.Input = &PlayerInputComponent{}
			e.Steering = &SteeringComponent{Control: NewPIDController(cfg.Steering)}
			e.SpaceComponent.Width = cfg.Length
			e.SpaceComponent.Height = cfg.Width
		}),
		WithChild(Chain(
			At(mgl32.Vec2{-cfg.Length / 3, 0}, 0),
			EngineBuilder{
				Direction: mgl32.Vec2{1, 0},
				MaxForce:  cfg.MainForce,
				Rate:      cfg.ThrottleRate,
				Axis:      AxisThrust,
				Scale:     1,
			},
			ExhaustEmitter(sb.Particles),
		)),
		WithChild(Chain(
			At(mgl32.Vec2{cfg.Length / 3, 0}, 0),
			EngineBuilder{
				Direction: mgl32.Vec2{-1, 0},
				MaxForce:  cfg.RetroForce,
				Rate:      cfg.ThrottleRate,
				Axis:      AxisThrust,
				Scale:     -1,
			},
			ExhaustEmitter(sb.Particles),
		)),
		WithChild(Chain(
			EngineBuilder{
				Direction:  mgl32.Vec2{0, 1},
				MaxForce:   cfg.SwayForce,
				Rate:       cfg.ThrottleRate,
				Reversible: true,
				Axis:       AxisSway,
				Scale:      1,
			},
			ExhaustEmitter(sb.Particles),
		)),
		WithChild(EngineBuilder{
			MaxTorque:  cfg.TurnTorque,
			Rate:       cfg.ThrottleRate,
			Reversible: true,
			Axis:       AxisTurn,
			Scale:      1,
		}),
		WithChild(Chain(
			At(mgl32.Vec2{cfg.Length * 2 / 3, 0}, 0),
			WeaponBuilder{Config: sb.Weapon},
		)),
		WithChild(Chain(
			At(mgl32.Vec2{-cfg.Length / 6, 0}, 0),
			FireEmitter(sb.Particles),
		)),
	).Build(e)
}

// EngineBuilder attaches an engine. One-directional unless Reversible.
type EngineBuilder struct {
	Direction  mgl32.Vec2
	MaxForce   float32
	MaxTorque  float32
	Rate       float32
	Reversible bool
	Axis       ControlAxis
	Scale      float32
}

func (eb EngineBuilder) Build(e *Entity) {
	e.Engine = &EngineComponent{
		Throttle:  NewThrottle(eb.Reversible),
		Rate:      eb.Rate,
		Direction: eb.Direction,
		MaxForce:  eb.MaxForce,
		MaxTorque: eb.MaxTorque,
		Axis:      eb.Axis,
		Scale:     eb.Scale,
	}
}
