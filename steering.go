package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// PIDController turns an error into a control output in [-1,1]. The integral
// term is clamped to the same range so it cannot wind up.
type PIDController struct {
	P, I, D float32

	integral float32
	prev     float32
	primed   bool
}

func NewPIDController(cfg PIDConfig) PIDController {
	return PIDController{P: cfg.P, I: cfg.I, D: cfg.D}
}

// Next feeds one error sample taken dt after the previous one.
func (c *PIDController) Next(err, dt float32) float32 {
	c.integral = mgl32.Clamp(c.integral+c.I*err*dt, -1, 1)

	var d float32
	if c.primed && dt > 0 {
		d = c.D * (err - c.prev) / dt
	}
	c.prev, c.primed = err, true

	return mgl32.Clamp(c.P*err+c.integral+d, -1, 1)
}

func (c *PIDController) Reset() {
	c.integral, c.prev, c.primed = 0, 0, false
}

// SteeringComponent points a ship's nose at Target while Active.
type SteeringComponent struct {
	Target  mgl32.Vec2
	Active  bool
	Control PIDController

	// Error is the last heading error in degrees, positive when the target is
	// clockwise of the nose.
	Error float32
}

// headingError is the signed angle in degrees from a heading to the direction
// of target seen from pos.
func headingError(pos mgl32.Vec2, angle float32, target mgl32.Vec2) float32 {
	delta := target.Sub(pos)
	if delta.Len() == 0 {
		return 0
	}
	want := mgl32.RadToDeg(float32(atan2(delta.Y(), delta.X())))
	return normalizeDeg(want - angle)
}

// SteeringSystem drives turn engines from the steering controller. It runs
// after ControlSystem, so active steering overrides turn input.
type SteeringSystem struct {
	G *Game

	ships []*Entity
}

func (ss *SteeringSystem) Add(e *Entity) {
	if e.Steering != nil && e.Body != nil {
		ss.ships = append(ss.ships, e)
	}
}
func (ss *SteeringSystem) Remove(basic ecs.BasicEntity) {
	ss.ships = removeEntity(ss.ships, basic)
}
func (*SteeringSystem) Priority() int { return prioritySteering }
func (ss *SteeringSystem) Update(dt float32) {
	for _, ship := range ss.ships {
		st := ship.Steering
		if !st.Active || !ship.alive() || ss.G != nil && ss.G.Over {
			st.Control.Reset()
			continue
		}
		b := ship.Body
		st.Error = headingError(b.Position, b.Angle, st.Target)
		out := st.Control.Next(mgl32.DegToRad(st.Error), dt)

		ship.each(func(e *Entity) {
			if e.Engine != nil && e.Engine.Axis == AxisTurn {
				e.Engine.Target = out * e.Engine.Scale
			}
		})
	}
}
