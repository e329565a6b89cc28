package spacerocks

import "github.com/go-gl/mathgl/mgl32"

// Throttle is a clamped scalar. Reversible throttles run over [-1,1],
// one-directional ones over [0,1].
type Throttle struct {
	value float32
	min   float32
}

func NewThrottle(reversible bool) Throttle {
	if reversible {
		return Throttle{min: -1}
	}
	return Throttle{}
}

// Set clamps v into range and returns what was stored.
func (t *Throttle) Set(v float32) float32 {
	t.value = mgl32.Clamp(v, t.min, 1)
	return t.value
}

func (t *Throttle) Add(delta float32) float32 {
	return t.Set(t.value + delta)
}

func (t Throttle) Value() float32   { return t.value }
func (t Throttle) Min() float32     { return t.min }
func (t Throttle) Reversible() bool { return t.min < 0 }
func (t Throttle) Clamp(v float32) float32 {
	return mgl32.Clamp(v, t.min, 1)
}

// ControlAxis selects which input drives an engine.
type ControlAxis int

const (
	AxisNone ControlAxis = iota
	AxisThrust
	AxisSway
	AxisTurn
)

type EngineComponent struct {
	Throttle Throttle
	// Target is where the throttle is heading; Rate is how fast it gets there
	// in throttle units per second. A zero Rate snaps.
	Target float32
	Rate   float32

	// Direction is the local thrust direction; MaxForce scales it. MaxTorque is
	// in force units times world units, like the torque an off-centre force makes.
	Direction mgl32.Vec2
	MaxForce  float32
	MaxTorque float32

	Axis  ControlAxis
	Scale float32
}

// Step moves the throttle toward its target by at most Rate*dt.
func (e *EngineComponent) Step(dt float32) {
	target := e.Throttle.Clamp(e.Target)
	if e.Rate <= 0 {
		e.Throttle.Set(target)
		return
	}
	delta := target - e.Throttle.Value()
	step := e.Rate * dt
	if delta > step {
		delta = step
	} else if delta < -step {
		delta = -step
	}
	e.Throttle.Add(delta)
}

// LocalForce is the force in the engine's own frame.
func (e *EngineComponent) LocalForce() mgl32.Vec2 {
	if e.MaxForce == 0 || e.Direction.Len() == 0 {
		return mgl32.Vec2{}
	}
	return e.Direction.Normalize().Mul(e.Throttle.Value() * e.MaxForce)
}

func (e *EngineComponent) LocalTorque() float32 {
	return e.Throttle.Value() * e.MaxTorque
}

// ForceComponent is the world-space force and torque applied to a body at the
// next physics step. Both are in world units; the physics system converts them.
// It is rebuilt every frame.
type ForceComponent struct {
	Force  mgl32.Vec2
	Torque float32
}

func (f *ForceComponent) Reset() {
	f.Force = mgl32.Vec2{}
	f.Torque = 0
}
