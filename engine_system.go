package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl32"
)

// ControlSystem turns a ship's input into engine targets and weapon triggers.
type ControlSystem struct {
	G *Game

	ships []*Entity
}

func (cs *ControlSystem) Add(e *Entity) {
	if e.Input != nil {
		cs.ships = append(cs.ships, e)
	}
}
func (cs *ControlSystem) Remove(basic ecs.BasicEntity) {
	cs.ships = removeEntity(cs.ships, basic)
}
func (*ControlSystem) Priority() int { return priorityControl }
func (cs *ControlSystem) Update(dt float32) {
	for _, ship := range cs.ships {
		in := *ship.Input
		if !ship.alive() || cs.G != nil && cs.G.Over {
			in = PlayerInputComponent{}
		}
		thrust, sway, turn := in.Thrust(), in.Sway(), in.Turn()

		ship.each(func(e *Entity) {
			if eng := e.Engine; eng != nil {
				switch eng.Axis {
				case AxisThrust:
					eng.Target = thrust * eng.Scale
				case AxisSway:
					eng.Target = sway * eng.Scale
				case AxisTurn:
					eng.Target = turn * eng.Scale
				}
			}
			if e.Weapon != nil {
				e.Weapon.Trigger = in.Attack
			}
		})
	}
}

// EngineSystem moves every throttle toward its target.
type EngineSystem struct {
	engines []*Entity
}

func (es *EngineSystem) Add(e *Entity) {
	if e.Engine != nil {
		es.engines = append(es.engines, e)
	}
}
func (es *EngineSystem) Remove(basic ecs.BasicEntity) {
	es.engines = removeEntity(es.engines, basic)
}
func (*EngineSystem) Priority() int { return priorityEngine }
func (es *EngineSystem) Update(dt float32) {
	for _, e := range es.engines {
		e.Engine.Step(dt)
	}
}

// ForceSystem rebuilds the force on every body from the engines beneath it.
// An engine pushes the nearest ancestor that has a body; its force is rotated
// through the local transforms in between and then into world space, and an
// off-centre engine adds torque about the body's origin.
type ForceSystem struct {
	bodies  []*Entity
	engines []*Entity
}

func (fs *ForceSystem) Add(e *Entity) {
	if e.Force != nil {
		fs.bodies = append(fs.bodies, e)
	}
	if e.Engine != nil {
		fs.engines = append(fs.engines, e)
	}
}
func (fs *ForceSystem) Remove(basic ecs.BasicEntity) {
	fs.bodies = removeEntity(fs.bodies, basic)
	fs.engines = removeEntity(fs.engines, basic)
}
func (*ForceSystem) Priority() int { return priorityForce }
func (fs *ForceSystem) Update(dt float32) {
	for _, b := range fs.bodies {
		b.Force.Reset()
	}
	for _, e := range fs.engines {
		root, offset, angle := e.Root()
		if root == nil || root.Force == nil {
			continue
		}
		f := Rotate(e.Engine.LocalForce(), angle)
		torque := e.Engine.LocalTorque() + cross2(offset, f)

		world := Rotate(f, mgl32.DegToRad(root.Body.Angle))
		root.Force.Force = root.Force.Force.Add(world)
		root.Force.Torque += torque
	}
}
