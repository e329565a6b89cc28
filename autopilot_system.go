package spacerocks

import (
	"github.com/EngoEngine/ecs"
)

// AutopilotSystem flies the player ship: it steers toward the nearest
// asteroid, shoots once lined up, closes distance when slow and backs off when
// too close. Turning is left to the ship's SteeringComponent.
type AutopilotSystem struct {
	G      *Game
	Config AutopilotConfig

	Target *Entity
}

func (*AutopilotSystem) Remove(ecs.BasicEntity) {}
func (*AutopilotSystem) Priority() int          { return priorityAutopilot }
func (as *AutopilotSystem) Update(dt float32) {
	ship := as.G.Player
	if ship == nil || ship.Input == nil || ship.Body == nil || ship.Steering == nil {
		return
	}
	if as.G.Over || !ship.alive() {
		return
	}
	in := PlayerInputComponent{}
	defer func() { *ship.Input = in }()

	st := ship.Steering
	pos := ship.Body.Position
	speed := ship.Body.Velocity.Len()

	as.Target = as.G.Asteroids.Nearest(pos)
	if as.Target == nil {
		st.Active = false
		return
	}
	st.Target = as.Target.Body.Position
	st.Active = true

	dist := st.Target.Sub(pos).Len()
	err := headingError(pos, ship.Body.Angle, st.Target)

	in.Attack = abs32(err) < as.Config.FireAngle
	switch {
	case dist < as.Config.StandOff/2:
		in.Back = true
	case dist > as.Config.StandOff && speed < as.Config.CruiseSpeed:
		in.Forward = abs32(err) < 45
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
