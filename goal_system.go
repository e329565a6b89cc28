package spacerocks

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// GoalSystem keeps a waypoint for the player. Reaching it scores a point and
// moves the waypoint a random distance in a random direction. A respawn starts
// the count over.
type GoalSystem struct {
	G      *Game
	Config GoalConfig

	Position mgl32.Vec2
	Points   int
}

func (gs *GoalSystem) New(*ecs.World) {
	gs.G.Mailbox.Listen(RespawnedMessage{}.Type(), func(msg engo.Message) {
		rm, ok := msg.(RespawnedMessage)
		if !ok || rm.Player.Body == nil {
			return
		}
		gs.Reset(rm.Player.Body.Position)
	})
}

// Reset zeroes the points and places a fresh goal relative to origin.
func (gs *GoalSystem) Reset(origin mgl32.Vec2) {
	gs.Points = 0
	gs.Position = origin
	gs.next()
}

func (gs *GoalSystem) next() {
	rng := gs.G.Rand
	dir := rng.Float64() * 2 * math.Pi
	dist := randRange(rng, gs.Config.MinRange, gs.Config.MaxRange)
	step := mgl32.Vec2{float32(math.Cos(dir)), float32(math.Sin(dir))}.Mul(dist)
	gs.Position = wrapInto(gs.Position.Add(step), gs.G.Bounds)
}

func (*GoalSystem) Remove(ecs.BasicEntity) {}
func (*GoalSystem) Priority() int          { return priorityGoal }
func (gs *GoalSystem) Update(dt float32) {
	p := gs.G.Player
	if p == nil || p.Body == nil || !p.alive() || gs.G.Over {
		return
	}
	if p.Body.Position.Sub(gs.Position).Len() > gs.Config.ReachRange {
		return
	}
	gs.Points++
	gs.next()
	log.WithFields(log.Fields{"points": gs.Points, "next": gs.Position}).Info("Goal reached")
	gs.G.Mailbox.Dispatch(GoalReachedMessage{Points: gs.Points, Next: gs.Position})
}

// wrapInto folds pos into aabb however far outside it lies.
func wrapInto(pos mgl32.Vec2, aabb engo.AABB) mgl32.Vec2 {
	fold := func(v, min, max float32) float32 {
		size := float64(max - min)
		if size <= 0 {
			return min
		}
		r := math.Mod(float64(v-min), size)
		if r < 0 {
			r += size
		}
		return min + float32(r)
	}
	return mgl32.Vec2{fold(pos.X(), aabb.Min.X, aabb.Max.X), fold(pos.Y(), aabb.Min.Y, aabb.Max.Y)}
}
