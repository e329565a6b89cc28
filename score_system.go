package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	log "github.com/sirupsen/logrus"
)

// ScoreSystem awards points for asteroids shot down and counts shots.
type ScoreSystem struct {
	G *Game

	Points     int
	Destroyed  int
	ShotsFired int
}

func (ss *ScoreSystem) New(*ecs.World) {
	ss.G.Mailbox.Listen(DestroyedMessage{}.Type(), func(msg engo.Message) {
		dm, ok := msg.(DestroyedMessage)
		if !ok || dm.Entity.Asteroid == nil || dm.By == nil || !dm.By.Marks.Has(MarkProjectile) {
			return
		}
		ss.Destroyed++
		ss.Points += PointsFor(ss.G.Config.Asteroids.Points, dm.Entity.Asteroid.Generation)
	})
	ss.G.Mailbox.Listen(FiredMessage{}.Type(), func(engo.Message) {
		ss.ShotsFired++
	})
}

// PointsFor looks up the award for a generation; the last entry repeats.
func PointsFor(table []int, generation int) int {
	if len(table) == 0 {
		return 0
	}
	if generation < 0 {
		generation = 0
	}
	if generation >= len(table) {
		generation = len(table) - 1
	}
	return table[generation]
}

func (*ScoreSystem) Remove(ecs.BasicEntity) {}
func (*ScoreSystem) Priority() int          { return priorityScore }
func (*ScoreSystem) Update(dt float32)      {}

// StatusSystem logs a summary line at a fixed interval.
type StatusSystem struct {
	G        *Game
	Interval float32

	elapsed float32
}

func (*StatusSystem) Remove(ecs.BasicEntity) {}
func (*StatusSystem) Priority() int          { return priorityScore - 1 }
func (ss *StatusSystem) Update(dt float32) {
	if ss.Interval <= 0 {
		return
	}
	ss.elapsed += dt
	if ss.elapsed < ss.Interval {
		return
	}
	ss.elapsed = 0

	s := ss.G.Stats()
	log.WithFields(log.Fields{
		"elapsed":   s.Elapsed,
		"score":     s.Score,
		"health":    s.PlayerHealth,
		"asteroids": s.Asteroids,
		"particles": s.Particles,
		"goals":     s.Goals,
		"deaths":    s.Deaths,
	}).Debug("Status")
}
