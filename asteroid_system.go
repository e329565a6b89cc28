package spacerocks

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// AsteroidSystem tracks live asteroids and breaks destroyed ones into fragments.
type AsteroidSystem struct {
	G *Game

	entities []*Entity
}

func (as *AsteroidSystem) New(*ecs.World) {
	as.G.Mailbox.Listen(DestroyedMessage{}.Type(), func(msg engo.Message) {
		dm, ok := msg.(DestroyedMessage)
		if !ok || dm.Entity.Asteroid == nil {
			return
		}
		fragments := Split(dm.Entity, as.G.Config.Asteroids, as.G.Rand)
		for _, b := range fragments {
			as.G.Spawn(NewEntity(b))
		}
		log.WithFields(log.Fields{
			"id":         dm.Entity.ID(),
			"radius":     dm.Entity.Asteroid.Radius,
			"generation": dm.Entity.Asteroid.Generation,
			"fragments":  len(fragments),
		}).Debug("Asteroid destroyed")
	})
}

func (as *AsteroidSystem) Add(e *Entity) {
	if e.Asteroid != nil {
		as.entities = append(as.entities, e)
	}
}
func (as *AsteroidSystem) Remove(basic ecs.BasicEntity) {
	as.entities = removeEntity(as.entities, basic)
}
func (*AsteroidSystem) Priority() int     { return prioritySpawner + 1 }
func (*AsteroidSystem) Update(dt float32) {}

func (as *AsteroidSystem) Count() int {
	return len(as.entities)
}

// Weight is the population measure the spawner keeps topped up. Asteroids
// queued to spawn at the end of the frame count already.
func (as *AsteroidSystem) Weight() int {
	total := 0
	add := func(e *Entity) {
		if e.Asteroid != nil && !e.despawned {
			total += asteroidWeight(e.Asteroid.Radius, as.G.Config.Asteroids.MinRadius)
		}
	}
	for _, e := range as.entities {
		add(e)
	}
	for _, e := range as.G.spawns {
		add(e)
	}
	return total
}

// Nearest returns the closest live asteroid to pos, or nil.
func (as *AsteroidSystem) Nearest(pos mgl32.Vec2) *Entity {
	var best *Entity
	bestDist := float32(math.MaxFloat32)
	for _, e := range as.entities {
		if e.despawned || e.Body == nil {
			continue
		}
		if d := e.Body.Position.Sub(pos).Len(); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// AsteroidSpawnerSystem keeps the field populated. New rocks come in from a
// world edge away from the player, aimed somewhere inside the field.
type AsteroidSpawnerSystem struct {
	G         *Game
	Asteroids *AsteroidSystem

	cooldown float32
}

func (*AsteroidSpawnerSystem) Remove(ecs.BasicEntity) {}
func (*AsteroidSpawnerSystem) Priority() int          { return prioritySpawner }
func (ss *AsteroidSpawnerSystem) Update(dt float32) {
	ss.cooldown -= dt
	if ss.cooldown > 0 {
		return
	}
	ss.cooldown = 0
	if ss.Asteroids.Weight() >= ss.G.Config.Asteroids.TargetCount {
		return
	}
	if ss.spawn() {
		ss.cooldown = ss.G.Config.Asteroids.SpawnInterval
	}
}

// Populate spawns up to n asteroids straight away, stopping at the target weight.
func (ss *AsteroidSpawnerSystem) Populate(n int) int {
	spawned := 0
	for i := 0; i < n; i++ {
		if ss.Asteroids.Weight() >= ss.G.Config.Asteroids.TargetCount {
			break
		}
		if ss.spawn() {
			spawned++
		}
	}
	return spawned
}

func (ss *AsteroidSpawnerSystem) spawn() bool {
	cfg := ss.G.Config.Asteroids
	rng := ss.G.Rand

	pos, ok := ss.edgePoint()
	if !ok {
		return false
	}
	radius := randRange(rng, (cfg.MinRadius+cfg.MaxRadius)/2, cfg.MaxRadius)

	w, h := ss.G.Config.World.Width, ss.G.Config.World.Height
	target := mgl32.Vec2{randRange(rng, w/4, w*3/4), randRange(rng, h/4, h*3/4)}
	dir := target.Sub(pos)
	if dir.Len() == 0 {
		dir = mgl32.Vec2{1, 0}
	}
	vel := dir.Normalize().Mul(randRange(rng, cfg.MinSpeed, cfg.MaxSpeed))

	spin := randRange(rng, cfg.MaxSpin/4, cfg.MaxSpin)
	if rng.Intn(2) == 0 {
		spin = -spin
	}

	ss.G.Spawn(NewEntity(AsteroidBuilder{
		Position: pos,
		Velocity: vel,
		Angle:    randRange(rng, 0, 360),
		Spin:     spin,
		Radius:   radius,
		Config:   cfg,
		Rand:     rng,
	}))
	log.WithFields(log.Fields{"pos": pos, "radius": radius}).Debug("Asteroid spawned")
	return true
}

// edgePoint picks a point on a random world edge at least SafeDistance from
// the player. It gives up after a few tries.
func (ss *AsteroidSpawnerSystem) edgePoint() (mgl32.Vec2, bool) {
	rng := ss.G.Rand
	w, h := ss.G.Config.World.Width, ss.G.Config.World.Height
	safe := ss.G.Config.Asteroids.SafeDistance

	for try := 0; try < 8; try++ {
		var p mgl32.Vec2
		switch rng.Intn(4) {
		case 0:
			p = mgl32.Vec2{0, rng.Float32() * h}
		case 1:
			p = mgl32.Vec2{w, rng.Float32() * h}
		case 2:
			p = mgl32.Vec2{rng.Float32() * w, 0}
		default:
			p = mgl32.Vec2{rng.Float32() * w, h}
		}
		player := ss.G.Player
		if player == nil || player.Body == nil || player.despawned {
			return p, true
		}
		if p.Sub(player.Body.Position).Len() >= safe {
			return p, true
		}
	}
	return mgl32.Vec2{}, false
}
