package spacerocks

import (
	"math/rand"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// Systems run highest priority first.
const (
	priorityAutopilot  = 110
	priorityControl    = 100
	prioritySteering   = 95
	priorityEngine     = 90
	priorityForce      = 85
	priorityWeapon     = 80
	priorityPhysics    = 70
	priorityDamage     = 60
	priorityExhaust    = 45
	priorityParticle   = 40
	priorityProjectile = 35
	priorityWrap       = 30
	prioritySpawner    = 20
	priorityGoal       = 15
	priorityRespawn    = 12
	priorityScore      = 10
	priorityCommands   = -100
)

// entityAdder is implemented by systems that pick up spawned entities.
type entityAdder interface {
	Add(e *Entity)
}

// Game wires the gameplay systems into an ecs world and owns the deferred
// spawn/despawn queues.
type Game struct {
	Config  Config
	World   *ecs.World
	Mailbox *engo.MessageManager
	Rand    *rand.Rand
	Bounds  engo.AABB

	Physics   *PhysicsSystem
	Asteroids *AsteroidSystem
	Spawner   *AsteroidSpawnerSystem
	Particles *ParticleSystem
	Score     *ScoreSystem
	Autopilot *AutopilotSystem
	Goal      *GoalSystem
	Respawn   *RespawnSystem

	Player  *Entity
	Elapsed float32
	Over    bool

	adders   []entityAdder
	entities map[uint64]*Entity
	spawns   []*Entity
	despawns []*Entity
}

// NewGame builds every system on w, spawns the player and the opening asteroid
// field. Messages go through mailbox; pass engo.Mailbox when running under engo.
func NewGame(w *ecs.World, mailbox *engo.MessageManager, cfg Config, rng *rand.Rand) *Game {
	g := &Game{
		Config:   cfg,
		World:    w,
		Mailbox:  mailbox,
		Rand:     rng,
		Bounds:   engo.AABB{Max: engo.Point{X: cfg.World.Width, Y: cfg.World.Height}},
		entities: map[uint64]*Entity{},
	}

	g.Physics = &PhysicsSystem{
		Mailbox:            mailbox,
		PixelsPerMeter:     cfg.World.PixelsPerMeter,
		VelocityIterations: cfg.World.VelocityIterations,
		PositionIterations: cfg.World.PositionIterations,
	}
	g.Asteroids = &AsteroidSystem{G: g}
	g.Spawner = &AsteroidSpawnerSystem{G: g, Asteroids: g.Asteroids}
	g.Particles = &ParticleSystem{G: g}
	g.Score = &ScoreSystem{G: g}

	systems := []ecs.System{
		&ControlSystem{G: g},
		&SteeringSystem{G: g},
		&EngineSystem{},
		&ForceSystem{},
		&WeaponSystem{G: g},
		g.Physics,
		&DamageSystem{G: g},
		&ExhaustSystem{G: g},
		&FireSystem{G: g},
		g.Particles,
		&ProjectileSystem{G: g},
		&WrapSystem{G: g},
		g.Asteroids,
		g.Spawner,
		g.Score,
		&StatusSystem{G: g, Interval: cfg.World.StatusInterval},
		&CommandSystem{G: g},
	}
	if cfg.Autopilot.Enabled {
		g.Autopilot = &AutopilotSystem{G: g, Config: cfg.Autopilot}
		systems = append(systems, g.Autopilot)
	}
	if cfg.Goal.Enabled {
		g.Goal = &GoalSystem{G: g, Config: cfg.Goal}
		systems = append(systems, g.Goal)
	}
	if cfg.Respawn.Enabled {
		g.Respawn = &RespawnSystem{G: g, Config: cfg.Respawn}
		systems = append(systems, g.Respawn)
	}
	for _, s := range systems {
		w.AddSystem(s)
		if a, ok := s.(entityAdder); ok {
			g.adders = append(g.adders, a)
		}
	}

	mailbox.Listen(DestroyedMessage{}.Type(), func(msg engo.Message) {
		dm, ok := msg.(DestroyedMessage)
		if !ok || dm.Entity != g.Player || g.Over || g.Respawn != nil {
			return
		}
		g.Over = true
		log.WithFields(log.Fields{"score": g.Score.Points, "elapsed": g.Elapsed}).Info("Player destroyed")
		mailbox.Dispatch(GameOverMessage{Score: g.Score.Points, Elapsed: g.Elapsed})
	})

	center := mgl32.Vec2{cfg.World.Width / 2, cfg.World.Height / 2}
	g.Player = NewEntity(ShipBuilder{Position: center, Angle: -90, Ship: cfg.Ship, Weapon: cfg.Weapon, Particles: cfg.Particles})
	g.Spawn(g.Player)
	if g.Goal != nil {
		g.Goal.Reset(center)
	}
	g.Spawner.Populate(cfg.Asteroids.InitialCount)
	g.flush()

	return g
}

// Step advances the whole world by dt seconds.
func (g *Game) Step(dt float32) {
	g.World.Update(dt)
}

// Spawn queues e and its children. They join the systems at the end of the frame.
func (g *Game) Spawn(e *Entity) {
	g.spawns = append(g.spawns, e)
}

// Despawn queues e and its children for removal at the end of the frame.
func (g *Game) Despawn(e *Entity) {
	if e.despawned {
		return
	}
	e.each(func(c *Entity) { c.despawned = true })
	g.despawns = append(g.despawns, e)
}

// Destroy reports e as destroyed by by and despawns it. With respawn on, the
// player stays in the world to be brought back by RespawnSystem.
func (g *Game) Destroy(e, by *Entity) {
	if e.despawned {
		return
	}
	g.Mailbox.Dispatch(DestroyedMessage{Entity: e, By: by})
	if e == g.Player && g.Respawn != nil {
		return
	}
	g.Despawn(e)
}

// Entity looks up a live entity by ID.
func (g *Game) Entity(id uint64) (*Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

func (g *Game) EntityCount() int {
	return len(g.entities)
}

// InBounds reports whether pos lies inside the world.
func (g *Game) InBounds(pos mgl32.Vec2) bool {
	if pos[0] < g.Bounds.Min.X {
		return false
	}
	if pos[0] > g.Bounds.Max.X {
		return false
	}
	if pos[1] < g.Bounds.Min.Y {
		return false
	}
	if pos[1] > g.Bounds.Max.Y {
		return false
	}
	return true
}

func (g *Game) flush() {
	spawns := g.spawns
	g.spawns = nil
	for _, root := range spawns {
		if root.despawned {
			continue
		}
		root.each(func(e *Entity) {
			g.entities[e.ID()] = e
			for _, a := range g.adders {
				a.Add(e)
			}
		})
	}

	despawns := g.despawns
	g.despawns = nil
	for _, root := range despawns {
		if root.Parent != nil {
			root.Parent.removeChild(root)
		}
		root.each(func(e *Entity) {
			if _, ok := g.entities[e.ID()]; !ok {
				return
			}
			delete(g.entities, e.ID())
			g.World.RemoveEntity(e.BasicEntity)
		})
	}
}

// Stats is a snapshot of the game for reporting.
type Stats struct {
	Elapsed      float32
	Score        int
	Destroyed    int
	ShotsFired   int
	Asteroids    int
	Particles    int
	Entities     int
	PlayerHealth float32
	Deaths       int
	Goals        int
	Over         bool
}

func (g *Game) Stats() Stats {
	s := Stats{
		Elapsed:    g.Elapsed,
		Score:      g.Score.Points,
		Destroyed:  g.Score.Destroyed,
		ShotsFired: g.Score.ShotsFired,
		Asteroids:  len(g.Asteroids.entities),
		Particles:  len(g.Particles.entities),
		Entities:   len(g.entities),
		Over:       g.Over,
	}
	if g.Player != nil && g.Player.Health != nil {
		s.PlayerHealth = g.Player.Health.Current
	}
	if g.Respawn != nil {
		s.Deaths = g.Respawn.Deaths
	}
	if g.Goal != nil {
		s.Goals = g.Goal.Points
	}
	return s
}

// CommandSystem runs last and applies the frame's queued spawns and despawns.
type CommandSystem struct {
	G *Game
}

func (*CommandSystem) Priority() int          { return priorityCommands }
func (*CommandSystem) Remove(ecs.BasicEntity) {}
func (cs *CommandSystem) Update(dt float32) {
	cs.G.Elapsed += dt
	cs.G.flush()
}
