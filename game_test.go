package spacerocks

import (
	"math/rand"
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
)

const frame = float32(1.0 / 60)

// newTestGame builds a game on a private world and mailbox. Status logging and
// the autopilot are off unless mutate turns them back on.
func newTestGame(t *testing.T, seed int64, mutate func(*Config)) *Game {
	t.Helper()
	cfg := DefaultConfig()
	cfg.World.StatusInterval = 0
	cfg.Autopilot.Enabled = false
	if mutate != nil {
		mutate(&cfg)
	}
	return NewGame(&ecs.World{}, &engo.MessageManager{}, cfg, rand.New(rand.NewSource(seed)))
}

// emptyField leaves the player alone in the world.
func emptyField(cfg *Config) {
	cfg.Asteroids.InitialCount = 0
	cfg.Asteroids.TargetCount = 0
}

func steps(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.Step(frame)
	}
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 1, nil)

	if g.Player == nil || g.Player.Despawned() {
		t.Fatal("no player")
	}
	if _, ok := g.Entity(g.Player.ID()); !ok {
		t.Error("player not registered")
	}
	center := mgl32.Vec2{g.Config.World.Width / 2, g.Config.World.Height / 2}
	if !nearVec(g.Player.Body.Position, center) {
		t.Errorf("player at %v, want %v", g.Player.Body.Position, center)
	}
	if n := g.Asteroids.Count(); n == 0 || n > g.Config.Asteroids.InitialCount {
		t.Errorf("got %d asteroids, want 1..%d", n, g.Config.Asteroids.InitialCount)
	}
	for _, a := range g.Asteroids.entities {
		if d := a.Body.Position.Sub(center).Len(); d < g.Config.Asteroids.SafeDistance {
			t.Errorf("asteroid spawned %v from the player", d)
		}
	}
	// Hull plus one body per asteroid.
	if got, want := g.Physics.BodyCount(), 1+g.Asteroids.Count(); got != want {
		t.Errorf("box2d has %d bodies, want %d", got, want)
	}
}

func TestPopulateStopsAtTarget(t *testing.T) {
	g := newTestGame(t, 1, func(cfg *Config) {
		cfg.Asteroids.InitialCount = 10
		cfg.Asteroids.TargetCount = 4
	})
	// Fresh rocks weigh at least 3, so at most two fit under a target of 4.
	if n := g.Asteroids.Count(); n < 1 || n > 2 {
		t.Errorf("got %d asteroids", n)
	}
}

func TestSpawnerTopsUp(t *testing.T) {
	g := newTestGame(t, 2, func(cfg *Config) {
		cfg.Asteroids.InitialCount = 0
		cfg.Asteroids.SpawnInterval = 0.5
	})
	if g.Asteroids.Count() != 0 {
		t.Fatalf("got %d asteroids at start", g.Asteroids.Count())
	}
	steps(g, 1)
	if g.Asteroids.Count() != 1 {
		t.Errorf("got %d asteroids after one frame, want 1", g.Asteroids.Count())
	}
	steps(g, 15)
	if g.Asteroids.Count() != 1 {
		t.Errorf("spawned again inside the interval: %d", g.Asteroids.Count())
	}
	steps(g, 30)
	if g.Asteroids.Count() != 2 {
		t.Errorf("got %d asteroids after the interval, want 2", g.Asteroids.Count())
	}
}

func TestSpawnerCountsQueuedFragments(t *testing.T) {
	g := newTestGame(t, 2, func(cfg *Config) {
		emptyField(cfg)
		// Exactly the weight of three radius 20 fragments.
		cfg.Asteroids.TargetCount = 6
	})
	rock := NewEntity(AsteroidBuilder{
		Position: mgl32.Vec2{300, 300},
		Radius:   40,
		Config:   g.Config.Asteroids,
		Rand:     g.Rand,
	})
	g.Spawn(rock)
	g.flush()

	g.Destroy(rock, nil)
	if w := g.Asteroids.Weight(); w != 6 {
		t.Errorf("weight with fragments queued = %d, want 6", w)
	}
	steps(g, 1)
	if got := g.Asteroids.Count(); got != 3 {
		t.Errorf("got %d asteroids, want the 3 fragments only", got)
	}
}

func TestDeterministic(t *testing.T) {
	run := func() (Stats, mgl32.Vec2) {
		g := newTestGame(t, 42, func(cfg *Config) { cfg.Autopilot.Enabled = true })
		steps(g, 600)
		return g.Stats(), g.Player.Body.Position
	}
	s1, p1 := run()
	s2, p2 := run()
	if s1 != s2 {
		t.Errorf("stats differ:\n%+v\n%+v", s1, s2)
	}
	if p1 != p2 {
		t.Errorf("player ended at %v and %v", p1, p2)
	}
}

func TestFiring(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	g.Player.Input.Attack = true
	energy := g.Player.Energy.Current

	steps(g, 1)
	if g.Score.ShotsFired != 1 {
		t.Fatalf("fired %d shots, want 1", g.Score.ShotsFired)
	}
	projectiles := 0
	for _, e := range g.entities {
		if e.Marks.Has(MarkProjectile) {
			projectiles++
			if e.Projectile.Owner != g.Player.ID() {
				t.Errorf("projectile owner %d, want %d", e.Projectile.Owner, g.Player.ID())
			}
			// The ship starts pointing up (-Y).
			if e.Body.Velocity.Y() >= 0 {
				t.Errorf("projectile velocity %v", e.Body.Velocity)
			}
			center := mgl32.Vec2{g.Config.World.Width / 2, g.Config.World.Height / 2}
			muzzle := center.Add(mgl32.Vec2{0, -g.Config.Ship.Length * 2 / 3})
			if !nearVec(e.Body.Position, muzzle) {
				t.Errorf("projectile spawned at %v, want the muzzle %v", e.Body.Position, muzzle)
			}
		}
	}
	if projectiles != 1 {
		t.Errorf("got %d projectiles, want 1", projectiles)
	}
	if g.Player.Energy.Current >= energy {
		t.Errorf("energy %v not spent", g.Player.Energy.Current)
	}

	// Cooldown is 0.2s: holding the trigger just over a second fires five more.
	steps(g, 65)
	if g.Score.ShotsFired != 6 {
		t.Errorf("fired %d shots, want 6", g.Score.ShotsFired)
	}
}

func TestFiringNeedsEnergy(t *testing.T) {
	g := newTestGame(t, 1, func(cfg *Config) {
		emptyField(cfg)
		cfg.Ship.Energy = 4
		cfg.Ship.ChargeRate = 0
	})
	g.Player.Input.Attack = true
	steps(g, 10)
	if g.Score.ShotsFired != 0 {
		t.Errorf("fired %d shots without energy", g.Score.ShotsFired)
	}
}

func TestProjectileExpires(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	g.Player.Input.Attack = true
	steps(g, 1)
	g.Player.Input.Attack = false

	lifetime := g.Config.Weapon.Lifetime
	steps(g, int(lifetime/frame)+5)
	for _, e := range g.entities {
		if e.Marks.Has(MarkProjectile) {
			t.Fatalf("projectile %d still alive after %vs", e.ID(), lifetime)
		}
	}
	if got, want := g.Physics.BodyCount(), 1; got != want {
		t.Errorf("box2d has %d bodies, want %d", got, want)
	}
}

func TestThrust(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	start := g.Player.Body.Position
	g.Player.Input.Forward = true
	steps(g, 60)

	if g.Player.Body.Position.Y() >= start.Y() {
		t.Errorf("ship moved from %v to %v, want up the screen", start, g.Player.Body.Position)
	}
	if speed := g.Player.Body.Velocity.Len(); speed == 0 || speed > g.Config.Ship.MaxSpeed+eps {
		t.Errorf("speed %v", speed)
	}
	if g.Particles.Count() == 0 {
		t.Error("no exhaust")
	}
}

func TestTurn(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	start := g.Player.Body.Angle
	g.Player.Input.Right = true
	steps(g, 30)
	if g.Player.Body.Angle <= start {
		t.Errorf("angle went from %v to %v, want increasing", start, g.Player.Body.Angle)
	}
}

func TestAsteroidShotDown(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	rock := NewEntity(AsteroidBuilder{
		Position: mgl32.Vec2{300, 300},
		Radius:   40,
		Config:   g.Config.Asteroids,
		Rand:     g.Rand,
	})
	g.Spawn(rock)
	steps(g, 1)

	shot := NewEntity(WithMarks(MarkProjectile))
	g.Destroy(rock, shot)
	steps(g, 1)

	if !rock.Despawned() {
		t.Error("asteroid not despawned")
	}
	if _, ok := g.Entity(rock.ID()); ok {
		t.Error("asteroid still registered")
	}
	if got := g.Asteroids.Count(); got != g.Config.Asteroids.Fragments {
		t.Errorf("got %d fragments, want %d", got, g.Config.Asteroids.Fragments)
	}
	for _, f := range g.Asteroids.entities {
		if f.Asteroid.Generation != 1 {
			t.Errorf("fragment generation %d", f.Asteroid.Generation)
		}
	}
	if g.Score.Points != g.Config.Asteroids.Points[0] || g.Score.Destroyed != 1 {
		t.Errorf("score %d destroyed %d", g.Score.Points, g.Score.Destroyed)
	}
	if g.Particles.Count() == 0 {
		t.Error("no explosion")
	}

	// Destroying twice is a no-op.
	g.Destroy(rock, shot)
	if g.Score.Destroyed != 1 {
		t.Errorf("destroyed counted %d times", g.Score.Destroyed)
	}
}

// TestShootingAsteroid runs real projectiles through box2d into a rock that
// takes two hits.
func TestShootingAsteroid(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	rock := NewEntity(AsteroidBuilder{
		Position: g.Player.Body.Position.Add(mgl32.Vec2{0, -150}),
		Radius:   30,
		Config:   g.Config.Asteroids,
		Rand:     g.Rand,
	})
	g.Spawn(rock)
	steps(g, 1)

	projectiles := func() int {
		n := 0
		for _, e := range g.entities {
			if e.Marks.Has(MarkProjectile) {
				n++
			}
		}
		return n
	}
	shoot := func() {
		g.Player.Input.Attack = true
		steps(g, 1)
		g.Player.Input.Attack = false
		steps(g, 30)
	}

	shoot()
	if g.Score.ShotsFired != 1 {
		t.Fatalf("fired %d shots", g.Score.ShotsFired)
	}
	if n := projectiles(); n != 0 {
		t.Errorf("%d projectiles still flying after the hit", n)
	}
	want := rock.Health.Max - g.Config.Weapon.Damage
	if rock.Despawned() || rock.Health.Current != want {
		t.Fatalf("rock health %v despawned %v, want %v", rock.Health.Current, rock.Despawned(), want)
	}
	if g.Score.Points != 0 {
		t.Errorf("scored %d for a hit", g.Score.Points)
	}

	shoot()
	if n := projectiles(); n != 0 {
		t.Errorf("%d projectiles still flying after the kill", n)
	}
	if !rock.Despawned() {
		t.Fatalf("rock survived with %v health", rock.Health.Current)
	}
	if got := g.Asteroids.Count(); got != g.Config.Asteroids.Fragments {
		t.Errorf("got %d fragments, want %d", got, g.Config.Asteroids.Fragments)
	}
	if g.Score.Points != g.Config.Asteroids.Points[0] || g.Score.Destroyed != 1 {
		t.Errorf("score %d destroyed %d", g.Score.Points, g.Score.Destroyed)
	}
	if got, want := g.Physics.BodyCount(), 1+g.Config.Asteroids.Fragments; got != want {
		t.Errorf("box2d has %d bodies, want %d", got, want)
	}
}

func TestRamDamagesPlayer(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	rock := NewEntity(AsteroidBuilder{
		Position: g.Player.Body.Position.Add(mgl32.Vec2{20, 0}),
		Radius:   20,
		Config:   g.Config.Asteroids,
		Rand:     g.Rand,
	})
	g.Spawn(rock)
	steps(g, 1)
	steps(g, 1)

	want := g.Config.Ship.Health - 20*g.Config.Asteroids.DamagePerRadius
	if got := g.Player.Health.Current; got != want {
		t.Errorf("player health %v, want %v", got, want)
	}
	if g.Player.Health.Invulnerable <= 0 {
		t.Error("player not invulnerable after the hit")
	}
	if g.Score.Points != 0 {
		t.Errorf("ramming scored %d", g.Score.Points)
	}
	if rock.Health.Current != rock.Health.Max {
		t.Errorf("asteroid took damage from the hull: %v", rock.Health.Current)
	}
}

func TestGameOver(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	var over []GameOverMessage
	g.Mailbox.Listen(GameOverMessage{}.Type(), func(msg engo.Message) {
		over = append(over, msg.(GameOverMessage))
	})

	g.Player.Input.Forward = true
	steps(g, 10)
	g.Destroy(g.Player, nil)
	steps(g, 1)

	if !g.Over || len(over) != 1 {
		t.Fatalf("over = %v, messages %d", g.Over, len(over))
	}
	if g.Physics.BodyCount() != 0 {
		t.Errorf("box2d still has %d bodies", g.Physics.BodyCount())
	}
	// Despawning the hull takes its engines and gun with it.
	if g.EntityCount() != g.Particles.Count() {
		t.Errorf("%d entities left besides particles", g.EntityCount()-g.Particles.Count())
	}
}

func TestWrap(t *testing.T) {
	g := newTestGame(t, 1, emptyField)
	g.Physics.Teleport(g.Player, mgl32.Vec2{-10, 500})
	steps(g, 1)
	if x := g.Player.Body.Position.X(); x < g.Config.World.Width-20 {
		t.Errorf("player at x=%v, want wrapped to the right edge", x)
	}
}

func TestWrapToAABB(t *testing.T) {
	box := engo.AABB{Max: engo.Point{X: 100, Y: 50}}
	var tests = []struct {
		in      mgl32.Vec2
		want    mgl32.Vec2
		wrapped bool
	}{
		{mgl32.Vec2{10, 10}, mgl32.Vec2{10, 10}, false},
		{mgl32.Vec2{-5, 10}, mgl32.Vec2{95, 10}, true},
		{mgl32.Vec2{105, 10}, mgl32.Vec2{5, 10}, true},
		{mgl32.Vec2{10, -1}, mgl32.Vec2{10, 49}, true},
		{mgl32.Vec2{10, 51}, mgl32.Vec2{10, 1}, true},
		{mgl32.Vec2{-1, 51}, mgl32.Vec2{99, 1}, true},
		{mgl32.Vec2{100, 50}, mgl32.Vec2{100, 50}, false},
	}
	for _, tt := range tests {
		got, wrapped := wrapToAABB(tt.in, box)
		if !nearVec(got, tt.want) || wrapped != tt.wrapped {
			t.Errorf("wrapToAABB(%v) = %v, %v; want %v, %v", tt.in, got, wrapped, tt.want, tt.wrapped)
		}
	}
}

func TestPointsFor(t *testing.T) {
	table := []int{20, 50, 100}
	var tests = []struct {
		generation int
		want       int
	}{
		{0, 20},
		{1, 50},
		{2, 100},
		{5, 100},
		{-1, 20},
	}
	for _, tt := range tests {
		if got := PointsFor(table, tt.generation); got != tt.want {
			t.Errorf("PointsFor(%d) = %d, want %d", tt.generation, got, tt.want)
		}
	}
	if got := PointsFor(nil, 0); got != 0 {
		t.Errorf("PointsFor(nil) = %d", got)
	}
}

func TestParticleCap(t *testing.T) {
	g := newTestGame(t, 1, func(cfg *Config) {
		emptyField(cfg)
		cfg.Particles.MaxParticles = 10
	})
	builders := Explosion(mgl32.Vec2{100, 100}, mgl32.Vec2{}, 50, g.Config.Particles, g.Rand)
	if n := g.Particles.Emit(builders...); n != 10 {
		t.Errorf("emitted %d, want 10", n)
	}
	if n := g.Particles.Emit(builders...); n != 0 {
		t.Errorf("emitted %d over the cap", n)
	}
	steps(g, 1)
	if g.Particles.Count() > 10 {
		t.Errorf("%d particles alive", g.Particles.Count())
	}
}
