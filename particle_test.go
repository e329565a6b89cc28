package spacerocks

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParticleAdvance(t *testing.T) {
	p := ParticleComponent{
		Lifetime:   1,
		StartSize:  4,
		EndSize:    0,
		StartColor: color.RGBA{R: 255, A: 255},
		EndColor:   color.RGBA{B: 255},
		Velocity:   mgl32.Vec2{10, 0},
	}

	if !p.Advance(0.5) {
		t.Fatal("particle died halfway")
	}
	if p.Size != 2 {
		t.Errorf("size = %v, want 2", p.Size)
	}
	if want := (color.RGBA{R: 128, B: 128, A: 128}); p.Color != want {
		t.Errorf("color = %v, want %v", p.Color, want)
	}
	if !nearVec(p.Position, mgl32.Vec2{5, 0}) {
		t.Errorf("position = %v, want (5,0)", p.Position)
	}

	if p.Advance(0.5) {
		t.Error("particle outlived its lifetime")
	}
	if p.Size != 0 || p.Color != p.EndColor {
		t.Errorf("final size %v color %v", p.Size, p.Color)
	}
	if p.Progress() != 1 {
		t.Errorf("progress = %v, want 1", p.Progress())
	}
}

func TestParticleDamping(t *testing.T) {
	p := ParticleComponent{Lifetime: 10, Velocity: mgl32.Vec2{100, 0}, Damping: 2}
	p.Advance(0.5)
	if p.Velocity.X() >= 100 || p.Velocity.X() <= 0 {
		t.Errorf("velocity = %v, want slowed but still moving", p.Velocity)
	}
}

func TestEmitter(t *testing.T) {
	var tests = []struct {
		name     string
		rate     float32
		throttle float32
		dt       float32
		calls    int
		want     int
	}{
		{"full throttle", 4, 1, 0.25, 4, 4},
		{"half throttle accumulates", 4, 0.5, 0.25, 4, 2},
		{"idle", 4, 0, 0.25, 4, 0},
		{"reverse throttle", 4, -1, 0.25, 4, 0},
		{"no rate", 0, 1, 0.25, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := EmitterComponent{Rate: tt.rate}
			total := 0
			for i := 0; i < tt.calls; i++ {
				total += em.Emit(tt.throttle, tt.dt)
			}
			if total != tt.want {
				t.Errorf("emitted %d, want %d", total, tt.want)
			}
		})
	}
}

func TestExplosion(t *testing.T) {
	cfg := DefaultConfig().Particles
	rng := rand.New(rand.NewSource(9))

	var tests = []struct {
		radius float32
		want   int
	}{
		{0.2, 1},
		{20, 20},
		{500, cfg.ExplosionMax},
	}
	for _, tt := range tests {
		builders := Explosion(mgl32.Vec2{10, 10}, mgl32.Vec2{}, tt.radius, cfg, rng)
		if len(builders) != tt.want {
			t.Errorf("radius %v gave %d particles, want %d", tt.radius, len(builders), tt.want)
		}
		for _, b := range builders {
			e := NewEntity(b)
			if e.Particle == nil || !e.Marks.Has(MarkParticle) {
				t.Fatalf("explosion built %+v", e)
			}
			if e.Particle.Lifetime <= 0 || e.Particle.Lifetime > cfg.Lifetime {
				t.Errorf("lifetime %v", e.Particle.Lifetime)
			}
		}
	}
}
