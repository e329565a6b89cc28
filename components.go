package spacerocks

import "github.com/go-gl/mathgl/mgl32"

// Marks tag entities with what they are. Damage filters on them.
type Marks uint32

const (
	MarkPlayer Marks = 1 << iota
	MarkAsteroid
	MarkProjectile
	MarkParticle
	// MarkWrap makes a body reappear on the far side when it leaves the world.
	MarkWrap
)

// Has reports whether any of o is set.
func (m Marks) Has(o Marks) bool {
	return m&o != 0
}

type HealthComponent struct {
	Current float32
	Max     float32

	// InvulnerableFor is granted after every hit that lands.
	InvulnerableFor float32
	Invulnerable    float32

	Dead bool
}

func NewHealth(max, invulnerableFor float32) *HealthComponent {
	return &HealthComponent{Current: max, Max: max, InvulnerableFor: invulnerableFor}
}

// Apply subtracts amount and reports whether this hit killed the entity.
// Hits on dead or invulnerable entities are ignored.
func (h *HealthComponent) Apply(amount float32) bool {
	if h.Dead || h.Invulnerable > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	h.Invulnerable = h.InvulnerableFor
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		return true
	}
	return false
}

func (h *HealthComponent) Tick(dt float32) {
	h.Invulnerable -= dt
	if h.Invulnerable < 0 {
		h.Invulnerable = 0
	}
}

func (h *HealthComponent) Fraction() float32 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

type DamageComponent struct {
	Amount  float32
	Targets Marks
	// DespawnOnHit removes the source once it damages something.
	DespawnOnHit bool
}

type EnergyComponent struct {
	Current    float32
	Max        float32
	ChargeRate float32
}

func (e *EnergyComponent) Recharge(dt float32) {
	e.Current += dt * e.ChargeRate
	if e.Current >= e.Max {
		e.Current = e.Max
	}
}

// Spend takes amount if there is enough left.
func (e *EnergyComponent) Spend(amount float32) bool {
	if e.Current < amount {
		return false
	}
	e.Current -= amount
	return true
}

type PlayerInputComponent struct {
	Left      bool
	Right     bool
	Forward   bool
	Back      bool
	SwayLeft  bool
	SwayRight bool
	Attack    bool
}

// Thrust is +1 forward, -1 back.
func (p PlayerInputComponent) Thrust() float32 {
	var v float32
	if p.Forward {
		v++
	}
	if p.Back {
		v--
	}
	return v
}

// Sway is +1 right, -1 left.
func (p PlayerInputComponent) Sway() float32 {
	var v float32
	if p.SwayRight {
		v++
	}
	if p.SwayLeft {
		v--
	}
	return v
}

// Turn is +1 right, -1 left.
func (p PlayerInputComponent) Turn() float32 {
	var v float32
	if p.Right {
		v++
	}
	if p.Left {
		v--
	}
	return v
}

type ProjectileComponent struct {
	Lifetime  float32
	Remaining float32
	Owner     uint64
}

type AsteroidComponent struct {
	Radius     float32
	Generation int
	Outline    []mgl32.Vec2
}

// LocalTransform places a child relative to its parent. Angle is in degrees.
type LocalTransform struct {
	Offset mgl32.Vec2
	Angle  float32
}
