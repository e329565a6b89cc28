package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

type WeaponComponent struct {
	Cooldown  float32
	Remaining float32

	MuzzleSpeed float32
	Lifetime    float32
	Damage      float32
	Radius      float32
	EnergyCost  float32

	// Direction is the local firing direction, +X when zero.
	Direction mgl32.Vec2
	Trigger   bool
}

type WeaponBuilder struct {
	Config WeaponConfig
}

func (wb WeaponBuilder) Build(e *Entity) {
	c := wb.Config
	e.Weapon = &WeaponComponent{
		Cooldown:    c.Cooldown,
		MuzzleSpeed: c.MuzzleSpeed,
		Lifetime:    c.Lifetime,
		Damage:      c.Damage,
		Radius:      c.Radius,
		EnergyCost:  c.EnergyCost,
		Direction:   mgl32.Vec2{1, 0},
	}
}

// WeaponSystem counts cooldowns down, recharges energy and fires projectiles
// for triggered weapons.
type WeaponSystem struct {
	G *Game

	weapons []*Entity
	cells   []*Entity
}

func (ws *WeaponSystem) Add(e *Entity) {
	if e.Weapon != nil {
		ws.weapons = append(ws.weapons, e)
	}
	if e.Energy != nil {
		ws.cells = append(ws.cells, e)
	}
}
func (ws *WeaponSystem) Remove(basic ecs.BasicEntity) {
	ws.weapons = removeEntity(ws.weapons, basic)
	ws.cells = removeEntity(ws.cells, basic)
}
func (*WeaponSystem) Priority() int { return priorityWeapon }
func (ws *WeaponSystem) Update(dt float32) {
	for _, e := range ws.cells {
		e.Energy.Recharge(dt)
	}

	for _, e := range ws.weapons {
		w := e.Weapon
		w.Remaining -= dt
		if w.Remaining <= 0 {
			w.Remaining = 0
		}
		if !w.Trigger || w.Remaining > 0 || e.despawned {
			continue
		}
		root, _, _ := e.Root()
		if root == nil {
			continue
		}
		if root.Energy != nil && !root.Energy.Spend(w.EnergyCost) {
			continue
		}
		ws.fire(e, root)
		w.Remaining = w.Cooldown
	}
}

func (ws *WeaponSystem) fire(e, root *Entity) {
	w := e.Weapon
	pos, angle, vel, _ := e.WorldTransform()
	dir := w.Direction
	if dir.Len() == 0 {
		dir = mgl32.Vec2{1, 0}
	}
	dir = Rotate(dir.Normalize(), angle)

	p := NewEntity(ProjectileBuilder{
		Position: pos,
		Velocity: vel.Add(dir.Mul(w.MuzzleSpeed)),
		Radius:   w.Radius,
		Damage:   w.Damage,
		Lifetime: w.Lifetime,
		Owner:    root.ID(),
	})
	ws.G.Spawn(p)
	log.WithFields(log.Fields{"owner": root.ID(), "pos": pos}).Debug("Weapon fired")
	ws.G.Mailbox.Dispatch(FiredMessage{Weapon: e, Projectile: p})
}
