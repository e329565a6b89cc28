package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	log "github.com/sirupsen/logrus"
)

// DamageSystem resolves collisions into damage and counts invulnerability down.
type DamageSystem struct {
	G *Game

	entities []*Entity
}

func (ds *DamageSystem) New(*ecs.World) {
	ds.G.Mailbox.Listen(CollisionMessage{}.Type(), func(msg engo.Message) {
		cm, ok := msg.(CollisionMessage)
		if !ok {
			return
		}
		ds.hit(cm.A, cm.B)
		ds.hit(cm.B, cm.A)
	})
}

func (ds *DamageSystem) Add(e *Entity) {
	if e.Health != nil {
		ds.entities = append(ds.entities, e)
	}
}
func (ds *DamageSystem) Remove(basic ecs.BasicEntity) {
	ds.entities = removeEntity(ds.entities, basic)
}
func (*DamageSystem) Priority() int { return priorityDamage }
func (ds *DamageSystem) Update(dt float32) {
	for _, e := range ds.entities {
		e.Health.Tick(dt)
	}
}

// hit applies src's damage to dst when dst is one of src's targets.
func (ds *DamageSystem) hit(src, dst *Entity) {
	if src.Damage == nil || dst.Health == nil || src.despawned || dst.despawned {
		return
	}
	if !dst.Marks.Has(src.Damage.Targets) || dst.Health.Dead {
		return
	}

	killed := dst.Health.Apply(src.Damage.Amount)
	log.WithFields(log.Fields{
		"src":    src.ID(),
		"dst":    dst.ID(),
		"amount": src.Damage.Amount,
		"health": dst.Health.Current,
	}).Debug("Hit")

	if src.Damage.DespawnOnHit {
		ds.G.Despawn(src)
	}
	if killed {
		ds.G.Destroy(dst, src)
	}
}
