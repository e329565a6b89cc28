package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

// RespawnSystem brings the player back after Delay seconds: centred, facing up,
// stopped, with idle engines, full health and energy and a spell of
// invulnerability.
type RespawnSystem struct {
	G      *Game
	Config RespawnConfig

	Deaths  int
	waiting bool
	timer   float32
}

func (rs *RespawnSystem) New(*ecs.World) {
	rs.G.Mailbox.Listen(DestroyedMessage{}.Type(), func(msg engo.Message) {
		dm, ok := msg.(DestroyedMessage)
		if !ok || dm.Entity != rs.G.Player || rs.waiting {
			return
		}
		rs.Deaths++
		rs.waiting = true
		rs.timer = rs.Config.Delay
		log.WithFields(log.Fields{"deaths": rs.Deaths, "delay": rs.Config.Delay}).Info("Player down")
	})
}

// Waiting reports whether the player is dead and due back.
func (rs *RespawnSystem) Waiting() bool { return rs.waiting }

func (*RespawnSystem) Remove(ecs.BasicEntity) {}
func (*RespawnSystem) Priority() int          { return priorityRespawn }
func (rs *RespawnSystem) Update(dt float32) {
	if !rs.waiting {
		return
	}
	rs.timer -= dt
	if rs.timer > 0 {
		return
	}
	rs.waiting = false
	rs.Reset(rs.G.Player)
}

// Reset puts ship back at the centre of the world as good as new.
func (rs *RespawnSystem) Reset(ship *Entity) {
	if ship == nil || ship.despawned {
		return
	}
	g := rs.G
	center := mgl32.Vec2{g.Config.World.Width / 2, g.Config.World.Height / 2}
	g.Physics.Place(ship, center, -90)

	if h := ship.Health; h != nil {
		h.Current = h.Max
		h.Dead = false
		h.Invulnerable = rs.Config.InvulnerableFor
	}
	if en := ship.Energy; en != nil {
		en.Current = en.Max
	}
	if ship.Input != nil {
		*ship.Input = PlayerInputComponent{}
	}
	if st := ship.Steering; st != nil {
		st.Active = false
		st.Control.Reset()
	}
	ship.each(func(e *Entity) {
		if e.Engine != nil {
			e.Engine.Target = 0
			e.Engine.Throttle.Set(0)
		}
		if e.Weapon != nil {
			e.Weapon.Trigger = false
			e.Weapon.Remaining = 0
		}
	})

	log.WithField("deaths", rs.Deaths).Info("Player respawned")
	g.Mailbox.Dispatch(RespawnedMessage{Player: ship})
}
