package spacerocks

import (
	"math/rand"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	log "github.com/sirupsen/logrus"
)

// GameScene runs a Game inside engo's loop.
type GameScene struct {
	Config Config
	Seed   int64
	// ExitOnGameOver stops engo once the player is destroyed.
	ExitOnGameOver bool

	Game *Game
}

func (*GameScene) Preload() {}
func (gs *GameScene) Setup(u engo.Updater) {
	w, ok := u.(*ecs.World)
	if !ok {
		log.Fatalf("Unexpected updater %T", u)
	}

	gs.Game = NewGame(w, engo.Mailbox, gs.Config, rand.New(rand.NewSource(gs.Seed)))
	log.WithFields(log.Fields{
		"seed":      gs.Seed,
		"asteroids": gs.Game.Asteroids.Count(),
		"autopilot": gs.Config.Autopilot.Enabled,
	}).Info("Game started")

	engo.Mailbox.Listen(GameOverMessage{}.Type(), func(msg engo.Message) {
		gm, ok := msg.(GameOverMessage)
		if !ok {
			return
		}
		log.WithFields(log.Fields{"score": gm.Score, "elapsed": gm.Elapsed}).Info("Game over")
		if gs.ExitOnGameOver {
			engo.Exit()
		}
	})
}
func (*GameScene) Type() string { return "Game" }
