package main

import (
	"github.com/EngoEngine/engo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ScottBrooks/spacerocks"
)

var (
	flagHeadless bool
	flagNoPilot  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the game in engo's loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagNoPilot {
			cfg.Autopilot.Enabled = false
		}

		s := seed()
		log.WithField("seed", s).Info("Starting")

		opts := engo.RunOptions{
			Title:        "Spacerocks",
			Width:        int(cfg.World.Width),
			Height:       int(cfg.World.Height),
			HeadlessMode: flagHeadless,
			FPSLimit:     flagFPS,
		}
		engo.Run(opts, &spacerocks.GameScene{Config: cfg, Seed: s, ExitOnGameOver: true})
		return nil
	},
}

func init() {
	playCmd.Flags().BoolVar(&flagHeadless, "headless", true, "Run without a window")
	playCmd.Flags().BoolVar(&flagNoPilot, "no-autopilot", false, "Leave the ship idle instead of flying it")
}
