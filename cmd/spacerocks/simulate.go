package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ScottBrooks/spacerocks"
)

var flagDuration time.Duration

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Step the game headless with the autopilot and print the outcome",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if flagFPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", flagFPS)
		}
		cfg.Autopilot.Enabled = true

		s := seed()
		g := spacerocks.NewGame(&ecs.World{}, &engo.MessageManager{}, cfg, rand.New(rand.NewSource(s)))

		dt := float32(1) / float32(flagFPS)
		ticks := int(flagDuration.Seconds() * float64(flagFPS))
		start := time.Now()
		for i := 0; i < ticks && !g.Over; i++ {
			g.Step(dt)
		}

		st := g.Stats()
		log.WithFields(log.Fields{"seed": s, "ticks": ticks, "wall": time.Since(start)}).Info("Simulation finished")

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Seed:        %d\n", s)
		fmt.Fprintf(out, "Time:        %.1fs\n", st.Elapsed)
		fmt.Fprintf(out, "Score:       %d\n", st.Score)
		fmt.Fprintf(out, "Destroyed:   %d\n", st.Destroyed)
		fmt.Fprintf(out, "Shots fired: %d\n", st.ShotsFired)
		fmt.Fprintf(out, "Asteroids:   %d\n", st.Asteroids)
		fmt.Fprintf(out, "Health:      %.0f\n", st.PlayerHealth)
		fmt.Fprintf(out, "Goals:       %d\n", st.Goals)
		if cfg.Respawn.Enabled {
			fmt.Fprintf(out, "Deaths:      %d\n", st.Deaths)
		}
		if st.Over {
			fmt.Fprintln(out, "Result:      destroyed")
		} else {
			fmt.Fprintln(out, "Result:      survived")
		}
		return nil
	},
}

func init() {
	simulateCmd.Flags().DurationVar(&flagDuration, "duration", 60*time.Second, "Simulated game time")
}
