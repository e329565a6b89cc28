// spacerocks is a small arcade asteroid shooter.
//
// Usage:
//
//	spacerocks play        - Run the game in engo's loop
//	spacerocks simulate    - Step the game headless with the autopilot and report
//	spacerocks config      - Print the effective configuration
//
// Global flags:
//
//	--config <path> - Config file (default: search ~/.spacerocks, ./configs, embedded)
//	--seed <value>  - RNG seed (0 = time based)
//	--fps <rate>    - Tick rate
//	--verbose       - Debug logging
//	--respawn       - Bring the ship back after death instead of ending
package main

import (
	"fmt"
	"os"
	"time"

	colorable "github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ScottBrooks/spacerocks"
)

var (
	flagConfig  string
	flagSeed    int64
	flagFPS     int
	flagVerbose bool
	flagRespawn bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacerocks",
	Short: "Spacerocks - shoot the rocks, dodge the rocks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(colorable.NewColorableStdout())
		log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: true})
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagRespawn, "respawn", false, "Respawn the ship after death")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (spacerocks.Config, error) {
	cfg, err := spacerocks.LoadConfig(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if flagRespawn {
		cfg.Respawn.Enabled = true
	}
	return cfg, nil
}

func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
