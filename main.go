// mitchbros is a small side-scrolling platformer.
//
// Usage:
//
//	mitchbros [play]          - Open the game window
//	mitchbros levels          - List the levels the loader can find
//	mitchbros blocks          - Print the tile palette
//	mitchbros simulate        - Run the game headless with scripted input
//
// Global flags:
//
//	--config <path>     - Config file (default: user config dir, ./configs, built-in)
//	--debug             - Debug logging and the in-game debug overlay
//	--seed <value>      - RNG seed for enemy behavior
//	--level-dir <dir>   - Directory with level JSON overriding the built-in levels
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/mitchbros/config"
)

var (
	flagConfig   string
	flagDebug    bool
	flagSeed     uint64
	flagLevelDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mitchbros",
	Short: "Mitch Super Bros - collect the pizzas, stomp the bugs",
	Long: `Mitch Super Bros is a side-scrolling platformer.

Available commands:
  play      - Open the game window (default)
  levels    - List the available levels
  blocks    - Print the tile palette
  simulate  - Drive the game headless with scripted input

Examples:
  mitchbros
  mitchbros play --level level2 --watch
  mitchbros simulate --script "confirm:16ms,wait:3s,right+jump:2s"`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and overlay")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, or the clock when playing)")
	rootCmd.PersistentFlags().StringVar(&flagLevelDir, "level-dir", "", "Directory with level JSON files")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig reads the config file and applies the global flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("level-dir") {
		cfg.LevelDir = flagLevelDir
	}
	return cfg, nil
}

func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "mitchbros",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
