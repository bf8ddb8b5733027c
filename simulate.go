package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/milk9111/mitchbros/audio"
	"github.com/milk9111/mitchbros/levels"
	"github.com/milk9111/mitchbros/prefabs"
	"github.com/milk9111/mitchbros/render"
	"github.com/milk9111/mitchbros/session"
)

var (
	flagScript   string
	flagTick     time.Duration
	flagSimLevel string
	flagSounds   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the game headless with scripted input",
	Long: `Drives the game without a window using a fixed timestep and prints
the run summary.

The script is a comma separated list of buttons:duration steps. Buttons are
left, right, jump and confirm joined with '+'; wait holds nothing.

Examples:
  mitchbros simulate --script "confirm:16ms,wait:3100ms,right:4s"
  mitchbros simulate --level level3 --seed 7 --sounds`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagScript, "script", "confirm:16ms,wait:3100ms,right:2s,right+jump:500ms,right:2s", "Scripted input")
	simulateCmd.Flags().DurationVar(&flagTick, "tick", time.Second/60, "Fixed timestep")
	simulateCmd.Flags().StringVar(&flagSimLevel, "level", "", "Level to start from (default from config)")
	simulateCmd.Flags().BoolVar(&flagSounds, "sounds", false, "Print every audio trigger")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagSimLevel != "" {
		cfg.StartLevel = flagSimLevel
	}
	logger := newLogger(cfg.Debug)

	steps, err := session.ParseScript(flagScript)
	if err != nil {
		return err
	}
	catalog, err := prefabs.LoadCatalog()
	if err != nil {
		return err
	}

	rec := &audio.Recorder{}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()
	s, err := session.New(ctx, session.Options{
		Loader:     levels.NewFSLoader(cfg.LevelDir),
		Catalog:    catalog,
		Audio:      rec,
		Logger:     logger,
		Seed:       cfg.Seed,
		StartLevel: cfg.StartLevel,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := session.Simulate(ctx, s, steps, flagTick)
	if err != nil {
		return err
	}

	fmt.Printf("State:   %s\n", res.State)
	fmt.Printf("Level:   %s\n", res.Level)
	fmt.Printf("Frames:  %d\n", res.Frames)
	fmt.Printf("Pizzas:  %d/%d\n", res.Totals.Collected, res.Totals.Total)
	fmt.Printf("Deaths:  %d\n", res.Totals.Deaths)
	fmt.Printf("Time:    %s\n", render.FormatTime(res.Totals.GameTime, 2))
	if x, y, ok := s.PlayerPosition(); ok {
		fmt.Printf("Player:  X:%.0f Y:%.0f\n", x, y)
	}
	if flagSounds {
		for _, c := range rec.Calls() {
			fmt.Printf("  %-8s %s\n", c.Op, c.Name)
		}
	}
	return nil
}
