package main

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/mitchbros/audio"
	"github.com/milk9111/mitchbros/levels"
	"github.com/milk9111/mitchbros/prefabs"
	"github.com/milk9111/mitchbros/render"
	"github.com/milk9111/mitchbros/session"
)

var (
	flagLevel string
	flagWatch bool
	flagMute  bool
	flagScale int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Open the game window on the title screen.

Controls (rebindable in the config file):
  Left/A, Right/D  - Move
  Up/W/Space       - Jump
  Enter            - Start / play again
  Esc/P            - Pause

Debug overlay (--debug):
  Click            - Toggle a pizza at the cursor
  C                - Copy the level's pizza list as JSON`,
	RunE: runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevel, "level", "", "Level to start from (default from config)")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload prefabs from ./prefabs when they change")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Start with audio muted")
	cmd.Flags().IntVar(&flagScale, "scale", 0, "Window scale (default from config)")
}

func init() {
	addPlayFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("level") {
		cfg.StartLevel = flagLevel
	}
	if cmd.Flags().Changed("watch") {
		cfg.WatchPrefabs = flagWatch
	}
	if cmd.Flags().Changed("mute") {
		cfg.Audio.Mute = flagMute
	}
	if cmd.Flags().Changed("scale") && flagScale > 0 {
		cfg.Window.Scale = flagScale
	}
	logger := newLogger(cfg.Debug)

	bindings, err := NewBindings(cfg.Controls)
	if err != nil {
		return err
	}
	catalog, err := prefabs.LoadCatalog()
	if err != nil {
		return err
	}

	synth := audio.NewSynth(audio.Settings{
		Master:  cfg.Audio.Master,
		Music:   cfg.Audio.Music,
		Effects: cfg.Audio.Effects,
		Mute:    cfg.Audio.Mute,
	}, logger)
	if err := synth.Init(); err != nil {
		logger.Warn("audio unavailable", "err", err)
	}
	defer synth.Close()

	var watcher *prefabs.Watcher
	if cfg.WatchPrefabs {
		watcher, err = prefabs.NewWatcher(prefabs.Dirs()...)
		if err != nil {
			logger.Warn("prefab watcher unavailable", "err", err)
		} else {
			defer watcher.Close()
			logger.Info("watching prefabs", "dirs", watcher.WatchedDirs())
		}
	}

	seed := cfg.PlaySeed(time.Now())
	logger.Debug("rng seeded", "seed", seed)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	s, err := session.New(ctx, session.Options{
		Loader:     levels.NewFSLoader(cfg.LevelDir),
		Catalog:    catalog,
		Audio:      synth,
		Logger:     logger,
		Seed:       seed,
		StartLevel: cfg.StartLevel,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	game := NewGame(GameOptions{
		Session:  s,
		Bindings: bindings,
		Catalog:  catalog,
		Synth:    synth,
		Watcher:  watcher,
		Logger:   logger,
		Debug:    cfg.Debug,
	})

	ebiten.SetWindowSize(render.ScreenWidth*cfg.Window.Scale, render.ScreenHeight*cfg.Window.Scale)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
