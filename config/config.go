// Package config loads the player-facing settings: window, audio levels,
// key bindings and debugging switches.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName  = "mitchbros"
	fileName = "config.yaml"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

type Config struct {
	Window       Window   `yaml:"window"`
	Debug        bool     `yaml:"debug"`
	StartLevel   string   `yaml:"start_level"`
	LevelDir     string   `yaml:"level_dir"`
	WatchPrefabs bool     `yaml:"watch_prefabs"`
	Seed         uint64   `yaml:"seed"`
	Audio        Audio    `yaml:"audio"`
	Controls     Controls `yaml:"controls"`
}

type Window struct {
	Scale int    `yaml:"scale"`
	Title string `yaml:"title"`
}

// Audio levels are in [0, 1].
type Audio struct {
	Master  float64 `yaml:"master"`
	Music   float64 `yaml:"music"`
	Effects float64 `yaml:"effects"`
	Mute    bool    `yaml:"mute"`
}

// Controls maps each action to key names as ebiten spells them.
type Controls struct {
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
	Jump    []string `yaml:"jump"`
	Confirm []string `yaml:"confirm"`
	Pause   []string `yaml:"pause"`
}

// Default returns the hardcoded defaults, matching defaults/config.yaml.
func Default() Config {
	return Config{
		Window:     Window{Scale: 3, Title: "Mitch Super Bros"},
		StartLevel: "level1",
		LevelDir:   "levels",
		Audio:      Audio{Master: 0.8, Music: 0.6, Effects: 1},
		Controls: Controls{
			Left:    []string{"ArrowLeft", "A"},
			Right:   []string{"ArrowRight", "D"},
			Jump:    []string{"ArrowUp", "W", "Space"},
			Confirm: []string{"Enter", "Space"},
			Pause:   []string{"Escape", "P"},
		},
	}
}

// Load reads the configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/mitchbros/config.yaml ->
// ./configs/config.yaml -> embedded default.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), nil
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appName, fileName))
	}
	return append(paths, filepath.Join("configs", fileName))
}

// Parse decodes a document on top of the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalid = errors.New("config: invalid")

func (c *Config) Validate() error {
	if c.Window.Scale < 1 || c.Window.Scale > 8 {
		return fmt.Errorf("%w: window scale %d outside 1..8", ErrInvalid, c.Window.Scale)
	}
	for name, v := range map[string]float64{"master": c.Audio.Master, "music": c.Audio.Music, "effects": c.Audio.Effects} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s volume %.2f outside 0..1", ErrInvalid, name, v)
		}
	}
	if c.StartLevel == "" {
		return fmt.Errorf("%w: empty start level", ErrInvalid)
	}
	if len(c.Controls.Left) == 0 || len(c.Controls.Right) == 0 || len(c.Controls.Jump) == 0 {
		return fmt.Errorf("%w: left, right and jump need at least one key", ErrInvalid)
	}
	return nil
}

// PlaySeed returns Seed, or a clock-derived seed when none was set.
// Simulations read Seed directly so an unset seed stays 0 and replays match.
func (c Config) PlaySeed(now time.Time) uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(now.UnixNano())
}
