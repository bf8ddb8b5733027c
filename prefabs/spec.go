package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/mitchbros/ecs/component"
)

const catalogFile = "catalog.yaml"

// Catalog is the data side of the behavior model: player tuning, enemy
// archetypes, animation cycles and placeholder sprite colors.
type Catalog struct {
	Player     PlayerSpec               `yaml:"player"`
	Archetypes []ArchetypeSpec          `yaml:"archetypes"`
	Animations map[string]AnimationSpec `yaml:"animations"`
	Ambient    []string                 `yaml:"ambient"`
	Colors     map[string]YAMLColor     `yaml:"colors"`

	byName map[string]int
}

type PlayerSpec struct {
	MaxSpeedX    float64 `yaml:"max_speed_x"`
	MaxSpeedY    float64 `yaml:"max_speed_y"`
	Acceleration float64 `yaml:"acceleration"`
	Gravity      float64 `yaml:"gravity"`
	Deceleration float64 `yaml:"deceleration"`
	JumpStrength float64 `yaml:"jump_strength"`
	Animation    string  `yaml:"animation"`
}

// ArchetypeSpec is the constructor parameter set of one named enemy.
type ArchetypeSpec struct {
	Name         string              `yaml:"name"`
	Kind         component.EnemyKind `yaml:"kind"`
	MaxSpeedX    float64             `yaml:"max_speed_x"`
	MaxSpeedY    float64             `yaml:"max_speed_y"`
	Acceleration float64             `yaml:"acceleration"`
	Gravity      float64             `yaml:"gravity"`
	Animation    string              `yaml:"animation"`
	Direction    float64             `yaml:"direction"`
	Invincible   bool                `yaml:"invincible"`
	IgnoreBlocks bool                `yaml:"ignore_blocks"`
	Script       string              `yaml:"script"`
}

type AnimationSpec struct {
	Frames      []string `yaml:"frames"`
	Speed       float64  `yaml:"speed"`
	Directional bool     `yaml:"directional"`
}

var ErrUnknownArchetype = errors.New("prefabs: unknown archetype")

// LoadCatalog reads catalog.yaml, preferring a copy in ./prefabs on disk.
func LoadCatalog() (*Catalog, error) {
	data, err := Load(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", catalogFile, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", catalogFile, err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	c.byName = make(map[string]int, len(c.Archetypes))
	for i, a := range c.Archetypes {
		if strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("prefabs: archetype %d has no name", i)
		}
		if a.Kind == component.KindUnknown {
			return fmt.Errorf("prefabs: archetype %s has no kind", a.Name)
		}
		if _, dup := c.byName[a.Name]; dup {
			return fmt.Errorf("prefabs: duplicate archetype %s", a.Name)
		}
		if _, ok := c.Animations[a.Animation]; !ok {
			return fmt.Errorf("prefabs: archetype %s: unknown animation %q", a.Name, a.Animation)
		}
		if a.Direction != -1 && a.Direction != 1 {
			return fmt.Errorf("prefabs: archetype %s: direction must be -1 or 1", a.Name)
		}
		c.byName[a.Name] = i
	}
	if _, ok := c.Animations[c.Player.Animation]; !ok {
		return fmt.Errorf("prefabs: player: unknown animation %q", c.Player.Animation)
	}
	for _, name := range c.Ambient {
		if _, ok := c.Animations[name]; !ok {
			return fmt.Errorf("prefabs: ambient: unknown animation %q", name)
		}
	}
	return nil
}

// Archetype looks up an enemy by the name used in level files.
func (c *Catalog) Archetype(name string) (ArchetypeSpec, error) {
	if c == nil {
		return ArchetypeSpec{}, fmt.Errorf("%w: %s", ErrUnknownArchetype, name)
	}
	if c.byName == nil {
		if err := c.index(); err != nil {
			return ArchetypeSpec{}, err
		}
	}
	i, ok := c.byName[name]
	if !ok {
		return ArchetypeSpec{}, fmt.Errorf("%w: %s", ErrUnknownArchetype, name)
	}
	return c.Archetypes[i], nil
}

func (c *Catalog) Animation(name string) (AnimationSpec, bool) {
	if c == nil {
		return AnimationSpec{}, false
	}
	a, ok := c.Animations[name]
	return a, ok
}

// Color returns the placeholder color for a sprite, trying the name without
// its Left/Right suffix and frame digit before falling back.
func (c *Catalog) Color(sprite string, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	name := sprite
	for {
		if col, ok := c.Colors[name]; ok && col.Color != nil {
			return col.Color
		}
		trimmed := strings.TrimSuffix(strings.TrimSuffix(name, "Left"), "Right")
		trimmed = strings.TrimRight(trimmed, "0123456789")
		if trimmed == name || trimmed == "" {
			return fallback
		}
		name = trimmed
	}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
