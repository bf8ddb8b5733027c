package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(defaultYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
		check   func(t *testing.T, c Config)
	}{
		{
			name: "partial document keeps defaults",
			doc:  "debug: true\naudio:\n  mute: true\n",
			check: func(t *testing.T, c Config) {
				assert.True(t, c.Debug)
				assert.True(t, c.Audio.Mute)
				assert.Equal(t, 0.8, c.Audio.Master)
				assert.Equal(t, "level1", c.StartLevel)
			},
		},
		{
			name: "rebinding replaces the list",
			doc:  "controls:\n  jump: [Z]\n",
			check: func(t *testing.T, c Config) {
				assert.Equal(t, []string{"Z"}, c.Controls.Jump)
				assert.Equal(t, []string{"ArrowLeft", "A"}, c.Controls.Left)
			},
		},
		{name: "volume out of range", doc: "audio:\n  music: 1.5\n", wantErr: true},
		{name: "zero scale", doc: "window:\n  scale: 0\n", wantErr: true},
		{name: "no jump key", doc: "controls:\n  jump: []\n", wantErr: true},
		{name: "not yaml", doc: "window: [", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.doc))
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestValidateWrapsSentinel(t *testing.T) {
	c := Default()
	c.StartLevel = ""
	assert.True(t, errors.Is(c.Validate(), ErrInvalid))
}

func TestPlaySeed(t *testing.T) {
	now := time.Unix(1700000000, 42)

	c := Default()
	assert.Equal(t, uint64(now.UnixNano()), c.PlaySeed(now))
	assert.NotEqual(t, c.PlaySeed(now), c.PlaySeed(now.Add(time.Nanosecond)))

	c.Seed = 7
	assert.Equal(t, uint64(7), c.PlaySeed(now))
}

func TestLoadSearchOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)

	t.Run("embedded default", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", fileName), []byte("start_level: level2\n"), 0o644))

	t.Run("local configs directory", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "level2", cfg.StartLevel)
	})

	xdg := filepath.Join(dir, "xdg", appName)
	require.NoError(t, os.MkdirAll(xdg, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, fileName), []byte("start_level: level3\n"), 0o644))

	t.Run("user config wins", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "level3", cfg.StartLevel)
	})

	t.Run("explicit path wins and must exist", func(t *testing.T) {
		custom := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(custom, []byte("debug: true\n"), 0o644))
		cfg, err := Load(custom)
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, "level1", cfg.StartLevel)

		_, err = Load(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})
}
