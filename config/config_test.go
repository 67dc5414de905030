package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
	"github.com/milk9111/tilephys/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("log:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, common.Gravity, cfg.Physics.Gravity.Y)
	assert.Equal(t, common.MaxSpeed, cfg.Physics.MaxSpeed)
	assert.Nil(t, cfg.Physics.Bounds)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		err  error
	}{
		{"bad_bounds", "physics:\n  bounds: {x: 0, y: 0, width: 0, height: 10}\n", ErrBounds},
		{"bad_format", "log:\n  format: xml\n", ErrLogFormat},
		{"bad_yaml", "physics: [", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.yaml))
			require.Error(t, err)
			if c.err != nil {
				assert.ErrorIs(t, err, c.err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	cfg, err := Parse([]byte(`
physics:
  gravity: {x: 10, y: 400}
  max_speed: 250
  bounds: {x: 0, y: 0, width: 320, height: 180}
`))
	require.NoError(t, err)

	w := physics.NewWorld()
	cfg.Physics.Apply(w)
	assert.Equal(t, cp.Vector{X: 10, Y: 400}, w.Gravity())
	assert.Equal(t, 250.0, w.MaxSpeed())
	bounds, ok := w.WorldBounds()
	require.True(t, ok)
	assert.Equal(t, physics.NewRect(0, 0, 320, 180), bounds)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "physics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("physics:\n  max_speed: 100\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100.0, cfg.Physics.MaxSpeed)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLogger(t *testing.T) {
	cases := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseLevel(c.level), c.level)
	}

	var buf bytes.Buffer
	LogConfig{Level: "warn", Format: "json"}.Logger(&buf).Info("dropped")
	assert.Empty(t, buf.String())
	LogConfig{Level: "warn", Format: "json"}.Logger(&buf).Warn("kept", "k", 1)
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}
