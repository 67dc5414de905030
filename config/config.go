// Package config loads playground configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
	"github.com/milk9111/tilephys/physics"
	"gopkg.in/yaml.v3"
)

var (
	ErrBounds    = errors.New("config: bounds width and height must be positive")
	ErrLogFormat = errors.New("config: unknown log format")
)

type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Log     LogConfig     `yaml:"log"`
}

type VectorConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorConfig) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	Gravity  VectorConfig `yaml:"gravity"`
	MaxSpeed float64      `yaml:"max_speed"`
	// Bounds overrides the level bounds when set.
	Bounds *RectConfig `yaml:"bounds,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Default mirrors the physics world defaults.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:  VectorConfig{X: 0, Y: common.Gravity},
			MaxSpeed: common.MaxSpeed,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default, so omitted keys keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if b := c.Physics.Bounds; b != nil && (b.Width <= 0 || b.Height <= 0) {
		return ErrBounds
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrLogFormat, c.Log.Format)
	}
	return nil
}

// Apply pushes gravity, max speed and bounds into w. Bounds are left
// untouched when the config has none.
func (p PhysicsConfig) Apply(w *physics.World) {
	if w == nil {
		return
	}
	w.SetGravity(p.Gravity.Vector())
	w.SetMaxSpeed(p.MaxSpeed)
	if b := p.Bounds; b != nil {
		w.SetWorldBounds(physics.NewRect(b.X, b.Y, b.Width, b.Height))
	}
}

// Logger builds a slog logger writing to out.
func (l LogConfig) Logger(out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(l.Level)}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
