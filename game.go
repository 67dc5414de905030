package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilephys/config"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/ecs/entity"
	"github.com/milk9111/tilephys/ecs/render"
	"github.com/milk9111/tilephys/ecs/system"
	"github.com/milk9111/tilephys/levels"
	"github.com/milk9111/tilephys/prefabs"
	"github.com/milk9111/tilephys/script"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	cameraZoom = 2

	defaultScript = "react.tengo"
)

type Options struct {
	ConfigPath string
	LevelName  string
	ScriptPath string
	Debug      bool
	Watch      bool
}

type Game struct {
	opts   Options
	cfg    config.Config
	logger *slog.Logger

	level     *levels.Level
	world     *ecs.World
	physics   *system.PhysicsSystem
	reactions *system.ReactionSystem
	scheduler *ecs.Scheduler
	renderer  *render.Renderer
	reactor   *script.Reactor
	watcher   *config.Watcher

	debug  bool
	frames int
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger := cfg.Log.Logger(os.Stderr)
	slog.SetDefault(logger)

	lvl, err := levels.Load(opts.LevelName)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:     opts,
		cfg:      cfg,
		logger:   logger,
		level:    lvl,
		renderer: render.NewRenderer(),
		debug:    opts.Debug,
	}

	src, err := g.readScript()
	if err != nil {
		return nil, err
	}
	if g.reactor, err = script.Compile(src); err != nil {
		return nil, err
	}

	if err := g.reset(); err != nil {
		return nil, err
	}
	if opts.Watch {
		g.startWatcher()
	}
	return g, nil
}

// loadConfig falls back to the defaults when path does not exist.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func (g *Game) readScript() ([]byte, error) {
	if g.opts.ScriptPath == "" {
		return prefabs.LoadScript(defaultScript)
	}
	src, err := os.ReadFile(g.opts.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return src, nil
}

// reset rebuilds the ECS world and the physics world from the level.
func (g *Game) reset() error {
	w := ecs.NewWorld()
	w.SetLogger(g.logger)
	if err := entity.LoadLevelToWorld(w, g.level); err != nil {
		return err
	}

	cam := w.CreateEntity()
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}); err != nil {
		return err
	}
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       cameraZoom,
		Smoothness: 0.85,
		ViewWidth:  baseWidth,
		ViewHeight: baseHeight,
	}); err != nil {
		return err
	}

	g.world = w
	g.physics = system.NewPhysicsSystem(nil)
	g.reactions = system.NewReactionSystem(g.reactor)
	g.scheduler = ecs.NewScheduler(
		&inputSystem{},
		system.NewPlayerControllerSystem(),
		system.NewAISystem(),
		g.physics,
		g.reactions,
		system.NewRespawnSystem(),
		system.NewCameraSystem(),
	)
	g.applyConfig(g.cfg)
	g.logger.Info("level loaded", "level", g.opts.LevelName, "entities", len(w.Entities()))
	return nil
}

// applyConfig pushes cfg into the running worlds. Configured bounds replace
// the level bounds.
func (g *Game) applyConfig(cfg config.Config) {
	g.cfg = cfg
	g.logger = cfg.Log.Logger(os.Stderr)
	slog.SetDefault(g.logger)
	g.world.SetLogger(g.logger)
	g.physics.World().SetLogger(g.logger)
	cfg.Physics.Apply(g.physics.World())

	if b := cfg.Physics.Bounds; b != nil {
		if e, ok := g.world.First(component.LevelBoundsComponent.Kind()); ok {
			if lb, ok := ecs.Get(g.world, e, component.LevelBoundsComponent.Kind()); ok {
				*lb = component.LevelBounds{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
			}
		}
	}
}

func (g *Game) startWatcher() {
	dirs := make([]string, 0, 2)
	seen := make(map[string]bool)
	addDir := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	if g.opts.ConfigPath != "" {
		addDir(filepath.Dir(g.opts.ConfigPath))
	}
	if g.opts.ScriptPath != "" {
		addDir(filepath.Dir(g.opts.ScriptPath))
	} else {
		addDir(filepath.Join("prefabs", "scripts"))
	}
	if len(dirs) == 0 {
		return
	}

	w, err := config.NewWatcher(dirs...)
	if err != nil {
		g.logger.Warn("hot reload disabled", "err", err)
		return
	}
	g.watcher = w
	g.logger.Info("watching for changes", "dirs", dirs)
}

// pollReload applies pending file changes without blocking the frame.
func (g *Game) pollReload() {
	for g.watcher != nil {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.handleChange(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("watch error", "err", err)
		default:
			return
		}
	}
}

func (g *Game) handleChange(name string) {
	switch {
	case config.IsConfigFile(name) && sameFile(name, g.opts.ConfigPath):
		cfg, err := config.Load(name)
		if err != nil {
			g.logger.Warn("config reload failed, keeping previous config", "path", name, "err", err)
			return
		}
		g.applyConfig(cfg)
		g.logger.Info("config reloaded", "path", name)
	case config.IsScriptFile(name) && g.isActiveScript(name):
		src, err := os.ReadFile(name)
		if err != nil {
			g.logger.Warn("script reload failed", "path", name, "err", err)
			return
		}
		if err := g.reactor.Reload(src); err != nil {
			g.logger.Warn("script reload failed, keeping previous script", "path", name, "err", err)
			return
		}
		g.logger.Info("script reloaded", "path", name)
	}
}

func (g *Game) isActiveScript(name string) bool {
	if g.opts.ScriptPath != "" {
		return sameFile(name, g.opts.ScriptPath)
	}
	return filepath.Base(name) == defaultScript
}

func sameFile(a, b string) bool {
	if b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}

	g.pollReload()
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	if g.debug {
		render.DrawPhysicsDebug(g.physics.World(), g.world, screen)
		return
	}
	ebitenutil.DebugPrintAt(screen, "arrows/WASD move  space jump  R restart  F3 debug", 10, 10)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}

// Close stops hot reload.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	g.watcher = nil
	return err
}
