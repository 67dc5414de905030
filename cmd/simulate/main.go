// Command simulate runs a level headlessly with a fixed input plan and logs
// what the physics reports each tick.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/tilephys/common"
	"github.com/milk9111/tilephys/config"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/ecs/entity"
	"github.com/milk9111/tilephys/ecs/system"
	"github.com/milk9111/tilephys/levels"
	"github.com/milk9111/tilephys/prefabs"
	"github.com/milk9111/tilephys/script"
	"github.com/milk9111/tilephys/termview"
)

// plannedInput feeds the same movement every tick and presses jump on a
// fixed period.
type plannedInput struct {
	moveX, moveY float64
	jumpEvery    int
	tick         int
}

func (p *plannedInput) Update(w *ecs.World) {
	p.tick++
	pressed := p.jumpEvery > 0 && p.tick%p.jumpEvery == 0
	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.MoveX = p.moveX
		in.MoveY = p.moveY
		in.Jump = pressed
		in.JumpPressed = pressed
	})
}

// eventLog records collision events before the reaction system drains them.
type eventLog struct {
	counts map[ecs.CollisionEventKind]int
}

func (l *eventLog) Update(w *ecs.World) {
	pending := w.Events().Drain()
	for _, evt := range pending {
		if ce, ok := evt.Data.(ecs.CollisionEvent); ok {
			l.counts[ce.Kind]++
			w.Logger().Debug("collision", "entity", ce.Entity, "kind", ce.Kind, "other", ce.Other, "tile", ce.Tile)
		}
	}
	// the reaction system still needs them
	for _, evt := range pending {
		w.Events().Push(evt)
	}
}

type options struct {
	configPath string
	levelName  string
	scriptPath string
	ticks      int
	input      *plannedInput
	// screen shows the run live in the terminal when set.
	screen tcell.Screen
}

func main() {
	configPath := flag.String("config", "playground.yaml", "YAML config file; defaults apply when it does not exist")
	levelName := flag.String("level", "demo.json", "level file on disk or embedded level name")
	scriptPath := flag.String("script", "", "reaction script (defaults to the embedded react.tengo)")
	ticks := flag.Int("ticks", 5*common.TicksPerSecond, "number of ticks to simulate")
	moveX := flag.Float64("move", 1, "horizontal input in [-1, 1]")
	moveY := flag.Float64("climb", 0, "vertical input in [-1, 1]; negative climbs up")
	jumpEvery := flag.Int("jump-every", 0, "press jump every n ticks; 0 never jumps")
	view := flag.Bool("view", false, "draw the run in the terminal in real time (Esc or q quits)")
	flag.Parse()

	opts := options{
		configPath: *configPath,
		levelName:  *levelName,
		scriptPath: *scriptPath,
		ticks:      *ticks,
		input:      &plannedInput{moveX: *moveX, moveY: *moveY, jumpEvery: *jumpEvery},
	}
	if *view {
		screen, err := tcell.NewScreen()
		if err != nil {
			log.Fatal(err)
		}
		if err := screen.Init(); err != nil {
			log.Fatal(err)
		}
		opts.screen = screen
	}

	err := run(opts)
	if opts.screen != nil {
		opts.screen.Fini()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return err
	}
	var out io.Writer = os.Stderr
	if opts.screen != nil {
		// the terminal belongs to the view
		out = io.Discard
	}
	logger := cfg.Log.Logger(out)

	lvl, err := levels.Load(opts.levelName)
	if err != nil {
		return err
	}

	var src []byte
	if opts.scriptPath == "" {
		src, err = prefabs.LoadScript("react.tengo")
	} else {
		src, err = os.ReadFile(opts.scriptPath)
	}
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	reactor, err := script.Compile(src)
	if err != nil {
		return err
	}

	w := ecs.NewWorld()
	w.SetLogger(logger)
	if err := entity.LoadLevelToWorld(w, lvl); err != nil {
		return err
	}

	ps := system.NewPhysicsSystem(nil)
	ps.World().SetLogger(logger)
	cfg.Physics.Apply(ps.World())

	events := &eventLog{counts: make(map[ecs.CollisionEventKind]int)}
	scheduler := ecs.NewScheduler(
		opts.input,
		system.NewPlayerControllerSystem(),
		system.NewAISystem(),
		ps,
		events,
		system.NewReactionSystem(reactor),
		system.NewRespawnSystem(),
	)

	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return fmt.Errorf("level %s has no player", opts.levelName)
	}

	var (
		view  *termview.View
		quit  <-chan struct{}
		frame *time.Ticker
	)
	if opts.screen != nil {
		view = termview.New(opts.screen, lvl.TileSize)
		quit = watchQuit(opts.screen)
		frame = time.NewTicker(time.Second / common.TicksPerSecond)
		defer frame.Stop()
	}

	for i := 0; i < opts.ticks; i++ {
		scheduler.Update(w)
		if view != nil {
			view.Draw(w, status(w, player, i))
			opts.screen.Show()
			select {
			case <-quit:
				return nil
			case <-frame.C:
			}
		}
		if i%common.TicksPerSecond != 0 {
			continue
		}
		t, _ := ecs.Get(w, player, component.TransformComponent.Kind())
		body, _ := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
		state, _ := ecs.Get(w, player, component.CollisionStateComponent.Kind())
		logger.Info("player",
			"tick", i,
			"x", t.X, "y", t.Y,
			"vx", body.Velocity.X, "vy", body.Velocity.Y,
			"grounded", state.Grounded(),
			"ladder", state.Contacts.OnLadder,
		)
	}

	logger.Info("done",
		"ticks", opts.ticks,
		"collected", collected(w, player),
		"grounded_events", events.counts[ecs.CollisionEventGrounded],
		"hazard_events", events.counts[ecs.CollisionEventHitHazard],
		"overlap_events", events.counts[ecs.CollisionEventOverlap],
		"ladder_events", events.counts[ecs.CollisionEventLadder],
	)
	return nil
}

func collected(w *ecs.World, player ecs.Entity) int {
	if p, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		return p.Collected
	}
	return 0
}

func status(w *ecs.World, player ecs.Entity, tick int) string {
	grounded := false
	if state, ok := ecs.Get(w, player, component.CollisionStateComponent.Kind()); ok {
		grounded = state.Grounded()
	}
	return fmt.Sprintf("tick %d  coins %d  grounded %v  (Esc quits)", tick, collected(w, player), grounded)
}

// watchQuit closes the returned channel on Esc, q or Ctrl-C. The polling
// goroutine ends when the screen is finalized.
func watchQuit(screen tcell.Screen) <-chan struct{} {
	quit := make(chan struct{})
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || (key.Key() == tcell.KeyRune && key.Rune() == 'q') {
				close(quit)
				return
			}
		}
	}()
	return quit
}
