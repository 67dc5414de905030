// Package script runs tengo reactions to physics events. A reaction script
// sees the globals event, tile, other, vx and vy and may reassign vx and vy
// to change the velocity of the reacting body.
package script

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/physics"
)

// Event names visible to scripts as the event global.
const (
	EventTrigger = "trigger"
	EventPair    = "pair"
)

// DefaultTimeout bounds a single reaction run.
const DefaultTimeout = 20 * time.Millisecond

var ErrNoScript = errors.New("script: no script compiled")

// Reactor holds one compiled reaction script. It is not safe for concurrent
// use.
type Reactor struct {
	compiled *tengo.Compiled
	Timeout  time.Duration
}

// Compile compiles src once so reactions only pay for Run.
func Compile(src []byte) (*Reactor, error) {
	compiled, err := compile(src)
	if err != nil {
		return nil, err
	}
	return &Reactor{compiled: compiled, Timeout: DefaultTimeout}, nil
}

func compile(src []byte) (*tengo.Compiled, error) {
	s := tengo.NewScript(src)
	for name, v := range map[string]any{
		"event": "",
		"tile":  "",
		"other": "",
		"vx":    0.0,
		"vy":    0.0,
	} {
		if err := s.Add(name, v); err != nil {
			return nil, fmt.Errorf("script: declare %s: %w", name, err)
		}
	}
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return compiled, nil
}

// Reload swaps in a new script. The current script stays active when src
// fails to compile.
func (r *Reactor) Reload(src []byte) error {
	compiled, err := compile(src)
	if err != nil {
		return err
	}
	r.compiled = compiled
	return nil
}

// OnTrigger reacts to a body covering a trigger tile.
func (r *Reactor) OnTrigger(tile physics.TileType, vel cp.Vector) (cp.Vector, error) {
	return r.run(EventTrigger, tile.String(), "", vel)
}

// OnPair reacts to a body overlapping another actor; other names what the
// body touched.
func (r *Reactor) OnPair(other string, vel cp.Vector) (cp.Vector, error) {
	return r.run(EventPair, "", other, vel)
}

func (r *Reactor) run(event, tile, other string, vel cp.Vector) (cp.Vector, error) {
	if r == nil || r.compiled == nil {
		return vel, ErrNoScript
	}
	c := r.compiled
	for name, v := range map[string]any{
		"event": event,
		"tile":  tile,
		"other": other,
		"vx":    vel.X,
		"vy":    vel.Y,
	} {
		if err := c.Set(name, v); err != nil {
			return vel, fmt.Errorf("script: set %s: %w", name, err)
		}
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return vel, fmt.Errorf("script: %s reaction: %w", event, err)
	}
	return cp.Vector{X: c.Get("vx").Float(), Y: c.Get("vy").Float()}, nil
}
