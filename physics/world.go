package physics

import (
	"log/slog"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/common"
)

// CollisionPair records two overlapping actors that were not resolved by
// solid push-out. A and B follow registration order.
type CollisionPair struct {
	A, B Actor
}

// TriggerEvent records an actor covering a trigger tile this frame.
type TriggerEvent struct {
	Actor Actor
	Tile  TileType
}

// World steps registered bodies against registered tile grids. It holds
// non-owning references only: callers unregister before discarding a body
// or grid, and never register or unregister while Update runs.
type World struct {
	bodies slab[*Body]
	grids  slab[*TileGrid]

	gravity   cp.Vector
	maxSpeed  float64
	bounds    Rect
	hasBounds bool

	pairs    []CollisionPair
	triggers []TriggerEvent

	logger *slog.Logger
	// warned suppresses repeated logs for the same degraded body.
	warned map[BodyHandle]struct{}

	// scratch reused across frames
	active []bodyEntry
}

type bodyEntry struct {
	handle BodyHandle
	body   *Body
}

// NewWorld returns a world with default gravity and max speed and no bounds.
func NewWorld() *World {
	return &World{
		gravity:  cp.Vector{X: 0, Y: common.Gravity},
		maxSpeed: common.MaxSpeed,
		logger:   slog.Default(),
		warned:   make(map[BodyHandle]struct{}),
	}
}

// SetLogger replaces the logger; nil restores slog.Default().
func (w *World) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	w.logger = l
}

func (w *World) SetGravity(g cp.Vector) { w.gravity = g }
func (w *World) Gravity() cp.Vector     { return w.gravity }

// SetMaxSpeed sets the per-component velocity bound. Negative values are
// treated as their magnitude.
func (w *World) SetMaxSpeed(s float64) {
	if s < 0 {
		s = -s
	}
	w.maxSpeed = s
}

func (w *World) MaxSpeed() float64 { return w.maxSpeed }

// SetWorldBounds constrains the left, top and right edges of every body.
func (w *World) SetWorldBounds(r Rect) {
	w.bounds = r
	w.hasBounds = true
}

// ClearWorldBounds removes the bounds constraint.
func (w *World) ClearWorldBounds() {
	w.bounds = Rect{}
	w.hasBounds = false
}

// WorldBounds returns the bounds and whether they are set.
func (w *World) WorldBounds() (Rect, bool) {
	return w.bounds, w.hasBounds
}

// RegisterBody adds b to the simulation. Registering the same body twice
// returns its existing handle.
func (w *World) RegisterBody(b *Body) BodyHandle {
	if b == nil {
		return 0
	}
	if h, ok := w.bodies.find(b); ok {
		return BodyHandle(h)
	}
	h := BodyHandle(w.bodies.insert(b))
	w.logger.Debug("physics: body registered", "handle", h)
	return h
}

// UnregisterBody removes the body. It reports false for stale handles.
func (w *World) UnregisterBody(h BodyHandle) bool {
	if !w.bodies.remove(uint64(h)) {
		return false
	}
	delete(w.warned, h)
	w.logger.Debug("physics: body unregistered", "handle", h)
	return true
}

// Body resolves a handle.
func (w *World) Body(h BodyHandle) (*Body, bool) {
	return w.bodies.get(uint64(h))
}

// BodyCount is the number of registered bodies.
func (w *World) BodyCount() int {
	return w.bodies.len()
}

// EachBody visits registered bodies in registration order.
func (w *World) EachBody(fn func(h BodyHandle, b *Body)) {
	w.bodies.each(func(h uint64, b *Body) { fn(BodyHandle(h), b) })
}

// RegisterTileGrid adds a grid. Grids are consulted in registration order.
func (w *World) RegisterTileGrid(g *TileGrid) GridHandle {
	if g == nil {
		return 0
	}
	if h, ok := w.grids.find(g); ok {
		return GridHandle(h)
	}
	h := GridHandle(w.grids.insert(g))
	w.logger.Debug("physics: tile grid registered", "handle", h, "width", g.Width(), "height", g.Height())
	return h
}

// UnregisterTileGrid removes a grid. It reports false for stale handles.
func (w *World) UnregisterTileGrid(h GridHandle) bool {
	return w.grids.remove(uint64(h))
}

// TileGrid resolves a handle.
func (w *World) TileGrid(h GridHandle) (*TileGrid, bool) {
	return w.grids.get(uint64(h))
}

// TileGrids returns the registered grids in registration order.
func (w *World) TileGrids() []*TileGrid {
	out := make([]*TileGrid, 0, w.grids.len())
	w.grids.each(func(_ uint64, g *TileGrid) { out = append(out, g) })
	return out
}

// CollisionPairs returns the pairs found by the last Update. The slice is
// reused by the next Update.
func (w *World) CollisionPairs() []CollisionPair { return w.pairs }

// TriggerEvents returns the trigger events of the last Update. The slice is
// reused by the next Update.
func (w *World) TriggerEvents() []TriggerEvent { return w.triggers }

// Update advances the simulation by dt seconds. It must be called once per
// frame and never concurrently.
func (w *World) Update(dt float64) {
	w.pairs = w.pairs[:0]
	w.triggers = w.triggers[:0]

	w.active = w.active[:0]
	w.bodies.each(func(h uint64, b *Body) {
		if b != nil && b.Enabled {
			w.active = append(w.active, bodyEntry{handle: BodyHandle(h), body: b})
		}
	})

	for _, e := range w.active {
		w.integrate(e.body, dt)
	}

	grids := w.TileGrids()
	for _, e := range w.active {
		b := e.body
		if b.Owner == nil {
			w.warnOnce(e.handle, "physics: body has no owner, skipping")
			w.clampVelocity(b)
			continue
		}
		// Trigger colliders pass through tiles and world bounds.
		c, aabb, ok := b.usableCollider()
		if !ok || c.IsTrigger {
			b.Owner.Translate(b.Velocity.Mult(dt))
			w.clampVelocity(b)
			continue
		}
		w.resolveTiles(b, aabb, grids, dt)
		w.clampToBounds(b)
	}

	w.detectActorOverlaps()
	w.scanTriggers(grids)
}

func (w *World) integrate(b *Body, dt float64) {
	b.resetDirectional()
	if b.UseGravity {
		b.AddForce(w.gravity.Mult(b.mass))
	}
	b.Velocity = b.Velocity.Add(b.force.Mult(dt / b.mass))
	b.ClearForce()
}

func (w *World) clampVelocity(b *Body) {
	b.Velocity.X = cp.Clamp(b.Velocity.X, -w.maxSpeed, w.maxSpeed)
	b.Velocity.Y = cp.Clamp(b.Velocity.Y, -w.maxSpeed, w.maxSpeed)
}

func (w *World) warnOnce(h BodyHandle, msg string) {
	if _, seen := w.warned[h]; seen {
		return
	}
	w.warned[h] = struct{}{}
	w.logger.Warn(msg, "handle", h)
}
