package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

type testActor struct {
	pos      cp.Vector
	scale    cp.Vector
	collider *Collider
	solid    bool
}

func (a *testActor) Position() cp.Vector       { return a.pos }
func (a *testActor) Translate(delta cp.Vector) { a.pos = a.pos.Add(delta) }
func (a *testActor) Scale() cp.Vector          { return a.scale }
func (a *testActor) Collider() *Collider       { return a.collider }
func (a *testActor) Solid() bool               { return a.solid }

func boxActor(x, y, w, h float64) *testActor {
	c := NewCollider(NewBox(w, h), AlignTopLeft)
	c.UpdateOffset(cp.Vector{X: 1, Y: 1})
	return &testActor{pos: cp.Vector{X: x, Y: y}, scale: cp.Vector{X: 1, Y: 1}, collider: c}
}

func circleActor(x, y, r float64) *testActor {
	c := NewCollider(NewCircle(r), AlignTopLeft)
	return &testActor{pos: cp.Vector{X: x, Y: y}, scale: cp.Vector{X: 1, Y: 1}, collider: c}
}

var gridGlyphs = map[rune]TileType{
	'.':  TileEmpty,
	'n':  TileNormal,
	'#':  TileSolid,
	'=':  TileOneWay,
	'/':  TileSlopeRise,
	'\\': TileSlopeFall,
	'a':  TileSlopeRiseLow,
	'b':  TileSlopeRiseHigh,
	'c':  TileSlopeFallHigh,
	'd':  TileSlopeFallLow,
	'h':  TileHazard,
	'H':  TileLadder,
}

// gridFrom builds a 16-unit grid from rows of glyphs.
func gridFrom(t *testing.T, rows ...string) *TileGrid {
	t.Helper()
	require.NotEmpty(t, rows)
	width := len(rows[0])
	types := make([]TileType, 0, width*len(rows))
	for _, row := range rows {
		require.Len(t, row, width)
		for _, r := range row {
			tt, ok := gridGlyphs[r]
			require.True(t, ok, "unknown glyph %q", r)
			types = append(types, tt)
		}
	}
	g, err := NewTileGridFromTypes(width, len(rows), cp.Vector{X: 16, Y: 16}, types)
	require.NoError(t, err)
	return g
}

// newTestWorld returns a world with gravity off so tests drive velocity.
func newTestWorld() *World {
	w := NewWorld()
	w.SetGravity(cp.Vector{})
	return w
}

func addBody(w *World, a *testActor, vel cp.Vector) (*Body, BodyHandle) {
	b := NewBody(a, false, 1)
	b.Velocity = vel
	return b, w.RegisterBody(b)
}
