package system

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephys/ecs"
	"github.com/milk9111/tilephys/ecs/component"
	"github.com/milk9111/tilephys/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespawnSystem(t *testing.T) {
	w := ecs.NewWorld()
	bounds := w.CreateEntity()
	require.NoError(t, ecs.Add(w, bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: 200, Height: 100}))
	player, _, body, state := spawnPlayer(t, w, physics.Contacts{Below: true}, true)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.X, tr.Y = 30, 50

	rs := NewRespawnSystem()
	rs.Update(w)

	safe, ok := ecs.Get(w, player, component.SafeRespawnComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, component.SafeRespawn{X: 30, Y: 50, Initialized: true}, *safe)

	t.Run("falling inside the margin keeps the player", func(t *testing.T) {
		state.Contacts = physics.Contacts{}
		tr.X, tr.Y = 80, 100+defaultFallMargin
		rs.Update(w)
		assert.Equal(t, 80.0, tr.X)
		assert.False(t, ecs.Has(w, player, component.RespawnRequestComponent.Kind()))
	})

	t.Run("falling out respawns at the safe position", func(t *testing.T) {
		tr.X, tr.Y = 80, 100+defaultFallMargin+1
		body.Velocity = cp.Vector{X: 5, Y: 400}
		rs.Update(w)
		assert.Equal(t, 30.0, tr.X)
		assert.Equal(t, 50.0, tr.Y)
		assert.Equal(t, cp.Vector{}, body.Velocity)
		assert.False(t, ecs.Has(w, player, component.RespawnRequestComponent.Kind()))
	})
}

func TestRespawnSystemWithoutSafePosition(t *testing.T) {
	var buf bytes.Buffer
	w := ecs.NewWorld()
	w.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	player, _, _, state := spawnPlayer(t, w, physics.Contacts{}, true)
	require.NoError(t, ecs.Add(w, player, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{}))
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	tr.X, tr.Y = 12, 999

	rs := NewRespawnSystem()
	rs.Update(w)
	rs.Update(w)

	assert.Equal(t, 999.0, tr.Y)
	assert.True(t, ecs.Has(w, player, component.RespawnRequestComponent.Kind()), "request waits for a safe position")
	assert.Equal(t, 1, strings.Count(buf.String(), "no safe position"), "warns once per request")

	t.Run("landing completes the pending request", func(t *testing.T) {
		state.Contacts = physics.Contacts{Below: true}
		rs.Update(w)
		assert.False(t, ecs.Has(w, player, component.RespawnRequestComponent.Kind()))
		assert.Empty(t, rs.waiting)
	})
}
