package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestSlopeHeight(t *testing.T) {
	size := cp.Vector{X: 16, Y: 16}
	cases := []struct {
		name   string
		tile   TileType
		localX float64
		want   float64
	}{
		{"rise_start", TileSlopeRise, 0, 0},
		{"rise_end", TileSlopeRise, 16, 16},
		{"rise_mid", TileSlopeRise, 8, 8},
		{"fall_start", TileSlopeFall, 0, 16},
		{"fall_end", TileSlopeFall, 16, 0},
		{"rise_low_mid", TileSlopeRiseLow, 8, 4},
		{"rise_low_end", TileSlopeRiseLow, 16, 8},
		{"rise_high_start", TileSlopeRiseHigh, 0, 8},
		{"rise_high_end", TileSlopeRiseHigh, 16, 16},
		{"fall_high_start", TileSlopeFallHigh, 0, 16},
		{"fall_high_mid", TileSlopeFallHigh, 8, 12},
		{"fall_low_start", TileSlopeFallLow, 0, 8},
		{"fall_low_end", TileSlopeFallLow, 16, 0},
		{"clamped_below", TileSlopeRise, -5, 0},
		{"clamped_above", TileSlopeRise, 40, 16},
		{"solid_is_flat", TileSolid, 8, 0},
		{"empty_is_flat", TileEmpty, 8, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, SlopeHeight(c.tile, c.localX, size), 1e-9)
		})
	}
}

func TestSlopeHeightUsesTileHeight(t *testing.T) {
	assert.InDelta(t, 4.0, SlopeHeight(TileSlopeRiseLow, 16, cp.Vector{X: 32, Y: 16}), 1e-9)
	assert.Zero(t, SlopeHeight(TileSlopeRise, 8, cp.Vector{}))
}
