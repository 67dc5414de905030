package physics

import "github.com/milk9111/tilephys/common"

// tileSet is a set of tile types; tileTypeCount fits in one word.
type tileSet uint64

func (s *tileSet) add(t TileType)     { *s |= 1 << t }
func (s tileSet) has(t TileType) bool { return s&(1<<t) != 0 }

// scanTriggers emits one event per distinct trigger tile type each body
// covers and recomputes the ladder flag.
func (w *World) scanTriggers(grids []*TileGrid) {
	const tol = common.FarEdgeTolerance
	for _, e := range w.active {
		b := e.body
		b.contacts.OnLadder = false
		_, aabb, ok := b.usableCollider()
		if !ok {
			continue
		}

		var seen tileSet
		for _, g := range grids {
			x0, y0 := g.CellAt(aabb.Pos)
			x1 := g.column(aabb.Right() - tol)
			y1 := g.row(aabb.Bottom() - tol)
			// Clip to the grid so far-off bodies do not walk empty cells.
			x0, y0 = max(x0, 0), max(y0, 0)
			x1, y1 = min(x1, g.width-1), min(y1, g.height-1)
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					t := g.TileTypeAt(x, y)
					if t == TileLadder {
						b.contacts.OnLadder = true
					}
					if t.IsTrigger() {
						seen.add(t)
					}
				}
			}
		}

		if seen == 0 {
			continue
		}
		for t := TileType(0); t < tileTypeCount; t++ {
			if seen.has(t) {
				w.triggers = append(w.triggers, TriggerEvent{Actor: b.Owner, Tile: t})
			}
		}
	}
}
