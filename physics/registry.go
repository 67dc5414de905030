package physics

import "strconv"

// BodyHandle identifies a registered body. The zero handle is never valid.
type BodyHandle uint64

// GridHandle identifies a registered tile grid. The zero handle is never valid.
type GridHandle uint64

func (h BodyHandle) String() string { return handleString(uint64(h)) }
func (h GridHandle) String() string { return handleString(uint64(h)) }

// Valid reports whether the handle could refer to a slot at all.
func (h BodyHandle) Valid() bool { return h > 0 }
func (h GridHandle) Valid() bool { return h > 0 }

const slotBits = 32

func makeHandle(slot, gen uint32) uint64 {
	return uint64(gen)<<slotBits | uint64(slot)
}

func handleSlot(h uint64) uint32 {
	return uint32(h)
}

func handleGen(h uint64) uint32 {
	return uint32(h >> slotBits)
}

func handleString(h uint64) string {
	return strconv.FormatUint(uint64(handleSlot(h)), 10) + "v" + strconv.FormatUint(uint64(handleGen(h)), 10)
}

// slab stores non-owning references under generational handles. Removing
// an entry bumps its slot generation, so stale handles resolve to nothing
// instead of to whatever reuses the slot. Slots are 1-based.
type slab[T comparable] struct {
	items []T
	gen   []uint32
	live  []bool
	free  []uint32
	// order lists live slots in insertion order; iteration follows it.
	order []uint32
}

func (s *slab[T]) insert(v T) uint64 {
	var slot uint32
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.items = append(s.items, v)
		s.gen = append(s.gen, 0)
		s.live = append(s.live, false)
		slot = uint32(len(s.items))
	}
	idx := slot - 1
	s.items[idx] = v
	s.live[idx] = true
	s.order = append(s.order, slot)
	return makeHandle(slot, s.gen[idx])
}

func (s *slab[T]) index(h uint64) (uint32, bool) {
	slot := handleSlot(h)
	if slot == 0 || int(slot) > len(s.items) {
		return 0, false
	}
	idx := slot - 1
	if !s.live[idx] || s.gen[idx] != handleGen(h) {
		return 0, false
	}
	return idx, true
}

func (s *slab[T]) get(h uint64) (T, bool) {
	idx, ok := s.index(h)
	if !ok {
		var zero T
		return zero, false
	}
	return s.items[idx], true
}

func (s *slab[T]) remove(h uint64) bool {
	idx, ok := s.index(h)
	if !ok {
		return false
	}
	var zero T
	s.items[idx] = zero
	s.live[idx] = false
	s.gen[idx]++
	s.free = append(s.free, idx+1)
	for i, slot := range s.order {
		if slot == idx+1 {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// find returns the handle of v when it is already stored.
func (s *slab[T]) find(v T) (uint64, bool) {
	for _, slot := range s.order {
		idx := slot - 1
		if s.items[idx] == v {
			return makeHandle(slot, s.gen[idx]), true
		}
	}
	return 0, false
}

func (s *slab[T]) len() int {
	return len(s.order)
}

// each visits live entries in insertion order.
func (s *slab[T]) each(fn func(h uint64, v T)) {
	for _, slot := range s.order {
		idx := slot - 1
		fn(makeHandle(slot, s.gen[idx]), s.items[idx])
	}
}
