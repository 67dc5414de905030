package ecs

import "strconv"

// Entity is a handle to a world slot. The low half holds the 1-based slot and
// the high half the slot's generation, so a handle goes stale once its slot
// is destroyed and reused. The zero Entity never refers to anything.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const (
	entityIDBits = 32
	entityIDMask = 1<<entityIDBits - 1
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID           { return entityID(uint64(e) & entityIDMask) }
func (e Entity) generation() generation { return generation(uint64(e) >> entityIDBits) }

func (e Entity) Valid() bool { return e.id() != 0 }

// String formats the handle as slot#generation for logs.
func (e Entity) String() string {
	if !e.Valid() {
		return "none"
	}
	return strconv.FormatUint(uint64(e.id()), 10) + "#" + strconv.FormatUint(uint64(e.generation()), 10)
}
