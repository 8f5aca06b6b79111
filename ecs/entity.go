package ecs

import "strconv"

// Entity is a generational handle: the low 32 bits index the entity slot and
// the high 32 bits carry the slot generation. A handle whose generation no
// longer matches its slot refers to a despawned entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether the handle was ever produced by a world. It says
// nothing about liveness; use IsAlive for that.
func (e Entity) Valid() bool {
	return e.id() > 0
}

// Raw returns the handle as a plain integer, for components that must refer
// to other entities without importing this package.
func (e Entity) Raw() uint64 {
	return uint64(e)
}

// FromRaw rebuilds a handle stored with Raw.
func FromRaw(raw uint64) Entity {
	return Entity(raw)
}
