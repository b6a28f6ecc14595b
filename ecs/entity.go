package ecs

import "strconv"

// Entity is a handle packing a storage slot in the low 32 bits and that
// slot's generation in the high 32. A destroyed slot bumps its generation
// on reuse, so handles held across a destroy compare stale instead of
// silently pointing at the replacement.
type Entity uint64

type entityID uint32
type generation uint32

const generationShift = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<generationShift | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> generationShift))
}

// Valid reports whether e could name a slot at all. The zero Entity is
// the sentinel returned by failed lookups.
func (e Entity) Valid() bool {
	return e > 0
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}
