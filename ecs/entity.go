package ecs

import "strconv"

// Entity is a generation-checked handle. The low 32 bits index the
// registry slot, the high 32 bits carry the slot's generation at the
// time the handle was issued. A handle whose generation no longer
// matches the slot refers to a destroyed entity.
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
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// entityStore tracks entity generations and free slots.
type entityStore struct {
	gens  []generation
	alive []bool
	free  []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		// slot 0 is reserved so the zero Entity is never valid
		if len(s.gens) == 0 {
			s.gens = append(s.gens, 0)
			s.alive = append(s.alive, false)
		}
		id = entityID(len(s.gens))
		s.gens = append(s.gens, 0)
		s.alive = append(s.alive, false)
	}
	s.alive[id] = true
	return makeEntity(id, s.gens[id])
}

// destroy invalidates the handle but does not recycle the slot; the
// world releases it once the deferred component teardown has run, so an
// entity created later in the same step can never collide with the
// dead one's id.
func (s *entityStore) destroy(e Entity) bool {
	id := e.id()
	if !s.contains(e) {
		return false
	}
	s.alive[id] = false
	s.gens[id]++
	return true
}

// release returns a destroyed slot to the free list.
func (s *entityStore) release(id entityID) {
	s.free = append(s.free, id)
}

func (s *entityStore) contains(e Entity) bool {
	id := int(e.id())
	if id <= 0 || id >= len(s.gens) {
		return false
	}
	return s.alive[id] && s.gens[id] == e.generation()
}

func (s *entityStore) each(fn func(Entity)) {
	for id := 1; id < len(s.gens); id++ {
		if s.alive[id] {
			fn(makeEntity(entityID(id), s.gens[id]))
		}
	}
}
