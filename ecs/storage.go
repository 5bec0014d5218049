package ecs

// store is the untyped view of a component storage, used by the world
// for entity teardown.
type store interface {
	removeID(id entityID) bool
	hasID(id entityID) bool
	clear()
	owners() []Entity
}

// typedStore keeps components densely packed with a sparse id -> dense
// index map, so iteration touches only live values.
type typedStore[T any] struct {
	sparse []int32 // id -> dense index + 1; 0 means absent
	dense  []T
	ents   []Entity
}

func (s *typedStore[T]) index(id entityID) int {
	if int(id) >= len(s.sparse) {
		return -1
	}
	return int(s.sparse[id]) - 1
}

func (s *typedStore[T]) set(e Entity, value T) {
	id := e.id()
	if i := s.index(id); i >= 0 {
		s.dense[i] = value
		s.ents[i] = e
		return
	}
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, 0)
	}
	s.dense = append(s.dense, value)
	s.ents = append(s.ents, e)
	s.sparse[id] = int32(len(s.dense))
}

func (s *typedStore[T]) get(id entityID) (*T, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return &s.dense[i], true
}

func (s *typedStore[T]) removeID(id entityID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	last := len(s.dense) - 1
	if i != last {
		s.dense[i] = s.dense[last]
		s.ents[i] = s.ents[last]
		s.sparse[s.ents[i].id()] = int32(i + 1)
	}
	s.dense = s.dense[:last]
	s.ents = s.ents[:last]
	s.sparse[id] = 0
	return true
}

func (s *typedStore[T]) hasID(id entityID) bool {
	return s.index(id) >= 0
}

func (s *typedStore[T]) clear() {
	s.sparse = s.sparse[:0]
	s.dense = s.dense[:0]
	s.ents = s.ents[:0]
}

func (s *typedStore[T]) owners() []Entity {
	return s.ents
}
