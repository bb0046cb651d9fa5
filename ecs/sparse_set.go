package ecs

// SparseSet is cache-friendly storage for one component type. The dense
// list carries full entity handles, so a lookup with a stale generation
// misses even when the id slot is occupied again.
type SparseSet struct {
	dense  []Entity
	values []any
	sparse []int
}

// Has returns true if the entity exists in the set.
func (s *SparseSet) Has(e Entity) bool {
	if s == nil || !e.Valid() {
		return false
	}
	idx := int(e.id()) - 1
	if idx >= len(s.sparse) {
		return false
	}
	d := s.sparse[idx]
	return d >= 0 && d < len(s.dense) && s.dense[d] == e
}

// Get returns the component for e, or nil.
func (s *SparseSet) Get(e Entity) any {
	if !s.Has(e) {
		return nil
	}
	return s.values[s.sparse[int(e.id())-1]]
}

// Set inserts or updates a component for e.
func (s *SparseSet) Set(e Entity, v any) {
	if s == nil || !e.Valid() {
		return
	}
	idx := int(e.id()) - 1
	for idx >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if d := s.sparse[idx]; d >= 0 && d < len(s.dense) && s.dense[d].id() == e.id() {
		s.dense[d] = e
		s.values[d] = v
		return
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[idx] = len(s.dense) - 1
}

// Remove deletes the component for e if present.
func (s *SparseSet) Remove(e Entity) bool {
	if !s.Has(e) {
		return false
	}
	idx := int(e.id()) - 1
	d := s.sparse[idx]
	last := len(s.dense) - 1
	lastEntity := s.dense[last]

	s.dense[d] = lastEntity
	s.values[d] = s.values[last]
	s.sparse[int(lastEntity.id())-1] = d

	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[idx] = -1
	return true
}

// Entities returns the dense entity list.
func (s *SparseSet) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.dense
}

// Len returns the number of stored components.
func (s *SparseSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dense)
}
