package ecs

// entityStore tracks entity generations, free ids, and the alive list.
// The alive list stays in creation order so queries over it are
// deterministic within a frame.
type entityStore struct {
	gen   []generation
	alive []Entity
	free  []entityID
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		id = entityID(len(s.gen))
	}
	e := makeEntity(id, s.gen[id-1])
	s.alive = append(s.alive, e)
	return e
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	id := e.id()
	s.gen[id-1]++
	for i, a := range s.alive {
		if a == e {
			s.alive = append(s.alive[:i], s.alive[i+1:]...)
			break
		}
	}
	s.free = append(s.free, id)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil {
		return false
	}
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.gen[id-1] == e.generation()
}

func (s *entityStore) entities() []Entity {
	if s == nil {
		return nil
	}
	return s.alive
}
