package ecs

import "github.com/milk9111/physbox/ecs/component"

// World owns entities, component tables, and the event queue.
type World struct {
	entities entityStore
	tables   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{tables: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components. Returns false
// if the handle was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	id := int(e.id())
	for _, table := range w.tables {
		table.Remove(id)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns all live entities in creation order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) table(id component.ComponentID) *SparseSet {
	if w.tables == nil {
		w.tables = make(map[component.ComponentID]*SparseSet)
	}
	t, ok := w.tables[id]
	if !ok {
		t = &SparseSet{}
		w.tables[id] = t
	}
	return t
}

func (w *World) addComponent(e Entity, id component.ComponentID, v any) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if id == 0 {
		return component.ErrInvalidComponentKind
	}
	if v == nil {
		return component.ErrNilComponent
	}
	w.table(id).Set(int(e.id()), v)
	return nil
}

func (w *World) getComponent(e Entity, id component.ComponentID) (any, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	t, ok := w.tables[id]
	if !ok {
		return nil, false
	}
	v := t.Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	return v, true
}

func (w *World) removeComponent(e Entity, id component.ComponentID) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	t, ok := w.tables[id]
	if !ok || !t.Has(int(e.id())) {
		return false
	}
	t.Remove(int(e.id()))
	return true
}
