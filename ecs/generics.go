package ecs

import "github.com/milk9111/physbox/ecs/component"

func Add[T any](w *World, e Entity, k component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	return w.addComponent(e, k.ID(), value)
}

func Remove[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	return w.removeComponent(e, k.ID())
}

func Has[T any](w *World, e Entity, k component.ComponentKind[T]) bool {
	_, ok := w.getComponent(e, k.ID())
	return ok
}

func Get[T any](w *World, e Entity, k component.ComponentKind[T]) (*T, bool) {
	value, ok := w.getComponent(e, k.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// First returns the earliest-created entity holding the component.
func First[T any](w *World, k component.ComponentKind[T]) (Entity, bool) {
	for _, e := range Entities(w) {
		if Has(w, e, k) {
			return e, true
		}
	}
	return 0, false
}

// ForEach visits entities holding the component in creation order. The
// visitor may destroy entities, including the one being visited.
func ForEach[T any](w *World, k component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	snapshot := append([]Entity(nil), Entities(w)...)
	for _, e := range snapshot {
		if !IsAlive(w, e) {
			continue
		}
		if v, ok := Get(w, e, k); ok {
			fn(e, v)
		}
	}
}

// ForEach2 visits entities holding both components in creation order.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	snapshot := append([]Entity(nil), Entities(w)...)
	for _, e := range snapshot {
		if !IsAlive(w, e) {
			continue
		}
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}
