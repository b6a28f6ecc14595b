package ecs

// System is one step of the per-frame update. Systems communicate through
// components and the world event queue, never by calling each other.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. Ordering carries meaning:
// request producers must run before the systems that consume the requests
// in the same frame.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	owned := append([]System(nil), systems...)
	return &Scheduler{systems: owned}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

// Systems returns a copy so callers cannot reorder the frame.
func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
