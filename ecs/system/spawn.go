package system

import (
	"fmt"
	"log"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/ecs/entity"
	"github.com/milk9111/physbox/obj"
)

// SpawnSystem consumes SpawnRequest components and creates the requested
// entities. A player spawn replaces any existing player first.
type SpawnSystem struct {
	log *obj.EventLog
}

func NewSpawnSystem(eventLog *obj.EventLog) *SpawnSystem {
	return &SpawnSystem{log: eventLog}
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	type request struct {
		e   ecs.Entity
		req component.SpawnRequest
	}
	var requests []request
	ecs.ForEach(w, component.SpawnRequestComponent.Kind(), func(e ecs.Entity, r *component.SpawnRequest) {
		requests = append(requests, request{e: e, req: *r})
	})

	for _, r := range requests {
		ecs.DestroyEntity(w, r.e)

		if r.req.Kind == component.KindPlayer {
			s.removeExistingPlayers(w)
		}

		spawned, err := entity.Spawn(w, r.req.Kind, r.req.X, r.req.Y)
		if err != nil {
			log.Printf("spawn %s at (%.0f, %.0f): %v", r.req.Kind, r.req.X, r.req.Y, err)
			continue
		}

		if s.log != nil {
			s.log.Append("spawn", fmt.Sprintf("%s %s at (%.0f, %.0f)", r.req.Kind, spawned, r.req.X, r.req.Y), currentScore(w))
		}
	}
}

func (s *SpawnSystem) removeExistingPlayers(w *ecs.World) {
	var players []ecs.Entity
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, _ *component.Player) {
		players = append(players, e)
	})
	for _, e := range players {
		ecs.DestroyEntity(w, e)
	}
}

func currentScore(w *ecs.World) int {
	e, ok := ecs.First(w, component.ScoreComponent.Kind())
	if !ok {
		return 0
	}
	score, ok := ecs.Get(w, e, component.ScoreComponent.Kind())
	if !ok {
		return 0
	}
	return score.Points
}
