package system

import (
	"fmt"
	"log"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/obj"
)

// ScoreSystem drains collision events, tallies coin points, and records
// everything in the event log. Collected coins lose their coin component
// immediately so they cannot score twice, then expire on the next frame.
type ScoreSystem struct {
	log *obj.EventLog
}

func NewScoreSystem(eventLog *obj.EventLog) *ScoreSystem {
	return &ScoreSystem{log: eventLog}
}

func (s *ScoreSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	events := w.Events().Drain()
	if len(events) == 0 {
		return
	}

	se, ok := ecs.First(w, component.ScoreComponent.Kind())
	if !ok {
		return
	}
	score, ok := ecs.Get(w, se, component.ScoreComponent.Kind())
	if !ok {
		return
	}

	for _, ev := range events {
		switch ev.Kind {
		case ecs.CollisionEventCoin:
			s.collectCoin(w, score, ev)
		case ecs.CollisionEventBounce:
			if s.log != nil {
				s.log.Append("bounce", fmt.Sprintf("%s launched %s", ev.A, ev.B), score.Points)
			}
		default:
			log.Printf("score: unknown collision event kind %q", ev.Kind)
		}
	}
}

func (s *ScoreSystem) collectCoin(w *ecs.World, score *component.Score, ev ecs.CollisionEvent) {
	coin, ok := ecs.Get(w, ev.B, component.CoinComponent.Kind())
	if !ok {
		return
	}

	score.Points += coin.Value
	ecs.Remove(w, ev.B, component.CoinComponent.Kind())
	if err := ecs.Add(w, ev.B, component.TTLComponent.Kind(), &component.TTL{Frames: 1}); err != nil {
		panic(fmt.Sprintf("score: expire coin %s: %v", ev.B, err))
	}

	if s.log != nil {
		s.log.Append("coin", fmt.Sprintf("%s collected %s (+%d)", ev.A, ev.B, coin.Value), score.Points)
	}
}
