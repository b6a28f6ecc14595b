package system

import (
	"testing"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
)

func TestScenarioQueuesSpawnRequests(t *testing.T) {
	w := ecs.NewWorld()
	scenario := NewScenarioSystem()

	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.ScenarioRequestComponent.Kind(), &component.ScenarioRequest{Name: "coin_rain"}); err != nil {
		t.Fatalf("queue request: %v", err)
	}

	scenario.Update(w)

	if ecs.IsAlive(w, req) {
		t.Fatal("request carrier should be destroyed")
	}

	coins := 0
	ecs.ForEach(w, component.SpawnRequestComponent.Kind(), func(_ ecs.Entity, r *component.SpawnRequest) {
		if r.Kind != component.KindCoin {
			t.Fatalf("expected only coin spawns, got %s", r.Kind)
		}
		coins++
	})
	if coins != 12 {
		t.Fatalf("expected 12 coin spawn requests, got %d", coins)
	}
}

func TestScenarioBoxStack(t *testing.T) {
	w := ecs.NewWorld()
	scenario := NewScenarioSystem()

	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.ScenarioRequestComponent.Kind(), &component.ScenarioRequest{Name: "box_stack"}); err != nil {
		t.Fatalf("queue request: %v", err)
	}

	scenario.Update(w)

	boxes, bouncers := 0, 0
	ecs.ForEach(w, component.SpawnRequestComponent.Kind(), func(_ ecs.Entity, r *component.SpawnRequest) {
		switch r.Kind {
		case component.KindBox:
			boxes++
		case component.KindBouncer:
			bouncers++
		default:
			t.Fatalf("unexpected spawn kind %s", r.Kind)
		}
	})

	// 5+4+3+2+1 pyramid rows plus one bouncer.
	if boxes != 15 || bouncers != 1 {
		t.Fatalf("expected 15 boxes and 1 bouncer, got %d and %d", boxes, bouncers)
	}
}

func TestScenarioUnknownScriptKeepsWorld(t *testing.T) {
	w := ecs.NewWorld()
	scenario := NewScenarioSystem()

	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.ScenarioRequestComponent.Kind(), &component.ScenarioRequest{Name: "no_such_scenario"}); err != nil {
		t.Fatalf("queue request: %v", err)
	}

	scenario.Update(w)

	if ecs.IsAlive(w, req) {
		t.Fatal("request carrier should be destroyed even on failure")
	}
	count := 0
	ecs.ForEach(w, component.SpawnRequestComponent.Kind(), func(ecs.Entity, *component.SpawnRequest) { count++ })
	if count != 0 {
		t.Fatalf("expected no spawn requests from a missing script, got %d", count)
	}
}
