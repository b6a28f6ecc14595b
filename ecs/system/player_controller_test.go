package system

import (
	"math"
	"testing"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/ecs/entity"
	"github.com/milk9111/physbox/prefabs"
)

func TestPlayerControllerPushes(t *testing.T) {
	w := ecs.NewWorld()
	singleton := ecs.CreateEntity(w)
	in := &component.Input{MoveX: 1}
	if err := ecs.Add(w, singleton, component.InputComponent.Kind(), in); err != nil {
		t.Fatalf("input singleton: %v", err)
	}
	if err := ecs.Add(w, singleton, component.ScoreComponent.Kind(), &component.Score{}); err != nil {
		t.Fatalf("score singleton: %v", err)
	}

	physics := NewPhysicsSystem(&prefabs.WorldSpec{})
	controller := NewPlayerControllerSystem(physics)

	player, err := entity.Spawn(w, component.KindPlayer, 400, 300)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)

	controller.Update(w)
	physics.Update(w)

	v := physics.Body(player).Velocity()
	if v.X <= 0 {
		t.Fatalf("expected rightward velocity, got (%v, %v)", v.X, v.Y)
	}
	if math.Abs(v.Y) > 1e-9 {
		t.Fatalf("expected no vertical push, got %v", v.Y)
	}
}

func TestPlayerControllerNormalizesDiagonals(t *testing.T) {
	run := func(moveX, moveY float64) float64 {
		w := ecs.NewWorld()
		singleton := ecs.CreateEntity(w)
		if err := ecs.Add(w, singleton, component.InputComponent.Kind(), &component.Input{MoveX: moveX, MoveY: moveY}); err != nil {
			t.Fatalf("input singleton: %v", err)
		}
		if err := ecs.Add(w, singleton, component.ScoreComponent.Kind(), &component.Score{}); err != nil {
			t.Fatalf("score singleton: %v", err)
		}

		physics := NewPhysicsSystem(&prefabs.WorldSpec{})
		controller := NewPlayerControllerSystem(physics)

		player, err := entity.Spawn(w, component.KindPlayer, 400, 300)
		if err != nil {
			t.Fatalf("spawn: %v", err)
		}
		physics.SyncBodies(w)

		controller.Update(w)
		physics.Update(w)
		return physics.Body(player).Velocity().Length()
	}

	straight := run(1, 0)
	diagonal := run(1, 1)

	if math.Abs(straight-diagonal) > 1e-6 {
		t.Fatalf("diagonal speed %v should match straight speed %v", diagonal, straight)
	}
}

func TestPlayerControllerIdleWithoutInput(t *testing.T) {
	w := ecs.NewWorld()
	singleton := ecs.CreateEntity(w)
	if err := ecs.Add(w, singleton, component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatalf("input singleton: %v", err)
	}

	physics := NewPhysicsSystem(&prefabs.WorldSpec{})
	controller := NewPlayerControllerSystem(physics)

	player, err := entity.Spawn(w, component.KindPlayer, 400, 300)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)

	controller.Update(w)
	physics.Update(w)

	if v := physics.Body(player).Velocity(); v.Length() > 1e-9 {
		t.Fatalf("expected no movement without input, got (%v, %v)", v.X, v.Y)
	}
}
