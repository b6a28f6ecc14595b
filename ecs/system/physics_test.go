package system

import (
	"testing"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/ecs/entity"
	"github.com/milk9111/physbox/prefabs"
)

func newPhysicsFixture(t *testing.T) (*ecs.World, *PhysicsSystem) {
	t.Helper()

	w := ecs.NewWorld()
	singleton := ecs.CreateEntity(w)
	if err := ecs.Add(w, singleton, component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatalf("input singleton: %v", err)
	}
	if err := ecs.Add(w, singleton, component.ScoreComponent.Kind(), &component.Score{}); err != nil {
		t.Fatalf("score singleton: %v", err)
	}

	return w, NewPhysicsSystem(&prefabs.WorldSpec{})
}

func TestPhysicsBodyLifecycle(t *testing.T) {
	w, physics := newPhysicsFixture(t)

	ball, err := entity.Spawn(w, component.KindBall, 100, 100)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	if physics.HasBody(ball) {
		t.Fatal("body should not exist before the first update")
	}

	physics.Update(w)
	if !physics.HasBody(ball) {
		t.Fatal("expected body after update")
	}

	ecs.DestroyEntity(w, ball)
	physics.Update(w)
	if physics.HasBody(ball) {
		t.Fatal("expected body removed after entity destruction")
	}
}

func TestPhysicsGravityApplies(t *testing.T) {
	w, physics := newPhysicsFixture(t)
	physics.SetGravity(0, 900)

	ball, err := entity.Spawn(w, component.KindBall, 100, 100)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	physics.Update(w)
	v := physics.Body(ball).Velocity()
	if v.Y <= 0 {
		t.Fatalf("expected downward velocity under gravity, got %v", v.Y)
	}

	tr, ok := ecs.Get(w, ball, component.TransformComponent.Kind())
	if !ok {
		t.Fatal("missing transform")
	}
	if tr.Y <= 100 {
		t.Fatalf("expected transform written back below start, got %v", tr.Y)
	}
}

func TestPhysicsGravityRequest(t *testing.T) {
	w, physics := newPhysicsFixture(t)

	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.GravityRequestComponent.Kind(), &component.GravityRequest{X: 0, Y: -500}); err != nil {
		t.Fatalf("queue request: %v", err)
	}

	physics.Update(w)

	if g := physics.Gravity(); g.X != 0 || g.Y != -500 {
		t.Fatalf("expected gravity (0, -500), got (%v, %v)", g.X, g.Y)
	}
	if ecs.IsAlive(w, req) {
		t.Fatal("request carrier should be destroyed after handling")
	}
}

func TestCoinCollection(t *testing.T) {
	w, physics := newPhysicsFixture(t)
	score := NewScoreSystem(nil)
	ttl := NewTTLSystem()

	if _, err := entity.Spawn(w, component.KindPlayer, 500, 300); err != nil {
		t.Fatalf("spawn player: %v", err)
	}
	coin, err := entity.Spawn(w, component.KindCoin, 500, 318)
	if err != nil {
		t.Fatalf("spawn coin: %v", err)
	}

	// Overlapping shapes collide on the first step.
	physics.Update(w)
	score.Update(w)
	ttl.Update(w)
	physics.Update(w)

	e, ok := ecs.First(w, component.ScoreComponent.Kind())
	if !ok {
		t.Fatal("missing score singleton")
	}
	sc, _ := ecs.Get(w, e, component.ScoreComponent.Kind())
	if sc.Points != 10 {
		t.Fatalf("expected 10 points, got %d", sc.Points)
	}

	if ecs.IsAlive(w, coin) {
		t.Fatal("collected coin should be destroyed")
	}
	if physics.HasBody(coin) {
		t.Fatal("collected coin body should be removed")
	}
}

func TestBouncerLaunchesDynamicBodies(t *testing.T) {
	w, physics := newPhysicsFixture(t)

	if _, err := entity.Spawn(w, component.KindBouncer, 500, 300); err != nil {
		t.Fatalf("spawn bouncer: %v", err)
	}
	ball, err := entity.Spawn(w, component.KindBall, 500, 330)
	if err != nil {
		t.Fatalf("spawn ball: %v", err)
	}

	physics.Update(w)

	v := physics.Body(ball).Velocity()
	if v.Y <= 0 {
		t.Fatalf("expected ball pushed away below the bouncer, got velocity (%v, %v)", v.X, v.Y)
	}

	events := w.Events().Drain()
	found := false
	for _, ev := range events {
		if ev.Kind == ecs.CollisionEventBounce && ev.B == ball {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected bounce event for %s, got %v", ball, events)
	}
}

func TestFindAtPrefersLastCreated(t *testing.T) {
	w, physics := newPhysicsFixture(t)

	first, err := entity.Spawn(w, component.KindBall, 200, 200)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	second, err := entity.Spawn(w, component.KindBall, 205, 200)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)

	// Both shapes contain this point; insertion order breaks the tie.
	found, ok := physics.FindAt(w, 202, 200, 0)
	if !ok {
		t.Fatal("expected a hit")
	}
	if found != second {
		t.Fatalf("expected last created %s, got %s", second, found)
	}

	ecs.DestroyEntity(w, second)
	physics.Update(w)

	found, ok = physics.FindAt(w, 202, 200, 0)
	if !ok || found != first {
		t.Fatalf("expected %s after destroying %s, got %s (ok=%v)", first, second, found, ok)
	}
}

func TestFindAtMissReturnsFalse(t *testing.T) {
	w, physics := newPhysicsFixture(t)

	if _, err := entity.Spawn(w, component.KindBall, 200, 200); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)

	if _, ok := physics.FindAt(w, 900, 900, 4); ok {
		t.Fatal("expected no hit far from every shape")
	}
}

func TestResetDropsBodiesAndRestoresGravity(t *testing.T) {
	w, physics := newPhysicsFixture(t)

	ball, err := entity.Spawn(w, component.KindBall, 100, 100)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.Update(w)
	physics.SetGravity(50, -50)

	physics.Reset()

	if physics.HasBody(ball) {
		t.Fatal("expected bodies dropped on reset")
	}
	if g := physics.Gravity(); g.X != 0 || g.Y != 0 {
		t.Fatalf("expected configured gravity restored, got (%v, %v)", g.X, g.Y)
	}
}
