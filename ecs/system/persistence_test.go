package system

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/ecs/entity"
	"github.com/milk9111/physbox/obj"
	"github.com/milk9111/physbox/prefabs"
	"github.com/milk9111/physbox/snapshot"
)

func newPersistenceFixture(t *testing.T) (*ecs.World, *PhysicsSystem, *PersistenceSystem) {
	t.Helper()

	w := ecs.NewWorld()
	singleton := ecs.CreateEntity(w)
	if err := ecs.Add(w, singleton, component.InputComponent.Kind(), &component.Input{}); err != nil {
		t.Fatalf("input singleton: %v", err)
	}
	if err := ecs.Add(w, singleton, component.ScoreComponent.Kind(), &component.Score{}); err != nil {
		t.Fatalf("score singleton: %v", err)
	}

	physics := NewPhysicsSystem(&prefabs.WorldSpec{})
	persistence := NewPersistenceSystem(physics, obj.NewCamera(1000, 600), nil, false)
	return w, physics, persistence
}

func worldKinds(w *ecs.World) []string {
	var kinds []string
	ecs.ForEach(w, component.EntityKindComponent.Kind(), func(_ ecs.Entity, k *component.EntityKind) {
		kinds = append(kinds, k.Name)
	})
	return kinds
}

func TestSaveLoadRoundTrip(t *testing.T) {
	w, physics, persistence := newPersistenceFixture(t)

	if _, err := entity.Spawn(w, component.KindPlayer, 100, 100); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	ball, err := entity.Spawn(w, component.KindBall, 300, 200)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if _, err := entity.Spawn(w, component.KindCoin, 400, 100); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)
	physics.Body(ball).SetVelocity(42, -17)
	physics.SetGravity(0, 450)
	persistence.setScore(w, 30)

	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := persistence.Save(w, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := persistence.Load(w, path); err != nil {
		t.Fatalf("load: %v", err)
	}

	kinds := worldKinds(w)
	want := []string{component.KindPlayer, component.KindBall, component.KindCoin}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d entities, got %v", len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}

	if g := physics.Gravity(); g.X != 0 || g.Y != 450 {
		t.Fatalf("expected gravity (0, 450), got (%v, %v)", g.X, g.Y)
	}
	if got := currentScore(w); got != 30 {
		t.Fatalf("expected score 30, got %d", got)
	}

	var ballVel bool
	ecs.ForEach(w, component.EntityKindComponent.Kind(), func(e ecs.Entity, k *component.EntityKind) {
		if k.Name != component.KindBall {
			return
		}
		v := physics.Body(e).Velocity()
		if math.Abs(v.X-42) < 1e-9 && math.Abs(v.Y+17) < 1e-9 {
			ballVel = true
		}
	})
	if !ballVel {
		t.Fatal("expected ball velocity restored")
	}
}

func TestLoadRejectsBadSnapshotAtomically(t *testing.T) {
	w, physics, persistence := newPersistenceFixture(t)

	ball, err := entity.Spawn(w, component.KindBall, 300, 200)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	bad := "gravity: [0, 900]\nscore: 0\nentities:\n- kind: dragon\n  position: [0, 0]\n  velocity: [0, 0]\n  angle: 0\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := persistence.Load(w, path); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	if !ecs.IsAlive(w, ball) {
		t.Fatal("failed load must leave the world untouched")
	}
	if !physics.HasBody(ball) {
		t.Fatal("failed load must leave bodies untouched")
	}
}

func TestRestoreRejectsBadPrefabOverride(t *testing.T) {
	w, physics, persistence := newPersistenceFixture(t)

	ball, err := entity.Spawn(w, component.KindBall, 300, 200)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	coin, err := entity.Spawn(w, component.KindCoin, 400, 100)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)

	data, err := snapshot.Encode(persistence.Capture(w))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// A disk prefab under prefabs/ overrides the embedded copy. An edit
	// that breaks the shape params must reject the load before the live
	// world is torn down.
	t.Chdir(t.TempDir())
	if err := os.MkdirAll("prefabs", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := "name: ball\nphysics:\n  shape: circle\n  radius: 0\n  mass: 10\n"
	if err := os.WriteFile(filepath.Join("prefabs", "ball.yaml"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	prefabs.Invalidate("ball.yaml")
	t.Cleanup(func() { prefabs.Invalidate("ball.yaml") })

	if err := persistence.Restore(w, data); err == nil {
		t.Fatal("expected error for invalid prefab override")
	}

	if !ecs.IsAlive(w, ball) || !ecs.IsAlive(w, coin) {
		t.Fatal("failed restore must leave the world untouched")
	}
	if !physics.HasBody(ball) || !physics.HasBody(coin) {
		t.Fatal("failed restore must leave bodies untouched")
	}
}

func TestLoadMissingFileLeavesWorld(t *testing.T) {
	w, _, persistence := newPersistenceFixture(t)

	ball, err := entity.Spawn(w, component.KindBall, 300, 200)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	if err := persistence.Load(w, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if !ecs.IsAlive(w, ball) {
		t.Fatal("failed load must leave the world untouched")
	}
}

func TestResetClearsWorld(t *testing.T) {
	w, physics, persistence := newPersistenceFixture(t)

	if _, err := entity.Spawn(w, component.KindBall, 300, 200); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.Update(w)
	physics.SetGravity(100, 100)
	persistence.setScore(w, 50)

	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.ResetRequestComponent.Kind(), &component.ResetRequest{}); err != nil {
		t.Fatalf("queue request: %v", err)
	}
	persistence.Update(w)

	if kinds := worldKinds(w); len(kinds) != 0 {
		t.Fatalf("expected no entities after reset, got %v", kinds)
	}
	if got := currentScore(w); got != 0 {
		t.Fatalf("expected score 0 after reset, got %d", got)
	}
	if g := physics.Gravity(); g.X != 0 || g.Y != 0 {
		t.Fatalf("expected configured gravity after reset, got (%v, %v)", g.X, g.Y)
	}
	if ecs.IsAlive(w, req) {
		t.Fatal("request carrier should be destroyed")
	}
}

func TestCaptureOrdersEntitiesByCreation(t *testing.T) {
	w, physics, persistence := newPersistenceFixture(t)

	if _, err := entity.Spawn(w, component.KindBox, 10, 10); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	middle, err := entity.Spawn(w, component.KindCoin, 20, 20)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if _, err := entity.Spawn(w, component.KindBall, 30, 30); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	physics.SyncBodies(w)

	ecs.DestroyEntity(w, middle)
	physics.Update(w)

	snap := persistence.Capture(w)
	if len(snap.Entities) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap.Entities))
	}
	if snap.Entities[0].Kind != component.KindBox || snap.Entities[1].Kind != component.KindBall {
		t.Fatalf("records out of creation order: %+v", snap.Entities)
	}
}
