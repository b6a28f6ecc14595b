package system

import (
	"fmt"
	"log"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbox/ecs"
	"github.com/milk9111/physbox/ecs/component"
	"github.com/milk9111/physbox/ecs/entity"
	"github.com/milk9111/physbox/obj"
	"github.com/milk9111/physbox/prefabs"
	"github.com/milk9111/physbox/snapshot"
	"golang.design/x/clipboard"
)

// PersistenceSystem handles save, load, reset, and copy requests. Loads
// are atomic. The snapshot is fully validated and every prefab it needs
// is loaded before the current world is torn down, so a bad file leaves
// the running sandbox untouched.
type PersistenceSystem struct {
	physics   *PhysicsSystem
	camera    *obj.Camera
	log       *obj.EventLog
	clipboard bool
}

func NewPersistenceSystem(physics *PhysicsSystem, camera *obj.Camera, eventLog *obj.EventLog, clipboardReady bool) *PersistenceSystem {
	return &PersistenceSystem{
		physics:   physics,
		camera:    camera,
		log:       eventLog,
		clipboard: clipboardReady,
	}
}

func (p *PersistenceSystem) Update(w *ecs.World) {
	if w == nil || p.physics == nil {
		return
	}

	p.queueCopyHotkey(w)
	p.consumeSaves(w)
	p.consumeCopies(w)
	p.consumeLoads(w)
	p.consumeResets(w)
}

func (p *PersistenceSystem) queueCopyHotkey(w *ecs.World) {
	e, ok := ecs.First(w, component.InputComponent.Kind())
	if !ok {
		return
	}
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	if !ok || !in.CopyPressed {
		return
	}
	req := ecs.CreateEntity(w)
	if err := ecs.Add(w, req, component.CopyRequestComponent.Kind(), &component.CopyRequest{}); err != nil {
		panic(fmt.Sprintf("persistence: queue copy request: %v", err))
	}
}

func (p *PersistenceSystem) consumeSaves(w *ecs.World) {
	type request struct {
		e    ecs.Entity
		path string
	}
	var requests []request
	ecs.ForEach(w, component.SaveRequestComponent.Kind(), func(e ecs.Entity, r *component.SaveRequest) {
		requests = append(requests, request{e: e, path: r.Path})
	})

	for _, r := range requests {
		ecs.DestroyEntity(w, r.e)
		if err := p.Save(w, r.path); err != nil {
			log.Printf("save %s: %v", r.path, err)
			continue
		}
		if p.log != nil {
			p.log.Append("save", r.path, currentScore(w))
		}
	}
}

func (p *PersistenceSystem) consumeCopies(w *ecs.World) {
	var requests []ecs.Entity
	ecs.ForEach(w, component.CopyRequestComponent.Kind(), func(e ecs.Entity, _ *component.CopyRequest) {
		requests = append(requests, e)
	})

	for _, e := range requests {
		ecs.DestroyEntity(w, e)
		if !p.clipboard {
			log.Printf("copy: clipboard unavailable")
			continue
		}
		data, err := snapshot.Encode(p.Capture(w))
		if err != nil {
			log.Printf("copy: %v", err)
			continue
		}
		clipboard.Write(clipboard.FmtText, data)
		if p.log != nil {
			p.log.Append("copy", fmt.Sprintf("%d bytes to clipboard", len(data)), currentScore(w))
		}
	}
}

func (p *PersistenceSystem) consumeLoads(w *ecs.World) {
	type request struct {
		e    ecs.Entity
		path string
	}
	var requests []request
	ecs.ForEach(w, component.LoadRequestComponent.Kind(), func(e ecs.Entity, r *component.LoadRequest) {
		requests = append(requests, request{e: e, path: r.Path})
	})

	for _, r := range requests {
		ecs.DestroyEntity(w, r.e)
		if err := p.Load(w, r.path); err != nil {
			log.Printf("load %s: %v", r.path, err)
			continue
		}
		if p.log != nil {
			p.log.Append("load", r.path, currentScore(w))
		}
	}
}

func (p *PersistenceSystem) consumeResets(w *ecs.World) {
	var requests []ecs.Entity
	ecs.ForEach(w, component.ResetRequestComponent.Kind(), func(e ecs.Entity, _ *component.ResetRequest) {
		requests = append(requests, e)
	})
	if len(requests) == 0 {
		return
	}

	for _, e := range requests {
		ecs.DestroyEntity(w, e)
	}
	p.Reset(w)
	if p.log != nil {
		p.log.Append("reset", "world cleared", 0)
	}
}

// Capture walks live entities in creation order and records their kind
// and motion state along with gravity and score.
func (p *PersistenceSystem) Capture(w *ecs.World) *snapshot.Snapshot {
	g := p.physics.Gravity()
	snap := &snapshot.Snapshot{
		Gravity: [2]float64{g.X, g.Y},
		Score:   currentScore(w),
	}

	ecs.ForEach2(w, component.EntityKindComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, kind *component.EntityKind, pb *component.PhysicsBody) {
		rec := snapshot.Record{Kind: kind.Name}
		if body := p.physics.Body(e); body != nil {
			pos := body.Position()
			vel := body.Velocity()
			rec.Position = [2]float64{pos.X, pos.Y}
			rec.Velocity = [2]float64{vel.X, vel.Y}
			rec.Angle = body.Angle()
		} else if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			rec.Position = [2]float64{t.X, t.Y}
			rec.Angle = t.Rotation
		}
		snap.Entities = append(snap.Entities, rec)
	})

	return snap
}

// Save writes the current world state to path.
func (p *PersistenceSystem) Save(w *ecs.World, path string) error {
	data, err := snapshot.Encode(p.Capture(w))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load replaces the world with the snapshot at path. The file is parsed
// and its prefabs resolved before anything is destroyed.
func (p *PersistenceSystem) Load(w *ecs.World, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	return p.Restore(w, data)
}

// Restore applies a serialized snapshot to the world.
func (p *PersistenceSystem) Restore(w *ecs.World, data []byte) error {
	snap, err := snapshot.Decode(data, component.KnownKind)
	if err != nil {
		return err
	}

	for _, rec := range snap.Entities {
		spec, err := prefabs.LoadEntitySpec(rec.Kind)
		if err != nil {
			return fmt.Errorf("resolve prefab %s: %w", rec.Kind, err)
		}
		if err := entity.ValidateSpec(spec); err != nil {
			return fmt.Errorf("resolve prefab %s: %w", rec.Kind, err)
		}
	}

	p.clearEntities(w)
	p.physics.Reset()
	p.physics.SetGravity(snap.Gravity[0], snap.Gravity[1])

	for i, rec := range snap.Entities {
		e, err := entity.Spawn(w, rec.Kind, rec.Position[0], rec.Position[1])
		if err != nil {
			return fmt.Errorf("respawn entity %d (%s): %w", i, rec.Kind, err)
		}
		p.physics.SyncBodies(w)
		if body := p.physics.Body(e); body != nil && body.GetType() == cp.BODY_DYNAMIC {
			body.SetVelocity(rec.Velocity[0], rec.Velocity[1])
			body.SetAngle(rec.Angle)
		}
	}

	p.setScore(w, snap.Score)
	return nil
}

// Reset clears all spawned entities and restores initial gravity, score,
// and camera state.
func (p *PersistenceSystem) Reset(w *ecs.World) {
	p.clearEntities(w)
	p.physics.Reset()
	p.setScore(w, 0)
	if p.camera != nil {
		p.camera.Reset()
	}
}

func (p *PersistenceSystem) clearEntities(w *ecs.World) {
	var doomed []ecs.Entity
	ecs.ForEach(w, component.EntityKindComponent.Kind(), func(e ecs.Entity, _ *component.EntityKind) {
		doomed = append(doomed, e)
	})
	for _, e := range doomed {
		ecs.DestroyEntity(w, e)
	}
}

func (p *PersistenceSystem) setScore(w *ecs.World, points int) {
	e, ok := ecs.First(w, component.ScoreComponent.Kind())
	if !ok {
		return
	}
	if score, ok := ecs.Get(w, e, component.ScoreComponent.Kind()); ok {
		score.Points = points
	}
}
